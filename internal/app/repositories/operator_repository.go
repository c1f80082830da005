package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/aerowis/internal/app/models"
	"github.com/yigit/aerowis/internal/db"
	"github.com/yigit/aerowis/internal/pkg/apperrors"
	"github.com/yigit/aerowis/internal/pkg/dberrors"
	"github.com/yigit/aerowis/internal/pkg/logger"
)

// OperatorRepository handles operator account database operations
type OperatorRepository struct {
	db db.Pool
	sb squirrel.StatementBuilderType
}

// NewOperatorRepository creates a new OperatorRepository
func NewOperatorRepository(pool db.Pool) *OperatorRepository {
	return &OperatorRepository{
		db: pool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts an operator and sets its generated ID
func (r *OperatorRepository) Create(ctx context.Context, op *models.Operator) error {
	sql, args, err := r.sb.Insert("operators").
		Columns("username", "password_hash").
		Values(op.Username, op.PasswordHash).
		Suffix("RETURNING operator_id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create operator SQL")
		return fmt.Errorf("failed to build create operator query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&op.ID, &op.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "operators_username_key") {
			return apperrors.ErrOperatorExists
		}
		logger.Error().Err(err).Str("username", op.Username).Msg("Error executing create operator query")
		return fmt.Errorf("error creating operator: %w", err)
	}
	return nil
}

// GetByUsername retrieves an operator with the password hash
func (r *OperatorRepository) GetByUsername(ctx context.Context, username string) (*models.Operator, error) {
	sql, args, err := r.sb.Select("operator_id", "username", "password_hash", "created_at").
		From("operators").
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get operator SQL")
		return nil, fmt.Errorf("failed to build get operator query: %w", err)
	}

	var op models.Operator
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&op.ID, &op.Username, &op.PasswordHash, &op.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOperatorNotFound
		}
		logger.Error().Err(err).Str("username", username).Msg("Error scanning operator row")
		return nil, fmt.Errorf("error retrieving operator: %w", err)
	}
	return &op, nil
}
