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
	"github.com/yigit/aerowis/internal/pkg/helpers"
	"github.com/yigit/aerowis/internal/pkg/logger"
)

var batchColumns = helpers.NewColumnSet("batch_name", "start_date")

// BatchRepository handles batch database operations
type BatchRepository struct {
	db db.Pool
	sb squirrel.StatementBuilderType
}

// NewBatchRepository creates a new BatchRepository
func NewBatchRepository(pool db.Pool) *BatchRepository {
	return &BatchRepository{
		db: pool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *BatchRepository) selectBatches() squirrel.SelectBuilder {
	return r.sb.Select(
		"b.batch_id", "b.batch_name", "b.start_date",
		"(SELECT COUNT(*) FROM students s WHERE s.batch_id = b.batch_id) AS student_count",
	).From("batches b")
}

func scanBatch(row pgx.Row) (*models.Batch, error) {
	var batch models.Batch
	if err := row.Scan(&batch.ID, &batch.Name, &batch.StartDate, &batch.StudentCount); err != nil {
		return nil, err
	}
	return &batch, nil
}

// Create inserts a batch and sets its generated ID
func (r *BatchRepository) Create(ctx context.Context, batch *models.Batch) error {
	sql, args, err := r.sb.Insert("batches").
		Columns("batch_name", "start_date").
		Values(batch.Name, batch.StartDate).
		Suffix("RETURNING batch_id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create batch SQL")
		return fmt.Errorf("failed to build create batch query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&batch.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "batches_batch_name_key") {
			return apperrors.ErrBatchNameTaken
		}
		logger.Error().Err(err).Str("batchName", batch.Name).Msg("Error executing create batch query")
		return fmt.Errorf("error creating batch: %w", err)
	}
	return nil
}

// GetByID retrieves a batch with its student count
func (r *BatchRepository) GetByID(ctx context.Context, id int64) (*models.Batch, error) {
	sql, args, err := r.selectBatches().Where(squirrel.Eq{"b.batch_id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get batch SQL")
		return nil, fmt.Errorf("failed to build get batch query: %w", err)
	}

	batch, err := scanBatch(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBatchNotFound
		}
		logger.Error().Err(err).Int64("batchID", id).Msg("Error scanning batch row")
		return nil, fmt.Errorf("error retrieving batch: %w", err)
	}
	return batch, nil
}

// List returns all batches, newest start date first
func (r *BatchRepository) List(ctx context.Context) ([]models.Batch, error) {
	sql, args, err := r.selectBatches().OrderBy("b.start_date DESC NULLS LAST", "b.batch_name").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list batches SQL")
		return nil, fmt.Errorf("failed to build list batches query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list batches query")
		return nil, fmt.Errorf("error listing batches: %w", err)
	}
	defer rows.Close()

	batches := make([]models.Batch, 0)
	for rows.Next() {
		batch, err := scanBatch(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning batch row")
			return nil, fmt.Errorf("error scanning batch: %w", err)
		}
		batches = append(batches, *batch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating batches: %w", err)
	}
	return batches, nil
}

// Update applies a partial update
func (r *BatchRepository) Update(ctx context.Context, id int64, patch models.BatchPatch) error {
	set, err := helpers.BuildSetMap(patch.Changes(), batchColumns)
	if err != nil {
		return err
	}

	sql, args, err := r.sb.Update("batches").SetMap(set).Where(squirrel.Eq{"batch_id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update batch SQL")
		return fmt.Errorf("failed to build update batch query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "batches_batch_name_key") {
			return apperrors.ErrBatchNameTaken
		}
		logger.Error().Err(err).Int64("batchID", id).Msg("Error executing update batch query")
		return fmt.Errorf("error updating batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrBatchNotFound
	}
	return nil
}

// Delete removes a batch. Batches with students are refused.
func (r *BatchRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var students int
		if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM students WHERE batch_id = $1", id).Scan(&students); err != nil {
			logger.Error().Err(err).Int64("batchID", id).Msg("Error counting batch students")
			return fmt.Errorf("error counting batch students: %w", err)
		}
		if students > 0 {
			return apperrors.ErrBatchHasStudents
		}

		tag, err := tx.Exec(ctx, "DELETE FROM batches WHERE batch_id = $1", id)
		if err != nil {
			if dberrors.IsForeignKeyViolation(err, "") {
				return apperrors.ErrBatchHasStudents
			}
			logger.Error().Err(err).Int64("batchID", id).Msg("Error executing delete batch query")
			return fmt.Errorf("error deleting batch: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrBatchNotFound
		}
		return nil
	})
}
