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

var instructorColumns = helpers.NewColumnSet("name", "email", "phone")

// InstructorRepository handles instructor database operations
type InstructorRepository struct {
	db db.Pool
	sb squirrel.StatementBuilderType
}

// NewInstructorRepository creates a new InstructorRepository
func NewInstructorRepository(pool db.Pool) *InstructorRepository {
	return &InstructorRepository{
		db: pool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *InstructorRepository) selectInstructors() squirrel.SelectBuilder {
	return r.sb.Select("instructor_id", "name", "COALESCE(email, '')", "COALESCE(phone, '')").From("instructors")
}

func scanInstructor(row pgx.Row) (*models.Instructor, error) {
	var in models.Instructor
	if err := row.Scan(&in.ID, &in.Name, &in.Email, &in.Phone); err != nil {
		return nil, err
	}
	return &in, nil
}

// Create inserts an instructor and sets its generated ID
func (r *InstructorRepository) Create(ctx context.Context, in *models.Instructor) error {
	sql, args, err := r.sb.Insert("instructors").
		Columns("name", "email", "phone").
		Values(in.Name, helpers.NullIfEmpty(in.Email), helpers.NullIfEmpty(in.Phone)).
		Suffix("RETURNING instructor_id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create instructor SQL")
		return fmt.Errorf("failed to build create instructor query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&in.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "instructors_email_key") {
			return apperrors.ErrInstructorEmailTaken
		}
		logger.Error().Err(err).Msg("Error executing create instructor query")
		return fmt.Errorf("error creating instructor: %w", err)
	}
	return nil
}

// GetByID retrieves an instructor
func (r *InstructorRepository) GetByID(ctx context.Context, id int64) (*models.Instructor, error) {
	sql, args, err := r.selectInstructors().Where(squirrel.Eq{"instructor_id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get instructor SQL")
		return nil, fmt.Errorf("failed to build get instructor query: %w", err)
	}

	in, err := scanInstructor(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInstructorNotFound
		}
		logger.Error().Err(err).Int64("instructorID", id).Msg("Error scanning instructor row")
		return nil, fmt.Errorf("error retrieving instructor: %w", err)
	}
	return in, nil
}

// List returns all instructors ordered by name
func (r *InstructorRepository) List(ctx context.Context) ([]models.Instructor, error) {
	sql, args, err := r.selectInstructors().OrderBy("name", "instructor_id").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list instructors SQL")
		return nil, fmt.Errorf("failed to build list instructors query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list instructors query")
		return nil, fmt.Errorf("error listing instructors: %w", err)
	}
	defer rows.Close()

	instructors := make([]models.Instructor, 0)
	for rows.Next() {
		in, err := scanInstructor(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning instructor: %w", err)
		}
		instructors = append(instructors, *in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating instructors: %w", err)
	}
	return instructors, nil
}

// Update applies a partial update
func (r *InstructorRepository) Update(ctx context.Context, id int64, patch models.InstructorPatch) error {
	set, err := helpers.BuildSetMap(patch.Changes(), instructorColumns)
	if err != nil {
		return err
	}

	sql, args, err := r.sb.Update("instructors").SetMap(set).Where(squirrel.Eq{"instructor_id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update instructor SQL")
		return fmt.Errorf("failed to build update instructor query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "instructors_email_key") {
			return apperrors.ErrInstructorEmailTaken
		}
		logger.Error().Err(err).Int64("instructorID", id).Msg("Error executing update instructor query")
		return fmt.Errorf("error updating instructor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInstructorNotFound
	}
	return nil
}

// Delete removes an instructor together with their exams
func (r *InstructorRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM instructors WHERE instructor_id = $1", id)
	if err != nil {
		logger.Error().Err(err).Int64("instructorID", id).Msg("Error executing delete instructor query")
		return fmt.Errorf("error deleting instructor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInstructorNotFound
	}
	return nil
}
