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

var courseColumns = helpers.NewColumnSet("course_name")

// CourseRepository handles course database operations
type CourseRepository struct {
	db db.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(pool db.Pool) *CourseRepository {
	return &CourseRepository{
		db: pool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a course under its staff-chosen ID
func (r *CourseRepository) Create(ctx context.Context, c *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("course_id", "course_name").
		Values(c.ID, c.Name).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_pkey") {
			return apperrors.ErrCourseExists
		}
		logger.Error().Err(err).Str("courseID", c.ID).Msg("Error executing create course query")
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// GetByID retrieves a course
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	sql, args, err := r.sb.Select("course_id", "course_name").From("courses").
		Where(squirrel.Eq{"course_id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course SQL")
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	var c models.Course
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Str("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return &c, nil
}

// List returns all courses ordered by name
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	sql, args, err := r.sb.Select("course_id", "course_name").From("courses").
		OrderBy("course_name", "course_id").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	courses := make([]models.Course, 0)
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("error scanning course: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating courses: %w", err)
	}
	return courses, nil
}

// Update applies a partial update
func (r *CourseRepository) Update(ctx context.Context, id string, patch models.CoursePatch) error {
	set, err := helpers.BuildSetMap(patch.Changes(), courseColumns)
	if err != nil {
		return err
	}

	sql, args, err := r.sb.Update("courses").SetMap(set).Where(squirrel.Eq{"course_id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update course SQL")
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("courseID", id).Msg("Error executing update course query")
		return fmt.Errorf("error updating course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// Delete removes a course together with its exams
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM courses WHERE course_id = $1", id)
	if err != nil {
		logger.Error().Err(err).Str("courseID", id).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}
