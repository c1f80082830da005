package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/aerowis/internal/app/models"
	"github.com/yigit/aerowis/internal/db"
	"github.com/yigit/aerowis/internal/domain"
	"github.com/yigit/aerowis/internal/pkg/apperrors"
	"github.com/yigit/aerowis/internal/pkg/dberrors"
	"github.com/yigit/aerowis/internal/pkg/helpers"
	"github.com/yigit/aerowis/internal/pkg/logger"
)

var examColumns = helpers.NewColumnSet(
	"exam_name", "course_id", "batch_id", "instructor_id", "max_score", "cutoff_score", "exam_date",
)

// ExamRepository handles exam database operations
type ExamRepository struct {
	db db.Pool
	sb squirrel.StatementBuilderType
}

// NewExamRepository creates a new ExamRepository
func NewExamRepository(pool db.Pool) *ExamRepository {
	return &ExamRepository{
		db: pool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *ExamRepository) selectExams() squirrel.SelectBuilder {
	return r.sb.Select(
		"e.exam_id", "e.exam_name", "e.course_id", "e.batch_id", "e.instructor_id",
		"e.max_score", "e.cutoff_score", "e.exam_date",
		"c.course_name", "b.batch_name", "i.name AS instructor_name",
	).From("exams e").
		Join("courses c ON c.course_id = e.course_id").
		Join("batches b ON b.batch_id = e.batch_id").
		Join("instructors i ON i.instructor_id = e.instructor_id")
}

func scanExam(row pgx.Row) (*models.Exam, error) {
	var e models.Exam
	err := row.Scan(
		&e.ID, &e.Name, &e.CourseID, &e.BatchID, &e.InstructorID,
		&e.MaxScore, &e.CutoffScore, &e.ExamDate,
		&e.CourseName, &e.BatchName, &e.InstructorName,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// translateExamWriteError maps constraint failures on exams to domain errors
func translateExamWriteError(err error) error {
	switch {
	case dberrors.IsForeignKeyViolation(err, "exams_course_id_fkey"):
		return apperrors.ErrCourseNotFound
	case dberrors.IsForeignKeyViolation(err, "exams_batch_id_fkey"):
		return apperrors.ErrBatchNotFound
	case dberrors.IsForeignKeyViolation(err, "exams_instructor_id_fkey"):
		return apperrors.ErrInstructorNotFound
	case dberrors.IsForeignKeyViolation(err, ""):
		return apperrors.ErrInvalidReference
	case dberrors.IsCheckViolation(err):
		return apperrors.NewValidationError("cutoff_score", "cutoff_score must be between 0 and max_score")
	}
	return nil
}

// Create inserts an exam and sets its generated ID
func (r *ExamRepository) Create(ctx context.Context, e *models.Exam) error {
	sql, args, err := r.sb.Insert("exams").
		Columns("exam_name", "course_id", "batch_id", "instructor_id", "max_score", "cutoff_score", "exam_date").
		Values(e.Name, e.CourseID, e.BatchID, e.InstructorID, e.MaxScore, e.CutoffScore, e.ExamDate).
		Suffix("RETURNING exam_id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create exam SQL")
		return fmt.Errorf("failed to build create exam query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&e.ID); err != nil {
		if domainErr := translateExamWriteError(err); domainErr != nil {
			return domainErr
		}
		logger.Error().Err(err).Str("examName", e.Name).Msg("Error executing create exam query")
		return fmt.Errorf("error creating exam: %w", err)
	}
	return nil
}

// GetByID retrieves an exam with course, batch and instructor names
func (r *ExamRepository) GetByID(ctx context.Context, id int64) (*models.Exam, error) {
	sql, args, err := r.selectExams().Where(squirrel.Eq{"e.exam_id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get exam SQL")
		return nil, fmt.Errorf("failed to build get exam query: %w", err)
	}

	e, err := scanExam(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrExamNotFound
		}
		logger.Error().Err(err).Int64("examID", id).Msg("Error scanning exam row")
		return nil, fmt.Errorf("error retrieving exam: %w", err)
	}
	return e, nil
}

// List returns exams, most recent first
func (r *ExamRepository) List(ctx context.Context, filter models.ExamFilter) ([]models.Exam, error) {
	query := r.selectExams()
	if filter.BatchID != nil {
		query = query.Where(squirrel.Eq{"e.batch_id": *filter.BatchID})
	}
	if filter.CourseID != "" {
		query = query.Where(squirrel.Eq{"e.course_id": filter.CourseID})
	}

	sql, args, err := query.OrderBy("e.exam_date DESC", "e.exam_id DESC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list exams SQL")
		return nil, fmt.Errorf("failed to build list exams query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list exams query")
		return nil, fmt.Errorf("error listing exams: %w", err)
	}
	defer rows.Close()

	exams := make([]models.Exam, 0)
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning exam row")
			return nil, fmt.Errorf("error scanning exam: %w", err)
		}
		exams = append(exams, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exams: %w", err)
	}
	return exams, nil
}

// Update applies a partial update. Stored marks must fit a new max_score, and a
// new cutoff_score re-derives the status of every result of the exam in the
// same transaction.
func (r *ExamRepository) Update(ctx context.Context, id int64, patch models.ExamPatch) error {
	set, err := helpers.BuildSetMap(patch.Changes(), examColumns)
	if err != nil {
		return err
	}

	sql, args, err := r.sb.Update("exams").SetMap(set).Where(squirrel.Eq{"exam_id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update exam SQL")
		return fmt.Errorf("failed to build update exam query: %w", err)
	}

	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if patch.MaxScore != nil {
			largest, err := r.largestMark(ctx, tx, id)
			if err != nil {
				return err
			}
			if largest > *patch.MaxScore {
				return apperrors.NewValidationError("max_score",
					fmt.Sprintf("max_score must be at least %d, the largest recorded mark", largest))
			}
		}

		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			if domainErr := translateExamWriteError(err); domainErr != nil {
				return domainErr
			}
			logger.Error().Err(err).Int64("examID", id).Msg("Error executing update exam query")
			return fmt.Errorf("error updating exam: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrExamNotFound
		}

		if patch.CutoffScore != nil {
			return r.restatusResults(ctx, tx, id, *patch.CutoffScore)
		}
		return nil
	})
}

// largestMark is the largest absolute mark recorded for the exam, 0 when none
func (r *ExamRepository) largestMark(ctx context.Context, tx pgx.Tx, examID int64) (int, error) {
	var largest int
	err := tx.QueryRow(ctx,
		"SELECT COALESCE(MAX(ABS(obtained_mark)), 0) FROM results WHERE exam_id = $1", examID,
	).Scan(&largest)
	if err != nil {
		logger.Error().Err(err).Int64("examID", examID).Msg("Error reading largest mark")
		return 0, fmt.Errorf("error reading largest mark: %w", err)
	}
	return largest, nil
}

func (r *ExamRepository) restatusResults(ctx context.Context, tx pgx.Tx, examID int64, cutoff int) error {
	status := squirrel.Expr(fmt.Sprintf(
		"CASE WHEN obtained_mark IS NULL THEN '%s' WHEN obtained_mark >= ? THEN '%s' ELSE '%s' END",
		domain.StatusAbsent, domain.StatusPass, domain.StatusFail,
	), cutoff)

	sql, args, err := r.sb.Update("results").Set("status", status).Where(squirrel.Eq{"exam_id": examID}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building result status SQL")
		return fmt.Errorf("failed to build result status query: %w", err)
	}

	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("examID", examID).Msg("Error re-deriving result statuses")
		return fmt.Errorf("error updating result statuses: %w", err)
	}
	logger.Info().Int64("examID", examID).Int("cutoff", cutoff).Int64("results", tag.RowsAffected()).Msg("Result statuses re-derived")
	return nil
}

// Delete removes an exam and its results
func (r *ExamRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM exams WHERE exam_id = $1", id)
	if err != nil {
		logger.Error().Err(err).Int64("examID", id).Msg("Error executing delete exam query")
		return fmt.Errorf("error deleting exam: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrExamNotFound
	}
	return nil
}
