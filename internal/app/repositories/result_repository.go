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

// ResultRepository handles exam result database operations
type ResultRepository struct {
	db db.Pool
	sb squirrel.StatementBuilderType
}

// NewResultRepository creates a new ResultRepository
func NewResultRepository(pool db.Pool) *ResultRepository {
	return &ResultRepository{
		db: pool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Upsert stores the mark for a (student, exam) pair, replacing any earlier one.
// The stored row's ID is written back into res.
func (r *ResultRepository) Upsert(ctx context.Context, res *models.Result) error {
	sql, args, err := r.sb.Insert("results").
		Columns("student_id", "exam_id", "obtained_mark", "status").
		Values(res.StudentID, res.ExamID, res.Mark, string(res.Status)).
		Suffix("ON CONFLICT (student_id, exam_id) DO UPDATE SET obtained_mark = EXCLUDED.obtained_mark, status = EXCLUDED.status RETURNING result_id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building upsert result SQL")
		return fmt.Errorf("failed to build upsert result query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&res.ID); err != nil {
		switch {
		case dberrors.IsForeignKeyViolation(err, "results_student_id_fkey"):
			return apperrors.ErrStudentNotFound
		case dberrors.IsForeignKeyViolation(err, "results_exam_id_fkey"):
			return apperrors.ErrExamNotFound
		}
		logger.Error().Err(err).
			Int64("studentID", res.StudentID).
			Int64("examID", res.ExamID).
			Msg("Error executing upsert result query")
		return fmt.Errorf("error saving result: %w", err)
	}
	return nil
}

func (r *ResultRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Result, error) {
	sql, args, err := r.sb.Select("result_id", "student_id", "exam_id", "obtained_mark", "status").
		From("results").Where(where).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get result SQL")
		return nil, fmt.Errorf("failed to build get result query: %w", err)
	}

	var res models.Result
	var status string
	err = r.db.QueryRow(ctx, sql, args...).Scan(&res.ID, &res.StudentID, &res.ExamID, &res.Mark, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResultNotFound
		}
		logger.Error().Err(err).Msg("Error scanning result row")
		return nil, fmt.Errorf("error retrieving result: %w", err)
	}
	res.Status = statusOf(status)
	return &res, nil
}

// FindByStudentAndExam returns the result for a (student, exam) pair
func (r *ResultRepository) FindByStudentAndExam(ctx context.Context, studentID, examID int64) (*models.Result, error) {
	return r.getOne(ctx, squirrel.Eq{"student_id": studentID, "exam_id": examID})
}

// GetByID retrieves a result
func (r *ResultRepository) GetByID(ctx context.Context, id int64) (*models.Result, error) {
	return r.getOne(ctx, squirrel.Eq{"result_id": id})
}

// Delete removes a result
func (r *ResultRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM results WHERE result_id = $1", id)
	if err != nil {
		logger.Error().Err(err).Int64("resultID", id).Msg("Error executing delete result query")
		return fmt.Errorf("error deleting result: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResultNotFound
	}
	return nil
}

// ListByExam returns an exam's results with student names, ordered by name
func (r *ResultRepository) ListByExam(ctx context.Context, examID int64) ([]models.Result, error) {
	sql, args, err := r.sb.Select(
		"r.result_id", "r.student_id", "r.exam_id", "r.obtained_mark", "r.status", "s.name",
	).From("results r").
		Join("students s ON s.reg_no = r.student_id").
		Where(squirrel.Eq{"r.exam_id": examID}).
		OrderBy("s.name", "r.student_id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list exam results SQL")
		return nil, fmt.Errorf("failed to build list exam results query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("examID", examID).Msg("Error executing list exam results query")
		return nil, fmt.Errorf("error listing exam results: %w", err)
	}
	defer rows.Close()

	results := make([]models.Result, 0)
	for rows.Next() {
		var res models.Result
		var status string
		if err := rows.Scan(&res.ID, &res.StudentID, &res.ExamID, &res.Mark, &status, &res.StudentName); err != nil {
			return nil, fmt.Errorf("error scanning result: %w", err)
		}
		res.Status = statusOf(status)
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating results: %w", err)
	}
	return results, nil
}

// ListByStudent returns a student's results joined with their exams, most recent exam first
func (r *ResultRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.Result, error) {
	sql, args, err := r.sb.Select(
		"r.result_id", "r.student_id", "r.exam_id", "r.obtained_mark", "r.status",
		"e.exam_name", "e.exam_date", "e.max_score", "e.cutoff_score",
	).From("results r").
		Join("exams e ON e.exam_id = r.exam_id").
		Where(squirrel.Eq{"r.student_id": studentID}).
		OrderBy("e.exam_date DESC", "e.exam_id DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list student results SQL")
		return nil, fmt.Errorf("failed to build list student results query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing list student results query")
		return nil, fmt.Errorf("error listing student results: %w", err)
	}
	defer rows.Close()

	results := make([]models.Result, 0)
	for rows.Next() {
		var res models.Result
		var status string
		if err := rows.Scan(
			&res.ID, &res.StudentID, &res.ExamID, &res.Mark, &status,
			&res.ExamName, &res.ExamDate, &res.MaxScore, &res.CutoffScore,
		); err != nil {
			return nil, fmt.Errorf("error scanning result: %w", err)
		}
		res.Status = statusOf(status)
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating results: %w", err)
	}
	return results, nil
}
