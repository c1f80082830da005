package services

import (
	"context"

	"github.com/yigit/aerowis/internal/app/models"
	"github.com/yigit/aerowis/internal/domain"
	"github.com/yigit/aerowis/internal/pkg/logger"
)

// ResultService defines the interface for exam result operations
type ResultService interface {
	SaveMark(ctx context.Context, studentID, examID int64, mark *int) (*models.Result, error)
	FindResult(ctx context.Context, studentID, examID int64) (*models.Result, error)
	GetResult(ctx context.Context, id int64) (*models.Result, error)
	DeleteResult(ctx context.Context, id int64) error
	ListByExam(ctx context.Context, examID int64) ([]models.Result, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.Result, error)
}

// resultServiceImpl implements ResultService
type resultServiceImpl struct {
	results  ResultStore
	exams    ExamStore
	students StudentStore
}

// NewResultService creates a new ResultService
func NewResultService(results ResultStore, exams ExamStore, students StudentStore) ResultService {
	return &resultServiceImpl{
		results:  results,
		exams:    exams,
		students: students,
	}
}

// SaveMark records a student's mark for an exam; nil marks the student absent.
// The status is derived from the exam's cutoff. Saving again replaces the earlier result.
func (s *resultServiceImpl) SaveMark(ctx context.Context, studentID, examID int64, mark *int) (*models.Result, error) {
	exam, err := s.exams.GetByID(ctx, examID)
	if err != nil {
		return nil, err
	}
	if _, err := s.students.GetByRegNo(ctx, studentID); err != nil {
		return nil, err
	}

	if err := domain.ValidateMark(mark, exam.MaxScore); err != nil {
		return nil, err
	}
	if mark != nil && *mark < 0 {
		logger.Warn().
			Int64("studentID", studentID).
			Int64("examID", examID).
			Int("mark", *mark).
			Msg("Negative mark recorded")
	}

	res := &models.Result{
		StudentID: studentID,
		ExamID:    examID,
		Mark:      mark,
		Status:    domain.EvaluateStatus(mark, exam.CutoffScore),
	}
	if err := s.results.Upsert(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// FindResult returns the result of a (student, exam) pair
func (s *resultServiceImpl) FindResult(ctx context.Context, studentID, examID int64) (*models.Result, error) {
	return s.results.FindByStudentAndExam(ctx, studentID, examID)
}

// GetResult retrieves a result
func (s *resultServiceImpl) GetResult(ctx context.Context, id int64) (*models.Result, error) {
	return s.results.GetByID(ctx, id)
}

// DeleteResult deletes a result
func (s *resultServiceImpl) DeleteResult(ctx context.Context, id int64) error {
	return s.results.Delete(ctx, id)
}

// ListByExam lists an exam's results by student name
func (s *resultServiceImpl) ListByExam(ctx context.Context, examID int64) ([]models.Result, error) {
	if _, err := s.exams.GetByID(ctx, examID); err != nil {
		return nil, err
	}
	return s.results.ListByExam(ctx, examID)
}

// ListByStudent lists a student's results, most recent exam first
func (s *resultServiceImpl) ListByStudent(ctx context.Context, studentID int64) ([]models.Result, error) {
	if _, err := s.students.GetByRegNo(ctx, studentID); err != nil {
		return nil, err
	}
	return s.results.ListByStudent(ctx, studentID)
}
