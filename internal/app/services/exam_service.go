package services

import (
	"context"
	"strings"

	"github.com/yigit/aerowis/internal/app/models"
	"github.com/yigit/aerowis/internal/pkg/apperrors"
)

// ExamService defines the interface for exam operations
type ExamService interface {
	CreateExam(ctx context.Context, e *models.Exam) (*models.Exam, error)
	GetExam(ctx context.Context, id int64) (*models.Exam, error)
	ListExams(ctx context.Context, filter models.ExamFilter) ([]models.Exam, error)
	UpdateExam(ctx context.Context, id int64, patch models.ExamPatch) (*models.Exam, error)
	DeleteExam(ctx context.Context, id int64) error
}

// examServiceImpl implements ExamService
type examServiceImpl struct {
	exams       ExamStore
	courses     CourseStore
	batches     BatchStore
	instructors InstructorStore
}

// NewExamService creates a new ExamService
func NewExamService(exams ExamStore, courses CourseStore, batches BatchStore, instructors InstructorStore) ExamService {
	return &examServiceImpl{
		exams:       exams,
		courses:     courses,
		batches:     batches,
		instructors: instructors,
	}
}

// validateExam checks the fields of a complete exam. Scores are checked here so
// a bad cutoff never reaches the store.
func validateExam(e *models.Exam) error {
	switch {
	case strings.TrimSpace(e.Name) == "":
		return apperrors.NewValidationError("exam_name", "exam_name is required")
	case strings.TrimSpace(e.CourseID) == "":
		return apperrors.NewValidationError("course_id", "course_id is required")
	case e.BatchID <= 0:
		return apperrors.NewValidationError("batch_id", "batch_id is required")
	case e.InstructorID <= 0:
		return apperrors.NewValidationError("instructor_id", "instructor_id is required")
	case e.MaxScore <= 0:
		return apperrors.NewValidationError("max_score", "max_score must be greater than 0")
	case e.CutoffScore < 0 || e.CutoffScore > e.MaxScore:
		return apperrors.NewValidationError("cutoff_score", "cutoff_score must be between 0 and max_score")
	case e.ExamDate.IsZero():
		return apperrors.NewValidationError("exam_date", "exam_date is required")
	}
	return nil
}

func (s *examServiceImpl) checkReferences(ctx context.Context, courseID *string, batchID, instructorID *int64) error {
	if courseID != nil {
		if _, err := s.courses.GetByID(ctx, *courseID); err != nil {
			return err
		}
	}
	if batchID != nil {
		if _, err := s.batches.GetByID(ctx, *batchID); err != nil {
			return err
		}
	}
	if instructorID != nil {
		if _, err := s.instructors.GetByID(ctx, *instructorID); err != nil {
			return err
		}
	}
	return nil
}

// CreateExam schedules an exam for a batch
func (s *examServiceImpl) CreateExam(ctx context.Context, e *models.Exam) (*models.Exam, error) {
	e.Name = strings.TrimSpace(e.Name)
	e.CourseID = strings.TrimSpace(e.CourseID)
	if err := validateExam(e); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, &e.CourseID, &e.BatchID, &e.InstructorID); err != nil {
		return nil, err
	}

	if err := s.exams.Create(ctx, e); err != nil {
		return nil, err
	}
	return s.exams.GetByID(ctx, e.ID)
}

// GetExam retrieves an exam with course, batch and instructor names
func (s *examServiceImpl) GetExam(ctx context.Context, id int64) (*models.Exam, error) {
	return s.exams.GetByID(ctx, id)
}

// ListExams lists exams, most recent first
func (s *examServiceImpl) ListExams(ctx context.Context, filter models.ExamFilter) ([]models.Exam, error) {
	return s.exams.List(ctx, filter)
}

// UpdateExam merges the patch into the stored exam and validates the result before saving
func (s *examServiceImpl) UpdateExam(ctx context.Context, id int64, patch models.ExamPatch) (*models.Exam, error) {
	current, err := s.exams.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		patch.Name = &name
	}
	if patch.CourseID != nil {
		courseID := strings.TrimSpace(*patch.CourseID)
		patch.CourseID = &courseID
	}

	merged := patch.Apply(*current)
	if err := validateExam(&merged); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, patch.CourseID, patch.BatchID, patch.InstructorID); err != nil {
		return nil, err
	}

	if err := s.exams.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return s.exams.GetByID(ctx, id)
}

// DeleteExam deletes an exam and its results
func (s *examServiceImpl) DeleteExam(ctx context.Context, id int64) error {
	return s.exams.Delete(ctx, id)
}
