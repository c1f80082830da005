package services

import (
	"context"
	"io"
	"strings"

	"github.com/yigit/aerowis/internal/app/models"
	"github.com/yigit/aerowis/internal/domain"
	"github.com/yigit/aerowis/internal/pkg/apperrors"
	"github.com/yigit/aerowis/internal/pkg/filestorage"
	"github.com/yigit/aerowis/internal/pkg/logger"
)

// StudentService defines the interface for student operations
type StudentService interface {
	CreateStudent(ctx context.Context, s *models.Student) (*models.Student, error)
	GetStudent(ctx context.Context, regNo int64) (*models.Student, error)
	ListStudents(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	UpdateStudent(ctx context.Context, regNo int64, patch models.StudentPatch) (*models.Student, error)
	DeleteStudent(ctx context.Context, regNo int64) error
	UploadPhoto(ctx context.Context, regNo int64, r io.Reader) (*domain.Photo, error)
	GetPhoto(ctx context.Context, regNo int64) (*domain.Photo, error)
	PhotoURL(s *models.Student) string
}

// studentServiceImpl implements StudentService
type studentServiceImpl struct {
	students StudentStore
	batches  BatchStore
	photos   filestorage.PhotoStore
}

// NewStudentService creates a new StudentService
func NewStudentService(students StudentStore, batches BatchStore, photos filestorage.PhotoStore) StudentService {
	return &studentServiceImpl{
		students: students,
		batches:  batches,
		photos:   photos,
	}
}

func validateStudent(s *models.Student) error {
	if s.RegNo <= 0 {
		return apperrors.NewValidationError("reg_no", "reg_no must be a positive number")
	}
	if s.Name == "" {
		return apperrors.NewValidationError("name", "name is required")
	}
	if s.BatchID <= 0 {
		return apperrors.NewValidationError("batch_id", "batch_id is required")
	}
	if s.TotalClasses < 0 {
		return apperrors.NewValidationError("total_classes", "total_classes cannot be negative")
	}
	if s.Attendance < 0 {
		return apperrors.NewValidationError("attendance", "attendance cannot be negative")
	}
	return validateEmail(s.Email)
}

// CreateStudent registers a student in an existing batch
func (s *studentServiceImpl) CreateStudent(ctx context.Context, student *models.Student) (*models.Student, error) {
	student.Name = strings.TrimSpace(student.Name)
	student.Email = strings.TrimSpace(student.Email)
	if err := validateStudent(student); err != nil {
		return nil, err
	}

	if _, err := s.batches.GetByID(ctx, student.BatchID); err != nil {
		return nil, err
	}

	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}

	logger.Info().Int64("regNo", student.RegNo).Int64("batchID", student.BatchID).Msg("Student registered")
	return s.students.GetByRegNo(ctx, student.RegNo)
}

// GetStudent retrieves a student with batch details
func (s *studentServiceImpl) GetStudent(ctx context.Context, regNo int64) (*models.Student, error) {
	return s.students.GetByRegNo(ctx, regNo)
}

// ListStudents lists students matching the filter
func (s *studentServiceImpl) ListStudents(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	return s.students.List(ctx, filter)
}

// UpdateStudent applies a partial update. Moving to another batch requires the batch to exist.
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, regNo int64, patch models.StudentPatch) (*models.Student, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name", "name cannot be empty")
		}
		patch.Name = &name
	}
	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		patch.Email = &email
	}
	if patch.TotalClasses != nil && *patch.TotalClasses < 0 {
		return nil, apperrors.NewValidationError("total_classes", "total_classes cannot be negative")
	}
	if patch.Attendance != nil && *patch.Attendance < 0 {
		return nil, apperrors.NewValidationError("attendance", "attendance cannot be negative")
	}
	if patch.BatchID != nil {
		if _, err := s.batches.GetByID(ctx, *patch.BatchID); err != nil {
			return nil, err
		}
	}

	if err := s.students.Update(ctx, regNo, patch); err != nil {
		return nil, err
	}
	return s.students.GetByRegNo(ctx, regNo)
}

// DeleteStudent removes a student with their results, payments and photo
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, regNo int64) error {
	if err := s.students.Delete(ctx, regNo); err != nil {
		return err
	}

	if err := s.photos.Delete(regNo); err != nil {
		logger.Warn().Err(err).Int64("regNo", regNo).Msg("Failed to remove student photo")
	}
	logger.Info().Int64("regNo", regNo).Msg("Student deleted")
	return nil
}

// UploadPhoto stores a new profile photo for an existing student
func (s *studentServiceImpl) UploadPhoto(ctx context.Context, regNo int64, r io.Reader) (*domain.Photo, error) {
	if _, err := s.students.GetByRegNo(ctx, regNo); err != nil {
		return nil, err
	}

	url, err := s.photos.Save(regNo, r)
	if err != nil {
		return nil, err
	}
	return &domain.Photo{RegNo: regNo, URL: url}, nil
}

// GetPhoto returns the student's photo, or the default avatar for their gender
func (s *studentServiceImpl) GetPhoto(ctx context.Context, regNo int64) (*domain.Photo, error) {
	student, err := s.students.GetByRegNo(ctx, regNo)
	if err != nil {
		return nil, err
	}
	return &domain.Photo{
		RegNo:     regNo,
		URL:       s.PhotoURL(student),
		IsDefault: !s.photos.Has(regNo),
	}, nil
}

// PhotoURL returns where a student's photo is served from
func (s *studentServiceImpl) PhotoURL(student *models.Student) string {
	return s.photos.URL(student.RegNo, domain.NormalizeGender(student.Gender))
}
