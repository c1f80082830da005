package services

import (
	"context"
	"strings"

	"github.com/yigit/aerowis/internal/app/models"
	"github.com/yigit/aerowis/internal/pkg/apperrors"
	"github.com/yigit/aerowis/internal/pkg/validation"
)

// InstructorService defines the interface for instructor operations
type InstructorService interface {
	CreateInstructor(ctx context.Context, in *models.Instructor) (*models.Instructor, error)
	GetInstructor(ctx context.Context, id int64) (*models.Instructor, error)
	ListInstructors(ctx context.Context) ([]models.Instructor, error)
	UpdateInstructor(ctx context.Context, id int64, patch models.InstructorPatch) (*models.Instructor, error)
	DeleteInstructor(ctx context.Context, id int64) error
}

// instructorServiceImpl implements InstructorService
type instructorServiceImpl struct {
	instructors InstructorStore
}

// NewInstructorService creates a new InstructorService
func NewInstructorService(instructors InstructorStore) InstructorService {
	return &instructorServiceImpl{instructors: instructors}
}

func validateEmail(email string) error {
	if email == "" {
		return nil
	}
	if err := validation.Validator().Var(email, "email"); err != nil {
		return apperrors.NewValidationError("email", "email must be a valid email address")
	}
	return nil
}

// CreateInstructor creates an instructor
func (s *instructorServiceImpl) CreateInstructor(ctx context.Context, in *models.Instructor) (*models.Instructor, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" {
		return nil, apperrors.NewValidationError("name", "name is required")
	}
	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}

	if err := s.instructors.Create(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

// GetInstructor retrieves an instructor
func (s *instructorServiceImpl) GetInstructor(ctx context.Context, id int64) (*models.Instructor, error) {
	return s.instructors.GetByID(ctx, id)
}

// ListInstructors lists instructors by name
func (s *instructorServiceImpl) ListInstructors(ctx context.Context) ([]models.Instructor, error) {
	return s.instructors.List(ctx)
}

// UpdateInstructor applies a partial update
func (s *instructorServiceImpl) UpdateInstructor(ctx context.Context, id int64, patch models.InstructorPatch) (*models.Instructor, error) {
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

	if err := s.instructors.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return s.instructors.GetByID(ctx, id)
}

// DeleteInstructor deletes an instructor and their exams
func (s *instructorServiceImpl) DeleteInstructor(ctx context.Context, id int64) error {
	return s.instructors.Delete(ctx, id)
}
