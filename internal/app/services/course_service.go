package services

import (
	"context"
	"strings"

	"github.com/yigit/aerowis/internal/app/models"
	"github.com/yigit/aerowis/internal/pkg/apperrors"
)

// CourseService defines the interface for course operations
type CourseService interface {
	CreateCourse(ctx context.Context, c *models.Course) (*models.Course, error)
	GetCourse(ctx context.Context, id string) (*models.Course, error)
	ListCourses(ctx context.Context) ([]models.Course, error)
	UpdateCourse(ctx context.Context, id string, patch models.CoursePatch) (*models.Course, error)
	DeleteCourse(ctx context.Context, id string) error
}

// courseServiceImpl implements CourseService
type courseServiceImpl struct {
	courses CourseStore
}

// NewCourseService creates a new CourseService
func NewCourseService(courses CourseStore) CourseService {
	return &courseServiceImpl{courses: courses}
}

// CreateCourse creates a course under a staff-chosen ID
func (s *courseServiceImpl) CreateCourse(ctx context.Context, c *models.Course) (*models.Course, error) {
	c.ID = strings.TrimSpace(c.ID)
	c.Name = strings.TrimSpace(c.Name)
	if c.ID == "" {
		return nil, apperrors.NewValidationError("course_id", "course_id is required")
	}
	if c.Name == "" {
		return nil, apperrors.NewValidationError("course_name", "course_name is required")
	}

	if err := s.courses.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetCourse retrieves a course
func (s *courseServiceImpl) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	return s.courses.GetByID(ctx, id)
}

// ListCourses lists courses by name
func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]models.Course, error) {
	return s.courses.List(ctx)
}

// UpdateCourse renames a course
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id string, patch models.CoursePatch) (*models.Course, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("course_name", "course_name cannot be empty")
		}
		patch.Name = &name
	}

	if err := s.courses.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return s.courses.GetByID(ctx, id)
}

// DeleteCourse deletes a course and its exams
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id string) error {
	return s.courses.Delete(ctx, id)
}
