package dto

import "github.com/yigit/aerowis/internal/app/models"

// CourseResponse represents a course
type CourseResponse struct {
	ID   string `json:"course_id" example:"MET"`
	Name string `json:"course_name" example:"Aviation Meteorology"`
}

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	ID   string `json:"course_id" binding:"required,notblank"`
	Name string `json:"course_name" binding:"required,notblank"`
}

// UpdateCourseRequest renames a course
type UpdateCourseRequest struct {
	Name *string `json:"course_name" binding:"omitempty,notblank"`
}

// ToModel converts the request into a course
func (r CreateCourseRequest) ToModel() *models.Course {
	return &models.Course{ID: r.ID, Name: r.Name}
}

// ToPatch converts the request into a course patch
func (r UpdateCourseRequest) ToPatch() models.CoursePatch {
	return models.CoursePatch{Name: r.Name}
}

// FromCourses converts a list of courses
func FromCourses(courses []models.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, CourseResponse{ID: c.ID, Name: c.Name})
	}
	return out
}
