package dto

import "github.com/yigit/aerowis/internal/app/models"

// InstructorResponse represents an instructor
type InstructorResponse struct {
	ID    int64  `json:"instructor_id" example:"1"`
	Name  string `json:"name" example:"Capt. R. Rao"`
	Email string `json:"email,omitempty" example:"rao@academy.in"`
	Phone string `json:"phone,omitempty"`
}

// CreateInstructorRequest represents instructor creation data
type CreateInstructorRequest struct {
	Name  string `json:"name" binding:"required,notblank"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
}

// UpdateInstructorRequest carries the instructor fields to change
type UpdateInstructorRequest struct {
	Name  *string `json:"name" binding:"omitempty,notblank"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// ToModel converts the request into an instructor
func (r CreateInstructorRequest) ToModel() *models.Instructor {
	return &models.Instructor{Name: r.Name, Email: r.Email, Phone: r.Phone}
}

// ToPatch converts the request into an instructor patch
func (r UpdateInstructorRequest) ToPatch() models.InstructorPatch {
	return models.InstructorPatch{Name: r.Name, Email: r.Email, Phone: r.Phone}
}

// FromInstructor converts an instructor to its response
func FromInstructor(in *models.Instructor) InstructorResponse {
	return InstructorResponse{ID: in.ID, Name: in.Name, Email: in.Email, Phone: in.Phone}
}

// FromInstructors converts a list of instructors
func FromInstructors(instructors []models.Instructor) []InstructorResponse {
	out := make([]InstructorResponse, 0, len(instructors))
	for i := range instructors {
		out = append(out, FromInstructor(&instructors[i]))
	}
	return out
}
