package models

import "github.com/yigit/aerowis/internal/pkg/helpers"

// Instructor conducts exams
type Instructor struct {
	ID    int64  `json:"instructor_id" db:"instructor_id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"` // optional, unique when set
	Phone string `json:"phone" db:"phone"`
}

// InstructorPatch holds the instructor fields to change
type InstructorPatch struct {
	Name  *string
	Email *string
	Phone *string
}

// Changes maps the set fields to their columns
func (p InstructorPatch) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if p.Name != nil {
		changes["name"] = *p.Name
	}
	if p.Email != nil {
		changes["email"] = helpers.NullIfEmpty(*p.Email)
	}
	if p.Phone != nil {
		changes["phone"] = helpers.NullIfEmpty(*p.Phone)
	}
	return changes
}
