package models

// Course is a subject taught at the academy. Its id is a short code chosen by staff.
type Course struct {
	ID   string `json:"course_id" db:"course_id"`
	Name string `json:"course_name" db:"course_name"`
}

// CoursePatch holds the course fields to change
type CoursePatch struct {
	Name *string
}

// Changes maps the set fields to their columns
func (p CoursePatch) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if p.Name != nil {
		changes["course_name"] = *p.Name
	}
	return changes
}
