package models

import "time"

// Batch is a cohort of students that start together
type Batch struct {
	ID           int64      `json:"batch_id" db:"batch_id"`
	Name         string     `json:"batch_name" db:"batch_name"`
	StartDate    *time.Time `json:"start_date" db:"start_date"`
	StudentCount int        `json:"student_count" db:"student_count"` // computed, not stored
}

// BatchPatch holds the batch fields to change; nil fields are left alone
type BatchPatch struct {
	Name      *string
	StartDate *time.Time
}

// Changes maps the set fields to their columns
func (p BatchPatch) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if p.Name != nil {
		changes["batch_name"] = *p.Name
	}
	if p.StartDate != nil {
		changes["start_date"] = *p.StartDate
	}
	return changes
}
