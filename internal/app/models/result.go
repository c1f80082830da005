package models

import (
	"time"

	"github.com/yigit/aerowis/internal/domain"
)

// Result is a student's mark in one exam. A nil mark means the student was absent.
type Result struct {
	ID        int64               `json:"result_id" db:"result_id"`
	StudentID int64               `json:"student_id" db:"student_id"`
	ExamID    int64               `json:"exam_id" db:"exam_id"`
	Mark      *int                `json:"obtained_mark" db:"obtained_mark"`
	Status    domain.ResultStatus `json:"status" db:"status"`

	// Joined for listings
	StudentName string    `json:"student_name,omitempty" db:"student_name"`
	ExamName    string    `json:"exam_name,omitempty" db:"exam_name"`
	ExamDate    time.Time `json:"exam_date,omitempty" db:"exam_date"`
	MaxScore    int       `json:"max_score,omitempty" db:"max_score"`
	CutoffScore int       `json:"cutoff_score,omitempty" db:"cutoff_score"`
}

// ToStudentResult converts a result joined with its exam for per-student aggregation
func (r Result) ToStudentResult() domain.StudentResult {
	return domain.StudentResult{
		ResultID:    r.ID,
		ExamID:      r.ExamID,
		ExamName:    r.ExamName,
		ExamDate:    r.ExamDate,
		MaxScore:    r.MaxScore,
		CutoffScore: r.CutoffScore,
		Mark:        r.Mark,
		Status:      r.Status,
	}
}

// ToScoredResult converts a result joined with its student for exam aggregation
func (r Result) ToScoredResult() domain.ScoredResult {
	return domain.ScoredResult{
		StudentID:   r.StudentID,
		StudentName: r.StudentName,
		Mark:        r.Mark,
		Status:      r.Status,
	}
}
