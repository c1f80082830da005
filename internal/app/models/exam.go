package models

import "time"

// Exam is an assessment of one batch in one course
type Exam struct {
	ID           int64     `json:"exam_id" db:"exam_id"`
	Name         string    `json:"exam_name" db:"exam_name"`
	CourseID     string    `json:"course_id" db:"course_id"`
	BatchID      int64     `json:"batch_id" db:"batch_id"`
	InstructorID int64     `json:"instructor_id" db:"instructor_id"`
	MaxScore     int       `json:"max_score" db:"max_score"`
	CutoffScore  int       `json:"cutoff_score" db:"cutoff_score"`
	ExamDate     time.Time `json:"exam_date" db:"exam_date"`

	// Joined names
	CourseName     string `json:"course_name,omitempty" db:"course_name"`
	BatchName      string `json:"batch_name,omitempty" db:"batch_name"`
	InstructorName string `json:"instructor_name,omitempty" db:"instructor_name"`
}

// ExamFilter narrows exam listings
type ExamFilter struct {
	BatchID  *int64
	CourseID string
}

// ExamPatch holds the exam fields to change
type ExamPatch struct {
	Name         *string
	CourseID     *string
	BatchID      *int64
	InstructorID *int64
	MaxScore     *int
	CutoffScore  *int
	ExamDate     *time.Time
}

// Changes maps the set fields to their columns
func (p ExamPatch) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if p.Name != nil {
		changes["exam_name"] = *p.Name
	}
	if p.CourseID != nil {
		changes["course_id"] = *p.CourseID
	}
	if p.BatchID != nil {
		changes["batch_id"] = *p.BatchID
	}
	if p.InstructorID != nil {
		changes["instructor_id"] = *p.InstructorID
	}
	if p.MaxScore != nil {
		changes["max_score"] = *p.MaxScore
	}
	if p.CutoffScore != nil {
		changes["cutoff_score"] = *p.CutoffScore
	}
	if p.ExamDate != nil {
		changes["exam_date"] = *p.ExamDate
	}
	return changes
}

// Apply returns a copy of e with the patch merged in
func (p ExamPatch) Apply(e Exam) Exam {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.CourseID != nil {
		e.CourseID = *p.CourseID
	}
	if p.BatchID != nil {
		e.BatchID = *p.BatchID
	}
	if p.InstructorID != nil {
		e.InstructorID = *p.InstructorID
	}
	if p.MaxScore != nil {
		e.MaxScore = *p.MaxScore
	}
	if p.CutoffScore != nil {
		e.CutoffScore = *p.CutoffScore
	}
	if p.ExamDate != nil {
		e.ExamDate = *p.ExamDate
	}
	return e
}
