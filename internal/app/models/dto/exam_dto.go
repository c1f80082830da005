package dto

import "github.com/yigit/aerowis/internal/app/models"

// ExamResponse represents an exam with the names of what it references
type ExamResponse struct {
	ID             int64  `json:"exam_id" example:"12"`
	Name           string `json:"exam_name" example:"Navigation Mid-term"`
	CourseID       string `json:"course_id" example:"NAV"`
	CourseName     string `json:"course_name,omitempty"`
	BatchID        int64  `json:"batch_id" example:"3"`
	BatchName      string `json:"batch_name,omitempty"`
	InstructorID   int64  `json:"instructor_id" example:"1"`
	InstructorName string `json:"instructor_name,omitempty"`
	MaxScore       int    `json:"max_score" example:"100"`
	CutoffScore    int    `json:"cutoff_score" example:"40"`
	ExamDate       string `json:"exam_date" example:"2025-06-10"`
}

// CreateExamRequest represents exam creation data
type CreateExamRequest struct {
	Name         string `json:"exam_name" binding:"required,notblank"`
	CourseID     string `json:"course_id" binding:"required,notblank"`
	BatchID      int64  `json:"batch_id" binding:"required,gt=0"`
	InstructorID int64  `json:"instructor_id" binding:"required,gt=0"`
	MaxScore     int    `json:"max_score" binding:"required,gt=0"`
	CutoffScore  int    `json:"cutoff_score" binding:"gte=0,ltefield=MaxScore"`
	ExamDate     string `json:"exam_date" binding:"required,datetime=2006-01-02"`
}

// UpdateExamRequest carries the exam fields to change. The merged exam is validated again.
type UpdateExamRequest struct {
	Name         *string `json:"exam_name" binding:"omitempty,notblank"`
	CourseID     *string `json:"course_id" binding:"omitempty,notblank"`
	BatchID      *int64  `json:"batch_id" binding:"omitempty,gt=0"`
	InstructorID *int64  `json:"instructor_id" binding:"omitempty,gt=0"`
	MaxScore     *int    `json:"max_score" binding:"omitempty,gt=0"`
	CutoffScore  *int    `json:"cutoff_score" binding:"omitempty,gte=0"`
	ExamDate     *string `json:"exam_date" binding:"omitempty,datetime=2006-01-02"`
}

// ToModel converts the request into an exam
func (r CreateExamRequest) ToModel() (*models.Exam, error) {
	date, err := parseDate("exam_date", r.ExamDate)
	if err != nil {
		return nil, err
	}
	return &models.Exam{
		Name:         r.Name,
		CourseID:     r.CourseID,
		BatchID:      r.BatchID,
		InstructorID: r.InstructorID,
		MaxScore:     r.MaxScore,
		CutoffScore:  r.CutoffScore,
		ExamDate:     date,
	}, nil
}

// ToPatch converts the request into an exam patch
func (r UpdateExamRequest) ToPatch() (models.ExamPatch, error) {
	date, err := parseDatePatch("exam_date", r.ExamDate)
	if err != nil {
		return models.ExamPatch{}, err
	}
	return models.ExamPatch{
		Name:         r.Name,
		CourseID:     r.CourseID,
		BatchID:      r.BatchID,
		InstructorID: r.InstructorID,
		MaxScore:     r.MaxScore,
		CutoffScore:  r.CutoffScore,
		ExamDate:     date,
	}, nil
}

// FromExam converts an exam to its response
func FromExam(e *models.Exam) ExamResponse {
	return ExamResponse{
		ID:             e.ID,
		Name:           e.Name,
		CourseID:       e.CourseID,
		CourseName:     e.CourseName,
		BatchID:        e.BatchID,
		BatchName:      e.BatchName,
		InstructorID:   e.InstructorID,
		InstructorName: e.InstructorName,
		MaxScore:       e.MaxScore,
		CutoffScore:    e.CutoffScore,
		ExamDate:       formatDate(e.ExamDate),
	}
}

// FromExams converts a list of exams
func FromExams(exams []models.Exam) []ExamResponse {
	out := make([]ExamResponse, 0, len(exams))
	for i := range exams {
		out = append(out, FromExam(&exams[i]))
	}
	return out
}
