package dto

import (
	"encoding/json"

	"github.com/yigit/aerowis/internal/app/models"
	"github.com/yigit/aerowis/internal/domain"
	"github.com/yigit/aerowis/internal/pkg/apperrors"
)

// OptionalInt is a JSON integer that remembers whether its key was sent.
// An explicit null sets it with a nil Value.
type OptionalInt struct {
	Set   bool
	Value *int
}

// UnmarshalJSON is only called when the key is present, null included
func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// SaveMarkRequest records a mark. An explicit null obtained_mark marks the student absent.
type SaveMarkRequest struct {
	ObtainedMark OptionalInt `json:"obtained_mark" swaggertype:"integer" extensions:"x-nullable"`
}

// Mark returns the submitted mark; nil means absent. The key itself is required.
func (r SaveMarkRequest) Mark() (*int, error) {
	if !r.ObtainedMark.Set {
		return nil, apperrors.NewValidationError("obtained_mark", "obtained_mark is required, send null to record an absence")
	}
	return r.ObtainedMark.Value, nil
}

// ResultResponse represents a student's result in one exam
type ResultResponse struct {
	ID                 int64               `json:"result_id" example:"40"`
	StudentID          int64               `json:"student_id" example:"1001"`
	StudentName        string              `json:"student_name,omitempty"`
	ExamID             int64               `json:"exam_id" example:"12"`
	ExamName           string              `json:"exam_name,omitempty"`
	ExamDate           string              `json:"exam_date,omitempty"`
	MaxScore           int                 `json:"max_score,omitempty"`
	ObtainedMark       *int                `json:"obtained_mark" example:"72"`
	Status             domain.ResultStatus `json:"status" example:"Pass"`
	PerformancePercent *float64            `json:"performance_percent,omitempty"`
}

// FromResult converts a result to its response
func FromResult(r *models.Result) ResultResponse {
	return ResultResponse{
		ID:                 r.ID,
		StudentID:          r.StudentID,
		StudentName:        r.StudentName,
		ExamID:             r.ExamID,
		ExamName:           r.ExamName,
		ExamDate:           formatDate(r.ExamDate),
		MaxScore:           r.MaxScore,
		ObtainedMark:       r.Mark,
		Status:             r.Status,
		PerformancePercent: domain.PerformancePercent(r.Mark, r.MaxScore),
	}
}
