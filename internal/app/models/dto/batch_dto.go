package dto

import "github.com/yigit/aerowis/internal/app/models"

// BatchResponse represents a batch with its head count
type BatchResponse struct {
	ID           int64   `json:"batch_id" example:"3"`
	Name         string  `json:"batch_name" example:"CPL 2025 A"`
	StartDate    *string `json:"start_date" example:"2025-04-01"`
	StudentCount int     `json:"student_count" example:"24"`
}

// CreateBatchRequest represents batch creation data
type CreateBatchRequest struct {
	Name      string `json:"batch_name" binding:"required,notblank"`
	StartDate string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateBatchRequest carries the batch fields to change
type UpdateBatchRequest struct {
	Name      *string `json:"batch_name" binding:"omitempty,notblank"`
	StartDate *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
}

// ToModel converts the request into a batch
func (r CreateBatchRequest) ToModel() (*models.Batch, error) {
	start, err := parseOptionalDate("start_date", r.StartDate)
	if err != nil {
		return nil, err
	}
	return &models.Batch{Name: r.Name, StartDate: start}, nil
}

// ToPatch converts the request into a batch patch
func (r UpdateBatchRequest) ToPatch() (models.BatchPatch, error) {
	start, err := parseDatePatch("start_date", r.StartDate)
	if err != nil {
		return models.BatchPatch{}, err
	}
	return models.BatchPatch{Name: r.Name, StartDate: start}, nil
}

// FromBatch converts a batch to its response
func FromBatch(b *models.Batch) BatchResponse {
	return BatchResponse{
		ID:           b.ID,
		Name:         b.Name,
		StartDate:    formatOptionalDate(b.StartDate),
		StudentCount: b.StudentCount,
	}
}

// FromBatches converts a list of batches
func FromBatches(batches []models.Batch) []BatchResponse {
	out := make([]BatchResponse, 0, len(batches))
	for i := range batches {
		out = append(out, FromBatch(&batches[i]))
	}
	return out
}
