package services

import (
	"context"
	"strings"

	"github.com/yigit/aerowis/internal/app/models"
	"github.com/yigit/aerowis/internal/pkg/apperrors"
)

// BatchService defines the interface for batch operations
type BatchService interface {
	CreateBatch(ctx context.Context, batch *models.Batch) (*models.Batch, error)
	GetBatch(ctx context.Context, id int64) (*models.Batch, error)
	ListBatches(ctx context.Context) ([]models.Batch, error)
	UpdateBatch(ctx context.Context, id int64, patch models.BatchPatch) (*models.Batch, error)
	DeleteBatch(ctx context.Context, id int64) error
}

// batchServiceImpl implements BatchService
type batchServiceImpl struct {
	batches BatchStore
}

// NewBatchService creates a new BatchService
func NewBatchService(batches BatchStore) BatchService {
	return &batchServiceImpl{batches: batches}
}

// CreateBatch creates a batch and returns it as stored
func (s *batchServiceImpl) CreateBatch(ctx context.Context, batch *models.Batch) (*models.Batch, error) {
	batch.Name = strings.TrimSpace(batch.Name)
	if batch.Name == "" {
		return nil, apperrors.NewValidationError("batch_name", "batch_name is required")
	}

	if err := s.batches.Create(ctx, batch); err != nil {
		return nil, err
	}
	return s.batches.GetByID(ctx, batch.ID)
}

// GetBatch retrieves a batch with its student count
func (s *batchServiceImpl) GetBatch(ctx context.Context, id int64) (*models.Batch, error) {
	return s.batches.GetByID(ctx, id)
}

// ListBatches lists all batches
func (s *batchServiceImpl) ListBatches(ctx context.Context) ([]models.Batch, error) {
	return s.batches.List(ctx)
}

// UpdateBatch applies a partial update
func (s *batchServiceImpl) UpdateBatch(ctx context.Context, id int64, patch models.BatchPatch) (*models.Batch, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("batch_name", "batch_name cannot be empty")
		}
		patch.Name = &name
	}

	if err := s.batches.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return s.batches.GetByID(ctx, id)
}

// DeleteBatch deletes a batch that has no students
func (s *batchServiceImpl) DeleteBatch(ctx context.Context, id int64) error {
	return s.batches.Delete(ctx, id)
}
