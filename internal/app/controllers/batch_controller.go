package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/aerowis/internal/app/models/dto"
	"github.com/yigit/aerowis/internal/app/services"
	"github.com/yigit/aerowis/internal/middleware"
)

// BatchController handles batch operations
type BatchController struct {
	batchService services.BatchService
}

// NewBatchController creates a new BatchController
func NewBatchController(batchService services.BatchService) *BatchController {
	return &BatchController{batchService: batchService}
}

// CreateBatch handles batch creation
// @Summary Create a batch
// @Tags batches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateBatchRequest true "Batch information"
// @Success 201 {object} dto.APIResponse{data=dto.BatchResponse} "Batch created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Batch name already used"
// @Router /batches [post]
func (c *BatchController) CreateBatch(ctx *gin.Context) {
	var req dto.CreateBatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	batch, err := req.ToModel()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	created, err := c.batchService.CreateBatch(ctx, batch)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, dto.FromBatch(created))
}

// GetBatch retrieves a batch by ID
// @Summary Get batch by ID
// @Tags batches
// @Produce json
// @Security BearerAuth
// @Param id path int true "Batch ID"
// @Success 200 {object} dto.APIResponse{data=dto.BatchResponse}
// @Failure 404 {object} dto.ErrorResponse "Batch not found"
// @Router /batches/{id} [get]
func (c *BatchController) GetBatch(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "batch ID")
	if !ok {
		return
	}

	batch, err := c.batchService.GetBatch(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.FromBatch(batch))
}

// ListBatches lists batches, newest first
// @Summary List batches
// @Tags batches
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.BatchResponse}
// @Router /batches [get]
func (c *BatchController) ListBatches(ctx *gin.Context) {
	batches, err := c.batchService.ListBatches(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.FromBatches(batches))
}

// UpdateBatch applies a partial update
// @Summary Update batch
// @Tags batches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Batch ID"
// @Param request body dto.UpdateBatchRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.BatchResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Batch not found"
// @Router /batches/{id} [patch]
func (c *BatchController) UpdateBatch(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "batch ID")
	if !ok {
		return
	}

	var req dto.UpdateBatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	batch, err := c.batchService.UpdateBatch(ctx, id, patch)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.FromBatch(batch))
}

// DeleteBatch deletes a batch without students
// @Summary Delete batch
// @Tags batches
// @Produce json
// @Security BearerAuth
// @Param id path int true "Batch ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Batch not found"
// @Failure 409 {object} dto.ErrorResponse "Batch has students"
// @Router /batches/{id} [delete]
func (c *BatchController) DeleteBatch(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "batch ID")
	if !ok {
		return
	}

	if err := c.batchService.DeleteBatch(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "Batch deleted"})
}
