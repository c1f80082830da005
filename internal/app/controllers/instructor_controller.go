package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/aerowis/internal/app/models/dto"
	"github.com/yigit/aerowis/internal/app/services"
	"github.com/yigit/aerowis/internal/middleware"
)

// InstructorController handles instructor operations
type InstructorController struct {
	instructorService services.InstructorService
}

// NewInstructorController creates a new InstructorController
func NewInstructorController(instructorService services.InstructorService) *InstructorController {
	return &InstructorController{instructorService: instructorService}
}

// CreateInstructor handles instructor creation
// @Summary Create instructor
// @Tags instructors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateInstructorRequest true "Instructor information"
// @Success 201 {object} dto.APIResponse{data=dto.InstructorResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Email already used"
// @Router /instructors [post]
func (c *InstructorController) CreateInstructor(ctx *gin.Context) {
	var req dto.CreateInstructorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	instructor, err := c.instructorService.CreateInstructor(ctx, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, dto.FromInstructor(instructor))
}

// GetInstructor retrieves an instructor by ID
// @Summary Get instructor
// @Tags instructors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Instructor ID"
// @Success 200 {object} dto.APIResponse{data=dto.InstructorResponse}
// @Failure 404 {object} dto.ErrorResponse "Instructor not found"
// @Router /instructors/{id} [get]
func (c *InstructorController) GetInstructor(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "instructor ID")
	if !ok {
		return
	}

	instructor, err := c.instructorService.GetInstructor(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.FromInstructor(instructor))
}

// ListInstructors lists instructors by name
// @Summary List instructors
// @Tags instructors
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.InstructorResponse}
// @Router /instructors [get]
func (c *InstructorController) ListInstructors(ctx *gin.Context) {
	instructors, err := c.instructorService.ListInstructors(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.FromInstructors(instructors))
}

// UpdateInstructor applies a partial update
// @Summary Update instructor
// @Tags instructors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Instructor ID"
// @Param request body dto.UpdateInstructorRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.InstructorResponse}
// @Router /instructors/{id} [patch]
func (c *InstructorController) UpdateInstructor(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "instructor ID")
	if !ok {
		return
	}

	var req dto.UpdateInstructorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	instructor, err := c.instructorService.UpdateInstructor(ctx, id, req.ToPatch())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.FromInstructor(instructor))
}

// DeleteInstructor deletes an instructor and their exams
// @Summary Delete instructor
// @Tags instructors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Instructor ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Router /instructors/{id} [delete]
func (c *InstructorController) DeleteInstructor(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "instructor ID")
	if !ok {
		return
	}

	if err := c.instructorService.DeleteInstructor(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "Instructor deleted"})
}
