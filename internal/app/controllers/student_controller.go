package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/aerowis/internal/app/models"
	"github.com/yigit/aerowis/internal/app/models/dto"
	"github.com/yigit/aerowis/internal/app/services"
	"github.com/yigit/aerowis/internal/middleware"
	"github.com/yigit/aerowis/internal/pkg/apperrors"
)

// maxPhotoSize caps profile photo uploads
const maxPhotoSize = 10 << 20

// StudentController handles student profiles and photos
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// CreateStudent handles student registration
// @Summary Register a student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=dto.StudentResponse} "Student registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Batch not found"
// @Failure 409 {object} dto.ErrorResponse "Registration number already used"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	student, err := req.ToModel()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	created, err := c.studentService.CreateStudent(ctx, student)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, dto.FromStudent(created, c.studentService.PhotoURL(created)))
}

// GetStudent retrieves a student by registration number
// @Summary Get student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param regNo path int true "Registration number"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{regNo} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	regNo, ok := pathID(ctx, "regNo", "registration number")
	if !ok {
		return
	}

	student, err := c.studentService.GetStudent(ctx, regNo)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.FromStudent(student, c.studentService.PhotoURL(student)))
}

// ListStudents lists students, optionally by batch or search text
// @Summary List students
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param batch_id query int false "Batch ID"
// @Param search query string false "Matches name, registration number or phone"
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentResponse}
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	batchID, ok := optionalQueryID(ctx, "batch_id")
	if !ok {
		return
	}

	students, err := c.studentService.ListStudents(ctx, models.StudentFilter{
		BatchID: batchID,
		Search:  strings.TrimSpace(ctx.Query("search")),
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		out = append(out, dto.FromStudent(&students[i], c.studentService.PhotoURL(&students[i])))
	}
	respond(ctx, http.StatusOK, out)
}

// UpdateStudent applies a partial update
// @Summary Update student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param regNo path int true "Registration number"
// @Param request body dto.UpdateStudentRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student or batch not found"
// @Router /students/{regNo} [patch]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	regNo, ok := pathID(ctx, "regNo", "registration number")
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	student, err := c.studentService.UpdateStudent(ctx, regNo, patch)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.FromStudent(student, c.studentService.PhotoURL(student)))
}

// DeleteStudent deletes a student with their results and payments
// @Summary Delete student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param regNo path int true "Registration number"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{regNo} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	regNo, ok := pathID(ctx, "regNo", "registration number")
	if !ok {
		return
	}

	if err := c.studentService.DeleteStudent(ctx, regNo); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "Student deleted"})
}

// UploadPhoto replaces a student's profile photo
// @Summary Upload student photo
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param regNo path int true "Registration number"
// @Param photo formData file true "Image file"
// @Success 200 {object} dto.APIResponse{data=dto.PhotoResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing or unsupported image"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{regNo}/photo [put]
func (c *StudentController) UploadPhoto(ctx *gin.Context) {
	regNo, ok := pathID(ctx, "regNo", "registration number")
	if !ok {
		return
	}

	file, err := ctx.FormFile("photo")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("photo", "photo file is required"))
		return
	}
	if file.Size > maxPhotoSize {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("photo", "photo must be at most 10 MB"))
		return
	}

	src, err := file.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer src.Close()

	photo, err := c.studentService.UploadPhoto(ctx, regNo, src)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.PhotoResponse{RegNo: photo.RegNo, URL: photo.URL, IsDefault: photo.IsDefault})
}

// GetPhoto returns where the student's photo is served from
// @Summary Get student photo URL
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param regNo path int true "Registration number"
// @Success 200 {object} dto.APIResponse{data=dto.PhotoResponse}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{regNo}/photo [get]
func (c *StudentController) GetPhoto(ctx *gin.Context) {
	regNo, ok := pathID(ctx, "regNo", "registration number")
	if !ok {
		return
	}

	photo, err := c.studentService.GetPhoto(ctx, regNo)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.PhotoResponse{RegNo: photo.RegNo, URL: photo.URL, IsDefault: photo.IsDefault})
}
