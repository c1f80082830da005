package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/aerowis/internal/app/models"
	"github.com/yigit/aerowis/internal/app/models/dto"
	"github.com/yigit/aerowis/internal/app/services"
	"github.com/yigit/aerowis/internal/middleware"
)

// ExamController handles exams and the marks recorded against them
type ExamController struct {
	examService   services.ExamService
	resultService services.ResultService
}

// NewExamController creates a new ExamController
func NewExamController(examService services.ExamService, resultService services.ResultService) *ExamController {
	return &ExamController{
		examService:   examService,
		resultService: resultService,
	}
}

// CreateExam handles exam creation
// @Summary Create exam
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateExamRequest true "Exam information"
// @Success 201 {object} dto.APIResponse{data=dto.ExamResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid scores or missing fields"
// @Failure 404 {object} dto.ErrorResponse "Course, batch or instructor not found"
// @Router /exams [post]
func (c *ExamController) CreateExam(ctx *gin.Context) {
	var req dto.CreateExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	exam, err := req.ToModel()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	created, err := c.examService.CreateExam(ctx, exam)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, dto.FromExam(created))
}

// GetExam retrieves an exam by ID
// @Summary Get exam
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.APIResponse{data=dto.ExamResponse}
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /exams/{id} [get]
func (c *ExamController) GetExam(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "exam ID")
	if !ok {
		return
	}

	exam, err := c.examService.GetExam(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.FromExam(exam))
}

// ListExams lists exams, most recent first
// @Summary List exams
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param batch_id query int false "Batch ID"
// @Param course_id query string false "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ExamResponse}
// @Router /exams [get]
func (c *ExamController) ListExams(ctx *gin.Context) {
	batchID, ok := optionalQueryID(ctx, "batch_id")
	if !ok {
		return
	}

	exams, err := c.examService.ListExams(ctx, models.ExamFilter{
		BatchID:  batchID,
		CourseID: strings.TrimSpace(ctx.Query("course_id")),
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.FromExams(exams))
}

// UpdateExam applies a partial update. Scores are checked against the merged exam.
// @Summary Update exam
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Param request body dto.UpdateExamRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.ExamResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid scores"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /exams/{id} [patch]
func (c *ExamController) UpdateExam(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "exam ID")
	if !ok {
		return
	}

	var req dto.UpdateExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	exam, err := c.examService.UpdateExam(ctx, id, patch)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.FromExam(exam))
}

// DeleteExam deletes an exam and its results
// @Summary Delete exam
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Router /exams/{id} [delete]
func (c *ExamController) DeleteExam(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "exam ID")
	if !ok {
		return
	}

	if err := c.examService.DeleteExam(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "Exam deleted"})
}

// SaveMark records a student's mark; a null mark records an absence
// @Summary Save mark
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Param regNo path int true "Registration number"
// @Param request body dto.SaveMarkRequest true "Obtained mark or null"
// @Success 200 {object} dto.APIResponse{data=dto.ResultResponse}
// @Failure 400 {object} dto.ErrorResponse "Mark out of range"
// @Failure 404 {object} dto.ErrorResponse "Exam or student not found"
// @Router /exams/{id}/results/{regNo} [put]
func (c *ExamController) SaveMark(ctx *gin.Context) {
	examID, ok := pathID(ctx, "id", "exam ID")
	if !ok {
		return
	}
	regNo, ok := pathID(ctx, "regNo", "registration number")
	if !ok {
		return
	}

	var req dto.SaveMarkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	mark, err := req.Mark()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	result, err := c.resultService.SaveMark(ctx, regNo, examID, mark)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.FromResult(result))
}

// GetMark returns a student's result in an exam
// @Summary Get result of a student in an exam
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Param regNo path int true "Registration number"
// @Success 200 {object} dto.APIResponse{data=dto.ResultResponse}
// @Failure 404 {object} dto.ErrorResponse "Result not found"
// @Router /exams/{id}/results/{regNo} [get]
func (c *ExamController) GetMark(ctx *gin.Context) {
	examID, ok := pathID(ctx, "id", "exam ID")
	if !ok {
		return
	}
	regNo, ok := pathID(ctx, "regNo", "registration number")
	if !ok {
		return
	}

	result, err := c.resultService.FindResult(ctx, regNo, examID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.FromResult(result))
}

// ListResults returns every result recorded for an exam
// @Summary List exam results
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ResultResponse}
// @Router /exams/{id}/results [get]
func (c *ExamController) ListResults(ctx *gin.Context) {
	examID, ok := pathID(ctx, "id", "exam ID")
	if !ok {
		return
	}

	results, err := c.resultService.ListByExam(ctx, examID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := make([]dto.ResultResponse, 0, len(results))
	for i := range results {
		out = append(out, dto.FromResult(&results[i]))
	}
	respond(ctx, http.StatusOK, out)
}
