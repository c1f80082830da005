package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/aerowis/internal/app/models/dto"
	"github.com/yigit/aerowis/internal/app/services"
	"github.com/yigit/aerowis/internal/middleware"
	"github.com/yigit/aerowis/internal/pkg/export"
)

// ReportController serves the read-only projections and workbook exports
type ReportController struct {
	reportService  services.ReportService
	studentService services.StudentService
}

// NewReportController creates a new ReportController
func NewReportController(reportService services.ReportService, studentService services.StudentService) *ReportController {
	return &ReportController{
		reportService:  reportService,
		studentService: studentService,
	}
}

// ExamReport returns the exam's batch roster with results and statistics
// @Summary Exam report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.APIResponse{data=dto.ExamReportResponse}
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /exams/{id}/report [get]
func (c *ReportController) ExamReport(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "exam ID")
	if !ok {
		return
	}

	report, err := c.reportService.ExamReport(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.FromExamReport(report))
}

// StudentReport returns a student's results and summaries
// @Summary Student report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param regNo path int true "Registration number"
// @Param month query string false "Month filter, YYYY-MM"
// @Success 200 {object} dto.APIResponse{data=dto.StudentReportResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid month"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{regNo}/report [get]
func (c *ReportController) StudentReport(ctx *gin.Context) {
	regNo, ok := pathID(ctx, "regNo", "registration number")
	if !ok {
		return
	}

	report, err := c.reportService.StudentReport(ctx, regNo, ctx.Query("month"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.FromStudentReport(report, c.studentService.PhotoURL(&report.Student)))
}

// Receipt returns a payment prepared for printing
// @Summary Get receipt
// @Tags finance
// @Produce json
// @Security BearerAuth
// @Param receiptId path string true "Receipt ID, e.g. 25-26/001"
// @Success 200 {object} dto.APIResponse{data=dto.ReceiptResponse}
// @Failure 404 {object} dto.ErrorResponse "Receipt not found"
// @Router /finance/receipts/{receiptId} [get]
func (c *ReportController) Receipt(ctx *gin.Context) {
	receipt, err := c.reportService.Receipt(ctx, receiptID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.FromReceipt(receipt))
}

// Ledger lists a financial year's receipts in order
// @Summary Financial year ledger
// @Tags finance
// @Produce json
// @Security BearerAuth
// @Param fy path string true "Financial year, e.g. 25-26"
// @Success 200 {object} dto.APIResponse{data=dto.LedgerResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid financial year"
// @Router /finance/ledger/{fy} [get]
func (c *ReportController) Ledger(ctx *gin.Context) {
	ledger, err := c.reportService.Ledger(ctx, ctx.Param("fy"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.FromLedger(ledger))
}

// ExportExam downloads the exam report as a workbook
// @Summary Export exam results
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Success 200 {file} file
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /exams/{id}/export [get]
func (c *ReportController) ExportExam(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "exam ID")
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := c.reportService.ExportExam(ctx, id, &buf); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	sendWorkbook(ctx, fmt.Sprintf("exam_%d.xlsx", id), &buf)
}

// ExportLedger downloads a financial year's ledger as a workbook
// @Summary Export ledger
// @Tags finance
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param fy path string true "Financial year, e.g. 25-26"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse "Invalid financial year"
// @Router /finance/ledger/{fy}/export [get]
func (c *ReportController) ExportLedger(ctx *gin.Context) {
	fy := ctx.Param("fy")

	var buf bytes.Buffer
	if err := c.reportService.ExportLedger(ctx, fy, &buf); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	sendWorkbook(ctx, "ledger_"+strings.ReplaceAll(fy, "-", "_")+".xlsx", &buf)
}

func sendWorkbook(ctx *gin.Context, filename string, buf *bytes.Buffer) {
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, export.XLSXContentType, buf.Bytes())
}
