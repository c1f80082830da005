package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/aerowis/internal/app/models"
	"github.com/yigit/aerowis/internal/app/models/dto"
	"github.com/yigit/aerowis/internal/app/services"
	"github.com/yigit/aerowis/internal/middleware"
	"github.com/yigit/aerowis/internal/pkg/helpers"
)

// FinanceController handles fee payments and their receipts
type FinanceController struct {
	financeService services.FinanceService
}

// NewFinanceController creates a new FinanceController
func NewFinanceController(financeService services.FinanceService) *FinanceController {
	return &FinanceController{financeService: financeService}
}

// receiptID reads the receipt id from the catch-all path segment ("/25-26/001")
func receiptID(ctx *gin.Context) string {
	return strings.Trim(ctx.Param("receiptId"), "/")
}

// RecordPayment records a payment and issues the next receipt of the current financial year
// @Summary Record payment
// @Tags finance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param regNo path int true "Registration number"
// @Param request body dto.RecordPaymentRequest true "Payment"
// @Success 201 {object} dto.APIResponse{data=dto.PaymentResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid payment or student has no address"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Receipt sequence is corrupted"
// @Router /students/{regNo}/payments [post]
func (c *FinanceController) RecordPayment(ctx *gin.Context) {
	regNo, ok := pathID(ctx, "regNo", "registration number")
	if !ok {
		return
	}

	var req dto.RecordPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	payment, err := req.ToModel(regNo)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	record, err := c.financeService.RecordPayment(ctx, payment)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, dto.FromPayment(record))
}

// ListStudentPayments lists a student's payments, newest first
// @Summary List payments of a student
// @Tags finance
// @Produce json
// @Security BearerAuth
// @Param regNo path int true "Registration number"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaymentListResponse}
// @Router /students/{regNo}/payments [get]
func (c *FinanceController) ListStudentPayments(ctx *gin.Context) {
	regNo, ok := pathID(ctx, "regNo", "registration number")
	if !ok {
		return
	}
	c.listPayments(ctx, models.FinanceFilter{StudentID: &regNo})
}

// ListPayments lists payments, optionally by student or financial year
// @Summary List payments
// @Tags finance
// @Produce json
// @Security BearerAuth
// @Param student_id query int false "Registration number"
// @Param fy query string false "Financial year, e.g. 25-26"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaymentListResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid financial year"
// @Router /finance [get]
func (c *FinanceController) ListPayments(ctx *gin.Context) {
	studentID, ok := optionalQueryID(ctx, "student_id")
	if !ok {
		return
	}
	c.listPayments(ctx, models.FinanceFilter{
		StudentID:     studentID,
		FinancialYear: strings.TrimSpace(ctx.Query("fy")),
	})
}

func (c *FinanceController) listPayments(ctx *gin.Context, filter models.FinanceFilter) {
	page, size := helpers.ParsePaginationParams(ctx)
	filter.Offset, filter.Limit = helpers.CalculateOffsetLimit(page, size)

	records, total, err := c.financeService.ListPayments(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.PaymentListResponse{
		Payments:   dto.FromPayments(records),
		Pagination: helpers.NewPaginationInfo(total, page, size),
	})
}

// FinancialSummary totals a student's payments
// @Summary Student financial summary
// @Tags finance
// @Produce json
// @Security BearerAuth
// @Param regNo path int true "Registration number"
// @Success 200 {object} dto.APIResponse{data=dto.FinancialSummaryResponse}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{regNo}/financial-summary [get]
func (c *FinanceController) FinancialSummary(ctx *gin.Context) {
	regNo, ok := pathID(ctx, "regNo", "registration number")
	if !ok {
		return
	}

	summary, err := c.financeService.FinancialSummary(ctx, regNo)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.FromFinancialSummary(summary))
}

// UpdatePayment corrects a payment. The receipt id never changes.
// @Summary Update payment
// @Tags finance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param receiptId path string true "Receipt ID, e.g. 25-26/001"
// @Param request body dto.UpdatePaymentRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.PaymentResponse}
// @Failure 404 {object} dto.ErrorResponse "Receipt not found"
// @Router /finance/receipts/{receiptId} [patch]
func (c *FinanceController) UpdatePayment(ctx *gin.Context) {
	var req dto.UpdatePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	record, err := c.financeService.UpdatePayment(ctx, receiptID(ctx), patch)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.FromPayment(record))
}

// DeletePayment deletes a payment
// @Summary Delete payment
// @Tags finance
// @Produce json
// @Security BearerAuth
// @Param receiptId path string true "Receipt ID, e.g. 25-26/001"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Receipt not found"
// @Router /finance/receipts/{receiptId} [delete]
func (c *FinanceController) DeletePayment(ctx *gin.Context) {
	if err := c.financeService.DeletePayment(ctx, receiptID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "Payment deleted"})
}
