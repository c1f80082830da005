package dto

import (
	"github.com/yigit/aerowis/internal/app/models"
	"github.com/yigit/aerowis/internal/domain"
	"github.com/yigit/aerowis/internal/pkg/helpers"
)

// RecordPaymentRequest represents a fee payment. The receipt id is assigned on save.
type RecordPaymentRequest struct {
	Amount        int64  `json:"amount" binding:"required,gt=0" example:"15000"`
	Type          string `json:"type" binding:"required,notblank" example:"Tuition"`
	PaymentMethod string `json:"payment_method" binding:"required,payment_method" example:"UPI"`
	PaymentDate   string `json:"payment_date" binding:"required,datetime=2006-01-02" example:"2025-04-02"`
}

// UpdatePaymentRequest carries the payment fields to change
type UpdatePaymentRequest struct {
	Amount        *int64  `json:"amount" binding:"omitempty,gt=0"`
	Type          *string `json:"type" binding:"omitempty,notblank"`
	PaymentMethod *string `json:"payment_method" binding:"omitempty,payment_method"`
	PaymentDate   *string `json:"payment_date" binding:"omitempty,datetime=2006-01-02"`
}

// PaymentResponse represents a finance record
type PaymentResponse struct {
	ReceiptID     string               `json:"receipt_id" example:"25-26/001"`
	StudentID     int64                `json:"student_id" example:"1001"`
	StudentName   string               `json:"student_name,omitempty"`
	Amount        int64                `json:"amount" example:"15000"`
	Type          string               `json:"type" example:"Tuition"`
	PaymentMethod domain.PaymentMethod `json:"payment_method" example:"UPI"`
	PaymentDate   string               `json:"payment_date" example:"2025-04-02"`
}

// PaymentListResponse is one page of payments
type PaymentListResponse struct {
	Payments   []PaymentResponse      `json:"payments"`
	Pagination helpers.PaginationInfo `json:"pagination"`
}

// FinancialSummaryResponse totals a student's payments
type FinancialSummaryResponse struct {
	StudentID       int64            `json:"student_id"`
	TotalPaid       int64            `json:"total_paid"`
	PaymentCount    int              `json:"payment_count"`
	ByType          map[string]int64 `json:"by_type"`
	ByMethod        map[string]int64 `json:"by_method"`
	LastPaymentDate *string          `json:"last_payment_date"`
}

// ToModel converts the request into a finance record for studentID
func (r RecordPaymentRequest) ToModel(studentID int64) (models.FinanceRecord, error) {
	date, err := parseDate("payment_date", r.PaymentDate)
	if err != nil {
		return models.FinanceRecord{}, err
	}
	return models.FinanceRecord{
		StudentID:     studentID,
		Amount:        r.Amount,
		Type:          r.Type,
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
		PaymentDate:   date,
	}, nil
}

// ToPatch converts the request into a finance patch
func (r UpdatePaymentRequest) ToPatch() (models.FinancePatch, error) {
	date, err := parseDatePatch("payment_date", r.PaymentDate)
	if err != nil {
		return models.FinancePatch{}, err
	}
	patch := models.FinancePatch{Amount: r.Amount, Type: r.Type, PaymentDate: date}
	if r.PaymentMethod != nil {
		method := domain.PaymentMethod(*r.PaymentMethod)
		patch.PaymentMethod = &method
	}
	return patch, nil
}

// FromPayment converts a finance record to its response
func FromPayment(r *models.FinanceRecord) PaymentResponse {
	return PaymentResponse{
		ReceiptID:     r.ReceiptID,
		StudentID:     r.StudentID,
		StudentName:   r.StudentName,
		Amount:        r.Amount,
		Type:          r.Type,
		PaymentMethod: r.PaymentMethod,
		PaymentDate:   formatDate(r.PaymentDate),
	}
}

// FromPayments converts a list of finance records
func FromPayments(records []models.FinanceRecord) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(records))
	for i := range records {
		out = append(out, FromPayment(&records[i]))
	}
	return out
}

// FromFinancialSummary converts a summary to its response
func FromFinancialSummary(s *models.FinancialSummary) FinancialSummaryResponse {
	return FinancialSummaryResponse{
		StudentID:       s.StudentID,
		TotalPaid:       s.TotalPaid,
		PaymentCount:    s.PaymentCount,
		ByType:          s.ByType,
		ByMethod:        s.ByMethod,
		LastPaymentDate: formatOptionalDate(s.LastPaymentDate),
	}
}
