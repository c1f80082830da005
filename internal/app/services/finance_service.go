package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/yigit/aerowis/internal/app/models"
	"github.com/yigit/aerowis/internal/domain"
	"github.com/yigit/aerowis/internal/pkg/apperrors"
	"github.com/yigit/aerowis/internal/pkg/logger"
)

// FinanceService defines the interface for fee payment operations
type FinanceService interface {
	RecordPayment(ctx context.Context, payment models.FinanceRecord) (*models.FinanceRecord, error)
	GetReceipt(ctx context.Context, receiptID string) (*models.FinanceRecord, error)
	ListPayments(ctx context.Context, filter models.FinanceFilter) ([]models.FinanceRecord, int64, error)
	UpdatePayment(ctx context.Context, receiptID string, patch models.FinancePatch) (*models.FinanceRecord, error)
	DeletePayment(ctx context.Context, receiptID string) error
	FinancialSummary(ctx context.Context, studentID int64) (*models.FinancialSummary, error)
}

// FinanceOption configures the finance service
type FinanceOption func(*financeServiceImpl)

// WithClock replaces the clock used to pick the financial year of new receipts
func WithClock(now func() time.Time) FinanceOption {
	return func(s *financeServiceImpl) {
		s.now = now
	}
}

// financeServiceImpl implements FinanceService
type financeServiceImpl struct {
	finance     FinanceStore
	students    StudentStore
	maxAttempts int
	now         func() time.Time
}

// NewFinanceService creates a new FinanceService. maxAttempts bounds how often
// receipt issuance is retried after losing a race for a receipt number.
func NewFinanceService(finance FinanceStore, students StudentStore, maxAttempts int, opts ...FinanceOption) FinanceService {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	s := &financeServiceImpl{
		finance:     finance,
		students:    students,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func validatePayment(p *models.FinanceRecord) error {
	switch {
	case p.Amount <= 0:
		return apperrors.NewValidationError("amount", "amount must be greater than 0")
	case p.Type == "":
		return apperrors.NewValidationError("type", "type is required")
	case !p.PaymentMethod.Valid():
		return apperrors.NewValidationError("payment_method", "payment_method must be one of: UPI CASH BANK OTHER")
	case p.PaymentDate.IsZero():
		return apperrors.NewValidationError("payment_date", "payment_date is required")
	}
	return nil
}

// RecordPayment stores a payment under the next receipt number of the current
// financial year and returns it with the assigned receipt id.
func (s *financeServiceImpl) RecordPayment(ctx context.Context, payment models.FinanceRecord) (*models.FinanceRecord, error) {
	payment.Type = strings.TrimSpace(payment.Type)
	if err := validatePayment(&payment); err != nil {
		return nil, err
	}

	student, err := s.students.GetByRegNo(ctx, payment.StudentID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(student.Address) == "" {
		return nil, apperrors.NewValidationError("address", "student address is required before recording a payment")
	}

	fy := domain.FinancialYear(s.now())
	next := func(latest *string) (string, error) {
		return domain.NextReceiptID(fy, latest)
	}

	for attempt := 1; ; attempt++ {
		err = s.finance.Issue(ctx, fy, next, &payment)
		if err == nil {
			break
		}
		if !errors.Is(err, apperrors.ErrReceiptConflict) || attempt >= s.maxAttempts {
			return nil, err
		}
		logger.Warn().
			Str("fy", fy).
			Int("attempt", attempt).
			Msg("Receipt number taken concurrently, retrying")
	}

	payment.StudentName = student.Name
	logger.Info().
		Str("receiptID", payment.ReceiptID).
		Int64("studentID", payment.StudentID).
		Int64("amount", payment.Amount).
		Msg("Payment recorded")
	return &payment, nil
}

// GetReceipt retrieves a payment by receipt id
func (s *financeServiceImpl) GetReceipt(ctx context.Context, receiptID string) (*models.FinanceRecord, error) {
	return s.finance.GetByReceiptID(ctx, receiptID)
}

// ListPayments lists payments, latest first, with the total number of matches
func (s *financeServiceImpl) ListPayments(ctx context.Context, filter models.FinanceFilter) ([]models.FinanceRecord, int64, error) {
	if filter.FinancialYear != "" && !domain.ValidFinancialYear(filter.FinancialYear) {
		return nil, 0, apperrors.NewValidationError("fy", "fy must be a financial year like 25-26")
	}
	return s.finance.List(ctx, filter)
}

// UpdatePayment corrects a payment. Its receipt id stays the same.
func (s *financeServiceImpl) UpdatePayment(ctx context.Context, receiptID string, patch models.FinancePatch) (*models.FinanceRecord, error) {
	if patch.Amount != nil && *patch.Amount <= 0 {
		return nil, apperrors.NewValidationError("amount", "amount must be greater than 0")
	}
	if patch.Type != nil {
		typ := strings.TrimSpace(*patch.Type)
		if typ == "" {
			return nil, apperrors.NewValidationError("type", "type cannot be empty")
		}
		patch.Type = &typ
	}
	if patch.PaymentMethod != nil && !patch.PaymentMethod.Valid() {
		return nil, apperrors.NewValidationError("payment_method", "payment_method must be one of: UPI CASH BANK OTHER")
	}
	if patch.PaymentDate != nil && patch.PaymentDate.IsZero() {
		return nil, apperrors.NewValidationError("payment_date", "payment_date cannot be empty")
	}

	if err := s.finance.Update(ctx, receiptID, patch); err != nil {
		return nil, err
	}
	return s.finance.GetByReceiptID(ctx, receiptID)
}

// DeletePayment deletes a payment
func (s *financeServiceImpl) DeletePayment(ctx context.Context, receiptID string) error {
	if err := s.finance.Delete(ctx, receiptID); err != nil {
		return err
	}
	logger.Info().Str("receiptID", receiptID).Msg("Payment deleted")
	return nil
}

// FinancialSummary totals a student's payments
func (s *financeServiceImpl) FinancialSummary(ctx context.Context, studentID int64) (*models.FinancialSummary, error) {
	if _, err := s.students.GetByRegNo(ctx, studentID); err != nil {
		return nil, err
	}

	payments, _, err := s.finance.List(ctx, models.FinanceFilter{StudentID: &studentID})
	if err != nil {
		return nil, err
	}

	summary := &models.FinancialSummary{
		StudentID: studentID,
		ByType:    make(map[string]int64),
		ByMethod:  make(map[string]int64),
	}
	for _, p := range payments {
		summary.TotalPaid += p.Amount
		summary.PaymentCount++
		summary.ByType[p.Type] += p.Amount
		summary.ByMethod[string(p.PaymentMethod)] += p.Amount
		if summary.LastPaymentDate == nil || p.PaymentDate.After(*summary.LastPaymentDate) {
			date := p.PaymentDate
			summary.LastPaymentDate = &date
		}
	}
	return summary, nil
}
