package models

import (
	"time"

	"github.com/yigit/aerowis/internal/domain"
)

// FinanceRecord is a fee payment identified by its receipt id ("25-26/001")
type FinanceRecord struct {
	ReceiptID     string               `json:"receipt_id" db:"receipt_id"`
	StudentID     int64                `json:"student_id" db:"student_id"`
	Amount        int64                `json:"amount" db:"amount"`
	Type          string               `json:"type" db:"type"`
	PaymentMethod domain.PaymentMethod `json:"payment_method" db:"payment_method"`
	PaymentDate   time.Time            `json:"payment_date" db:"payment_date"`

	StudentName string `json:"student_name,omitempty" db:"student_name"`
}

// FinanceFilter narrows payment listings. Zero Limit returns every match.
type FinanceFilter struct {
	StudentID     *int64
	FinancialYear string
	Limit         uint64
	Offset        uint64
}

// FinancePatch holds the payment fields to change. The receipt id never changes.
type FinancePatch struct {
	Amount        *int64
	Type          *string
	PaymentMethod *domain.PaymentMethod
	PaymentDate   *time.Time
}

// Changes maps the set fields to their columns
func (p FinancePatch) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if p.Amount != nil {
		changes["amount"] = *p.Amount
	}
	if p.Type != nil {
		changes["type"] = *p.Type
	}
	if p.PaymentMethod != nil {
		changes["payment_method"] = string(*p.PaymentMethod)
	}
	if p.PaymentDate != nil {
		changes["payment_date"] = *p.PaymentDate
	}
	return changes
}

// FinancialSummary totals a student's payments
type FinancialSummary struct {
	StudentID       int64            `json:"student_id"`
	TotalPaid       int64            `json:"total_paid"`
	PaymentCount    int              `json:"payment_count"`
	ByType          map[string]int64 `json:"by_type"`
	ByMethod        map[string]int64 `json:"by_method"`
	LastPaymentDate *time.Time       `json:"last_payment_date"`
}
