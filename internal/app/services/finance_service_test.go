package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/aerowis/internal/app/models"
	"github.com/yigit/aerowis/internal/domain"
	"github.com/yigit/aerowis/internal/pkg/apperrors"
)

func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time { return time.Date(year, month, day, 10, 0, 0, 0, time.UTC) }
}

func financeFixture(records ...models.FinanceRecord) (*fakeFinance, *fakeStudents) {
	students := newFakeStudents(
		models.Student{RegNo: 1001, Name: "Asha", BatchID: 1, Address: "12 Lake Road"},
		models.Student{RegNo: 1002, Name: "Ravi", BatchID: 1},
	)
	return newFakeFinance(students, records...), students
}

func payment(studentID int64) models.FinanceRecord {
	return models.FinanceRecord{
		StudentID:     studentID,
		Amount:        1500,
		Type:          "Tuition",
		PaymentMethod: domain.PaymentUPI,
		PaymentDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestRecordPayment_SequentialWithinYear(t *testing.T) {
	finance, students := financeFixture()
	svc := NewFinanceService(finance, students, 3, WithClock(fixedClock(2025, time.June, 1)))

	first, err := svc.RecordPayment(context.Background(), payment(1001))
	require.NoError(t, err)
	assert.Equal(t, "25-26/001", first.ReceiptID)
	assert.Equal(t, "Asha", first.StudentName)

	second, err := svc.RecordPayment(context.Background(), payment(1001))
	require.NoError(t, err)
	assert.Equal(t, "25-26/002", second.ReceiptID)
}

func TestRecordPayment_FinancialYearBoundary(t *testing.T) {
	finance, students := financeFixture(models.FinanceRecord{ReceiptID: "25-26/007", StudentID: 1001, Amount: 10})

	march := NewFinanceService(finance, students, 1, WithClock(fixedClock(2026, time.March, 31)))
	rec, err := march.RecordPayment(context.Background(), payment(1001))
	require.NoError(t, err)
	assert.Equal(t, "25-26/008", rec.ReceiptID)

	april := NewFinanceService(finance, students, 1, WithClock(fixedClock(2026, time.April, 1)))
	rec, err = april.RecordPayment(context.Background(), payment(1001))
	require.NoError(t, err)
	assert.Equal(t, "26-27/001", rec.ReceiptID)
}

func TestRecordPayment_Rejections(t *testing.T) {
	finance, students := financeFixture()
	svc := NewFinanceService(finance, students, 3, WithClock(fixedClock(2025, time.June, 1)))

	tests := []struct {
		name   string
		mutate func(*models.FinanceRecord)
		field  string
	}{
		{"zero amount", func(p *models.FinanceRecord) { p.Amount = 0 }, "amount"},
		{"blank type", func(p *models.FinanceRecord) { p.Type = "  " }, "type"},
		{"unknown method", func(p *models.FinanceRecord) { p.PaymentMethod = "CHEQUE" }, "payment_method"},
		{"missing date", func(p *models.FinanceRecord) { p.PaymentDate = time.Time{} }, "payment_date"},
		{"student without address", func(p *models.FinanceRecord) { p.StudentID = 1002 }, "address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := payment(1001)
			tt.mutate(&p)

			_, err := svc.RecordPayment(context.Background(), p)
			require.ErrorIs(t, err, apperrors.ErrValidationFailed)
			var custom *apperrors.CustomError
			require.ErrorAs(t, err, &custom)
			assert.Equal(t, tt.field, custom.Field)
		})
	}

	assert.Zero(t, finance.issues)
}

func TestRecordPayment_UnknownStudent(t *testing.T) {
	finance, students := financeFixture()
	svc := NewFinanceService(finance, students, 3)

	_, err := svc.RecordPayment(context.Background(), payment(4242))
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	assert.Empty(t, finance.rows)
}

func TestRecordPayment_RetriesOnConflict(t *testing.T) {
	finance, students := financeFixture()
	finance.conflicts = 2
	svc := NewFinanceService(finance, students, 3, WithClock(fixedClock(2025, time.June, 1)))

	rec, err := svc.RecordPayment(context.Background(), payment(1001))
	require.NoError(t, err)
	assert.Equal(t, "25-26/001", rec.ReceiptID)
	assert.Equal(t, 3, finance.issues)
}

func TestRecordPayment_GivesUpAfterMaxAttempts(t *testing.T) {
	finance, students := financeFixture()
	finance.conflicts = 5
	svc := NewFinanceService(finance, students, 3, WithClock(fixedClock(2025, time.June, 1)))

	_, err := svc.RecordPayment(context.Background(), payment(1001))
	assert.ErrorIs(t, err, apperrors.ErrReceiptConflict)
	assert.Equal(t, 3, finance.issues)
}

func TestRecordPayment_MalformedLedgerAborts(t *testing.T) {
	finance, students := financeFixture(models.FinanceRecord{ReceiptID: "25-26/x9", StudentID: 1001, Amount: 10})
	svc := NewFinanceService(finance, students, 3, WithClock(fixedClock(2025, time.June, 1)))

	_, err := svc.RecordPayment(context.Background(), payment(1001))
	assert.ErrorIs(t, err, apperrors.ErrSequencing)
	assert.Len(t, finance.rows, 1)
}

func TestRecordPayment_ConcurrentReceiptsAreDense(t *testing.T) {
	finance, students := financeFixture()
	svc := NewFinanceService(finance, students, 3, WithClock(fixedClock(2025, time.June, 1)))

	const writers = 20
	ids := make([]string, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec, err := svc.RecordPayment(context.Background(), payment(1001))
			if assert.NoError(t, err) {
				ids[i] = rec.ReceiptID
			}
		}(i)
	}
	wg.Wait()

	sort.Strings(ids)
	for i, id := range ids {
		assert.Equal(t, fmt.Sprintf("25-26/%03d", i+1), id)
	}
}

func TestUpdatePayment(t *testing.T) {
	finance, students := financeFixture(models.FinanceRecord{
		ReceiptID: "25-26/001", StudentID: 1001, Amount: 100, Type: "Tuition", PaymentMethod: domain.PaymentCash,
	})
	svc := NewFinanceService(finance, students, 3)

	negative := int64(-5)
	_, err := svc.UpdatePayment(context.Background(), "25-26/001", models.FinancePatch{Amount: &negative})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	bad := domain.PaymentMethod("CHEQUE")
	_, err = svc.UpdatePayment(context.Background(), "25-26/001", models.FinancePatch{PaymentMethod: &bad})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	amount := int64(250)
	rec, err := svc.UpdatePayment(context.Background(), "25-26/001", models.FinancePatch{Amount: &amount})
	require.NoError(t, err)
	assert.Equal(t, int64(250), rec.Amount)
	assert.Equal(t, "25-26/001", rec.ReceiptID)

	_, err = svc.UpdatePayment(context.Background(), "25-26/404", models.FinancePatch{Amount: &amount})
	assert.ErrorIs(t, err, apperrors.ErrReceiptNotFound)
}

func TestFinancialSummary(t *testing.T) {
	finance, students := financeFixture(
		models.FinanceRecord{ReceiptID: "25-26/001", StudentID: 1001, Amount: 1000, Type: "Tuition", PaymentMethod: domain.PaymentUPI,
			PaymentDate: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
		models.FinanceRecord{ReceiptID: "25-26/002", StudentID: 1001, Amount: 500, Type: "Exam", PaymentMethod: domain.PaymentCash,
			PaymentDate: time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC)},
		models.FinanceRecord{ReceiptID: "25-26/003", StudentID: 1002, Amount: 700, Type: "Tuition", PaymentMethod: domain.PaymentUPI,
			PaymentDate: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)},
	)
	svc := NewFinanceService(finance, students, 3)

	summary, err := svc.FinancialSummary(context.Background(), 1001)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), summary.TotalPaid)
	assert.Equal(t, 2, summary.PaymentCount)
	assert.Equal(t, map[string]int64{"Tuition": 1000, "Exam": 500}, summary.ByType)
	assert.Equal(t, map[string]int64{"UPI": 1000, "CASH": 500}, summary.ByMethod)
	require.NotNil(t, summary.LastPaymentDate)
	assert.Equal(t, time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC), *summary.LastPaymentDate)

	_, err = svc.FinancialSummary(context.Background(), 9)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestListPayments_RejectsBadFinancialYear(t *testing.T) {
	finance, students := financeFixture()
	svc := NewFinanceService(finance, students, 3)

	_, _, err := svc.ListPayments(context.Background(), models.FinanceFilter{FinancialYear: "2025"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
