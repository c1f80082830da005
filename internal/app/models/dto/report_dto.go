package dto

import (
	"github.com/yigit/aerowis/internal/app/models"
	"github.com/yigit/aerowis/internal/domain"
)

// ExamReportRow is one student of the exam's batch and their result, if any
type ExamReportRow struct {
	RegNo              int64               `json:"reg_no"`
	Name               string              `json:"name"`
	ResultID           *int64              `json:"result_id,omitempty"`
	ObtainedMark       *int                `json:"obtained_mark"`
	Status             domain.ResultStatus `json:"status"`
	PerformancePercent *float64            `json:"performance_percent,omitempty"`
}

// ExamReportResponse represents an exam with its roster and statistics
type ExamReportResponse struct {
	Exam       ExamResponse          `json:"exam"`
	Rows       []ExamReportRow       `json:"rows"`
	Statistics domain.ExamStatistics `json:"statistics"`
}

// StudentResultResponse is one exam in a student's report
type StudentResultResponse struct {
	ResultID           int64               `json:"result_id"`
	ExamID             int64               `json:"exam_id"`
	ExamName           string              `json:"exam_name"`
	ExamDate           string              `json:"exam_date"`
	MaxScore           int                 `json:"max_score"`
	CutoffScore        int                 `json:"cutoff_score"`
	ObtainedMark       *int                `json:"obtained_mark"`
	Status             domain.ResultStatus `json:"status"`
	PerformancePercent *float64            `json:"performance_percent,omitempty"`
}

// StudentReportResponse represents a student's academic report
type StudentReportResponse struct {
	Student         StudentResponse         `json:"student"`
	Month           string                  `json:"month,omitempty"`
	Results         []StudentResultResponse `json:"results"`
	Summary         domain.AcademicSummary  `json:"summary"`
	AvailableMonths []string                `json:"available_months"`
	MonthlyAverages []domain.MonthlyAverage `json:"monthly_averages"`
}

// ReceiptResponse is a payment prepared for printing
type ReceiptResponse struct {
	ReceiptID     string               `json:"receipt_id"`
	StudentID     int64                `json:"student_id"`
	StudentName   string               `json:"student_name"`
	BatchName     string               `json:"batch_name"`
	Address       string               `json:"address"`
	Amount        int64                `json:"amount"`
	AmountInWords string               `json:"amount_in_words" example:"Fifteen Thousand only"`
	Type          string               `json:"type"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	PaymentDate   string               `json:"payment_date"`
}

// LedgerResponse lists a financial year's receipts
type LedgerResponse struct {
	FinancialYear string            `json:"financial_year" example:"25-26"`
	Records       []PaymentResponse `json:"records"`
	Total         int64             `json:"total"`
}

// FromExamReport converts an exam report to its response
func FromExamReport(r *models.ExamReport) ExamReportResponse {
	resp := ExamReportResponse{
		Exam:       FromExam(&r.Exam),
		Rows:       make([]ExamReportRow, 0, len(r.Rows)),
		Statistics: r.Statistics,
	}
	for _, row := range r.Rows {
		line := ExamReportRow{RegNo: row.Student.RegNo, Name: row.Student.Name, Status: domain.StatusAbsent}
		if row.Result != nil {
			id := row.Result.ID
			line.ResultID = &id
			line.ObtainedMark = row.Result.Mark
			line.Status = row.Result.Status
			line.PerformancePercent = domain.PerformancePercent(row.Result.Mark, r.Exam.MaxScore)
		}
		resp.Rows = append(resp.Rows, line)
	}
	return resp
}

// FromStudentReport converts a student report to its response
func FromStudentReport(r *models.StudentReport, photoURL string) StudentReportResponse {
	resp := StudentReportResponse{
		Student:         FromStudent(&r.Student, photoURL),
		Month:           r.Month,
		Results:         make([]StudentResultResponse, 0, len(r.Results)),
		Summary:         r.Summary,
		AvailableMonths: r.AvailableMonths,
		MonthlyAverages: r.MonthlyAverages,
	}
	for _, res := range r.Results {
		resp.Results = append(resp.Results, StudentResultResponse{
			ResultID:           res.ResultID,
			ExamID:             res.ExamID,
			ExamName:           res.ExamName,
			ExamDate:           formatDate(res.ExamDate),
			MaxScore:           res.MaxScore,
			CutoffScore:        res.CutoffScore,
			ObtainedMark:       res.Mark,
			Status:             res.Status,
			PerformancePercent: domain.PerformancePercent(res.Mark, res.MaxScore),
		})
	}
	return resp
}

// FromReceipt converts a receipt to its response
func FromReceipt(r *models.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ReceiptID:     r.Record.ReceiptID,
		StudentID:     r.Student.RegNo,
		StudentName:   r.Student.Name,
		BatchName:     r.Student.BatchName,
		Address:       r.Student.Address,
		Amount:        r.Record.Amount,
		AmountInWords: r.AmountInWords,
		Type:          r.Record.Type,
		PaymentMethod: r.Record.PaymentMethod,
		PaymentDate:   formatDate(r.Record.PaymentDate),
	}
}

// FromLedger converts a ledger to its response
func FromLedger(l *models.Ledger) LedgerResponse {
	return LedgerResponse{
		FinancialYear: l.FinancialYear,
		Records:       FromPayments(l.Records),
		Total:         l.Total,
	}
}
