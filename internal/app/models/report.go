package models

import "github.com/yigit/aerowis/internal/domain"

// ExamReportRow pairs a rostered student with their result, nil when none was recorded
type ExamReportRow struct {
	Student Student
	Result  *Result
}

// ExamReport is an exam with its batch roster and statistics
type ExamReport struct {
	Exam       Exam
	Rows       []ExamReportRow
	Statistics domain.ExamStatistics
}

// StudentReport is a student's academic record, optionally narrowed to one month
type StudentReport struct {
	Student         Student
	Month           string
	Results         []domain.StudentResult
	Summary         domain.AcademicSummary
	AvailableMonths []string
	MonthlyAverages []domain.MonthlyAverage
}

// Receipt is a payment prepared for printing
type Receipt struct {
	Record        FinanceRecord
	Student       Student
	AmountInWords string
}

// Ledger lists the payments of one financial year in receipt order
type Ledger struct {
	FinancialYear string
	Records       []FinanceRecord
	Total         int64
}
