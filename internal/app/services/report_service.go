package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/yigit/aerowis/internal/app/models"
	"github.com/yigit/aerowis/internal/domain"
	"github.com/yigit/aerowis/internal/pkg/apperrors"
	"github.com/yigit/aerowis/internal/pkg/export"
	"github.com/yigit/aerowis/internal/pkg/helpers"
	"github.com/yigit/aerowis/internal/pkg/logger"
)

// ReportService defines the read-only projections over exams, students and payments
type ReportService interface {
	ExamReport(ctx context.Context, examID int64) (*models.ExamReport, error)
	StudentReport(ctx context.Context, regNo int64, month string) (*models.StudentReport, error)
	Receipt(ctx context.Context, receiptID string) (*models.Receipt, error)
	Ledger(ctx context.Context, fy string) (*models.Ledger, error)
	ExportExam(ctx context.Context, examID int64, w io.Writer) error
	ExportLedger(ctx context.Context, fy string, w io.Writer) error
	Backup(ctx context.Context, path string) error
}

// reportServiceImpl implements ReportService
type reportServiceImpl struct {
	batches     BatchStore
	students    StudentStore
	instructors InstructorStore
	courses     CourseStore
	exams       ExamStore
	results     ResultStore
	finance     FinanceStore
}

// ReportStores groups the stores the reports read from
type ReportStores struct {
	Batches     BatchStore
	Students    StudentStore
	Instructors InstructorStore
	Courses     CourseStore
	Exams       ExamStore
	Results     ResultStore
	Finance     FinanceStore
}

// NewReportService creates a new ReportService
func NewReportService(stores ReportStores) ReportService {
	return &reportServiceImpl{
		batches:     stores.Batches,
		students:    stores.Students,
		instructors: stores.Instructors,
		courses:     stores.Courses,
		exams:       stores.Exams,
		results:     stores.Results,
		finance:     stores.Finance,
	}
}

// ExamReport lists every student of the exam's batch with their result and
// aggregates the exam. Students with results who have since left the batch are kept.
func (s *reportServiceImpl) ExamReport(ctx context.Context, examID int64) (*models.ExamReport, error) {
	exam, err := s.exams.GetByID(ctx, examID)
	if err != nil {
		return nil, err
	}

	batchID := exam.BatchID
	roster, err := s.students.List(ctx, models.StudentFilter{BatchID: &batchID})
	if err != nil {
		return nil, err
	}

	results, err := s.results.ListByExam(ctx, examID)
	if err != nil {
		return nil, err
	}

	byStudent := make(map[int64]models.Result, len(results))
	scored := make([]domain.ScoredResult, 0, len(results))
	for _, r := range results {
		byStudent[r.StudentID] = r
		scored = append(scored, r.ToScoredResult())
	}

	report := &models.ExamReport{Exam: *exam, Rows: make([]models.ExamReportRow, 0, len(roster))}
	for _, student := range roster {
		row := models.ExamReportRow{Student: student}
		if r, ok := byStudent[student.RegNo]; ok {
			r := r
			row.Result = &r
			delete(byStudent, student.RegNo)
		}
		report.Rows = append(report.Rows, row)
	}
	for _, r := range results {
		if _, outside := byStudent[r.StudentID]; outside {
			r := r
			report.Rows = append(report.Rows, models.ExamReportRow{
				Student: models.Student{RegNo: r.StudentID, Name: r.StudentName},
				Result:  &r,
			})
		}
	}

	report.Statistics = domain.ComputeExamStatistics(scored, len(report.Rows))
	return report, nil
}

// StudentReport gathers a student's results and summaries. A non-empty month
// ("YYYY-MM") narrows the results and the summary; available months and
// monthly averages always cover every result.
func (s *reportServiceImpl) StudentReport(ctx context.Context, regNo int64, month string) (*models.StudentReport, error) {
	if month = strings.TrimSpace(month); month != "" {
		normalized, err := helpers.ParseMonth(month)
		if err != nil {
			return nil, apperrors.NewValidationError("month", err.Error())
		}
		month = normalized
	}

	student, err := s.students.GetByRegNo(ctx, regNo)
	if err != nil {
		return nil, err
	}

	rows, err := s.results.ListByStudent(ctx, regNo)
	if err != nil {
		return nil, err
	}

	all := make([]domain.StudentResult, 0, len(rows))
	for _, r := range rows {
		all = append(all, r.ToStudentResult())
	}

	selected := all
	if month != "" {
		selected = domain.FilterByMonth(all, month)
	}

	return &models.StudentReport{
		Student:         *student,
		Month:           month,
		Results:         selected,
		Summary:         domain.ComputeAcademicSummary(selected),
		AvailableMonths: domain.AvailableMonths(all),
		MonthlyAverages: domain.MonthlyAverages(all),
	}, nil
}

// Receipt prepares a payment for printing
func (s *reportServiceImpl) Receipt(ctx context.Context, receiptID string) (*models.Receipt, error) {
	record, err := s.finance.GetByReceiptID(ctx, receiptID)
	if err != nil {
		return nil, err
	}

	student, err := s.students.GetByRegNo(ctx, record.StudentID)
	if err != nil {
		return nil, err
	}

	return &models.Receipt{
		Record:        *record,
		Student:       *student,
		AmountInWords: domain.AmountInWords(record.Amount),
	}, nil
}

// Ledger lists a financial year's payments in receipt order with their total
func (s *reportServiceImpl) Ledger(ctx context.Context, fy string) (*models.Ledger, error) {
	if !domain.ValidFinancialYear(fy) {
		return nil, apperrors.NewValidationError("fy", "fy must be a financial year like 25-26")
	}

	records, err := s.finance.ListByFinancialYear(ctx, fy)
	if err != nil {
		return nil, err
	}

	ledger := &models.Ledger{FinancialYear: fy, Records: records}
	for _, r := range records {
		ledger.Total += r.Amount
	}
	return ledger, nil
}

func examSheet(report *models.ExamReport) export.ExamSheet {
	sheet := export.ExamSheet{
		ExamID:       report.Exam.ID,
		ExamName:     report.Exam.Name,
		CourseName:   report.Exam.CourseName,
		BatchName:    report.Exam.BatchName,
		Instructor:   report.Exam.InstructorName,
		ExamDate:     report.Exam.ExamDate,
		MaxScore:     report.Exam.MaxScore,
		CutoffScore:  report.Exam.CutoffScore,
		Attended:     report.Statistics.Attended,
		Absent:       report.Statistics.Absent,
		PassPercent:  report.Statistics.PassPercent,
		AverageScore: report.Statistics.AverageScore,
	}
	for _, row := range report.Rows {
		line := export.ExamRow{RegNo: row.Student.RegNo, Name: row.Student.Name, Status: string(domain.StatusAbsent)}
		if row.Result != nil {
			line.Mark = row.Result.Mark
			line.Status = string(row.Result.Status)
		}
		sheet.Rows = append(sheet.Rows, line)
	}
	return sheet
}

func ledgerSheet(ledger *models.Ledger) export.LedgerSheet {
	sheet := export.LedgerSheet{FinancialYear: ledger.FinancialYear, Total: ledger.Total}
	for _, r := range ledger.Records {
		sheet.Rows = append(sheet.Rows, export.LedgerRow{
			ReceiptID:     r.ReceiptID,
			RegNo:         r.StudentID,
			StudentName:   r.StudentName,
			Amount:        r.Amount,
			Type:          r.Type,
			PaymentMethod: string(r.PaymentMethod),
			PaymentDate:   r.PaymentDate,
		})
	}
	return sheet
}

// ExportExam writes the exam report as an xlsx workbook
func (s *reportServiceImpl) ExportExam(ctx context.Context, examID int64, w io.Writer) error {
	report, err := s.ExamReport(ctx, examID)
	if err != nil {
		return err
	}

	wb, err := export.NewWorkbook()
	if err != nil {
		return err
	}
	defer wb.Close()

	if err := wb.AddExamSheet(examSheet(report)); err != nil {
		return err
	}
	return wb.Write(w)
}

// ExportLedger writes a financial year's ledger as an xlsx workbook
func (s *reportServiceImpl) ExportLedger(ctx context.Context, fy string, w io.Writer) error {
	ledger, err := s.Ledger(ctx, fy)
	if err != nil {
		return err
	}

	wb, err := export.NewWorkbook()
	if err != nil {
		return err
	}
	defer wb.Close()

	if err := wb.AddLedgerSheet(ledgerSheet(ledger)); err != nil {
		return err
	}
	return wb.Write(w)
}

// unsortedLedger collects receipts whose id carries no financial year
const unsortedLedger = "Unsorted"

// Backup saves every master table, one ledger per financial year and a sheet
// per exam into one workbook at path
func (s *reportServiceImpl) Backup(ctx context.Context, path string) error {
	wb, err := export.NewWorkbook()
	if err != nil {
		return err
	}
	defer wb.Close()

	if err := s.backupMasters(ctx, wb); err != nil {
		return err
	}

	records, _, err := s.finance.List(ctx, models.FinanceFilter{})
	if err != nil {
		return err
	}
	for _, ledger := range groupLedgers(records) {
		if err := wb.AddLedgerSheet(ledgerSheet(ledger)); err != nil {
			return err
		}
	}

	exams, err := s.exams.List(ctx, models.ExamFilter{})
	if err != nil {
		return err
	}
	for _, exam := range exams {
		report, err := s.ExamReport(ctx, exam.ID)
		if err != nil {
			return fmt.Errorf("exam %d: %w", exam.ID, err)
		}
		if err := wb.AddExamSheet(examSheet(report)); err != nil {
			return fmt.Errorf("exam %d: %w", exam.ID, err)
		}
	}

	if err := wb.SaveAs(path); err != nil {
		return err
	}
	logger.Info().Str("path", path).Int("exams", len(exams)).Int("receipts", len(records)).Msg("Backup written")
	return nil
}

func (s *reportServiceImpl) backupMasters(ctx context.Context, wb *export.Workbook) error {
	batches, err := s.batches.List(ctx)
	if err != nil {
		return err
	}
	rows := make([][]interface{}, 0, len(batches))
	for _, b := range batches {
		rows = append(rows, []interface{}{b.ID, b.Name, b.StartDate, b.StudentCount})
	}
	if err := wb.AddTableSheet("Batches", []string{"Batch ID", "Name", "Start Date", "Students"}, rows); err != nil {
		return err
	}

	students, err := s.students.List(ctx, models.StudentFilter{})
	if err != nil {
		return err
	}
	rows = make([][]interface{}, 0, len(students))
	for _, st := range students {
		rows = append(rows, []interface{}{
			st.RegNo, st.Name, st.BatchID, st.BatchName, st.JoinDate, st.Gender, st.DOB, st.BloodGroup,
			st.Phone, st.Email, st.Address, st.FatherName, st.FatherPhone, st.MotherName, st.MotherPhone,
			st.EducationQualification, st.DocumentsLink, st.TotalClasses, st.Attendance,
		})
	}
	studentHeaders := []string{
		"Reg No", "Name", "Batch ID", "Batch", "Join Date", "Gender", "DOB", "Blood Group",
		"Phone", "Email", "Address", "Father", "Father Phone", "Mother", "Mother Phone",
		"Education", "Documents", "Total Classes", "Attendance",
	}
	if err := wb.AddTableSheet("Students", studentHeaders, rows); err != nil {
		return err
	}

	instructors, err := s.instructors.List(ctx)
	if err != nil {
		return err
	}
	rows = make([][]interface{}, 0, len(instructors))
	for _, in := range instructors {
		rows = append(rows, []interface{}{in.ID, in.Name, in.Email, in.Phone})
	}
	if err := wb.AddTableSheet("Instructors", []string{"Instructor ID", "Name", "Email", "Phone"}, rows); err != nil {
		return err
	}

	courses, err := s.courses.List(ctx)
	if err != nil {
		return err
	}
	rows = make([][]interface{}, 0, len(courses))
	for _, c := range courses {
		rows = append(rows, []interface{}{c.ID, c.Name})
	}
	return wb.AddTableSheet("Courses", []string{"Course ID", "Name"}, rows)
}

// groupLedgers splits records into per-year ledgers in year order, each in
// receipt order. Records with a malformed id end up in a trailing unsorted ledger.
func groupLedgers(records []models.FinanceRecord) []*models.Ledger {
	byYear := make(map[string]*models.Ledger)
	for _, r := range records {
		fy, _, err := domain.ParseReceiptID(r.ReceiptID)
		if err != nil {
			fy = unsortedLedger
		}
		ledger, ok := byYear[fy]
		if !ok {
			ledger = &models.Ledger{FinancialYear: fy}
			byYear[fy] = ledger
		}
		ledger.Records = append(ledger.Records, r)
		ledger.Total += r.Amount
	}

	ledgers := make([]*models.Ledger, 0, len(byYear))
	for _, ledger := range byYear {
		recs := ledger.Records
		sort.Slice(recs, func(i, j int) bool {
			a, b := recs[i].ReceiptID, recs[j].ReceiptID
			if len(a) != len(b) {
				return len(a) < len(b)
			}
			return a < b
		})
		ledgers = append(ledgers, ledger)
	}
	sort.Slice(ledgers, func(i, j int) bool {
		a, b := ledgers[i].FinancialYear, ledgers[j].FinancialYear
		if (a == unsortedLedger) != (b == unsortedLedger) {
			return b == unsortedLedger
		}
		return a < b
	})
	return ledgers
}
