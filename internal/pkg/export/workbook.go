package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	// XLSXContentType is the MIME type of the generated workbooks
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	defaultSheet  = "Sheet1"
	maxSheetName  = 31
	dateLayout    = "02-01-2006"
	headerColumns = "A"
)

// ExamRow is one student line of an exam sheet
type ExamRow struct {
	RegNo  int64
	Name   string
	Mark   *int
	Status string
}

// ExamSheet holds an exam with its results and summary figures
type ExamSheet struct {
	ExamID       int64
	ExamName     string
	CourseName   string
	BatchName    string
	Instructor   string
	ExamDate     time.Time
	MaxScore     int
	CutoffScore  int
	Rows         []ExamRow
	Attended     int
	Absent       int
	PassPercent  float64
	AverageScore *float64
}

// LedgerRow is one receipt line of a ledger sheet
type LedgerRow struct {
	ReceiptID     string
	RegNo         int64
	StudentName   string
	Amount        int64
	Type          string
	PaymentMethod string
	PaymentDate   time.Time
}

// LedgerSheet holds all receipts of a financial year
type LedgerSheet struct {
	FinancialYear string
	Rows          []LedgerRow
	Total         int64
}

// Workbook builds an xlsx file sheet by sheet
type Workbook struct {
	f          *excelize.File
	headStyle  int
	sheetNames map[string]struct{}
	finished   bool
}

// NewWorkbook starts an empty workbook
func NewWorkbook() (*Workbook, error) {
	f := excelize.NewFile()
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	return &Workbook{f: f, headStyle: style, sheetNames: make(map[string]struct{})}, nil
}

// sheetName makes name a valid, unique sheet name
func (w *Workbook) sheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '-'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		name = "Sheet"
	}
	if len([]rune(name)) > maxSheetName {
		name = string([]rune(name)[:maxSheetName])
	}

	candidate := name
	for i := 2; ; i++ {
		if _, taken := w.sheetNames[strings.ToLower(candidate)]; !taken {
			break
		}
		suffix := fmt.Sprintf(" (%d)", i)
		base := []rune(name)
		if len(base)+len(suffix) > maxSheetName {
			base = base[:maxSheetName-len(suffix)]
		}
		candidate = string(base) + suffix
	}
	w.sheetNames[strings.ToLower(candidate)] = struct{}{}
	return candidate
}

func (w *Workbook) newSheet(name string) (string, error) {
	sheet := w.sheetName(name)
	if _, err := w.f.NewSheet(sheet); err != nil {
		return "", fmt.Errorf("failed to add sheet %q: %w", sheet, err)
	}
	return sheet, nil
}

func (w *Workbook) setRow(sheet string, row int, values ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return w.f.SetSheetRow(sheet, cell, &values)
}

func (w *Workbook) header(sheet string, row int, titles ...string) error {
	values := make([]interface{}, len(titles))
	for i, t := range titles {
		values[i] = t
	}
	if err := w.setRow(sheet, row, values...); err != nil {
		return err
	}
	from, _ := excelize.CoordinatesToCellName(1, row)
	to, _ := excelize.CoordinatesToCellName(len(titles), row)
	return w.f.SetCellStyle(sheet, from, to, w.headStyle)
}

// AddExamSheet writes an exam's details, results and summary to a new sheet
func (w *Workbook) AddExamSheet(exam ExamSheet) error {
	sheet, err := w.newSheet(exam.ExamName)
	if err != nil {
		return err
	}

	lines := [][]interface{}{
		{"Exam", exam.ExamName},
		{"Course", exam.CourseName},
		{"Batch", exam.BatchName},
		{"Instructor", exam.Instructor},
		{"Date", formatDate(exam.ExamDate)},
		{"Max score", exam.MaxScore},
		{"Cutoff", exam.CutoffScore},
	}
	for i, line := range lines {
		if err := w.setRow(sheet, i+1, line...); err != nil {
			return err
		}
	}

	row := len(lines) + 2
	if err := w.header(sheet, row, "Reg No", "Name", "Obtained Mark", "Status"); err != nil {
		return err
	}
	for _, r := range exam.Rows {
		row++
		var mark interface{} = "-"
		if r.Mark != nil {
			mark = *r.Mark
		}
		if err := w.setRow(sheet, row, r.RegNo, r.Name, mark, r.Status); err != nil {
			return err
		}
	}

	row += 2
	average := interface{}("N/A")
	if exam.AverageScore != nil {
		average = *exam.AverageScore
	}
	summary := [][]interface{}{
		{"Attended", exam.Attended},
		{"Absent", exam.Absent},
		{"Pass %", exam.PassPercent},
		{"Average", average},
	}
	for i, line := range summary {
		if err := w.setRow(sheet, row+i, line...); err != nil {
			return err
		}
	}

	return w.f.SetColWidth(sheet, headerColumns, "D", 18)
}

// AddLedgerSheet writes every receipt of a financial year and the year total
func (w *Workbook) AddLedgerSheet(ledger LedgerSheet) error {
	sheet, err := w.newSheet("Ledger " + ledger.FinancialYear)
	if err != nil {
		return err
	}

	if err := w.header(sheet, 1, "Receipt", "Reg No", "Student", "Amount", "Type", "Method", "Date"); err != nil {
		return err
	}
	row := 1
	for _, r := range ledger.Rows {
		row++
		if err := w.setRow(sheet, row, r.ReceiptID, r.RegNo, r.StudentName, r.Amount, r.Type, r.PaymentMethod, formatDate(r.PaymentDate)); err != nil {
			return err
		}
	}
	if err := w.setRow(sheet, row+2, "Total", "", "", ledger.Total); err != nil {
		return err
	}

	return w.f.SetColWidth(sheet, headerColumns, "G", 16)
}

// AddTableSheet writes a header row and one row per record. Nil pointers and
// zero times are left blank; dates use the workbook date format.
func (w *Workbook) AddTableSheet(name string, headers []string, rows [][]interface{}) error {
	sheet, err := w.newSheet(name)
	if err != nil {
		return err
	}
	if err := w.header(sheet, 1, headers...); err != nil {
		return err
	}
	for i, values := range rows {
		cells := make([]interface{}, len(values))
		for j, v := range values {
			cells[j] = cellValue(v)
		}
		if err := w.setRow(sheet, i+2, cells...); err != nil {
			return err
		}
	}

	last, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	return w.f.SetColWidth(sheet, headerColumns, last, 16)
}

func cellValue(v interface{}) interface{} {
	switch t := v.(type) {
	case time.Time:
		return formatDate(t)
	case *time.Time:
		if t == nil {
			return ""
		}
		return formatDate(*t)
	case *int:
		if t == nil {
			return ""
		}
		return *t
	}
	return v
}

// finish drops the placeholder sheet once real sheets exist
func (w *Workbook) finish() error {
	if w.finished || len(w.sheetNames) == 0 {
		return nil
	}
	w.finished = true
	if _, taken := w.sheetNames[strings.ToLower(defaultSheet)]; taken {
		return nil
	}
	if err := w.f.DeleteSheet(defaultSheet); err != nil {
		return fmt.Errorf("failed to drop placeholder sheet: %w", err)
	}
	w.f.SetActiveSheet(0)
	return nil
}

// Write streams the workbook to out
func (w *Workbook) Write(out io.Writer) error {
	if err := w.finish(); err != nil {
		return err
	}
	return w.f.Write(out)
}

// SaveAs writes the workbook to path
func (w *Workbook) SaveAs(path string) error {
	if err := w.finish(); err != nil {
		return err
	}
	return w.f.SaveAs(path)
}

// Close releases the workbook's resources
func (w *Workbook) Close() error {
	return w.f.Close()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
