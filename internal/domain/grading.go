package domain

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/yigit/aerowis/internal/pkg/apperrors"
)

// ResultStatus is the derived outcome of a student's exam attempt
type ResultStatus string

const (
	StatusPass   ResultStatus = "Pass"
	StatusFail   ResultStatus = "Fail"
	StatusAbsent ResultStatus = "Absent"
)

// Valid reports whether s is one of the known statuses
func (s ResultStatus) Valid() bool {
	switch s {
	case StatusPass, StatusFail, StatusAbsent:
		return true
	}
	return false
}

// EvaluateStatus derives the status of a mark against the exam cutoff.
// No mark means the student was absent.
func EvaluateStatus(mark *int, cutoff int) ResultStatus {
	if mark == nil {
		return StatusAbsent
	}
	if *mark >= cutoff {
		return StatusPass
	}
	return StatusFail
}

// ValidateMark checks that a submitted mark lies within [-maxScore, maxScore].
// Negative marks are allowed for exams with negative marking.
func ValidateMark(mark *int, maxScore int) error {
	if mark == nil {
		return nil
	}
	if *mark > maxScore || *mark < -maxScore {
		return apperrors.NewValidationError("obtained_mark",
			fmt.Sprintf("obtained mark %d is outside the range -%d..%d", *mark, maxScore, maxScore))
	}
	return nil
}

// PerformancePercent is mark as a percentage of maxScore, nil when absent.
func PerformancePercent(mark *int, maxScore int) *float64 {
	if mark == nil || maxScore <= 0 {
		return nil
	}
	p := round2(float64(*mark) / float64(maxScore) * 100)
	return &p
}

// ScoredResult is one student's result within an exam
type ScoredResult struct {
	StudentID   int64        `json:"student_id"`
	StudentName string       `json:"student_name"`
	Mark        *int         `json:"obtained_mark"`
	Status      ResultStatus `json:"status"`
}

// TopScorer identifies the best attended result of an exam
type TopScorer struct {
	StudentID   int64  `json:"student_id"`
	StudentName string `json:"student_name"`
	Mark        int    `json:"obtained_mark"`
}

// ExamStatistics aggregates the results of one exam
type ExamStatistics struct {
	TotalStudents int        `json:"total_students"`
	Attended      int        `json:"attended"`
	Absent        int        `json:"absent"`
	PassCount     int        `json:"pass_count"`
	FailCount     int        `json:"fail_count"`
	PassPercent   float64    `json:"pass_percent"`
	AverageScore  *float64   `json:"average_score"`
	TopScorer     *TopScorer `json:"top_scorer,omitempty"`
}

// ComputeExamStatistics aggregates the results of an exam taken by a batch of
// rosterSize students. Students without a result row count as absent. The top
// scorer tie goes to the lowest student id.
func ComputeExamStatistics(results []ScoredResult, rosterSize int) ExamStatistics {
	stats := ExamStatistics{TotalStudents: rosterSize}
	if len(results) > stats.TotalStudents {
		stats.TotalStudents = len(results)
	}

	total := 0
	for _, r := range results {
		if r.Mark == nil {
			continue
		}
		stats.Attended++
		total += *r.Mark

		switch r.Status {
		case StatusPass:
			stats.PassCount++
		case StatusFail:
			stats.FailCount++
		}

		if stats.TopScorer == nil ||
			*r.Mark > stats.TopScorer.Mark ||
			(*r.Mark == stats.TopScorer.Mark && r.StudentID < stats.TopScorer.StudentID) {
			stats.TopScorer = &TopScorer{StudentID: r.StudentID, StudentName: r.StudentName, Mark: *r.Mark}
		}
	}

	stats.Absent = stats.TotalStudents - stats.Attended
	if stats.Attended > 0 {
		stats.PassPercent = round2(float64(stats.PassCount) / float64(stats.Attended) * 100)
		avg := round2(float64(total) / float64(stats.Attended))
		stats.AverageScore = &avg
	}

	return stats
}

// StudentResult is one exam result of a student, with the exam it belongs to
type StudentResult struct {
	ResultID    int64        `json:"result_id"`
	ExamID      int64        `json:"exam_id"`
	ExamName    string       `json:"exam_name"`
	ExamDate    time.Time    `json:"exam_date"`
	MaxScore    int          `json:"max_score"`
	CutoffScore int          `json:"cutoff_score"`
	Mark        *int         `json:"obtained_mark"`
	Status      ResultStatus `json:"status"`
}

// AcademicSummary aggregates all results of one student
type AcademicSummary struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	Absent   int     `json:"absent"`
	Average  float64 `json:"average"`
	PassRate float64 `json:"pass_rate"`
}

// ComputeAcademicSummary aggregates a student's results. Average only counts
// attended exams and pass rate is relative to them as well.
func ComputeAcademicSummary(results []StudentResult) AcademicSummary {
	summary := AcademicSummary{Total: len(results)}

	sum, scored := 0, 0
	for _, r := range results {
		switch r.Status {
		case StatusPass:
			summary.Passed++
		case StatusFail:
			summary.Failed++
		}
		if r.Mark == nil {
			summary.Absent++
			continue
		}
		sum += *r.Mark
		scored++
	}

	if scored > 0 {
		summary.Average = round2(float64(sum) / float64(scored))
	}
	if denominator := summary.Total - summary.Absent; denominator > 0 {
		summary.PassRate = round2(float64(summary.Passed) / float64(denominator) * 100)
	}

	return summary
}

// MonthKey returns the "YYYY-MM" bucket of t
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// FilterByMonth keeps the results whose exam took place in month ("YYYY-MM").
// An empty month keeps everything.
func FilterByMonth(results []StudentResult, month string) []StudentResult {
	if month == "" {
		return results
	}
	filtered := make([]StudentResult, 0, len(results))
	for _, r := range results {
		if !r.ExamDate.IsZero() && MonthKey(r.ExamDate) == month {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// AvailableMonths lists the distinct exam months of results, newest first.
func AvailableMonths(results []StudentResult) []string {
	seen := make(map[string]struct{})
	months := make([]string, 0)
	for _, r := range results {
		if r.ExamDate.IsZero() {
			continue
		}
		key := MonthKey(r.ExamDate)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		months = append(months, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

// MonthlyAverage is the mean attended mark of one month
type MonthlyAverage struct {
	Month   string  `json:"month"`
	Average float64 `json:"average"`
	Exams   int     `json:"exams"`
}

// MonthlyAverages averages attended marks per exam month, oldest month first.
func MonthlyAverages(results []StudentResult) []MonthlyAverage {
	type bucket struct{ sum, count int }
	buckets := make(map[string]*bucket)
	for _, r := range results {
		if r.ExamDate.IsZero() || r.Mark == nil {
			continue
		}
		key := MonthKey(r.ExamDate)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.sum += *r.Mark
		b.count++
	}

	averages := make([]MonthlyAverage, 0, len(buckets))
	for month, b := range buckets {
		averages = append(averages, MonthlyAverage{
			Month:   month,
			Average: round2(float64(b.sum) / float64(b.count)),
			Exams:   b.count,
		})
	}
	sort.Slice(averages, func(i, j int) bool { return averages[i].Month < averages[j].Month })
	return averages
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
