package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yigit/aerowis/internal/domain"
)

func TestStudentPatchChanges(t *testing.T) {
	name := "Asha"
	blank := ""
	attendance := 12

	changes := StudentPatch{Name: &name, Email: &blank, Attendance: &attendance}.Changes()

	assert.Len(t, changes, 3)
	assert.Equal(t, "Asha", changes["name"])
	assert.Nil(t, changes["email"])
	assert.Contains(t, changes, "email")
	assert.Equal(t, 12, changes["attendance"])
}

func TestExamPatchApply(t *testing.T) {
	exam := Exam{ID: 1, Name: "Unit 1", MaxScore: 100, CutoffScore: 40}
	maxScore := 50
	date := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	merged := ExamPatch{MaxScore: &maxScore, ExamDate: &date}.Apply(exam)

	assert.Equal(t, 50, merged.MaxScore)
	assert.Equal(t, 40, merged.CutoffScore)
	assert.Equal(t, date, merged.ExamDate)
	assert.Equal(t, 100, exam.MaxScore)
}

func TestFinancePatchChanges(t *testing.T) {
	method := domain.PaymentCash
	changes := FinancePatch{PaymentMethod: &method}.Changes()
	assert.Equal(t, map[string]interface{}{"payment_method": "CASH"}, changes)
	assert.Empty(t, FinancePatch{}.Changes())
}

func TestResultConversions(t *testing.T) {
	mark := 55
	r := Result{ID: 3, StudentID: 7, ExamID: 2, Mark: &mark, Status: domain.StatusPass, StudentName: "Ravi", ExamName: "Unit 1", MaxScore: 100}

	assert.Equal(t, domain.ScoredResult{StudentID: 7, StudentName: "Ravi", Mark: &mark, Status: domain.StatusPass}, r.ToScoredResult())
	sr := r.ToStudentResult()
	assert.Equal(t, int64(3), sr.ResultID)
	assert.Equal(t, 100, sr.MaxScore)
}
