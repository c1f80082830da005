package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/aerowis/internal/app/models"
	"github.com/yigit/aerowis/internal/domain"
	"github.com/yigit/aerowis/internal/pkg/apperrors"
)

func TestCreateExamRequest_ToModel(t *testing.T) {
	exam, err := CreateExamRequest{
		Name: "Air Law", CourseID: "LAW", BatchID: 1, InstructorID: 2,
		MaxScore: 50, CutoffScore: 20, ExamDate: "2025-06-10",
	}.ToModel()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), exam.ExamDate)

	_, err = CreateExamRequest{ExamDate: "10/06/2025"}.ToModel()
	var custom *apperrors.CustomError
	require.ErrorAs(t, err, &custom)
	assert.Equal(t, "exam_date", custom.Field)
}

func TestUpdateStudentRequest_ToPatch(t *testing.T) {
	empty := ""
	dob := "2001-02-03"
	patch, err := UpdateStudentRequest{Phone: &empty, DOB: &dob}.ToPatch()
	require.NoError(t, err)

	changes := patch.Changes()
	assert.Nil(t, changes["phone"])
	assert.Contains(t, changes, "phone")
	assert.Equal(t, time.Date(2001, 2, 3, 0, 0, 0, 0, time.UTC), changes["dob"])
	assert.NotContains(t, changes, "name")
}

func TestRecordPaymentRequest_ToModel(t *testing.T) {
	rec, err := RecordPaymentRequest{Amount: 500, Type: "Exam", PaymentMethod: "CASH", PaymentDate: "2025-04-01"}.ToModel(1001)
	require.NoError(t, err)
	assert.Equal(t, int64(1001), rec.StudentID)
	assert.Equal(t, domain.PaymentCash, rec.PaymentMethod)
	assert.Empty(t, rec.ReceiptID)
}

func TestFromExamReport_MarksMissingResultsAbsent(t *testing.T) {
	mark := 45
	report := &models.ExamReport{
		Exam: models.Exam{ID: 1, MaxScore: 50, ExamDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		Rows: []models.ExamReportRow{
			{Student: models.Student{RegNo: 1, Name: "Asha"}, Result: &models.Result{ID: 9, Mark: &mark, Status: domain.StatusPass}},
			{Student: models.Student{RegNo: 2, Name: "Ravi"}},
		},
	}

	resp := FromExamReport(report)
	require.Len(t, resp.Rows, 2)
	assert.Equal(t, "2025-06-01", resp.Exam.ExamDate)
	require.NotNil(t, resp.Rows[0].PerformancePercent)
	assert.Equal(t, 90.0, *resp.Rows[0].PerformancePercent)
	assert.Equal(t, domain.StatusAbsent, resp.Rows[1].Status)
	assert.Nil(t, resp.Rows[1].ResultID)
}

func TestFromBatch_FormatsDates(t *testing.T) {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	resp := FromBatch(&models.Batch{ID: 1, Name: "A", StartDate: &start})
	require.NotNil(t, resp.StartDate)
	assert.Equal(t, "2025-04-01", *resp.StartDate)
	assert.Nil(t, FromBatch(&models.Batch{ID: 2}).StartDate)
}

func intPtr(v int) *int { return &v }

func TestSaveMarkRequest_DistinguishesMissingFromNull(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    *int
		wantErr bool
	}{
		{"mark", `{"obtained_mark":72}`, intPtr(72), false},
		{"negative mark", `{"obtained_mark":-3}`, intPtr(-3), false},
		{"explicit null is absent", `{"obtained_mark":null}`, nil, false},
		{"missing key", `{}`, nil, true},
		{"misspelled key", `{"mark":72}`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req SaveMarkRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			mark, err := req.Mark()
			if tt.wantErr {
				var custom *apperrors.CustomError
				require.ErrorAs(t, err, &custom)
				assert.Equal(t, "obtained_mark", custom.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, mark)
		})
	}

	var req SaveMarkRequest
	assert.Error(t, json.Unmarshal([]byte(`{"obtained_mark":"seventy"}`), &req))
}
