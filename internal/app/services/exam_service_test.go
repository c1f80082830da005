package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/aerowis/internal/app/models"
	"github.com/yigit/aerowis/internal/domain"
	"github.com/yigit/aerowis/internal/pkg/apperrors"
)

func examFixture() (ExamService, *fakeExams) {
	exams := newFakeExams(models.Exam{
		ID: 1, Name: "Meteorology", CourseID: "MET", BatchID: 1, InstructorID: 1,
		MaxScore: 100, CutoffScore: 40, ExamDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	courses := &fakeCourses{rows: map[string]models.Course{"MET": {ID: "MET", Name: "Meteorology"}}}
	batches := newFakeBatches(models.Batch{ID: 1, Name: "Batch 1"})
	instructors := &fakeInstructors{rows: map[int64]models.Instructor{1: {ID: 1, Name: "Capt. Rao"}}}
	return NewExamService(exams, courses, batches, instructors), exams
}

func validExam() *models.Exam {
	return &models.Exam{
		Name: "Air Law", CourseID: "MET", BatchID: 1, InstructorID: 1,
		MaxScore: 50, CutoffScore: 20, ExamDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateExam_Validation(t *testing.T) {
	svc, exams := examFixture()

	tests := []struct {
		name   string
		mutate func(*models.Exam)
		field  string
	}{
		{"missing name", func(e *models.Exam) { e.Name = " " }, "exam_name"},
		{"zero max", func(e *models.Exam) { e.MaxScore = 0 }, "max_score"},
		{"cutoff above max", func(e *models.Exam) { e.CutoffScore = 51 }, "cutoff_score"},
		{"negative cutoff", func(e *models.Exam) { e.CutoffScore = -1 }, "cutoff_score"},
		{"missing date", func(e *models.Exam) { e.ExamDate = time.Time{} }, "exam_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validExam()
			tt.mutate(e)
			_, err := svc.CreateExam(context.Background(), e)
			var custom *apperrors.CustomError
			require.ErrorAs(t, err, &custom)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Equal(t, tt.field, custom.Field)
		})
	}
	assert.Len(t, exams.rows, 1)
}

func TestCreateExam_References(t *testing.T) {
	svc, _ := examFixture()

	e := validExam()
	e.CourseID = "NAV"
	_, err := svc.CreateExam(context.Background(), e)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	e = validExam()
	e.InstructorID = 9
	_, err = svc.CreateExam(context.Background(), e)
	assert.ErrorIs(t, err, apperrors.ErrInstructorNotFound)

	created, err := svc.CreateExam(context.Background(), validExam())
	require.NoError(t, err)
	assert.Equal(t, "Air Law", created.Name)
}

func TestUpdateExam_ValidatesMergedExam(t *testing.T) {
	svc, exams := examFixture()

	lowerMax := 30
	_, err := svc.UpdateExam(context.Background(), 1, models.ExamPatch{MaxScore: &lowerMax})
	var custom *apperrors.CustomError
	require.ErrorAs(t, err, &custom)
	assert.Equal(t, "cutoff_score", custom.Field)
	assert.Empty(t, exams.updates)

	cutoff := 25
	updated, err := svc.UpdateExam(context.Background(), 1, models.ExamPatch{MaxScore: &lowerMax, CutoffScore: &cutoff})
	require.NoError(t, err)
	assert.Equal(t, 30, updated.MaxScore)
	assert.Equal(t, 25, updated.CutoffScore)

	batch := int64(7)
	_, err = svc.UpdateExam(context.Background(), 1, models.ExamPatch{BatchID: &batch})
	assert.ErrorIs(t, err, apperrors.ErrBatchNotFound)

	_, err = svc.UpdateExam(context.Background(), 404, models.ExamPatch{MaxScore: &lowerMax})
	assert.ErrorIs(t, err, apperrors.ErrExamNotFound)
}

func TestUpdateExam_CutoffChangeRederivesStatuses(t *testing.T) {
	students := newFakeStudents(
		models.Student{RegNo: 1, Name: "Asha", BatchID: 1},
		models.Student{RegNo: 2, Name: "Ravi", BatchID: 1},
	)
	exams := newFakeExams(models.Exam{
		ID: 1, Name: "Meteorology", CourseID: "MET", BatchID: 1, InstructorID: 1,
		MaxScore: 100, CutoffScore: 40, ExamDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	results := newFakeResults(students, exams)
	courses := &fakeCourses{rows: map[string]models.Course{"MET": {ID: "MET"}}}
	batches := newFakeBatches(models.Batch{ID: 1, Name: "Batch 1"})
	instructors := &fakeInstructors{rows: map[int64]models.Instructor{1: {ID: 1}}}

	examSvc := NewExamService(exams, courses, batches, instructors)
	resultSvc := NewResultService(results, exams, students)
	reportSvc := NewReportService(ReportStores{
		Batches:     batches,
		Students:    students,
		Instructors: instructors,
		Courses:     courses,
		Exams:       exams,
		Results:     results,
		Finance:     newFakeFinance(students),
	})
	ctx := context.Background()

	saved, err := resultSvc.SaveMark(ctx, 1, 1, intPtr(45))
	require.NoError(t, err)
	require.Equal(t, domain.StatusPass, saved.Status)
	_, err = resultSvc.SaveMark(ctx, 2, 1, nil)
	require.NoError(t, err)

	_, err = examSvc.UpdateExam(ctx, 1, models.ExamPatch{CutoffScore: intPtr(50)})
	require.NoError(t, err)

	stored, err := resultSvc.FindResult(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFail, stored.Status)
	absent, err := resultSvc.FindResult(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAbsent, absent.Status)

	report, err := reportSvc.ExamReport(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Statistics.PassCount)
	assert.Equal(t, 1, report.Statistics.FailCount)
}

func TestUpdateExam_MaxScoreMustCoverRecordedMarks(t *testing.T) {
	students := newFakeStudents(models.Student{RegNo: 1, Name: "Asha", BatchID: 1})
	svc, exams := examFixture()
	results := newFakeResults(students, exams)
	require.NoError(t, results.Upsert(context.Background(), &models.Result{
		StudentID: 1, ExamID: 1, Mark: intPtr(-45), Status: domain.StatusFail,
	}))

	_, err := svc.UpdateExam(context.Background(), 1, models.ExamPatch{MaxScore: intPtr(40), CutoffScore: intPtr(20)})
	var custom *apperrors.CustomError
	require.ErrorAs(t, err, &custom)
	assert.Equal(t, "max_score", custom.Field)
	assert.Equal(t, 100, exams.rows[1].MaxScore)

	_, err = svc.UpdateExam(context.Background(), 1, models.ExamPatch{MaxScore: intPtr(45)})
	assert.NoError(t, err)
}
