package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/aerowis/internal/app/models"
	"github.com/yigit/aerowis/internal/pkg/apperrors"
)

func TestBatchService(t *testing.T) {
	svc := NewBatchService(newFakeBatches())

	_, err := svc.CreateBatch(context.Background(), &models.Batch{Name: "   "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	created, err := svc.CreateBatch(context.Background(), &models.Batch{Name: " CPL 2025 "})
	require.NoError(t, err)
	assert.Equal(t, "CPL 2025", created.Name)

	_, err = svc.CreateBatch(context.Background(), &models.Batch{Name: "CPL 2025"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	blank := ""
	_, err = svc.UpdateBatch(context.Background(), created.ID, models.BatchPatch{Name: &blank})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	assert.ErrorIs(t, svc.DeleteBatch(context.Background(), 999), apperrors.ErrResourceNotFound)
}

func studentFixture() (StudentService, *fakeStudents, *fakePhotos) {
	batches := newFakeBatches(models.Batch{ID: 1, Name: "Batch 1"})
	students := newFakeStudents(models.Student{RegNo: 1001, Name: "Asha", BatchID: 1, Gender: "Female"})
	photos := newFakePhotos()
	return NewStudentService(students, batches, photos), students, photos
}

func TestCreateStudent(t *testing.T) {
	svc, _, _ := studentFixture()

	tests := []struct {
		name    string
		student models.Student
		field   string
	}{
		{"missing reg no", models.Student{Name: "A", BatchID: 1}, "reg_no"},
		{"missing name", models.Student{RegNo: 5, BatchID: 1}, "name"},
		{"missing batch", models.Student{RegNo: 5, Name: "A"}, "batch_id"},
		{"bad email", models.Student{RegNo: 5, Name: "A", BatchID: 1, Email: "not-mail"}, "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.student
			_, err := svc.CreateStudent(context.Background(), &s)
			var custom *apperrors.CustomError
			require.ErrorAs(t, err, &custom)
			assert.Equal(t, tt.field, custom.Field)
		})
	}

	_, err := svc.CreateStudent(context.Background(), &models.Student{RegNo: 5, Name: "A", BatchID: 9})
	assert.ErrorIs(t, err, apperrors.ErrBatchNotFound)

	_, err = svc.CreateStudent(context.Background(), &models.Student{RegNo: 1001, Name: "Dup", BatchID: 1})
	assert.ErrorIs(t, err, apperrors.ErrStudentExists)

	created, err := svc.CreateStudent(context.Background(), &models.Student{RegNo: 1002, Name: " Ravi ", BatchID: 1})
	require.NoError(t, err)
	assert.Equal(t, "Ravi", created.Name)
}

func TestUpdateStudent_ChecksNewBatch(t *testing.T) {
	svc, _, _ := studentFixture()

	batch := int64(3)
	_, err := svc.UpdateStudent(context.Background(), 1001, models.StudentPatch{BatchID: &batch})
	assert.ErrorIs(t, err, apperrors.ErrBatchNotFound)

	address := "7 Runway Lane"
	updated, err := svc.UpdateStudent(context.Background(), 1001, models.StudentPatch{Address: &address})
	require.NoError(t, err)
	assert.Equal(t, address, updated.Address)
}

func TestStudentPhotos(t *testing.T) {
	svc, _, photos := studentFixture()

	photo, err := svc.GetPhoto(context.Background(), 1001)
	require.NoError(t, err)
	assert.True(t, photo.IsDefault)
	assert.Equal(t, "/photos/default_female.png", photo.URL)

	_, err = svc.UploadPhoto(context.Background(), 9, bytes.NewReader([]byte("img")))
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	saved, err := svc.UploadPhoto(context.Background(), 1001, bytes.NewReader([]byte("img")))
	require.NoError(t, err)
	assert.Equal(t, "/photos/1001.png", saved.URL)

	photo, err = svc.GetPhoto(context.Background(), 1001)
	require.NoError(t, err)
	assert.False(t, photo.IsDefault)

	require.NoError(t, svc.DeleteStudent(context.Background(), 1001))
	assert.Equal(t, []int64{1001}, photos.deleted)
	assert.False(t, photos.Has(1001))
}

func TestCourseAndInstructorValidation(t *testing.T) {
	courses := NewCourseService(&fakeCourses{rows: map[string]models.Course{}})
	_, err := courses.CreateCourse(context.Background(), &models.Course{ID: " ", Name: "Air Law"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	_, err = courses.CreateCourse(context.Background(), &models.Course{ID: "LAW", Name: ""})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	c, err := courses.CreateCourse(context.Background(), &models.Course{ID: " LAW ", Name: "Air Law"})
	require.NoError(t, err)
	assert.Equal(t, "LAW", c.ID)

	instructors := NewInstructorService(&fakeInstructors{rows: map[int64]models.Instructor{}})
	_, err = instructors.CreateInstructor(context.Background(), &models.Instructor{Name: "Rao", Email: "rao@"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	in, err := instructors.CreateInstructor(context.Background(), &models.Instructor{Name: "Rao", Email: "rao@academy.in"})
	require.NoError(t, err)
	assert.NotZero(t, in.ID)
}
