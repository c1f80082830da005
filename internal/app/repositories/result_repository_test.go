package repositories

import (
	"context"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/aerowis/internal/app/models"
	"github.com/yigit/aerowis/internal/domain"
	"github.com/yigit/aerowis/internal/pkg/apperrors"
)

func TestResultUpsert(t *testing.T) {
	mock := newMock(t)
	repo := NewResultRepository(mock)

	mark := 72
	res := &models.Result{StudentID: 5, ExamID: 9, Mark: &mark, Status: domain.StatusPass}

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (student_id, exam_id) DO UPDATE SET obtained_mark = EXCLUDED.obtained_mark, status = EXCLUDED.status RETURNING result_id")).
		WithArgs(int64(5), int64(9), &mark, "Pass").
		WillReturnRows(pgxmock.NewRows([]string{"result_id"}).AddRow(int64(42)))

	require.NoError(t, repo.Upsert(context.Background(), res))
	assert.Equal(t, int64(42), res.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResultUpsert_UnknownExam(t *testing.T) {
	mock := newMock(t)
	repo := NewResultRepository(mock)

	mock.ExpectQuery("INSERT INTO results").
		WithArgs(int64(5), int64(99), pgxmock.AnyArg(), "Absent").
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "results_exam_id_fkey"})

	err := repo.Upsert(context.Background(), &models.Result{StudentID: 5, ExamID: 99, Status: domain.StatusAbsent})
	assert.ErrorIs(t, err, apperrors.ErrExamNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByStudentAndExam(t *testing.T) {
	mock := newMock(t)
	repo := NewResultRepository(mock)

	mark := 30
	mock.ExpectQuery("SELECT result_id, student_id, exam_id, obtained_mark, status FROM results").
		WithArgs(int64(9), int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"result_id", "student_id", "exam_id", "obtained_mark", "status"}).
			AddRow(int64(1), int64(5), int64(9), &mark, "Fail"))

	res, err := repo.FindByStudentAndExam(context.Background(), 5, 9)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFail, res.Status)
	require.NotNil(t, res.Mark)
	assert.Equal(t, 30, *res.Mark)

	mock.ExpectQuery("SELECT result_id").
		WithArgs(int64(9), int64(6)).
		WillReturnError(pgx.ErrNoRows)

	_, err = repo.FindByStudentAndExam(context.Background(), 6, 9)
	assert.ErrorIs(t, err, apperrors.ErrResultNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
