package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/aerowis/internal/app/models"
	"github.com/yigit/aerowis/internal/db"
	"github.com/yigit/aerowis/internal/pkg/apperrors"
	"github.com/yigit/aerowis/internal/pkg/dberrors"
	"github.com/yigit/aerowis/internal/pkg/helpers"
	"github.com/yigit/aerowis/internal/pkg/logger"
)

var studentColumns = helpers.NewColumnSet(
	"name", "batch_id", "join_date", "gender", "phone", "address", "dob", "blood_group",
	"father_name", "father_phone", "mother_name", "mother_phone",
	"education_qualification", "email", "documents_link", "total_classes", "attendance",
)

// StudentRepository handles student database operations
type StudentRepository struct {
	db db.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(pool db.Pool) *StudentRepository {
	return &StudentRepository{
		db: pool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Common select with the batch join. Optional text columns come back as "".
func (r *StudentRepository) selectStudents() squirrel.SelectBuilder {
	return r.sb.Select(
		"s.reg_no", "s.name", "s.batch_id", "s.join_date",
		"COALESCE(s.gender, '')", "COALESCE(s.phone, '')", "COALESCE(s.address, '')", "s.dob",
		"COALESCE(s.blood_group, '')", "COALESCE(s.father_name, '')", "COALESCE(s.father_phone, '')",
		"COALESCE(s.mother_name, '')", "COALESCE(s.mother_phone, '')",
		"COALESCE(s.education_qualification, '')", "COALESCE(s.email, '')", "COALESCE(s.documents_link, '')",
		"s.total_classes", "s.attendance",
		"b.batch_name", "b.start_date",
	).From("students s").
		Join("batches b ON b.batch_id = s.batch_id")
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.RegNo, &s.Name, &s.BatchID, &s.JoinDate,
		&s.Gender, &s.Phone, &s.Address, &s.DOB,
		&s.BloodGroup, &s.FatherName, &s.FatherPhone,
		&s.MotherName, &s.MotherPhone,
		&s.EducationQualification, &s.Email, &s.DocumentsLink,
		&s.TotalClasses, &s.Attendance,
		&s.BatchName, &s.BatchStartDate,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a student under its externally assigned registration number
func (r *StudentRepository) Create(ctx context.Context, s *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns(
			"reg_no", "name", "batch_id", "join_date", "gender", "phone", "address", "dob",
			"blood_group", "father_name", "father_phone", "mother_name", "mother_phone",
			"education_qualification", "email", "documents_link", "total_classes", "attendance",
		).
		Values(
			s.RegNo, s.Name, s.BatchID, s.JoinDate,
			helpers.NullIfEmpty(s.Gender), helpers.NullIfEmpty(s.Phone), helpers.NullIfEmpty(s.Address), s.DOB,
			helpers.NullIfEmpty(s.BloodGroup), helpers.NullIfEmpty(s.FatherName), helpers.NullIfEmpty(s.FatherPhone),
			helpers.NullIfEmpty(s.MotherName), helpers.NullIfEmpty(s.MotherPhone),
			helpers.NullIfEmpty(s.EducationQualification), helpers.NullIfEmpty(s.Email), helpers.NullIfEmpty(s.DocumentsLink),
			s.TotalClasses, s.Attendance,
		).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "students_pkey"):
			return apperrors.ErrStudentExists
		case dberrors.IsForeignKeyViolation(err, "students_batch_id_fkey"):
			return apperrors.ErrBatchNotFound
		}
		logger.Error().Err(err).Int64("regNo", s.RegNo).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

// GetByRegNo retrieves a student with batch details
func (r *StudentRepository) GetByRegNo(ctx context.Context, regNo int64) (*models.Student, error) {
	sql, args, err := r.selectStudents().Where(squirrel.Eq{"s.reg_no": regNo}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	s, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("regNo", regNo).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return s, nil
}

// List returns students ordered by name, optionally narrowed by batch and a search term
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	query := r.selectStudents()
	if filter.BatchID != nil {
		query = query.Where(squirrel.Eq{"s.batch_id": *filter.BatchID})
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		pattern := "%" + term + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"s.name": pattern},
			squirrel.Expr("CAST(s.reg_no AS TEXT) ILIKE ?", pattern),
			squirrel.ILike{"s.phone": pattern},
		})
	}

	sql, args, err := query.OrderBy("s.name", "s.reg_no").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list students SQL")
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	students := make([]models.Student, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning student row")
			return nil, fmt.Errorf("error scanning student: %w", err)
		}
		students = append(students, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating students: %w", err)
	}
	return students, nil
}

// Update applies a partial update
func (r *StudentRepository) Update(ctx context.Context, regNo int64, patch models.StudentPatch) error {
	set, err := helpers.BuildSetMap(patch.Changes(), studentColumns)
	if err != nil {
		return err
	}

	sql, args, err := r.sb.Update("students").SetMap(set).Where(squirrel.Eq{"reg_no": regNo}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update student SQL")
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err, "students_batch_id_fkey") {
			return apperrors.ErrBatchNotFound
		}
		logger.Error().Err(err).Int64("regNo", regNo).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Delete removes a student. Results and payments go with it.
func (r *StudentRepository) Delete(ctx context.Context, regNo int64) error {
	sql, args, err := r.sb.Delete("students").Where(squirrel.Eq{"reg_no": regNo}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete student SQL")
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("regNo", regNo).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}
