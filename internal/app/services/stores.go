package services

import (
	"context"

	"github.com/yigit/aerowis/internal/app/models"
	"github.com/yigit/aerowis/internal/app/repositories"
)

// The services depend on these narrow views of the repositories so they can be
// exercised against in-memory implementations.

// BatchStore persists batches
type BatchStore interface {
	Create(ctx context.Context, batch *models.Batch) error
	GetByID(ctx context.Context, id int64) (*models.Batch, error)
	List(ctx context.Context) ([]models.Batch, error)
	Update(ctx context.Context, id int64, patch models.BatchPatch) error
	Delete(ctx context.Context, id int64) error
}

// StudentStore persists students
type StudentStore interface {
	Create(ctx context.Context, s *models.Student) error
	GetByRegNo(ctx context.Context, regNo int64) (*models.Student, error)
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	Update(ctx context.Context, regNo int64, patch models.StudentPatch) error
	Delete(ctx context.Context, regNo int64) error
}

// InstructorStore persists instructors
type InstructorStore interface {
	Create(ctx context.Context, in *models.Instructor) error
	GetByID(ctx context.Context, id int64) (*models.Instructor, error)
	List(ctx context.Context) ([]models.Instructor, error)
	Update(ctx context.Context, id int64, patch models.InstructorPatch) error
	Delete(ctx context.Context, id int64) error
}

// CourseStore persists courses
type CourseStore interface {
	Create(ctx context.Context, c *models.Course) error
	GetByID(ctx context.Context, id string) (*models.Course, error)
	List(ctx context.Context) ([]models.Course, error)
	Update(ctx context.Context, id string, patch models.CoursePatch) error
	Delete(ctx context.Context, id string) error
}

// ExamStore persists exams
type ExamStore interface {
	Create(ctx context.Context, e *models.Exam) error
	GetByID(ctx context.Context, id int64) (*models.Exam, error)
	List(ctx context.Context, filter models.ExamFilter) ([]models.Exam, error)
	Update(ctx context.Context, id int64, patch models.ExamPatch) error
	Delete(ctx context.Context, id int64) error
}

// ResultStore persists exam results
type ResultStore interface {
	Upsert(ctx context.Context, res *models.Result) error
	FindByStudentAndExam(ctx context.Context, studentID, examID int64) (*models.Result, error)
	GetByID(ctx context.Context, id int64) (*models.Result, error)
	Delete(ctx context.Context, id int64) error
	ListByExam(ctx context.Context, examID int64) ([]models.Result, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.Result, error)
}

// FinanceStore persists fee payments
type FinanceStore interface {
	FindLatestReceiptForPrefix(ctx context.Context, prefix string) (*string, error)
	Issue(ctx context.Context, fy string, next repositories.ReceiptIDFunc, rec *models.FinanceRecord) error
	GetByReceiptID(ctx context.Context, receiptID string) (*models.FinanceRecord, error)
	List(ctx context.Context, filter models.FinanceFilter) ([]models.FinanceRecord, int64, error)
	ListByFinancialYear(ctx context.Context, fy string) ([]models.FinanceRecord, error)
	Update(ctx context.Context, receiptID string, patch models.FinancePatch) error
	Delete(ctx context.Context, receiptID string) error
}

// OperatorStore persists API operator accounts
type OperatorStore interface {
	Create(ctx context.Context, op *models.Operator) error
	GetByUsername(ctx context.Context, username string) (*models.Operator, error)
}

var (
	_ BatchStore      = (*repositories.BatchRepository)(nil)
	_ StudentStore    = (*repositories.StudentRepository)(nil)
	_ InstructorStore = (*repositories.InstructorRepository)(nil)
	_ CourseStore     = (*repositories.CourseRepository)(nil)
	_ ExamStore       = (*repositories.ExamRepository)(nil)
	_ ResultStore     = (*repositories.ResultRepository)(nil)
	_ FinanceStore    = (*repositories.FinanceRepository)(nil)
	_ OperatorStore   = (*repositories.OperatorRepository)(nil)
)
