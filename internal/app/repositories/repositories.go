package repositories

import (
	"github.com/yigit/aerowis/internal/db"
	"github.com/yigit/aerowis/internal/domain"
)

// Repositories holds all the repository instances
type Repositories struct {
	BatchRepository      *BatchRepository
	StudentRepository    *StudentRepository
	InstructorRepository *InstructorRepository
	CourseRepository     *CourseRepository
	ExamRepository       *ExamRepository
	ResultRepository     *ResultRepository
	FinanceRepository    *FinanceRepository
	OperatorRepository   *OperatorRepository
}

// NewRepositories initializes all repositories
func NewRepositories(pool db.Pool) *Repositories {
	return &Repositories{
		BatchRepository:      NewBatchRepository(pool),
		StudentRepository:    NewStudentRepository(pool),
		InstructorRepository: NewInstructorRepository(pool),
		CourseRepository:     NewCourseRepository(pool),
		ExamRepository:       NewExamRepository(pool),
		ResultRepository:     NewResultRepository(pool),
		FinanceRepository:    NewFinanceRepository(pool),
		OperatorRepository:   NewOperatorRepository(pool),
	}
}

func statusOf(s string) domain.ResultStatus {
	return domain.ResultStatus(s)
}
