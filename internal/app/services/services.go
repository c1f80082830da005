package services

import (
	"github.com/rs/zerolog"
	"github.com/yigit/aerowis/internal/app/repositories"
	"github.com/yigit/aerowis/internal/pkg/auth"
	"github.com/yigit/aerowis/internal/pkg/filestorage"
)

// Services holds all the service instances
type Services struct {
	AuthService       *AuthService
	BatchService      BatchService
	StudentService    StudentService
	InstructorService InstructorService
	CourseService     CourseService
	ExamService       ExamService
	ResultService     ResultService
	FinanceService    FinanceService
	ReportService     ReportService
}

// Deps are the collaborators the services are built from
type Deps struct {
	Repos            *repositories.Repositories
	JWT              *auth.JWTService
	Photos           filestorage.PhotoStore
	MaxIssueAttempts int
	Logger           zerolog.Logger
}

// NewServices wires every service to its repositories
func NewServices(d Deps) *Services {
	r := d.Repos
	return &Services{
		AuthService:       NewAuthService(r.OperatorRepository, d.JWT, d.Logger),
		BatchService:      NewBatchService(r.BatchRepository),
		StudentService:    NewStudentService(r.StudentRepository, r.BatchRepository, d.Photos),
		InstructorService: NewInstructorService(r.InstructorRepository),
		CourseService:     NewCourseService(r.CourseRepository),
		ExamService:       NewExamService(r.ExamRepository, r.CourseRepository, r.BatchRepository, r.InstructorRepository),
		ResultService:     NewResultService(r.ResultRepository, r.ExamRepository, r.StudentRepository),
		FinanceService:    NewFinanceService(r.FinanceRepository, r.StudentRepository, d.MaxIssueAttempts),
		ReportService: NewReportService(ReportStores{
			Batches:     r.BatchRepository,
			Students:    r.StudentRepository,
			Instructors: r.InstructorRepository,
			Courses:     r.CourseRepository,
			Exams:       r.ExamRepository,
			Results:     r.ResultRepository,
			Finance:     r.FinanceRepository,
		}),
	}
}
