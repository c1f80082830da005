package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/aerowis/internal/app/controllers"
	"github.com/yigit/aerowis/internal/app/models/dto"
	"github.com/yigit/aerowis/internal/middleware"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Auth       *controllers.AuthController
	Batch      *controllers.BatchController
	Student    *controllers.StudentController
	Instructor *controllers.InstructorController
	Course     *controllers.CourseController
	Exam       *controllers.ExamController
	Result     *controllers.ResultController
	Finance    *controllers.FinanceController
	Report     *controllers.ReportController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	v1.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.APIResponse{
			Success:   true,
			Data:      gin.H{"status": "ok"},
			Timestamp: time.Now(),
		})
	})

	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.Auth.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	batches := authenticated.Group("/batches")
	{
		batches.GET("", c.Batch.ListBatches)
		batches.POST("", c.Batch.CreateBatch)
		batches.GET("/:id", c.Batch.GetBatch)
		batches.PATCH("/:id", c.Batch.UpdateBatch)
		batches.DELETE("/:id", c.Batch.DeleteBatch)
	}

	students := authenticated.Group("/students")
	{
		students.GET("", c.Student.ListStudents)
		students.POST("", c.Student.CreateStudent)
		students.GET("/:regNo", c.Student.GetStudent)
		students.PATCH("/:regNo", c.Student.UpdateStudent)
		students.DELETE("/:regNo", c.Student.DeleteStudent)

		students.PUT("/:regNo/photo", c.Student.UploadPhoto)
		students.GET("/:regNo/photo", c.Student.GetPhoto)
		students.GET("/:regNo/report", c.Report.StudentReport)

		students.GET("/:regNo/payments", c.Finance.ListStudentPayments)
		students.POST("/:regNo/payments", c.Finance.RecordPayment)
		students.GET("/:regNo/financial-summary", c.Finance.FinancialSummary)
	}

	instructors := authenticated.Group("/instructors")
	{
		instructors.GET("", c.Instructor.ListInstructors)
		instructors.POST("", c.Instructor.CreateInstructor)
		instructors.GET("/:id", c.Instructor.GetInstructor)
		instructors.PATCH("/:id", c.Instructor.UpdateInstructor)
		instructors.DELETE("/:id", c.Instructor.DeleteInstructor)
	}

	courses := authenticated.Group("/courses")
	{
		courses.GET("", c.Course.ListCourses)
		courses.POST("", c.Course.CreateCourse)
		courses.GET("/:id", c.Course.GetCourse)
		courses.PATCH("/:id", c.Course.UpdateCourse)
		courses.DELETE("/:id", c.Course.DeleteCourse)
	}

	exams := authenticated.Group("/exams")
	{
		exams.GET("", c.Exam.ListExams)
		exams.POST("", c.Exam.CreateExam)
		exams.GET("/:id", c.Exam.GetExam)
		exams.PATCH("/:id", c.Exam.UpdateExam)
		exams.DELETE("/:id", c.Exam.DeleteExam)

		exams.GET("/:id/report", c.Report.ExamReport)
		exams.GET("/:id/export", c.Report.ExportExam)

		exams.GET("/:id/results", c.Exam.ListResults)
		exams.PUT("/:id/results/:regNo", c.Exam.SaveMark)
		exams.GET("/:id/results/:regNo", c.Exam.GetMark)
	}

	results := authenticated.Group("/results")
	{
		results.GET("/:id", c.Result.GetResult)
		results.DELETE("/:id", c.Result.DeleteResult)
	}

	finance := authenticated.Group("/finance")
	{
		finance.GET("", c.Finance.ListPayments)
		finance.GET("/ledger/:fy", c.Report.Ledger)
		finance.GET("/ledger/:fy/export", c.Report.ExportLedger)

		// Receipt ids contain a slash ("25-26/001")
		finance.GET("/receipts/*receiptId", c.Report.Receipt)
		finance.PATCH("/receipts/*receiptId", c.Finance.UpdatePayment)
		finance.DELETE("/receipts/*receiptId", c.Finance.DeletePayment)
	}
}
