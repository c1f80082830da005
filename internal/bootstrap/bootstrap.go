package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/aerowis/internal/app/controllers"
	appMigrations "github.com/yigit/aerowis/internal/app/migrations"
	appRepos "github.com/yigit/aerowis/internal/app/repositories"
	appRoutes "github.com/yigit/aerowis/internal/app/routes"
	appServices "github.com/yigit/aerowis/internal/app/services"
	"github.com/yigit/aerowis/internal/config"
	"github.com/yigit/aerowis/internal/db"
	appMiddleware "github.com/yigit/aerowis/internal/middleware"
	pkgAuth "github.com/yigit/aerowis/internal/pkg/auth"
	"github.com/yigit/aerowis/internal/pkg/filestorage"
	"github.com/yigit/aerowis/internal/pkg/helpers"
	"github.com/yigit/aerowis/internal/pkg/logger"
	"github.com/yigit/aerowis/internal/pkg/validation"
	"github.com/yigit/aerowis/internal/scheduler"
	"github.com/yigit/aerowis/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	Photos         *filestorage.LocalPhotoStore
	BackupJob      *scheduler.BackupJob
	Scheduler      *scheduler.Scheduler // nil when backups are disabled
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, lgr)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.Photos, err = filestorage.NewLocalPhotoStore(filestorage.LocalConfig{
		Dir:           cfg.Photos.Dir,
		BaseURL:       cfg.Photos.BaseURL,
		DefaultMale:   cfg.Photos.DefaultMale,
		DefaultFemale: cfg.Photos.DefaultFemale,
		Size:          cfg.Photos.Size,
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize photo storage")
		return nil, fmt.Errorf("failed to initialize photo storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 12*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Services = appServices.NewServices(appServices.Deps{
		Repos:            deps.Repos,
		JWT:              deps.JWTService,
		Photos:           deps.Photos,
		MaxIssueAttempts: cfg.Ledger.MaxIssueAttempts,
		Logger:           logger.Component("auth"),
	})
	svc := deps.Services

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := seed.CreateDefaultData(ctx, svc.AuthService, cfg.Auth.DefaultUsername, cfg.Auth.DefaultPassword, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = appRoutes.Controllers{
		Auth:       appControllers.NewAuthController(svc.AuthService, lgr),
		Batch:      appControllers.NewBatchController(svc.BatchService),
		Student:    appControllers.NewStudentController(svc.StudentService),
		Instructor: appControllers.NewInstructorController(svc.InstructorService),
		Course:     appControllers.NewCourseController(svc.CourseService),
		Exam:       appControllers.NewExamController(svc.ExamService, svc.ResultService),
		Result:     appControllers.NewResultController(svc.ResultService),
		Finance:    appControllers.NewFinanceController(svc.FinanceService),
		Report:     appControllers.NewReportController(svc.ReportService, svc.StudentService),
	}

	deps.BackupJob = scheduler.NewBackupJob(svc.ReportService, cfg.Backup.Dir, logger.Component("backup"))
	if cfg.Backup.Enabled {
		deps.Scheduler, err = scheduler.New(cfg.Backup.Schedule, deps.BackupJob, logger.Component("backup"))
		if err != nil {
			return nil, err
		}
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := validation.RegisterRules(v); err != nil {
			lgr.Fatal().Err(err).Msg("Failed to register validation rules")
		}
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger())

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
