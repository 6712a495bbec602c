package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/quizace/quizace-backend/config"
	"github.com/quizace/quizace-backend/database"
	_ "github.com/quizace/quizace-backend/docs" // Swagger docs - auto-generated
	"github.com/quizace/quizace-backend/internal/clock"
	studentctrl "github.com/quizace/quizace-backend/internal/controller/student"
	teacherctrl "github.com/quizace/quizace-backend/internal/controller/teacher"
	"github.com/quizace/quizace-backend/internal/logger"
	"github.com/quizace/quizace-backend/internal/middleware"
	"github.com/quizace/quizace-backend/internal/model"
	"github.com/quizace/quizace-backend/internal/repository"
	"github.com/quizace/quizace-backend/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Quizace Attempt & Scoring API
// @version 1.0
// @description Attempt lifecycle and scoring engine: practice papers, exam assignments, lazy expiration, teacher review and the wrong book.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			clock.New,
			NewGinEngine,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewSubjectRepository,
			repository.NewQuestionRepository,
			repository.NewAttemptRepository,
			repository.NewAssignmentRepository,
			repository.NewWrongBookRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewQuestionSelector,
			service.NewEvaluator,
			service.NewExpirationGuard,
			service.NewAttemptFactory,
			service.NewAttemptService,
			service.NewSubmissionService,
			service.NewReviewService,
			service.NewAssignmentService,
			service.NewWrongBookService,
			service.NewSubjectService,
			service.NewQuestionService,
		),

		// API Controllers Layer
		fx.Provide(
			studentctrl.NewAttemptController,
			studentctrl.NewAssignmentController,
			studentctrl.NewSubjectController,
			studentctrl.NewWrongBookController,
			teacherctrl.NewQuestionController,
			teacherctrl.NewAssignmentController,
			teacherctrl.NewReviewController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	attemptCtrl *studentctrl.AttemptController,
	studentAssignmentCtrl *studentctrl.AssignmentController,
	subjectCtrl *studentctrl.SubjectController,
	wrongBookCtrl *studentctrl.WrongBookController,
	questionCtrl *teacherctrl.QuestionController,
	teacherAssignmentCtrl *teacherctrl.AssignmentController,
	reviewCtrl *teacherctrl.ReviewController,
) {
	api := router.Group("/api/v1")
	api.Use(middleware.Auth(cfg.Auth.JWTSecret))

	// Student routes
	{
		api.GET("/subjects", subjectCtrl.ListSubjects)
		api.GET("/subjects/:subject_id/questions", subjectCtrl.BrowseQuestions)

		api.POST("/attempts/practice", attemptCtrl.StartPractice)
		api.GET("/attempts", attemptCtrl.History)
		api.GET("/attempts/ongoing", attemptCtrl.Ongoing)
		api.GET("/attempts/pending-review", attemptCtrl.PendingReviews)
		api.GET("/attempts/:attempt_id", attemptCtrl.GetAttemptDetail)
		api.POST("/attempts/:attempt_id/submit", attemptCtrl.Submit)
		api.PUT("/attempts/:attempt_id/answers", attemptCtrl.SaveAnswers)

		api.GET("/assignments", studentAssignmentCtrl.ListAssignments)
		api.POST("/assignments/:assignment_id/attempts", studentAssignmentCtrl.StartAssignment)

		api.POST("/wrong-book", wrongBookCtrl.AddEntry)
		api.GET("/wrong-book", wrongBookCtrl.ListEntries)
		api.DELETE("/wrong-book/:entry_id", wrongBookCtrl.RemoveEntry)
	}

	// Teacher routes
	teacherGroup := api.Group("/teacher")
	teacherGroup.Use(middleware.RequireRole(model.RoleTeacher, model.RoleAdmin))
	{
		teacherGroup.POST("/questions", questionCtrl.CreateQuestion)
		teacherGroup.GET("/questions/:question_id", questionCtrl.GetQuestion)
		teacherGroup.PUT("/questions/:question_id", questionCtrl.UpdateQuestion)

		teacherGroup.POST("/assignments", teacherAssignmentCtrl.CreateAssignment)
		teacherGroup.GET("/assignments", teacherAssignmentCtrl.ListAssignments)
		teacherGroup.GET("/assignments/:assignment_id/attempts", teacherAssignmentCtrl.ListSubmissions)

		teacherGroup.GET("/reviews/pending", reviewCtrl.PendingReviews)
		teacherGroup.GET("/reviews/pending/by-student", reviewCtrl.PendingReviewsByStudent)
		teacherGroup.GET("/reviews/attempts/:attempt_id", reviewCtrl.AttemptDetail)
		teacherGroup.POST("/reviews/attempts/:attempt_id", reviewCtrl.ReviewAttempt)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Quizace API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Subject{},
		&model.Question{},
		&model.ExamAssignment{},
		&model.PracticeAttempt{},
		&model.PracticeAttemptItem{},
		&model.WrongBookEntry{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
