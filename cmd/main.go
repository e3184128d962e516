package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/artemshak/tutor-platform/internal/config"
	"github.com/artemshak/tutor-platform/internal/cron"
	"github.com/artemshak/tutor-platform/internal/handlers"
	"github.com/artemshak/tutor-platform/internal/models"
	"github.com/artemshak/tutor-platform/internal/repository"
	"github.com/artemshak/tutor-platform/internal/services"
	"github.com/artemshak/tutor-platform/pkg/database"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Подключаемся к базе данных
	db, err := database.NewDatabase(cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Создаем репозитории
	userRepo := repository.NewUserRepository(db.DB)
	folderRepo := repository.NewFolderRepository(db.DB)
	lessonRepo := repository.NewLessonRepository(db.DB)
	groupRepo := repository.NewGroupRepository(db.DB)
	assignmentRepo := repository.NewAssignmentRepository(db.DB)
	progressRepo := repository.NewProgressRepository(db.DB)

	// Создаем сервисы
	authService := services.NewAuthService(userRepo, cfg.SecretKey, cfg.Algorithm, cfg.TokenTTL())
	lessonService := services.NewLessonService(lessonRepo, folderRepo)
	groupService := services.NewGroupService(groupRepo, userRepo)
	assignmentService := services.NewAssignmentService(assignmentRepo, lessonRepo, groupRepo, userRepo)
	progressService := services.NewProgressService(progressRepo, lessonRepo, userRepo, assignmentService)
	reportService := services.NewReportService(progressRepo, lessonRepo, userRepo)

	// Создаем обработчики
	authHandler := handlers.NewAuthHandler(authService, cfg.AccessTokenExpireMinutes*60)
	adminHandler := handlers.NewAdminHandler(authService)
	teacherHandler := handlers.NewTeacherHandler(authService)
	lessonHandler := handlers.NewLessonHandler(authService, lessonService)
	groupHandler := handlers.NewGroupHandler(authService, groupService)
	assignmentHandler := handlers.NewAssignmentHandler(authService, assignmentService, reportService)
	studentHandler := handlers.NewStudentHandler(authService, assignmentService, progressService)

	router := gin.Default()

	// Middleware
	router.Use(cors.Default())
	router.Use(handlers.AuthGateMiddleware(authService, cfg.ExcludedPaths))

	// Публичные маршруты (в белом списке EXCLUDED_PATHS)
	router.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "db_ping_error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := router.Group("/auth")
	{
		auth.GET("/login", authHandler.LoginPage)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
	}

	router.GET("/dashboard", authHandler.Dashboard)

	// Маршруты суперпользователя
	superuser := router.Group("/superuser")
	superuser.Use(handlers.RequireRoles(models.RoleSuperuser))
	{
		superuser.POST("/create-teacher", adminHandler.CreateTeacher)
	}

	// Маршруты преподавателя
	teacher := router.Group("/teacher")
	teacher.Use(handlers.RequireRoles(models.RoleTeacher))
	{
		teacher.POST("/students", teacherHandler.CreateStudent)
		teacher.GET("/students", teacherHandler.ListStudents)

		teacher.POST("/folders", lessonHandler.CreateFolder)
		teacher.GET("/folders", lessonHandler.ListFolders)
		teacher.PUT("/folders/:id", lessonHandler.RenameFolder)
		teacher.DELETE("/folders/:id", lessonHandler.DeleteFolder)

		teacher.POST("/lessons", lessonHandler.CreateLesson)
		teacher.GET("/lessons", lessonHandler.ListLessons)
		teacher.GET("/lessons/:id", lessonHandler.GetLesson)
		teacher.PUT("/lessons/:id", lessonHandler.UpdateLesson)
		teacher.DELETE("/lessons/:id", lessonHandler.DeleteLesson)
		teacher.PATCH("/lessons/:id/publish", lessonHandler.SetPublished)

		teacher.POST("/lessons/:id/steps", lessonHandler.AddStep)
		teacher.PUT("/lessons/:id/steps/order", lessonHandler.ReorderSteps)
		teacher.PUT("/lessons/:id/steps/:step_id", lessonHandler.UpdateStep)
		teacher.DELETE("/lessons/:id/steps/:step_id", lessonHandler.RemoveStep)

		teacher.POST("/groups", groupHandler.CreateGroup)
		teacher.GET("/groups", groupHandler.ListGroups)
		teacher.GET("/groups/:id", groupHandler.GetGroup)
		teacher.PUT("/groups/:id", groupHandler.RenameGroup)
		teacher.DELETE("/groups/:id", groupHandler.DeleteGroup)
		teacher.POST("/groups/:id/members", groupHandler.AddMember)
		teacher.DELETE("/groups/:id/members/:student_id", groupHandler.RemoveMember)

		teacher.POST("/assignments", assignmentHandler.Assign)
		teacher.GET("/assignments", assignmentHandler.ListAssignments)
		teacher.DELETE("/assignments/:id", assignmentHandler.Revoke)

		teacher.GET("/reports/progress", assignmentHandler.ProgressReport)
	}

	// Маршруты ученика
	student := router.Group("/student")
	student.Use(handlers.RequireRoles(models.RoleStudent))
	{
		student.GET("/lessons", studentHandler.ListLessons)
		student.GET("/lessons/:id", studentHandler.GetLesson)
		student.POST("/lessons/:id/steps/:step_id/submit", studentHandler.SubmitStep)
		student.GET("/progress", studentHandler.GetProgress)
	}

	// Запускаем фоновые задачи
	cron.StartJobs(cfg.ReminderCron, assignmentService)

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	log.Printf("Server running on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
