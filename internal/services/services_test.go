package services

import (
	"testing"

	"github.com/artemshak/tutor-platform/internal/models"
	"github.com/artemshak/tutor-platform/internal/repository"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv собирает сервисы поверх чистой in-memory базы
type testEnv struct {
	db          *gorm.DB
	users       repository.UserRepository
	lessons     LessonService
	groups      GroupService
	assignments AssignmentService
	progress    ProgressService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Teacher{},
		&models.Student{},
		&models.Folder{},
		&models.Lesson{},
		&models.LessonStep{},
		&models.Group{},
		&models.GroupMember{},
		&models.LessonAssignment{},
		&models.LessonProgress{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	folderRepo := repository.NewFolderRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	assignments := NewAssignmentService(assignmentRepo, lessonRepo, groupRepo, userRepo)
	return &testEnv{
		db:          db,
		users:       userRepo,
		lessons:     NewLessonService(lessonRepo, folderRepo),
		groups:      NewGroupService(groupRepo, userRepo),
		assignments: assignments,
		progress:    NewProgressService(progressRepo, lessonRepo, userRepo, assignments),
	}
}

func (e *testEnv) teacher(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{
		ID:             uuid.New(),
		Email:          email,
		PasswordHash:   "hash",
		Name:           "Анна",
		Surname:        "Иванова",
		Role:           models.RoleTeacher,
		TeacherProfile: &models.Teacher{},
	}
	if err := e.users.Create(user); err != nil {
		t.Fatalf("failed to create teacher: %v", err)
	}
	return user
}

func (e *testEnv) student(t *testing.T, email string, teacherID uuid.UUID) *models.User {
	t.Helper()
	user := &models.User{
		ID:             uuid.New(),
		Email:          email,
		PasswordHash:   "hash",
		Name:           "Пётр",
		Surname:        "Петров",
		Role:           models.RoleStudent,
		StudentProfile: &models.Student{TeacherID: teacherID},
	}
	if err := e.users.Create(user); err != nil {
		t.Fatalf("failed to create student: %v", err)
	}
	return user
}
