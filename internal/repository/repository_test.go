package repository

import (
	"testing"

	"github.com/artemshak/tutor-platform/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB открывает чистую in-memory базу на каждый тест.
// Одно соединение, иначе пул gorm разъезжается по разным базам.
func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

// seedTeacher создает преподавателя с профилем
func seedTeacher(t *testing.T, db *gorm.DB, email string) *models.User {
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
	if err := NewUserRepository(db).Create(user); err != nil {
		t.Fatalf("failed to seed teacher: %v", err)
	}
	return user
}

// seedStudent создает ученика с профилем, привязанным к преподавателю
func seedStudent(t *testing.T, db *gorm.DB, email string, teacherID uuid.UUID) *models.User {
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
	if err := NewUserRepository(db).Create(user); err != nil {
		t.Fatalf("failed to seed student: %v", err)
	}
	return user
}

// seedLesson создает урок преподавателя
func seedLesson(t *testing.T, db *gorm.DB, teacherID uuid.UUID, title string) *models.Lesson {
	t.Helper()
	lesson := &models.Lesson{
		TeacherID:   teacherID,
		Title:       title,
		IsPublished: true,
	}
	if err := NewLessonRepository(db).Create(lesson); err != nil {
		t.Fatalf("failed to seed lesson: %v", err)
	}
	return lesson
}
