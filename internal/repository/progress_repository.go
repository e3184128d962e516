package repository

import (
	"github.com/artemshak/tutor-platform/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressRepository интерфейс для работы с прогрессом учеников
type ProgressRepository interface {
	Get(studentID, lessonID uuid.UUID) (*models.LessonProgress, error)
	// Upsert вставляет или обновляет строку прогресса по составному ключу
	Upsert(progress *models.LessonProgress) error
	ListByStudent(studentID uuid.UUID) ([]*models.LessonProgress, error)
	ListByLesson(lessonID uuid.UUID) ([]*models.LessonProgress, error)
	// ListByTeacher возвращает прогресс по всем урокам преподавателя
	ListByTeacher(teacherID uuid.UUID) ([]*models.LessonProgress, error)
}

type progressRepository struct{ db *gorm.DB }

// NewProgressRepository создает новый репозиторий прогресса
func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Get(studentID, lessonID uuid.UUID) (*models.LessonProgress, error) {
	var p models.LessonProgress
	err := r.db.Where("student_id = ? AND lesson_id = ?", studentID, lessonID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *progressRepository) Upsert(progress *models.LessonProgress) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "lesson_id"}},
		UpdateAll: true,
	}).Create(progress).Error
}

func (r *progressRepository) ListByStudent(studentID uuid.UUID) ([]*models.LessonProgress, error) {
	var ps []*models.LessonProgress
	err := r.db.Where("student_id = ?", studentID).Find(&ps).Error
	return ps, err
}

func (r *progressRepository) ListByLesson(lessonID uuid.UUID) ([]*models.LessonProgress, error) {
	var ps []*models.LessonProgress
	err := r.db.Where("lesson_id = ?", lessonID).Find(&ps).Error
	return ps, err
}

func (r *progressRepository) ListByTeacher(teacherID uuid.UUID) ([]*models.LessonProgress, error) {
	var ps []*models.LessonProgress
	err := r.db.Joins("JOIN lessons ON lessons.id = lesson_progresses.lesson_id").
		Where("lessons.teacher_id = ?", teacherID).
		Find(&ps).Error
	return ps, err
}
