package repository

import (
	"github.com/artemshak/tutor-platform/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LessonRepository интерфейс для работы с уроками и их шагами
type LessonRepository interface {
	Create(lesson *models.Lesson) error
	Update(lesson *models.Lesson) error
	Delete(id uuid.UUID) error
	GetByID(id uuid.UUID) (*models.Lesson, error)
	ListByTeacher(teacherID uuid.UUID) ([]*models.Lesson, error)
	ListByFolder(folderID uuid.UUID) ([]*models.Lesson, error)

	GetStep(id uuid.UUID) (*models.LessonStep, error)
	UpdateStep(step *models.LessonStep) error
	// AddStep создает шаг и дописывает его ID в steps_order урока
	AddStep(lesson *models.Lesson, step *models.LessonStep) error
	// RemoveStep удаляет шаг и вычеркивает его ID из steps_order урока
	RemoveStep(lesson *models.Lesson, stepID uuid.UUID) error
}

type lessonRepository struct{ db *gorm.DB }

// NewLessonRepository создает новый репозиторий уроков
func NewLessonRepository(db *gorm.DB) LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) Create(lesson *models.Lesson) error {
	if lesson.ID == uuid.Nil {
		lesson.ID = uuid.New()
	}
	if lesson.StepsOrder == nil {
		lesson.StepsOrder = []uuid.UUID{}
	}
	return r.db.Create(lesson).Error
}

func (r *lessonRepository) Update(lesson *models.Lesson) error { return r.db.Save(lesson).Error }

// Delete удаляет урок; шаги и прогресс удаляются каскадно
func (r *lessonRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Lesson{}, "id = ?", id).Error
}

func (r *lessonRepository) GetByID(id uuid.UUID) (*models.Lesson, error) {
	var l models.Lesson
	err := r.db.Preload("Steps").First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *lessonRepository) ListByTeacher(teacherID uuid.UUID) ([]*models.Lesson, error) {
	var ls []*models.Lesson
	err := r.db.Where("teacher_id = ?", teacherID).Order("created_at DESC").Find(&ls).Error
	return ls, err
}

func (r *lessonRepository) ListByFolder(folderID uuid.UUID) ([]*models.Lesson, error) {
	var ls []*models.Lesson
	err := r.db.Where("folder_id = ?", folderID).Order("created_at DESC").Find(&ls).Error
	return ls, err
}

func (r *lessonRepository) GetStep(id uuid.UUID) (*models.LessonStep, error) {
	var s models.LessonStep
	if err := r.db.First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *lessonRepository) UpdateStep(step *models.LessonStep) error {
	return r.db.Save(step).Error
}

// AddStep создает шаг и дописывает его ID в steps_order одной транзакцией
func (r *lessonRepository) AddStep(lesson *models.Lesson, step *models.LessonStep) error {
	if step.ID == uuid.Nil {
		step.ID = uuid.New()
	}
	step.LessonID = lesson.ID

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(step).Error; err != nil {
			return err
		}
		lesson.StepsOrder = append(lesson.StepsOrder, step.ID)
		return tx.Model(lesson).Update("steps_order", lesson.StepsOrder).Error
	})
}

// RemoveStep удаляет шаг и вычеркивает его ID из steps_order одной транзакцией
func (r *lessonRepository) RemoveStep(lesson *models.Lesson, stepID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.LessonStep{}, "id = ? AND lesson_id = ?", stepID, lesson.ID).Error; err != nil {
			return err
		}
		order := make([]uuid.UUID, 0, len(lesson.StepsOrder))
		for _, id := range lesson.StepsOrder {
			if id != stepID {
				order = append(order, id)
			}
		}
		lesson.StepsOrder = order
		return tx.Model(lesson).Update("steps_order", lesson.StepsOrder).Error
	})
}
