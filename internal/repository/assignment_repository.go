package repository

import (
	"time"

	"github.com/artemshak/tutor-platform/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssignmentRepository интерфейс для работы с назначениями уроков
type AssignmentRepository interface {
	Create(assignment *models.LessonAssignment) error
	Delete(id uuid.UUID) error
	GetByID(id uuid.UUID) (*models.LessonAssignment, error)
	ListByTeacher(teacherID uuid.UUID) ([]*models.LessonAssignment, error)
	// ListForStudent возвращает назначения, выданные ученику напрямую
	// или через любую из его групп
	ListForStudent(studentID uuid.UUID, groupIDs []uuid.UUID) ([]*models.LessonAssignment, error)
	ListDueBetween(from, to time.Time) ([]*models.LessonAssignment, error)
}

type assignmentRepository struct{ db *gorm.DB }

// NewAssignmentRepository создает новый репозиторий назначений
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(assignment *models.LessonAssignment) error {
	if assignment.ID == uuid.Nil {
		assignment.ID = uuid.New()
	}
	if assignment.AssignedAt.IsZero() {
		assignment.AssignedAt = time.Now()
	}
	return r.db.Create(assignment).Error
}

func (r *assignmentRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.LessonAssignment{}, "id = ?", id).Error
}

func (r *assignmentRepository) GetByID(id uuid.UUID) (*models.LessonAssignment, error) {
	var a models.LessonAssignment
	if err := r.db.First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assignmentRepository) ListByTeacher(teacherID uuid.UUID) ([]*models.LessonAssignment, error) {
	var as []*models.LessonAssignment
	err := r.db.Where("teacher_id = ?", teacherID).Order("assigned_at DESC").Find(&as).Error
	return as, err
}

func (r *assignmentRepository) ListForStudent(studentID uuid.UUID, groupIDs []uuid.UUID) ([]*models.LessonAssignment, error) {
	var as []*models.LessonAssignment
	tx := r.db.Where("student_id = ?", studentID)
	if len(groupIDs) > 0 {
		tx = tx.Or("group_id IN ?", groupIDs)
	}
	err := tx.Order("assigned_at DESC").Find(&as).Error
	return as, err
}

// ListDueBetween возвращает назначения с дедлайном в указанном интервале
func (r *assignmentRepository) ListDueBetween(from, to time.Time) ([]*models.LessonAssignment, error) {
	var as []*models.LessonAssignment
	err := r.db.Where("deadline IS NOT NULL AND deadline >= ? AND deadline < ?", from, to).
		Order("deadline").Find(&as).Error
	return as, err
}
