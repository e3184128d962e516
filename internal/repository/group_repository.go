package repository

import (
	"time"

	"github.com/artemshak/tutor-platform/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GroupRepository интерфейс для работы с учебными группами
type GroupRepository interface {
	Create(group *models.Group) error
	Update(group *models.Group) error
	Delete(id uuid.UUID) error
	GetByID(id uuid.UUID) (*models.Group, error)
	ListByTeacher(teacherID uuid.UUID) ([]*models.Group, error)

	AddMember(member *models.GroupMember) error
	RemoveMember(groupID, studentID uuid.UUID) error
	ListMembers(groupID uuid.UUID) ([]*models.GroupMember, error)
	IsMember(groupID, studentID uuid.UUID) (bool, error)
	GroupIDsOfStudent(studentID uuid.UUID) ([]uuid.UUID, error)
}

type groupRepository struct{ db *gorm.DB }

// NewGroupRepository создает новый репозиторий групп
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(group *models.Group) error {
	if group.ID == uuid.Nil {
		group.ID = uuid.New()
	}
	return r.db.Create(group).Error
}

func (r *groupRepository) Update(group *models.Group) error { return r.db.Save(group).Error }

// Delete удаляет группу. Выданные через группу назначения остаются:
// при удалении группы доступ у учеников сохраняется.
func (r *groupRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Group{}, "id = ?", id).Error
}

func (r *groupRepository) GetByID(id uuid.UUID) (*models.Group, error) {
	var g models.Group
	err := r.db.Preload("Members").First(&g, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *groupRepository) ListByTeacher(teacherID uuid.UUID) ([]*models.Group, error) {
	var gs []*models.Group
	err := r.db.Where("teacher_id = ?", teacherID).Order("created_at DESC").Find(&gs).Error
	return gs, err
}

func (r *groupRepository) AddMember(member *models.GroupMember) error {
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now()
	}
	return r.db.Create(member).Error
}

func (r *groupRepository) RemoveMember(groupID, studentID uuid.UUID) error {
	return r.db.Where("group_id = ? AND student_id = ?", groupID, studentID).
		Delete(&models.GroupMember{}).Error
}

func (r *groupRepository) ListMembers(groupID uuid.UUID) ([]*models.GroupMember, error) {
	var ms []*models.GroupMember
	err := r.db.Preload("Student").Where("group_id = ?", groupID).Find(&ms).Error
	return ms, err
}

func (r *groupRepository) IsMember(groupID, studentID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.GroupMember{}).
		Where("group_id = ? AND student_id = ?", groupID, studentID).Count(&count).Error
	return count > 0, err
}

// GroupIDsOfStudent возвращает ID групп, в которых состоит ученик
func (r *groupRepository) GroupIDsOfStudent(studentID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&models.GroupMember{}).
		Where("student_id = ?", studentID).Pluck("group_id", &ids).Error
	return ids, err
}
