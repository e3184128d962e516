package services

import (
	"fmt"

	"github.com/artemshak/tutor-platform/internal/models"
	"github.com/artemshak/tutor-platform/internal/repository"

	"github.com/google/uuid"
)

// GroupService управляет учебными группами преподавателя
type GroupService interface {
	CreateGroup(teacherID uuid.UUID, name string) (*models.Group, error)
	RenameGroup(teacherID, groupID uuid.UUID, name string) (*models.Group, error)
	DeleteGroup(teacherID, groupID uuid.UUID) error
	GetGroup(teacherID, groupID uuid.UUID) (*models.Group, error)
	ListGroups(teacherID uuid.UUID) ([]*models.Group, error)

	AddMember(teacherID, groupID, studentID uuid.UUID) error
	RemoveMember(teacherID, groupID, studentID uuid.UUID) error
	ListMembers(teacherID, groupID uuid.UUID) ([]*models.GroupMember, error)
}

type groupService struct {
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
}

// NewGroupService создает новый сервис групп
func NewGroupService(groupRepo repository.GroupRepository, userRepo repository.UserRepository) GroupService {
	return &groupService{groupRepo: groupRepo, userRepo: userRepo}
}

func (s *groupService) CreateGroup(teacherID uuid.UUID, name string) (*models.Group, error) {
	group := &models.Group{
		Name:      name,
		TeacherID: teacherID,
	}
	if err := s.groupRepo.Create(group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return group, nil
}

func (s *groupService) RenameGroup(teacherID, groupID uuid.UUID, name string) (*models.Group, error) {
	group, err := s.ownedGroup(teacherID, groupID)
	if err != nil {
		return nil, err
	}
	group.Name = name
	if err := s.groupRepo.Update(group); err != nil {
		return nil, fmt.Errorf("failed to update group: %w", err)
	}
	return group, nil
}

// DeleteGroup удаляет группу. Выданные через нее уроки у учеников остаются.
func (s *groupService) DeleteGroup(teacherID, groupID uuid.UUID) error {
	if _, err := s.ownedGroup(teacherID, groupID); err != nil {
		return err
	}
	return s.groupRepo.Delete(groupID)
}

func (s *groupService) GetGroup(teacherID, groupID uuid.UUID) (*models.Group, error) {
	return s.ownedGroup(teacherID, groupID)
}

func (s *groupService) ListGroups(teacherID uuid.UUID) ([]*models.Group, error) {
	return s.groupRepo.ListByTeacher(teacherID)
}

// AddMember добавляет в группу ученика этого же преподавателя
func (s *groupService) AddMember(teacherID, groupID, studentID uuid.UUID) error {
	if _, err := s.ownedGroup(teacherID, groupID); err != nil {
		return err
	}

	student, err := s.userRepo.GetStudent(studentID)
	if err != nil {
		return fmt.Errorf("student not found: %w", err)
	}
	if student.TeacherID != teacherID {
		return ErrNotOwner
	}

	already, err := s.groupRepo.IsMember(groupID, studentID)
	if err != nil {
		return err
	}
	if already {
		return nil
	}

	return s.groupRepo.AddMember(&models.GroupMember{
		GroupID:   groupID,
		StudentID: studentID,
	})
}

func (s *groupService) RemoveMember(teacherID, groupID, studentID uuid.UUID) error {
	if _, err := s.ownedGroup(teacherID, groupID); err != nil {
		return err
	}
	return s.groupRepo.RemoveMember(groupID, studentID)
}

func (s *groupService) ListMembers(teacherID, groupID uuid.UUID) ([]*models.GroupMember, error) {
	if _, err := s.ownedGroup(teacherID, groupID); err != nil {
		return nil, err
	}
	return s.groupRepo.ListMembers(groupID)
}

func (s *groupService) ownedGroup(teacherID, groupID uuid.UUID) (*models.Group, error) {
	group, err := s.groupRepo.GetByID(groupID)
	if err != nil {
		return nil, fmt.Errorf("group not found: %w", err)
	}
	if group.TeacherID != teacherID {
		return nil, ErrNotOwner
	}
	return group, nil
}
