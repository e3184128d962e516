package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/artemshak/tutor-platform/internal/models"
	"github.com/artemshak/tutor-platform/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrAssignTarget возвращается, когда назначение адресовано
// не ровно одному получателю (ученику либо группе)
var ErrAssignTarget = errors.New("назначение выдается либо ученику, либо группе")

// AssignmentService управляет выдачей уроков ученикам и группам
type AssignmentService interface {
	Assign(teacherID, lessonID uuid.UUID, studentID, groupID *uuid.UUID, deadline *time.Time) (*models.LessonAssignment, error)
	Revoke(teacherID, assignmentID uuid.UUID) error
	ListByTeacher(teacherID uuid.UUID) ([]*models.LessonAssignment, error)
	// AssignedLessons возвращает опубликованные уроки, доступные ученику
	// напрямую или через его группы
	AssignedLessons(studentID uuid.UUID) ([]*models.Lesson, error)
	// HasAccess проверяет, выдан ли ученику данный урок
	HasAccess(studentID, lessonID uuid.UUID) (bool, error)
	// DueBetween возвращает назначения с дедлайном в интервале (для напоминаний)
	DueBetween(from, to time.Time) ([]*models.LessonAssignment, error)
}

type assignmentService struct {
	assignmentRepo repository.AssignmentRepository
	lessonRepo     repository.LessonRepository
	groupRepo      repository.GroupRepository
	userRepo       repository.UserRepository
}

// NewAssignmentService создает новый сервис назначений
func NewAssignmentService(
	assignmentRepo repository.AssignmentRepository,
	lessonRepo repository.LessonRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
) AssignmentService {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		lessonRepo:     lessonRepo,
		groupRepo:      groupRepo,
		userRepo:       userRepo,
	}
}

// Assign выдает урок преподавателя ученику или группе.
// Заполняется ровно одно из полей studentID/groupID — это проверка
// уровня приложения, схема ее не выражает.
func (s *assignmentService) Assign(teacherID, lessonID uuid.UUID, studentID, groupID *uuid.UUID, deadline *time.Time) (*models.LessonAssignment, error) {
	if (studentID == nil) == (groupID == nil) {
		return nil, ErrAssignTarget
	}

	lesson, err := s.lessonRepo.GetByID(lessonID)
	if err != nil {
		return nil, fmt.Errorf("lesson not found: %w", err)
	}
	if lesson.TeacherID != teacherID {
		return nil, ErrNotOwner
	}

	if studentID != nil {
		student, err := s.userRepo.GetStudent(*studentID)
		if err != nil {
			return nil, fmt.Errorf("student not found: %w", err)
		}
		if student.TeacherID != teacherID {
			return nil, ErrNotOwner
		}
	}
	if groupID != nil {
		group, err := s.groupRepo.GetByID(*groupID)
		if err != nil {
			return nil, fmt.Errorf("group not found: %w", err)
		}
		if group.TeacherID != teacherID {
			return nil, ErrNotOwner
		}
	}

	assignment := &models.LessonAssignment{
		TeacherID:  teacherID,
		LessonID:   lessonID,
		StudentID:  studentID,
		GroupID:    groupID,
		AssignedAt: time.Now(),
		Deadline:   deadline,
	}
	if err := s.assignmentRepo.Create(assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}
	return assignment, nil
}

func (s *assignmentService) Revoke(teacherID, assignmentID uuid.UUID) error {
	assignment, err := s.assignmentRepo.GetByID(assignmentID)
	if err != nil {
		return fmt.Errorf("assignment not found: %w", err)
	}
	if assignment.TeacherID != teacherID {
		return ErrNotOwner
	}
	return s.assignmentRepo.Delete(assignmentID)
}

func (s *assignmentService) ListByTeacher(teacherID uuid.UUID) ([]*models.LessonAssignment, error) {
	return s.assignmentRepo.ListByTeacher(teacherID)
}

func (s *assignmentService) AssignedLessons(studentID uuid.UUID) ([]*models.Lesson, error) {
	groupIDs, err := s.groupRepo.GroupIDsOfStudent(studentID)
	if err != nil {
		return nil, err
	}

	assignments, err := s.assignmentRepo.ListForStudent(studentID, groupIDs)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool)
	var lessons []*models.Lesson
	for _, a := range assignments {
		if seen[a.LessonID] {
			continue
		}
		seen[a.LessonID] = true

		lesson, err := s.lessonRepo.GetByID(a.LessonID)
		if err != nil {
			// Удаление урока каскадно снимает назначения; сюда можно
			// попасть только в гонке между двумя запросами
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		if lesson.IsPublished {
			lessons = append(lessons, lesson)
		}
	}
	return lessons, nil
}

func (s *assignmentService) HasAccess(studentID, lessonID uuid.UUID) (bool, error) {
	groupIDs, err := s.groupRepo.GroupIDsOfStudent(studentID)
	if err != nil {
		return false, err
	}
	assignments, err := s.assignmentRepo.ListForStudent(studentID, groupIDs)
	if err != nil {
		return false, err
	}
	for _, a := range assignments {
		if a.LessonID == lessonID {
			return true, nil
		}
	}
	return false, nil
}

func (s *assignmentService) DueBetween(from, to time.Time) ([]*models.LessonAssignment, error) {
	return s.assignmentRepo.ListDueBetween(from, to)
}
