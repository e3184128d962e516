package services

import (
	"errors"
	"fmt"

	"github.com/artemshak/tutor-platform/internal/models"
	"github.com/artemshak/tutor-platform/internal/repository"

	"github.com/google/uuid"
)

// Ошибки сервиса уроков
var (
	ErrNotOwner     = errors.New("объект принадлежит другому преподавателю")
	ErrBadStepOrder = errors.New("порядок шагов не совпадает с набором шагов урока")
	ErrUnknownStep  = errors.New("неизвестный тип шага")
)

// LessonService управляет папками, уроками и шагами
type LessonService interface {
	// Папки
	CreateFolder(teacherID uuid.UUID, name string, parentID *uuid.UUID) (*models.Folder, error)
	RenameFolder(teacherID, folderID uuid.UUID, name string) (*models.Folder, error)
	DeleteFolder(teacherID, folderID uuid.UUID) error
	ListFolders(teacherID uuid.UUID) ([]*models.Folder, error)

	// Уроки
	CreateLesson(teacherID uuid.UUID, title string, description *string, folderID *uuid.UUID) (*models.Lesson, error)
	UpdateLesson(teacherID, lessonID uuid.UUID, title string, description *string, folderID *uuid.UUID) (*models.Lesson, error)
	DeleteLesson(teacherID, lessonID uuid.UUID) error
	GetLesson(teacherID, lessonID uuid.UUID) (*models.Lesson, error)
	ListLessons(teacherID uuid.UUID) ([]*models.Lesson, error)
	SetPublished(teacherID, lessonID uuid.UUID, published bool) (*models.Lesson, error)

	// Шаги
	AddStep(teacherID, lessonID uuid.UUID, stepType models.StepType, content map[string]interface{}) (*models.LessonStep, error)
	UpdateStep(teacherID, lessonID, stepID uuid.UUID, content map[string]interface{}) (*models.LessonStep, error)
	RemoveStep(teacherID, lessonID, stepID uuid.UUID) error
	ReorderSteps(teacherID, lessonID uuid.UUID, order []uuid.UUID) (*models.Lesson, error)
}

type lessonService struct {
	lessonRepo repository.LessonRepository
	folderRepo repository.FolderRepository
}

// NewLessonService создает новый сервис уроков
func NewLessonService(lessonRepo repository.LessonRepository, folderRepo repository.FolderRepository) LessonService {
	return &lessonService{lessonRepo: lessonRepo, folderRepo: folderRepo}
}

func (s *lessonService) CreateFolder(teacherID uuid.UUID, name string, parentID *uuid.UUID) (*models.Folder, error) {
	if parentID != nil {
		parent, err := s.folderRepo.GetByID(*parentID)
		if err != nil {
			return nil, fmt.Errorf("parent folder not found: %w", err)
		}
		if parent.TeacherID != teacherID {
			return nil, ErrNotOwner
		}
	}

	folder := &models.Folder{
		Name:      name,
		TeacherID: teacherID,
		ParentID:  parentID,
	}
	if err := s.folderRepo.Create(folder); err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	return folder, nil
}

func (s *lessonService) RenameFolder(teacherID, folderID uuid.UUID, name string) (*models.Folder, error) {
	folder, err := s.ownedFolder(teacherID, folderID)
	if err != nil {
		return nil, err
	}
	folder.Name = name
	if err := s.folderRepo.Update(folder); err != nil {
		return nil, fmt.Errorf("failed to update folder: %w", err)
	}
	return folder, nil
}

// DeleteFolder удаляет папку; вложенные папки и уроки уходят каскадом
func (s *lessonService) DeleteFolder(teacherID, folderID uuid.UUID) error {
	if _, err := s.ownedFolder(teacherID, folderID); err != nil {
		return err
	}
	return s.folderRepo.Delete(folderID)
}

func (s *lessonService) ListFolders(teacherID uuid.UUID) ([]*models.Folder, error) {
	return s.folderRepo.ListByTeacher(teacherID)
}

func (s *lessonService) CreateLesson(teacherID uuid.UUID, title string, description *string, folderID *uuid.UUID) (*models.Lesson, error) {
	if folderID != nil {
		if _, err := s.ownedFolder(teacherID, *folderID); err != nil {
			return nil, err
		}
	}

	lesson := &models.Lesson{
		Title:       title,
		Description: description,
		TeacherID:   teacherID,
		FolderID:    folderID,
		StepsOrder:  []uuid.UUID{},
	}
	if err := s.lessonRepo.Create(lesson); err != nil {
		return nil, fmt.Errorf("failed to create lesson: %w", err)
	}
	return lesson, nil
}

func (s *lessonService) UpdateLesson(teacherID, lessonID uuid.UUID, title string, description *string, folderID *uuid.UUID) (*models.Lesson, error) {
	lesson, err := s.ownedLesson(teacherID, lessonID)
	if err != nil {
		return nil, err
	}
	if folderID != nil {
		if _, err := s.ownedFolder(teacherID, *folderID); err != nil {
			return nil, err
		}
	}

	lesson.Title = title
	lesson.Description = description
	lesson.FolderID = folderID
	if err := s.lessonRepo.Update(lesson); err != nil {
		return nil, fmt.Errorf("failed to update lesson: %w", err)
	}
	return lesson, nil
}

// DeleteLesson удаляет урок; шаги и прогресс уходят каскадом
func (s *lessonService) DeleteLesson(teacherID, lessonID uuid.UUID) error {
	if _, err := s.ownedLesson(teacherID, lessonID); err != nil {
		return err
	}
	return s.lessonRepo.Delete(lessonID)
}

func (s *lessonService) GetLesson(teacherID, lessonID uuid.UUID) (*models.Lesson, error) {
	return s.ownedLesson(teacherID, lessonID)
}

func (s *lessonService) ListLessons(teacherID uuid.UUID) ([]*models.Lesson, error) {
	return s.lessonRepo.ListByTeacher(teacherID)
}

func (s *lessonService) SetPublished(teacherID, lessonID uuid.UUID, published bool) (*models.Lesson, error) {
	lesson, err := s.ownedLesson(teacherID, lessonID)
	if err != nil {
		return nil, err
	}
	lesson.IsPublished = published
	if err := s.lessonRepo.Update(lesson); err != nil {
		return nil, fmt.Errorf("failed to update lesson: %w", err)
	}
	return lesson, nil
}

func (s *lessonService) AddStep(teacherID, lessonID uuid.UUID, stepType models.StepType, content map[string]interface{}) (*models.LessonStep, error) {
	switch stepType {
	case models.StepText, models.StepVideo, models.StepPDF, models.StepQuiz:
	default:
		return nil, ErrUnknownStep
	}

	lesson, err := s.ownedLesson(teacherID, lessonID)
	if err != nil {
		return nil, err
	}

	step := &models.LessonStep{
		Type:    stepType,
		Content: content,
	}
	if err := s.lessonRepo.AddStep(lesson, step); err != nil {
		return nil, fmt.Errorf("failed to add step: %w", err)
	}
	return step, nil
}

func (s *lessonService) UpdateStep(teacherID, lessonID, stepID uuid.UUID, content map[string]interface{}) (*models.LessonStep, error) {
	if _, err := s.ownedLesson(teacherID, lessonID); err != nil {
		return nil, err
	}
	step, err := s.lessonRepo.GetStep(stepID)
	if err != nil {
		return nil, fmt.Errorf("step not found: %w", err)
	}
	if step.LessonID != lessonID {
		return nil, ErrNotOwner
	}
	step.Content = content
	if err := s.lessonRepo.UpdateStep(step); err != nil {
		return nil, fmt.Errorf("failed to update step: %w", err)
	}
	return step, nil
}

func (s *lessonService) RemoveStep(teacherID, lessonID, stepID uuid.UUID) error {
	lesson, err := s.ownedLesson(teacherID, lessonID)
	if err != nil {
		return err
	}
	return s.lessonRepo.RemoveStep(lesson, stepID)
}

// ReorderSteps сохраняет новый порядок шагов. Принимается только
// перестановка фактического набора шагов урока.
func (s *lessonService) ReorderSteps(teacherID, lessonID uuid.UUID, order []uuid.UUID) (*models.Lesson, error) {
	lesson, err := s.ownedLesson(teacherID, lessonID)
	if err != nil {
		return nil, err
	}

	if len(order) != len(lesson.Steps) {
		return nil, ErrBadStepOrder
	}
	existing := make(map[uuid.UUID]bool, len(lesson.Steps))
	for _, step := range lesson.Steps {
		existing[step.ID] = true
	}
	seen := make(map[uuid.UUID]bool, len(order))
	for _, id := range order {
		if !existing[id] || seen[id] {
			return nil, ErrBadStepOrder
		}
		seen[id] = true
	}

	lesson.StepsOrder = order
	if err := s.lessonRepo.Update(lesson); err != nil {
		return nil, fmt.Errorf("failed to save steps order: %w", err)
	}
	return lesson, nil
}

func (s *lessonService) ownedFolder(teacherID, folderID uuid.UUID) (*models.Folder, error) {
	folder, err := s.folderRepo.GetByID(folderID)
	if err != nil {
		return nil, fmt.Errorf("folder not found: %w", err)
	}
	if folder.TeacherID != teacherID {
		return nil, ErrNotOwner
	}
	return folder, nil
}

func (s *lessonService) ownedLesson(teacherID, lessonID uuid.UUID) (*models.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(lessonID)
	if err != nil {
		return nil, fmt.Errorf("lesson not found: %w", err)
	}
	if lesson.TeacherID != teacherID {
		return nil, ErrNotOwner
	}
	return lesson, nil
}
