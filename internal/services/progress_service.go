package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/artemshak/tutor-platform/internal/models"
	"github.com/artemshak/tutor-platform/internal/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Ошибки сервиса прогресса
var (
	ErrLessonNotAssigned = errors.New("урок не выдан ученику")
	ErrStepNotInLesson   = errors.New("шаг не принадлежит уроку")
)

// Статусы прохождения шага
const (
	StepStatusViewed    = "viewed"
	StepStatusCorrect   = "correct"
	StepStatusPartial   = "partial"
	StepStatusIncorrect = "incorrect"
)

// ProgressService фиксирует прохождение уроков учениками
type ProgressService interface {
	// SubmitStep записывает прохождение шага. Квизы оцениваются
	// автоматически, остальные типы шагов помечаются просмотренными.
	SubmitStep(studentID, lessonID, stepID uuid.UUID, answer map[string]interface{}) (*models.StepResult, error)
	GetProgress(studentID, lessonID uuid.UUID) (*models.LessonProgress, error)
	ListByStudent(studentID uuid.UUID) ([]*models.LessonProgress, error)
	ListByTeacher(teacherID uuid.UUID) ([]*models.LessonProgress, error)
}

type progressService struct {
	progressRepo   repository.ProgressRepository
	lessonRepo     repository.LessonRepository
	userRepo       repository.UserRepository
	assignmentServ AssignmentService
}

// NewProgressService создает новый сервис прогресса
func NewProgressService(
	progressRepo repository.ProgressRepository,
	lessonRepo repository.LessonRepository,
	userRepo repository.UserRepository,
	assignmentServ AssignmentService,
) ProgressService {
	return &progressService{
		progressRepo:   progressRepo,
		lessonRepo:     lessonRepo,
		userRepo:       userRepo,
		assignmentServ: assignmentServ,
	}
}

func (s *progressService) SubmitStep(studentID, lessonID, stepID uuid.UUID, answer map[string]interface{}) (*models.StepResult, error) {
	ok, err := s.assignmentServ.HasAccess(studentID, lessonID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLessonNotAssigned
	}

	lesson, err := s.lessonRepo.GetByID(lessonID)
	if err != nil {
		return nil, fmt.Errorf("lesson not found: %w", err)
	}
	if !lesson.IsPublished {
		return nil, ErrLessonNotAssigned
	}

	step, err := s.lessonRepo.GetStep(stepID)
	if err != nil {
		return nil, fmt.Errorf("step not found: %w", err)
	}
	if step.LessonID != lessonID {
		return nil, ErrStepNotInLesson
	}

	result := GradeStep(step, answer)

	progress, err := s.progressRepo.Get(studentID, lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = &models.LessonProgress{
			StudentID:      studentID,
			LessonID:       lessonID,
			CompletedSteps: datatypes.NewJSONType(map[string]models.StepResult{}),
		}
	} else if err != nil {
		return nil, err
	}

	steps := progress.CompletedSteps.Data()
	if steps == nil {
		steps = map[string]models.StepResult{}
	}
	previous := steps[stepID.String()].Score
	steps[stepID.String()] = result
	progress.CompletedSteps = datatypes.NewJSONType(steps)

	total := 0
	for _, r := range steps {
		total += r.Score
	}
	progress.TotalScore = total

	// Урок пройден, когда отмечен каждый шаг из steps_order
	completed := len(lesson.StepsOrder) > 0
	for _, id := range lesson.StepsOrder {
		if _, ok := steps[id.String()]; !ok {
			completed = false
			break
		}
	}
	if completed && !progress.IsCompleted {
		now := time.Now()
		progress.IsCompleted = true
		progress.CompletedAt = &now
	}

	if err := s.progressRepo.Upsert(progress); err != nil {
		return nil, fmt.Errorf("failed to save progress: %w", err)
	}

	// Начисляем ученику разницу баллов за шаг
	if delta := result.Score - previous; delta != 0 {
		student, err := s.userRepo.GetStudent(studentID)
		if err == nil {
			student.Points += delta
			err = s.userRepo.UpdateStudent(student)
		}
		if err != nil {
			log.Printf("failed to award %d points to student %s: %v", delta, studentID, err)
		}
	}

	return &result, nil
}

func (s *progressService) GetProgress(studentID, lessonID uuid.UUID) (*models.LessonProgress, error) {
	return s.progressRepo.Get(studentID, lessonID)
}

func (s *progressService) ListByStudent(studentID uuid.UUID) ([]*models.LessonProgress, error) {
	return s.progressRepo.ListByStudent(studentID)
}

func (s *progressService) ListByTeacher(teacherID uuid.UUID) ([]*models.LessonProgress, error) {
	return s.progressRepo.ListByTeacher(teacherID)
}

// GradeStep оценивает ответ ученика на шаг.
// Не-квизы засчитываются просмотром без баллов.
func GradeStep(step *models.LessonStep, answer map[string]interface{}) models.StepResult {
	if step.Type != models.StepQuiz {
		return models.StepResult{Status: StepStatusViewed, Score: 0}
	}

	content := map[string]interface{}(step.Content)
	points := intFromAny(content["points"])

	switch {
	case content["question"] != nil:
		return gradeQuestion(content, answer, points)
	case content["input_task"] != nil:
		return gradeInputTask(content, answer, points)
	case content["to_correlate"] != nil:
		return gradeCorrelate(content, answer, points)
	}
	return models.StepResult{Status: StepStatusIncorrect, Score: 0}
}

// gradeQuestion: один правильный вариант из списка
func gradeQuestion(content, answer map[string]interface{}, points int) models.StepResult {
	correct, _ := content["correct"].(string)
	given, _ := answer["answer"].(string)
	if given != "" && given == correct {
		return models.StepResult{Status: StepStatusCorrect, Score: points}
	}
	return models.StepResult{Status: StepStatusIncorrect, Score: 0}
}

// gradeInputTask: пропуски в тексте, баллы пропорциональны
// числу верных ответов
func gradeInputTask(content, answer map[string]interface{}, points int) models.StepResult {
	correct := stringsFromAny(content["correct"])
	given := stringsFromAny(answer["answers"])
	if len(correct) == 0 {
		return models.StepResult{Status: StepStatusIncorrect, Score: 0}
	}

	matched := 0
	for i, want := range correct {
		if i < len(given) && given[i] == want {
			matched++
		}
	}
	return partialResult(matched, len(correct), points)
}

// gradeCorrelate: сопоставление пар, порядок пар не важен
func gradeCorrelate(content, answer map[string]interface{}, points int) models.StepResult {
	correct := pairsFromAny(content["correct"])
	given := pairsFromAny(answer["pairs"])
	if len(correct) == 0 {
		return models.StepResult{Status: StepStatusIncorrect, Score: 0}
	}

	want := make(map[[2]string]bool, len(correct))
	for _, p := range correct {
		want[p] = true
	}
	matched := 0
	for _, p := range given {
		if want[p] {
			matched++
			delete(want, p)
		}
	}
	return partialResult(matched, len(correct), points)
}

func partialResult(matched, total, points int) models.StepResult {
	switch {
	case matched == total:
		return models.StepResult{Status: StepStatusCorrect, Score: points}
	case matched > 0:
		return models.StepResult{Status: StepStatusPartial, Score: points * matched / total}
	}
	return models.StepResult{Status: StepStatusIncorrect, Score: 0}
}

// intFromAny достает целое из значения, пришедшего из JSON
func intFromAny(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func stringsFromAny(v interface{}) []string {
	arr, ok := v.([]interface{})
	if !ok {
		if ss, ok := v.([]string); ok {
			return ss
		}
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func pairsFromAny(v interface{}) [][2]string {
	arr, ok := v.([]interface{})
	if !ok {
		if ps, ok := v.([][2]string); ok {
			return ps
		}
		return nil
	}
	out := make([][2]string, 0, len(arr))
	for _, item := range arr {
		pair := stringsFromAny(item)
		if len(pair) == 2 {
			out = append(out, [2]string{pair[0], pair[1]})
		}
	}
	return out
}
