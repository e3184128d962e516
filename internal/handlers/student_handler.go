package handlers

import (
	"errors"
	"net/http"

	"github.com/artemshak/tutor-platform/internal/models"
	"github.com/artemshak/tutor-platform/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentHandler представляет обработчики ученика
type StudentHandler struct {
	authService       *services.AuthService
	assignmentService services.AssignmentService
	progressService   services.ProgressService
}

// NewStudentHandler создает новый обработчик ученика
func NewStudentHandler(
	authService *services.AuthService,
	assignmentService services.AssignmentService,
	progressService services.ProgressService,
) *StudentHandler {
	return &StudentHandler{
		authService:       authService,
		assignmentService: assignmentService,
		progressService:   progressService,
	}
}

// SubmitStepRequest представляет ответ ученика на шаг урока.
// Для квизов передается один из вариантов: answer, answers или pairs.
type SubmitStepRequest struct {
	Answer map[string]interface{} `json:"answer"`
}

// ListLessons возвращает уроки, выданные ученику
func (h *StudentHandler) ListLessons(c *gin.Context) {
	user, ok := requireUser(c, h.authService)
	if !ok {
		return
	}

	lessons, err := h.assignmentService.AssignedLessons(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Не удалось получить уроки"})
		return
	}
	c.JSON(http.StatusOK, lessons)
}

// GetLesson возвращает выданный урок с шагами в порядке steps_order
func (h *StudentHandler) GetLesson(c *gin.Context) {
	user, ok := requireUser(c, h.authService)
	if !ok {
		return
	}
	lessonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Некорректный ID урока"})
		return
	}

	lessons, err := h.assignmentService.AssignedLessons(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Не удалось получить урок"})
		return
	}
	for _, lesson := range lessons {
		if lesson.ID == lessonID {
			c.JSON(http.StatusOK, orderedLesson(lesson))
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Урок не найден"})
}

// SubmitStep записывает прохождение шага урока
func (h *StudentHandler) SubmitStep(c *gin.Context) {
	user, ok := requireUser(c, h.authService)
	if !ok {
		return
	}
	lessonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Некорректный ID урока"})
		return
	}
	stepID, err := uuid.Parse(c.Param("step_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Некорректный ID шага"})
		return
	}

	var req SubmitStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	result, err := h.progressService.SubmitStep(user.ID, lessonID, stepID, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLessonNotAssigned):
			c.JSON(http.StatusForbidden, gin.H{"detail": err.Error()})
		case errors.Is(err, services.ErrStepNotInLesson):
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Не удалось сохранить прогресс"})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetProgress возвращает прогресс ученика по всем урокам
func (h *StudentHandler) GetProgress(c *gin.Context) {
	user, ok := requireUser(c, h.authService)
	if !ok {
		return
	}

	progress, err := h.progressService.ListByStudent(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Не удалось получить прогресс"})
		return
	}
	c.JSON(http.StatusOK, progress)
}

// orderedLesson возвращает урок с шагами, выстроенными по steps_order
func orderedLesson(lesson *models.Lesson) *models.Lesson {
	byID := make(map[uuid.UUID]models.LessonStep, len(lesson.Steps))
	for _, step := range lesson.Steps {
		byID[step.ID] = step
	}
	ordered := make([]models.LessonStep, 0, len(lesson.Steps))
	for _, id := range lesson.StepsOrder {
		if step, ok := byID[id]; ok {
			ordered = append(ordered, step)
		}
	}
	lesson.Steps = ordered
	return lesson
}
