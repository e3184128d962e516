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

// LessonHandler представляет обработчики папок, уроков и шагов
type LessonHandler struct {
	authService   *services.AuthService
	lessonService services.LessonService
}

// NewLessonHandler создает новый обработчик уроков
func NewLessonHandler(authService *services.AuthService, lessonService services.LessonService) *LessonHandler {
	return &LessonHandler{
		authService:   authService,
		lessonService: lessonService,
	}
}

// FolderRequest представляет запрос создания/переименования папки
type FolderRequest struct {
	Name     string     `json:"name" binding:"required"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// LessonRequest представляет запрос создания/изменения урока
type LessonRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description *string    `json:"description"`
	FolderID    *uuid.UUID `json:"folder_id"`
}

// StepRequest представляет запрос создания/изменения шага
type StepRequest struct {
	Type    models.StepType        `json:"type" binding:"required"`
	Content map[string]interface{} `json:"content" binding:"required"`
}

// OrderRequest представляет запрос перестановки шагов
type OrderRequest struct {
	Order []uuid.UUID `json:"order" binding:"required"`
}

// PublishRequest представляет запрос публикации урока
type PublishRequest struct {
	IsPublished *bool `json:"is_published" binding:"required"`
}

// CreateFolder создает папку
func (h *LessonHandler) CreateFolder(c *gin.Context) {
	user, ok := requireUser(c, h.authService)
	if !ok {
		return
	}
	var req FolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	folder, err := h.lessonService.CreateFolder(user.ID, req.Name, req.ParentID)
	if err != nil {
		writeLessonError(c, err)
		return
	}
	c.JSON(http.StatusOK, folder)
}

// ListFolders возвращает папки преподавателя
func (h *LessonHandler) ListFolders(c *gin.Context) {
	user, ok := requireUser(c, h.authService)
	if !ok {
		return
	}
	folders, err := h.lessonService.ListFolders(user.ID)
	if err != nil {
		writeLessonError(c, err)
		return
	}
	c.JSON(http.StatusOK, folders)
}

// RenameFolder переименовывает папку
func (h *LessonHandler) RenameFolder(c *gin.Context) {
	user, ok := requireUser(c, h.authService)
	if !ok {
		return
	}
	folderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Некорректный ID папки"})
		return
	}
	var req FolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	folder, err := h.lessonService.RenameFolder(user.ID, folderID, req.Name)
	if err != nil {
		writeLessonError(c, err)
		return
	}
	c.JSON(http.StatusOK, folder)
}

// DeleteFolder удаляет папку вместе с вложенным содержимым
func (h *LessonHandler) DeleteFolder(c *gin.Context) {
	user, ok := requireUser(c, h.authService)
	if !ok {
		return
	}
	folderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Некорректный ID папки"})
		return
	}

	if err := h.lessonService.DeleteFolder(user.ID, folderID); err != nil {
		writeLessonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// CreateLesson создает урок
func (h *LessonHandler) CreateLesson(c *gin.Context) {
	user, ok := requireUser(c, h.authService)
	if !ok {
		return
	}
	var req LessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	lesson, err := h.lessonService.CreateLesson(user.ID, req.Title, req.Description, req.FolderID)
	if err != nil {
		writeLessonError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

// ListLessons возвращает уроки преподавателя
func (h *LessonHandler) ListLessons(c *gin.Context) {
	user, ok := requireUser(c, h.authService)
	if !ok {
		return
	}
	lessons, err := h.lessonService.ListLessons(user.ID)
	if err != nil {
		writeLessonError(c, err)
		return
	}
	c.JSON(http.StatusOK, lessons)
}

// GetLesson возвращает урок с шагами
func (h *LessonHandler) GetLesson(c *gin.Context) {
	user, ok := requireUser(c, h.authService)
	if !ok {
		return
	}
	lessonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Некорректный ID урока"})
		return
	}

	lesson, err := h.lessonService.GetLesson(user.ID, lessonID)
	if err != nil {
		writeLessonError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

// UpdateLesson изменяет урок
func (h *LessonHandler) UpdateLesson(c *gin.Context) {
	user, ok := requireUser(c, h.authService)
	if !ok {
		return
	}
	lessonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Некорректный ID урока"})
		return
	}
	var req LessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	lesson, err := h.lessonService.UpdateLesson(user.ID, lessonID, req.Title, req.Description, req.FolderID)
	if err != nil {
		writeLessonError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

// DeleteLesson удаляет урок вместе с шагами и прогрессом
func (h *LessonHandler) DeleteLesson(c *gin.Context) {
	user, ok := requireUser(c, h.authService)
	if !ok {
		return
	}
	lessonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Некорректный ID урока"})
		return
	}

	if err := h.lessonService.DeleteLesson(user.ID, lessonID); err != nil {
		writeLessonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SetPublished публикует или снимает урок с публикации
func (h *LessonHandler) SetPublished(c *gin.Context) {
	user, ok := requireUser(c, h.authService)
	if !ok {
		return
	}
	lessonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Некорректный ID урока"})
		return
	}
	var req PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	lesson, err := h.lessonService.SetPublished(user.ID, lessonID, *req.IsPublished)
	if err != nil {
		writeLessonError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

// AddStep добавляет шаг в конец урока
func (h *LessonHandler) AddStep(c *gin.Context) {
	user, ok := requireUser(c, h.authService)
	if !ok {
		return
	}
	lessonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Некорректный ID урока"})
		return
	}
	var req StepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	step, err := h.lessonService.AddStep(user.ID, lessonID, req.Type, req.Content)
	if err != nil {
		writeLessonError(c, err)
		return
	}
	c.JSON(http.StatusOK, step)
}

// UpdateStep изменяет содержимое шага
func (h *LessonHandler) UpdateStep(c *gin.Context) {
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
	var req StepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	step, err := h.lessonService.UpdateStep(user.ID, lessonID, stepID, req.Content)
	if err != nil {
		writeLessonError(c, err)
		return
	}
	c.JSON(http.StatusOK, step)
}

// RemoveStep удаляет шаг из урока
func (h *LessonHandler) RemoveStep(c *gin.Context) {
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

	if err := h.lessonService.RemoveStep(user.ID, lessonID, stepID); err != nil {
		writeLessonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ReorderSteps сохраняет новый порядок шагов урока
func (h *LessonHandler) ReorderSteps(c *gin.Context) {
	user, ok := requireUser(c, h.authService)
	if !ok {
		return
	}
	lessonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Некорректный ID урока"})
		return
	}
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	lesson, err := h.lessonService.ReorderSteps(user.ID, lessonID, req.Order)
	if err != nil {
		writeLessonError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

// writeLessonError переводит ошибки сервисов в HTTP-статусы
func writeLessonError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"detail": err.Error()})
	case errors.Is(err, services.ErrBadStepOrder), errors.Is(err, services.ErrUnknownStep),
		errors.Is(err, services.ErrAssignTarget):
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
	}
}
