package handlers

import (
	"net/http"

	"github.com/artemshak/tutor-platform/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GroupHandler представляет обработчики учебных групп
type GroupHandler struct {
	authService  *services.AuthService
	groupService services.GroupService
}

// NewGroupHandler создает новый обработчик групп
func NewGroupHandler(authService *services.AuthService, groupService services.GroupService) *GroupHandler {
	return &GroupHandler{
		authService:  authService,
		groupService: groupService,
	}
}

// GroupRequest представляет запрос создания/переименования группы
type GroupRequest struct {
	Name string `json:"name" binding:"required"`
}

// MemberRequest представляет запрос добавления ученика в группу
type MemberRequest struct {
	StudentID uuid.UUID `json:"student_id" binding:"required"`
}

// CreateGroup создает группу
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	user, ok := requireUser(c, h.authService)
	if !ok {
		return
	}
	var req GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	group, err := h.groupService.CreateGroup(user.ID, req.Name)
	if err != nil {
		writeLessonError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

// ListGroups возвращает группы преподавателя
func (h *GroupHandler) ListGroups(c *gin.Context) {
	user, ok := requireUser(c, h.authService)
	if !ok {
		return
	}
	groups, err := h.groupService.ListGroups(user.ID)
	if err != nil {
		writeLessonError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// GetGroup возвращает группу с участниками
func (h *GroupHandler) GetGroup(c *gin.Context) {
	user, ok := requireUser(c, h.authService)
	if !ok {
		return
	}
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Некорректный ID группы"})
		return
	}

	group, err := h.groupService.GetGroup(user.ID, groupID)
	if err != nil {
		writeLessonError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

// RenameGroup переименовывает группу
func (h *GroupHandler) RenameGroup(c *gin.Context) {
	user, ok := requireUser(c, h.authService)
	if !ok {
		return
	}
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Некорректный ID группы"})
		return
	}
	var req GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	group, err := h.groupService.RenameGroup(user.ID, groupID, req.Name)
	if err != nil {
		writeLessonError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

// DeleteGroup удаляет группу; доступ к выданным урокам у учеников остается
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	user, ok := requireUser(c, h.authService)
	if !ok {
		return
	}
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Некорректный ID группы"})
		return
	}

	if err := h.groupService.DeleteGroup(user.ID, groupID); err != nil {
		writeLessonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// AddMember добавляет ученика в группу
func (h *GroupHandler) AddMember(c *gin.Context) {
	user, ok := requireUser(c, h.authService)
	if !ok {
		return
	}
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Некорректный ID группы"})
		return
	}
	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	if err := h.groupService.AddMember(user.ID, groupID, req.StudentID); err != nil {
		writeLessonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RemoveMember исключает ученика из группы
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	user, ok := requireUser(c, h.authService)
	if !ok {
		return
	}
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Некорректный ID группы"})
		return
	}
	studentID, err := uuid.Parse(c.Param("student_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Некорректный ID ученика"})
		return
	}

	if err := h.groupService.RemoveMember(user.ID, groupID, studentID); err != nil {
		writeLessonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
