package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/artemshak/tutor-platform/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AssignmentHandler представляет обработчики назначений и отчетов
type AssignmentHandler struct {
	authService       *services.AuthService
	assignmentService services.AssignmentService
	reportService     services.ReportService
}

// NewAssignmentHandler создает новый обработчик назначений
func NewAssignmentHandler(
	authService *services.AuthService,
	assignmentService services.AssignmentService,
	reportService services.ReportService,
) *AssignmentHandler {
	return &AssignmentHandler{
		authService:       authService,
		assignmentService: assignmentService,
		reportService:     reportService,
	}
}

// AssignRequest представляет запрос выдачи урока.
// Указывается ровно один получатель: ученик или группа.
type AssignRequest struct {
	LessonID  uuid.UUID  `json:"lesson_id" binding:"required"`
	StudentID *uuid.UUID `json:"student_id"`
	GroupID   *uuid.UUID `json:"group_id"`
	Deadline  *time.Time `json:"deadline"`
}

// Assign выдает урок ученику или группе
func (h *AssignmentHandler) Assign(c *gin.Context) {
	user, ok := requireUser(c, h.authService)
	if !ok {
		return
	}
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	assignment, err := h.assignmentService.Assign(user.ID, req.LessonID, req.StudentID, req.GroupID, req.Deadline)
	if err != nil {
		writeLessonError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignment)
}

// ListAssignments возвращает назначения преподавателя
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	user, ok := requireUser(c, h.authService)
	if !ok {
		return
	}
	assignments, err := h.assignmentService.ListByTeacher(user.ID)
	if err != nil {
		writeLessonError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignments)
}

// Revoke отзывает назначение
func (h *AssignmentHandler) Revoke(c *gin.Context) {
	user, ok := requireUser(c, h.authService)
	if !ok {
		return
	}
	assignmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Некорректный ID назначения"})
		return
	}

	if err := h.assignmentService.Revoke(user.ID, assignmentID); err != nil {
		writeLessonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ProgressReport отдает xlsx-отчет о прогрессе учеников
func (h *AssignmentHandler) ProgressReport(c *gin.Context) {
	user, ok := requireUser(c, h.authService)
	if !ok {
		return
	}

	report, err := h.reportService.ProgressReport(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Не удалось построить отчет"})
		return
	}

	filename := fmt.Sprintf("progress_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := report.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
