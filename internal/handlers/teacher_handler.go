package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/artemshak/tutor-platform/internal/services"

	"github.com/gin-gonic/gin"
)

// TeacherHandler представляет обработчики управления учениками
type TeacherHandler struct {
	authService *services.AuthService
}

// NewTeacherHandler создает новый обработчик преподавателя
func NewTeacherHandler(authService *services.AuthService) *TeacherHandler {
	return &TeacherHandler{authService: authService}
}

// StudentProfileRequest представляет профиль создаваемого ученика
type StudentProfileRequest struct {
	ParentContact *string `json:"parent_contact"`
}

// CreateStudentRequest представляет запрос создания ученика
type CreateStudentRequest struct {
	Email      string                `json:"email" binding:"required,email"`
	Password   string                `json:"password" binding:"required,min=8"`
	Name       string                `json:"name" binding:"required"`
	Surname    string                `json:"surname" binding:"required"`
	SecondName *string               `json:"second_name"`
	Birthday   *string               `json:"birthday"` // yyyy-mm-dd
	Profile    StudentProfileRequest `json:"profile"`
}

// CreateStudent создает ученика, привязанного к текущему преподавателю
func (h *TeacherHandler) CreateStudent(c *gin.Context) {
	user, ok := requireUser(c, h.authService)
	if !ok {
		return
	}

	var req CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	input := services.NewUserInput{
		Email:      req.Email,
		Password:   req.Password,
		Name:       req.Name,
		Surname:    req.Surname,
		SecondName: req.SecondName,
	}
	if req.Birthday != nil {
		birthday, err := time.Parse("2006-01-02", *req.Birthday)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Дата рождения в формате yyyy-mm-dd"})
			return
		}
		input.Birthday = &birthday
	}

	student, err := h.authService.CreateStudent(input, req.Profile.ParentContact, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"detail": err.Error()})
		case errors.Is(err, services.ErrWeakPassword):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Не удалось создать ученика"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ученик успешно создан",
		"email":   student.Email,
	})
}

// ListStudents возвращает учеников текущего преподавателя
func (h *TeacherHandler) ListStudents(c *gin.Context) {
	user, ok := requireUser(c, h.authService)
	if !ok {
		return
	}

	students, err := h.authService.ListStudentsOfTeacher(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Не удалось получить список учеников"})
		return
	}
	c.JSON(http.StatusOK, students)
}
