package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/artemshak/tutor-platform/internal/services"

	"github.com/gin-gonic/gin"
)

// AdminHandler представляет обработчики суперпользователя
type AdminHandler struct {
	authService *services.AuthService
}

// NewAdminHandler создает новый обработчик суперпользователя
func NewAdminHandler(authService *services.AuthService) *AdminHandler {
	return &AdminHandler{authService: authService}
}

// TeacherProfileRequest представляет профиль создаваемого преподавателя
type TeacherProfileRequest struct {
	Bio             *string `json:"bio"`
	ExperienceYears int     `json:"experience_years" binding:"min=0"`
}

// CreateTeacherRequest представляет запрос создания преподавателя
type CreateTeacherRequest struct {
	Email      string                `json:"email" binding:"required,email"`
	Password   string                `json:"password" binding:"required,min=8"`
	Name       string                `json:"name" binding:"required"`
	Surname    string                `json:"surname" binding:"required"`
	SecondName *string               `json:"second_name"`
	Birthday   *string               `json:"birthday"` // yyyy-mm-dd
	Profile    TeacherProfileRequest `json:"profile"`
}

// CreateTeacher создает учетную запись преподавателя.
// Доступно только суперпользователю.
func (h *AdminHandler) CreateTeacher(c *gin.Context) {
	var req CreateTeacherRequest
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

	user, err := h.authService.CreateTeacher(input, req.Profile.Bio, req.Profile.ExperienceYears)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"detail": err.Error()})
		case errors.Is(err, services.ErrWeakPassword):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Не удалось создать преподавателя"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Учитель успешно создан",
		"email":   user.Email,
	})
}
