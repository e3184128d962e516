package handlers

import (
	"errors"
	"net/http"

	"github.com/artemshak/tutor-platform/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthHandler представляет обработчик авторизации
type AuthHandler struct {
	authService  *services.AuthService
	cookieMaxAge int
}

// NewAuthHandler создает новый обработчик авторизации
func NewAuthHandler(authService *services.AuthService, cookieMaxAge int) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieMaxAge: cookieMaxAge,
	}
}

// LoginRequest представляет форму входа
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// LoginPage отдает заглушку страницы входа
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Войдите в аккаунт: POST /auth/login"})
}

// Login проверяет учетные данные и устанавливает cookie с токеном
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Укажите почту и пароль"})
		return
	}

	_, token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			// Неверная почта и неверный пароль не различаются
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Неверная почта или пароль. Проверь ещё раз :)"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Не удалось выполнить вход"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "Bearer "+token, h.cookieMaxAge, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Успешный вход"})
}

// Logout удаляет cookie сессии. Токен остается валидным до истечения:
// серверного хранилища сессий нет.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Выход выполнен"})
}

// Dashboard возвращает идентичность текущего пользователя
func (h *AuthHandler) Dashboard(c *gin.Context) {
	user, err := h.authService.GetUserByEmail(currentEmail(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Пользователь не найден"})
		return
	}
	c.JSON(http.StatusOK, user)
}
