package handlers

import (
	"net/http"
	"strings"

	"github.com/artemshak/tutor-platform/internal/models"
	"github.com/artemshak/tutor-platform/internal/services"

	"github.com/gin-gonic/gin"
)

// SessionCookie — имя cookie с access-токеном, значение "Bearer <token>"
const SessionCookie = "access_token"

const (
	loginPath     = "/auth/login"
	dashboardPath = "/dashboard"
)

// gateDecision — итог проверки запроса охранным middleware
type gateDecision int

const (
	// пропустить аутентифицированный запрос к обработчику
	gateProceed gateDecision = iota
	// путь из белого списка, авторизация не требуется
	gatePublic
	// неаутентифицированный браузерный запрос — редирект на форму входа
	gateRedirectLogin
	// неаутентифицированный API-запрос — 401
	gateUnauthorized
	// аутентифицированный запрос на форму входа — редирект на дашборд
	gateRedirectDashboard
)

// decideGate — чистая функция принятия решения по запросу.
// Порядок проверок важен: редирект со страницы входа раньше белого
// списка, белый список раньше отказа.
func decideGate(authenticated bool, path, accept string, excludedPaths []string) gateDecision {
	if authenticated && path == loginPath {
		return gateRedirectDashboard
	}

	for _, p := range excludedPaths {
		if path == p {
			return gatePublic
		}
	}

	if !authenticated {
		if strings.Contains(accept, "text/html") {
			return gateRedirectLogin
		}
		return gateUnauthorized
	}

	return gateProceed
}

// AuthGateMiddleware проверяет access-токен из cookie на каждом запросе.
// Любая причина отказа в проверке токена (подпись, формат, истечение)
// означает просто "не аутентифицирован" — без отдельного статуса.
func AuthGateMiddleware(authService *services.AuthService, excludedPaths []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var claims *services.Claims
		if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
			token := strings.TrimPrefix(cookie, "Bearer ")
			if parsed, verifyErr := authService.VerifyToken(token); verifyErr == nil {
				claims = parsed
			}
		}
		authenticated := claims != nil

		if authenticated {
			// Сохраняем идентичность в контексте запроса
			c.Set("user_email", claims.Email)
			c.Set("user_role", claims.Role)
		}

		switch decideGate(authenticated, c.Request.URL.Path, c.GetHeader("Accept"), excludedPaths) {
		case gateRedirectDashboard:
			c.Redirect(http.StatusFound, dashboardPath)
			c.Abort()
		case gatePublic:
			c.Next()
		case gateRedirectLogin:
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
		case gateUnauthorized:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Войдите в аккаунт"})
		case gateProceed:
			c.Next()
		}
	}
}

// RequireRoles разрешает доступ только указанным ролям
func RequireRoles(allowed ...models.UserRole) gin.HandlerFunc {
	allowedSet := make(map[models.UserRole]struct{}, len(allowed))
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}
	return func(c *gin.Context) {
		roleVal, exists := c.Get("user_role")
		role, ok := roleVal.(models.UserRole)
		if !exists || !ok {
			c.JSON(http.StatusForbidden, gin.H{"detail": "Недостаточно прав"})
			c.Abort()
			return
		}
		if _, ok := allowedSet[role]; !ok {
			c.JSON(http.StatusForbidden, gin.H{"detail": "Недостаточно прав"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// currentEmail возвращает email аутентифицированного пользователя
func currentEmail(c *gin.Context) string {
	if v, ok := c.Get("user_email"); ok {
		if email, ok := v.(string); ok {
			return email
		}
	}
	return ""
}

// requireUser достает пользователя по идентичности из контекста.
// При неудаче пишет ответ и возвращает false.
func requireUser(c *gin.Context, authService *services.AuthService) (*models.User, bool) {
	user, err := authService.GetUserByEmail(currentEmail(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Пользователь не найден"})
		return nil, false
	}
	return user, true
}
