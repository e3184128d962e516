package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/artemshak/tutor-platform/internal/models"
	"github.com/artemshak/tutor-platform/internal/services"

	"github.com/gin-gonic/gin"
)

func TestDecideGate(t *testing.T) {
	excluded := []string{"/auth/login", "/health"}

	tests := []struct {
		name          string
		authenticated bool
		path          string
		accept        string
		want          gateDecision
	}{
		{"authenticated on login page", true, "/auth/login", "text/html", gateRedirectDashboard},
		{"anonymous on login page", false, "/auth/login", "text/html", gatePublic},
		{"anonymous on health", false, "/health", "application/json", gatePublic},
		{"anonymous browser request", false, "/dashboard", "text/html,application/xhtml+xml", gateRedirectLogin},
		{"anonymous api request", false, "/teacher/lessons", "application/json", gateUnauthorized},
		{"anonymous without accept", false, "/teacher/lessons", "", gateUnauthorized},
		{"authenticated request", true, "/teacher/lessons", "application/json", gateProceed},
		{"authenticated on health", true, "/health", "application/json", gatePublic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decideGate(tt.authenticated, tt.path, tt.accept, excluded)
			if got != tt.want {
				t.Fatalf("decideGate = %d, want %d", got, tt.want)
			}
		})
	}
}

func newGateRouter(t *testing.T) (*gin.Engine, *services.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authService := services.NewAuthService(nil, "test-secret", "HS256", time.Hour)
	router := gin.New()
	router.Use(AuthGateMiddleware(authService, []string{"/auth/login", "/health"}))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET(loginPath, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "login"})
	})
	router.GET("/teacher/lessons", RequireRoles(models.RoleTeacher), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": currentEmail(c)})
	})
	return router, authService
}

func sessionCookie(t *testing.T, authService *services.AuthService, email string, role models.UserRole) *http.Cookie {
	t.Helper()
	token, err := authService.IssueToken(email, role)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	return &http.Cookie{Name: SessionCookie, Value: "Bearer " + token}
}

func TestAuthGateMiddleware(t *testing.T) {
	router, authService := newGateRouter(t)

	t.Run("excluded path without token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
	})

	t.Run("api request without token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/teacher/lessons", nil)
		req.Header.Set("Accept", "application/json")
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
	})

	t.Run("browser request without token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/teacher/lessons", nil)
		req.Header.Set("Accept", "text/html")
		router.ServeHTTP(w, req)
		if w.Code != http.StatusFound {
			t.Fatalf("status = %d, want 302", w.Code)
		}
		if loc := w.Header().Get("Location"); loc != loginPath {
			t.Errorf("Location = %q, want %q", loc, loginPath)
		}
	})

	t.Run("tampered token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/teacher/lessons", nil)
		req.Header.Set("Accept", "application/json")
		cookie := sessionCookie(t, authService, "t@example.com", models.RoleTeacher)
		cookie.Value += "broken"
		req.AddCookie(cookie)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
	})

	t.Run("valid token on login page", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, loginPath, nil)
		req.Header.Set("Accept", "text/html")
		req.AddCookie(sessionCookie(t, authService, "t@example.com", models.RoleTeacher))
		router.ServeHTTP(w, req)
		if w.Code != http.StatusFound {
			t.Fatalf("status = %d, want 302", w.Code)
		}
		if loc := w.Header().Get("Location"); loc != dashboardPath {
			t.Errorf("Location = %q, want %q", loc, dashboardPath)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/teacher/lessons", nil)
		req.Header.Set("Accept", "application/json")
		req.AddCookie(sessionCookie(t, authService, "t@example.com", models.RoleTeacher))
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
		}
	})
}

func TestRequireRoles(t *testing.T) {
	router, authService := newGateRouter(t)

	t.Run("wrong role", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/teacher/lessons", nil)
		req.Header.Set("Accept", "application/json")
		req.AddCookie(sessionCookie(t, authService, "s@example.com", models.RoleStudent))
		router.ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", w.Code)
		}
	})

	t.Run("allowed role", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/teacher/lessons", nil)
		req.Header.Set("Accept", "application/json")
		req.AddCookie(sessionCookie(t, authService, "t@example.com", models.RoleTeacher))
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
	})
}
