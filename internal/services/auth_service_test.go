package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/artemshak/tutor-platform/internal/models"
	"github.com/artemshak/tutor-platform/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// fakeUserRepo подменяет репозиторий пользователей в тестах.
// Нереализованные методы вызывают панику через встроенный nil-интерфейс.
type fakeUserRepo struct {
	repository.UserRepository
	user *models.User
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	if r.user != nil && r.user.Email == email {
		return r.user, nil
	}
	return nil, errors.New("record not found")
}

func newTestAuthService(repo repository.UserRepository, ttl time.Duration) *AuthService {
	return NewAuthService(repo, "test-secret", "HS256", ttl)
}

func TestIssueAndVerifyToken(t *testing.T) {
	svc := newTestAuthService(nil, time.Hour)

	token, err := svc.IssueToken("teacher@example.com", models.RoleTeacher)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.Email != "teacher@example.com" {
		t.Errorf("claims.Email = %q", claims.Email)
	}
	if claims.Role != models.RoleTeacher {
		t.Errorf("claims.Role = %q", claims.Role)
	}
}

func TestVerifyTokenFailures(t *testing.T) {
	svc := newTestAuthService(nil, time.Hour)

	expired := newTestAuthService(nil, -time.Minute)
	expiredToken, err := expired.IssueToken("a@b.c", models.RoleStudent)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	otherKey := NewAuthService(nil, "other-secret", "HS256", time.Hour)
	foreignToken, err := otherKey.IssueToken("a@b.c", models.RoleStudent)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"expired", expiredToken},
		{"wrong signature", foreignToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.VerifyToken(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("VerifyToken(%s) = %v, want ErrInvalidToken", tt.name, err)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	repo := &fakeUserRepo{user: &models.User{
		Email:        "student@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleStudent,
	}}
	svc := newTestAuthService(repo, time.Hour)

	user, token, err := svc.Login("student@example.com", "Passw0rd!")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Email != "student@example.com" {
		t.Errorf("user.Email = %q", user.Email)
	}
	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.Role != models.RoleStudent {
		t.Errorf("claims.Role = %q", claims.Role)
	}

	if _, _, err := svc.Login("student@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login with wrong password = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login("nobody@example.com", "Passw0rd!"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login with unknown email = %v, want ErrInvalidCredentials", err)
	}
}

func TestValidatePassword(t *testing.T) {
	svc := newTestAuthService(nil, time.Hour)

	tests := []struct {
		name     string
		password string
		wantWeak bool
		wantMsg  string
	}{
		{"valid", "Passw0rd!", false, ""},
		{"too short", "Pa0!", true, "не менее 8 символов"},
		{"no uppercase", "passw0rd!", true, "заглавную латинскую букву"},
		{"no digit", "Password!", true, "хотя бы одну цифру"},
		{"no special", "Passw0rd", true, "спецсимвол"},
		{"cyrillic", "Пароль0рд!", true, "русские буквы"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidatePassword(tt.password)
			if !tt.wantWeak {
				if err != nil {
					t.Fatalf("ValidatePassword(%q) = %v", tt.password, err)
				}
				return
			}
			if !errors.Is(err, ErrWeakPassword) {
				t.Fatalf("ValidatePassword(%q) = %v, want ErrWeakPassword", tt.password, err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantMsg)
			}
		})
	}
}
