package services

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/artemshak/tutor-platform/internal/models"
	"github.com/artemshak/tutor-platform/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Ошибки сервиса авторизации
var (
	ErrInvalidCredentials = errors.New("неверная почта или пароль")
	ErrEmailTaken         = errors.New("пользователь с такой почтой уже зарегистрирован")
	ErrInvalidToken       = errors.New("invalid token")
	ErrWeakPassword       = errors.New("пароль не отвечает требованиям безопасности")
)

var (
	cyrillicRe = regexp.MustCompile(`[а-яА-ЯёЁ]`)
	upperRe    = regexp.MustCompile(`[A-Z]`)
	digitRe    = regexp.MustCompile(`[0-9]`)
	specialRe  = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// Claims содержит идентичность, зашитую в access-токен
type Claims struct {
	Email string
	Role  models.UserRole
}

// AuthService представляет сервис авторизации: выпуск и проверка
// токенов, пароли, создание учетных записей
type AuthService struct {
	userRepo      repository.UserRepository
	secretKey     []byte
	signingMethod jwt.SigningMethod
	tokenTTL      time.Duration
}

// NewAuthService создает новый сервис авторизации
func NewAuthService(userRepo repository.UserRepository, secretKey, algorithm string, tokenTTL time.Duration) *AuthService {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		method = jwt.SigningMethodHS256
	}
	return &AuthService{
		userRepo:      userRepo,
		secretKey:     []byte(secretKey),
		signingMethod: method,
		tokenTTL:      tokenTTL,
	}
}

// IssueToken выпускает подписанный токен с идентичностью и ролью
func (s *AuthService) IssueToken(email string, role models.UserRole) (string, error) {
	claims := jwt.MapClaims{
		"sub":  email,
		"role": string(role),
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(s.signingMethod, claims)
	return token.SignedString(s.secretKey)
}

// VerifyToken проверяет подпись и срок действия токена.
// Любая причина отказа (подпись, формат, истечение) схлопывается
// в одну ошибку, чтобы не подсказывать, чем именно плох токен.
func (s *AuthService) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != s.signingMethod.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	email, ok := claims["sub"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	return &Claims{Email: email, Role: models.UserRole(role)}, nil
}

// Login проверяет пару email/пароль и выпускает токен.
// Неверная почта и неверный пароль не различаются для клиента.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// GetUserByEmail возвращает пользователя по email из токена
func (s *AuthService) GetUserByEmail(email string) (*models.User, error) {
	return s.userRepo.GetByEmail(email)
}

// ListStudentsOfTeacher возвращает учеников преподавателя
func (s *AuthService) ListStudentsOfTeacher(teacherID uuid.UUID) ([]models.User, error) {
	return s.userRepo.ListStudentsOfTeacher(teacherID)
}

// ValidatePassword проверяет пароль на соответствие политике
func (s *AuthService) ValidatePassword(password string) error {
	switch {
	case cyrillicRe.MatchString(password):
		return fmt.Errorf("%w: пароль не должен содержать русские буквы", ErrWeakPassword)
	case len(password) < 8:
		return fmt.Errorf("%w: пароль должен быть не менее 8 символов", ErrWeakPassword)
	case !upperRe.MatchString(password):
		return fmt.Errorf("%w: пароль должен содержать хотя бы одну заглавную латинскую букву", ErrWeakPassword)
	case !digitRe.MatchString(password):
		return fmt.Errorf("%w: пароль должен содержать хотя бы одну цифру", ErrWeakPassword)
	case !specialRe.MatchString(password):
		return fmt.Errorf("%w: пароль должен содержать хотя бы один спецсимвол", ErrWeakPassword)
	}
	return nil
}

// HashPassword хэширует пароль bcrypt. В базе хранится только хэш.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// NewUserInput содержит общие поля создаваемой учетной записи
type NewUserInput struct {
	Email      string
	Password   string
	Name       string
	Surname    string
	SecondName *string
	Birthday   *time.Time
}

// CreateAdmin создает суперпользователя без профилей
func (s *AuthService) CreateAdmin(input NewUserInput) (*models.User, error) {
	user, err := s.buildUser(input, models.RoleSuperuser)
	if err != nil {
		return nil, err
	}
	return s.createUser(user)
}

// CreateTeacher создает преподавателя вместе с профилем
func (s *AuthService) CreateTeacher(input NewUserInput, bio *string, experienceYears int) (*models.User, error) {
	user, err := s.buildUser(input, models.RoleTeacher)
	if err != nil {
		return nil, err
	}
	user.TeacherProfile = &models.Teacher{
		Bio:             bio,
		ExperienceYears: experienceYears,
	}
	return s.createUser(user)
}

// CreateStudent создает ученика вместе с профилем, привязанным к преподавателю
func (s *AuthService) CreateStudent(input NewUserInput, parentContact *string, teacherID uuid.UUID) (*models.User, error) {
	if _, err := s.userRepo.GetTeacher(teacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("teacher %s not found: %w", teacherID, err)
		}
		return nil, err
	}

	user, err := s.buildUser(input, models.RoleStudent)
	if err != nil {
		return nil, err
	}
	user.StudentProfile = &models.Student{
		ParentContact: parentContact,
		TeacherID:     teacherID,
	}
	return s.createUser(user)
}

// buildUser валидирует пароль и собирает пользователя с хэшем
func (s *AuthService) buildUser(input NewUserInput, role models.UserRole) (*models.User, error) {
	if err := s.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := s.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
		Surname:      input.Surname,
		SecondName:   input.SecondName,
		Birthday:     input.Birthday,
		Role:         role,
		IsActive:     true,
		IsVerified:   true,
	}, nil
}

// createUser проверяет уникальность email и инвариант роль/профиль,
// затем сохраняет пользователя и профиль одной транзакцией.
// Предварительная проверка email — быстрый путь; гонку между проверкой
// и вставкой ловит уникальный индекс, его нарушение тоже даёт ErrEmailTaken.
func (s *AuthService) createUser(user *models.User) (*models.User, error) {
	taken, err := s.userRepo.EmailExists(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}
