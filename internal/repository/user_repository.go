package repository

import (
	"github.com/artemshak/tutor-platform/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository интерфейс для работы с пользователями
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	EmailExists(email string) (bool, error)
	Update(user *models.User) error
	Delete(id uuid.UUID) error
	ListByRole(role models.UserRole) ([]models.User, error)
	ListStudentsOfTeacher(teacherID uuid.UUID) ([]models.User, error)
	GetStudent(id uuid.UUID) (*models.Student, error)
	GetTeacher(id uuid.UUID) (*models.Teacher, error)
	UpdateStudent(student *models.Student) error
}

// userRepository реализация репозитория пользователей
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository создает новый репозиторий пользователей
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create создает пользователя вместе с привязанным профилем.
// gorm вставляет пользователя и профиль одной транзакцией:
// либо сохраняются оба, либо ни одного.
func (r *userRepository) Create(user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.TeacherProfile != nil {
		user.TeacherProfile.ID = user.ID
	}
	if user.StudentProfile != nil {
		user.StudentProfile.ID = user.ID
	}
	return r.db.Create(user).Error
}

// GetByID получает пользователя по ID вместе с профилями
func (r *userRepository) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.Preload("TeacherProfile").Preload("StudentProfile").
		First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail получает пользователя по email
func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("TeacherProfile").Preload("StudentProfile").
		Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailExists проверяет, занят ли email
func (r *userRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// Update обновляет пользователя
func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete удаляет пользователя. Профиль и всё, чем он владеет,
// удаляются каскадно на уровне базы данных.
func (r *userRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.User{}, "id = ?", id).Error
}

// ListByRole получает пользователей по роли
func (r *userRepository) ListByRole(role models.UserRole) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("role = ?", role).Order("created_at DESC").Find(&users).Error
	return users, err
}

// ListStudentsOfTeacher получает учеников преподавателя
func (r *userRepository) ListStudentsOfTeacher(teacherID uuid.UUID) ([]models.User, error) {
	var users []models.User
	err := r.db.Preload("StudentProfile").
		Joins("JOIN students ON students.id = users.id").
		Where("students.teacher_id = ?", teacherID).
		Order("users.created_at DESC").
		Find(&users).Error
	return users, err
}

// GetStudent получает профиль ученика по ID
func (r *userRepository) GetStudent(id uuid.UUID) (*models.Student, error) {
	var student models.Student
	if err := r.db.First(&student, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

// UpdateStudent обновляет профиль ученика
func (r *userRepository) UpdateStudent(student *models.Student) error {
	return r.db.Save(student).Error
}

// GetTeacher получает профиль преподавателя по ID
func (r *userRepository) GetTeacher(id uuid.UUID) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := r.db.First(&teacher, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &teacher, nil
}
