package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// UserRole определяет роли пользователей
type UserRole string

const (
	RoleSuperuser UserRole = "superuser"
	RoleTeacher   UserRole = "teacher"
	RoleStudent   UserRole = "student"
)

// Ошибки инварианта роль/профиль
var (
	ErrSuperuserWithProfile = errors.New("суперпользователь не может иметь профиль студента или преподавателя")
	ErrExactlyOneProfile    = errors.New("пользователь с ролью должен иметь ровно один профиль: либо студента, либо преподавателя")
	ErrUnknownRole          = errors.New("неизвестная роль пользователя")
)

// User представляет пользователя системы
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:text;primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`

	Name       string     `json:"name" gorm:"not null"`
	Surname    string     `json:"surname" gorm:"not null"`
	SecondName *string    `json:"second_name,omitempty"`
	Birthday   *time.Time `json:"birthday,omitempty"`

	Role       UserRole `json:"role" gorm:"default:'student'"`
	IsActive   bool     `json:"is_active" gorm:"default:true"`
	IsVerified bool     `json:"is_verified" gorm:"default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Связи: профили ролей, максимум один из двух
	TeacherProfile *Teacher `json:"teacher_profile,omitempty" gorm:"foreignKey:ID;constraint:OnDelete:CASCADE"`
	StudentProfile *Student `json:"student_profile,omitempty" gorm:"foreignKey:ID;constraint:OnDelete:CASCADE"`
}

// Teacher представляет профиль преподавателя (PK = users.id)
type Teacher struct {
	ID              uuid.UUID `json:"id" gorm:"type:text;primaryKey"`
	Bio             *string   `json:"bio,omitempty"`
	ExperienceYears int       `json:"experience_years" gorm:"default:0"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Связи: преподаватель владеет учениками, папками, уроками и назначениями
	Students    []Student          `json:"students,omitempty" gorm:"foreignKey:TeacherID;constraint:OnDelete:CASCADE"`
	Folders     []Folder           `json:"folders,omitempty" gorm:"foreignKey:TeacherID;constraint:OnDelete:CASCADE"`
	Lessons     []Lesson           `json:"lessons,omitempty" gorm:"foreignKey:TeacherID;constraint:OnDelete:CASCADE"`
	Groups      []Group            `json:"groups,omitempty" gorm:"foreignKey:TeacherID;constraint:OnDelete:CASCADE"`
	Assignments []LessonAssignment `json:"-" gorm:"foreignKey:TeacherID;constraint:OnDelete:CASCADE"`
}

// Student представляет профиль ученика (PK = users.id)
type Student struct {
	ID            uuid.UUID `json:"id" gorm:"type:text;primaryKey"`
	Points        int       `json:"points" gorm:"default:0"`
	ParentContact *string   `json:"parent_contact,omitempty"`
	TeacherID     uuid.UUID `json:"teacher_id" gorm:"type:text;not null;index"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Связи: личные назначения ученика удаляются вместе с ним
	Assignments []LessonAssignment `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
}

// Validate проверяет инвариант роль/профиль после привязки профилей.
// Суперпользователь не имеет профилей; учитель и ученик имеют ровно один.
func (u *User) Validate() error {
	hasTeacher := u.TeacherProfile != nil
	hasStudent := u.StudentProfile != nil

	switch u.Role {
	case RoleSuperuser:
		if hasTeacher || hasStudent {
			return ErrSuperuserWithProfile
		}
	case RoleTeacher:
		if !hasTeacher || hasStudent {
			return ErrExactlyOneProfile
		}
	case RoleStudent:
		if !hasStudent || hasTeacher {
			return ErrExactlyOneProfile
		}
	default:
		return ErrUnknownRole
	}
	return nil
}

// FullName возвращает полное имя пользователя
func (u *User) FullName() string {
	if u.SecondName != nil && *u.SecondName != "" {
		return u.Surname + " " + u.Name + " " + *u.SecondName
	}
	return u.Surname + " " + u.Name
}
