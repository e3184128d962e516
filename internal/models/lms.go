package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// StepType определяет тип шага урока
type StepType string

const (
	StepText  StepType = "text"
	StepVideo StepType = "video"
	StepPDF   StepType = "pdf"
	StepQuiz  StepType = "quiz"
)

// Folder представляет папку с уроками. Папки могут быть вложенными.
type Folder struct {
	ID   uuid.UUID `json:"id" gorm:"type:text;primaryKey"`
	Name string    `json:"name" gorm:"not null"`

	TeacherID uuid.UUID  `json:"teacher_id" gorm:"type:text;not null;index"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty" gorm:"type:text;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Связи
	Children []Folder `json:"children,omitempty" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	Lessons  []Lesson `json:"lessons,omitempty" gorm:"foreignKey:FolderID;constraint:OnDelete:CASCADE"`
}

// Lesson представляет урок из упорядоченных шагов
type Lesson struct {
	ID          uuid.UUID `json:"id" gorm:"type:text;primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description *string   `json:"description,omitempty"`
	IsPublished bool      `json:"is_published" gorm:"default:false;index"`

	TeacherID uuid.UUID  `json:"teacher_id" gorm:"type:text;not null;index"`
	FolderID  *uuid.UUID `json:"folder_id,omitempty" gorm:"type:text;index"`

	// Храним порядок ID шагов; множество ID всегда совпадает
	// с фактическими строками LessonStep этого урока
	StepsOrder datatypes.JSONSlice[uuid.UUID] `json:"steps_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Связи
	Steps       []LessonStep       `json:"steps,omitempty" gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE"`
	Progress    []LessonProgress   `json:"progress,omitempty" gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE"`
	Assignments []LessonAssignment `json:"-" gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE"`
}

// LessonStep представляет шаг урока.
// Содержимое зависит от типа: текст, ключ хранилища для видео/pdf,
// варианты ответов для квиза.
// Пример квиза question: {"question": "2+2?", "options": ["3","4"], "correct": "4", "points": 10}
// Пример квиза input_task: {"input_task": "The coldest _ of the year is _.", "correct": ["season", "winter"], "points": 10}
// Пример квиза to_correlate: {"to_correlate": [["banana","cucumber"],["fruit","vegetable"]], "correct": [["banana","fruit"],["cucumber","vegetable"]], "points": 10}
type LessonStep struct {
	ID       uuid.UUID         `json:"id" gorm:"type:text;primaryKey"`
	Type     StepType          `json:"type" gorm:"not null"`
	LessonID uuid.UUID         `json:"lesson_id" gorm:"type:text;not null;index"`
	Content  datatypes.JSONMap `json:"content"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LessonAssignment выдает урок преподавателя ученику или целой группе.
// Заполняется ровно одно из полей StudentID/GroupID (проверяется сервисом).
// Удаление преподавателя, урока или ученика удаляет назначение каскадом;
// удаление группы назначение не трогает.
// В PostgreSQL таблица партиционируется по teacher_id (деталь хранения).
type LessonAssignment struct {
	ID uuid.UUID `json:"id" gorm:"type:text;primaryKey"`

	TeacherID uuid.UUID  `json:"teacher_id" gorm:"type:text;not null;index"`
	LessonID  uuid.UUID  `json:"lesson_id" gorm:"type:text;not null;index"`
	StudentID *uuid.UUID `json:"student_id,omitempty" gorm:"type:text;index"`
	// При удалении группы доступ у учеников остаётся
	GroupID *uuid.UUID `json:"group_id,omitempty" gorm:"type:text;index"`

	AssignedAt time.Time  `json:"assigned_at"`
	Deadline   *time.Time `json:"deadline,omitempty"`
}

// StepResult фиксирует результат прохождения одного шага
type StepResult struct {
	Status string `json:"status"` // "viewed", "correct", "incorrect", "partial"
	Score  int    `json:"score"`
}

// LessonProgress фиксирует факт прохождения урока учеником.
// Одна строка на пару (ученик, урок).
type LessonProgress struct {
	StudentID uuid.UUID `json:"student_id" gorm:"type:text;primaryKey"`
	LessonID  uuid.UUID `json:"lesson_id" gorm:"type:text;primaryKey"`

	IsCompleted bool `json:"is_completed"`
	TotalScore  int  `json:"total_score"`

	// Какие шаги пройдены: {"step_id": {"status": "correct", "score": 10}}
	CompletedSteps datatypes.JSONType[map[string]StepResult] `json:"completed_steps"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
