package models

import (
	"time"

	"github.com/google/uuid"
)

// Group представляет учебную группу преподавателя
type Group struct {
	ID        uuid.UUID `json:"id" gorm:"type:text;primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	TeacherID uuid.UUID `json:"teacher_id" gorm:"type:text;not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Связи
	Members []GroupMember `json:"members,omitempty" gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}

// GroupMember представляет участника группы (ученика)
type GroupMember struct {
	ID        uuid.UUID `json:"id" gorm:"type:text;primaryKey"`
	GroupID   uuid.UUID `json:"group_id" gorm:"type:text;not null;index"`
	StudentID uuid.UUID `json:"student_id" gorm:"type:text;not null;index"`
	JoinedAt  time.Time `json:"joined_at"`

	// Связи
	Student Student `json:"student" gorm:"foreignKey:StudentID"`
}
