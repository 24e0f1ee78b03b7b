package models

import (
	"time"

	"gorm.io/gorm"
)

// Tier is the proficiency classification assigned after a placement assessment.
type Tier string

const (
	TierBeginner     Tier = "Beginner"
	TierIntermediate Tier = "Intermediate"
	TierAdvanced     Tier = "Advanced"
)

// PlanWeeks returns how long a generated learning plan runs for a tier.
func (t Tier) PlanWeeks() int {
	if t == TierBeginner {
		return 8
	}
	return 6
}

type Parent struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	Name         string  `json:"name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Email        string  `json:"email" gorm:"not null;uniqueIndex;size:255" validate:"required,email"`
	PhoneNumber  *string `json:"phone_number" gorm:"size:32"`
	PasswordHash string  `json:"-" gorm:"not null"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Children      []Child        `json:"children,omitempty" gorm:"foreignKey:ParentID"`
	Progress      *Progress      `json:"progress,omitempty" gorm:"foreignKey:ParentID"`
	Notifications []Notification `json:"notifications,omitempty" gorm:"foreignKey:ParentID"`
}

type Child struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Name           string     `json:"name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	Age            int        `json:"age" validate:"min=1,max=12"`
	CurrentLevel   Tier       `json:"current_level" gorm:"default:Beginner" validate:"omitempty,tier"`
	NativeLanguage string     `json:"native_language" gorm:"default:English;size:64"`
	ParentID       uint       `json:"parent_id" gorm:"not null;index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Parent       *Parent       `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
	Assessments  []Assessment  `json:"assessments,omitempty" gorm:"foreignKey:ChildID"`
	Activities   []Activity    `json:"activities,omitempty" gorm:"foreignKey:ChildID"`
	Achievements []Achievement `json:"achievements,omitempty" gorm:"foreignKey:ChildID"`
}

func (Parent) TableName() string {
	return "parents"
}

func (Child) TableName() string {
	return "children"
}
