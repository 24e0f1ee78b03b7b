package models

import (
	"time"

	"gorm.io/datatypes"
)

type PlanStatus string

const (
	PlanActive    PlanStatus = "Active"
	PlanCompleted PlanStatus = "Completed"
	PlanAbandoned PlanStatus = "Abandoned"
)

type ActivityType string

const (
	ActivityGame    ActivityType = "Game"
	ActivityTracing ActivityType = "Tracing"
	ActivityReading ActivityType = "Reading"
	ActivityVideo   ActivityType = "Video"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// WeeklyGoal is one entry of a plan's weekly goal sequence. The whole
// sequence is stored on the plan as a JSON column.
type WeeklyGoal struct {
	Week         int      `json:"week"`
	Title        string   `json:"title"`
	Goals        []string `json:"goals"`
	Focus        string   `json:"focus"`
	Personalized bool     `json:"personalized,omitempty"`
}

// LearningPlan is the multi-week curriculum generated from exactly one
// assessment. It is created atomically with its full activity calendar.
type LearningPlan struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	AssessmentID  uint           `json:"assessment_id" gorm:"not null;uniqueIndex"`
	DurationWeeks int            `json:"duration_weeks" gorm:"not null" validate:"required,min=1"`
	StartDate     time.Time      `json:"start_date" gorm:"not null"`
	EndDate       time.Time      `json:"end_date" gorm:"not null"`
	Status        PlanStatus     `json:"status" gorm:"default:Active;size:16" validate:"omitempty,oneof=Active Completed Abandoned"`
	FocusLabel    string         `json:"focus_label" gorm:"size:128"`
	WeeklyGoals   datatypes.JSON `json:"weekly_goals" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Assessment *Assessment `json:"assessment,omitempty" gorm:"foreignKey:AssessmentID"`
	Activities []Activity  `json:"activities,omitempty" gorm:"foreignKey:PlanID"`
}

// Activity is one scheduled (or ad-hoc, when PlanID is nil) learning task.
type Activity struct {
	ID                 uint         `json:"id" gorm:"primaryKey"`
	PlanID             *uint        `json:"plan_id" gorm:"index"`
	ChildID            uint         `json:"child_id" gorm:"not null;index"`
	ActivityType       ActivityType `json:"activity_type" gorm:"not null;size:32" validate:"omitempty,activity_type"`
	Name               string       `json:"name" gorm:"not null;size:255"`
	ContentDescription string       `json:"content_description" gorm:"type:text"`
	EstimatedMinutes   int          `json:"estimated_minutes"`
	Difficulty         Difficulty   `json:"difficulty" gorm:"size:16" validate:"omitempty,oneof=Easy Medium Hard"`
	Language           string       `json:"language" gorm:"default:English;size:64"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Plan            *LearningPlan      `json:"plan,omitempty" gorm:"foreignKey:PlanID"`
	ProgressRecords []ActivityProgress `json:"progress_records,omitempty" gorm:"foreignKey:ActivityID"`
}

func (LearningPlan) TableName() string {
	return "learning_plans"
}

func (Activity) TableName() string {
	return "activities"
}
