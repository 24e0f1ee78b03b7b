package models

import "time"

type CompletionStatus string

const (
	CompletionCompleted  CompletionStatus = "Completed"
	CompletionIncomplete CompletionStatus = "Incomplete"
)

// Progress is the aggregate score/streak record kept per parent account.
type Progress struct {
	ID         uint `json:"id" gorm:"primaryKey"`
	ParentID   uint `json:"parent_id" gorm:"not null;uniqueIndex"`
	TotalScore int  `json:"total_score" gorm:"default:0"`
	StreakDays int  `json:"streak_days" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	ActivityProgress []ActivityProgress `json:"activity_progress,omitempty" gorm:"foreignKey:ProgressID"`
}

// ActivityProgress links one activity to the parent progress record and
// tracks its completion state. Replays update the same row.
type ActivityProgress struct {
	ID                    uint             `json:"id" gorm:"primaryKey"`
	ActivityID            uint             `json:"activity_id" gorm:"not null;index:idx_activity_progress,unique"`
	ProgressID            uint             `json:"progress_id" gorm:"not null;index:idx_activity_progress,unique"`
	CompletionStatus      CompletionStatus `json:"completion_status" gorm:"not null;size:16"`
	TotalTimeSpentMinutes int              `json:"total_time_spent_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Activity *Activity `json:"activity,omitempty" gorm:"foreignKey:ActivityID"`
}

func (Progress) TableName() string {
	return "progress"
}

func (ActivityProgress) TableName() string {
	return "activity_progress"
}
