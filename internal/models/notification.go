package models

import "time"

type NotificationType string

const (
	NotificationActivityUpdate    NotificationType = "Activity Update"
	NotificationAchievementEarned NotificationType = "Achievement Earned"
	NotificationAssessmentResult  NotificationType = "Assessment Result"
)

// Notification is a best-effort summary message for a parent. Delivery
// is owned by a downstream consumer; this service only records the row
// and publishes the matching event.
type Notification struct {
	ID            uint             `json:"id" gorm:"primaryKey"`
	ParentID      uint             `json:"parent_id" gorm:"not null;index"`
	Type          NotificationType `json:"type" gorm:"not null;size:32"`
	Message       string           `json:"message" gorm:"type:text"`
	ScheduledTime time.Time        `json:"scheduled_time"`
	SentTime      *time.Time       `json:"sent_time"`
	IsRead        bool             `json:"is_read" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
