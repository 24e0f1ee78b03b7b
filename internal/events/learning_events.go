package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents different types of learning events
type EventType string

const (
	EventAssessmentCompleted EventType = "assessment.completed"
	EventActivityCompleted   EventType = "activity.completed"
	EventAchievementAwarded  EventType = "achievement.awarded"
)

const eventSource = "learning-service"

// LearningEvent is the base event structure for all published events
type LearningEvent struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Data      interface{} `json:"data"`
}

// AssessmentCompletedEvent is emitted once a placement assessment and
// its generated plan are committed.
type AssessmentCompletedEvent struct {
	AssessmentID    uint    `json:"assessment_id"`
	ChildID         uint    `json:"child_id"`
	ParentID        uint    `json:"parent_id"`
	ChildName       string  `json:"child_name"`
	AccuracyPercent float64 `json:"accuracy_percent"`
	ResultingTier   string  `json:"resulting_tier"`
	PlanID          uint    `json:"plan_id"`
	DurationWeeks   int     `json:"duration_weeks"`
}

type ActivityCompletedEvent struct {
	ActivityID   uint     `json:"activity_id"`
	ActivityName string   `json:"activity_name"`
	ChildID      uint     `json:"child_id"`
	ParentID     uint     `json:"parent_id"`
	ChildName    string   `json:"child_name"`
	NewBadges    []string `json:"new_badges"`
}

type AchievementAwardedEvent struct {
	ChildID    uint   `json:"child_id"`
	BadgeName  string `json:"badge_name"`
	BadgeIcon  string `json:"badge_icon"`
	PointValue int    `json:"point_value"`
}

// NewLearningEvent wraps a payload in the common event envelope.
func NewLearningEvent(eventType EventType, data interface{}) *LearningEvent {
	return &LearningEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   "1.0",
		Data:      data,
	}
}
