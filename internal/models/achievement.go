package models

import "time"

// Achievement is one badge earned by a child. Append-only; the unique
// index on (child_id, name) is what makes awarding idempotent under
// concurrent evaluations.
type Achievement struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	ChildID     uint   `json:"child_id" gorm:"not null;index:idx_child_badge,unique"`
	Name        string `json:"name" gorm:"not null;size:128;index:idx_child_badge,unique"`
	Description string `json:"description" gorm:"type:text"`
	Icon        string `json:"icon" gorm:"size:16"`

	CreatedAt time.Time `json:"created_at"`
}

func (Achievement) TableName() string {
	return "achievements"
}
