package models

import (
	"time"
)

// SkillStatus is the mastery band for a single skill category within one
// assessment. Thresholds: <50 NeedsWork, 50-79 Learning, >=80 Mastered.
type SkillStatus string

const (
	SkillMastered  SkillStatus = "Mastered"
	SkillLearning  SkillStatus = "Learning"
	SkillNeedsWork SkillStatus = "Needs Work"
)

// SkillStatusFor maps an integer mastery percentage to its band.
func SkillStatusFor(mastery int) SkillStatus {
	switch {
	case mastery >= 80:
		return SkillMastered
	case mastery >= 50:
		return SkillLearning
	default:
		return SkillNeedsWork
	}
}

// Assessment is one completed placement test for a child. Rows are
// immutable once created; a new submission creates a new assessment.
type Assessment struct {
	ID              uint    `json:"id" gorm:"primaryKey"`
	ChildID         uint    `json:"child_id" gorm:"not null;index"`
	AssessmentType  string  `json:"assessment_type" gorm:"not null;size:64"`
	TotalQuestions  int     `json:"total_questions" gorm:"not null"`
	CorrectAnswers  int     `json:"correct_answers" gorm:"not null"`
	AccuracyPercent float64 `json:"accuracy_percent" gorm:"not null"`
	ResultingTier   Tier    `json:"resulting_tier" gorm:"not null;size:16"`
	IsInitial       bool    `json:"is_initial" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Child     *Child               `json:"child,omitempty" gorm:"foreignKey:ChildID"`
	Questions []AssessmentQuestion `json:"questions,omitempty" gorm:"foreignKey:AssessmentID"`
	Plan      *LearningPlan        `json:"plan,omitempty" gorm:"foreignKey:AssessmentID"`
}

// AssessmentQuestion records one answered question, derived from the
// ephemeral submission payload. Immutable.
type AssessmentQuestion struct {
	ID               uint   `json:"id" gorm:"primaryKey"`
	AssessmentID     uint   `json:"assessment_id" gorm:"not null;index"`
	SkillKey         string `json:"skill_key" gorm:"not null;size:64;index"`
	QuestionContent  string `json:"question_content" gorm:"type:text"`
	ChildAnswer      string `json:"child_answer" gorm:"size:255"`
	CorrectAnswer    string `json:"correct_answer" gorm:"size:255"`
	TimeSpentSeconds int    `json:"time_spent_seconds"`
	IsCorrect        bool   `json:"is_correct"`
}

func (Assessment) TableName() string {
	return "assessments"
}

func (AssessmentQuestion) TableName() string {
	return "assessment_questions"
}
