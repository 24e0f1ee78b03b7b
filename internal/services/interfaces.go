package services

import (
	"context"

	"github.com/readsprout/learning-service/internal/models"
)

// ===== REQUEST / RESPONSE TYPES =====

// Answer is one answered placement question inside a submission. It is
// ephemeral: the persisted form is the AssessmentQuestion row derived
// from it.
type Answer struct {
	QuestionID       int    `json:"question_id" validate:"required,min=1"`
	QuestionContent  string `json:"question_content"`
	SelectedAnswer   string `json:"selected_answer" validate:"required"`
	CorrectAnswer    string `json:"correct_answer" validate:"required"`
	TimeSpentSeconds int    `json:"time_spent_seconds" validate:"min=0"`
}

// Correct reports whether the selected answer matches exactly.
// Comparison is case-sensitive on purpose: answer options are fixed
// strings chosen by tap, not free text.
func (a Answer) Correct() bool {
	return a.SelectedAnswer == a.CorrectAnswer
}

type AssessmentSubmission struct {
	ChildID uint     `json:"child_id" validate:"required"`
	Answers []Answer `json:"answers" validate:"required,min=1,dive"`
}

// SkillReport is the per-skill mastery breakdown computed fresh from one
// submission. Never merged across submissions.
type SkillReport struct {
	SkillKey       string             `json:"skill_key"`
	DisplayName    string             `json:"display_name"`
	TotalQuestions int                `json:"total_questions"`
	CorrectAnswers int                `json:"correct_answers"`
	MasteryPercent int                `json:"mastery_percent"`
	Status         models.SkillStatus `json:"status"`
	AvgTimeSeconds float64            `json:"avg_time_seconds"`
	Strengths      []string           `json:"strengths"`
	Weaknesses     []string           `json:"weaknesses"`
}

type AssessmentResult struct {
	Tier            models.Tier   `json:"tier"`
	Accuracy        float64       `json:"accuracy"`
	Message         string        `json:"message"`
	AssessmentID    uint          `json:"assessment_id"`
	PlanID          uint          `json:"plan_id"`
	SkillReports    []SkillReport `json:"skill_reports"`
	Strengths       []string      `json:"strengths"`
	Weaknesses      []string      `json:"weaknesses"`
	Recommendations []string      `json:"recommendations"`
}

// ActivitySubmission is an activity-completion event. Score and duration
// defaults are applied by the service, not the transport.
type ActivitySubmission struct {
	ChildID         uint    `json:"child_id" validate:"required"`
	ActivityID      *uint   `json:"activity_id"`
	ActivityName    string  `json:"activity_name"`
	ActivityType    string  `json:"activity_type" validate:"omitempty,activity_type"`
	Score           *int    `json:"score" validate:"omitempty,min=0,max=100"`
	DurationSeconds *int    `json:"duration_seconds" validate:"omitempty,min=0"`
	Completed       *bool   `json:"completed"`
}

type ActivityProgressResult struct {
	Progress      *models.ActivityProgress `json:"progress"`
	Activity      *models.Activity         `json:"activity"`
	NewBadges     []models.Achievement     `json:"new_badges"`
	BadgeFailures []BadgeFailure           `json:"-"`
}

// ActivityTrigger is the just-recorded event the achievement engine
// evaluates score/duration predicates against. Nil when the evaluation
// is driven by an assessment rather than an activity.
type ActivityTrigger struct {
	ActivityName    string
	ActivityType    models.ActivityType
	Score           int
	DurationSeconds int
}

// ===== SERVICE INTERFACES =====

type AssessmentService interface {
	Submit(ctx context.Context, submission *AssessmentSubmission) (*AssessmentResult, error)
	GetByChild(ctx context.Context, childID uint) ([]*models.Assessment, error)
}

type ActivityService interface {
	RecordProgress(ctx context.Context, submission *ActivitySubmission) (*ActivityProgressResult, error)
	GetChildProgress(ctx context.Context, childID uint) ([]*models.ActivityProgress, error)
}

type AchievementService interface {
	// Evaluate awards every unlocked-but-not-yet-owned badge exactly once
	// and returns the newly created rows. A *PartialFailureError may come
	// back alongside a non-empty award list.
	Evaluate(ctx context.Context, childID uint, trigger *ActivityTrigger) ([]models.Achievement, error)
	GetByChild(ctx context.Context, childID uint) ([]*models.Achievement, error)

	// InvalidateAggregate drops the cached aggregate view after a caller
	// has written state the next evaluation must observe.
	InvalidateAggregate(ctx context.Context, childID uint)
}

type ReportService interface {
	ExportChildReport(ctx context.Context, childID uint) ([]byte, error)
}

// ServiceManager bundles the service layer for handler wiring.
type ServiceManager interface {
	Assessment() AssessmentService
	Activity() ActivityService
	Achievement() AchievementService
	Report() ReportService
}
