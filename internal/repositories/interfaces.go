package repositories

import (
	"context"
	"errors"

	"github.com/readsprout/learning-service/internal/models"
	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyAwarded reports that the (child, badge name) pair already
	// exists. Callers treat it as success-no-op, never as a failure.
	ErrAlreadyAwarded = errors.New("achievement already awarded")
)

// IsNotFoundError checks whether err represents a missing record,
// whichever layer produced it.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

type ChildRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Child, error)
}

// AssessmentBundle is everything one submission produces. Persisted as a
// single transaction: the child must never end up with an assessment
// lacking its plan, or a plan lacking its activities.
type AssessmentBundle struct {
	Assessment *models.Assessment
	Questions  []models.AssessmentQuestion
	Plan       *models.LearningPlan
	Activities []models.Activity

	// ChildTier is written to children.current_level inside the same
	// transaction, so a later assessment's classification always wins.
	ChildTier models.Tier
}

type AssessmentRepository interface {
	CreateBundle(ctx context.Context, bundle *AssessmentBundle) error
	GetByChild(ctx context.Context, childID uint) ([]*models.Assessment, error)
	GetLatestByChild(ctx context.Context, childID uint) (*models.Assessment, error)
}

type ActivityRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Activity, error)
	Create(ctx context.Context, activity *models.Activity) error
	GetProgress(ctx context.Context, activityID, progressID uint) (*models.ActivityProgress, error)
	SaveProgress(ctx context.Context, progress *models.ActivityProgress) error
	GetProgressByChild(ctx context.Context, childID uint) ([]*models.ActivityProgress, error)
}

type ProgressRepository interface {
	GetOrCreateByParent(ctx context.Context, parentID uint) (*models.Progress, error)
	AddScore(ctx context.Context, progressID uint, points int) error
}

type AchievementRepository interface {
	// Create persists one badge. A conflict on the (child_id, name)
	// unique index surfaces as ErrAlreadyAwarded.
	Create(ctx context.Context, achievement *models.Achievement) error
	GetByChild(ctx context.Context, childID uint) ([]*models.Achievement, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByParent(ctx context.Context, parentID uint) ([]*models.Notification, error)
}

// ChildAggregate is the read-only view the achievement engine evaluates
// badge predicates against.
type ChildAggregate struct {
	ChildID          uint                        `json:"child_id"`
	TotalCompleted   int                         `json:"total_completed"`
	CompletedByType  map[models.ActivityType]int `json:"completed_by_type"`
	LatestAssessment *models.Assessment          `json:"latest_assessment,omitempty"`
	OwnedBadgeNames  []string                    `json:"owned_badge_names"`
}

func (a *ChildAggregate) HasBadge(name string) bool {
	for _, owned := range a.OwnedBadgeNames {
		if owned == name {
			return true
		}
	}
	return false
}

func (a *ChildAggregate) CompletedOfType(t models.ActivityType) int {
	return a.CompletedByType[t]
}

// Repository bundles all per-aggregate repositories plus the aggregate
// read used by the achievement engine.
type Repository interface {
	Child() ChildRepository
	Assessment() AssessmentRepository
	Activity() ActivityRepository
	Achievement() AchievementRepository
	Progress() ProgressRepository
	Notification() NotificationRepository

	ChildAggregate(ctx context.Context, childID uint) (*ChildAggregate, error)
}
