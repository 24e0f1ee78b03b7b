package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/readsprout/learning-service/internal/cache"
	"github.com/readsprout/learning-service/internal/events"
	"github.com/readsprout/learning-service/internal/models"
	"github.com/readsprout/learning-service/internal/repositories"
	"github.com/readsprout/learning-service/internal/utils"
)

const (
	childAggregateTTL = 5 * time.Minute
)

func childAggregateKey(childID uint) string {
	return fmt.Sprintf("child_aggregate:%d", childID)
}

type achievementService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	publisher events.EventPublisher
	logger    utils.Logger
}

func NewAchievementService(repo repositories.Repository, cacheService cache.CacheService, publisher events.EventPublisher, logger utils.Logger) AchievementService {
	return &achievementService{
		repo:      repo,
		cache:     cacheService,
		publisher: publisher,
		logger:    logger,
	}
}

// Evaluate runs every badge rule against the child's aggregate state and
// awards each newly unlocked badge exactly once. Each award is its own
// unit of work: one storage failure is collected and the pass continues.
// A badge rule referencing a key outside the catalog aborts immediately
// with a ConfigurationError, since that is a bug in the tables, not a
// runtime condition.
func (s *achievementService) Evaluate(ctx context.Context, childID uint, trigger *ActivityTrigger) ([]models.Achievement, error) {
	agg, err := s.childAggregate(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to read child aggregate: %w", err)
	}

	view := &aggregateView{
		totalCompleted:   agg.TotalCompleted,
		tracingCompleted: agg.CompletedOfType(models.ActivityTracing),
		latestAssessment: agg.LatestAssessment,
	}

	awarded := make([]models.Achievement, 0)
	var failures []BadgeFailure

	for _, rule := range badgeRules {
		if !rule.unlocked(view, trigger) {
			continue
		}

		def, ok := CatalogDefinition(rule.key)
		if !ok {
			return awarded, &ConfigurationError{BadgeKey: rule.key}
		}

		if agg.HasBadge(def.Name) {
			continue
		}

		achievement := models.Achievement{
			ChildID:     childID,
			Name:        def.Name,
			Description: def.Description,
			Icon:        def.Icon,
		}
		err := s.repo.Achievement().Create(ctx, &achievement)
		switch {
		case err == nil:
			awarded = append(awarded, achievement)
			s.publishAwarded(ctx, childID, def)
		case errors.Is(err, repositories.ErrAlreadyAwarded):
			// Lost a race with a concurrent evaluation; the badge exists,
			// which is all the invariant asks for.
		default:
			s.logger.Error("failed to persist badge, continuing evaluation",
				"child_id", childID, "badge", rule.key, "error", err)
			failures = append(failures, BadgeFailure{Key: rule.key, Err: err})
		}
	}

	if len(awarded) > 0 {
		s.invalidateAggregate(ctx, childID)
		s.logger.Info("awarded achievements",
			"child_id", childID, "count", len(awarded), "badges", badgeNames(awarded))
	}

	if len(failures) > 0 {
		return awarded, &PartialFailureError{Failures: failures}
	}
	return awarded, nil
}

func (s *achievementService) GetByChild(ctx context.Context, childID uint) ([]*models.Achievement, error) {
	return s.repo.Achievement().GetByChild(ctx, childID)
}

// childAggregate reads through the cache. A cache miss or error falls
// back to storage; caching is an optimization, never a correctness
// dependency.
func (s *achievementService) childAggregate(ctx context.Context, childID uint) (*repositories.ChildAggregate, error) {
	key := childAggregateKey(childID)

	if s.cache != nil {
		var cached repositories.ChildAggregate
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	agg, err := s.repo.ChildAggregate(ctx, childID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, agg, childAggregateTTL); err != nil {
			s.logger.Warn("failed to cache child aggregate", "child_id", childID, "error", err)
		}
	}
	return agg, nil
}

func (s *achievementService) InvalidateAggregate(ctx context.Context, childID uint) {
	s.invalidateAggregate(ctx, childID)
}

func (s *achievementService) invalidateAggregate(ctx context.Context, childID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, childAggregateKey(childID)); err != nil {
		s.logger.Warn("failed to invalidate child aggregate cache", "child_id", childID, "error", err)
	}
}

func (s *achievementService) publishAwarded(ctx context.Context, childID uint, def AchievementDefinition) {
	if s.publisher == nil {
		return
	}
	event := events.NewLearningEvent(events.EventAchievementAwarded, events.AchievementAwardedEvent{
		ChildID:    childID,
		BadgeName:  def.Name,
		BadgeIcon:  def.Icon,
		PointValue: def.Points,
	})
	if err := s.publisher.PublishLearningEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish achievement.awarded event",
			"child_id", childID, "badge", def.Key, "error", err)
	}
}

func badgeNames(achievements []models.Achievement) string {
	names := make([]string, len(achievements))
	for i, a := range achievements {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}
