package services

import (
	"context"
	"fmt"
	"time"

	"github.com/readsprout/learning-service/internal/events"
	"github.com/readsprout/learning-service/internal/models"
	"github.com/readsprout/learning-service/internal/repositories"
	"github.com/readsprout/learning-service/internal/utils"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Submission defaults applied when the client omits the fields.
const (
	defaultActivityScore    = 10
	defaultDurationSeconds  = 300
	adHocActivityDifficulty = models.DifficultyMedium
)

type activityService struct {
	repo        repositories.Repository
	achievement AchievementService
	publisher   events.EventPublisher
	logger      utils.Logger
	validator   *utils.Validator
	titleCaser  cases.Caser
}

func NewActivityService(
	repo repositories.Repository,
	achievement AchievementService,
	publisher events.EventPublisher,
	logger utils.Logger,
	validator *utils.Validator,
) ActivityService {
	return &activityService{
		repo:        repo,
		achievement: achievement,
		publisher:   publisher,
		logger:      logger,
		validator:   validator,
		titleCaser:  cases.Title(language.English),
	}
}

// RecordProgress handles one activity-completion event: resolve or
// create the activity, upsert its progress row, bump the parent score,
// then run the achievement engine and emit the summary notification.
func (s *activityService) RecordProgress(ctx context.Context, submission *ActivitySubmission) (*ActivityProgressResult, error) {
	if err := s.validator.Validate(submission); err != nil {
		return nil, err
	}

	child, err := s.repo.Child().GetByID(ctx, submission.ChildID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrChildNotFound
		}
		return nil, fmt.Errorf("failed to load child: %w", err)
	}

	score := defaultActivityScore
	if submission.Score != nil {
		score = *submission.Score
	}
	durationSeconds := defaultDurationSeconds
	if submission.DurationSeconds != nil {
		durationSeconds = *submission.DurationSeconds
	}
	completed := true
	if submission.Completed != nil {
		completed = *submission.Completed
	}

	activity, err := s.resolveActivity(ctx, child, submission, durationSeconds)
	if err != nil {
		return nil, err
	}

	progressRecord, err := s.repo.Progress().GetOrCreateByParent(ctx, child.ParentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress record: %w", err)
	}

	activityProgress, err := s.upsertActivityProgress(ctx, activity.ID, progressRecord.ID, completed, durationSeconds)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Progress().AddScore(ctx, progressRecord.ID, score); err != nil {
		return nil, fmt.Errorf("failed to update total score: %w", err)
	}

	result := &ActivityProgressResult{
		Progress:  activityProgress,
		Activity:  activity,
		NewBadges: []models.Achievement{},
	}

	if completed {
		newBadges, badgeFailures, err := s.runAchievements(ctx, child, activity, score, durationSeconds)
		if err != nil {
			return nil, err
		}
		result.NewBadges, result.BadgeFailures = newBadges, badgeFailures
		s.notifyParent(ctx, child, activity, result.NewBadges)
	}

	return result, nil
}

func (s *activityService) GetChildProgress(ctx context.Context, childID uint) ([]*models.ActivityProgress, error) {
	if _, err := s.repo.Child().GetByID(ctx, childID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrChildNotFound
		}
		return nil, fmt.Errorf("failed to load child: %w", err)
	}
	return s.repo.Activity().GetProgressByChild(ctx, childID)
}

// resolveActivity looks up the referenced activity, falling back to
// creating an ad-hoc one from the submitted name. An id that resolves to
// nothing is a client error; a missing id without a name is too.
func (s *activityService) resolveActivity(ctx context.Context, child *models.Child, submission *ActivitySubmission, durationSeconds int) (*models.Activity, error) {
	if submission.ActivityID != nil {
		activity, err := s.repo.Activity().GetByID(ctx, *submission.ActivityID)
		if err == nil {
			return activity, nil
		}
		if !repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("failed to load activity: %w", err)
		}
		if submission.ActivityName == "" {
			return nil, ErrActivityNotFound
		}
	}
	if submission.ActivityName == "" {
		return nil, ErrActivityReference
	}

	activityType := models.ActivityGame
	if submission.ActivityType != "" {
		activityType = models.ActivityType(s.titleCaser.String(submission.ActivityType))
	}

	activity := &models.Activity{
		ChildID:            child.ID,
		ActivityType:       activityType,
		Name:               submission.ActivityName,
		ContentDescription: "Generated from submission",
		EstimatedMinutes:   durationSeconds / 60,
		Difficulty:         adHocActivityDifficulty,
	}
	if err := s.repo.Activity().Create(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to create ad-hoc activity: %w", err)
	}
	return activity, nil
}

func (s *activityService) upsertActivityProgress(ctx context.Context, activityID, progressID uint, completed bool, durationSeconds int) (*models.ActivityProgress, error) {
	minutes := durationSeconds / 60

	existing, err := s.repo.Activity().GetProgress(ctx, activityID, progressID)
	switch {
	case err == nil:
		if completed {
			existing.CompletionStatus = models.CompletionCompleted
		}
		existing.TotalTimeSpentMinutes += minutes
		if err := s.repo.Activity().SaveProgress(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update activity progress: %w", err)
		}
		return existing, nil
	case repositories.IsNotFoundError(err):
		status := models.CompletionIncomplete
		if completed {
			status = models.CompletionCompleted
		}
		record := &models.ActivityProgress{
			ActivityID:            activityID,
			ProgressID:            progressID,
			CompletionStatus:      status,
			TotalTimeSpentMinutes: minutes,
		}
		if err := s.repo.Activity().SaveProgress(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to create activity progress: %w", err)
		}
		return record, nil
	default:
		return nil, fmt.Errorf("failed to load activity progress: %w", err)
	}
}

func (s *activityService) runAchievements(ctx context.Context, child *models.Child, activity *models.Activity, score, durationSeconds int) ([]models.Achievement, []BadgeFailure, error) {
	if s.achievement == nil {
		return []models.Achievement{}, nil, nil
	}

	// The completion just written must be visible to the predicates.
	s.achievement.InvalidateAggregate(ctx, child.ID)

	trigger := &ActivityTrigger{
		ActivityName:    activity.Name,
		ActivityType:    activity.ActivityType,
		Score:           score,
		DurationSeconds: durationSeconds,
	}
	awarded, err := s.achievement.Evaluate(ctx, child.ID, trigger)
	if err != nil {
		var pf *PartialFailureError
		if IsPartialFailure(err) {
			// Awarded badges are still good; surface the failed ones.
			pf = err.(*PartialFailureError)
			return awarded, pf.Failures, nil
		}
		if IsConfiguration(err) {
			// A catalog/predicate mismatch is a bug in the tables and
			// must never be swallowed.
			return nil, nil, err
		}
		s.logger.Error("achievement evaluation failed",
			"child_id", child.ID, "activity_id", activity.ID, "error", err)
		return awarded, nil, nil
	}
	return awarded, nil, nil
}

// notifyParent writes the summary notification row and publishes the
// matching event. Both are best effort: a failure is logged, never
// returned, because the progress record is already durable.
func (s *activityService) notifyParent(ctx context.Context, child *models.Child, activity *models.Activity, newBadges []models.Achievement) {
	message := fmt.Sprintf("%s completed '%s'!", child.Name, activity.Name)
	if len(newBadges) > 0 {
		message += fmt.Sprintf(" And earned %d badge(s)!", len(newBadges))
	}

	now := time.Now().UTC()
	notification := &models.Notification{
		ParentID:      child.ParentID,
		Type:          models.NotificationActivityUpdate,
		Message:       message,
		ScheduledTime: now,
		SentTime:      &now,
	}
	if err := s.repo.Notification().Create(ctx, notification); err != nil {
		s.logger.Warn("failed to record notification", "parent_id", child.ParentID, "error", err)
	}

	if s.publisher == nil {
		return
	}
	badgeKeys := make([]string, len(newBadges))
	for i, badge := range newBadges {
		badgeKeys[i] = badge.Name
	}
	event := events.NewLearningEvent(events.EventActivityCompleted, events.ActivityCompletedEvent{
		ActivityID:   activity.ID,
		ActivityName: activity.Name,
		ChildID:      child.ID,
		ParentID:     child.ParentID,
		ChildName:    child.Name,
		NewBadges:    badgeKeys,
	})
	if err := s.publisher.PublishLearningEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish activity.completed event",
			"activity_id", activity.ID, "error", err)
	}
}
