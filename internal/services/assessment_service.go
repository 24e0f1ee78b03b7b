package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/readsprout/learning-service/internal/events"
	"github.com/readsprout/learning-service/internal/models"
	"github.com/readsprout/learning-service/internal/repositories"
	"github.com/readsprout/learning-service/internal/taxonomy"
	"github.com/readsprout/learning-service/internal/utils"
)

const placementAssessmentType = "Enhanced Placement Test"

// Per-tier parent recommendations returned with every result. Static
// literal lists, capped at five entries by construction.
var tierRecommendations = map[models.Tier][]string{
	models.TierBeginner: {
		"Practice alphabet songs daily",
		"Use flashcards for letter recognition",
		"Point out letters in everyday environments",
	},
	models.TierIntermediate: {
		"Practice letter-sound associations",
		"Read simple rhyming books together",
		"Play phonics games for 15 minutes daily",
	},
	models.TierAdvanced: {
		"Read age-appropriate books daily",
		"Discuss story characters and plot",
		"Practice sight words for fluency",
	},
}

type assessmentService struct {
	repo        repositories.Repository
	achievement AchievementService
	publisher   events.EventPublisher
	logger      utils.Logger
	validator   *utils.Validator
	now         func() time.Time
}

func NewAssessmentService(
	repo repositories.Repository,
	achievement AchievementService,
	publisher events.EventPublisher,
	logger utils.Logger,
	validator *utils.Validator,
) AssessmentService {
	return &assessmentService{
		repo:        repo,
		achievement: achievement,
		publisher:   publisher,
		logger:      logger,
		validator:   validator,
		now:         time.Now,
	}
}

// Submit runs the full placement pipeline: skill analysis, level
// classification, curriculum generation, then one atomic persist of
// assessment + questions + plan + activities + the child's new level.
func (s *assessmentService) Submit(ctx context.Context, submission *AssessmentSubmission) (*AssessmentResult, error) {
	if err := s.validator.Validate(submission); err != nil {
		return nil, err
	}
	if len(submission.Answers) == 0 {
		return nil, ErrEmptySubmission
	}

	child, err := s.repo.Child().GetByID(ctx, submission.ChildID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrChildNotFound
		}
		return nil, fmt.Errorf("failed to load child: %w", err)
	}

	s.logger.Info("processing assessment submission",
		"child_id", child.ID, "answers", len(submission.Answers))

	accuracy := OverallAccuracy(submission.Answers)
	reports := AnalyzeSkills(submission.Answers)
	tier, focus := ClassifyLevel(accuracy, reports)
	durationWeeks := tier.PlanWeeks()

	plan, activities, err := GenerateCurriculum(tier, focus, reports, durationWeeks, child.ID, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to generate curriculum: %w", err)
	}

	correct := 0
	for _, answer := range submission.Answers {
		if answer.Correct() {
			correct++
		}
	}

	// GetByID loads the bare child row, so the Assessments relation is
	// never populated here; ask storage whether one exists.
	isInitial := false
	if _, err := s.repo.Assessment().GetLatestByChild(ctx, child.ID); err != nil {
		if !repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("failed to check assessment history: %w", err)
		}
		isInitial = true
	}

	bundle := &repositories.AssessmentBundle{
		Assessment: &models.Assessment{
			ChildID:         child.ID,
			AssessmentType:  placementAssessmentType,
			TotalQuestions:  len(submission.Answers),
			CorrectAnswers:  correct,
			AccuracyPercent: accuracy,
			ResultingTier:   tier,
			IsInitial:       isInitial,
		},
		Questions:  buildQuestionRows(submission.Answers),
		Plan:       plan,
		Activities: activities,
		ChildTier:  tier,
	}

	if err := s.repo.Assessment().CreateBundle(ctx, bundle); err != nil {
		return nil, fmt.Errorf("failed to persist assessment bundle: %w", err)
	}

	s.logger.Info("assessment persisted",
		"assessment_id", bundle.Assessment.ID,
		"plan_id", plan.ID,
		"tier", tier,
		"activities", len(activities))

	s.publishCompleted(ctx, child, bundle.Assessment, plan)
	if err := s.awardAssessmentBadges(ctx, child.ID); err != nil {
		return nil, err
	}

	return buildAssessmentResult(bundle.Assessment, plan, tier, accuracy, reports), nil
}

func (s *assessmentService) GetByChild(ctx context.Context, childID uint) ([]*models.Assessment, error) {
	if _, err := s.repo.Child().GetByID(ctx, childID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrChildNotFound
		}
		return nil, fmt.Errorf("failed to load child: %w", err)
	}
	return s.repo.Assessment().GetByChild(ctx, childID)
}

func buildQuestionRows(answers []Answer) []models.AssessmentQuestion {
	rows := make([]models.AssessmentQuestion, len(answers))
	for i, answer := range answers {
		rows[i] = models.AssessmentQuestion{
			SkillKey:         taxonomy.SkillFor(answer.QuestionID),
			QuestionContent:  answer.QuestionContent,
			ChildAnswer:      answer.SelectedAnswer,
			CorrectAnswer:    answer.CorrectAnswer,
			TimeSpentSeconds: answer.TimeSpentSeconds,
			IsCorrect:        answer.Correct(),
		}
	}
	return rows
}

func buildAssessmentResult(
	assessment *models.Assessment,
	plan *models.LearningPlan,
	tier models.Tier,
	accuracy float64,
	reports []SkillReport,
) *AssessmentResult {
	var strengths, weaknesses []string
	for _, report := range reports {
		strengths = append(strengths, report.Strengths...)
		weaknesses = append(weaknesses, report.Weaknesses...)
	}

	return &AssessmentResult{
		Tier:            tier,
		Accuracy:        math.Round(accuracy*10) / 10,
		Message:         fmt.Sprintf("Assessment Complete! Assigned Level: %s", tier),
		AssessmentID:    assessment.ID,
		PlanID:          plan.ID,
		SkillReports:    reports,
		Strengths:       dedupeHead(strengths, 5),
		Weaknesses:      dedupeHead(weaknesses, 5),
		Recommendations: tierRecommendations[tier],
	}
}

// dedupeHead removes duplicates preserving first-seen order and caps the
// result at n entries.
func dedupeHead(items []string, n int) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, n)
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
		if len(out) == n {
			break
		}
	}
	return out
}

func (s *assessmentService) publishCompleted(ctx context.Context, child *models.Child, assessment *models.Assessment, plan *models.LearningPlan) {
	if s.publisher == nil {
		return
	}
	event := events.NewLearningEvent(events.EventAssessmentCompleted, events.AssessmentCompletedEvent{
		AssessmentID:    assessment.ID,
		ChildID:         child.ID,
		ParentID:        child.ParentID,
		ChildName:       child.Name,
		AccuracyPercent: assessment.AccuracyPercent,
		ResultingTier:   string(assessment.ResultingTier),
		PlanID:          plan.ID,
		DurationWeeks:   plan.DurationWeeks,
	})
	if err := s.publisher.PublishLearningEvent(ctx, event); err != nil {
		// Best effort; the assessment itself is already durable.
		s.logger.Warn("failed to publish assessment.completed event",
			"assessment_id", assessment.ID, "error", err)
	}
}

// awardAssessmentBadges runs the achievement engine after the bundle is
// durable so first_assessment / perfect_score unlock on the state that
// now includes this assessment. Storage failures never roll back the
// submission, but a catalog/predicate mismatch is a bug and propagates.
func (s *assessmentService) awardAssessmentBadges(ctx context.Context, childID uint) error {
	if s.achievement == nil {
		return nil
	}
	s.achievement.InvalidateAggregate(ctx, childID)
	if _, err := s.achievement.Evaluate(ctx, childID, nil); err != nil && !IsPartialFailure(err) {
		if IsConfiguration(err) {
			return err
		}
		s.logger.Warn("achievement evaluation after assessment failed",
			"child_id", childID, "error", err)
	}
	return nil
}
