package services

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/readsprout/learning-service/internal/models"
)

const daysPerWeek = 7

// RankWeaknesses orders the reports still below mastery (NeedsWork or
// Learning) ascending by mastery percent and returns the two weakest.
// Either may be nil. The sort is stable so equal masteries keep the
// analyzer's first-occurrence order, which keeps generation
// deterministic.
func RankWeaknesses(reports []SkillReport) (primary, secondary *SkillReport) {
	var weak []*SkillReport
	for i := range reports {
		if reports[i].Status != models.SkillMastered {
			weak = append(weak, &reports[i])
		}
	}
	sort.SliceStable(weak, func(i, j int) bool {
		return weak[i].MasteryPercent < weak[j].MasteryPercent
	})
	if len(weak) > 0 {
		primary = weak[0]
	}
	if len(weak) > 1 {
		secondary = weak[1]
	}
	return primary, secondary
}

// GenerateCurriculum synthesizes the full learning plan for one
// assessment: weekly goals plus a calendar of durationWeeks*7 daily
// activities, biased toward the child's ranked weaknesses.
// Deterministic pure function of its inputs; nothing is persisted here.
func GenerateCurriculum(
	tier models.Tier,
	focusLabel string,
	reports []SkillReport,
	durationWeeks int,
	childID uint,
	startDate time.Time,
) (*models.LearningPlan, []models.Activity, error) {
	if durationWeeks <= 0 {
		return nil, nil, fmt.Errorf("%w: duration_weeks must be positive, got %d",
			ErrValidationFailed, durationWeeks)
	}

	primary, secondary := RankWeaknesses(reports)
	if primary == nil && len(reports) > 0 {
		// Nothing below mastery: keep the strongest available signal so
		// templates still render with real numbers.
		primary = &reports[0]
	}

	goals := make([]models.WeeklyGoal, 0, durationWeeks)
	for week := 1; week <= durationWeeks; week++ {
		goals = append(goals, weeklyGoalFor(tier, week, primary, secondary))
	}
	goalsJSON, err := json.Marshal(goals)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode weekly goals: %w", err)
	}

	plan := &models.LearningPlan{
		DurationWeeks: durationWeeks,
		StartDate:     startDate,
		EndDate:       startDate.AddDate(0, 0, durationWeeks*daysPerWeek),
		Status:        models.PlanActive,
		FocusLabel:    focusLabel,
		WeeklyGoals:   goalsJSON,
	}

	activities := make([]models.Activity, 0, durationWeeks*daysPerWeek)
	for week := 1; week <= durationWeeks; week++ {
		for day := 1; day <= daysPerWeek; day++ {
			activities = append(activities, dailyActivityFor(tier, week, day, childID, primary, secondary))
		}
	}

	return plan, activities, nil
}

// matchedWeakness returns the ranked weakness matching a band's skill,
// or nil when neither matches.
func matchedWeakness(band weekBand, primary, secondary *SkillReport) *SkillReport {
	if primary != nil && primary.SkillKey == band.match {
		return primary
	}
	if secondary != nil && secondary.SkillKey == band.match {
		return secondary
	}
	return nil
}

func weeklyGoalFor(tier models.Tier, week int, primary, secondary *SkillReport) models.WeeklyGoal {
	band := bandForWeek(tier, week)

	tmpl := band.generic
	weakness := matchedWeakness(band, primary, secondary)
	if weakness != nil {
		tmpl = band.targeted
	}

	goals := make([]string, len(tmpl.goals))
	for i, g := range tmpl.goals {
		goals[i] = renderTemplate(g, week, 0, weakness)
	}

	return models.WeeklyGoal{
		Week:         week,
		Title:        renderTemplate(tmpl.title, week, 0, weakness),
		Goals:        goals,
		Focus:        tmpl.focus,
		Personalized: weakness != nil,
	}
}

func dailyActivityFor(tier models.Tier, week, day int, childID uint, primary, secondary *SkillReport) models.Activity {
	band := bandForWeek(tier, week)

	tmpl := band.oddDay
	if day%2 == 0 {
		tmpl = band.evenDay
	}

	weakness := matchedWeakness(band, primary, secondary)
	content := renderTemplate(tmpl.content, week, day, weakness)
	if weakness != nil {
		content += renderTemplate(". Targets {skill}: current {mastery}%, goal {target}%+", week, day, weakness)
	}

	return models.Activity{
		ChildID:            childID,
		ActivityType:       tmpl.activityType,
		Name:               renderTemplate(tmpl.name, week, day, weakness),
		ContentDescription: content,
		EstimatedMinutes:   tmpl.minutes,
		Difficulty:         tmpl.difficulty,
	}
}
