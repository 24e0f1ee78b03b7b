package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/readsprout/learning-service/internal/models"
	"github.com/readsprout/learning-service/internal/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var planStart = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func decodeGoals(t *testing.T, plan *models.LearningPlan) []models.WeeklyGoal {
	t.Helper()
	var goals []models.WeeklyGoal
	require.NoError(t, json.Unmarshal(plan.WeeklyGoals, &goals))
	return goals
}

func TestGenerateCurriculum_RejectsNonPositiveDuration(t *testing.T) {
	_, _, err := GenerateCurriculum(models.TierBeginner, "Letter Recognition", nil, 0, 1, planStart)
	assert.Error(t, err)

	_, _, err = GenerateCurriculum(models.TierBeginner, "Letter Recognition", nil, -2, 1, planStart)
	assert.Error(t, err)
}

func TestGenerateCurriculum_CalendarShape(t *testing.T) {
	tests := []struct {
		tier           models.Tier
		weeks          int
		wantActivities int
	}{
		{models.TierBeginner, 8, 56},
		{models.TierIntermediate, 6, 42},
		{models.TierAdvanced, 6, 42},
	}

	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			plan, activities, err := GenerateCurriculum(tt.tier, "focus", nil, tt.weeks, 7, planStart)
			require.NoError(t, err)

			assert.Equal(t, tt.weeks, plan.DurationWeeks)
			assert.Equal(t, models.PlanActive, plan.Status)
			assert.Equal(t, planStart, plan.StartDate)
			assert.Equal(t, planStart.AddDate(0, 0, tt.weeks*7), plan.EndDate)
			assert.Len(t, activities, tt.wantActivities)
			assert.Len(t, decodeGoals(t, plan), tt.weeks)

			for _, activity := range activities {
				assert.Equal(t, uint(7), activity.ChildID)
				assert.NotEmpty(t, activity.Name)
				assert.NotEmpty(t, activity.ActivityType)
			}
		})
	}
}

func TestGenerateCurriculum_Deterministic(t *testing.T) {
	reports := []SkillReport{
		skillReport(taxonomy.SkillLetterRecognition, 25),
		skillReport(taxonomy.SkillPhonics, 50),
	}

	planA, activitiesA, err := GenerateCurriculum(models.TierBeginner, "Letter Recognition", reports, 8, 3, planStart)
	require.NoError(t, err)
	planB, activitiesB, err := GenerateCurriculum(models.TierBeginner, "Letter Recognition", reports, 8, 3, planStart)
	require.NoError(t, err)

	assert.Equal(t, planA.WeeklyGoals, planB.WeeklyGoals)
	assert.Equal(t, activitiesA, activitiesB)
}

func TestGenerateCurriculum_TargetsRankedWeaknesses(t *testing.T) {
	reports := []SkillReport{
		skillReport(taxonomy.SkillLetterRecognition, 25),
		skillReport(taxonomy.SkillPhonics, 50),
		skillReport(taxonomy.SkillRhyming, 100),
	}

	plan, activities, err := GenerateCurriculum(models.TierBeginner, "Letter Recognition", reports, 8, 3, planStart)
	require.NoError(t, err)

	goals := decodeGoals(t, plan)

	// Weeks 1-2 teach letters; the letter weakness personalizes them.
	assert.True(t, goals[0].Personalized)
	assert.Equal(t, "Targeted Letter Practice", goals[0].Title)
	assert.Contains(t, goals[0].Goals[0], "Letter Recognition")
	assert.Contains(t, goals[0].Goals[0], "25%")
	assert.Contains(t, goals[0].Goals[0], "70%")

	// Weeks 3-4 teach phonics; the secondary weakness personalizes them.
	assert.True(t, goals[2].Personalized)
	assert.Equal(t, "Targeted Sound Practice", goals[2].Title)
	assert.Contains(t, goals[2].Goals[0], "Phonics & Sounds")
	assert.Contains(t, goals[2].Goals[0], "50%")

	// Weeks 5-6 teach rhyming, which is mastered: generic content.
	assert.False(t, goals[4].Personalized)
	assert.Equal(t, "Simple Rhyming", goals[4].Title)

	// A personalized week's activities carry the targeting sentence.
	week1Day1 := activities[0]
	assert.Contains(t, week1Day1.ContentDescription,
		"Targets Letter Recognition: current 25%, goal 70%+")

	// Week 5 (index 28) activities stay generic.
	week5Day1 := activities[28]
	assert.NotContains(t, week5Day1.ContentDescription, "Targets")
}

func TestGenerateCurriculum_AllMasteredFallsBackToGeneric(t *testing.T) {
	reports := []SkillReport{
		skillReport(taxonomy.SkillLetterRecognition, 100),
		skillReport(taxonomy.SkillPhonics, 90),
	}

	plan, _, err := GenerateCurriculum(models.TierAdvanced, "Reading Comprehension & Fluency", reports, 6, 3, planStart)
	require.NoError(t, err)

	// The fallback primary is letter_recognition, which no advanced band
	// teaches, so every week renders generic.
	for _, goal := range decodeGoals(t, plan) {
		assert.False(t, goal.Personalized, "week %d should be generic", goal.Week)
	}
}

func TestGenerateCurriculum_DayAlternation(t *testing.T) {
	_, activities, err := GenerateCurriculum(models.TierBeginner, "Letter Recognition", nil, 1, 3, planStart)
	require.NoError(t, err)
	require.Len(t, activities, 7)

	// Beginner week 1: odd days trace, even days play Letter Hunt.
	assert.Equal(t, models.ActivityTracing, activities[0].ActivityType)
	assert.Equal(t, models.ActivityGame, activities[1].ActivityType)
	assert.Equal(t, models.ActivityTracing, activities[2].ActivityType)
	assert.Contains(t, activities[1].Name, "Week 1 Day 2")
}

func TestRankWeaknesses(t *testing.T) {
	t.Run("orders ascending by mastery", func(t *testing.T) {
		reports := []SkillReport{
			skillReport(taxonomy.SkillPhonics, 50),
			skillReport(taxonomy.SkillLetterRecognition, 25),
			skillReport(taxonomy.SkillRhyming, 90),
		}
		primary, secondary := RankWeaknesses(reports)
		require.NotNil(t, primary)
		require.NotNil(t, secondary)
		assert.Equal(t, taxonomy.SkillLetterRecognition, primary.SkillKey)
		assert.Equal(t, taxonomy.SkillPhonics, secondary.SkillKey)
	})

	t.Run("ties keep first occurrence order", func(t *testing.T) {
		reports := []SkillReport{
			skillReport(taxonomy.SkillGrammar, 40),
			skillReport(taxonomy.SkillRhyming, 40),
		}
		primary, secondary := RankWeaknesses(reports)
		assert.Equal(t, taxonomy.SkillGrammar, primary.SkillKey)
		assert.Equal(t, taxonomy.SkillRhyming, secondary.SkillKey)
	})

	t.Run("nothing weak yields nils", func(t *testing.T) {
		reports := []SkillReport{skillReport(taxonomy.SkillPhonics, 95)}
		primary, secondary := RankWeaknesses(reports)
		assert.Nil(t, primary)
		assert.Nil(t, secondary)
	})
}
