package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/readsprout/learning-service/internal/models"
	"github.com/readsprout/learning-service/internal/repositories"
	"github.com/readsprout/learning-service/internal/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportChildReport(t *testing.T) {
	repo := newMockRepository()
	graded := time.Date(2026, 4, 1, 10, 30, 0, 0, time.UTC)

	repo.ChildRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Child{
		ID: 1, Name: "Mia", Age: 5,
		CurrentLevel:   models.TierIntermediate,
		NativeLanguage: "Spanish",
	}, nil)
	repo.AssessmentRepo.On("GetLatestByChild", mock.Anything, uint(1)).Return(&models.Assessment{
		ID: 42, ChildID: 1,
		TotalQuestions: 4, CorrectAnswers: 3,
		AccuracyPercent: 75,
		CreatedAt:       graded,
		Questions: []models.AssessmentQuestion{
			{SkillKey: taxonomy.SkillLetterRecognition, IsCorrect: true},
			{SkillKey: taxonomy.SkillLetterRecognition, IsCorrect: true},
			{SkillKey: taxonomy.SkillPhonics, IsCorrect: true},
			{SkillKey: taxonomy.SkillPhonics, IsCorrect: false},
		},
		Plan: &models.LearningPlan{DurationWeeks: 6, Status: models.PlanActive},
	}, nil)
	repo.ActivityRepo.On("GetProgressByChild", mock.Anything, uint(1)).
		Return([]*models.ActivityProgress{
			{
				ActivityID: 5, ProgressID: 20,
				CompletionStatus:      models.CompletionCompleted,
				TotalTimeSpentMinutes: 12,
				Activity:              &models.Activity{ID: 5, Name: "Sound Match", ActivityType: models.ActivityGame},
			},
		}, nil)
	repo.AchievementRepo.On("GetByChild", mock.Anything, uint(1)).
		Return([]*models.Achievement{
			{ChildID: 1, Name: "First Steps", Icon: "👣", Description: "Completed your first activity"},
		}, nil)

	service := NewReportService(repo, testLogger())

	data, err := service.ExportChildReport(context.Background(), 1)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Overview", "Skills", "Activities", "Badges"}, f.GetSheetList())

	name, err := f.GetCellValue("Overview", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Mia", name)
	accuracy, err := f.GetCellValue("Overview", "B6")
	require.NoError(t, err)
	assert.Equal(t, "75.0%", accuracy)

	skill, err := f.GetCellValue("Skills", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Letter Recognition", skill)
	phonicsStatus, err := f.GetCellValue("Skills", "E3")
	require.NoError(t, err)
	assert.Equal(t, "Learning", phonicsStatus)

	activity, err := f.GetCellValue("Activities", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Sound Match", activity)

	badge, err := f.GetCellValue("Badges", "B2")
	require.NoError(t, err)
	assert.Equal(t, "First Steps", badge)
}

func TestExportChildReport_NoAssessmentYet(t *testing.T) {
	repo := newMockRepository()
	repo.ChildRepo.On("GetByID", mock.Anything, uint(2)).Return(&models.Child{
		ID: 2, Name: "Theo", CurrentLevel: models.TierBeginner,
	}, nil)
	repo.AssessmentRepo.On("GetLatestByChild", mock.Anything, uint(2)).Return(nil, repositories.ErrNotFound)
	repo.ActivityRepo.On("GetProgressByChild", mock.Anything, uint(2)).Return([]*models.ActivityProgress{}, nil)
	repo.AchievementRepo.On("GetByChild", mock.Anything, uint(2)).Return([]*models.Achievement{}, nil)

	service := NewReportService(repo, testLogger())

	data, err := service.ExportChildReport(context.Background(), 2)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	// No Skills sheet without a graded assessment.
	assert.Equal(t, []string{"Overview", "Activities", "Badges"}, f.GetSheetList())

	placeholder, err := f.GetCellValue("Overview", "B5")
	require.NoError(t, err)
	assert.Equal(t, "none yet", placeholder)
}

func TestExportChildReport_UnknownChild(t *testing.T) {
	repo := newMockRepository()
	repo.ChildRepo.On("GetByID", mock.Anything, uint(9)).Return(nil, repositories.ErrNotFound)

	service := NewReportService(repo, testLogger())

	_, err := service.ExportChildReport(context.Background(), 9)
	assert.ErrorIs(t, err, ErrChildNotFound)
}
