package services

import (
	"context"
	"testing"

	"github.com/readsprout/learning-service/internal/events"
	"github.com/readsprout/learning-service/internal/models"
	"github.com/readsprout/learning-service/internal/repositories"
	"github.com/readsprout/learning-service/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newActivityFixture(t *testing.T) (*MockRepository, *MockAchievementService, *events.MockEventPublisher, ActivityService) {
	t.Helper()
	repo := newMockRepository()
	achievement := new(MockAchievementService)
	publisher := events.NewMockEventPublisher(nil)
	service := NewActivityService(repo, achievement, publisher, testLogger(), utils.NewValidator())
	return repo, achievement, publisher, service
}

func intPtr(v int) *int    { return &v }
func uintPtr(v uint) *uint { return &v }
func boolPtr(v bool) *bool { return &v }

func TestRecordProgress_AdHocActivityWithDefaults(t *testing.T) {
	repo, achievement, publisher, service := newActivityFixture(t)

	repo.ChildRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Child{
		ID: 1, Name: "Mia", ParentID: 10,
	}, nil)
	repo.ActivityRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Activity")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Activity).ID = 5
		}).Return(nil)
	repo.ProgressRepo.On("GetOrCreateByParent", mock.Anything, uint(10)).
		Return(&models.Progress{ID: 20, ParentID: 10}, nil)
	repo.ActivityRepo.On("GetProgress", mock.Anything, uint(5), uint(20)).
		Return(nil, repositories.ErrNotFound)
	repo.ActivityRepo.On("SaveProgress", mock.Anything, mock.AnythingOfType("*models.ActivityProgress")).Return(nil)
	repo.ProgressRepo.On("AddScore", mock.Anything, uint(20), 10).Return(nil)
	repo.NotificationRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Notification")).Return(nil)

	achievement.On("InvalidateAggregate", mock.Anything, uint(1)).Return()
	achievement.On("Evaluate", mock.Anything, uint(1), mock.MatchedBy(func(trigger *ActivityTrigger) bool {
		return trigger.ActivityName == "letter hunt" &&
			trigger.Score == 10 && trigger.DurationSeconds == 300
	})).Return([]models.Achievement{{ChildID: 1, Name: "First Steps"}}, nil)

	result, err := service.RecordProgress(context.Background(), &ActivitySubmission{
		ChildID:      1,
		ActivityName: "letter hunt",
		ActivityType: "game",
	})

	require.NoError(t, err)
	require.NotNil(t, result.Activity)
	assert.Equal(t, uint(5), result.Activity.ID)
	assert.Equal(t, models.ActivityGame, result.Activity.ActivityType)
	assert.Equal(t, 5, result.Activity.EstimatedMinutes)
	assert.Equal(t, models.CompletionCompleted, result.Progress.CompletionStatus)
	assert.Equal(t, 5, result.Progress.TotalTimeSpentMinutes)
	require.Len(t, result.NewBadges, 1)
	assert.Empty(t, result.BadgeFailures)

	completed := publisher.EventsOfType(events.EventActivityCompleted)
	require.Len(t, completed, 1)
	payload := completed[0].Data.(events.ActivityCompletedEvent)
	assert.Equal(t, []string{"First Steps"}, payload.NewBadges)
}

func TestRecordProgress_ReplayUpdatesExistingRow(t *testing.T) {
	repo, achievement, _, service := newActivityFixture(t)

	repo.ChildRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Child{
		ID: 1, Name: "Mia", ParentID: 10,
	}, nil)
	repo.ActivityRepo.On("GetByID", mock.Anything, uint(5)).
		Return(&models.Activity{ID: 5, ChildID: 1, Name: "Sound Match", ActivityType: models.ActivityGame}, nil)
	repo.ProgressRepo.On("GetOrCreateByParent", mock.Anything, uint(10)).
		Return(&models.Progress{ID: 20, ParentID: 10}, nil)
	repo.ActivityRepo.On("GetProgress", mock.Anything, uint(5), uint(20)).
		Return(&models.ActivityProgress{
			ActivityID: 5, ProgressID: 20,
			CompletionStatus:      models.CompletionIncomplete,
			TotalTimeSpentMinutes: 4,
		}, nil)
	repo.ActivityRepo.On("SaveProgress", mock.Anything, mock.AnythingOfType("*models.ActivityProgress")).Return(nil)
	repo.ProgressRepo.On("AddScore", mock.Anything, uint(20), 80).Return(nil)
	repo.NotificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	achievement.On("InvalidateAggregate", mock.Anything, uint(1)).Return()
	achievement.On("Evaluate", mock.Anything, uint(1), mock.Anything).
		Return([]models.Achievement{}, nil)

	result, err := service.RecordProgress(context.Background(), &ActivitySubmission{
		ChildID:         1,
		ActivityID:      uintPtr(5),
		Score:           intPtr(80),
		DurationSeconds: intPtr(120),
	})

	require.NoError(t, err)
	assert.Equal(t, models.CompletionCompleted, result.Progress.CompletionStatus)
	// Minutes accumulate across sessions rather than overwrite.
	assert.Equal(t, 6, result.Progress.TotalTimeSpentMinutes)
	repo.ActivityRepo.AssertNotCalled(t, "Create")
}

func TestRecordProgress_IncompleteSkipsBadgesAndNotification(t *testing.T) {
	repo, achievement, publisher, service := newActivityFixture(t)

	repo.ChildRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Child{
		ID: 1, Name: "Mia", ParentID: 10,
	}, nil)
	repo.ActivityRepo.On("GetByID", mock.Anything, uint(5)).
		Return(&models.Activity{ID: 5, ChildID: 1, Name: "Sound Match"}, nil)
	repo.ProgressRepo.On("GetOrCreateByParent", mock.Anything, uint(10)).
		Return(&models.Progress{ID: 20, ParentID: 10}, nil)
	repo.ActivityRepo.On("GetProgress", mock.Anything, uint(5), uint(20)).
		Return(nil, repositories.ErrNotFound)
	repo.ActivityRepo.On("SaveProgress", mock.Anything, mock.Anything).Return(nil)
	repo.ProgressRepo.On("AddScore", mock.Anything, uint(20), 10).Return(nil)

	result, err := service.RecordProgress(context.Background(), &ActivitySubmission{
		ChildID:    1,
		ActivityID: uintPtr(5),
		Completed:  boolPtr(false),
	})

	require.NoError(t, err)
	assert.Equal(t, models.CompletionIncomplete, result.Progress.CompletionStatus)
	assert.Empty(t, result.NewBadges)
	achievement.AssertNotCalled(t, "Evaluate")
	repo.NotificationRepo.AssertNotCalled(t, "Create")
	assert.Empty(t, publisher.Events)
}

func TestRecordProgress_BadActivityReferences(t *testing.T) {
	t.Run("unknown id without a fallback name", func(t *testing.T) {
		repo, _, _, service := newActivityFixture(t)
		repo.ChildRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Child{ID: 1, ParentID: 10}, nil)
		repo.ActivityRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, repositories.ErrNotFound)

		_, err := service.RecordProgress(context.Background(), &ActivitySubmission{
			ChildID:    1,
			ActivityID: uintPtr(99),
		})
		assert.ErrorIs(t, err, ErrActivityNotFound)
	})

	t.Run("neither id nor name", func(t *testing.T) {
		repo, _, _, service := newActivityFixture(t)
		repo.ChildRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Child{ID: 1, ParentID: 10}, nil)

		_, err := service.RecordProgress(context.Background(), &ActivitySubmission{ChildID: 1})
		assert.ErrorIs(t, err, ErrActivityReference)
	})

	t.Run("unknown child", func(t *testing.T) {
		repo, _, _, service := newActivityFixture(t)
		repo.ChildRepo.On("GetByID", mock.Anything, uint(7)).Return(nil, repositories.ErrNotFound)

		_, err := service.RecordProgress(context.Background(), &ActivitySubmission{
			ChildID:      7,
			ActivityName: "letter hunt",
		})
		assert.ErrorIs(t, err, ErrChildNotFound)
	})
}

func TestRecordProgress_PartialBadgeFailureStillSucceeds(t *testing.T) {
	repo, achievement, _, service := newActivityFixture(t)

	repo.ChildRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Child{
		ID: 1, Name: "Mia", ParentID: 10,
	}, nil)
	repo.ActivityRepo.On("GetByID", mock.Anything, uint(5)).
		Return(&models.Activity{ID: 5, ChildID: 1, Name: "Sound Match"}, nil)
	repo.ProgressRepo.On("GetOrCreateByParent", mock.Anything, uint(10)).
		Return(&models.Progress{ID: 20, ParentID: 10}, nil)
	repo.ActivityRepo.On("GetProgress", mock.Anything, uint(5), uint(20)).
		Return(nil, repositories.ErrNotFound)
	repo.ActivityRepo.On("SaveProgress", mock.Anything, mock.Anything).Return(nil)
	repo.ProgressRepo.On("AddScore", mock.Anything, uint(20), 10).Return(nil)
	repo.NotificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	achievement.On("InvalidateAggregate", mock.Anything, uint(1)).Return()
	achievement.On("Evaluate", mock.Anything, uint(1), mock.Anything).
		Return([]models.Achievement{{ChildID: 1, Name: "First Steps"}},
			&PartialFailureError{Failures: []BadgeFailure{{Key: "five_activities"}}})

	result, err := service.RecordProgress(context.Background(), &ActivitySubmission{
		ChildID:    1,
		ActivityID: uintPtr(5),
	})

	require.NoError(t, err)
	require.Len(t, result.NewBadges, 1)
	require.Len(t, result.BadgeFailures, 1)
	assert.Equal(t, "five_activities", result.BadgeFailures[0].Key)
}

func TestRecordProgress_CatalogMismatchSurfaces(t *testing.T) {
	repo, achievement, publisher, service := newActivityFixture(t)

	repo.ChildRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Child{
		ID: 1, Name: "Mia", ParentID: 10,
	}, nil)
	repo.ActivityRepo.On("GetByID", mock.Anything, uint(5)).
		Return(&models.Activity{ID: 5, ChildID: 1, Name: "Sound Match"}, nil)
	repo.ProgressRepo.On("GetOrCreateByParent", mock.Anything, uint(10)).
		Return(&models.Progress{ID: 20, ParentID: 10}, nil)
	repo.ActivityRepo.On("GetProgress", mock.Anything, uint(5), uint(20)).
		Return(nil, repositories.ErrNotFound)
	repo.ActivityRepo.On("SaveProgress", mock.Anything, mock.Anything).Return(nil)
	repo.ProgressRepo.On("AddScore", mock.Anything, uint(20), 10).Return(nil)

	achievement.On("InvalidateAggregate", mock.Anything, uint(1)).Return()
	achievement.On("Evaluate", mock.Anything, uint(1), mock.Anything).
		Return(nil, &ConfigurationError{BadgeKey: "ghost_badge"})

	_, err := service.RecordProgress(context.Background(), &ActivitySubmission{
		ChildID:    1,
		ActivityID: uintPtr(5),
	})

	// The progress row is durable, but a catalog/predicate mismatch is a
	// bug and must fail the request rather than be logged away.
	require.Error(t, err)
	assert.True(t, IsConfiguration(err))
	repo.NotificationRepo.AssertNotCalled(t, "Create")
	assert.Empty(t, publisher.Events)
}

func TestRecordProgress_NotificationMentionsBadges(t *testing.T) {
	repo, achievement, _, service := newActivityFixture(t)

	repo.ChildRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Child{
		ID: 1, Name: "Mia", ParentID: 10,
	}, nil)
	repo.ActivityRepo.On("GetByID", mock.Anything, uint(5)).
		Return(&models.Activity{ID: 5, ChildID: 1, Name: "Sound Match"}, nil)
	repo.ProgressRepo.On("GetOrCreateByParent", mock.Anything, uint(10)).
		Return(&models.Progress{ID: 20, ParentID: 10}, nil)
	repo.ActivityRepo.On("GetProgress", mock.Anything, uint(5), uint(20)).
		Return(nil, repositories.ErrNotFound)
	repo.ActivityRepo.On("SaveProgress", mock.Anything, mock.Anything).Return(nil)
	repo.ProgressRepo.On("AddScore", mock.Anything, uint(20), 10).Return(nil)

	var notification *models.Notification
	repo.NotificationRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Notification")).
		Run(func(args mock.Arguments) {
			notification = args.Get(1).(*models.Notification)
		}).Return(nil)

	achievement.On("InvalidateAggregate", mock.Anything, uint(1)).Return()
	achievement.On("Evaluate", mock.Anything, uint(1), mock.Anything).
		Return([]models.Achievement{{Name: "First Steps"}, {Name: "Speed Demon"}}, nil)

	_, err := service.RecordProgress(context.Background(), &ActivitySubmission{
		ChildID:    1,
		ActivityID: uintPtr(5),
	})

	require.NoError(t, err)
	require.NotNil(t, notification)
	assert.Equal(t, uint(10), notification.ParentID)
	assert.Equal(t, "Mia completed 'Sound Match'! And earned 2 badge(s)!", notification.Message)
}

func TestGetChildProgress(t *testing.T) {
	repo, _, _, service := newActivityFixture(t)

	stored := []*models.ActivityProgress{{ActivityID: 5, ProgressID: 20}}
	repo.ChildRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Child{ID: 1}, nil)
	repo.ActivityRepo.On("GetProgressByChild", mock.Anything, uint(1)).Return(stored, nil)

	got, err := service.GetChildProgress(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, stored, got)
}
