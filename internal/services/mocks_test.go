package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/readsprout/learning-service/internal/models"
	"github.com/readsprout/learning-service/internal/repositories"
	"github.com/readsprout/learning-service/internal/utils"
	"github.com/stretchr/testify/mock"
)

// testLogger discards output so tests stay quiet.
func testLogger() utils.Logger {
	return utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type MockChildRepository struct {
	mock.Mock
}

func (m *MockChildRepository) GetByID(ctx context.Context, id uint) (*models.Child, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Child), args.Error(1)
}

type MockAssessmentRepository struct {
	mock.Mock
}

func (m *MockAssessmentRepository) CreateBundle(ctx context.Context, bundle *repositories.AssessmentBundle) error {
	args := m.Called(ctx, bundle)
	return args.Error(0)
}

func (m *MockAssessmentRepository) GetByChild(ctx context.Context, childID uint) ([]*models.Assessment, error) {
	args := m.Called(ctx, childID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Assessment), args.Error(1)
}

func (m *MockAssessmentRepository) GetLatestByChild(ctx context.Context, childID uint) (*models.Assessment, error) {
	args := m.Called(ctx, childID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assessment), args.Error(1)
}

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) GetByID(ctx context.Context, id uint) (*models.Activity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Activity), args.Error(1)
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) GetProgress(ctx context.Context, activityID, progressID uint) (*models.ActivityProgress, error) {
	args := m.Called(ctx, activityID, progressID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ActivityProgress), args.Error(1)
}

func (m *MockActivityRepository) SaveProgress(ctx context.Context, progress *models.ActivityProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *MockActivityRepository) GetProgressByChild(ctx context.Context, childID uint) ([]*models.ActivityProgress, error) {
	args := m.Called(ctx, childID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ActivityProgress), args.Error(1)
}

type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) GetOrCreateByParent(ctx context.Context, parentID uint) (*models.Progress, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Progress), args.Error(1)
}

func (m *MockProgressRepository) AddScore(ctx context.Context, progressID uint, points int) error {
	args := m.Called(ctx, progressID, points)
	return args.Error(0)
}

type MockAchievementRepository struct {
	mock.Mock
}

func (m *MockAchievementRepository) Create(ctx context.Context, achievement *models.Achievement) error {
	args := m.Called(ctx, achievement)
	return args.Error(0)
}

func (m *MockAchievementRepository) GetByChild(ctx context.Context, childID uint) ([]*models.Achievement, error) {
	args := m.Called(ctx, childID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Achievement), args.Error(1)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetByParent(ctx context.Context, parentID uint) ([]*models.Notification, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Notification), args.Error(1)
}

// MockRepository is the facade handed to services under test. The
// aggregate read is mocked on the facade itself; the per-aggregate
// repositories are plain sub-mocks.
type MockRepository struct {
	mock.Mock
	ChildRepo        *MockChildRepository
	AssessmentRepo   *MockAssessmentRepository
	ActivityRepo     *MockActivityRepository
	AchievementRepo  *MockAchievementRepository
	ProgressRepo     *MockProgressRepository
	NotificationRepo *MockNotificationRepository
}

func newMockRepository() *MockRepository {
	return &MockRepository{
		ChildRepo:        new(MockChildRepository),
		AssessmentRepo:   new(MockAssessmentRepository),
		ActivityRepo:     new(MockActivityRepository),
		AchievementRepo:  new(MockAchievementRepository),
		ProgressRepo:     new(MockProgressRepository),
		NotificationRepo: new(MockNotificationRepository),
	}
}

func (m *MockRepository) Child() repositories.ChildRepository             { return m.ChildRepo }
func (m *MockRepository) Assessment() repositories.AssessmentRepository   { return m.AssessmentRepo }
func (m *MockRepository) Activity() repositories.ActivityRepository       { return m.ActivityRepo }
func (m *MockRepository) Achievement() repositories.AchievementRepository { return m.AchievementRepo }
func (m *MockRepository) Progress() repositories.ProgressRepository       { return m.ProgressRepo }
func (m *MockRepository) Notification() repositories.NotificationRepository {
	return m.NotificationRepo
}

func (m *MockRepository) ChildAggregate(ctx context.Context, childID uint) (*repositories.ChildAggregate, error) {
	args := m.Called(ctx, childID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.ChildAggregate), args.Error(1)
}

// MockAchievementService replaces the real engine when a test only cares
// that evaluation was requested.
type MockAchievementService struct {
	mock.Mock
}

func (m *MockAchievementService) Evaluate(ctx context.Context, childID uint, trigger *ActivityTrigger) ([]models.Achievement, error) {
	args := m.Called(ctx, childID, trigger)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Achievement), args.Error(1)
}

func (m *MockAchievementService) GetByChild(ctx context.Context, childID uint) ([]*models.Achievement, error) {
	args := m.Called(ctx, childID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Achievement), args.Error(1)
}

func (m *MockAchievementService) InvalidateAggregate(ctx context.Context, childID uint) {
	m.Called(ctx, childID)
}
