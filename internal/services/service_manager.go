package services

import (
	"github.com/readsprout/learning-service/internal/cache"
	"github.com/readsprout/learning-service/internal/events"
	"github.com/readsprout/learning-service/internal/repositories"
	"github.com/readsprout/learning-service/internal/utils"
)

type serviceManager struct {
	assessment  AssessmentService
	activity    ActivityService
	achievement AchievementService
	report      ReportService
}

// NewServiceManager wires the full service layer from its shared
// dependencies. The publisher and cache may be nil; the services treat
// both as optional.
func NewServiceManager(
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger utils.Logger,
	validator *utils.Validator,
) ServiceManager {
	achievement := NewAchievementService(repo, cacheService, publisher, logger)
	return &serviceManager{
		assessment:  NewAssessmentService(repo, achievement, publisher, logger, validator),
		activity:    NewActivityService(repo, achievement, publisher, logger, validator),
		achievement: achievement,
		report:      NewReportService(repo, logger),
	}
}

func (m *serviceManager) Assessment() AssessmentService   { return m.assessment }
func (m *serviceManager) Activity() ActivityService       { return m.activity }
func (m *serviceManager) Achievement() AchievementService { return m.achievement }
func (m *serviceManager) Report() ReportService           { return m.report }
