package postgres

import (
	"context"

	"github.com/readsprout/learning-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func forUpdateLock() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

// Manager wires all postgres repositories behind the Repository facade.
type Manager struct {
	db           *gorm.DB
	child        repositories.ChildRepository
	assessment   repositories.AssessmentRepository
	activity     repositories.ActivityRepository
	achievement  repositories.AchievementRepository
	progress     repositories.ProgressRepository
	notification repositories.NotificationRepository
}

func NewManager(db *gorm.DB) *Manager {
	return &Manager{
		db:           db,
		child:        NewChildPostgreSQL(db),
		assessment:   NewAssessmentPostgreSQL(db),
		activity:     NewActivityPostgreSQL(db),
		achievement:  NewAchievementPostgreSQL(db),
		progress:     NewProgressPostgreSQL(db),
		notification: NewNotificationPostgreSQL(db),
	}
}

func (m *Manager) Child() repositories.ChildRepository               { return m.child }
func (m *Manager) Assessment() repositories.AssessmentRepository     { return m.assessment }
func (m *Manager) Activity() repositories.ActivityRepository         { return m.activity }
func (m *Manager) Achievement() repositories.AchievementRepository   { return m.achievement }
func (m *Manager) Progress() repositories.ProgressRepository         { return m.progress }
func (m *Manager) Notification() repositories.NotificationRepository { return m.notification }

// ChildAggregate builds the read model the achievement engine consumes:
// completed activity counts, the most recent assessment and the badge
// names the child already owns.
func (m *Manager) ChildAggregate(ctx context.Context, childID uint) (*repositories.ChildAggregate, error) {
	return buildChildAggregate(ctx, m.db, childID)
}
