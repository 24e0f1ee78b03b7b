package postgres

import (
	"context"
	"fmt"

	"github.com/readsprout/learning-service/internal/models"
	"github.com/readsprout/learning-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementPostgreSQL struct {
	db *gorm.DB
}

func NewAchievementPostgreSQL(db *gorm.DB) repositories.AchievementRepository {
	return &AchievementPostgreSQL{db: db}
}

// Create inserts a badge with ON CONFLICT DO NOTHING on the
// (child_id, name) unique index. A lost race surfaces as
// ErrAlreadyAwarded so the engine can treat it as a no-op instead of
// re-checking ownership first.
func (a *AchievementPostgreSQL) Create(ctx context.Context, achievement *models.Achievement) error {
	result := a.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "child_id"}, {Name: "name"}},
			DoNothing: true,
		}).
		Create(achievement)
	if result.Error != nil {
		return fmt.Errorf("failed to create achievement: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrAlreadyAwarded
	}
	return nil
}

func (a *AchievementPostgreSQL) GetByChild(ctx context.Context, childID uint) ([]*models.Achievement, error) {
	var achievements []*models.Achievement
	err := a.db.WithContext(ctx).
		Where("child_id = ?", childID).
		Order("created_at ASC").
		Find(&achievements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	return achievements, nil
}
