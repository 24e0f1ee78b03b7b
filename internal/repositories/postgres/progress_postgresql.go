package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/readsprout/learning-service/internal/models"
	"github.com/readsprout/learning-service/internal/repositories"
	"gorm.io/gorm"
)

type ProgressPostgreSQL struct {
	db *gorm.DB
}

func NewProgressPostgreSQL(db *gorm.DB) repositories.ProgressRepository {
	return &ProgressPostgreSQL{db: db}
}

func (p *ProgressPostgreSQL) GetOrCreateByParent(ctx context.Context, parentID uint) (*models.Progress, error) {
	var progress models.Progress
	err := p.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		First(&progress).Error
	if err == nil {
		return &progress, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get progress record: %w", err)
	}

	progress = models.Progress{ParentID: parentID, TotalScore: 0, StreakDays: 1}
	if err := p.db.WithContext(ctx).Create(&progress).Error; err != nil {
		return nil, fmt.Errorf("failed to create progress record: %w", err)
	}
	return &progress, nil
}

func (p *ProgressPostgreSQL) AddScore(ctx context.Context, progressID uint, points int) error {
	err := p.db.WithContext(ctx).
		Model(&models.Progress{}).
		Where("id = ?", progressID).
		Update("total_score", gorm.Expr("total_score + ?", points)).Error
	if err != nil {
		return fmt.Errorf("failed to add score: %w", err)
	}
	return nil
}
