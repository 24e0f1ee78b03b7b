package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/readsprout/learning-service/internal/models"
	"github.com/readsprout/learning-service/internal/repositories"
	"gorm.io/gorm"
)

type ActivityPostgreSQL struct {
	db *gorm.DB
}

func NewActivityPostgreSQL(db *gorm.DB) repositories.ActivityRepository {
	return &ActivityPostgreSQL{db: db}
}

func (a *ActivityPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Activity, error) {
	var activity models.Activity
	err := a.db.WithContext(ctx).First(&activity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return &activity, nil
}

func (a *ActivityPostgreSQL) Create(ctx context.Context, activity *models.Activity) error {
	if err := a.db.WithContext(ctx).Create(activity).Error; err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

func (a *ActivityPostgreSQL) GetProgress(ctx context.Context, activityID, progressID uint) (*models.ActivityProgress, error) {
	var progress models.ActivityProgress
	err := a.db.WithContext(ctx).
		Where("activity_id = ? AND progress_id = ?", activityID, progressID).
		First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get activity progress: %w", err)
	}
	return &progress, nil
}

func (a *ActivityPostgreSQL) SaveProgress(ctx context.Context, progress *models.ActivityProgress) error {
	if err := a.db.WithContext(ctx).Save(progress).Error; err != nil {
		return fmt.Errorf("failed to save activity progress: %w", err)
	}
	return nil
}

func (a *ActivityPostgreSQL) GetProgressByChild(ctx context.Context, childID uint) ([]*models.ActivityProgress, error) {
	var records []*models.ActivityProgress
	err := a.db.WithContext(ctx).
		Joins("JOIN activities ON activities.id = activity_progress.activity_id").
		Where("activities.child_id = ?", childID).
		Preload("Activity").
		Order("activity_progress.updated_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list child progress: %w", err)
	}
	return records, nil
}
