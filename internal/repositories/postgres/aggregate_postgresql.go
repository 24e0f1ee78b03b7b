package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/readsprout/learning-service/internal/models"
	"github.com/readsprout/learning-service/internal/repositories"
	"gorm.io/gorm"
)

type completedTypeCount struct {
	ActivityType models.ActivityType
	Count        int
}

func buildChildAggregate(ctx context.Context, db *gorm.DB, childID uint) (*repositories.ChildAggregate, error) {
	agg := &repositories.ChildAggregate{
		ChildID:         childID,
		CompletedByType: make(map[models.ActivityType]int),
	}

	var counts []completedTypeCount
	err := db.WithContext(ctx).
		Model(&models.ActivityProgress{}).
		Select("activities.activity_type AS activity_type, COUNT(*) AS count").
		Joins("JOIN activities ON activities.id = activity_progress.activity_id").
		Where("activities.child_id = ? AND activity_progress.completion_status = ?",
			childID, models.CompletionCompleted).
		Group("activities.activity_type").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count completed activities: %w", err)
	}
	for _, c := range counts {
		agg.CompletedByType[c.ActivityType] = c.Count
		agg.TotalCompleted += c.Count
	}

	var latest models.Assessment
	err = db.WithContext(ctx).
		Where("child_id = ?", childID).
		Order("created_at DESC").
		First(&latest).Error
	switch {
	case err == nil:
		agg.LatestAssessment = &latest
	case errors.Is(err, gorm.ErrRecordNotFound):
		// no assessment yet
	default:
		return nil, fmt.Errorf("failed to get latest assessment: %w", err)
	}

	err = db.WithContext(ctx).
		Model(&models.Achievement{}).
		Where("child_id = ?", childID).
		Order("id ASC").
		Pluck("name", &agg.OwnedBadgeNames).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list owned badges: %w", err)
	}

	return agg, nil
}
