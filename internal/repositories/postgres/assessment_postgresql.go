package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/readsprout/learning-service/internal/models"
	"github.com/readsprout/learning-service/internal/repositories"
	"gorm.io/gorm"
)

type AssessmentPostgreSQL struct {
	db *gorm.DB
}

func NewAssessmentPostgreSQL(db *gorm.DB) repositories.AssessmentRepository {
	return &AssessmentPostgreSQL{db: db}
}

// CreateBundle persists assessment, question rows, plan, activities and
// the child's new level in one transaction. Per-child write ordering is
// enforced here with a row lock on the child.
func (a *AssessmentPostgreSQL) CreateBundle(ctx context.Context, bundle *repositories.AssessmentBundle) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialize concurrent submissions for the same child.
		var child models.Child
		err := tx.Clauses(forUpdateLock()).First(&child, bundle.Assessment.ChildID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repositories.ErrNotFound
			}
			return fmt.Errorf("failed to lock child row: %w", err)
		}

		if err := tx.Create(bundle.Assessment).Error; err != nil {
			return fmt.Errorf("failed to create assessment: %w", err)
		}

		for i := range bundle.Questions {
			bundle.Questions[i].AssessmentID = bundle.Assessment.ID
		}
		if len(bundle.Questions) > 0 {
			if err := tx.Create(&bundle.Questions).Error; err != nil {
				return fmt.Errorf("failed to create assessment questions: %w", err)
			}
		}

		bundle.Plan.AssessmentID = bundle.Assessment.ID
		if err := tx.Create(bundle.Plan).Error; err != nil {
			return fmt.Errorf("failed to create learning plan: %w", err)
		}

		for i := range bundle.Activities {
			bundle.Activities[i].PlanID = &bundle.Plan.ID
		}
		if len(bundle.Activities) > 0 {
			if err := tx.Create(&bundle.Activities).Error; err != nil {
				return fmt.Errorf("failed to create plan activities: %w", err)
			}
		}

		err = tx.Model(&models.Child{}).
			Where("id = ?", bundle.Assessment.ChildID).
			Update("current_level", bundle.ChildTier).Error
		if err != nil {
			return fmt.Errorf("failed to update child level: %w", err)
		}

		return nil
	})
}

func (a *AssessmentPostgreSQL) GetByChild(ctx context.Context, childID uint) ([]*models.Assessment, error) {
	var assessments []*models.Assessment
	err := a.db.WithContext(ctx).
		Where("child_id = ?", childID).
		Order("created_at ASC").
		Find(&assessments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	return assessments, nil
}

func (a *AssessmentPostgreSQL) GetLatestByChild(ctx context.Context, childID uint) (*models.Assessment, error) {
	var assessment models.Assessment
	err := a.db.WithContext(ctx).
		Preload("Questions").
		Preload("Plan").
		Where("child_id = ?", childID).
		Order("created_at DESC").
		First(&assessment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest assessment: %w", err)
	}
	return &assessment, nil
}
