package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/readsprout/learning-service/internal/models"
	"github.com/readsprout/learning-service/internal/repositories"
	"gorm.io/gorm"
)

type ChildPostgreSQL struct {
	db *gorm.DB
}

func NewChildPostgreSQL(db *gorm.DB) repositories.ChildRepository {
	return &ChildPostgreSQL{db: db}
}

func (c *ChildPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Child, error) {
	var child models.Child
	err := c.db.WithContext(ctx).First(&child, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	return &child, nil
}
