package repository

import (
	"context"
	"time"

	"quorum/internal/cache"
	"quorum/internal/database"
	"quorum/internal/models"

	"gorm.io/gorm"
)

// StatsRepository computes site-wide aggregate counters.
type StatsRepository interface {
	Compute(ctx context.Context) (*models.Stats, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository returns a new StatsRepository implementation.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Compute(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats

	err := cache.Aside(ctx, cache.StatsKey, &stats, cache.StatsTTL, func() error {
		readDB := database.GetReadDB()
		if readDB == nil {
			readDB = r.db
		}
		db := readDB.WithContext(ctx)

		if err := db.Model(&models.Question{}).Count(&stats.TotalQuestions).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := db.Model(&models.Answer{}).Count(&stats.TotalAnswers).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := db.Model(&models.Like{}).Count(&stats.TotalLikes).Error; err != nil {
			return models.NewInternalError(err)
		}

		// A user counts as active today if they answered since UTC midnight.
		startOfDay := time.Now().UTC().Truncate(24 * time.Hour)
		if err := db.Model(&models.Answer{}).
			Where("created_at >= ?", startOfDay).
			Distinct("user_id").
			Count(&stats.ActiveUsersToday).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &stats, nil
}
