package service

import (
	"context"

	"quorum/internal/models"
	"quorum/internal/repository"
)

type StatsService struct {
	statsRepo repository.StatsRepository
}

func NewStatsService(statsRepo repository.StatsRepository) *StatsService {
	return &StatsService{statsRepo: statsRepo}
}

// GetStats returns the site-wide aggregate counters.
func (s *StatsService) GetStats(ctx context.Context) (*models.Stats, error) {
	return s.statsRepo.Compute(ctx)
}
