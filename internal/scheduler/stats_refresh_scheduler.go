package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/thekada/kada-backend/internal/app/model"
	"github.com/thekada/kada-backend/internal/app/service"
	"github.com/thekada/kada-backend/pkg/logger"
)

// StatsRefreshScheduler periodically recomputes dashboard stats for every
// approved franchise so the cache stays warm and admin-side setting changes
// show up without waiting for a dashboard hit.
type StatsRefreshScheduler struct {
	cron             *cron.Cron
	statsService     service.StatsService
	franchiseService service.FranchiseService
}

func NewStatsRefreshScheduler(statsService service.StatsService, franchiseService service.FranchiseService) *StatsRefreshScheduler {
	return &StatsRefreshScheduler{
		cron:             cron.New(),
		statsService:     statsService,
		franchiseService: franchiseService,
	}
}

// Start registers the refresh job. Runs every 10 minutes.
func (s *StatsRefreshScheduler) Start() error {
	_, err := s.cron.AddFunc("*/10 * * * *", func() {
		s.RefreshAll(context.Background())
	})

	if err != nil {
		logger.Error("Failed to add cron job for stats refresh", err)
		return err
	}

	s.cron.Start()
	logger.Info("Stats refresh scheduler started (every 10 minutes)", nil)

	return nil
}

// RefreshAll recomputes stats for all approved franchises, bypassing the
// cache so fresh figures replace whatever is stored.
func (s *StatsRefreshScheduler) RefreshAll(ctx context.Context) {
	franchises, err := s.franchiseService.List(model.StatusApproved)
	if err != nil {
		logger.Error("Failed to list franchises for stats refresh", err)
		return
	}

	refreshed := 0
	for _, franchise := range franchises {
		if _, err := s.statsService.GetFranchiseStats(ctx, franchise.ZoneID, true); err != nil {
			logger.Error("Failed to refresh stats for zone", err, map[string]interface{}{
				"zone_id": franchise.ZoneID,
			})
			continue
		}
		refreshed++
	}

	logger.Info("Scheduled stats refresh completed", map[string]interface{}{
		"refreshed": refreshed,
		"total":     len(franchises),
	})
}

func (s *StatsRefreshScheduler) Stop() {
	logger.Info("Stopping stats refresh scheduler...", nil)
	s.cron.Stop()
	logger.Info("Stats refresh scheduler stopped", nil)
}
