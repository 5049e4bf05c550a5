package service

import (
	"context"
	"errors"
	"time"

	"github.com/thekada/kada-backend/internal/app/model"
	"github.com/thekada/kada-backend/internal/app/repository"
	"github.com/thekada/kada-backend/pkg/cache"
	"github.com/thekada/kada-backend/pkg/commission"
	"github.com/thekada/kada-backend/pkg/logger"
	"gorm.io/gorm"
)

// StatsCacheKey is the cache key for a zone's franchise stats.
func StatsCacheKey(zoneID string) string {
	return "franchise_stats_" + zoneID
}

// StatsBreakdown exposes the figures behind a zone's revenue estimate.
type StatsBreakdown struct {
	TotalAdminCommission float64             `json:"totalAdminCommission"`
	SharePercent         int                 `json:"sharePercent"`
	FranchiseShare       float64             `json:"franchiseShare"`
	PlatformCharges      float64             `json:"platformCharges"`
	DeliveredOrders      int                 `json:"deliveredOrders"`
	Plan                 model.FranchisePlan `json:"plan"`
}

// FranchiseStats is the franchise-facing live revenue estimate for a zone.
type FranchiseStats struct {
	TotalRevenue    float64        `json:"totalRevenue"` // net of share and platform charges
	DeliveredOrders int            `json:"deliveredOrders"`
	ActiveOrders    int            `json:"activeOrders"`
	TodaysPayout    float64        `json:"todaysPayout"`
	TodaysOrders    int            `json:"todaysOrders"`
	Breakdown       StatsBreakdown `json:"breakdown"`
	Cached          bool           `json:"_cached"`
}

type StatsService interface {
	GetFranchiseStats(ctx context.Context, zoneID string, bypassCache bool) (*FranchiseStats, error)
	InvalidateStats(ctx context.Context, zoneID string)
}

type statsService struct {
	franchiseRepo repository.FranchiseRepository
	orderRepo     repository.OrderRepository
	cache         cache.Store
	statsTTL      time.Duration
	now           func() time.Time
}

func NewStatsService(
	franchiseRepo repository.FranchiseRepository,
	orderRepo repository.OrderRepository,
	cacheStore cache.Store,
	statsTTL time.Duration,
) StatsService {
	return &statsService{
		franchiseRepo: franchiseRepo,
		orderRepo:     orderRepo,
		cache:         cacheStore,
		statsTTL:      statsTTL,
		now:           time.Now,
	}
}

// GetFranchiseStats computes the live revenue estimate for a zone using the
// LiveEstimatePolicy commission table. Results are cached per zone; a
// bypassCache read skips the lookup but still refreshes the cache with the
// recomputed value.
func (s *statsService) GetFranchiseStats(ctx context.Context, zoneID string, bypassCache bool) (*FranchiseStats, error) {
	if !bypassCache {
		var cached FranchiseStats
		if s.cache.Get(ctx, StatsCacheKey(zoneID), s.statsTTL, &cached) {
			cached.Cached = true
			logger.Debug("Franchise stats served from cache", map[string]interface{}{
				"zone_id": zoneID,
			})
			return &cached, nil
		}
	}

	stats, err := s.compute(zoneID)
	if err != nil {
		return nil, err
	}

	// Refresh the cache even when this read bypassed it.
	s.cache.Set(ctx, StatsCacheKey(zoneID), stats)

	logger.Info("Franchise stats computed", map[string]interface{}{
		"zone_id":          zoneID,
		"delivered_orders": stats.DeliveredOrders,
		"total_revenue":    stats.TotalRevenue,
	})
	return stats, nil
}

func (s *statsService) compute(zoneID string) (*FranchiseStats, error) {
	plan := model.PlanFree
	franchise, err := s.franchiseRepo.FindByZoneAndStatus(zoneID, model.StatusApproved)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to resolve franchise for stats", err, map[string]interface{}{
			"zone_id": zoneID,
		})
		return nil, err
	}
	if franchise != nil {
		plan = franchise.PlanSelected
	}

	orders, err := s.orderRepo.FindByZone(zoneID)
	if err != nil {
		return nil, err
	}

	today := s.now()
	var (
		delivered        int
		active           int
		totalCommission  float64
		todaysCommission float64
		todaysDelivered  int
	)

	for _, order := range orders {
		switch {
		case order.Status == model.OrderStatusDelivered:
			delivered++
			totalCommission += order.AdminCommission
			if sameDay(order.CreatedAt, today) {
				todaysDelivered++
				todaysCommission += order.AdminCommission
			}
		case !order.Status.Terminal():
			active++
		}
	}

	share := commission.LiveEstimatePolicy{}.ResolveShare(commission.Plan(plan))

	franchiseShare := totalCommission * float64(share) / 100
	platformCharges := float64(delivered) * commission.LivePlatformCharge
	netRevenue := franchiseShare - platformCharges
	if netRevenue < 0 {
		netRevenue = 0
	}

	todaysShare := todaysCommission * float64(share) / 100
	todaysCharges := float64(todaysDelivered) * commission.LivePlatformCharge
	todaysPayout := todaysShare - todaysCharges
	if todaysPayout < 0 {
		todaysPayout = 0
	}

	return &FranchiseStats{
		TotalRevenue:    netRevenue,
		DeliveredOrders: delivered,
		ActiveOrders:    active,
		TodaysPayout:    todaysPayout,
		TodaysOrders:    todaysDelivered,
		Breakdown: StatsBreakdown{
			TotalAdminCommission: totalCommission,
			SharePercent:         share,
			FranchiseShare:       franchiseShare,
			PlatformCharges:      platformCharges,
			DeliveredOrders:      delivered,
			Plan:                 plan,
		},
	}, nil
}

// InvalidateStats drops a zone's cached stats so the next read recomputes.
// Used after admin corrections to order data.
func (s *statsService) InvalidateStats(ctx context.Context, zoneID string) {
	s.cache.Invalidate(ctx, StatsCacheKey(zoneID))
	logger.Info("Franchise stats cache invalidated", map[string]interface{}{
		"zone_id": zoneID,
	})
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
