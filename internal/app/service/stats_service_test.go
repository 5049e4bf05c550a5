package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thekada/kada-backend/internal/app/model"
	"github.com/thekada/kada-backend/internal/app/repository"
	"github.com/thekada/kada-backend/internal/db"
	"github.com/thekada/kada-backend/pkg/cache"
	"gorm.io/gorm"
)

func setupStatsServiceTest(t *testing.T) (StatsService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	statsService := NewStatsService(
		repository.NewFranchiseRepository(testDB),
		repository.NewOrderRepository(testDB),
		cache.NewMemoryStore(),
		5*time.Minute,
	)
	return statsService, testDB
}

func seedApprovedFranchise(t *testing.T, testDB *gorm.DB, zoneID string, plan model.FranchisePlan) *model.Franchise {
	t.Helper()
	franchise := &model.Franchise{
		ZoneID:       zoneID,
		City:         "Bengaluru",
		Name:         "Zone " + zoneID + " Kada",
		Email:        zoneID + "@thekada.in",
		Phone:        "+9198000" + zoneID,
		PlanSelected: plan,
		Status:       model.StatusApproved,
	}
	require.NoError(t, testDB.Create(franchise).Error)
	return franchise
}

func TestStatsService_GetFranchiseStats_PremiumZone(t *testing.T) {
	statsService, testDB := setupStatsServiceTest(t)
	seedApprovedFranchise(t, testDB, "560001", model.PlanPremium)

	yesterday := time.Now().AddDate(0, 0, -1)
	orders := []model.Order{
		{ZoneID: "560001", Status: model.OrderStatusDelivered, Amount: 500, AdminCommission: 100, CreatedAt: yesterday},
		{ZoneID: "560001", Status: model.OrderStatusDelivered, Amount: 700, AdminCommission: 100, CreatedAt: yesterday},
		{ZoneID: "560001", Status: model.OrderStatusPending, Amount: 300, AdminCommission: 60, CreatedAt: yesterday},
		{ZoneID: "560001", Status: model.OrderStatusCanceled, Amount: 200, AdminCommission: 40, CreatedAt: yesterday},
		{ZoneID: "999999", Status: model.OrderStatusDelivered, Amount: 900, AdminCommission: 500, CreatedAt: yesterday},
	}
	for i := range orders {
		require.NoError(t, testDB.Create(&orders[i]).Error)
	}

	stats, err := statsService.GetFranchiseStats(context.Background(), "560001", false)
	require.NoError(t, err)

	// Premium live share is 50%: 200 * 50% - 2 * 7 = 86.
	assert.Equal(t, 2, stats.DeliveredOrders)
	assert.Equal(t, 1, stats.ActiveOrders)
	assert.Equal(t, float64(86), stats.TotalRevenue)
	assert.Equal(t, float64(200), stats.Breakdown.TotalAdminCommission)
	assert.Equal(t, 50, stats.Breakdown.SharePercent)
	assert.Equal(t, float64(100), stats.Breakdown.FranchiseShare)
	assert.Equal(t, float64(14), stats.Breakdown.PlatformCharges)
	assert.Equal(t, model.PlanPremium, stats.Breakdown.Plan)
	assert.False(t, stats.Cached)
}

func TestStatsService_GetFranchiseStats_TodayAccumulators(t *testing.T) {
	statsService, testDB := setupStatsServiceTest(t)
	seedApprovedFranchise(t, testDB, "560001", model.PlanElite)

	now := time.Now()
	orders := []model.Order{
		{ZoneID: "560001", Status: model.OrderStatusDelivered, AdminCommission: 100, CreatedAt: now},
		{ZoneID: "560001", Status: model.OrderStatusDelivered, AdminCommission: 100, CreatedAt: now.AddDate(0, 0, -3)},
	}
	for i := range orders {
		require.NoError(t, testDB.Create(&orders[i]).Error)
	}

	stats, err := statsService.GetFranchiseStats(context.Background(), "560001", false)
	require.NoError(t, err)

	// Elite live share is 70%. Today: 100 * 70% - 1 * 7 = 63.
	assert.Equal(t, 2, stats.DeliveredOrders)
	assert.Equal(t, 1, stats.TodaysOrders)
	assert.Equal(t, float64(63), stats.TodaysPayout)
	assert.Equal(t, float64(126), stats.TotalRevenue)
}

func TestStatsService_GetFranchiseStats_NoFranchiseDefaultsToFree(t *testing.T) {
	statsService, testDB := setupStatsServiceTest(t)

	require.NoError(t, testDB.Create(&model.Order{
		ZoneID: "682001", Status: model.OrderStatusDelivered, AdminCommission: 100,
		CreatedAt: time.Now().AddDate(0, 0, -1),
	}).Error)

	stats, err := statsService.GetFranchiseStats(context.Background(), "682001", false)
	require.NoError(t, err)

	// Free live share is 30%: 100 * 30% - 7 = 23.
	assert.Equal(t, 30, stats.Breakdown.SharePercent)
	assert.Equal(t, float64(23), stats.TotalRevenue)
	assert.Equal(t, model.PlanFree, stats.Breakdown.Plan)
}

func TestStatsService_GetFranchiseStats_EmptyZone(t *testing.T) {
	statsService, _ := setupStatsServiceTest(t)

	stats, err := statsService.GetFranchiseStats(context.Background(), "000000", false)
	require.NoError(t, err)
	assert.Equal(t, float64(0), stats.TotalRevenue)
	assert.Equal(t, 0, stats.DeliveredOrders)
	assert.Equal(t, 0, stats.ActiveOrders)
	assert.Equal(t, float64(0), stats.TodaysPayout)
}

func TestStatsService_GetFranchiseStats_RevenueClampsToZero(t *testing.T) {
	statsService, testDB := setupStatsServiceTest(t)
	seedApprovedFranchise(t, testDB, "560001", model.PlanFree)

	// 10 * 30% = 3 share, 7 platform charge, net would be negative.
	require.NoError(t, testDB.Create(&model.Order{
		ZoneID: "560001", Status: model.OrderStatusDelivered, AdminCommission: 10,
		CreatedAt: time.Now().AddDate(0, 0, -1),
	}).Error)

	stats, err := statsService.GetFranchiseStats(context.Background(), "560001", false)
	require.NoError(t, err)
	assert.Equal(t, float64(0), stats.TotalRevenue)
}

func TestStatsService_GetFranchiseStats_SecondReadServedFromCache(t *testing.T) {
	statsService, testDB := setupStatsServiceTest(t)
	seedApprovedFranchise(t, testDB, "560001", model.PlanPremium)

	ctx := context.Background()
	first, err := statsService.GetFranchiseStats(ctx, "560001", false)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	// New orders are invisible until the cache expires or is invalidated.
	require.NoError(t, testDB.Create(&model.Order{
		ZoneID: "560001", Status: model.OrderStatusDelivered, AdminCommission: 100,
	}).Error)

	second, err := statsService.GetFranchiseStats(ctx, "560001", false)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.TotalRevenue, second.TotalRevenue)
	assert.Equal(t, first.DeliveredOrders, second.DeliveredOrders)
}

func TestStatsService_GetFranchiseStats_BypassRecomputesAndRefreshes(t *testing.T) {
	statsService, testDB := setupStatsServiceTest(t)
	seedApprovedFranchise(t, testDB, "560001", model.PlanPremium)

	ctx := context.Background()
	_, err := statsService.GetFranchiseStats(ctx, "560001", false)
	require.NoError(t, err)

	require.NoError(t, testDB.Create(&model.Order{
		ZoneID: "560001", Status: model.OrderStatusDelivered, AdminCommission: 100,
		CreatedAt: time.Now().AddDate(0, 0, -1),
	}).Error)

	fresh, err := statsService.GetFranchiseStats(ctx, "560001", true)
	require.NoError(t, err)
	assert.False(t, fresh.Cached)
	assert.Equal(t, 1, fresh.DeliveredOrders)

	// The bypass read refreshed the cache for the next caller.
	cached, err := statsService.GetFranchiseStats(ctx, "560001", false)
	require.NoError(t, err)
	assert.True(t, cached.Cached)
	assert.Equal(t, fresh.DeliveredOrders, cached.DeliveredOrders)
}

func TestStatsService_InvalidateStats(t *testing.T) {
	statsService, testDB := setupStatsServiceTest(t)
	seedApprovedFranchise(t, testDB, "560001", model.PlanPremium)

	ctx := context.Background()
	_, err := statsService.GetFranchiseStats(ctx, "560001", false)
	require.NoError(t, err)

	statsService.InvalidateStats(ctx, "560001")

	stats, err := statsService.GetFranchiseStats(ctx, "560001", false)
	require.NoError(t, err)
	assert.False(t, stats.Cached)
}
