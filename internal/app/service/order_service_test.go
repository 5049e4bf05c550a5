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

func setupOrderServiceTest(t *testing.T) (OrderService, StatsService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	store := cache.NewMemoryStore()
	orderRepo := repository.NewOrderRepository(testDB)
	franchiseRepo := repository.NewFranchiseRepository(testDB)
	orderService := NewOrderService(orderRepo, store)
	statsService := NewStatsService(franchiseRepo, orderRepo, store, 5*time.Minute)

	return orderService, statsService, testDB
}

func TestOrderService_Ingest(t *testing.T) {
	orderService, _, _ := setupOrderServiceTest(t)

	order, err := orderService.Ingest(OrderIngest{
		ZoneID:        "560038",
		Amount:        500,
		CustomerPhone: "+91 98000 00000",
	})
	require.NoError(t, err)

	assert.NotZero(t, order.ID)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	// 10% assumed platform commission
	assert.InDelta(t, 50, order.AdminCommission, 0.001)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	orderService, _, _ := setupOrderServiceTest(t)

	order, err := orderService.Ingest(OrderIngest{ZoneID: "560038", Amount: 300})
	require.NoError(t, err)

	updated, err := orderService.UpdateStatus(context.Background(), order.ID, model.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusDelivered, updated.Status)
}

func TestOrderService_UpdateStatus_InvalidStatus(t *testing.T) {
	orderService, _, _ := setupOrderServiceTest(t)

	order, err := orderService.Ingest(OrderIngest{ZoneID: "560038", Amount: 300})
	require.NoError(t, err)

	_, err = orderService.UpdateStatus(context.Background(), order.ID, "teleported")
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}

func TestOrderService_UpdateStatus_NotFound(t *testing.T) {
	orderService, _, _ := setupOrderServiceTest(t)

	_, err := orderService.UpdateStatus(context.Background(), 9999, model.OrderStatusDelivered)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_DeliveryInvalidatesZoneStats(t *testing.T) {
	orderService, statsService, testDB := setupOrderServiceTest(t)
	ctx := context.Background()

	franchise := model.Franchise{
		ZoneID:       "560038",
		City:         "Bengaluru",
		Name:         "Indiranagar Kada",
		PlanSelected: model.PlanPremium,
		Status:       model.StatusApproved,
	}
	require.NoError(t, testDB.Create(&franchise).Error)

	order, err := orderService.Ingest(OrderIngest{ZoneID: "560038", Amount: 500})
	require.NoError(t, err)

	// Warm the cache with the pre-delivery view
	stats, err := statsService.GetFranchiseStats(ctx, "560038", false)
	require.NoError(t, err)
	require.Equal(t, 0, stats.DeliveredOrders)

	_, err = orderService.UpdateStatus(ctx, order.ID, model.OrderStatusDelivered)
	require.NoError(t, err)

	// Cache was invalidated, so the next read sees the delivery
	stats, err = statsService.GetFranchiseStats(ctx, "560038", false)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.DeliveredOrders)
	assert.False(t, stats.Cached)
}

func TestOrderService_ListByZone(t *testing.T) {
	orderService, _, _ := setupOrderServiceTest(t)

	for _, zone := range []string{"560038", "560038", "560001"} {
		_, err := orderService.Ingest(OrderIngest{ZoneID: zone, Amount: 200})
		require.NoError(t, err)
	}

	orders, err := orderService.ListByZone("560038")
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}
