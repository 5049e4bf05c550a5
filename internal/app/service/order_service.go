package service

import (
	"context"
	"errors"

	"github.com/thekada/kada-backend/internal/app/model"
	"github.com/thekada/kada-backend/internal/app/repository"
	"github.com/thekada/kada-backend/pkg/cache"
	"github.com/thekada/kada-backend/pkg/commission"
	"github.com/thekada/kada-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

var validOrderStatuses = map[model.OrderStatus]bool{
	model.OrderStatusPending:        true,
	model.OrderStatusAccepted:       true,
	model.OrderStatusPreparing:      true,
	model.OrderStatusOutForDelivery: true,
	model.OrderStatusDelivered:      true,
	model.OrderStatusCanceled:       true,
	model.OrderStatusFailed:         true,
	model.OrderStatusRefunded:       true,
}

// OrderIngest is one order event from the consumer-side ordering platform.
type OrderIngest struct {
	ZoneID        string
	Amount        float64
	CustomerPhone string
}

// OrderService receives order events from the ordering platform. This back
// office never takes orders itself; it records them for zone stats and
// settlement.
type OrderService interface {
	Ingest(input OrderIngest) (*model.Order, error)
	UpdateStatus(ctx context.Context, id uint, status model.OrderStatus) (*model.Order, error)
	ListByZone(zoneID string) ([]model.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	cache     cache.Store
}

func NewOrderService(orderRepo repository.OrderRepository, cacheStore cache.Store) OrderService {
	return &orderService{orderRepo: orderRepo, cache: cacheStore}
}

// Ingest records a new order. The platform commission is derived from the
// order amount at the fixed assumed rate; the order starts out pending.
func (s *orderService) Ingest(input OrderIngest) (*model.Order, error) {
	order := &model.Order{
		ZoneID:          input.ZoneID,
		Status:          model.OrderStatusPending,
		Amount:          input.Amount,
		AdminCommission: input.Amount * commission.LiveAdminCommissionRate,
		CustomerPhone:   input.CustomerPhone,
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	logger.Info("Order ingested", map[string]interface{}{
		"order_id": order.ID,
		"zone_id":  order.ZoneID,
		"amount":   order.Amount,
	})
	return order, nil
}

// UpdateStatus moves an order through its lifecycle. A transition into a
// terminal state changes the zone's delivered/active figures, so the zone's
// cached stats are invalidated.
func (s *orderService) UpdateStatus(ctx context.Context, id uint, status model.OrderStatus) (*model.Order, error) {
	if !validOrderStatuses[status] {
		return nil, ErrInvalidOrderStatus
	}

	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	order.Status = status

	if status.Terminal() {
		s.cache.Invalidate(ctx, StatsCacheKey(order.ZoneID))
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id": id,
		"zone_id":  order.ZoneID,
		"status":   status,
	})
	return order, nil
}

func (s *orderService) ListByZone(zoneID string) ([]model.Order, error) {
	return s.orderRepo.FindByZone(zoneID)
}
