package repository

import (
	"github.com/thekada/kada-backend/internal/app/model"
	"github.com/thekada/kada-backend/pkg/logger"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(order *model.Order) error
	FindByID(id uint) (*model.Order, error)
	FindByZone(zoneID string) ([]model.Order, error)
	UpdateStatus(id uint, status model.OrderStatus) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *model.Order) error {
	if err := r.db.Create(order).Error; err != nil {
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"zone_id": order.ZoneID,
		})
		return err
	}
	return nil
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	var order model.Order
	if err := r.db.First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByZone returns every order in a zone. The stats aggregator walks the
// full set; callers that need a bounded view filter afterwards.
func (r *orderRepository) FindByZone(zoneID string) ([]model.Order, error) {
	var orders []model.Order
	if err := r.db.Where("zone_id = ?", zoneID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		logger.Error("Failed to find orders by zone in database", err, map[string]interface{}{
			"zone_id": zoneID,
		})
		return nil, err
	}

	logger.Debug("Orders found by zone in database", map[string]interface{}{
		"zone_id": zoneID,
		"count":   len(orders),
	})
	return orders, nil
}

func (r *orderRepository) UpdateStatus(id uint, status model.OrderStatus) error {
	if err := r.db.Model(&model.Order{}).Where("id = ?", id).
		Update("status", status).Error; err != nil {
		logger.Error("Failed to update order status in database", err, map[string]interface{}{
			"order_id": id,
			"status":   status,
		})
		return err
	}
	return nil
}
