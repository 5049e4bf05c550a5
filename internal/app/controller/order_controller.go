package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thekada/kada-backend/internal/app/model"
	"github.com/thekada/kada-backend/internal/app/service"
	apperrors "github.com/thekada/kada-backend/internal/errors"
	"github.com/thekada/kada-backend/internal/middleware"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type IngestOrderRequest struct {
	ZoneID        string   `json:"zone_id" binding:"required"`
	Amount        *float64 `json:"amount" binding:"required"`
	CustomerPhone string   `json:"customer_phone"`
}

type UpdateOrderStatusRequest struct {
	Status model.OrderStatus `json:"status" binding:"required"`
}

// Ingest records an order event from the ordering platform
// POST /api/v1/orders
func (ctrl *OrderController) Ingest(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req IngestOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid order ingest request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "zone_id and amount are required")
		return
	}

	order, err := ctrl.orderService.Ingest(service.OrderIngest{
		ZoneID:        req.ZoneID,
		Amount:        *req.Amount,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		log.Error("Failed to ingest order", err, map[string]interface{}{
			"zone_id": req.ZoneID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "order")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order recorded",
		"order":   order,
	})
}

// UpdateStatus moves an order through its lifecycle
// PATCH /api/v1/orders/:id/status
func (ctrl *OrderController) UpdateStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "status is required")
		return
	}

	order, err := ctrl.orderService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		if errors.Is(err, service.ErrInvalidOrderStatus) {
			apperrors.BadRequest(c, apperrors.OrderInvalidStatus, "Unknown order status")
			return
		}
		log.Error("Failed to update order status", err, map[string]interface{}{
			"order_id": id,
			"status":   req.Status,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated",
		"order":   order,
	})
}

// ListByZone returns a zone's orders for the admin screen
// GET /api/v1/orders?zone_id=<zone>
func (ctrl *OrderController) ListByZone(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	zoneID := c.Query("zone_id")
	if zoneID == "" {
		apperrors.BadRequest(c, apperrors.OrderZoneRequired, "zone_id is required")
		return
	}

	orders, err := ctrl.orderService.ListByZone(zoneID)
	if err != nil {
		log.Error("Failed to list orders", err, map[string]interface{}{
			"zone_id": zoneID,
		})
		apperrors.InternalError(c, "Failed to list orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}
