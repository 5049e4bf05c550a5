package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusAccepted       OrderStatus = "accepted"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCanceled       OrderStatus = "canceled"
	OrderStatusFailed         OrderStatus = "failed"
	OrderStatusRefunded       OrderStatus = "refunded"
)

// terminalStatuses are the states an order never leaves. Anything outside
// this set counts as an active order in zone stats.
var terminalStatuses = map[OrderStatus]bool{
	OrderStatusDelivered: true,
	OrderStatusCanceled:  true,
	OrderStatusFailed:    true,
	OrderStatusRefunded:  true,
}

func (s OrderStatus) Terminal() bool {
	return terminalStatuses[s]
}

// Order is a delivery order placed inside a franchise zone. Orders are fed
// in by the consumer-side ordering platform; this back office only reads
// them for stats and settlement.
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	ZoneID          string         `gorm:"index;not null" json:"zone_id"`
	Status          OrderStatus    `gorm:"type:varchar(30);default:'pending';index" json:"order_status"`
	Amount          float64        `json:"amount"`                             // order total billed to the customer
	AdminCommission float64        `gorm:"not null" json:"admin_commission"`   // platform commission earned on this order
	CustomerPhone   string         `gorm:"type:varchar(30)" json:"customer_phone,omitempty"`
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Order) TableName() string {
	return "orders"
}
