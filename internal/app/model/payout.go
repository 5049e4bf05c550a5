package model

import (
	"fmt"
	"time"
)

// PayoutRecord is an immutable ledger entry created when an admin confirms
// a weekly payout. It stores exactly the figures shown in the confirmation
// preview; nothing is recomputed at persist time. Records are append-only:
// there is no update path and no soft delete.
//
// The (franchise_id, period) pair is unique so two concurrent confirmations
// for the same franchise and week cannot double-book a payout.
type PayoutRecord struct {
	ID                  uint      `gorm:"primarykey" json:"id"`
	Reference           string    `gorm:"type:varchar(40);uniqueIndex" json:"reference"` // external payout reference (uuid)
	FranchiseID         uint      `gorm:"not null;index;uniqueIndex:idx_franchise_period" json:"franchise_id"`
	Period              string    `gorm:"type:varchar(12);not null;uniqueIndex:idx_franchise_period" json:"period"` // ISO week, e.g. "2026-W35"
	Amount              float64   `gorm:"not null" json:"amount"` // net payout, ₹
	RevenueReported     float64   `gorm:"not null" json:"revenue_reported"`
	OrdersCount         int       `gorm:"not null" json:"orders_count"`
	SharePercentage     int       `gorm:"not null" json:"share_percentage"`
	PlatformFeePerOrder float64   `gorm:"not null" json:"platform_fee_per_order"`
	TotalFeeDeducted    float64   `gorm:"not null" json:"total_fee_deducted"`
	PayoutDate          time.Time `gorm:"index;not null" json:"payout_date"` // server-assigned at confirmation

	Franchise Franchise `gorm:"foreignKey:FranchiseID" json:"franchise,omitempty"`
}

func (PayoutRecord) TableName() string {
	return "payout_records"
}

// PayoutPeriod formats t as the ISO-week period key used for idempotency.
func PayoutPeriod(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
