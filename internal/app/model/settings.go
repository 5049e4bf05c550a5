package model

import (
	"time"
)

// BusinessSetting is one admin-configurable key/value override. The payout
// core only ever reads these; writes come from the settings admin screen.
// Values are stored raw — the commission resolver is responsible for
// tolerating values that do not parse.
type BusinessSetting struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Key       string    `gorm:"uniqueIndex;not null;column:key" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedBy uint      `json:"updated_by,omitempty"` // admin user id of last writer
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (BusinessSetting) TableName() string {
	return "business_settings"
}
