package model

import (
	"time"

	"gorm.io/gorm"
)

type FranchisePlan string   // subscription tier selected at signup
type FranchiseStatus string // approval workflow state

const (
	PlanFree    FranchisePlan = "free"    // shown as "Starter" in the UI
	PlanBasic   FranchisePlan = "basic"   // shown as "Standard"
	PlanPremium FranchisePlan = "premium"
	PlanElite   FranchisePlan = "elite"

	StatusPendingVerification FranchiseStatus = "pending_verification" // KYC submitted, payment pending
	StatusUnderReview         FranchiseStatus = "under_review"         // admin reviewing documents
	StatusApproved            FranchiseStatus = "approved"             // live, eligible for payouts
	StatusRejected            FranchiseStatus = "rejected"
)

// Franchise is a hyper-local delivery franchise account. One zone gets at
// most one approved franchise. Banking fields are display-only at payout
// time and may be empty: a payout can be processed regardless (accepted
// business gap, the admin screen renders missing fields as "Not Provided").
type Franchise struct {
	ID           uint            `gorm:"primarykey" json:"id"`
	ZoneID       string          `gorm:"uniqueIndex;not null" json:"zone_id"` // delivery zone identifier
	City         string          `gorm:"index;not null" json:"city"`
	Name         string          `gorm:"not null" json:"name"` // display name of the owner/outlet
	Email        string          `gorm:"index" json:"email"`
	Phone        string          `gorm:"type:varchar(30)" json:"phone"`
	PlanSelected FranchisePlan   `gorm:"type:varchar(20);default:'free'" json:"plan_selected"`
	Status       FranchiseStatus `gorm:"type:varchar(30);default:'pending_verification';index" json:"status"`

	// Banking details, all optional
	UPIID         string `json:"upi_id,omitempty"`
	AccountNumber string `gorm:"type:varchar(40)" json:"account_number,omitempty"`
	IFSCCode      string `gorm:"type:varchar(20)" json:"ifsc_code,omitempty"`
	BankName      string `json:"bank_name,omitempty"`

	KYCDocumentURL string     `json:"kyc_document_url,omitempty"` // uploaded KYC document (S3)
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Franchise) TableName() string {
	return "franchises"
}
