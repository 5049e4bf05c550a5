package model

import (
	"time"

	"gorm.io/gorm"
)

// TrainingModule is an onboarding/training unit shown to franchise owners.
// MinPlan gates visibility: a module tagged premium is hidden from free and
// basic franchises.
type TrainingModule struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Title     string         `gorm:"not null" json:"title"`
	Body      string         `gorm:"type:text" json:"body"`
	VideoURL  string         `json:"video_url,omitempty"`
	MinPlan   FranchisePlan  `gorm:"type:varchar(20);default:'free'" json:"min_plan"`
	Position  int            `gorm:"default:0;index" json:"position"` // display order
	Published bool           `gorm:"default:false;index" json:"published"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (TrainingModule) TableName() string {
	return "training_modules"
}

// planRank orders plans for MinPlan gating.
var planRank = map[FranchisePlan]int{
	PlanFree:    0,
	PlanBasic:   1,
	PlanPremium: 2,
	PlanElite:   3,
}

// VisibleTo reports whether a franchise on the given plan can see this
// module.
func (m *TrainingModule) VisibleTo(plan FranchisePlan) bool {
	return planRank[plan] >= planRank[m.MinPlan]
}
