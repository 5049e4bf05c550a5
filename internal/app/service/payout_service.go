package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/thekada/kada-backend/internal/app/model"
	"github.com/thekada/kada-backend/internal/app/repository"
	apperrors "github.com/thekada/kada-backend/internal/errors"
	"github.com/thekada/kada-backend/pkg/cache"
	"github.com/thekada/kada-backend/pkg/commission"
	"github.com/thekada/kada-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrFranchiseNotFound      = errors.New("franchise not found")
	ErrPayoutAlreadyProcessed = errors.New("payout already processed for this period")
	ErrInvalidPayoutFigures   = errors.New("revenue and orders must not be negative")
)

// BankingDetails are shown on the confirmation screen. Empty fields render
// as "Not Provided" on the admin side; they never block a payout.
type BankingDetails struct {
	UPIID         string `json:"upi_id"`
	AccountNumber string `json:"account_number"`
	IFSCCode      string `json:"ifsc_code"`
	BankName      string `json:"bank_name"`
}

// PayoutPreview carries every figure the admin confirms. Confirmation
// persists these values verbatim — what you see is what gets written.
type PayoutPreview struct {
	FranchiseID     uint                 `json:"franchise_id"`
	FranchiseName   string               `json:"franchise_name"`
	ZoneID          string               `json:"zone_id"`
	Plan            model.FranchisePlan  `json:"plan"`
	Period          string               `json:"period"`
	RevenueReported float64              `json:"revenue_reported"`
	OrdersCount     int                  `json:"orders_count"`
	Breakdown       commission.Breakdown `json:"breakdown"`
	Banking         BankingDetails       `json:"banking"`
}

// ConfirmPayoutInput is the figure set persisted on confirmation. It echoes
// the preview rather than re-deriving anything, so a settings change
// between preview and confirm cannot silently alter the amount paid.
type ConfirmPayoutInput struct {
	FranchiseID         uint
	Period              string // empty means the current ISO week
	Amount              float64
	RevenueReported     float64
	OrdersCount         int
	SharePercentage     int
	PlatformFeePerOrder float64
	TotalFeeDeducted    float64
}

type PayoutService interface {
	ListBatch() ([]model.Franchise, error)
	Preview(franchiseID uint, revenue float64, orders int) (*PayoutPreview, error)
	Confirm(ctx context.Context, input ConfirmPayoutInput) (*model.PayoutRecord, error)
	History(month time.Month, year int) ([]model.PayoutRecord, error)
	FranchiseHistory(franchiseID uint) ([]model.PayoutRecord, error)
}

type payoutService struct {
	franchiseRepo repository.FranchiseRepository
	payoutRepo    repository.PayoutRepository
	settingsRepo  repository.SettingsRepository
	cache         cache.Store
	now           func() time.Time
}

func NewPayoutService(
	franchiseRepo repository.FranchiseRepository,
	payoutRepo repository.PayoutRepository,
	settingsRepo repository.SettingsRepository,
	cacheStore cache.Store,
) PayoutService {
	return &payoutService{
		franchiseRepo: franchiseRepo,
		payoutRepo:    payoutRepo,
		settingsRepo:  settingsRepo,
		cache:         cacheStore,
		now:           time.Now,
	}
}

// ListBatch returns the approved franchises that make up the weekly payout
// batch view.
func (s *payoutService) ListBatch() ([]model.Franchise, error) {
	return s.franchiseRepo.ListWithPlans()
}

// Preview computes the settlement figures for admin-entered revenue and
// order counts. Settings are read fresh on every preview so a pricing
// change takes effect immediately.
func (s *payoutService) Preview(franchiseID uint, revenue float64, orders int) (*PayoutPreview, error) {
	if revenue < 0 || orders < 0 {
		return nil, ErrInvalidPayoutFigures
	}

	franchise, err := s.franchiseRepo.FindByID(franchiseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFranchiseNotFound
		}
		return nil, err
	}

	settings, err := s.settingsRepo.ReadAll()
	if err != nil {
		return nil, err
	}

	breakdown := commission.Compute(commission.Plan(franchise.PlanSelected), settings, revenue, orders)

	logger.Info("Payout preview computed", map[string]interface{}{
		"franchise_id": franchiseID,
		"zone_id":      franchise.ZoneID,
		"plan":         franchise.PlanSelected,
		"revenue":      revenue,
		"orders":       orders,
		"net_payout":   breakdown.NetPayout,
	})

	return &PayoutPreview{
		FranchiseID:     franchise.ID,
		FranchiseName:   franchise.Name,
		ZoneID:          franchise.ZoneID,
		Plan:            franchise.PlanSelected,
		Period:          model.PayoutPeriod(s.now()),
		RevenueReported: revenue,
		OrdersCount:     orders,
		Breakdown:       breakdown,
		Banking: BankingDetails{
			UPIID:         franchise.UPIID,
			AccountNumber: franchise.AccountNumber,
			IFSCCode:      franchise.IFSCCode,
			BankName:      franchise.BankName,
		},
	}, nil
}

// Confirm persists the previewed figures as an immutable PayoutRecord and
// invalidates the zone's cached stats. The (franchise, period) unique
// constraint rejects a second confirmation for the same week.
func (s *payoutService) Confirm(ctx context.Context, input ConfirmPayoutInput) (*model.PayoutRecord, error) {
	franchise, err := s.franchiseRepo.FindByID(input.FranchiseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFranchiseNotFound
		}
		return nil, err
	}

	period := input.Period
	if period == "" {
		period = model.PayoutPeriod(s.now())
	}

	record := &model.PayoutRecord{
		Reference:           uuid.NewString(),
		FranchiseID:         franchise.ID,
		Period:              period,
		Amount:              input.Amount,
		RevenueReported:     input.RevenueReported,
		OrdersCount:         input.OrdersCount,
		SharePercentage:     input.SharePercentage,
		PlatformFeePerOrder: input.PlatformFeePerOrder,
		TotalFeeDeducted:    input.TotalFeeDeducted,
		PayoutDate:          s.now(),
	}

	if err := s.payoutRepo.Insert(record); err != nil {
		if apperrors.IsDuplicateKey(err) {
			fields := map[string]interface{}{
				"franchise_id": franchise.ID,
				"period":       period,
			}
			if existing, lookupErr := s.payoutRepo.FindByFranchiseAndPeriod(franchise.ID, period); lookupErr == nil {
				fields["existing_reference"] = existing.Reference
			}
			logger.Warn("Duplicate payout confirmation rejected", fields)
			return nil, ErrPayoutAlreadyProcessed
		}
		return nil, err
	}

	s.cache.Invalidate(ctx, StatsCacheKey(franchise.ZoneID))

	logger.Info("Payout confirmed", map[string]interface{}{
		"payout_id":    record.ID,
		"reference":    record.Reference,
		"franchise_id": franchise.ID,
		"period":       period,
		"amount":       record.Amount,
	})
	return record, nil
}

// History lists payout records whose payout_date falls in the given month.
func (s *payoutService) History(month time.Month, year int) ([]model.PayoutRecord, error) {
	return s.payoutRepo.FindByMonthYear(month, year)
}

// FranchiseHistory lists a single franchise's payout ledger, newest first.
func (s *payoutService) FranchiseHistory(franchiseID uint) ([]model.PayoutRecord, error) {
	if _, err := s.franchiseRepo.FindByID(franchiseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFranchiseNotFound
		}
		return nil, err
	}
	return s.payoutRepo.ListByFranchise(franchiseID)
}
