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

func setupPayoutServiceTest(t *testing.T) (PayoutService, *gorm.DB, *model.Franchise) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	franchiseRepo := repository.NewFranchiseRepository(testDB)
	payoutRepo := repository.NewPayoutRepository(testDB)
	settingsRepo := repository.NewSettingsRepository(testDB)
	payoutService := NewPayoutService(franchiseRepo, payoutRepo, settingsRepo, cache.NewMemoryStore())

	approvedAt := time.Now()
	franchise := &model.Franchise{
		ZoneID:        "560001",
		City:          "Bengaluru",
		Name:          "MG Road Kada",
		Email:         "mgr@thekada.in",
		Phone:         "+919800000001",
		PlanSelected:  model.PlanPremium,
		Status:        model.StatusApproved,
		ApprovedAt:    &approvedAt,
		UPIID:         "mgr@upi",
		AccountNumber: "1234567890",
		IFSCCode:      "HDFC0000001",
		BankName:      "HDFC Bank",
	}
	testDB.Create(franchise)

	return payoutService, testDB, franchise
}

func TestPayoutService_Preview_PremiumDefaults(t *testing.T) {
	payoutService, _, franchise := setupPayoutServiceTest(t)

	preview, err := payoutService.Preview(franchise.ID, 10000, 50)
	require.NoError(t, err)

	assert.Equal(t, franchise.ID, preview.FranchiseID)
	assert.Equal(t, "560001", preview.ZoneID)
	assert.Equal(t, model.PlanPremium, preview.Plan)
	assert.Equal(t, 70, preview.Breakdown.SharePercent)
	assert.Equal(t, float64(7000), preview.Breakdown.GrossShare)
	assert.Equal(t, float64(0), preview.Breakdown.FeePerOrder)
	assert.Equal(t, float64(7000), preview.Breakdown.NetPayout)
	assert.Equal(t, "mgr@upi", preview.Banking.UPIID)
	assert.NotEmpty(t, preview.Period)
}

func TestPayoutService_Preview_SettingsOverrides(t *testing.T) {
	payoutService, testDB, franchise := setupPayoutServiceTest(t)

	settingsRepo := repository.NewSettingsRepository(testDB)
	require.NoError(t, settingsRepo.Upsert("pricing_premium_share", "85", 1))
	require.NoError(t, settingsRepo.Upsert("payout_platform_charge", "7", 1))

	preview, err := payoutService.Preview(franchise.ID, 10000, 50)
	require.NoError(t, err)

	// 10000 * 85% - 50 * 7 = 8150
	assert.Equal(t, 85, preview.Breakdown.SharePercent)
	assert.Equal(t, float64(7), preview.Breakdown.FeePerOrder)
	assert.Equal(t, float64(350), preview.Breakdown.TotalFeeDeducted)
	assert.Equal(t, float64(8150), preview.Breakdown.NetPayout)
}

func TestPayoutService_Preview_UnparsableOverrideFallsBack(t *testing.T) {
	payoutService, testDB, franchise := setupPayoutServiceTest(t)

	settingsRepo := repository.NewSettingsRepository(testDB)
	require.NoError(t, settingsRepo.Upsert("pricing_premium_share", "eighty", 1))

	preview, err := payoutService.Preview(franchise.ID, 10000, 10)
	require.NoError(t, err)
	assert.Equal(t, 70, preview.Breakdown.SharePercent)
}

func TestPayoutService_Preview_FeesClampToZero(t *testing.T) {
	payoutService, testDB, franchise := setupPayoutServiceTest(t)

	settingsRepo := repository.NewSettingsRepository(testDB)
	require.NoError(t, settingsRepo.Upsert("payout_platform_charge", "100", 1))

	// 100 * 70% = 70 gross, 50 * 100 = 5000 fees
	preview, err := payoutService.Preview(franchise.ID, 100, 50)
	require.NoError(t, err)
	assert.Equal(t, float64(0), preview.Breakdown.NetPayout)
	assert.Equal(t, float64(5000), preview.Breakdown.TotalFeeDeducted)
}

func TestPayoutService_Preview_NegativeFigures(t *testing.T) {
	payoutService, _, franchise := setupPayoutServiceTest(t)

	_, err := payoutService.Preview(franchise.ID, -1, 10)
	assert.ErrorIs(t, err, ErrInvalidPayoutFigures)

	_, err = payoutService.Preview(franchise.ID, 100, -1)
	assert.ErrorIs(t, err, ErrInvalidPayoutFigures)
}

func TestPayoutService_Preview_FranchiseNotFound(t *testing.T) {
	payoutService, _, _ := setupPayoutServiceTest(t)

	_, err := payoutService.Preview(9999, 100, 1)
	assert.ErrorIs(t, err, ErrFranchiseNotFound)
}

func TestPayoutService_Confirm_PersistsPreviewedFigures(t *testing.T) {
	payoutService, testDB, franchise := setupPayoutServiceTest(t)

	record, err := payoutService.Confirm(context.Background(), ConfirmPayoutInput{
		FranchiseID:         franchise.ID,
		Period:              "2026-W35",
		Amount:              6650,
		RevenueReported:     10000,
		OrdersCount:         50,
		SharePercentage:     70,
		PlatformFeePerOrder: 7,
		TotalFeeDeducted:    350,
	})
	require.NoError(t, err)
	assert.NotZero(t, record.ID)
	assert.NotEmpty(t, record.Reference)
	assert.Equal(t, "2026-W35", record.Period)
	assert.Equal(t, float64(6650), record.Amount)
	assert.False(t, record.PayoutDate.IsZero())

	var stored model.PayoutRecord
	require.NoError(t, testDB.First(&stored, record.ID).Error)
	assert.Equal(t, float64(10000), stored.RevenueReported)
	assert.Equal(t, 50, stored.OrdersCount)
	assert.Equal(t, 70, stored.SharePercentage)
}

func TestPayoutService_Confirm_DuplicatePeriodRejected(t *testing.T) {
	payoutService, _, franchise := setupPayoutServiceTest(t)

	input := ConfirmPayoutInput{
		FranchiseID: franchise.ID,
		Period:      "2026-W35",
		Amount:      6650,
	}

	_, err := payoutService.Confirm(context.Background(), input)
	require.NoError(t, err)

	_, err = payoutService.Confirm(context.Background(), input)
	assert.ErrorIs(t, err, ErrPayoutAlreadyProcessed)

	// A different week settles fine.
	input.Period = "2026-W36"
	_, err = payoutService.Confirm(context.Background(), input)
	assert.NoError(t, err)
}

func TestPayoutService_Confirm_DefaultsToCurrentWeek(t *testing.T) {
	payoutService, _, franchise := setupPayoutServiceTest(t)

	record, err := payoutService.Confirm(context.Background(), ConfirmPayoutInput{
		FranchiseID: franchise.ID,
		Amount:      100,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PayoutPeriod(time.Now()), record.Period)
}

func TestPayoutService_Confirm_InvalidatesZoneStats(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	store := cache.NewMemoryStore()
	franchiseRepo := repository.NewFranchiseRepository(testDB)
	payoutService := NewPayoutService(
		franchiseRepo,
		repository.NewPayoutRepository(testDB),
		repository.NewSettingsRepository(testDB),
		store,
	)

	franchise := &model.Franchise{
		ZoneID: "110001", City: "Delhi", Name: "CP Kada",
		Email: "cp@thekada.in", Phone: "+919800000002",
		PlanSelected: model.PlanElite, Status: model.StatusApproved,
	}
	testDB.Create(franchise)

	ctx := context.Background()
	store.Set(ctx, StatsCacheKey("110001"), &FranchiseStats{TotalRevenue: 42})

	_, err = payoutService.Confirm(ctx, ConfirmPayoutInput{FranchiseID: franchise.ID, Amount: 1})
	require.NoError(t, err)

	var cached FranchiseStats
	assert.False(t, store.Get(ctx, StatsCacheKey("110001"), time.Hour, &cached))
}

func TestPayoutService_History(t *testing.T) {
	payoutService, _, franchise := setupPayoutServiceTest(t)

	_, err := payoutService.Confirm(context.Background(), ConfirmPayoutInput{
		FranchiseID: franchise.ID,
		Period:      "2026-W30",
		Amount:      500,
	})
	require.NoError(t, err)

	now := time.Now()
	records, err := payoutService.History(now.Month(), now.Year())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2026-W30", records[0].Period)
	assert.Equal(t, "MG Road Kada", records[0].Franchise.Name)

	// A month with no settlements is empty, not an error.
	empty, err := payoutService.History(now.AddDate(0, -2, 0).Month(), now.AddDate(0, -2, 0).Year())
	require.NoError(t, err)
	assert.Len(t, empty, 0)
}

func TestPayoutService_ListBatch_OnlyApproved(t *testing.T) {
	payoutService, testDB, _ := setupPayoutServiceTest(t)

	testDB.Create(&model.Franchise{
		ZoneID: "400001", City: "Mumbai", Name: "Fort Kada",
		Email: "fort@thekada.in", Phone: "+919800000003",
		PlanSelected: model.PlanBasic, Status: model.StatusPendingVerification,
	})

	batch, err := payoutService.ListBatch()
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, "560001", batch[0].ZoneID)
}
