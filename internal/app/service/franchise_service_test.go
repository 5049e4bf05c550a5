package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thekada/kada-backend/internal/app/model"
	"github.com/thekada/kada-backend/internal/app/repository"
	"github.com/thekada/kada-backend/internal/db"
)

func setupFranchiseServiceTest(t *testing.T) FranchiseService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	return NewFranchiseService(repository.NewFranchiseRepository(testDB))
}

func testApplication(zoneID string) FranchiseApplication {
	return FranchiseApplication{
		ZoneID: zoneID,
		City:   "Kochi",
		Name:   "Marine Drive Kada",
		Email:  "marine@thekada.in",
		Phone:  "+919800000010",
		Plan:   model.PlanBasic,
	}
}

func TestFranchiseService_Apply(t *testing.T) {
	franchiseService := setupFranchiseServiceTest(t)

	franchise, err := franchiseService.Apply(testApplication("682001"))
	require.NoError(t, err)
	assert.NotZero(t, franchise.ID)
	assert.Equal(t, model.StatusPendingVerification, franchise.Status)
	assert.Equal(t, model.PlanBasic, franchise.PlanSelected)
	assert.Nil(t, franchise.ApprovedAt)
}

func TestFranchiseService_Apply_ZoneTaken(t *testing.T) {
	franchiseService := setupFranchiseServiceTest(t)

	_, err := franchiseService.Apply(testApplication("682001"))
	require.NoError(t, err)

	second := testApplication("682001")
	second.Email = "other@thekada.in"
	_, err = franchiseService.Apply(second)
	assert.ErrorIs(t, err, ErrZoneAlreadyTaken)
}

func TestFranchiseService_Apply_PlanDefaultsToFree(t *testing.T) {
	franchiseService := setupFranchiseServiceTest(t)

	application := testApplication("682001")
	application.Plan = ""
	franchise, err := franchiseService.Apply(application)
	require.NoError(t, err)
	assert.Equal(t, model.PlanFree, franchise.PlanSelected)
}

func TestFranchiseService_Apply_InvalidPlan(t *testing.T) {
	franchiseService := setupFranchiseServiceTest(t)

	application := testApplication("682001")
	application.Plan = "platinum"
	_, err := franchiseService.Apply(application)
	assert.ErrorIs(t, err, ErrInvalidPlan)
}

func TestFranchiseService_UpdateStatus_ApprovalStampsTime(t *testing.T) {
	franchiseService := setupFranchiseServiceTest(t)

	franchise, err := franchiseService.Apply(testApplication("682001"))
	require.NoError(t, err)

	updated, err := franchiseService.UpdateStatus(franchise.ID, model.StatusUnderReview)
	require.NoError(t, err)
	assert.Equal(t, model.StatusUnderReview, updated.Status)
	assert.Nil(t, updated.ApprovedAt)

	approved, err := franchiseService.UpdateStatus(franchise.ID, model.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedAt)

	firstApproval := *approved.ApprovedAt
	again, err := franchiseService.UpdateStatus(franchise.ID, model.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, firstApproval, *again.ApprovedAt)
}

func TestFranchiseService_UpdateStatus_Invalid(t *testing.T) {
	franchiseService := setupFranchiseServiceTest(t)

	franchise, err := franchiseService.Apply(testApplication("682001"))
	require.NoError(t, err)

	_, err = franchiseService.UpdateStatus(franchise.ID, "frozen")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = franchiseService.UpdateStatus(9999, model.StatusApproved)
	assert.ErrorIs(t, err, ErrFranchiseNotFound)
}

func TestFranchiseService_UpdateBanking(t *testing.T) {
	franchiseService := setupFranchiseServiceTest(t)

	franchise, err := franchiseService.Apply(testApplication("682001"))
	require.NoError(t, err)

	updated, err := franchiseService.UpdateBanking(franchise.ID, BankingDetails{
		UPIID:         "marine@upi",
		AccountNumber: "9876543210",
		IFSCCode:      "SBIN0000456",
		BankName:      "State Bank of India",
	})
	require.NoError(t, err)
	assert.Equal(t, "marine@upi", updated.UPIID)
	assert.Equal(t, "SBIN0000456", updated.IFSCCode)
}

func TestFranchiseService_AttachKYCDocument(t *testing.T) {
	franchiseService := setupFranchiseServiceTest(t)

	franchise, err := franchiseService.Apply(testApplication("682001"))
	require.NoError(t, err)

	updated, err := franchiseService.AttachKYCDocument(franchise.ID, "https://cdn.thekada.in/kyc/682001.pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.thekada.in/kyc/682001.pdf", updated.KYCDocumentURL)
	assert.Equal(t, model.StatusUnderReview, updated.Status)
}

func TestFranchiseService_List_FilterByStatus(t *testing.T) {
	franchiseService := setupFranchiseServiceTest(t)

	first, err := franchiseService.Apply(testApplication("682001"))
	require.NoError(t, err)

	second := testApplication("682002")
	second.Email = "panampilly@thekada.in"
	_, err = franchiseService.Apply(second)
	require.NoError(t, err)

	_, err = franchiseService.UpdateStatus(first.ID, model.StatusApproved)
	require.NoError(t, err)

	approved, err := franchiseService.List(model.StatusApproved)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "682001", approved[0].ZoneID)

	all, err := franchiseService.List("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = franchiseService.List("frozen")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
