package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thekada/kada-backend/internal/app/model"
	"github.com/thekada/kada-backend/internal/app/repository"
	"github.com/thekada/kada-backend/internal/app/service"
	"github.com/thekada/kada-backend/internal/db"
	"github.com/thekada/kada-backend/pkg/cache"
	"gorm.io/gorm"
)

func setupPayoutControllerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	franchiseRepo := repository.NewFranchiseRepository(testDB)
	payoutRepo := repository.NewPayoutRepository(testDB)
	settingsRepo := repository.NewSettingsRepository(testDB)
	payoutService := service.NewPayoutService(franchiseRepo, payoutRepo, settingsRepo, cache.NewMemoryStore())
	reportService := service.NewReportService(payoutRepo)

	ctrl := NewPayoutController(payoutService, reportService)

	router := gin.New()
	router.GET("/payouts/batch", ctrl.ListBatch)
	router.POST("/payouts/preview", ctrl.Preview)
	router.POST("/payouts/process", ctrl.Process)
	router.GET("/payouts/history", ctrl.History)
	router.GET("/payouts/franchise/:id", ctrl.FranchiseHistory)
	router.GET("/payouts/export", ctrl.Export)

	return router, testDB
}

func seedPayoutFranchise(t *testing.T, testDB *gorm.DB, plan model.FranchisePlan) *model.Franchise {
	t.Helper()

	franchise := model.Franchise{
		ZoneID:       "560001",
		City:         "Bengaluru",
		Name:         "MG Road Kada",
		Email:        "owner@example.com",
		PlanSelected: plan,
		Status:       model.StatusApproved,
		UPIID:        "owner@upi",
	}
	require.NoError(t, testDB.Create(&franchise).Error)
	return &franchise
}

func postJSON(router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPayoutController_Preview_Success(t *testing.T) {
	router, testDB := setupPayoutControllerTest(t)
	franchise := seedPayoutFranchise(t, testDB, model.PlanPremium)

	revenue := 10000.0
	orders := 50
	w := postJSON(router, "/payouts/preview", PreviewPayoutRequest{
		FranchiseID:     franchise.ID,
		RevenueReported: &revenue,
		OrdersCount:     &orders,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var preview service.PayoutPreview
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &preview))

	assert.Equal(t, franchise.ID, preview.FranchiseID)
	assert.Equal(t, "560001", preview.ZoneID)
	assert.Equal(t, 70, preview.Breakdown.SharePercent)
	assert.InDelta(t, 7000, preview.Breakdown.NetPayout, 0.001)
	assert.Equal(t, "owner@upi", preview.Banking.UPIID)
}

func TestPayoutController_Preview_ZeroFigures(t *testing.T) {
	router, testDB := setupPayoutControllerTest(t)
	franchise := seedPayoutFranchise(t, testDB, model.PlanFree)

	revenue := 0.0
	orders := 0
	w := postJSON(router, "/payouts/preview", PreviewPayoutRequest{
		FranchiseID:     franchise.ID,
		RevenueReported: &revenue,
		OrdersCount:     &orders,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var preview service.PayoutPreview
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &preview))
	assert.Zero(t, preview.Breakdown.NetPayout)
}

func TestPayoutController_Preview_MissingFields(t *testing.T) {
	router, _ := setupPayoutControllerTest(t)

	w := postJSON(router, "/payouts/preview", map[string]interface{}{
		"franchise_id": 1,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPayoutController_Preview_FranchiseNotFound(t *testing.T) {
	router, _ := setupPayoutControllerTest(t)

	revenue := 5000.0
	orders := 10
	w := postJSON(router, "/payouts/preview", PreviewPayoutRequest{
		FranchiseID:     9999,
		RevenueReported: &revenue,
		OrdersCount:     &orders,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Franchise not found")
}

func TestPayoutController_Preview_NegativeFigures(t *testing.T) {
	router, testDB := setupPayoutControllerTest(t)
	franchise := seedPayoutFranchise(t, testDB, model.PlanPremium)

	revenue := -100.0
	orders := 5
	w := postJSON(router, "/payouts/preview", PreviewPayoutRequest{
		FranchiseID:     franchise.ID,
		RevenueReported: &revenue,
		OrdersCount:     &orders,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "must not be negative")
}

func TestPayoutController_Process_Success(t *testing.T) {
	router, testDB := setupPayoutControllerTest(t)
	franchise := seedPayoutFranchise(t, testDB, model.PlanPremium)

	w := postJSON(router, "/payouts/process", ProcessPayoutRequest{
		FranchiseID:     franchise.ID,
		Period:          "2026-W35",
		Amount:          7000,
		RevenueReported: 10000,
		OrdersCount:     50,
		SharePercentage: 70,
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, "Payout processed successfully", response["message"])

	payout := response["payout"].(map[string]interface{})
	assert.Equal(t, "2026-W35", payout["period"])
	assert.InDelta(t, 7000, payout["amount"].(float64), 0.001)
	assert.NotEmpty(t, payout["reference"])
}

func TestPayoutController_Process_DuplicatePeriod(t *testing.T) {
	router, testDB := setupPayoutControllerTest(t)
	franchise := seedPayoutFranchise(t, testDB, model.PlanElite)

	reqBody := ProcessPayoutRequest{
		FranchiseID:     franchise.ID,
		Period:          "2026-W35",
		Amount:          8000,
		RevenueReported: 10000,
		OrdersCount:     40,
		SharePercentage: 80,
	}

	w := postJSON(router, "/payouts/process", reqBody)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/payouts/process", reqBody)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already been processed")
}

func TestPayoutController_History(t *testing.T) {
	router, testDB := setupPayoutControllerTest(t)
	franchise := seedPayoutFranchise(t, testDB, model.PlanPremium)

	w := postJSON(router, "/payouts/process", ProcessPayoutRequest{
		FranchiseID:     franchise.ID,
		Period:          "2026-W35",
		Amount:          7000,
		RevenueReported: 10000,
		OrdersCount:     50,
		SharePercentage: 70,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	req := httptest.NewRequest("GET", "/payouts/history", nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)

	assert.Equal(t, http.StatusOK, w2.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])
}

func TestPayoutController_FranchiseHistory(t *testing.T) {
	router, testDB := setupPayoutControllerTest(t)
	franchise := seedPayoutFranchise(t, testDB, model.PlanElite)

	for _, period := range []string{"2026-W34", "2026-W35"} {
		w := postJSON(router, "/payouts/process", ProcessPayoutRequest{
			FranchiseID:     franchise.ID,
			Period:          period,
			Amount:          8000,
			RevenueReported: 10000,
			OrdersCount:     40,
			SharePercentage: 80,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	req := httptest.NewRequest("GET", fmt.Sprintf("/payouts/franchise/%d", franchise.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(2), response["count"])
}

func TestPayoutController_FranchiseHistory_NotFound(t *testing.T) {
	router, _ := setupPayoutControllerTest(t)

	req := httptest.NewRequest("GET", "/payouts/franchise/9999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPayoutController_History_InvalidMonth(t *testing.T) {
	router, _ := setupPayoutControllerTest(t)

	req := httptest.NewRequest("GET", "/payouts/history?month=13", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "month must be between 1 and 12")
}

func TestPayoutController_ListBatch(t *testing.T) {
	router, testDB := setupPayoutControllerTest(t)
	seedPayoutFranchise(t, testDB, model.PlanPremium)

	// Pending franchises stay out of the batch
	pending := model.Franchise{
		ZoneID:       "560002",
		City:         "Bengaluru",
		Name:         "Pending Kada",
		PlanSelected: model.PlanFree,
		Status:       model.StatusPendingVerification,
	}
	require.NoError(t, testDB.Create(&pending).Error)

	req := httptest.NewRequest("GET", "/payouts/batch", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])
}

func TestPayoutController_Export(t *testing.T) {
	router, testDB := setupPayoutControllerTest(t)
	franchise := seedPayoutFranchise(t, testDB, model.PlanPremium)

	w := postJSON(router, "/payouts/process", ProcessPayoutRequest{
		FranchiseID:     franchise.ID,
		Period:          "2026-W35",
		Amount:          7000,
		RevenueReported: 10000,
		OrdersCount:     50,
		SharePercentage: 70,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	req := httptest.NewRequest("GET", "/payouts/export", nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)

	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w2.Header().Get("Content-Type"))
	assert.Contains(t, w2.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotEmpty(t, w2.Body.Bytes())
}
