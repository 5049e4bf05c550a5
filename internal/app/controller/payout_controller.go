package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thekada/kada-backend/internal/app/service"
	apperrors "github.com/thekada/kada-backend/internal/errors"
	"github.com/thekada/kada-backend/internal/middleware"
)

type PayoutController struct {
	payoutService service.PayoutService
	reportService service.ReportService
}

func NewPayoutController(payoutService service.PayoutService, reportService service.ReportService) *PayoutController {
	return &PayoutController{
		payoutService: payoutService,
		reportService: reportService,
	}
}

type PreviewPayoutRequest struct {
	FranchiseID     uint     `json:"franchise_id" binding:"required"`
	RevenueReported *float64 `json:"revenue_reported" binding:"required"`
	OrdersCount     *int     `json:"orders_count" binding:"required"`
}

type ProcessPayoutRequest struct {
	FranchiseID         uint    `json:"franchise_id" binding:"required"`
	Period              string  `json:"period"`
	Amount              float64 `json:"amount"`
	RevenueReported     float64 `json:"revenue_reported"`
	OrdersCount         int     `json:"orders_count"`
	SharePercentage     int     `json:"share_percentage"`
	PlatformFeePerOrder float64 `json:"platform_fee_per_order"`
	TotalFeeDeducted    float64 `json:"total_fee_deducted"`
}

// ListBatch returns the approved franchises for the weekly payout screen
// GET /api/v1/payouts/batch
func (ctrl *PayoutController) ListBatch(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	franchises, err := ctrl.payoutService.ListBatch()
	if err != nil {
		log.Error("Failed to list payout batch", err, nil)
		apperrors.InternalError(c, "Failed to list franchises")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"franchises": franchises,
		"count":      len(franchises),
	})
}

// Preview computes settlement figures for admin-entered revenue
// POST /api/v1/payouts/preview
func (ctrl *PayoutController) Preview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PreviewPayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid payout preview request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "franchise_id, revenue_reported and orders_count are required")
		return
	}

	preview, err := ctrl.payoutService.Preview(req.FranchiseID, *req.RevenueReported, *req.OrdersCount)
	if err != nil {
		if errors.Is(err, service.ErrFranchiseNotFound) {
			apperrors.NotFound(c, apperrors.FranchiseNotFound, "Franchise not found")
			return
		}
		if errors.Is(err, service.ErrInvalidPayoutFigures) {
			apperrors.BadRequest(c, apperrors.PayoutInvalidFigures, "Revenue and order count must not be negative")
			return
		}
		log.Error("Failed to compute payout preview", err, map[string]interface{}{
			"franchise_id": req.FranchiseID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "payout")
		return
	}

	c.JSON(http.StatusOK, preview)
}

// Process confirms a previewed payout and writes the ledger record
// POST /api/v1/payouts/process
func (ctrl *PayoutController) Process(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ProcessPayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid payout process request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "franchise_id is required")
		return
	}

	record, err := ctrl.payoutService.Confirm(c.Request.Context(), service.ConfirmPayoutInput{
		FranchiseID:         req.FranchiseID,
		Period:              req.Period,
		Amount:              req.Amount,
		RevenueReported:     req.RevenueReported,
		OrdersCount:         req.OrdersCount,
		SharePercentage:     req.SharePercentage,
		PlatformFeePerOrder: req.PlatformFeePerOrder,
		TotalFeeDeducted:    req.TotalFeeDeducted,
	})
	if err != nil {
		if errors.Is(err, service.ErrFranchiseNotFound) {
			apperrors.NotFound(c, apperrors.FranchiseNotFound, "Franchise not found")
			return
		}
		if errors.Is(err, service.ErrPayoutAlreadyProcessed) {
			log.Warn("Duplicate payout confirmation", map[string]interface{}{
				"franchise_id": req.FranchiseID,
				"period":       req.Period,
			})
			apperrors.Conflict(c, apperrors.PayoutAlreadyProcessed, "A payout for this franchise and period has already been processed")
			return
		}
		log.Error("Failed to process payout", err, map[string]interface{}{
			"franchise_id": req.FranchiseID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "payout")
		return
	}

	log.Info("Payout processed", map[string]interface{}{
		"payout_id":    record.ID,
		"reference":    record.Reference,
		"franchise_id": record.FranchiseID,
		"period":       record.Period,
		"amount":       record.Amount,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Payout processed successfully",
		"payout":  record,
	})
}

// History lists payout records for a calendar month
// GET /api/v1/payouts/history?month=8&year=2026
func (ctrl *PayoutController) History(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	month, year, ok := parseMonthYear(c)
	if !ok {
		return
	}

	records, err := ctrl.payoutService.History(month, year)
	if err != nil {
		log.Error("Failed to fetch payout history", err, map[string]interface{}{
			"month": int(month),
			"year":  year,
		})
		apperrors.InternalError(c, "Failed to fetch payout history")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payouts": records,
		"count":   len(records),
	})
}

// FranchiseHistory lists one franchise's full payout ledger
// GET /api/v1/payouts/franchise/:id
func (ctrl *PayoutController) FranchiseHistory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	records, err := ctrl.payoutService.FranchiseHistory(id)
	if err != nil {
		if errors.Is(err, service.ErrFranchiseNotFound) {
			apperrors.NotFound(c, apperrors.FranchiseNotFound, "Franchise not found")
			return
		}
		log.Error("Failed to fetch franchise payout history", err, map[string]interface{}{
			"franchise_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch payout history")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payouts": records,
		"count":   len(records),
	})
}

// Export streams the month's payouts as an XLSX workbook
// GET /api/v1/payouts/export?month=8&year=2026
func (ctrl *PayoutController) Export(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	month, year, ok := parseMonthYear(c)
	if !ok {
		return
	}

	buf, filename, err := ctrl.reportService.MonthlyPayoutReport(month, year)
	if err != nil {
		log.Error("Failed to export payout report", err, map[string]interface{}{
			"month": int(month),
			"year":  year,
		})
		apperrors.InternalError(c, "Failed to export payout report")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// parseMonthYear reads month/year query params, defaulting to the current
// month. Responds with 400 and returns ok=false on bad input.
func parseMonthYear(c *gin.Context) (time.Month, int, bool) {
	now := time.Now()
	month := now.Month()
	year := now.Year()

	if m := c.Query("month"); m != "" {
		parsed, err := strconv.Atoi(m)
		if err != nil || parsed < 1 || parsed > 12 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "month must be between 1 and 12")
			return 0, 0, false
		}
		month = time.Month(parsed)
	}
	if y := c.Query("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil || parsed < 2000 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "year is not valid")
			return 0, 0, false
		}
		year = parsed
	}
	return month, year, true
}
