package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thekada/kada-backend/internal/app/model"
	"github.com/thekada/kada-backend/internal/app/service"
	apperrors "github.com/thekada/kada-backend/internal/errors"
	"github.com/thekada/kada-backend/internal/middleware"
)

type FranchiseController struct {
	franchiseService service.FranchiseService
}

func NewFranchiseController(franchiseService service.FranchiseService) *FranchiseController {
	return &FranchiseController{
		franchiseService: franchiseService,
	}
}

type ApplyFranchiseRequest struct {
	ZoneID string              `json:"zone_id" binding:"required"`
	City   string              `json:"city" binding:"required"`
	Name   string              `json:"name" binding:"required"`
	Email  string              `json:"email" binding:"required,email"`
	Phone  string              `json:"phone" binding:"required"`
	Plan   model.FranchisePlan `json:"plan"`
}

type UpdateFranchiseStatusRequest struct {
	Status model.FranchiseStatus `json:"status" binding:"required"`
}

type UpdateBankingRequest struct {
	UPIID         string `json:"upi_id"`
	AccountNumber string `json:"account_number"`
	IFSCCode      string `json:"ifsc_code"`
	BankName      string `json:"bank_name"`
}

type AttachKYCRequest struct {
	DocumentURL string `json:"document_url" binding:"required,url"`
}

// Apply registers a new franchise application
// POST /api/v1/franchises
func (ctrl *FranchiseController) Apply(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ApplyFranchiseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid franchise application", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Application details are incomplete")
		return
	}

	franchise, err := ctrl.franchiseService.Apply(service.FranchiseApplication{
		ZoneID: req.ZoneID,
		City:   req.City,
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Plan:   req.Plan,
	})
	if err != nil {
		if errors.Is(err, service.ErrZoneAlreadyTaken) {
			apperrors.Conflict(c, apperrors.FranchiseZoneTaken, "This zone already has a franchise")
			return
		}
		if errors.Is(err, service.ErrInvalidPlan) {
			apperrors.BadRequest(c, apperrors.FranchiseInvalidPlan, "Unknown plan")
			return
		}
		log.Error("Failed to create franchise application", err, map[string]interface{}{
			"zone_id": req.ZoneID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "franchise")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Application received",
		"franchise": franchise,
	})
}

// List returns franchises, optionally filtered by status
// GET /api/v1/franchises?status=approved
func (ctrl *FranchiseController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	status := model.FranchiseStatus(c.Query("status"))
	franchises, err := ctrl.franchiseService.List(status)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			apperrors.BadRequest(c, apperrors.FranchiseInvalidStatus, "Unknown franchise status")
			return
		}
		log.Error("Failed to list franchises", err, nil)
		apperrors.InternalError(c, "Failed to list franchises")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"franchises": franchises,
		"count":      len(franchises),
	})
}

// GetByID returns a single franchise
// GET /api/v1/franchises/:id
func (ctrl *FranchiseController) GetByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	franchise, err := ctrl.franchiseService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrFranchiseNotFound) {
			apperrors.NotFound(c, apperrors.FranchiseNotFound, "Franchise not found")
			return
		}
		log.Error("Failed to fetch franchise", err, map[string]interface{}{
			"franchise_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "franchise")
		return
	}

	c.JSON(http.StatusOK, gin.H{"franchise": franchise})
}

// UpdateStatus moves an application through the approval workflow
// PATCH /api/v1/franchises/:id/status
func (ctrl *FranchiseController) UpdateStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateFranchiseStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "status is required")
		return
	}

	franchise, err := ctrl.franchiseService.UpdateStatus(id, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrFranchiseNotFound) {
			apperrors.NotFound(c, apperrors.FranchiseNotFound, "Franchise not found")
			return
		}
		if errors.Is(err, service.ErrInvalidStatus) {
			apperrors.BadRequest(c, apperrors.FranchiseInvalidStatus, "Unknown franchise status")
			return
		}
		log.Error("Failed to update franchise status", err, map[string]interface{}{
			"franchise_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "franchise")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Status updated",
		"franchise": franchise,
	})
}

// UpdateBanking stores payout banking details for a franchise
// PUT /api/v1/franchises/:id/banking
func (ctrl *FranchiseController) UpdateBanking(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateBankingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid banking details")
		return
	}

	franchise, err := ctrl.franchiseService.UpdateBanking(id, service.BankingDetails{
		UPIID:         req.UPIID,
		AccountNumber: req.AccountNumber,
		IFSCCode:      req.IFSCCode,
		BankName:      req.BankName,
	})
	if err != nil {
		if errors.Is(err, service.ErrFranchiseNotFound) {
			apperrors.NotFound(c, apperrors.FranchiseNotFound, "Franchise not found")
			return
		}
		log.Error("Failed to update banking details", err, map[string]interface{}{
			"franchise_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "franchise")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Banking details updated",
		"franchise": franchise,
	})
}

// AttachKYC links an uploaded KYC document to the application
// PUT /api/v1/franchises/:id/kyc
func (ctrl *FranchiseController) AttachKYC(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req AttachKYCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "document_url is required")
		return
	}

	franchise, err := ctrl.franchiseService.AttachKYCDocument(id, req.DocumentURL)
	if err != nil {
		if errors.Is(err, service.ErrFranchiseNotFound) {
			apperrors.NotFound(c, apperrors.FranchiseNotFound, "Franchise not found")
			return
		}
		log.Error("Failed to attach KYC document", err, map[string]interface{}{
			"franchise_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "franchise")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "KYC document attached",
		"franchise": franchise,
	})
}

// parseIDParam reads the :id path param. Responds with 400 and returns
// ok=false on bad input.
func parseIDParam(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid ID")
		return 0, false
	}
	return uint(id), true
}
