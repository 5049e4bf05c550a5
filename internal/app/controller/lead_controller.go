package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thekada/kada-backend/internal/app/model"
	"github.com/thekada/kada-backend/internal/app/service"
	apperrors "github.com/thekada/kada-backend/internal/errors"
	"github.com/thekada/kada-backend/internal/middleware"
)

type LeadController struct {
	leadService service.LeadService
}

func NewLeadController(leadService service.LeadService) *LeadController {
	return &LeadController{
		leadService: leadService,
	}
}

type CaptureLeadRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email"`
	City    string `json:"city"`
	Message string `json:"message"`
}

type UpdateLeadStatusRequest struct {
	Status model.LeadStatus `json:"status" binding:"required"`
}

// Capture records an interest form submission from the marketing site
// POST /api/v1/leads
func (ctrl *LeadController) Capture(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CaptureLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid lead capture request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Name and phone are required")
		return
	}

	lead, err := ctrl.leadService.Capture(req.Name, req.Email, req.Phone, req.City, req.Message)
	if err != nil {
		log.Error("Failed to capture lead", err, map[string]interface{}{
			"city": req.City,
		})
		apperrors.InternalError(c, "Failed to record your interest")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Thanks, we will be in touch",
		"lead":    lead,
	})
}

// List returns leads for the admin pipeline view
// GET /api/v1/leads?status=new
func (ctrl *LeadController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	status := model.LeadStatus(c.Query("status"))
	leads, err := ctrl.leadService.List(status)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLeadStatus) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Unknown lead status")
			return
		}
		log.Error("Failed to list leads", err, nil)
		apperrors.InternalError(c, "Failed to list leads")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leads": leads,
		"count": len(leads),
	})
}

// UpdateStatus moves a lead through the sales pipeline
// PATCH /api/v1/leads/:id/status
func (ctrl *LeadController) UpdateStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "status is required")
		return
	}

	lead, err := ctrl.leadService.UpdateStatus(id, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Lead not found")
			return
		}
		if errors.Is(err, service.ErrInvalidLeadStatus) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Unknown lead status")
			return
		}
		log.Error("Failed to update lead status", err, map[string]interface{}{
			"lead_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "lead")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Lead updated",
		"lead":    lead,
	})
}
