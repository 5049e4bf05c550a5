package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thekada/kada-backend/internal/app/service"
	apperrors "github.com/thekada/kada-backend/internal/errors"
	"github.com/thekada/kada-backend/internal/middleware"
)

type SettingsController struct {
	settingsService service.SettingsService
}

func NewSettingsController(settingsService service.SettingsService) *SettingsController {
	return &SettingsController{
		settingsService: settingsService,
	}
}

type UpsertSettingRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// List returns all business settings
// GET /api/v1/settings
func (ctrl *SettingsController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	settings, err := ctrl.settingsService.List()
	if err != nil {
		log.Error("Failed to list settings", err, nil)
		apperrors.InternalError(c, "Failed to list settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"settings": settings,
		"count":    len(settings),
	})
}

// Upsert writes a setting value
// PUT /api/v1/settings
func (ctrl *SettingsController) Upsert(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req UpsertSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "key and value are required")
		return
	}

	userID, _ := middleware.GetUserID(c)

	if err := ctrl.settingsService.Upsert(c.Request.Context(), req.Key, req.Value, userID); err != nil {
		log.Error("Failed to upsert setting", err, map[string]interface{}{
			"key": req.Key,
		})
		apperrors.InternalError(c, "Failed to save setting")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Setting saved",
		"key":     req.Key,
	})
}

// Delete removes a setting, reverting callers to built-in defaults
// DELETE /api/v1/settings/:key
func (ctrl *SettingsController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	key := c.Param("key")
	if err := ctrl.settingsService.Delete(c.Request.Context(), key); err != nil {
		if errors.Is(err, service.ErrSettingNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Setting not found")
			return
		}
		log.Error("Failed to delete setting", err, map[string]interface{}{
			"key": key,
		})
		apperrors.InternalError(c, "Failed to delete setting")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Setting deleted",
		"key":     key,
	})
}
