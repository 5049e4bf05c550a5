package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thekada/kada-backend/internal/app/service"
	apperrors "github.com/thekada/kada-backend/internal/errors"
	"github.com/thekada/kada-backend/internal/middleware"
)

type StatsController struct {
	statsService service.StatsService
}

func NewStatsController(statsService service.StatsService) *StatsController {
	return &StatsController{
		statsService: statsService,
	}
}

// GetStats returns the live revenue estimate for a zone
// GET /api/v1/stats?zone_id=<zone>&refresh=true
func (ctrl *StatsController) GetStats(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	zoneID := c.Query("zone_id")
	if zoneID == "" {
		log.Warn("Stats request without zone_id", nil)
		apperrors.BadRequest(c, apperrors.StatsZoneRequired, "zone_id is required")
		return
	}

	refresh := c.Query("refresh") == "true"

	stats, err := ctrl.statsService.GetFranchiseStats(c.Request.Context(), zoneID, refresh)
	if err != nil {
		log.Error("Failed to compute franchise stats", err, map[string]interface{}{
			"zone_id": zoneID,
		})
		apperrors.InternalError(c, "Failed to compute stats")
		return
	}

	log.Info("Franchise stats returned", map[string]interface{}{
		"zone_id": zoneID,
		"cached":  stats.Cached,
		"refresh": refresh,
	})

	c.JSON(http.StatusOK, stats)
}

// InvalidateStats drops a zone's cached stats
// DELETE /api/v1/stats?zone_id=<zone>
func (ctrl *StatsController) InvalidateStats(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	zoneID := c.Query("zone_id")
	if zoneID == "" {
		log.Warn("Stats invalidation without zone_id", nil)
		apperrors.BadRequest(c, apperrors.StatsZoneRequired, "zone_id is required")
		return
	}

	ctrl.statsService.InvalidateStats(c.Request.Context(), zoneID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Stats cache invalidated",
		"zone_id": zoneID,
	})
}
