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

type TrainingController struct {
	trainingService  service.TrainingService
	franchiseService service.FranchiseService
	authService      service.AuthService
}

func NewTrainingController(
	trainingService service.TrainingService,
	franchiseService service.FranchiseService,
	authService service.AuthService,
) *TrainingController {
	return &TrainingController{
		trainingService:  trainingService,
		franchiseService: franchiseService,
		authService:      authService,
	}
}

type TrainingModuleRequest struct {
	Title     string              `json:"title" binding:"required"`
	Body      string              `json:"body"`
	VideoURL  string              `json:"video_url"`
	MinPlan   model.FranchisePlan `json:"min_plan"`
	Position  int                 `json:"position"`
	Published bool                `json:"published"`
}

// ListMine returns the modules the logged-in franchise owner's plan unlocks
// GET /api/v1/training
func (ctrl *TrainingController) ListMine(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	// Admins and owners without a linked franchise see everything.
	plan := model.PlanElite
	user, err := ctrl.authService.GetUserByID(userID)
	if err == nil && user.Role == model.RoleFranchise && user.Franchise != nil {
		plan = user.Franchise.PlanSelected
	}

	modules, err := ctrl.trainingService.ListForPlan(plan)
	if err != nil {
		log.Error("Failed to list training modules", err, map[string]interface{}{
			"user_id": userID,
			"plan":    plan,
		})
		apperrors.InternalError(c, "Failed to list training modules")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"modules": modules,
		"plan":    plan,
		"count":   len(modules),
	})
}

// ListAll returns every module including drafts, for the admin curriculum
// GET /api/v1/admin/training
func (ctrl *TrainingController) ListAll(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	modules, err := ctrl.trainingService.ListAll()
	if err != nil {
		log.Error("Failed to list training modules", err, nil)
		apperrors.InternalError(c, "Failed to list training modules")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"modules": modules,
		"count":   len(modules),
	})
}

// Create adds a training module
// POST /api/v1/admin/training
func (ctrl *TrainingController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req TrainingModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "title is required")
		return
	}

	module := &model.TrainingModule{
		Title:     req.Title,
		Body:      req.Body,
		VideoURL:  req.VideoURL,
		MinPlan:   req.MinPlan,
		Position:  req.Position,
		Published: req.Published,
	}
	if err := ctrl.trainingService.Create(module); err != nil {
		log.Error("Failed to create training module", err, map[string]interface{}{
			"title": req.Title,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "training")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Training module created",
		"module":  module,
	})
}

// Update replaces a training module's content
// PUT /api/v1/admin/training/:id
func (ctrl *TrainingController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req TrainingModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "title is required")
		return
	}

	module, err := ctrl.trainingService.Update(id, &model.TrainingModule{
		Title:     req.Title,
		Body:      req.Body,
		VideoURL:  req.VideoURL,
		MinPlan:   req.MinPlan,
		Position:  req.Position,
		Published: req.Published,
	})
	if err != nil {
		if errors.Is(err, service.ErrTrainingModuleNotFound) {
			apperrors.NotFound(c, apperrors.TrainingNotFound, "Training module not found")
			return
		}
		log.Error("Failed to update training module", err, map[string]interface{}{
			"module_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "training")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Training module updated",
		"module":  module,
	})
}

// Delete removes a training module
// DELETE /api/v1/admin/training/:id
func (ctrl *TrainingController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.trainingService.Delete(id); err != nil {
		if errors.Is(err, service.ErrTrainingModuleNotFound) {
			apperrors.NotFound(c, apperrors.TrainingNotFound, "Training module not found")
			return
		}
		log.Error("Failed to delete training module", err, map[string]interface{}{
			"module_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "training")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Training module deleted",
	})
}
