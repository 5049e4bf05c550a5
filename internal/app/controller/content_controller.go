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

type ContentController struct {
	contentService service.ContentService
}

func NewContentController(contentService service.ContentService) *ContentController {
	return &ContentController{
		contentService: contentService,
	}
}

type UpsertContentRequest struct {
	Slug      string `json:"slug" binding:"required"`
	Title     string `json:"title" binding:"required"`
	Body      string `json:"body"`
	ImageURL  string `json:"image_url"`
	Published bool   `json:"published"`
}

// GetSection returns a published content section for the marketing site
// GET /api/v1/content/:slug
func (ctrl *ContentController) GetSection(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	slug := c.Param("slug")
	section, err := ctrl.contentService.GetSection(slug, true)
	if err != nil {
		if errors.Is(err, service.ErrContentNotFound) {
			apperrors.NotFound(c, apperrors.ContentNotFound, "Content not found")
			return
		}
		log.Error("Failed to fetch content section", err, map[string]interface{}{
			"slug": slug,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "content")
		return
	}

	c.JSON(http.StatusOK, gin.H{"section": section})
}

// ListSections returns all sections including drafts, for the admin CMS
// GET /api/v1/admin/content
func (ctrl *ContentController) ListSections(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sections, err := ctrl.contentService.ListSections(false)
	if err != nil {
		log.Error("Failed to list content sections", err, nil)
		apperrors.InternalError(c, "Failed to list content")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sections": sections,
		"count":    len(sections),
	})
}

// UpsertSection creates or updates a content section by slug
// PUT /api/v1/admin/content
func (ctrl *ContentController) UpsertSection(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req UpsertContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "slug and title are required")
		return
	}

	section := &model.ContentSection{
		Slug:      req.Slug,
		Title:     req.Title,
		Body:      req.Body,
		ImageURL:  req.ImageURL,
		Published: req.Published,
	}
	if err := ctrl.contentService.UpsertSection(section); err != nil {
		log.Error("Failed to upsert content section", err, map[string]interface{}{
			"slug": req.Slug,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "content")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Content saved",
		"section": section,
	})
}

// DeleteSection removes a content section
// DELETE /api/v1/admin/content/:slug
func (ctrl *ContentController) DeleteSection(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	slug := c.Param("slug")
	if err := ctrl.contentService.DeleteSection(slug); err != nil {
		if errors.Is(err, service.ErrContentNotFound) {
			apperrors.NotFound(c, apperrors.ContentNotFound, "Content not found")
			return
		}
		log.Error("Failed to delete content section", err, map[string]interface{}{
			"slug": slug,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "content")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Content deleted",
		"slug":    slug,
	})
}
