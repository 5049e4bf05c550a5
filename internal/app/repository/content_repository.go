package repository

import (
	"github.com/thekada/kada-backend/internal/app/model"
	"github.com/thekada/kada-backend/pkg/logger"
	"gorm.io/gorm"
)

type ContentRepository interface {
	Create(section *model.ContentSection) error
	FindBySlug(slug string, publishedOnly bool) (*model.ContentSection, error)
	List(publishedOnly bool) ([]model.ContentSection, error)
	Update(section *model.ContentSection) error
	Delete(id uint) error
}

type contentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Create(section *model.ContentSection) error {
	if err := r.db.Create(section).Error; err != nil {
		logger.Error("Failed to create content section in database", err, map[string]interface{}{
			"slug": section.Slug,
		})
		return err
	}
	return nil
}

func (r *contentRepository) FindBySlug(slug string, publishedOnly bool) (*model.ContentSection, error) {
	query := r.db.Where("slug = ?", slug)
	if publishedOnly {
		query = query.Where("published = ?", true)
	}

	var section model.ContentSection
	if err := query.First(&section).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *contentRepository) List(publishedOnly bool) ([]model.ContentSection, error) {
	query := r.db.Order("slug ASC")
	if publishedOnly {
		query = query.Where("published = ?", true)
	}

	var sections []model.ContentSection
	if err := query.Find(&sections).Error; err != nil {
		logger.Error("Failed to list content sections in database", err)
		return nil, err
	}
	return sections, nil
}

func (r *contentRepository) Update(section *model.ContentSection) error {
	if err := r.db.Save(section).Error; err != nil {
		logger.Error("Failed to update content section in database", err, map[string]interface{}{
			"slug": section.Slug,
		})
		return err
	}
	return nil
}

func (r *contentRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.ContentSection{}, id).Error; err != nil {
		logger.Error("Failed to delete content section in database", err, map[string]interface{}{
			"section_id": id,
		})
		return err
	}
	return nil
}
