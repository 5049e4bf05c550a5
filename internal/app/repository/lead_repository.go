package repository

import (
	"github.com/thekada/kada-backend/internal/app/model"
	"github.com/thekada/kada-backend/pkg/logger"
	"gorm.io/gorm"
)

type LeadRepository interface {
	Create(lead *model.Lead) error
	FindByID(id uint) (*model.Lead, error)
	List(status model.LeadStatus) ([]model.Lead, error)
	UpdateStatus(id uint, status model.LeadStatus) error
}

type leadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &leadRepository{db: db}
}

func (r *leadRepository) Create(lead *model.Lead) error {
	if err := r.db.Create(lead).Error; err != nil {
		logger.Error("Failed to create lead in database", err, map[string]interface{}{
			"city": lead.City,
		})
		return err
	}

	logger.Debug("Lead created in database", map[string]interface{}{
		"lead_id": lead.ID,
		"city":    lead.City,
	})
	return nil
}

func (r *leadRepository) FindByID(id uint) (*model.Lead, error) {
	var lead model.Lead
	if err := r.db.First(&lead, id).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepository) List(status model.LeadStatus) ([]model.Lead, error) {
	query := r.db.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var leads []model.Lead
	if err := query.Find(&leads).Error; err != nil {
		logger.Error("Failed to list leads in database", err, map[string]interface{}{
			"status": status,
		})
		return nil, err
	}
	return leads, nil
}

func (r *leadRepository) UpdateStatus(id uint, status model.LeadStatus) error {
	if err := r.db.Model(&model.Lead{}).Where("id = ?", id).
		Update("status", status).Error; err != nil {
		logger.Error("Failed to update lead status in database", err, map[string]interface{}{
			"lead_id": id,
			"status":  status,
		})
		return err
	}
	return nil
}
