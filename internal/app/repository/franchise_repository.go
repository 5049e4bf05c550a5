package repository

import (
	"github.com/thekada/kada-backend/internal/app/model"
	"github.com/thekada/kada-backend/pkg/logger"
	"gorm.io/gorm"
)

type FranchiseRepository interface {
	Create(franchise *model.Franchise) error
	BulkCreate(franchises []model.Franchise, batchSize int) error
	FindByID(id uint) (*model.Franchise, error)
	FindByZoneAndStatus(zoneID string, status model.FranchiseStatus) (*model.Franchise, error)
	List(status model.FranchiseStatus) ([]model.Franchise, error)
	ListWithPlans() ([]model.Franchise, error)
	Update(franchise *model.Franchise) error
	UpdateStatus(id uint, status model.FranchiseStatus) error
}

type franchiseRepository struct {
	db *gorm.DB
}

func NewFranchiseRepository(db *gorm.DB) FranchiseRepository {
	return &franchiseRepository{db: db}
}

func (r *franchiseRepository) Create(franchise *model.Franchise) error {
	if err := r.db.Create(franchise).Error; err != nil {
		logger.Error("Failed to create franchise in database", err, map[string]interface{}{
			"zone_id": franchise.ZoneID,
		})
		return err
	}

	logger.Debug("Franchise created in database", map[string]interface{}{
		"franchise_id": franchise.ID,
		"zone_id":      franchise.ZoneID,
		"plan":         franchise.PlanSelected,
	})
	return nil
}

// BulkCreate inserts franchises in batches. Used by the roster import tool.
func (r *franchiseRepository) BulkCreate(franchises []model.Franchise, batchSize int) error {
	if err := r.db.CreateInBatches(franchises, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create franchises in database", err, map[string]interface{}{
			"count": len(franchises),
		})
		return err
	}

	logger.Info("Franchises bulk created in database", map[string]interface{}{
		"count": len(franchises),
	})
	return nil
}

func (r *franchiseRepository) FindByID(id uint) (*model.Franchise, error) {
	var franchise model.Franchise
	if err := r.db.First(&franchise, id).Error; err != nil {
		return nil, err
	}
	return &franchise, nil
}

func (r *franchiseRepository) FindByZoneAndStatus(zoneID string, status model.FranchiseStatus) (*model.Franchise, error) {
	var franchise model.Franchise
	if err := r.db.Where("zone_id = ? AND status = ?", zoneID, status).
		First(&franchise).Error; err != nil {
		return nil, err
	}
	return &franchise, nil
}

func (r *franchiseRepository) List(status model.FranchiseStatus) ([]model.Franchise, error) {
	query := r.db.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var franchises []model.Franchise
	if err := query.Find(&franchises).Error; err != nil {
		logger.Error("Failed to list franchises in database", err, map[string]interface{}{
			"status": status,
		})
		return nil, err
	}
	return franchises, nil
}

// ListWithPlans returns the approved franchises for the weekly payout batch
// view, ordered by zone for a stable admin screen.
func (r *franchiseRepository) ListWithPlans() ([]model.Franchise, error) {
	var franchises []model.Franchise
	if err := r.db.Where("status = ?", model.StatusApproved).
		Order("zone_id ASC").
		Find(&franchises).Error; err != nil {
		logger.Error("Failed to list approved franchises in database", err)
		return nil, err
	}

	logger.Debug("Approved franchises listed for payout batch", map[string]interface{}{
		"count": len(franchises),
	})
	return franchises, nil
}

func (r *franchiseRepository) Update(franchise *model.Franchise) error {
	if err := r.db.Save(franchise).Error; err != nil {
		logger.Error("Failed to update franchise in database", err, map[string]interface{}{
			"franchise_id": franchise.ID,
		})
		return err
	}
	return nil
}

func (r *franchiseRepository) UpdateStatus(id uint, status model.FranchiseStatus) error {
	if err := r.db.Model(&model.Franchise{}).Where("id = ?", id).
		Update("status", status).Error; err != nil {
		logger.Error("Failed to update franchise status in database", err, map[string]interface{}{
			"franchise_id": id,
			"status":       status,
		})
		return err
	}

	logger.Debug("Franchise status updated in database", map[string]interface{}{
		"franchise_id": id,
		"status":       status,
	})
	return nil
}
