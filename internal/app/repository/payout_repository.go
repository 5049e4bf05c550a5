package repository

import (
	"time"

	"github.com/thekada/kada-backend/internal/app/model"
	"github.com/thekada/kada-backend/pkg/logger"
	"gorm.io/gorm"
)

type PayoutRepository interface {
	Insert(record *model.PayoutRecord) error
	FindByMonthYear(month time.Month, year int) ([]model.PayoutRecord, error)
	FindByFranchiseAndPeriod(franchiseID uint, period string) (*model.PayoutRecord, error)
	ListByFranchise(franchiseID uint) ([]model.PayoutRecord, error)
}

type payoutRepository struct {
	db *gorm.DB
}

func NewPayoutRepository(db *gorm.DB) PayoutRepository {
	return &payoutRepository{db: db}
}

// Insert appends a payout record to the ledger. The unique index on
// (franchise_id, period) makes a duplicate confirmation fail at the store
// boundary instead of double-booking a payout; callers translate that
// constraint violation into a conflict.
func (r *payoutRepository) Insert(record *model.PayoutRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		logger.Error("Failed to insert payout record in database", err, map[string]interface{}{
			"franchise_id": record.FranchiseID,
			"period":       record.Period,
		})
		return err
	}

	logger.Debug("Payout record inserted in database", map[string]interface{}{
		"payout_id":    record.ID,
		"franchise_id": record.FranchiseID,
		"period":       record.Period,
		"amount":       record.Amount,
	})
	return nil
}

// FindByMonthYear returns records whose payout_date falls in the given
// calendar month, newest first. The month boundary is server-local, same
// clock that assigned payout_date.
func (r *payoutRepository) FindByMonthYear(month time.Month, year int) ([]model.PayoutRecord, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)

	var records []model.PayoutRecord
	if err := r.db.Preload("Franchise").
		Where("payout_date >= ? AND payout_date < ?", start, end).
		Order("payout_date DESC").
		Find(&records).Error; err != nil {
		logger.Error("Failed to query payout records in database", err, map[string]interface{}{
			"month": int(month),
			"year":  year,
		})
		return nil, err
	}

	logger.Debug("Payout records queried by month in database", map[string]interface{}{
		"month": int(month),
		"year":  year,
		"count": len(records),
	})
	return records, nil
}

func (r *payoutRepository) FindByFranchiseAndPeriod(franchiseID uint, period string) (*model.PayoutRecord, error) {
	var record model.PayoutRecord
	if err := r.db.Where("franchise_id = ? AND period = ?", franchiseID, period).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *payoutRepository) ListByFranchise(franchiseID uint) ([]model.PayoutRecord, error) {
	var records []model.PayoutRecord
	if err := r.db.Where("franchise_id = ?", franchiseID).
		Order("payout_date DESC").
		Find(&records).Error; err != nil {
		logger.Error("Failed to list payout records in database", err, map[string]interface{}{
			"franchise_id": franchiseID,
		})
		return nil, err
	}
	return records, nil
}
