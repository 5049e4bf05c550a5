package repository

import (
	"github.com/thekada/kada-backend/internal/app/model"
	"github.com/thekada/kada-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository interface {
	ReadAll() (map[string]string, error)
	Upsert(key, value string, updatedBy uint) error
	Delete(key string) error
	List() ([]model.BusinessSetting, error)
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// ReadAll returns the settings table as a flat key/value map, the shape the
// commission resolver consumes. Settings are read fresh on every payout
// preview, never cached.
func (r *settingsRepository) ReadAll() (map[string]string, error) {
	var settings []model.BusinessSetting
	if err := r.db.Find(&settings).Error; err != nil {
		logger.Error("Failed to read business settings in database", err)
		return nil, err
	}

	result := make(map[string]string, len(settings))
	for _, s := range settings {
		result[s.Key] = s.Value
	}
	return result, nil
}

func (r *settingsRepository) Upsert(key, value string, updatedBy uint) error {
	setting := model.BusinessSetting{Key: key, Value: value, UpdatedBy: updatedBy}
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_by", "updated_at"}),
	}).Create(&setting).Error; err != nil {
		logger.Error("Failed to upsert business setting in database", err, map[string]interface{}{
			"key": key,
		})
		return err
	}

	logger.Debug("Business setting upserted in database", map[string]interface{}{
		"key":        key,
		"updated_by": updatedBy,
	})
	return nil
}

func (r *settingsRepository) Delete(key string) error {
	result := r.db.Where("key = ?", key).Delete(&model.BusinessSetting{})
	if result.Error != nil {
		logger.Error("Failed to delete business setting in database", result.Error, map[string]interface{}{
			"key": key,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *settingsRepository) List() ([]model.BusinessSetting, error) {
	var settings []model.BusinessSetting
	if err := r.db.Order("key ASC").Find(&settings).Error; err != nil {
		logger.Error("Failed to list business settings in database", err)
		return nil, err
	}
	return settings, nil
}
