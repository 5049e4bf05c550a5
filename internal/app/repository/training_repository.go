package repository

import (
	"github.com/thekada/kada-backend/internal/app/model"
	"github.com/thekada/kada-backend/pkg/logger"
	"gorm.io/gorm"
)

type TrainingRepository interface {
	Create(module *model.TrainingModule) error
	FindByID(id uint) (*model.TrainingModule, error)
	List(publishedOnly bool) ([]model.TrainingModule, error)
	Update(module *model.TrainingModule) error
	Delete(id uint) error
}

type trainingRepository struct {
	db *gorm.DB
}

func NewTrainingRepository(db *gorm.DB) TrainingRepository {
	return &trainingRepository{db: db}
}

func (r *trainingRepository) Create(module *model.TrainingModule) error {
	if err := r.db.Create(module).Error; err != nil {
		logger.Error("Failed to create training module in database", err, map[string]interface{}{
			"title": module.Title,
		})
		return err
	}
	return nil
}

func (r *trainingRepository) FindByID(id uint) (*model.TrainingModule, error) {
	var module model.TrainingModule
	if err := r.db.First(&module, id).Error; err != nil {
		return nil, err
	}
	return &module, nil
}

func (r *trainingRepository) List(publishedOnly bool) ([]model.TrainingModule, error) {
	query := r.db.Order("position ASC, id ASC")
	if publishedOnly {
		query = query.Where("published = ?", true)
	}

	var modules []model.TrainingModule
	if err := query.Find(&modules).Error; err != nil {
		logger.Error("Failed to list training modules in database", err)
		return nil, err
	}
	return modules, nil
}

func (r *trainingRepository) Update(module *model.TrainingModule) error {
	if err := r.db.Save(module).Error; err != nil {
		logger.Error("Failed to update training module in database", err, map[string]interface{}{
			"module_id": module.ID,
		})
		return err
	}
	return nil
}

func (r *trainingRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.TrainingModule{}, id).Error; err != nil {
		logger.Error("Failed to delete training module in database", err, map[string]interface{}{
			"module_id": id,
		})
		return err
	}
	return nil
}
