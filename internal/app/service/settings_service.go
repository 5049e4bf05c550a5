package service

import (
	"context"
	"errors"

	"github.com/thekada/kada-backend/internal/app/model"
	"github.com/thekada/kada-backend/internal/app/repository"
	"github.com/thekada/kada-backend/pkg/cache"
	"github.com/thekada/kada-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrSettingNotFound = errors.New("setting not found")

type SettingsService interface {
	GetAll() (map[string]string, error)
	List() ([]model.BusinessSetting, error)
	Upsert(ctx context.Context, key, value string, updatedBy uint) error
	Delete(ctx context.Context, key string) error
}

type settingsService struct {
	settingsRepo  repository.SettingsRepository
	franchiseRepo repository.FranchiseRepository
	cache         cache.Store
}

func NewSettingsService(settingsRepo repository.SettingsRepository, franchiseRepo repository.FranchiseRepository, store cache.Store) SettingsService {
	return &settingsService{
		settingsRepo:  settingsRepo,
		franchiseRepo: franchiseRepo,
		cache:         store,
	}
}

func (s *settingsService) GetAll() (map[string]string, error) {
	return s.settingsRepo.ReadAll()
}

func (s *settingsService) List() ([]model.BusinessSetting, error) {
	return s.settingsRepo.List()
}

// Upsert writes a setting and drops every zone's cached stats so the next
// stats read reflects the new value.
func (s *settingsService) Upsert(ctx context.Context, key, value string, updatedBy uint) error {
	if err := s.settingsRepo.Upsert(key, value, updatedBy); err != nil {
		return err
	}

	logger.Info("Business setting updated", map[string]interface{}{
		"key":        key,
		"updated_by": updatedBy,
	})

	s.invalidateAllStats(ctx)
	return nil
}

func (s *settingsService) Delete(ctx context.Context, key string) error {
	if err := s.settingsRepo.Delete(key); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSettingNotFound
		}
		return err
	}
	s.invalidateAllStats(ctx)
	return nil
}

func (s *settingsService) invalidateAllStats(ctx context.Context) {
	franchises, err := s.franchiseRepo.List(model.StatusApproved)
	if err != nil {
		logger.Warn("Could not list franchises for stats invalidation", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	for _, franchise := range franchises {
		s.cache.Invalidate(ctx, StatsCacheKey(franchise.ZoneID))
	}
}
