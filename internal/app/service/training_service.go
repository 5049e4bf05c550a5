package service

import (
	"errors"

	"github.com/thekada/kada-backend/internal/app/model"
	"github.com/thekada/kada-backend/internal/app/repository"
	"gorm.io/gorm"
)

var ErrTrainingModuleNotFound = errors.New("training module not found")

type TrainingService interface {
	ListForPlan(plan model.FranchisePlan) ([]model.TrainingModule, error)
	ListAll() ([]model.TrainingModule, error)
	Create(module *model.TrainingModule) error
	Update(id uint, module *model.TrainingModule) (*model.TrainingModule, error)
	Delete(id uint) error
}

type trainingService struct {
	trainingRepo repository.TrainingRepository
}

func NewTrainingService(trainingRepo repository.TrainingRepository) TrainingService {
	return &trainingService{trainingRepo: trainingRepo}
}

// ListForPlan returns published modules the plan is entitled to, in
// curriculum order. Higher plans see everything below their tier.
func (s *trainingService) ListForPlan(plan model.FranchisePlan) ([]model.TrainingModule, error) {
	modules, err := s.trainingRepo.List(true)
	if err != nil {
		return nil, err
	}

	visible := make([]model.TrainingModule, 0, len(modules))
	for _, module := range modules {
		if module.VisibleTo(plan) {
			visible = append(visible, module)
		}
	}
	return visible, nil
}

func (s *trainingService) ListAll() ([]model.TrainingModule, error) {
	return s.trainingRepo.List(false)
}

func (s *trainingService) Create(module *model.TrainingModule) error {
	if module.MinPlan == "" {
		module.MinPlan = model.PlanFree
	}
	return s.trainingRepo.Create(module)
}

func (s *trainingService) Update(id uint, module *model.TrainingModule) (*model.TrainingModule, error) {
	existing, err := s.trainingRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainingModuleNotFound
		}
		return nil, err
	}

	existing.Title = module.Title
	existing.Body = module.Body
	existing.VideoURL = module.VideoURL
	existing.MinPlan = module.MinPlan
	existing.Position = module.Position
	existing.Published = module.Published
	if err := s.trainingRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *trainingService) Delete(id uint) error {
	if _, err := s.trainingRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTrainingModuleNotFound
		}
		return err
	}
	return s.trainingRepo.Delete(id)
}
