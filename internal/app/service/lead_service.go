package service

import (
	"errors"

	"github.com/thekada/kada-backend/internal/app/model"
	"github.com/thekada/kada-backend/internal/app/repository"
	"github.com/thekada/kada-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrLeadNotFound      = errors.New("lead not found")
	ErrInvalidLeadStatus = errors.New("invalid lead status")
)

var validLeadStatuses = map[model.LeadStatus]bool{
	model.LeadStatusNew:       true,
	model.LeadStatusContacted: true,
	model.LeadStatusConverted: true,
	model.LeadStatusClosed:    true,
}

type LeadService interface {
	Capture(name, email, phone, city, message string) (*model.Lead, error)
	List(status model.LeadStatus) ([]model.Lead, error)
	UpdateStatus(id uint, status model.LeadStatus) (*model.Lead, error)
}

type leadService struct {
	leadRepo repository.LeadRepository
}

func NewLeadService(leadRepo repository.LeadRepository) LeadService {
	return &leadService{leadRepo: leadRepo}
}

func (s *leadService) Capture(name, email, phone, city, message string) (*model.Lead, error) {
	lead := &model.Lead{
		Name:    name,
		Email:   email,
		Phone:   phone,
		City:    city,
		Message: message,
		Status:  model.LeadStatusNew,
	}
	if err := s.leadRepo.Create(lead); err != nil {
		return nil, err
	}

	logger.Info("Lead captured", map[string]interface{}{
		"lead_id": lead.ID,
		"city":    city,
	})
	return lead, nil
}

func (s *leadService) List(status model.LeadStatus) ([]model.Lead, error) {
	if status != "" && !validLeadStatuses[status] {
		return nil, ErrInvalidLeadStatus
	}
	return s.leadRepo.List(status)
}

func (s *leadService) UpdateStatus(id uint, status model.LeadStatus) (*model.Lead, error) {
	if !validLeadStatuses[status] {
		return nil, ErrInvalidLeadStatus
	}

	lead, err := s.leadRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}

	if err := s.leadRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	lead.Status = status
	return lead, nil
}
