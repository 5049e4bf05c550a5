package service

import (
	"errors"
	"time"

	"github.com/thekada/kada-backend/internal/app/model"
	"github.com/thekada/kada-backend/internal/app/repository"
	apperrors "github.com/thekada/kada-backend/internal/errors"
	"github.com/thekada/kada-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrZoneAlreadyTaken = errors.New("zone already has a franchise")
	ErrInvalidPlan      = errors.New("invalid plan selection")
	ErrInvalidStatus    = errors.New("invalid franchise status")
)

var validPlans = map[model.FranchisePlan]bool{
	model.PlanFree:    true,
	model.PlanBasic:   true,
	model.PlanPremium: true,
	model.PlanElite:   true,
}

var validStatuses = map[model.FranchiseStatus]bool{
	model.StatusPendingVerification: true,
	model.StatusUnderReview:         true,
	model.StatusApproved:            true,
	model.StatusRejected:            true,
}

// FranchiseApplication is the intake payload from the signup funnel.
type FranchiseApplication struct {
	ZoneID string
	City   string
	Name   string
	Email  string
	Phone  string
	Plan   model.FranchisePlan
}

type FranchiseService interface {
	Apply(application FranchiseApplication) (*model.Franchise, error)
	GetByID(id uint) (*model.Franchise, error)
	List(status model.FranchiseStatus) ([]model.Franchise, error)
	UpdateStatus(id uint, status model.FranchiseStatus) (*model.Franchise, error)
	UpdateBanking(id uint, banking BankingDetails) (*model.Franchise, error)
	AttachKYCDocument(id uint, documentURL string) (*model.Franchise, error)
}

type franchiseService struct {
	franchiseRepo repository.FranchiseRepository
}

func NewFranchiseService(franchiseRepo repository.FranchiseRepository) FranchiseService {
	return &franchiseService{franchiseRepo: franchiseRepo}
}

// Apply registers a new franchise application for a zone. One zone holds at
// most one franchise account; a second application for the same zone is
// rejected outright rather than queued.
func (s *franchiseService) Apply(application FranchiseApplication) (*model.Franchise, error) {
	plan := application.Plan
	if plan == "" {
		plan = model.PlanFree
	}
	if !validPlans[plan] {
		return nil, ErrInvalidPlan
	}

	franchise := &model.Franchise{
		ZoneID:       application.ZoneID,
		City:         application.City,
		Name:         application.Name,
		Email:        application.Email,
		Phone:        application.Phone,
		PlanSelected: plan,
		Status:       model.StatusPendingVerification,
	}

	if err := s.franchiseRepo.Create(franchise); err != nil {
		if apperrors.IsDuplicateKey(err) {
			logger.Warn("Franchise application rejected: zone taken", map[string]interface{}{
				"zone_id": application.ZoneID,
			})
			return nil, ErrZoneAlreadyTaken
		}
		return nil, err
	}

	logger.Info("Franchise application received", map[string]interface{}{
		"franchise_id": franchise.ID,
		"zone_id":      franchise.ZoneID,
		"city":         franchise.City,
		"plan":         plan,
	})
	return franchise, nil
}

func (s *franchiseService) GetByID(id uint) (*model.Franchise, error) {
	franchise, err := s.franchiseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFranchiseNotFound
		}
		return nil, err
	}
	return franchise, nil
}

func (s *franchiseService) List(status model.FranchiseStatus) ([]model.Franchise, error) {
	if status != "" && !validStatuses[status] {
		return nil, ErrInvalidStatus
	}
	return s.franchiseRepo.List(status)
}

// UpdateStatus moves an application through the approval workflow. Approval
// stamps ApprovedAt; the payout core only ever settles approved accounts.
func (s *franchiseService) UpdateStatus(id uint, status model.FranchiseStatus) (*model.Franchise, error) {
	if !validStatuses[status] {
		return nil, ErrInvalidStatus
	}

	franchise, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	franchise.Status = status
	if status == model.StatusApproved && franchise.ApprovedAt == nil {
		// First approval stamps the timestamp, so the full row is saved.
		now := time.Now()
		franchise.ApprovedAt = &now
		if err := s.franchiseRepo.Update(franchise); err != nil {
			return nil, err
		}
	} else {
		if err := s.franchiseRepo.UpdateStatus(id, status); err != nil {
			return nil, err
		}
	}

	logger.Info("Franchise status updated", map[string]interface{}{
		"franchise_id": id,
		"status":       status,
	})
	return franchise, nil
}

func (s *franchiseService) UpdateBanking(id uint, banking BankingDetails) (*model.Franchise, error) {
	franchise, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	// Banking fields are stored as given; correctness is not validated
	// here, they are display-only at payout time.
	franchise.UPIID = banking.UPIID
	franchise.AccountNumber = banking.AccountNumber
	franchise.IFSCCode = banking.IFSCCode
	franchise.BankName = banking.BankName

	if err := s.franchiseRepo.Update(franchise); err != nil {
		return nil, err
	}
	return franchise, nil
}

func (s *franchiseService) AttachKYCDocument(id uint, documentURL string) (*model.Franchise, error) {
	franchise, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	franchise.KYCDocumentURL = documentURL
	if franchise.Status == model.StatusPendingVerification {
		franchise.Status = model.StatusUnderReview
	}

	if err := s.franchiseRepo.Update(franchise); err != nil {
		return nil, err
	}

	logger.Info("KYC document attached to franchise", map[string]interface{}{
		"franchise_id": id,
	})
	return franchise, nil
}
