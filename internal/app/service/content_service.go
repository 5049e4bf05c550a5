package service

import (
	"errors"

	"github.com/thekada/kada-backend/internal/app/model"
	"github.com/thekada/kada-backend/internal/app/repository"
	"gorm.io/gorm"
)

var ErrContentNotFound = errors.New("content section not found")

type ContentService interface {
	GetSection(slug string, publishedOnly bool) (*model.ContentSection, error)
	ListSections(publishedOnly bool) ([]model.ContentSection, error)
	UpsertSection(section *model.ContentSection) error
	DeleteSection(slug string) error
}

type contentService struct {
	contentRepo repository.ContentRepository
}

func NewContentService(contentRepo repository.ContentRepository) ContentService {
	return &contentService{contentRepo: contentRepo}
}

func (s *contentService) GetSection(slug string, publishedOnly bool) (*model.ContentSection, error) {
	section, err := s.contentRepo.FindBySlug(slug, publishedOnly)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	return section, nil
}

func (s *contentService) ListSections(publishedOnly bool) ([]model.ContentSection, error) {
	return s.contentRepo.List(publishedOnly)
}

func (s *contentService) UpsertSection(section *model.ContentSection) error {
	existing, err := s.contentRepo.FindBySlug(section.Slug, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.contentRepo.Create(section)
		}
		return err
	}

	existing.Title = section.Title
	existing.Body = section.Body
	existing.ImageURL = section.ImageURL
	existing.Published = section.Published
	if err := s.contentRepo.Update(existing); err != nil {
		return err
	}
	*section = *existing
	return nil
}

func (s *contentService) DeleteSection(slug string) error {
	section, err := s.contentRepo.FindBySlug(slug, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContentNotFound
		}
		return err
	}
	return s.contentRepo.Delete(section.ID)
}
