package services

import (
	"context"
	"log"

	"gorm.io/gorm"

	"automateace/internal/domain"
	"automateace/internal/metrics"
	apperrors "automateace/pkg/errors"
)

// CatalogService serves the read-only portfolio and service listings
type CatalogService struct {
	db *gorm.DB
}

// NewCatalogService creates a new catalog service
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ListPortfolio returns featured portfolio projects, newest first
func (s *CatalogService) ListPortfolio(ctx context.Context) ([]domain.PortfolioProject, error) {
	// Non-nil so an empty listing serializes as [] rather than null.
	projects := []domain.PortfolioProject{}
	err := s.db.WithContext(ctx).
		Where("featured = ?", true).
		Order("created_at DESC").
		Find(&projects).Error
	metrics.RecordCatalogQuery("portfolio", err)
	if err != nil {
		log.Printf("[CATALOG] portfolio query failed: %v", err)
		return nil, apperrors.Storage("Failed to fetch portfolio", err)
	}
	return projects, nil
}

// ListServices returns active services ordered by ascending id
func (s *CatalogService) ListServices(ctx context.Context) ([]domain.Service, error) {
	services := []domain.Service{}
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&services).Error
	metrics.RecordCatalogQuery("services", err)
	if err != nil {
		log.Printf("[CATALOG] services query failed: %v", err)
		return nil, apperrors.Storage("Failed to fetch services", err)
	}
	return services, nil
}
