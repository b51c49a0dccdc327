package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wanderplan/trip_pricing_app/internal/core/domain"
	portsrepo "github.com/wanderplan/trip_pricing_app/internal/core/ports/repositories"
	portssvc "github.com/wanderplan/trip_pricing_app/internal/core/ports/services"
	"github.com/wanderplan/trip_pricing_app/internal/dto"
)

// provinceService provides business logic for destination provinces.
type provinceService struct {
	BaseService
	provinceRepo portsrepo.ProvinceRepositoryFacade
}

var _ portssvc.ProvinceSvcFacade = (*provinceService)(nil)

// NewProvinceService creates a new province service.
func NewProvinceService(provinceRepo portsrepo.ProvinceRepositoryFacade) portssvc.ProvinceSvcFacade {
	return &provinceService{provinceRepo: provinceRepo}
}

// CreateProvince persists a new active province.
func (s *provinceService) CreateProvince(ctx context.Context, req dto.CreateProvinceRequest, creatorUserID string) (*domain.Province, error) {
	now := time.Now()

	province := domain.Province{
		ProvinceID: uuid.NewString(),
		Name:       req.Name,
		Region:     req.Region,
		Country:    req.Country,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.provinceRepo.SaveProvince(ctx, province); err != nil {
		s.LogError(ctx, err, "Failed to create province", "name", req.Name)
		return nil, fmt.Errorf("failed to create province in service: %w", err)
	}

	return &province, nil
}

// GetProvinceByID retrieves a specific province by its ID.
func (s *provinceService) GetProvinceByID(ctx context.Context, provinceID string) (*domain.Province, error) {
	province, err := s.provinceRepo.FindProvinceByID(ctx, provinceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get province by ID in service: %w", err)
	}
	return province, nil
}

// ListProvinces retrieves provinces per the list parameters.
func (s *provinceService) ListProvinces(ctx context.Context, params dto.ListProvincesParams) ([]domain.Province, error) {
	provinces, err := s.provinceRepo.ListProvinces(ctx, params.ActiveOnly, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list provinces in service: %w", err)
	}
	if provinces == nil {
		return []domain.Province{}, nil
	}
	return provinces, nil
}

// UpdateProvince updates name and region of an existing province.
func (s *provinceService) UpdateProvince(ctx context.Context, provinceID string, req dto.UpdateProvinceRequest, updaterUserID string) (*domain.Province, error) {
	province, err := s.provinceRepo.FindProvinceByID(ctx, provinceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find province for update: %w", err)
	}

	if req.Name != nil {
		province.Name = *req.Name
	}
	if req.Region != nil {
		province.Region = *req.Region
	}
	province.LastUpdatedAt = time.Now()
	province.LastUpdatedBy = updaterUserID

	if err := s.provinceRepo.UpdateProvince(ctx, *province); err != nil {
		s.LogError(ctx, err, "Failed to update province", "province_id", provinceID)
		return nil, fmt.Errorf("failed to update province in service: %w", err)
	}

	return province, nil
}

// DeactivateProvince soft deletes a province. Existing price records keep
// their reference but new ones cannot target an inactive province.
func (s *provinceService) DeactivateProvince(ctx context.Context, provinceID string, deleterUserID string) error {
	// Ensure it exists before deactivating so callers get a 404.
	if _, err := s.provinceRepo.FindProvinceByID(ctx, provinceID); err != nil {
		return fmt.Errorf("failed to find province for deactivation: %w", err)
	}

	if err := s.provinceRepo.DeactivateProvince(ctx, provinceID, time.Now(), deleterUserID); err != nil {
		s.LogError(ctx, err, "Failed to deactivate province", "province_id", provinceID)
		return fmt.Errorf("failed to deactivate province in service: %w", err)
	}

	s.LogInfo(ctx, "Province deactivated", "province_id", provinceID, "deleted_by", deleterUserID)
	return nil
}
