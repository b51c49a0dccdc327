package services

import (
	"context"

	"github.com/wanderplan/trip_pricing_app/internal/core/domain"
	"github.com/wanderplan/trip_pricing_app/internal/dto"
)

// ProvinceReaderSvc defines read operations for province data
type ProvinceReaderSvc interface {
	// GetProvinceByID retrieves a specific province by its ID.
	GetProvinceByID(ctx context.Context, provinceID string) (*domain.Province, error)

	// ListProvinces retrieves provinces per the list parameters.
	ListProvinces(ctx context.Context, params dto.ListProvincesParams) ([]domain.Province, error)
}

// ProvinceWriterSvc defines write operations for province data
type ProvinceWriterSvc interface {
	// CreateProvince persists a new province.
	CreateProvince(ctx context.Context, req dto.CreateProvinceRequest, creatorUserID string) (*domain.Province, error)

	// UpdateProvince updates an existing province.
	UpdateProvince(ctx context.Context, provinceID string, req dto.UpdateProvinceRequest, updaterUserID string) (*domain.Province, error)

	// DeactivateProvince soft deletes a province.
	DeactivateProvince(ctx context.Context, provinceID string, deleterUserID string) error
}

// ProvinceSvcFacade combines all province-related service interfaces
type ProvinceSvcFacade interface {
	ProvinceReaderSvc
	ProvinceWriterSvc
}
