package repositories

import (
	"context"
	"time"

	"github.com/wanderplan/trip_pricing_app/internal/core/domain"
)

// ProvinceReader defines read operations for province data
type ProvinceReader interface {
	// FindProvinceByID retrieves a specific province by its ID.
	FindProvinceByID(ctx context.Context, provinceID string) (*domain.Province, error)

	// ListProvinces retrieves provinces, optionally restricted to active
	// ones, ordered by country then name.
	ListProvinces(ctx context.Context, activeOnly bool, limit, offset int) ([]domain.Province, error)
}

// ProvinceWriter defines write operations for province data
type ProvinceWriter interface {
	// SaveProvince persists a new province.
	SaveProvince(ctx context.Context, province domain.Province) error

	// UpdateProvince updates name and region of an existing province.
	UpdateProvince(ctx context.Context, province domain.Province) error

	// DeactivateProvince soft deletes a province.
	DeactivateProvince(ctx context.Context, provinceID string, deactivatedAt time.Time, deactivatedBy string) error
}

// ProvinceRepositoryFacade combines all province-related repository interfaces
type ProvinceRepositoryFacade interface {
	ProvinceReader
	ProvinceWriter
}
