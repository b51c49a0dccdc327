package repositories

import (
	"context"
	"time"

	"github.com/wanderplan/trip_pricing_app/internal/core/domain"
)

// PriceRecordReader defines read operations for price record data
type PriceRecordReader interface {
	// FindPriceRecordByID retrieves a specific price record by its ID.
	FindPriceRecordByID(ctx context.Context, priceID string) (*domain.PriceRecord, error)

	// FindPriceRecordsByIDs retrieves a batch of price records keyed by ID.
	// Missing IDs are simply absent from the result map.
	FindPriceRecordsByIDs(ctx context.Context, priceIDs []string) (map[string]domain.PriceRecord, error)

	// ListPriceRecords retrieves price records with optional province and
	// category filters, paginated, with the total match count.
	ListPriceRecords(ctx context.Context, provinceID *string, category *domain.ServiceCategory, activeOnly bool, limit, offset int) ([]domain.PriceRecord, int, error)
}

// PriceRecordWriter defines write operations for price record data
type PriceRecordWriter interface {
	// SavePriceRecord persists a new price record.
	SavePriceRecord(ctx context.Context, record domain.PriceRecord) error

	// UpdatePriceRecord updates an existing price record.
	UpdatePriceRecord(ctx context.Context, record domain.PriceRecord) error

	// DeactivatePriceRecord soft deletes a price record.
	DeactivatePriceRecord(ctx context.Context, priceID string, deactivatedAt time.Time, deactivatedBy string) error
}

// PriceRecordRepositoryFacade combines all pricing repository interfaces
type PriceRecordRepositoryFacade interface {
	PriceRecordReader
	PriceRecordWriter
}
