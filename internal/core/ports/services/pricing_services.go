package services

import (
	"context"

	"github.com/wanderplan/trip_pricing_app/internal/core/domain"
	"github.com/wanderplan/trip_pricing_app/internal/dto"
)

// PriceRecordReaderSvc defines read operations for price records
type PriceRecordReaderSvc interface {
	// GetPriceRecordByID retrieves a specific price record by its ID.
	GetPriceRecordByID(ctx context.Context, priceID string) (*domain.PriceRecord, error)

	// ListPriceRecords retrieves price records per the list parameters,
	// with the total match count.
	ListPriceRecords(ctx context.Context, params dto.ListPriceRecordsParams) ([]domain.PriceRecord, int, error)
}

// PriceRecordWriterSvc defines write operations for price records
type PriceRecordWriterSvc interface {
	// CreatePriceRecord persists a new price record.
	CreatePriceRecord(ctx context.Context, req dto.CreatePriceRecordRequest, creatorUserID string) (*domain.PriceRecord, error)

	// UpdatePriceRecord updates an existing price record.
	UpdatePriceRecord(ctx context.Context, priceID string, req dto.UpdatePriceRecordRequest, updaterUserID string) (*domain.PriceRecord, error)

	// DeactivatePriceRecord soft deletes a price record.
	DeactivatePriceRecord(ctx context.Context, priceID string, deleterUserID string) error
}

// PricingSvcFacade combines all pricing-related service interfaces
type PricingSvcFacade interface {
	PriceRecordReaderSvc
	PriceRecordWriterSvc
}
