package services

import (
	"context"

	"github.com/wanderplan/trip_pricing_app/internal/core/domain"
	"github.com/wanderplan/trip_pricing_app/internal/dto"
)

// ItineraryReaderSvc defines read operations for itineraries
type ItineraryReaderSvc interface {
	// GetItineraryByID retrieves an itinerary with its days and items.
	GetItineraryByID(ctx context.Context, itineraryID string) (*domain.Itinerary, error)

	// ListItineraries retrieves itinerary headers using token based pagination.
	ListItineraries(ctx context.Context, params dto.ListItinerariesParams) ([]domain.Itinerary, string, error)

	// GetCostSummary computes the per-line, per-day and grand total cost of an
	// itinerary in its display currency.
	GetCostSummary(ctx context.Context, itineraryID string) (*domain.CostSummary, error)
}

// ItineraryWriterSvc defines write operations for itineraries
type ItineraryWriterSvc interface {
	// CreateItinerary persists a new itinerary with its nested days and items.
	CreateItinerary(ctx context.Context, req dto.CreateItineraryRequest, creatorUserID string) (*domain.Itinerary, error)

	// UpdateItinerary replaces an itinerary's header, days and items.
	UpdateItinerary(ctx context.Context, itineraryID string, req dto.UpdateItineraryRequest, updaterUserID string) (*domain.Itinerary, error)

	// UpdateItineraryStatus advances an itinerary along its status lifecycle.
	UpdateItineraryStatus(ctx context.Context, itineraryID string, req dto.UpdateItineraryStatusRequest, updaterUserID string) (*domain.Itinerary, error)

	// DeleteItinerary removes a draft itinerary and its days and items.
	DeleteItinerary(ctx context.Context, itineraryID string, deleterUserID string) error
}

// ItineraryQuoteSvc defines quote delivery for itineraries
type ItineraryQuoteSvc interface {
	// EmailQuote computes the cost summary and mails it to the given address.
	EmailQuote(ctx context.Context, itineraryID string, toAddress string) error
}

// QuoteSender delivers a rendered cost summary to a client address.
type QuoteSender interface {
	SendQuote(ctx context.Context, toAddress, clientName, itineraryName string, summary *domain.CostSummary) error
}

// ItinerarySvcFacade combines all itinerary-related service interfaces
type ItinerarySvcFacade interface {
	ItineraryReaderSvc
	ItineraryWriterSvc
	ItineraryQuoteSvc
}
