package repositories

import (
	"context"
	"time"

	"github.com/wanderplan/trip_pricing_app/internal/core/domain"
)

// ItineraryReader defines read operations for itinerary data
type ItineraryReader interface {
	// FindItineraryByID retrieves an itinerary with its days and items.
	FindItineraryByID(ctx context.Context, itineraryID string) (*domain.Itinerary, error)

	// ListItineraries retrieves itinerary headers (no days) newest first,
	// optionally filtered by status, using a created_at cursor token.
	// Returns the page and the next cursor ("" when exhausted).
	ListItineraries(ctx context.Context, status *domain.ItineraryStatus, limit int, pageToken string) ([]domain.Itinerary, string, error)
}

// ItineraryWriter defines write operations for itinerary data
type ItineraryWriter interface {
	// SaveItinerary persists a new itinerary with its days and items in
	// one transaction.
	SaveItinerary(ctx context.Context, itinerary domain.Itinerary) error

	// ReplaceItinerary updates the header and replaces the full day/item
	// set in one transaction.
	ReplaceItinerary(ctx context.Context, itinerary domain.Itinerary) error

	// UpdateItineraryStatus sets the status of an itinerary.
	UpdateItineraryStatus(ctx context.Context, itineraryID string, status domain.ItineraryStatus, updatedAt time.Time, updatedBy string) error

	// DeleteItinerary removes an itinerary and its days and items.
	DeleteItinerary(ctx context.Context, itineraryID string) error
}

// ItineraryRepositoryFacade combines all itinerary repository interfaces
type ItineraryRepositoryFacade interface {
	ItineraryReader
	ItineraryWriter
}

// ItineraryRepositoryWithTx extends the facade with transaction capabilities
type ItineraryRepositoryWithTx interface {
	ItineraryRepositoryFacade
	TransactionManager
}
