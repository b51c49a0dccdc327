package repositories

import (
	"context"

	"github.com/wanderplan/trip_pricing_app/internal/core/domain"
)

// DocumentReader defines read operations for document metadata
type DocumentReader interface {
	// FindDocumentByID retrieves a specific document by its ID.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// ListDocuments retrieves documents with optional category and
	// itinerary filters, newest first, paginated.
	ListDocuments(ctx context.Context, category *domain.DocumentCategory, itineraryID *string, limit, offset int) ([]domain.Document, int, error)
}

// DocumentWriter defines write operations for document metadata
type DocumentWriter interface {
	// SaveDocument persists a new document row.
	SaveDocument(ctx context.Context, document domain.Document) error

	// UpdateDocument updates the metadata of an existing document row.
	UpdateDocument(ctx context.Context, document domain.Document) error

	// DeleteDocument removes a document row.
	DeleteDocument(ctx context.Context, documentID string) error
}

// DocumentRepositoryFacade combines all document repository interfaces
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
