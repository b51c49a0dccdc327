package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wanderplan/trip_pricing_app/internal/apperrors"
	"github.com/wanderplan/trip_pricing_app/internal/core/domain"
	portsrepo "github.com/wanderplan/trip_pricing_app/internal/core/ports/repositories"
	"github.com/wanderplan/trip_pricing_app/internal/models"
	"github.com/wanderplan/trip_pricing_app/internal/utils/mapping"
)

type PgxDocumentRepository struct {
	BaseRepository
}

// newPgxDocumentRepository creates a new repository for document metadata.
func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

const documentColumns = `document_id, title, category, file_name, content_type, size_bytes, storage_key, itinerary_id, created_at, created_by, last_updated_at, last_updated_by`

func scanDocument(row pgx.CollectableRow) (models.Document, error) {
	var document models.Document
	err := row.Scan(
		&document.DocumentID,
		&document.Title,
		&document.Category,
		&document.FileName,
		&document.ContentType,
		&document.SizeBytes,
		&document.StorageKey,
		&document.ItineraryID,
		&document.CreatedAt,
		&document.CreatedBy,
		&document.LastUpdatedAt,
		&document.LastUpdatedBy,
	)
	return document, err
}

// SaveDocument persists a new document row.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, document domain.Document) error {
	modelDoc := mapping.ToModelDocument(document)

	query := `
		INSERT INTO documents (document_id, title, category, file_name, content_type, size_bytes, storage_key, itinerary_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelDoc.DocumentID,
		modelDoc.Title,
		modelDoc.Category,
		modelDoc.FileName,
		modelDoc.ContentType,
		modelDoc.SizeBytes,
		modelDoc.StorageKey,
		modelDoc.ItineraryID,
		modelDoc.CreatedAt,
		modelDoc.CreatedBy,
		modelDoc.LastUpdatedAt,
		modelDoc.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.ErrDuplicate
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationError("itinerary does not exist")
			}
		}
		return fmt.Errorf("failed to save document %s: %w", modelDoc.DocumentID, err)
	}
	return nil
}

// FindDocumentByID retrieves a specific document by its ID.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE document_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query document %s: %w", documentID, err)
	}
	defer rows.Close()

	modelDoc, err := pgx.CollectOneRow(rows, scanDocument)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find document by ID %s: %w", documentID, err)
	}

	domainDoc := mapping.ToDomainDocument(modelDoc)
	return &domainDoc, nil
}

// ListDocuments retrieves documents with optional category and itinerary
// filters, newest first, paginated, with the total match count.
func (r *PgxDocumentRepository) ListDocuments(ctx context.Context, category *domain.DocumentCategory, itineraryID *string, limit, offset int) ([]domain.Document, int, error) {
	var categoryFilter *string
	if category != nil {
		s := string(*category)
		categoryFilter = &s
	}

	whereClause := ` WHERE ($1::text IS NULL OR category = $1)
		AND ($2::text IS NULL OR itinerary_id = $2)`

	var total int
	countQuery := `SELECT COUNT(*) FROM documents` + whereClause + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, categoryFilter, itineraryID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count documents: %w", err)
	}

	listQuery := `
		SELECT ` + documentColumns + `
		FROM documents` + whereClause + `
		ORDER BY created_at DESC, document_id
		LIMIT $3 OFFSET $4;
	`
	rows, err := r.Pool.Query(ctx, listQuery, categoryFilter, itineraryID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	modelDocs, err := pgx.CollectRows(rows, scanDocument)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan documents: %w", err)
	}

	return mapping.ToDomainDocumentSlice(modelDocs), total, nil
}

// UpdateDocument updates the metadata of an existing document row.
func (r *PgxDocumentRepository) UpdateDocument(ctx context.Context, document domain.Document) error {
	modelDoc := mapping.ToModelDocument(document)

	query := `
		UPDATE documents
		SET title = $2, category = $3, last_updated_at = $4, last_updated_by = $5
		WHERE document_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelDoc.DocumentID,
		modelDoc.Title,
		modelDoc.Category,
		modelDoc.LastUpdatedAt,
		modelDoc.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update document %s: %w", modelDoc.DocumentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteDocument removes a document row.
func (r *PgxDocumentRepository) DeleteDocument(ctx context.Context, documentID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM documents WHERE document_id = $1;`, documentID)
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", documentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
