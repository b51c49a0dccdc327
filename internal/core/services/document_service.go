package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/wanderplan/trip_pricing_app/internal/apperrors"
	"github.com/wanderplan/trip_pricing_app/internal/core/domain"
	portsrepo "github.com/wanderplan/trip_pricing_app/internal/core/ports/repositories"
	portssvc "github.com/wanderplan/trip_pricing_app/internal/core/ports/services"
	"github.com/wanderplan/trip_pricing_app/internal/dto"
	"github.com/wanderplan/trip_pricing_app/internal/platform/storage"
)

// maxDocumentSize caps uploads at 25 MiB.
const maxDocumentSize int64 = 25 << 20

// documentService provides business logic for itinerary documents.
type documentService struct {
	BaseService
	documentRepo  portsrepo.DocumentRepositoryFacade
	itineraryRepo portsrepo.ItineraryReader
	fileStorage   storage.FileStorage
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// NewDocumentService creates a new document service.
func NewDocumentService(
	documentRepo portsrepo.DocumentRepositoryFacade,
	itineraryRepo portsrepo.ItineraryReader,
	fileStorage storage.FileStorage,
) portssvc.DocumentSvcFacade {
	return &documentService{
		documentRepo:  documentRepo,
		itineraryRepo: itineraryRepo,
		fileStorage:   fileStorage,
	}
}

// UploadDocument stores the file content and persists document metadata.
// The object is removed again when the metadata row cannot be written.
func (s *documentService) UploadDocument(ctx context.Context, form dto.UploadDocumentForm, file io.Reader, fileName string, fileSize int64, contentType string, uploaderUserID string) (*domain.Document, error) {
	category := domain.DocumentCategory(form.Category)
	if !domain.ValidDocumentCategory(category) {
		return nil, fmt.Errorf("%w: unknown document category '%s'", apperrors.ErrValidation, form.Category)
	}
	if fileSize <= 0 {
		return nil, fmt.Errorf("%w: uploaded file is empty", apperrors.ErrValidation)
	}
	if fileSize > maxDocumentSize {
		return nil, fmt.Errorf("%w: uploaded file exceeds the %d byte limit", apperrors.ErrValidation, maxDocumentSize)
	}

	if form.ItineraryID != nil {
		if _, err := s.itineraryRepo.FindItineraryByID(ctx, *form.ItineraryID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: itinerary '%s' not found", apperrors.ErrValidation, *form.ItineraryID)
			}
			return nil, fmt.Errorf("failed to validate itinerary '%s': %w", *form.ItineraryID, err)
		}
	}

	now := time.Now()
	documentID := uuid.NewString()
	storageKey := fmt.Sprintf("documents/%s/%s", documentID, fileName)

	if err := storage.ValidateKey(storageKey); err != nil {
		return nil, fmt.Errorf("%w: invalid file name", apperrors.ErrValidation)
	}

	if err := s.fileStorage.Save(ctx, storageKey, file, fileSize, contentType); err != nil {
		s.LogError(ctx, err, "Failed to store document file", "document_id", documentID)
		return nil, fmt.Errorf("failed to store document file: %w", err)
	}

	document := domain.Document{
		DocumentID:  documentID,
		Title:       form.Title,
		Category:    category,
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   fileSize,
		StorageKey:  storageKey,
		ItineraryID: form.ItineraryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     uploaderUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: uploaderUserID,
		},
	}

	if err := s.documentRepo.SaveDocument(ctx, document); err != nil {
		// Roll the object back so storage doesn't accumulate orphans.
		if delErr := s.fileStorage.Delete(ctx, storageKey); delErr != nil {
			s.LogError(ctx, delErr, "Failed to roll back stored file after metadata failure", "storage_key", storageKey)
		}
		s.LogError(ctx, err, "Failed to save document metadata", "document_id", documentID)
		return nil, fmt.Errorf("failed to save document metadata: %w", err)
	}

	s.LogInfo(ctx, "Document uploaded", "document_id", documentID, "size_bytes", fileSize)
	return &document, nil
}

// GetDocumentByID retrieves document metadata by its ID.
func (s *documentService) GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	document, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get document by ID in service: %w", err)
	}
	return document, nil
}

// ListDocuments retrieves documents per the list parameters.
func (s *documentService) ListDocuments(ctx context.Context, params dto.ListDocumentsParams) ([]domain.Document, int, error) {
	var category *domain.DocumentCategory
	if params.Category != nil {
		c := domain.DocumentCategory(*params.Category)
		category = &c
	}

	documents, total, err := s.documentRepo.ListDocuments(ctx, category, params.ItineraryID, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list documents in service: %w", err)
	}
	if documents == nil {
		documents = []domain.Document{}
	}
	return documents, total, nil
}

// GetDownloadURL returns a short-lived presigned URL for the document's file.
func (s *documentService) GetDownloadURL(ctx context.Context, documentID string) (*dto.DocumentDownloadResponse, error) {
	document, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find document for download: %w", err)
	}

	url, expiresAt, err := s.fileStorage.GetURL(ctx, document.StorageKey)
	if err != nil {
		s.LogError(ctx, err, "Failed to presign document download", "document_id", documentID)
		return nil, fmt.Errorf("failed to presign document download: %w", err)
	}

	return &dto.DocumentDownloadResponse{URL: url, ExpiresAt: expiresAt}, nil
}

// UpdateDocument updates document metadata without touching the stored file.
func (s *documentService) UpdateDocument(ctx context.Context, documentID string, req dto.UpdateDocumentRequest, updaterUserID string) (*domain.Document, error) {
	document, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find document for update: %w", err)
	}

	if req.Title != nil {
		document.Title = *req.Title
	}
	if req.Category != nil {
		category := domain.DocumentCategory(*req.Category)
		if !domain.ValidDocumentCategory(category) {
			return nil, fmt.Errorf("%w: unknown document category '%s'", apperrors.ErrValidation, *req.Category)
		}
		document.Category = category
	}
	document.LastUpdatedAt = time.Now()
	document.LastUpdatedBy = updaterUserID

	if err := s.documentRepo.UpdateDocument(ctx, *document); err != nil {
		s.LogError(ctx, err, "Failed to update document metadata", "document_id", documentID)
		return nil, fmt.Errorf("failed to update document metadata: %w", err)
	}

	return document, nil
}

// DeleteDocument removes the document metadata and its stored file.
func (s *documentService) DeleteDocument(ctx context.Context, documentID string, deleterUserID string) error {
	document, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("failed to find document for deletion: %w", err)
	}

	if err := s.documentRepo.DeleteDocument(ctx, documentID); err != nil {
		s.LogError(ctx, err, "Failed to delete document metadata", "document_id", documentID)
		return fmt.Errorf("failed to delete document metadata: %w", err)
	}

	// Best effort: the row is gone, a leaked object only costs storage.
	if err := s.fileStorage.Delete(ctx, document.StorageKey); err != nil {
		s.LogError(ctx, err, "Failed to delete stored file", "storage_key", document.StorageKey)
	}

	s.LogInfo(ctx, "Document deleted", "document_id", documentID, "deleted_by", deleterUserID)
	return nil
}
