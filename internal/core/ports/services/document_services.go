package services

import (
	"context"
	"io"

	"github.com/wanderplan/trip_pricing_app/internal/core/domain"
	"github.com/wanderplan/trip_pricing_app/internal/dto"
)

// DocumentReaderSvc defines read operations for documents
type DocumentReaderSvc interface {
	// GetDocumentByID retrieves document metadata by its ID.
	GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// ListDocuments retrieves documents per the list parameters, with the
	// total match count.
	ListDocuments(ctx context.Context, params dto.ListDocumentsParams) ([]domain.Document, int, error)

	// GetDownloadURL returns a short-lived presigned URL for the document's file.
	GetDownloadURL(ctx context.Context, documentID string) (*dto.DocumentDownloadResponse, error)
}

// DocumentWriterSvc defines write operations for documents
type DocumentWriterSvc interface {
	// UploadDocument stores the file content and persists document metadata.
	UploadDocument(ctx context.Context, form dto.UploadDocumentForm, file io.Reader, fileName string, fileSize int64, contentType string, uploaderUserID string) (*domain.Document, error)

	// UpdateDocument updates document metadata without touching the stored file.
	UpdateDocument(ctx context.Context, documentID string, req dto.UpdateDocumentRequest, updaterUserID string) (*domain.Document, error)

	// DeleteDocument removes the document metadata and its stored file.
	DeleteDocument(ctx context.Context, documentID string, deleterUserID string) error
}

// DocumentSvcFacade combines all document-related service interfaces
type DocumentSvcFacade interface {
	DocumentReaderSvc
	DocumentWriterSvc
}
