package dto

import (
	"time"

	"github.com/wanderplan/trip_pricing_app/internal/core/domain"
)

// UploadDocumentForm defines the multipart form fields accompanying a file upload.
type UploadDocumentForm struct {
	Title       string  `form:"title" binding:"required,max=200"`
	Category    string  `form:"category" binding:"required,documentcategory"`
	ItineraryID *string `form:"itineraryID" binding:"omitempty,uuid"`
}

// UpdateDocumentRequest defines the metadata fields allowed to change.
type UpdateDocumentRequest struct {
	Title    *string `json:"title" binding:"omitempty,max=200"`
	Category *string `json:"category" binding:"omitempty,documentcategory"`
}

// ListDocumentsParams defines query parameters for listing documents.
type ListDocumentsParams struct {
	Category    *string `form:"category" binding:"omitempty,documentcategory"`
	ItineraryID *string `form:"itineraryID" binding:"omitempty,uuid"`
	Limit       int     `form:"limit,default=20" binding:"min=1,max=100"`
	Offset      int     `form:"offset,default=0" binding:"min=0"`
}

// DocumentResponse defines the metadata returned for a document.
type DocumentResponse struct {
	DocumentID    string    `json:"documentID"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	FileName      string    `json:"fileName"`
	ContentType   string    `json:"contentType"`
	SizeBytes     int64     `json:"sizeBytes"`
	ItineraryID   *string   `json:"itineraryID,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ListDocumentsResponse wraps a page of documents with the total count.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
	Total     int                `json:"total"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}

// DocumentDownloadResponse carries a short-lived presigned download URL.
type DocumentDownloadResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ToDocumentResponse converts a domain.Document to its response DTO
func ToDocumentResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:    d.DocumentID,
		Title:         d.Title,
		Category:      string(d.Category),
		FileName:      d.FileName,
		ContentType:   d.ContentType,
		SizeBytes:     d.SizeBytes,
		ItineraryID:   d.ItineraryID,
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
	}
}

// ToListDocumentResponse converts a page of documents to the list DTO
func ToListDocumentResponse(docs []domain.Document, total, limit, offset int) ListDocumentsResponse {
	res := make([]DocumentResponse, len(docs))
	for i := range docs {
		res[i] = ToDocumentResponse(&docs[i])
	}
	return ListDocumentsResponse{Documents: res, Total: total, Limit: limit, Offset: offset}
}
