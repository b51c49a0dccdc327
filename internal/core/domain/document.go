package domain

// DocumentCategory classifies uploaded documents.
type DocumentCategory string

const (
	DocContract DocumentCategory = "CONTRACT"
	DocInvoice  DocumentCategory = "INVOICE"
	DocBrochure DocumentCategory = "BROCHURE"
	DocOther    DocumentCategory = "OTHER"
)

// ValidDocumentCategory reports whether c is one of the known categories.
func ValidDocumentCategory(c DocumentCategory) bool {
	switch c {
	case DocContract, DocInvoice, DocBrochure, DocOther:
		return true
	}
	return false
}

// Document holds metadata for a file stored in the object store.
// The file content itself lives under StorageKey.
type Document struct {
	DocumentID  string           `json:"documentID"` // Primary Key (UUID)
	Title       string           `json:"title"`
	Category    DocumentCategory `json:"category"`
	FileName    string           `json:"fileName"`
	ContentType string           `json:"contentType"`
	SizeBytes   int64            `json:"sizeBytes"`
	StorageKey  string           `json:"-"`
	ItineraryID *string          `json:"itineraryID,omitempty"` // Optional FK -> itineraries
	AuditFields
}
