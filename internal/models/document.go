package models

// Document mirrors the documents table.
type Document struct {
	DocumentID  string  `db:"document_id"`
	Title       string  `db:"title"`
	Category    string  `db:"category"`
	FileName    string  `db:"file_name"`
	ContentType string  `db:"content_type"`
	SizeBytes   int64   `db:"size_bytes"`
	StorageKey  string  `db:"storage_key"`
	ItineraryID *string `db:"itinerary_id"`
	AuditFields
}
