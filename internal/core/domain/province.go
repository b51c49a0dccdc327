package domain

// Province represents a destination province that price records belong to.
type Province struct {
	ProvinceID string `json:"provinceID"` // Primary Key (UUID)
	Name       string `json:"name"`
	Region     string `json:"region"` // e.g., "North", "Central Highlands"
	Country    string `json:"country"`
	IsActive   bool   `json:"isActive"` // Soft delete flag
	AuditFields
}
