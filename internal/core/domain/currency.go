package domain

// Currency represents a currency known to the registry.
// System currencies are seeded by migration and immutable; custom
// currencies are added by admins and may be deleted again while unused.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
	Precision    int16  `json:"precision"`    // Decimal places for display rounding
	IsSystem     bool   `json:"isSystem"`
	AuditFields
}
