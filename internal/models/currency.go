package models

// Currency mirrors the currencies table.
type Currency struct {
	CurrencyCode string `db:"currency_code"`
	Symbol       string `db:"symbol"`
	Name         string `db:"name"`
	Precision    int16  `db:"precision"`
	IsSystem     bool   `db:"is_system"`
	AuditFields
}
