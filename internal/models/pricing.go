package models

import (
	"github.com/shopspring/decimal"
)

// PriceRecord mirrors the price_records table.
type PriceRecord struct {
	PriceID         string           `db:"price_id"`
	ProvinceID      string           `db:"province_id"`
	Category        string           `db:"category"`
	ServiceName     string           `db:"service_name"`
	UnitPrice       decimal.Decimal  `db:"unit_price"`
	SecondaryPrice  *decimal.Decimal `db:"secondary_price"`
	CurrencyCode    string           `db:"currency_code"`
	UnitDescription string           `db:"unit_description"`
	IsActive        bool             `db:"is_active"`
	AuditFields
}
