package domain

import (
	"github.com/shopspring/decimal"
)

// ServiceCategory classifies what kind of service a price record covers.
type ServiceCategory string

const (
	CategoryActivity ServiceCategory = "ACTIVITY"
	CategoryHotel    ServiceCategory = "HOTEL"
	CategoryMeal     ServiceCategory = "MEAL"
	CategoryTransfer ServiceCategory = "TRANSFER"
)

// ValidServiceCategory reports whether c is one of the known categories.
func ValidServiceCategory(c ServiceCategory) bool {
	switch c {
	case CategoryActivity, CategoryHotel, CategoryMeal, CategoryTransfer:
		return true
	}
	return false
}

// PriceRecord is a per-province, per-category price definition for a service.
// SecondaryPrice is optional and category-dependent: single supplement for
// hotels, child rate for activities and meals.
type PriceRecord struct {
	PriceID         string           `json:"priceID"`    // Primary Key (UUID)
	ProvinceID      string           `json:"provinceID"` // FK -> provinces.province_id
	Category        ServiceCategory  `json:"category"`
	ServiceName     string           `json:"serviceName"`
	UnitPrice       decimal.Decimal  `json:"unitPrice"`
	SecondaryPrice  *decimal.Decimal `json:"secondaryPrice,omitempty"`
	CurrencyCode    string           `json:"currencyCode"` // FK -> currencies.currency_code
	UnitDescription string           `json:"unitDescription"`
	IsActive        bool             `json:"isActive"`
	AuditFields
}
