package domain

import (
	"github.com/shopspring/decimal"
)

// CostLine is the costed form of a single itinerary item, converted into
// the itinerary's display currency.
type CostLine struct {
	DayNumber      int             `json:"dayNumber"`
	ItemID         string          `json:"itemID"`
	ServiceName    string          `json:"serviceName"`
	Category       ServiceCategory `json:"category"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	SourceCurrency string          `json:"sourceCurrency"`
	Quantity       decimal.Decimal `json:"quantity"`
	LineTotal      decimal.Decimal `json:"lineTotal"` // In display currency
	Overridden     bool            `json:"overridden"`
}

// DayCost is the per-day subtotal in display currency.
type DayCost struct {
	DayNumber int             `json:"dayNumber"`
	Title     string          `json:"title"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CostSummary is the derived cost breakdown for a whole itinerary.
type CostSummary struct {
	ItineraryID     string          `json:"itineraryID"`
	DisplayCurrency string          `json:"displayCurrency"`
	Lines           []CostLine      `json:"lines"`
	Days            []DayCost       `json:"days"`
	GrandTotal      decimal.Decimal `json:"grandTotal"`
}
