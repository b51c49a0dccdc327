package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItineraryStatus tracks the lifecycle of an itinerary.
type ItineraryStatus string

const (
	StatusDraft     ItineraryStatus = "DRAFT"
	StatusConfirmed ItineraryStatus = "CONFIRMED"
	StatusArchived  ItineraryStatus = "ARCHIVED"
)

// CanTransitionTo reports whether the status change is allowed.
// DRAFT -> CONFIRMED -> ARCHIVED; ARCHIVED is terminal.
func (s ItineraryStatus) CanTransitionTo(next ItineraryStatus) bool {
	switch s {
	case StatusDraft:
		return next == StatusConfirmed
	case StatusConfirmed:
		return next == StatusArchived
	}
	return false
}

// ItineraryItem references a price record and carries a quantity multiplier.
// PriceOverride, when set, replaces the record's unit price during costing.
type ItineraryItem struct {
	ItemID        string           `json:"itemID"`  // Primary Key (UUID)
	PriceID       string           `json:"priceID"` // FK -> price_records.price_id
	Quantity      decimal.Decimal  `json:"quantity"`
	PriceOverride *decimal.Decimal `json:"priceOverride,omitempty"`
	Note          string           `json:"note,omitempty"`
}

// ItineraryDay is one day of the plan with its scheduled service items.
type ItineraryDay struct {
	DayNumber int             `json:"dayNumber"` // 1-based, dense
	Title     string          `json:"title"`
	Items     []ItineraryItem `json:"items"`
}

// Itinerary is a multi-day travel plan. Total cost is always derived by
// the cost calculator, never stored.
type Itinerary struct {
	ItineraryID     string          `json:"itineraryID"` // Primary Key (UUID)
	Name            string          `json:"name"`
	ClientName      string          `json:"clientName"`
	StartDate       time.Time       `json:"startDate"`
	DisplayCurrency string          `json:"displayCurrency"` // FK -> currencies.currency_code
	Status          ItineraryStatus `json:"status"`
	Days            []ItineraryDay  `json:"days"`
	AuditFields
}
