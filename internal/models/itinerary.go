package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Itinerary mirrors the itineraries table. Days and items live in their
// own tables and are loaded separately.
type Itinerary struct {
	ItineraryID     string    `db:"itinerary_id"`
	Name            string    `db:"name"`
	ClientName      string    `db:"client_name"`
	StartDate       time.Time `db:"start_date"`
	DisplayCurrency string    `db:"display_currency"`
	Status          string    `db:"status"`
	AuditFields
}

// ItineraryDay mirrors the itinerary_days table.
type ItineraryDay struct {
	ItineraryID string `db:"itinerary_id"`
	DayNumber   int    `db:"day_number"`
	Title       string `db:"title"`
}

// ItineraryItem mirrors the itinerary_items table.
type ItineraryItem struct {
	ItemID        string           `db:"item_id"`
	ItineraryID   string           `db:"itinerary_id"`
	DayNumber     int              `db:"day_number"`
	Position      int              `db:"position"`
	PriceID       string           `db:"price_id"`
	Quantity      decimal.Decimal  `db:"quantity"`
	PriceOverride *decimal.Decimal `db:"price_override"`
	Note          string           `db:"note"`
}
