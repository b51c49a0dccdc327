package costing

import (
	"fmt"

	"github.com/wanderplan/trip_pricing_app/internal/core/domain"

	"github.com/shopspring/decimal"
)

// RateResolver returns the conversion rate from one currency into another.
// Implementations are expected to handle direct and inverse lookups; the
// identity case never reaches the resolver.
type RateResolver func(fromCode, toCode string) (decimal.Decimal, error)

// LineUnitPrice picks the effective unit price for an item: the override
// when present, otherwise the record's unit price.
func LineUnitPrice(item domain.ItineraryItem, record domain.PriceRecord) (decimal.Decimal, bool) {
	if item.PriceOverride != nil {
		return *item.PriceOverride, true
	}
	return record.UnitPrice, false
}

// Summarize computes the full cost breakdown for an itinerary in a single
// deterministic pass: per item, cost = unit price x quantity, converted
// into the display currency; per-day subtotals and the grand total are
// accumulated unrounded and rounded to the display precision at the end.
//
// records maps PriceID to its price record. Any missing record, invalid
// value, or missing conversion rate aborts with an error naming the day
// and item so the admin UI can point at the offending row.
func Summarize(it domain.Itinerary, records map[string]domain.PriceRecord, resolve RateResolver, precision int32) (domain.CostSummary, error) {
	summary := domain.CostSummary{
		ItineraryID:     it.ItineraryID,
		DisplayCurrency: it.DisplayCurrency,
		Lines:           []domain.CostLine{},
		Days:            make([]domain.DayCost, 0, len(it.Days)),
	}

	grandTotal := decimal.Zero

	for _, day := range it.Days {
		subtotal := decimal.Zero

		for _, item := range day.Items {
			record, ok := records[item.PriceID]
			if !ok {
				return domain.CostSummary{}, fmt.Errorf("day %d: price record %s not found for item %s", day.DayNumber, item.PriceID, item.ItemID)
			}

			if item.Quantity.LessThanOrEqual(decimal.Zero) {
				return domain.CostSummary{}, fmt.Errorf("day %d: quantity must be positive for item %s", day.DayNumber, item.ItemID)
			}

			unitPrice, overridden := LineUnitPrice(item, record)
			if unitPrice.IsNegative() {
				return domain.CostSummary{}, fmt.Errorf("day %d: unit price must not be negative for item %s", day.DayNumber, item.ItemID)
			}

			lineTotal := unitPrice.Mul(item.Quantity)
			if record.CurrencyCode != it.DisplayCurrency {
				rate, err := resolve(record.CurrencyCode, it.DisplayCurrency)
				if err != nil {
					return domain.CostSummary{}, fmt.Errorf("day %d: cannot convert item %s from %s to %s: %w",
						day.DayNumber, item.ItemID, record.CurrencyCode, it.DisplayCurrency, err)
				}
				lineTotal = lineTotal.Mul(rate)
			}

			subtotal = subtotal.Add(lineTotal)
			summary.Lines = append(summary.Lines, domain.CostLine{
				DayNumber:      day.DayNumber,
				ItemID:         item.ItemID,
				ServiceName:    record.ServiceName,
				Category:       record.Category,
				UnitPrice:      unitPrice,
				SourceCurrency: record.CurrencyCode,
				Quantity:       item.Quantity,
				LineTotal:      lineTotal.Round(precision),
				Overridden:     overridden,
			})
		}

		grandTotal = grandTotal.Add(subtotal)
		summary.Days = append(summary.Days, domain.DayCost{
			DayNumber: day.DayNumber,
			Title:     day.Title,
			Subtotal:  subtotal.Round(precision),
		})
	}

	summary.GrandTotal = grandTotal.Round(precision)
	return summary, nil
}

// ValidateDayNumbers checks that day numbers are dense and 1-based, in order.
func ValidateDayNumbers(days []domain.ItineraryDay) error {
	for i, day := range days {
		if day.DayNumber != i+1 {
			return fmt.Errorf("day numbers must be consecutive starting at 1, got %d at position %d", day.DayNumber, i+1)
		}
	}
	return nil
}
