package mapping

import (
	"sort"

	"github.com/wanderplan/trip_pricing_app/internal/core/domain"
	"github.com/wanderplan/trip_pricing_app/internal/models"
)

// ToModelItinerary converts the itinerary header to its model form.
// Days and items are flattened separately by ToModelItineraryRows.
func ToModelItinerary(d domain.Itinerary) models.Itinerary {
	return models.Itinerary{
		ItineraryID:     d.ItineraryID,
		Name:            d.Name,
		ClientName:      d.ClientName,
		StartDate:       d.StartDate,
		DisplayCurrency: d.DisplayCurrency,
		Status:          string(d.Status),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToModelItineraryRows flattens the nested day/item structure into the
// row sets the repository persists.
func ToModelItineraryRows(d domain.Itinerary) ([]models.ItineraryDay, []models.ItineraryItem) {
	days := make([]models.ItineraryDay, 0, len(d.Days))
	var items []models.ItineraryItem
	for _, day := range d.Days {
		days = append(days, models.ItineraryDay{
			ItineraryID: d.ItineraryID,
			DayNumber:   day.DayNumber,
			Title:       day.Title,
		})
		for pos, item := range day.Items {
			items = append(items, models.ItineraryItem{
				ItemID:        item.ItemID,
				ItineraryID:   d.ItineraryID,
				DayNumber:     day.DayNumber,
				Position:      pos,
				PriceID:       item.PriceID,
				Quantity:      item.Quantity,
				PriceOverride: item.PriceOverride,
				Note:          item.Note,
			})
		}
	}
	return days, items
}

// ToDomainItinerary reassembles an itinerary from its header, day and
// item rows. Days come back ordered by day number, items by position.
func ToDomainItinerary(m models.Itinerary, dayRows []models.ItineraryDay, itemRows []models.ItineraryItem) domain.Itinerary {
	itemsByDay := make(map[int][]models.ItineraryItem, len(dayRows))
	for _, row := range itemRows {
		itemsByDay[row.DayNumber] = append(itemsByDay[row.DayNumber], row)
	}

	sort.Slice(dayRows, func(i, j int) bool { return dayRows[i].DayNumber < dayRows[j].DayNumber })

	days := make([]domain.ItineraryDay, 0, len(dayRows))
	for _, dayRow := range dayRows {
		rows := itemsByDay[dayRow.DayNumber]
		sort.Slice(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })
		items := make([]domain.ItineraryItem, 0, len(rows))
		for _, row := range rows {
			items = append(items, domain.ItineraryItem{
				ItemID:        row.ItemID,
				PriceID:       row.PriceID,
				Quantity:      row.Quantity,
				PriceOverride: row.PriceOverride,
				Note:          row.Note,
			})
		}
		days = append(days, domain.ItineraryDay{
			DayNumber: dayRow.DayNumber,
			Title:     dayRow.Title,
			Items:     items,
		})
	}

	return domain.Itinerary{
		ItineraryID:     m.ItineraryID,
		Name:            m.Name,
		ClientName:      m.ClientName,
		StartDate:       m.StartDate,
		DisplayCurrency: m.DisplayCurrency,
		Status:          domain.ItineraryStatus(m.Status),
		Days:            days,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainItineraryHeader converts just the header row, leaving Days nil.
// Used by list endpoints that don't load the nested structure.
func ToDomainItineraryHeader(m models.Itinerary) domain.Itinerary {
	return domain.Itinerary{
		ItineraryID:     m.ItineraryID,
		Name:            m.Name,
		ClientName:      m.ClientName,
		StartDate:       m.StartDate,
		DisplayCurrency: m.DisplayCurrency,
		Status:          domain.ItineraryStatus(m.Status),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
