package dto

import (
	"time"

	"github.com/wanderplan/trip_pricing_app/internal/core/domain"

	"github.com/shopspring/decimal"
)

// CreateItineraryItemRequest is one service item on an itinerary day.
type CreateItineraryItemRequest struct {
	PriceID       string           `json:"priceID" binding:"required,uuid"`
	Quantity      decimal.Decimal  `json:"quantity" binding:"required"`
	PriceOverride *decimal.Decimal `json:"priceOverride"`
	Note          string           `json:"note" binding:"max=500"`
}

// CreateItineraryDayRequest is one day of the plan.
type CreateItineraryDayRequest struct {
	DayNumber int                          `json:"dayNumber" binding:"required,min=1"`
	Title     string                       `json:"title" binding:"max=200"`
	Items     []CreateItineraryItemRequest `json:"items" binding:"dive"`
}

// CreateItineraryRequest defines the nested payload to create an itinerary.
type CreateItineraryRequest struct {
	Name            string                      `json:"name" binding:"required,max=200"`
	ClientName      string                      `json:"clientName" binding:"max=200"`
	StartDate       time.Time                   `json:"startDate" binding:"required"`
	DisplayCurrency string                      `json:"displayCurrency" binding:"required,uppercase,alpha,len=3"`
	Days            []CreateItineraryDayRequest `json:"days" binding:"required,min=1,dive"`
}

// UpdateItineraryRequest replaces the header fields and the full day set.
type UpdateItineraryRequest struct {
	Name            string                      `json:"name" binding:"required,max=200"`
	ClientName      string                      `json:"clientName" binding:"max=200"`
	StartDate       time.Time                   `json:"startDate" binding:"required"`
	DisplayCurrency string                      `json:"displayCurrency" binding:"required,uppercase,alpha,len=3"`
	Days            []CreateItineraryDayRequest `json:"days" binding:"required,min=1,dive"`
}

// UpdateItineraryStatusRequest moves an itinerary through its lifecycle.
type UpdateItineraryStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=CONFIRMED ARCHIVED"`
}

// EmailQuoteRequest asks for the cost summary to be mailed to a client.
type EmailQuoteRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ListItinerariesParams defines query parameters for listing itineraries.
type ListItinerariesParams struct {
	Status    *string `form:"status" binding:"omitempty,oneof=DRAFT CONFIRMED ARCHIVED"`
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	PageToken string  `form:"pageToken"`
}

// ItineraryItemResponse mirrors one item of a day.
type ItineraryItemResponse struct {
	ItemID        string           `json:"itemID"`
	PriceID       string           `json:"priceID"`
	Quantity      decimal.Decimal  `json:"quantity"`
	PriceOverride *decimal.Decimal `json:"priceOverride,omitempty"`
	Note          string           `json:"note,omitempty"`
}

// ItineraryDayResponse mirrors one day with its items.
type ItineraryDayResponse struct {
	DayNumber int                     `json:"dayNumber"`
	Title     string                  `json:"title"`
	Items     []ItineraryItemResponse `json:"items"`
}

// ItineraryResponse defines the data returned for an itinerary.
// Days is null on list responses, which only carry headers.
type ItineraryResponse struct {
	ItineraryID     string                 `json:"itineraryID"`
	Name            string                 `json:"name"`
	ClientName      string                 `json:"clientName"`
	StartDate       time.Time              `json:"startDate"`
	DisplayCurrency string                 `json:"displayCurrency"`
	Status          string                 `json:"status"`
	Days            []ItineraryDayResponse `json:"days,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
	CreatedBy       string                 `json:"createdBy"`
	LastUpdatedAt   time.Time              `json:"lastUpdatedAt"`
}

// ListItinerariesResponse wraps a page of itinerary headers with the cursor.
type ListItinerariesResponse struct {
	Itineraries   []ItineraryResponse `json:"itineraries"`
	NextPageToken string              `json:"nextPageToken,omitempty"`
}

// CostLineResponse is one costed line of the summary.
type CostLineResponse struct {
	DayNumber      int             `json:"dayNumber"`
	ItemID         string          `json:"itemID"`
	ServiceName    string          `json:"serviceName"`
	Category       string          `json:"category"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	SourceCurrency string          `json:"sourceCurrency"`
	Quantity       decimal.Decimal `json:"quantity"`
	LineTotal      decimal.Decimal `json:"lineTotal"`
	Overridden     bool            `json:"overridden"`
}

// DayCostResponse is the per-day subtotal.
type DayCostResponse struct {
	DayNumber int             `json:"dayNumber"`
	Title     string          `json:"title"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CostSummaryResponse is the derived cost breakdown for an itinerary.
type CostSummaryResponse struct {
	ItineraryID     string             `json:"itineraryID"`
	DisplayCurrency string             `json:"displayCurrency"`
	Lines           []CostLineResponse `json:"lines"`
	Days            []DayCostResponse  `json:"days"`
	GrandTotal      decimal.Decimal    `json:"grandTotal"`
}

// ToItineraryResponse converts a domain.Itinerary (with or without days)
// to its response DTO.
func ToItineraryResponse(it *domain.Itinerary) ItineraryResponse {
	resp := ItineraryResponse{
		ItineraryID:     it.ItineraryID,
		Name:            it.Name,
		ClientName:      it.ClientName,
		StartDate:       it.StartDate,
		DisplayCurrency: it.DisplayCurrency,
		Status:          string(it.Status),
		CreatedAt:       it.CreatedAt,
		CreatedBy:       it.CreatedBy,
		LastUpdatedAt:   it.LastUpdatedAt,
	}
	for _, day := range it.Days {
		items := make([]ItineraryItemResponse, len(day.Items))
		for i, item := range day.Items {
			items[i] = ItineraryItemResponse{
				ItemID:        item.ItemID,
				PriceID:       item.PriceID,
				Quantity:      item.Quantity,
				PriceOverride: item.PriceOverride,
				Note:          item.Note,
			}
		}
		resp.Days = append(resp.Days, ItineraryDayResponse{
			DayNumber: day.DayNumber,
			Title:     day.Title,
			Items:     items,
		})
	}
	return resp
}

// ToListItineraryResponse converts itinerary headers plus cursor to the list DTO.
func ToListItineraryResponse(its []domain.Itinerary, nextToken string) ListItinerariesResponse {
	res := make([]ItineraryResponse, len(its))
	for i := range its {
		res[i] = ToItineraryResponse(&its[i])
	}
	return ListItinerariesResponse{Itineraries: res, NextPageToken: nextToken}
}

// ToCostSummaryResponse converts a domain.CostSummary to its response DTO.
func ToCostSummaryResponse(s *domain.CostSummary) CostSummaryResponse {
	lines := make([]CostLineResponse, len(s.Lines))
	for i, l := range s.Lines {
		lines[i] = CostLineResponse{
			DayNumber:      l.DayNumber,
			ItemID:         l.ItemID,
			ServiceName:    l.ServiceName,
			Category:       string(l.Category),
			UnitPrice:      l.UnitPrice,
			SourceCurrency: l.SourceCurrency,
			Quantity:       l.Quantity,
			LineTotal:      l.LineTotal,
			Overridden:     l.Overridden,
		}
	}
	days := make([]DayCostResponse, len(s.Days))
	for i, d := range s.Days {
		days[i] = DayCostResponse{DayNumber: d.DayNumber, Title: d.Title, Subtotal: d.Subtotal}
	}
	return CostSummaryResponse{
		ItineraryID:     s.ItineraryID,
		DisplayCurrency: s.DisplayCurrency,
		Lines:           lines,
		Days:            days,
		GrandTotal:      s.GrandTotal,
	}
}
