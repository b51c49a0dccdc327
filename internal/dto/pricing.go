package dto

import (
	"time"

	"github.com/wanderplan/trip_pricing_app/internal/core/domain"

	"github.com/shopspring/decimal"
)

// CreatePriceRecordRequest defines the data needed to create a price record.
type CreatePriceRecordRequest struct {
	ProvinceID      string           `json:"provinceID" binding:"required,uuid"`
	Category        string           `json:"category" binding:"required,servicecategory"`
	ServiceName     string           `json:"serviceName" binding:"required,max=200"`
	UnitPrice       decimal.Decimal  `json:"unitPrice" binding:"required"`
	SecondaryPrice  *decimal.Decimal `json:"secondaryPrice"`
	CurrencyCode    string           `json:"currencyCode" binding:"required,uppercase,alpha,len=3"`
	UnitDescription string           `json:"unitDescription" binding:"required,max=200"`
}

// UpdatePriceRecordRequest defines the data allowed for updating a price record.
type UpdatePriceRecordRequest struct {
	ServiceName     *string          `json:"serviceName" binding:"omitempty,max=200"`
	UnitPrice       *decimal.Decimal `json:"unitPrice"`
	SecondaryPrice  *decimal.Decimal `json:"secondaryPrice"`
	CurrencyCode    *string          `json:"currencyCode" binding:"omitempty,uppercase,alpha,len=3"`
	UnitDescription *string          `json:"unitDescription" binding:"omitempty,max=200"`
}

// ListPriceRecordsParams defines query parameters for listing price records.
type ListPriceRecordsParams struct {
	ProvinceID *string `form:"provinceID" binding:"omitempty,uuid"`
	Category   *string `form:"category" binding:"omitempty,servicecategory"`
	ActiveOnly bool    `form:"activeOnly,default=true"`
	Limit      int     `form:"limit,default=20" binding:"min=1,max=100"`
	Offset     int     `form:"offset,default=0" binding:"min=0"`
}

// PriceRecordResponse defines the data returned for a price record.
type PriceRecordResponse struct {
	PriceID         string           `json:"priceID"`
	ProvinceID      string           `json:"provinceID"`
	Category        string           `json:"category"`
	ServiceName     string           `json:"serviceName"`
	UnitPrice       decimal.Decimal  `json:"unitPrice"`
	SecondaryPrice  *decimal.Decimal `json:"secondaryPrice,omitempty"`
	CurrencyCode    string           `json:"currencyCode"`
	UnitDescription string           `json:"unitDescription"`
	IsActive        bool             `json:"isActive"`
	CreatedAt       time.Time        `json:"createdAt"`
	LastUpdatedAt   time.Time        `json:"lastUpdatedAt"`
}

// ListPriceRecordsResponse wraps a page of price records with the total count.
type ListPriceRecordsResponse struct {
	Records []PriceRecordResponse `json:"records"`
	Total   int                   `json:"total"`
	Limit   int                   `json:"limit"`
	Offset  int                   `json:"offset"`
}

// ToPriceRecordResponse converts a domain.PriceRecord to its response DTO
func ToPriceRecordResponse(r *domain.PriceRecord) PriceRecordResponse {
	return PriceRecordResponse{
		PriceID:         r.PriceID,
		ProvinceID:      r.ProvinceID,
		Category:        string(r.Category),
		ServiceName:     r.ServiceName,
		UnitPrice:       r.UnitPrice,
		SecondaryPrice:  r.SecondaryPrice,
		CurrencyCode:    r.CurrencyCode,
		UnitDescription: r.UnitDescription,
		IsActive:        r.IsActive,
		CreatedAt:       r.CreatedAt,
		LastUpdatedAt:   r.LastUpdatedAt,
	}
}

// ToListPriceRecordResponse converts a page of records to the list DTO
func ToListPriceRecordResponse(records []domain.PriceRecord, total, limit, offset int) ListPriceRecordsResponse {
	res := make([]PriceRecordResponse, len(records))
	for i := range records {
		res[i] = ToPriceRecordResponse(&records[i])
	}
	return ListPriceRecordsResponse{Records: res, Total: total, Limit: limit, Offset: offset}
}
