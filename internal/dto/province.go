package dto

import (
	"time"

	"github.com/wanderplan/trip_pricing_app/internal/core/domain"
)

// CreateProvinceRequest defines the data needed to create a new province.
type CreateProvinceRequest struct {
	Name    string `json:"name" binding:"required,max=120"`
	Region  string `json:"region" binding:"max=120"`
	Country string `json:"country" binding:"required,max=120"`
}

// UpdateProvinceRequest defines the data allowed for updating a province.
// Pointers differentiate omitted fields from zero-value fields.
type UpdateProvinceRequest struct {
	Name   *string `json:"name" binding:"omitempty,max=120"`
	Region *string `json:"region" binding:"omitempty,max=120"`
}

// ListProvincesParams defines query parameters for listing provinces.
type ListProvincesParams struct {
	ActiveOnly bool `form:"activeOnly,default=true"`
	Limit      int  `form:"limit,default=50" binding:"min=1,max=200"`
	Offset     int  `form:"offset,default=0" binding:"min=0"`
}

// ProvinceResponse defines the data returned for a province.
type ProvinceResponse struct {
	ProvinceID    string    `json:"provinceID"`
	Name          string    `json:"name"`
	Region        string    `json:"region"`
	Country       string    `json:"country"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ListProvincesResponse wraps the list of provinces.
type ListProvincesResponse struct {
	Provinces []ProvinceResponse `json:"provinces"`
}

// ToProvinceResponse converts a domain.Province to its response DTO
func ToProvinceResponse(p *domain.Province) ProvinceResponse {
	return ProvinceResponse{
		ProvinceID:    p.ProvinceID,
		Name:          p.Name,
		Region:        p.Region,
		Country:       p.Country,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		LastUpdatedAt: p.LastUpdatedAt,
	}
}

// ToListProvinceResponse converts a slice of domain.Province to the list DTO
func ToListProvinceResponse(provinces []domain.Province) ListProvincesResponse {
	res := make([]ProvinceResponse, len(provinces))
	for i := range provinces {
		res[i] = ToProvinceResponse(&provinces[i])
	}
	return ListProvincesResponse{Provinces: res}
}
