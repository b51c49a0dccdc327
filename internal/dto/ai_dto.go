package dto

import (
	"github.com/shopspring/decimal"
)

// DescribeImageRequest asks the image-description flow for a typed
// description of a destination or service photo. Exactly one of
// ImageURL / ImageBase64 must be provided.
type DescribeImageRequest struct {
	ImageURL    string `json:"imageURL" binding:"required_without=ImageBase64,omitempty,url"`
	ImageBase64 string `json:"imageBase64" binding:"required_without=ImageURL"`
	Hint        string `json:"hint" binding:"max=500"`
}

// ImageDescriptionResponse is the typed shape parsed from the model reply.
type ImageDescriptionResponse struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// ExtractContractRequest asks the contract-extraction flow to pull
// structured booking data out of raw contract text.
type ExtractContractRequest struct {
	Text string `json:"text" binding:"required"`
}

// ContractDataResponse is the typed shape parsed from the model reply.
type ContractDataResponse struct {
	ClientName   string          `json:"clientName"`
	StartDate    string          `json:"startDate"` // ISO date as extracted, not validated
	EndDate      string          `json:"endDate"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	CurrencyCode string          `json:"currencyCode"`
	Provinces    []string        `json:"provinces"`
}
