package services

import (
	"context"

	"github.com/wanderplan/trip_pricing_app/internal/dto"
)

// AIFlowSvcFacade defines the AI-backed flows exposed by the application.
type AIFlowSvcFacade interface {
	// DescribeImage generates a travel-catalog description for an image.
	DescribeImage(ctx context.Context, req dto.DescribeImageRequest) (*dto.ImageDescriptionResponse, error)

	// ExtractContractData pulls structured pricing fields out of contract text.
	ExtractContractData(ctx context.Context, req dto.ExtractContractRequest) (*dto.ContractDataResponse, error)
}
