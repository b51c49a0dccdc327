package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/wanderplan/trip_pricing_app/internal/apperrors"
	portssvc "github.com/wanderplan/trip_pricing_app/internal/core/ports/services"
	"github.com/wanderplan/trip_pricing_app/internal/dto"
	"github.com/wanderplan/trip_pricing_app/internal/platform/ai"
)

// aiFlowService wraps the LLM client behind typed request/response flows.
type aiFlowService struct {
	BaseService
	client ai.Client
}

var _ portssvc.AIFlowSvcFacade = (*aiFlowService)(nil)

// NewAIFlowService creates a new AI flow service.
func NewAIFlowService(client ai.Client) portssvc.AIFlowSvcFacade {
	return &aiFlowService{client: client}
}

// resolveImage turns the request's URL or base64 payload into an inline part.
func (s *aiFlowService) resolveImage(ctx context.Context, req dto.DescribeImageRequest) (*ai.ImagePart, error) {
	if req.ImageBase64 != "" {
		payload := req.ImageBase64
		mimeType := "image/jpeg"
		// Tolerate data URIs ("data:image/png;base64,....").
		if strings.HasPrefix(payload, "data:") {
			parts := strings.SplitN(payload, ",", 2)
			if len(parts) != 2 {
				return nil, fmt.Errorf("%w: malformed data URI", apperrors.ErrValidation)
			}
			meta := strings.TrimPrefix(parts[0], "data:")
			mimeType = strings.TrimSuffix(strings.SplitN(meta, ";", 2)[0], ";")
			payload = parts[1]
		}
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid base64 image payload", apperrors.ErrValidation)
		}
		return &ai.ImagePart{MIMEType: mimeType, Data: data}, nil
	}

	image, err := ai.FetchImage(ctx, nil, req.ImageURL)
	if err != nil {
		return nil, apperrors.NewGatewayError("failed to fetch image for description", err)
	}
	return image, nil
}

// DescribeImage generates a travel-catalog description for an image.
func (s *aiFlowService) DescribeImage(ctx context.Context, req dto.DescribeImageRequest) (*dto.ImageDescriptionResponse, error) {
	image, err := s.resolveImage(ctx, req)
	if err != nil {
		return nil, err
	}

	prompt := ai.BuildImageDescriptionPrompt(req.Hint)
	raw, err := s.client.GenerateJSON(ctx, prompt, image)
	if err != nil {
		s.LogError(ctx, err, "LLM image description failed")
		return nil, apperrors.NewGatewayError("image description generation failed", err)
	}

	var resp dto.ImageDescriptionResponse
	if err := ai.DecodeStrict(raw, &resp); err != nil {
		s.LogError(ctx, err, "LLM returned unparseable image description")
		return nil, apperrors.NewGatewayError("image description output was not valid JSON", err)
	}
	return &resp, nil
}

// ExtractContractData pulls structured pricing fields out of contract text.
func (s *aiFlowService) ExtractContractData(ctx context.Context, req dto.ExtractContractRequest) (*dto.ContractDataResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("%w: contract text is empty", apperrors.ErrValidation)
	}

	prompt := ai.BuildContractExtractionPrompt(req.Text)
	raw, err := s.client.GenerateJSON(ctx, prompt, nil)
	if err != nil {
		s.LogError(ctx, err, "LLM contract extraction failed")
		return nil, apperrors.NewGatewayError("contract extraction failed", err)
	}

	var resp dto.ContractDataResponse
	if err := ai.DecodeStrict(raw, &resp); err != nil {
		s.LogError(ctx, err, "LLM returned unparseable contract data")
		return nil, apperrors.NewGatewayError("contract extraction output was not valid JSON", err)
	}
	return &resp, nil
}
