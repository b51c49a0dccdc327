package services_test

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/wanderplan/trip_pricing_app/internal/apperrors"
	portssvc "github.com/wanderplan/trip_pricing_app/internal/core/ports/services"
	"github.com/wanderplan/trip_pricing_app/internal/core/services"
	"github.com/wanderplan/trip_pricing_app/internal/dto"
	"github.com/wanderplan/trip_pricing_app/internal/platform/ai"
)

// --- Mock AI Client ---
type MockAIClient struct {
	mock.Mock
}

func (m *MockAIClient) GenerateJSON(ctx context.Context, prompt string, image *ai.ImagePart) (string, error) {
	args := m.Called(ctx, prompt, image)
	return args.String(0), args.Error(1)
}

// --- Test Suite ---
type AIFlowServiceTestSuite struct {
	suite.Suite
	mockClient *MockAIClient
	service    portssvc.AIFlowSvcFacade
}

func (suite *AIFlowServiceTestSuite) SetupTest() {
	suite.mockClient = new(MockAIClient)
	suite.service = services.NewAIFlowService(suite.mockClient)
}

// --- Test Cases ---

func (suite *AIFlowServiceTestSuite) TestDescribeImage_Base64Payload() {
	ctx := context.Background()
	payload := base64.StdEncoding.EncodeToString([]byte("fake-image-bytes"))
	req := dto.DescribeImageRequest{ImageBase64: payload, Hint: "beach resort"}

	suite.mockClient.On("GenerateJSON", ctx, mock.AnythingOfType("string"), mock.MatchedBy(func(img *ai.ImagePart) bool {
		return img != nil && string(img.Data) == "fake-image-bytes"
	})).Return(`{"title":"Beach Resort","description":"A quiet beach.","tags":["beach"]}`, nil).Once()

	resp, err := suite.service.DescribeImage(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("Beach Resort", resp.Title)
	suite.Equal([]string{"beach"}, resp.Tags)
	suite.mockClient.AssertExpectations(suite.T())
}

func (suite *AIFlowServiceTestSuite) TestDescribeImage_DataURIPayload() {
	ctx := context.Background()
	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	req := dto.DescribeImageRequest{ImageBase64: payload}

	suite.mockClient.On("GenerateJSON", ctx, mock.AnythingOfType("string"), mock.MatchedBy(func(img *ai.ImagePart) bool {
		return img != nil && img.MIMEType == "image/png"
	})).Return(`{"title":"T","description":"D","tags":[]}`, nil).Once()

	_, err := suite.service.DescribeImage(ctx, req)

	suite.Require().NoError(err)
	suite.mockClient.AssertExpectations(suite.T())
}

func (suite *AIFlowServiceTestSuite) TestDescribeImage_InvalidBase64() {
	ctx := context.Background()
	req := dto.DescribeImageRequest{ImageBase64: "!!not-base64!!"}

	resp, err := suite.service.DescribeImage(ctx, req)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockClient.AssertNotCalled(suite.T(), "GenerateJSON", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AIFlowServiceTestSuite) TestExtractContractData_StripsFences() {
	ctx := context.Background()
	req := dto.ExtractContractRequest{Text: "Contract between WanderPlan and Alex Chen, total 1200 USD"}

	fenced := "```json\n{\"clientName\":\"Alex Chen\",\"startDate\":\"2026-09-01\",\"endDate\":\"2026-09-07\",\"totalAmount\":1200,\"currencyCode\":\"USD\",\"provinces\":[\"Quang Ninh\"]}\n```"
	suite.mockClient.On("GenerateJSON", ctx, mock.AnythingOfType("string"), (*ai.ImagePart)(nil)).Return(fenced, nil).Once()

	resp, err := suite.service.ExtractContractData(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("Alex Chen", resp.ClientName)
	suite.Equal("USD", resp.CurrencyCode)
	suite.True(resp.TotalAmount.IntPart() == 1200)
	suite.mockClient.AssertExpectations(suite.T())
}

func (suite *AIFlowServiceTestSuite) TestExtractContractData_EmptyText() {
	ctx := context.Background()

	resp, err := suite.service.ExtractContractData(ctx, dto.ExtractContractRequest{Text: "   "})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AIFlowServiceTestSuite) TestExtractContractData_NonJSONReplyIsGatewayError() {
	ctx := context.Background()
	req := dto.ExtractContractRequest{Text: "some contract"}

	suite.mockClient.On("GenerateJSON", ctx, mock.AnythingOfType("string"), (*ai.ImagePart)(nil)).Return("Sorry, I cannot help with that.", nil).Once()

	resp, err := suite.service.ExtractContractData(ctx, req)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.mockClient.AssertExpectations(suite.T())
}

func TestAIFlowServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AIFlowServiceTestSuite))
}
