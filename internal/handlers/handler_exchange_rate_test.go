package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/wanderplan/trip_pricing_app/internal/apperrors"
	"github.com/wanderplan/trip_pricing_app/internal/core/domain"
	portssvc "github.com/wanderplan/trip_pricing_app/internal/core/ports/services"
	"github.com/wanderplan/trip_pricing_app/internal/dto"
	"github.com/wanderplan/trip_pricing_app/internal/handlers"
	"github.com/wanderplan/trip_pricing_app/internal/middleware"
)

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}
func (m *MockExchangeRateService) GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}
func (m *MockExchangeRateService) ListExchangeRates(ctx context.Context, params dto.ListExchangeRatesParams) ([]domain.ExchangeRate, int, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Int(1), args.Error(2)
}

// Ensure mock implements the interface
var _ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)

// --- Test Suite ---
type ExchangeRateHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockRateService *MockExchangeRateService
	jwtSecret       string
}

func (suite *ExchangeRateHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "tpa-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *ExchangeRateHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockRateService = new(MockExchangeRateService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterExchangeRateRoutes(v1, suite.mockRateService)
}

func (suite *ExchangeRateHandlerTestSuite) doRequest(method, url string, body any, userID string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ExchangeRateHandlerTestSuite) TestCreateExchangeRate_Success() {
	creatorUserID := uuid.NewString()
	dateEffective := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	reqBody := dto.CreateExchangeRateRequest{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "EUR",
		Rate:             decimal.RequireFromString("0.92"),
		DateEffective:    dateEffective,
	}
	created := &domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "EUR",
		Rate:             decimal.RequireFromString("0.92"),
		DateEffective:    dateEffective,
	}

	suite.mockRateService.On("CreateExchangeRate", mock.Anything, reqBody, creatorUserID).Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/exchange-rates", reqBody, creatorUserID)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ExchangeRateResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("USD", resp.FromCurrencyCode)
	suite.Equal("EUR", resp.ToCurrencyCode)
	suite.mockRateService.AssertExpectations(suite.T())
}

func (suite *ExchangeRateHandlerTestSuite) TestCreateExchangeRate_SameCurrencyPair() {
	creatorUserID := uuid.NewString()
	reqBody := dto.CreateExchangeRateRequest{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "USD",
		Rate:             decimal.NewFromInt(1),
		DateEffective:    time.Now(),
	}

	suite.mockRateService.On("CreateExchangeRate", mock.Anything, mock.Anything, creatorUserID).
		Return(nil, apperrors.NewValidationError("from and to currency must differ")).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/exchange-rates", reqBody, creatorUserID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRateService.AssertExpectations(suite.T())
}

func (suite *ExchangeRateHandlerTestSuite) TestGetExchangeRate_NotFound() {
	userID := uuid.NewString()

	suite.mockRateService.On("GetExchangeRate", mock.Anything, "USD", "VND").
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/exchange-rates/USD/VND", nil, userID)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockRateService.AssertExpectations(suite.T())
}

func (suite *ExchangeRateHandlerTestSuite) TestListExchangeRates_DefaultsApplied() {
	userID := uuid.NewString()
	rates := []domain.ExchangeRate{
		{ExchangeRateID: uuid.NewString(), FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Rate: decimal.RequireFromString("0.92"), DateEffective: time.Now()},
	}

	suite.mockRateService.On("ListExchangeRates",
		mock.Anything,
		mock.MatchedBy(func(p dto.ListExchangeRatesParams) bool {
			return p.Page == 1 && p.PageSize == 20 && p.From == nil && p.To == nil
		}),
	).Return(rates, 1, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/exchange-rates", nil, userID)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListExchangeRatesResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Rates, 1)
	suite.Equal(1, resp.Total)
	suite.Equal(1, resp.Page)
	suite.mockRateService.AssertExpectations(suite.T())
}

func (suite *ExchangeRateHandlerTestSuite) TestListExchangeRates_ZeroPageRejected() {
	userID := uuid.NewString()

	w := suite.doRequest(http.MethodGet, "/api/v1/exchange-rates?page=0", nil, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRateService.AssertNotCalled(suite.T(), "ListExchangeRates")
}

func (suite *ExchangeRateHandlerTestSuite) TestListExchangeRates_ZeroPageSizeRejected() {
	userID := uuid.NewString()

	w := suite.doRequest(http.MethodGet, "/api/v1/exchange-rates?pageSize=0", nil, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRateService.AssertNotCalled(suite.T(), "ListExchangeRates")
}

// --- Run Test Suite ---
func TestExchangeRateHandler(t *testing.T) {
	suite.Run(t, new(ExchangeRateHandlerTestSuite))
}
