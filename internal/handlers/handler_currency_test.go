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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/wanderplan/trip_pricing_app/internal/apperrors"
	"github.com/wanderplan/trip_pricing_app/internal/core/domain"
	portssvc "github.com/wanderplan/trip_pricing_app/internal/core/ports/services"
	"github.com/wanderplan/trip_pricing_app/internal/dto"
	"github.com/wanderplan/trip_pricing_app/internal/handlers"
	"github.com/wanderplan/trip_pricing_app/internal/middleware"
)

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}
func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}
func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}
func (m *MockCurrencyService) DeleteCurrency(ctx context.Context, currencyCode string, deleterUserID string) error {
	args := m.Called(ctx, currencyCode, deleterUserID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.CurrencySvcFacade = (*MockCurrencyService)(nil)

// --- Test Suite ---
type CurrencyHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockCurrencyService *MockCurrencyService
	jwtSecret           string
}

func (suite *CurrencyHandlerTestSuite) generateTestToken(userID string) string {
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

func (suite *CurrencyHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockCurrencyService = new(MockCurrencyService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterCurrencyRoutes(v1, suite.mockCurrencyService)
}

func (suite *CurrencyHandlerTestSuite) doRequest(method, url string, body any, userID string) *httptest.ResponseRecorder {
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

func (suite *CurrencyHandlerTestSuite) TestCreateCurrency_Success() {
	creatorUserID := uuid.NewString()
	reqBody := dto.CreateCurrencyRequest{
		CurrencyCode: "CHF",
		Symbol:       "Fr",
		Name:         "Swiss Franc",
		Precision:    2,
	}
	created := &domain.Currency{
		CurrencyCode: "CHF",
		Symbol:       "Fr",
		Name:         "Swiss Franc",
		Precision:    2,
		IsSystem:     false,
	}

	suite.mockCurrencyService.On("CreateCurrency", mock.Anything, reqBody, creatorUserID).
		Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/currencies", reqBody, creatorUserID)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.CurrencyResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("CHF", resp.CurrencyCode)
	suite.False(resp.IsSystem)
	suite.mockCurrencyService.AssertExpectations(suite.T())
}

func (suite *CurrencyHandlerTestSuite) TestCreateCurrency_Duplicate() {
	creatorUserID := uuid.NewString()
	reqBody := dto.CreateCurrencyRequest{
		CurrencyCode: "USD",
		Symbol:       "$",
		Name:         "US Dollar",
	}

	suite.mockCurrencyService.On("CreateCurrency", mock.Anything, reqBody, creatorUserID).
		Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/currencies", reqBody, creatorUserID)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockCurrencyService.AssertExpectations(suite.T())
}

func (suite *CurrencyHandlerTestSuite) TestCreateCurrency_LowercaseCodeRejected() {
	creatorUserID := uuid.NewString()
	body := map[string]any{
		"currencyCode": "chf",
		"symbol":       "Fr",
		"name":         "Swiss Franc",
	}

	w := suite.doRequest(http.MethodPost, "/api/v1/currencies", body, creatorUserID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockCurrencyService.AssertNotCalled(suite.T(), "CreateCurrency")
}

func (suite *CurrencyHandlerTestSuite) TestGetCurrencyByCode_NotFound() {
	userID := uuid.NewString()

	suite.mockCurrencyService.On("GetCurrencyByCode", mock.Anything, "XXX").
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/currencies/XXX", nil, userID)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockCurrencyService.AssertExpectations(suite.T())
}

func (suite *CurrencyHandlerTestSuite) TestGetCurrencyByCode_BadLength() {
	userID := uuid.NewString()

	w := suite.doRequest(http.MethodGet, "/api/v1/currencies/US", nil, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockCurrencyService.AssertNotCalled(suite.T(), "GetCurrencyByCode")
}

func (suite *CurrencyHandlerTestSuite) TestListCurrencies_SystemFirst() {
	userID := uuid.NewString()
	currencies := []domain.Currency{
		{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar", Precision: 2, IsSystem: true},
		{CurrencyCode: "VND", Symbol: "₫", Name: "Vietnamese Dong", Precision: 0, IsSystem: true},
		{CurrencyCode: "CHF", Symbol: "Fr", Name: "Swiss Franc", Precision: 2, IsSystem: false},
	}

	suite.mockCurrencyService.On("ListCurrencies", mock.Anything).
		Return(currencies, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/currencies", nil, userID)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.CurrencyResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 3)
	suite.Equal("USD", resp[0].CurrencyCode)
	suite.True(resp[0].IsSystem)
	suite.mockCurrencyService.AssertExpectations(suite.T())
}

func (suite *CurrencyHandlerTestSuite) TestDeleteCurrency_SystemCurrencyForbidden() {
	userID := uuid.NewString()

	suite.mockCurrencyService.On("DeleteCurrency", mock.Anything, "USD", userID).
		Return(apperrors.NewForbiddenError("system currencies cannot be deleted")).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/currencies/USD", nil, userID)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockCurrencyService.AssertExpectations(suite.T())
}

func (suite *CurrencyHandlerTestSuite) TestDeleteCurrency_StillReferenced() {
	userID := uuid.NewString()

	suite.mockCurrencyService.On("DeleteCurrency", mock.Anything, "CHF", userID).
		Return(apperrors.NewConflictError("currency CHF is still referenced")).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/currencies/CHF", nil, userID)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockCurrencyService.AssertExpectations(suite.T())
}

func (suite *CurrencyHandlerTestSuite) TestDeleteCurrency_Success() {
	userID := uuid.NewString()

	suite.mockCurrencyService.On("DeleteCurrency", mock.Anything, "CHF", userID).
		Return(nil).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/currencies/CHF", nil, userID)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockCurrencyService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestCurrencyHandler(t *testing.T) {
	suite.Run(t, new(CurrencyHandlerTestSuite))
}
