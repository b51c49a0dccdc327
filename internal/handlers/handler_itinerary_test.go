package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
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

// --- Mock ItineraryService ---
type MockItineraryService struct {
	mock.Mock
}

func (m *MockItineraryService) CreateItinerary(ctx context.Context, req dto.CreateItineraryRequest, creatorUserID string) (*domain.Itinerary, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Itinerary), args.Error(1)
}
func (m *MockItineraryService) GetItineraryByID(ctx context.Context, itineraryID string) (*domain.Itinerary, error) {
	args := m.Called(ctx, itineraryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Itinerary), args.Error(1)
}
func (m *MockItineraryService) ListItineraries(ctx context.Context, params dto.ListItinerariesParams) ([]domain.Itinerary, string, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]domain.Itinerary), args.String(1), args.Error(2)
}
func (m *MockItineraryService) UpdateItinerary(ctx context.Context, itineraryID string, req dto.UpdateItineraryRequest, updaterUserID string) (*domain.Itinerary, error) {
	args := m.Called(ctx, itineraryID, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Itinerary), args.Error(1)
}
func (m *MockItineraryService) UpdateItineraryStatus(ctx context.Context, itineraryID string, req dto.UpdateItineraryStatusRequest, updaterUserID string) (*domain.Itinerary, error) {
	args := m.Called(ctx, itineraryID, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Itinerary), args.Error(1)
}
func (m *MockItineraryService) DeleteItinerary(ctx context.Context, itineraryID string, deleterUserID string) error {
	args := m.Called(ctx, itineraryID, deleterUserID)
	return args.Error(0)
}
func (m *MockItineraryService) GetCostSummary(ctx context.Context, itineraryID string) (*domain.CostSummary, error) {
	args := m.Called(ctx, itineraryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostSummary), args.Error(1)
}
func (m *MockItineraryService) EmailQuote(ctx context.Context, itineraryID string, toAddress string) error {
	args := m.Called(ctx, itineraryID, toAddress)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.ItinerarySvcFacade = (*MockItineraryService)(nil)

// --- Test Suite ---
type ItineraryHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockItineraryService *MockItineraryService
	jwtSecret            string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *ItineraryHandlerTestSuite) generateTestToken(userID string) string {
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

func (suite *ItineraryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockItineraryService = new(MockItineraryService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterItineraryRoutes(v1, suite.mockItineraryService)
}

// doRequest serves an authenticated JSON request and returns the recorder.
func (suite *ItineraryHandlerTestSuite) doRequest(method, url string, body any, userID string) *httptest.ResponseRecorder {
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

func (suite *ItineraryHandlerTestSuite) TestCreateItinerary_Success() {
	creatorUserID := uuid.NewString()
	priceID := uuid.NewString()
	startDate := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	reqBody := dto.CreateItineraryRequest{
		Name:            "Hanoi and Ha Long Bay",
		ClientName:      "Nguyen Tours",
		StartDate:       startDate,
		DisplayCurrency: "USD",
		Days: []dto.CreateItineraryDayRequest{
			{
				DayNumber: 1,
				Title:     "Arrival",
				Items: []dto.CreateItineraryItemRequest{
					{PriceID: priceID, Quantity: decimal.NewFromInt(2)},
				},
			},
		},
	}

	created := &domain.Itinerary{
		ItineraryID:     uuid.NewString(),
		Name:            reqBody.Name,
		ClientName:      reqBody.ClientName,
		StartDate:       startDate,
		DisplayCurrency: "USD",
		Status:          domain.StatusDraft,
		Days: []domain.ItineraryDay{
			{DayNumber: 1, Title: "Arrival", Items: []domain.ItineraryItem{
				{ItemID: uuid.NewString(), PriceID: priceID, Quantity: decimal.NewFromInt(2)},
			}},
		},
	}

	suite.mockItineraryService.On("CreateItinerary",
		mock.Anything,
		mock.MatchedBy(func(r dto.CreateItineraryRequest) bool {
			return r.Name == reqBody.Name && len(r.Days) == 1
		}),
		creatorUserID,
	).Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/itineraries", reqBody, creatorUserID)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ItineraryResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.ItineraryID, resp.ItineraryID)
	suite.Equal("DRAFT", resp.Status)
	suite.Len(resp.Days, 1)
	suite.mockItineraryService.AssertExpectations(suite.T())
}

func (suite *ItineraryHandlerTestSuite) TestCreateItinerary_MissingDays() {
	creatorUserID := uuid.NewString()

	body := map[string]any{
		"name":            "Empty plan",
		"startDate":       "2026-09-14T00:00:00Z",
		"displayCurrency": "USD",
		"days":            []any{},
	}

	w := suite.doRequest(http.MethodPost, "/api/v1/itineraries", body, creatorUserID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockItineraryService.AssertNotCalled(suite.T(), "CreateItinerary")
}

func (suite *ItineraryHandlerTestSuite) TestGetItineraryByID_NotFound() {
	userID := uuid.NewString()
	itineraryID := uuid.NewString()

	suite.mockItineraryService.On("GetItineraryByID", mock.Anything, itineraryID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/itineraries/"+itineraryID, nil, userID)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockItineraryService.AssertExpectations(suite.T())
}

func (suite *ItineraryHandlerTestSuite) TestListItineraries_PassesCursorParams() {
	userID := uuid.NewString()
	nextToken := "b3BhcXVl"

	headers := []domain.Itinerary{
		{ItineraryID: uuid.NewString(), Name: "Trip A", DisplayCurrency: "USD", Status: domain.StatusDraft},
		{ItineraryID: uuid.NewString(), Name: "Trip B", DisplayCurrency: "EUR", Status: domain.StatusConfirmed},
	}

	suite.mockItineraryService.On("ListItineraries",
		mock.Anything,
		mock.MatchedBy(func(p dto.ListItinerariesParams) bool {
			return p.Limit == 2 && p.Status != nil && *p.Status == "DRAFT" && p.PageToken == "abc"
		}),
	).Return(headers, nextToken, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/itineraries?limit=2&status=DRAFT&pageToken=abc", nil, userID)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListItinerariesResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Itineraries, 2)
	suite.Equal(nextToken, resp.NextPageToken)
	suite.mockItineraryService.AssertExpectations(suite.T())
}

func (suite *ItineraryHandlerTestSuite) TestListItineraries_ZeroLimitRejected() {
	userID := uuid.NewString()

	w := suite.doRequest(http.MethodGet, "/api/v1/itineraries?limit=0", nil, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockItineraryService.AssertNotCalled(suite.T(), "ListItineraries")
}

func (suite *ItineraryHandlerTestSuite) TestUpdateItineraryStatus_InvalidTransition() {
	userID := uuid.NewString()
	itineraryID := uuid.NewString()

	suite.mockItineraryService.On("UpdateItineraryStatus",
		mock.Anything,
		itineraryID,
		dto.UpdateItineraryStatusRequest{Status: "CONFIRMED"},
		userID,
	).Return(nil, apperrors.NewConflictError("cannot move itinerary from ARCHIVED to CONFIRMED")).Once()

	url := fmt.Sprintf("/api/v1/itineraries/%s/status", itineraryID)
	w := suite.doRequest(http.MethodPatch, url, dto.UpdateItineraryStatusRequest{Status: "CONFIRMED"}, userID)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockItineraryService.AssertExpectations(suite.T())
}

func (suite *ItineraryHandlerTestSuite) TestDeleteItinerary_NotDraft() {
	userID := uuid.NewString()
	itineraryID := uuid.NewString()

	suite.mockItineraryService.On("DeleteItinerary", mock.Anything, itineraryID, userID).
		Return(apperrors.NewConflictError("only draft itineraries can be deleted")).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/itineraries/"+itineraryID, nil, userID)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockItineraryService.AssertExpectations(suite.T())
}

func (suite *ItineraryHandlerTestSuite) TestGetCostSummary_Success() {
	userID := uuid.NewString()
	itineraryID := uuid.NewString()

	summary := &domain.CostSummary{
		ItineraryID:     itineraryID,
		DisplayCurrency: "USD",
		Lines: []domain.CostLine{
			{
				DayNumber:      1,
				ItemID:         uuid.NewString(),
				ServiceName:    "Harbor cruise",
				Category:       domain.CategoryActivity,
				UnitPrice:      decimal.NewFromInt(120),
				SourceCurrency: "USD",
				Quantity:       decimal.NewFromInt(2),
				LineTotal:      decimal.NewFromInt(240),
			},
		},
		Days:       []domain.DayCost{{DayNumber: 1, Subtotal: decimal.NewFromInt(240)}},
		GrandTotal: decimal.NewFromInt(240),
	}

	suite.mockItineraryService.On("GetCostSummary", mock.Anything, itineraryID).
		Return(summary, nil).Once()

	url := fmt.Sprintf("/api/v1/itineraries/%s/cost-summary", itineraryID)
	w := suite.doRequest(http.MethodGet, url, nil, userID)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.CostSummaryResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(itineraryID, resp.ItineraryID)
	suite.True(resp.GrandTotal.Equal(decimal.NewFromInt(240)))
	suite.Len(resp.Lines, 1)
	suite.mockItineraryService.AssertExpectations(suite.T())
}

func (suite *ItineraryHandlerTestSuite) TestGetCostSummary_MissingRate() {
	userID := uuid.NewString()
	itineraryID := uuid.NewString()

	suite.mockItineraryService.On("GetCostSummary", mock.Anything, itineraryID).
		Return(nil, apperrors.NewValidationError("no exchange rate from VND to USD")).Once()

	url := fmt.Sprintf("/api/v1/itineraries/%s/cost-summary", itineraryID)
	w := suite.doRequest(http.MethodGet, url, nil, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockItineraryService.AssertExpectations(suite.T())
}

func (suite *ItineraryHandlerTestSuite) TestEmailQuote_Accepted() {
	userID := uuid.NewString()
	itineraryID := uuid.NewString()

	suite.mockItineraryService.On("EmailQuote", mock.Anything, itineraryID, "client@example.com").
		Return(nil).Once()

	url := fmt.Sprintf("/api/v1/itineraries/%s/quote", itineraryID)
	w := suite.doRequest(http.MethodPost, url, dto.EmailQuoteRequest{Email: "client@example.com"}, userID)

	suite.Equal(http.StatusAccepted, w.Code)
	suite.mockItineraryService.AssertExpectations(suite.T())
}

func (suite *ItineraryHandlerTestSuite) TestEmailQuote_MailerNotConfigured() {
	userID := uuid.NewString()
	itineraryID := uuid.NewString()

	suite.mockItineraryService.On("EmailQuote", mock.Anything, itineraryID, "client@example.com").
		Return(apperrors.NewAppError(http.StatusServiceUnavailable, "email delivery is not configured", nil)).Once()

	url := fmt.Sprintf("/api/v1/itineraries/%s/quote", itineraryID)
	w := suite.doRequest(http.MethodPost, url, dto.EmailQuoteRequest{Email: "client@example.com"}, userID)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.mockItineraryService.AssertExpectations(suite.T())
}

func (suite *ItineraryHandlerTestSuite) TestCreateItinerary_NoToken() {
	reqBody := dto.CreateItineraryRequest{
		Name:            "Trip",
		StartDate:       time.Now(),
		DisplayCurrency: "USD",
		Days:            []dto.CreateItineraryDayRequest{{DayNumber: 1}},
	}
	raw, _ := json.Marshal(reqBody)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/itineraries", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockItineraryService.AssertNotCalled(suite.T(), "CreateItinerary")
}

// --- Run Test Suite ---
func TestItineraryHandler(t *testing.T) {
	suite.Run(t, new(ItineraryHandlerTestSuite))
}
