package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/wanderplan/trip_pricing_app/internal/apperrors"
	"github.com/wanderplan/trip_pricing_app/internal/core/domain"
	portssvc "github.com/wanderplan/trip_pricing_app/internal/core/ports/services"
	"github.com/wanderplan/trip_pricing_app/internal/core/services"
	"github.com/wanderplan/trip_pricing_app/internal/dto"
)

// --- Mock ItineraryRepository ---
type MockItineraryRepository struct {
	mock.Mock
}

func (m *MockItineraryRepository) FindItineraryByID(ctx context.Context, itineraryID string) (*domain.Itinerary, error) {
	args := m.Called(ctx, itineraryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Itinerary), args.Error(1)
}

func (m *MockItineraryRepository) ListItineraries(ctx context.Context, status *domain.ItineraryStatus, limit int, pageToken string) ([]domain.Itinerary, string, error) {
	args := m.Called(ctx, status, limit, pageToken)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.Itinerary), args.String(1), args.Error(2)
}

func (m *MockItineraryRepository) SaveItinerary(ctx context.Context, itinerary domain.Itinerary) error {
	args := m.Called(ctx, itinerary)
	return args.Error(0)
}

func (m *MockItineraryRepository) ReplaceItinerary(ctx context.Context, itinerary domain.Itinerary) error {
	args := m.Called(ctx, itinerary)
	return args.Error(0)
}

func (m *MockItineraryRepository) UpdateItineraryStatus(ctx context.Context, itineraryID string, status domain.ItineraryStatus, updatedAt time.Time, updatedBy string) error {
	args := m.Called(ctx, itineraryID, status, updatedAt, updatedBy)
	return args.Error(0)
}

func (m *MockItineraryRepository) DeleteItinerary(ctx context.Context, itineraryID string) error {
	args := m.Called(ctx, itineraryID)
	return args.Error(0)
}

func (m *MockItineraryRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockItineraryRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockItineraryRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock PriceRecordRepository ---
type MockPriceRecordRepository struct {
	mock.Mock
}

func (m *MockPriceRecordRepository) FindPriceRecordByID(ctx context.Context, priceID string) (*domain.PriceRecord, error) {
	args := m.Called(ctx, priceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceRecord), args.Error(1)
}

func (m *MockPriceRecordRepository) FindPriceRecordsByIDs(ctx context.Context, priceIDs []string) (map[string]domain.PriceRecord, error) {
	args := m.Called(ctx, priceIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.PriceRecord), args.Error(1)
}

func (m *MockPriceRecordRepository) ListPriceRecords(ctx context.Context, provinceID *string, category *domain.ServiceCategory, activeOnly bool, limit, offset int) ([]domain.PriceRecord, int, error) {
	args := m.Called(ctx, provinceID, category, activeOnly, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.PriceRecord), args.Int(1), args.Error(2)
}

func (m *MockPriceRecordRepository) SavePriceRecord(ctx context.Context, record domain.PriceRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockPriceRecordRepository) UpdatePriceRecord(ctx context.Context, record domain.PriceRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockPriceRecordRepository) DeactivatePriceRecord(ctx context.Context, priceID string, deactivatedAt time.Time, deactivatedBy string) error {
	args := m.Called(ctx, priceID, deactivatedAt, deactivatedBy)
	return args.Error(0)
}

// --- Mock QuoteSender ---
type MockQuoteSender struct {
	mock.Mock
}

func (m *MockQuoteSender) SendQuote(ctx context.Context, toAddress, clientName, itineraryName string, summary *domain.CostSummary) error {
	args := m.Called(ctx, toAddress, clientName, itineraryName, summary)
	return args.Error(0)
}

// --- Test Suite ---
type ItineraryServiceTestSuite struct {
	suite.Suite
	mockItineraryRepo *MockItineraryRepository
	mockPriceRepo     *MockPriceRecordRepository
	mockCurrencyRepo  *MockCurrencyRepository
	mockRateRepo      *MockExchangeRateRepository
	mockQuoteSender   *MockQuoteSender
	service           portssvc.ItinerarySvcFacade
}

func (suite *ItineraryServiceTestSuite) SetupTest() {
	suite.mockItineraryRepo = new(MockItineraryRepository)
	suite.mockPriceRepo = new(MockPriceRecordRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockQuoteSender = new(MockQuoteSender)

	currencyService := services.NewCurrencyService(suite.mockCurrencyRepo)
	rateService := services.NewExchangeRateService(suite.mockRateRepo, currencyService)
	suite.service = services.NewItineraryService(suite.mockItineraryRepo, suite.mockPriceRepo, currencyService, rateService, suite.mockQuoteSender)
}

func (suite *ItineraryServiceTestSuite) expectCurrency(code string, precision int16) {
	suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, code).
		Return(&domain.Currency{CurrencyCode: code, Precision: precision}, nil)
}

// --- Test Cases ---

func (suite *ItineraryServiceTestSuite) TestCreateItinerary_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	priceID := uuid.NewString()
	req := dto.CreateItineraryRequest{
		Name:            "Northern Highlights",
		ClientName:      "Alex Chen",
		StartDate:       time.Now(),
		DisplayCurrency: "USD",
		Days: []dto.CreateItineraryDayRequest{
			{DayNumber: 1, Title: "Arrival", Items: []dto.CreateItineraryItemRequest{
				{PriceID: priceID, Quantity: decimal.NewFromInt(2)},
			}},
			{DayNumber: 2, Title: "City tour"},
		},
	}

	suite.expectCurrency("USD", 2)
	suite.mockPriceRepo.On("FindPriceRecordsByIDs", ctx, []string{priceID}).
		Return(map[string]domain.PriceRecord{priceID: {PriceID: priceID, IsActive: true}}, nil).Once()
	suite.mockItineraryRepo.On("SaveItinerary", ctx, mock.MatchedBy(func(it domain.Itinerary) bool {
		return it.Status == domain.StatusDraft && len(it.Days) == 2 && it.Days[0].Items[0].ItemID != ""
	})).Return(nil).Once()

	itinerary, err := suite.service.CreateItinerary(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(itinerary)
	suite.Equal(domain.StatusDraft, itinerary.Status)
	suite.Equal(creatorUserID, itinerary.CreatedBy)
	suite.mockItineraryRepo.AssertExpectations(suite.T())
}

func (suite *ItineraryServiceTestSuite) TestCreateItinerary_NonDenseDayNumbers() {
	ctx := context.Background()
	req := dto.CreateItineraryRequest{
		Name:            "Broken plan",
		StartDate:       time.Now(),
		DisplayCurrency: "USD",
		Days: []dto.CreateItineraryDayRequest{
			{DayNumber: 1}, {DayNumber: 3},
		},
	}

	suite.expectCurrency("USD", 2)

	itinerary, err := suite.service.CreateItinerary(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(itinerary)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockItineraryRepo.AssertNotCalled(suite.T(), "SaveItinerary", mock.Anything, mock.Anything)
}

func (suite *ItineraryServiceTestSuite) TestCreateItinerary_InactivePriceRecord() {
	ctx := context.Background()
	priceID := uuid.NewString()
	req := dto.CreateItineraryRequest{
		Name:            "Plan",
		StartDate:       time.Now(),
		DisplayCurrency: "USD",
		Days: []dto.CreateItineraryDayRequest{
			{DayNumber: 1, Items: []dto.CreateItineraryItemRequest{
				{PriceID: priceID, Quantity: decimal.NewFromInt(1)},
			}},
		},
	}

	suite.expectCurrency("USD", 2)
	suite.mockPriceRepo.On("FindPriceRecordsByIDs", ctx, []string{priceID}).
		Return(map[string]domain.PriceRecord{priceID: {PriceID: priceID, IsActive: false}}, nil).Once()

	itinerary, err := suite.service.CreateItinerary(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(itinerary)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ItineraryServiceTestSuite) TestUpdateItinerary_ArchivedForbidden() {
	ctx := context.Background()
	itineraryID := uuid.NewString()
	archived := &domain.Itinerary{ItineraryID: itineraryID, Status: domain.StatusArchived}

	suite.mockItineraryRepo.On("FindItineraryByID", ctx, itineraryID).Return(archived, nil).Once()

	updated, err := suite.service.UpdateItinerary(ctx, itineraryID, dto.UpdateItineraryRequest{
		Name: "x", StartDate: time.Now(), DisplayCurrency: "USD",
		Days: []dto.CreateItineraryDayRequest{{DayNumber: 1}},
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ItineraryServiceTestSuite) TestUpdateItineraryStatus_ValidTransition() {
	ctx := context.Background()
	itineraryID := uuid.NewString()
	draft := &domain.Itinerary{ItineraryID: itineraryID, Status: domain.StatusDraft}

	suite.mockItineraryRepo.On("FindItineraryByID", ctx, itineraryID).Return(draft, nil).Once()
	suite.mockItineraryRepo.On("UpdateItineraryStatus", ctx, itineraryID, domain.StatusConfirmed, mock.AnythingOfType("time.Time"), mock.AnythingOfType("string")).Return(nil).Once()

	updated, err := suite.service.UpdateItineraryStatus(ctx, itineraryID, dto.UpdateItineraryStatusRequest{Status: "CONFIRMED"}, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.StatusConfirmed, updated.Status)
	suite.mockItineraryRepo.AssertExpectations(suite.T())
}

func (suite *ItineraryServiceTestSuite) TestUpdateItineraryStatus_SkippingStateRejected() {
	ctx := context.Background()
	itineraryID := uuid.NewString()
	draft := &domain.Itinerary{ItineraryID: itineraryID, Status: domain.StatusDraft}

	suite.mockItineraryRepo.On("FindItineraryByID", ctx, itineraryID).Return(draft, nil).Once()

	updated, err := suite.service.UpdateItineraryStatus(ctx, itineraryID, dto.UpdateItineraryStatusRequest{Status: "ARCHIVED"}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockItineraryRepo.AssertNotCalled(suite.T(), "UpdateItineraryStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ItineraryServiceTestSuite) TestDeleteItinerary_OnlyDraft() {
	ctx := context.Background()
	itineraryID := uuid.NewString()
	confirmed := &domain.Itinerary{ItineraryID: itineraryID, Status: domain.StatusConfirmed}

	suite.mockItineraryRepo.On("FindItineraryByID", ctx, itineraryID).Return(confirmed, nil).Once()

	err := suite.service.DeleteItinerary(ctx, itineraryID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockItineraryRepo.AssertNotCalled(suite.T(), "DeleteItinerary", mock.Anything, mock.Anything)
}

func (suite *ItineraryServiceTestSuite) TestGetCostSummary_ConvertsAndTotals() {
	ctx := context.Background()
	itineraryID := uuid.NewString()
	priceUSD := uuid.NewString()
	priceVND := uuid.NewString()

	itinerary := &domain.Itinerary{
		ItineraryID:     itineraryID,
		DisplayCurrency: "USD",
		Status:          domain.StatusDraft,
		Days: []domain.ItineraryDay{
			{DayNumber: 1, Title: "Arrival", Items: []domain.ItineraryItem{
				{ItemID: "i1", PriceID: priceUSD, Quantity: decimal.NewFromInt(2)},
				{ItemID: "i2", PriceID: priceVND, Quantity: decimal.NewFromInt(1)},
			}},
		},
	}

	records := map[string]domain.PriceRecord{
		priceUSD: {PriceID: priceUSD, ServiceName: "Hotel night", Category: domain.CategoryHotel, UnitPrice: decimal.NewFromInt(50), CurrencyCode: "USD", IsActive: true},
		priceVND: {PriceID: priceVND, ServiceName: "Street food tour", Category: domain.CategoryMeal, UnitPrice: decimal.NewFromInt(1000000), CurrencyCode: "VND", IsActive: true},
	}

	suite.mockItineraryRepo.On("FindItineraryByID", ctx, itineraryID).Return(itinerary, nil).Once()
	suite.expectCurrency("USD", 2)
	suite.mockPriceRepo.On("FindPriceRecordsByIDs", ctx, []string{priceUSD, priceVND}).Return(records, nil).Once()
	suite.mockRateRepo.On("FindExchangeRate", mock.Anything, "VND", "USD").
		Return(&domain.ExchangeRate{Rate: decimal.RequireFromString("0.00004")}, nil).Once()

	summary, err := suite.service.GetCostSummary(ctx, itineraryID)

	suite.Require().NoError(err)
	suite.Require().NotNil(summary)
	// 2 x 50 USD + 1,000,000 VND x 0.00004 = 100 + 40 = 140 USD
	suite.True(summary.GrandTotal.Equal(decimal.NewFromInt(140)), "got %s", summary.GrandTotal)
	suite.Len(summary.Lines, 2)
	suite.Len(summary.Days, 1)
}

func (suite *ItineraryServiceTestSuite) TestGetCostSummary_MissingRateIsValidationError() {
	ctx := context.Background()
	itineraryID := uuid.NewString()
	priceID := uuid.NewString()

	itinerary := &domain.Itinerary{
		ItineraryID:     itineraryID,
		DisplayCurrency: "USD",
		Days: []domain.ItineraryDay{
			{DayNumber: 1, Items: []domain.ItineraryItem{
				{ItemID: "i1", PriceID: priceID, Quantity: decimal.NewFromInt(1)},
			}},
		},
	}

	suite.mockItineraryRepo.On("FindItineraryByID", ctx, itineraryID).Return(itinerary, nil).Once()
	suite.expectCurrency("USD", 2)
	suite.mockPriceRepo.On("FindPriceRecordsByIDs", ctx, []string{priceID}).
		Return(map[string]domain.PriceRecord{priceID: {PriceID: priceID, UnitPrice: decimal.NewFromInt(10), CurrencyCode: "THB", IsActive: true}}, nil).Once()
	suite.mockRateRepo.On("FindExchangeRate", mock.Anything, "THB", "USD").
		Return(nil, apperrors.ErrNotFound).Once()

	summary, err := suite.service.GetCostSummary(ctx, itineraryID)

	suite.Require().Error(err)
	suite.Nil(summary)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ItineraryServiceTestSuite) TestEmailQuote_SendsSummary() {
	ctx := context.Background()
	itineraryID := uuid.NewString()

	itinerary := &domain.Itinerary{
		ItineraryID:     itineraryID,
		Name:            "Coastal Loop",
		ClientName:      "Alex Chen",
		DisplayCurrency: "USD",
		Days:            []domain.ItineraryDay{{DayNumber: 1, Title: "Arrival"}},
	}

	suite.mockItineraryRepo.On("FindItineraryByID", ctx, itineraryID).Return(itinerary, nil).Twice()
	suite.expectCurrency("USD", 2)
	suite.mockQuoteSender.On("SendQuote", ctx, "client@example.com", "Alex Chen", "Coastal Loop", mock.AnythingOfType("*domain.CostSummary")).Return(nil).Once()

	err := suite.service.EmailQuote(ctx, itineraryID, "client@example.com")

	suite.Require().NoError(err)
	suite.mockQuoteSender.AssertExpectations(suite.T())
}

func TestItineraryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ItineraryServiceTestSuite))
}
