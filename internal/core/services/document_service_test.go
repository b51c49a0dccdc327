package services_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/wanderplan/trip_pricing_app/internal/apperrors"
	"github.com/wanderplan/trip_pricing_app/internal/core/domain"
	portssvc "github.com/wanderplan/trip_pricing_app/internal/core/ports/services"
	"github.com/wanderplan/trip_pricing_app/internal/core/services"
	"github.com/wanderplan/trip_pricing_app/internal/dto"
)

// --- Mock DocumentRepository ---
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListDocuments(ctx context.Context, category *domain.DocumentCategory, itineraryID *string, limit, offset int) ([]domain.Document, int, error) {
	args := m.Called(ctx, category, itineraryID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Document), args.Int(1), args.Error(2)
}

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, document domain.Document) error {
	args := m.Called(ctx, document)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateDocument(ctx context.Context, document domain.Document) error {
	args := m.Called(ctx, document)
	return args.Error(0)
}

func (m *MockDocumentRepository) DeleteDocument(ctx context.Context, documentID string) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}

// --- Mock FileStorage ---
type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Save(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, reader, size, contentType)
	return args.Error(0)
}

func (m *MockFileStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockFileStorage) GetURL(ctx context.Context, key string) (string, time.Time, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// --- Test Suite ---
type DocumentServiceTestSuite struct {
	suite.Suite
	mockDocRepo       *MockDocumentRepository
	mockItineraryRepo *MockItineraryRepository
	mockStorage       *MockFileStorage
	service           portssvc.DocumentSvcFacade
}

func (suite *DocumentServiceTestSuite) SetupTest() {
	suite.mockDocRepo = new(MockDocumentRepository)
	suite.mockItineraryRepo = new(MockItineraryRepository)
	suite.mockStorage = new(MockFileStorage)
	suite.service = services.NewDocumentService(suite.mockDocRepo, suite.mockItineraryRepo, suite.mockStorage)
}

// --- Test Cases ---

func (suite *DocumentServiceTestSuite) TestUploadDocument_Success() {
	ctx := context.Background()
	uploaderID := uuid.NewString()
	form := dto.UploadDocumentForm{Title: "Hotel contract", Category: "CONTRACT"}
	content := strings.NewReader("pdf-bytes")

	suite.mockStorage.On("Save", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "documents/") && strings.HasSuffix(key, "/contract.pdf")
	}), content, int64(9), "application/pdf").Return(nil).Once()
	suite.mockDocRepo.On("SaveDocument", ctx, mock.MatchedBy(func(d domain.Document) bool {
		return d.Title == form.Title && d.Category == domain.DocContract && d.SizeBytes == 9 && d.CreatedBy == uploaderID
	})).Return(nil).Once()

	document, err := suite.service.UploadDocument(ctx, form, content, "contract.pdf", 9, "application/pdf", uploaderID)

	suite.Require().NoError(err)
	suite.Require().NotNil(document)
	suite.NotEmpty(document.DocumentID)
	suite.mockStorage.AssertExpectations(suite.T())
	suite.mockDocRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestUploadDocument_RollsBackObjectOnMetadataFailure() {
	ctx := context.Background()
	form := dto.UploadDocumentForm{Title: "Hotel contract", Category: "CONTRACT"}
	content := strings.NewReader("pdf-bytes")
	expectedErr := assert.AnError

	suite.mockStorage.On("Save", ctx, mock.AnythingOfType("string"), content, int64(9), "application/pdf").Return(nil).Once()
	suite.mockDocRepo.On("SaveDocument", ctx, mock.AnythingOfType("domain.Document")).Return(expectedErr).Once()
	suite.mockStorage.On("Delete", ctx, mock.AnythingOfType("string")).Return(nil).Once()

	document, err := suite.service.UploadDocument(ctx, form, content, "contract.pdf", 9, "application/pdf", uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(document)
	suite.ErrorIs(err, expectedErr)
	suite.mockStorage.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestUploadDocument_UnknownCategory() {
	ctx := context.Background()
	form := dto.UploadDocumentForm{Title: "x", Category: "RECEIPT"}

	document, err := suite.service.UploadDocument(ctx, form, strings.NewReader("x"), "x.pdf", 1, "application/pdf", uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(document)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockStorage.AssertNotCalled(suite.T(), "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestUploadDocument_UnknownItinerary() {
	ctx := context.Background()
	itineraryID := uuid.NewString()
	form := dto.UploadDocumentForm{Title: "x", Category: "INVOICE", ItineraryID: &itineraryID}

	suite.mockItineraryRepo.On("FindItineraryByID", ctx, itineraryID).Return(nil, apperrors.ErrNotFound).Once()

	document, err := suite.service.UploadDocument(ctx, form, strings.NewReader("x"), "x.pdf", 1, "application/pdf", uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(document)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DocumentServiceTestSuite) TestGetDownloadURL_PresignsStorageKey() {
	ctx := context.Background()
	documentID := uuid.NewString()
	expiresAt := time.Now().Add(5 * time.Minute)
	document := &domain.Document{DocumentID: documentID, StorageKey: "documents/" + documentID + "/contract.pdf"}

	suite.mockDocRepo.On("FindDocumentByID", ctx, documentID).Return(document, nil).Once()
	suite.mockStorage.On("GetURL", ctx, document.StorageKey).Return("https://signed.example/contract.pdf", expiresAt, nil).Once()

	resp, err := suite.service.GetDownloadURL(ctx, documentID)

	suite.Require().NoError(err)
	suite.Equal("https://signed.example/contract.pdf", resp.URL)
	suite.Equal(expiresAt, resp.ExpiresAt)
}

func (suite *DocumentServiceTestSuite) TestDeleteDocument_RemovesRowAndObject() {
	ctx := context.Background()
	documentID := uuid.NewString()
	document := &domain.Document{DocumentID: documentID, StorageKey: "documents/" + documentID + "/contract.pdf"}

	suite.mockDocRepo.On("FindDocumentByID", ctx, documentID).Return(document, nil).Once()
	suite.mockDocRepo.On("DeleteDocument", ctx, documentID).Return(nil).Once()
	suite.mockStorage.On("Delete", ctx, document.StorageKey).Return(nil).Once()

	err := suite.service.DeleteDocument(ctx, documentID, uuid.NewString())

	suite.Require().NoError(err)
	suite.mockDocRepo.AssertExpectations(suite.T())
	suite.mockStorage.AssertExpectations(suite.T())
}

func TestDocumentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentServiceTestSuite))
}
