package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wanderplan/trip_pricing_app/internal/apperrors"
	"github.com/wanderplan/trip_pricing_app/internal/core/domain"
	portsrepo "github.com/wanderplan/trip_pricing_app/internal/core/ports/repositories"
	portssvc "github.com/wanderplan/trip_pricing_app/internal/core/ports/services"
	"github.com/wanderplan/trip_pricing_app/internal/dto"
)

// pricingService provides business logic for service price records.
type pricingService struct {
	BaseService
	priceRepo       portsrepo.PriceRecordRepositoryFacade
	provinceService portssvc.ProvinceReaderSvc
	currencyService portssvc.CurrencyReaderSvc
}

var _ portssvc.PricingSvcFacade = (*pricingService)(nil)

// NewPricingService creates a new pricing service.
func NewPricingService(
	priceRepo portsrepo.PriceRecordRepositoryFacade,
	provinceService portssvc.ProvinceReaderSvc,
	currencyService portssvc.CurrencyReaderSvc,
) portssvc.PricingSvcFacade {
	return &pricingService{
		priceRepo:       priceRepo,
		provinceService: provinceService,
		currencyService: currencyService,
	}
}

// CreatePriceRecord validates references and persists a new price record.
func (s *pricingService) CreatePriceRecord(ctx context.Context, req dto.CreatePriceRecordRequest, creatorUserID string) (*domain.PriceRecord, error) {
	category := domain.ServiceCategory(req.Category)
	if !domain.ValidServiceCategory(category) {
		return nil, fmt.Errorf("%w: unknown service category '%s'", apperrors.ErrValidation, req.Category)
	}
	if req.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit price must not be negative", apperrors.ErrValidation)
	}
	if req.SecondaryPrice != nil && req.SecondaryPrice.IsNegative() {
		return nil, fmt.Errorf("%w: secondary price must not be negative", apperrors.ErrValidation)
	}

	province, err := s.provinceService.GetProvinceByID(ctx, req.ProvinceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: province '%s' not found", apperrors.ErrValidation, req.ProvinceID)
		}
		return nil, fmt.Errorf("failed to validate province '%s': %w", req.ProvinceID, err)
	}
	if !province.IsActive {
		return nil, fmt.Errorf("%w: province '%s' is inactive", apperrors.ErrValidation, req.ProvinceID)
	}

	if _, err := s.currencyService.GetCurrencyByCode(ctx, req.CurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency code '%s' not found", apperrors.ErrValidation, req.CurrencyCode)
		}
		return nil, fmt.Errorf("failed to validate currency '%s': %w", req.CurrencyCode, err)
	}

	now := time.Now()

	record := domain.PriceRecord{
		PriceID:         uuid.NewString(),
		ProvinceID:      req.ProvinceID,
		Category:        category,
		ServiceName:     req.ServiceName,
		UnitPrice:       req.UnitPrice,
		SecondaryPrice:  req.SecondaryPrice,
		CurrencyCode:    req.CurrencyCode,
		UnitDescription: req.UnitDescription,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.priceRepo.SavePriceRecord(ctx, record); err != nil {
		s.LogError(ctx, err, "Failed to create price record", "service_name", req.ServiceName)
		return nil, fmt.Errorf("failed to create price record in service: %w", err)
	}

	return &record, nil
}

// GetPriceRecordByID retrieves a specific price record by its ID.
func (s *pricingService) GetPriceRecordByID(ctx context.Context, priceID string) (*domain.PriceRecord, error) {
	record, err := s.priceRepo.FindPriceRecordByID(ctx, priceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get price record by ID in service: %w", err)
	}
	return record, nil
}

// ListPriceRecords retrieves price records per the list parameters.
func (s *pricingService) ListPriceRecords(ctx context.Context, params dto.ListPriceRecordsParams) ([]domain.PriceRecord, int, error) {
	var category *domain.ServiceCategory
	if params.Category != nil {
		c := domain.ServiceCategory(*params.Category)
		category = &c
	}

	records, total, err := s.priceRepo.ListPriceRecords(ctx, params.ProvinceID, category, params.ActiveOnly, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list price records in service: %w", err)
	}
	if records == nil {
		records = []domain.PriceRecord{}
	}
	return records, total, nil
}

// UpdatePriceRecord updates an existing price record. Province and
// category are fixed at creation; prices, names and currency may change.
func (s *pricingService) UpdatePriceRecord(ctx context.Context, priceID string, req dto.UpdatePriceRecordRequest, updaterUserID string) (*domain.PriceRecord, error) {
	record, err := s.priceRepo.FindPriceRecordByID(ctx, priceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find price record for update: %w", err)
	}

	if req.ServiceName != nil {
		record.ServiceName = *req.ServiceName
	}
	if req.UnitPrice != nil {
		if req.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: unit price must not be negative", apperrors.ErrValidation)
		}
		record.UnitPrice = *req.UnitPrice
	}
	if req.SecondaryPrice != nil {
		if req.SecondaryPrice.IsNegative() {
			return nil, fmt.Errorf("%w: secondary price must not be negative", apperrors.ErrValidation)
		}
		record.SecondaryPrice = req.SecondaryPrice
	}
	if req.CurrencyCode != nil {
		if _, err := s.currencyService.GetCurrencyByCode(ctx, *req.CurrencyCode); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: currency code '%s' not found", apperrors.ErrValidation, *req.CurrencyCode)
			}
			return nil, fmt.Errorf("failed to validate currency '%s': %w", *req.CurrencyCode, err)
		}
		record.CurrencyCode = *req.CurrencyCode
	}
	if req.UnitDescription != nil {
		record.UnitDescription = *req.UnitDescription
	}
	record.LastUpdatedAt = time.Now()
	record.LastUpdatedBy = updaterUserID

	if err := s.priceRepo.UpdatePriceRecord(ctx, *record); err != nil {
		s.LogError(ctx, err, "Failed to update price record", "price_id", priceID)
		return nil, fmt.Errorf("failed to update price record in service: %w", err)
	}

	return record, nil
}

// DeactivatePriceRecord soft deletes a price record. Confirmed
// itineraries keep referencing it; new itinerary items cannot.
func (s *pricingService) DeactivatePriceRecord(ctx context.Context, priceID string, deleterUserID string) error {
	if _, err := s.priceRepo.FindPriceRecordByID(ctx, priceID); err != nil {
		return fmt.Errorf("failed to find price record for deactivation: %w", err)
	}

	if err := s.priceRepo.DeactivatePriceRecord(ctx, priceID, time.Now(), deleterUserID); err != nil {
		s.LogError(ctx, err, "Failed to deactivate price record", "price_id", priceID)
		return fmt.Errorf("failed to deactivate price record in service: %w", err)
	}

	s.LogInfo(ctx, "Price record deactivated", "price_id", priceID, "deleted_by", deleterUserID)
	return nil
}
