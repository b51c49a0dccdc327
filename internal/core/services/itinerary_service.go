package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wanderplan/trip_pricing_app/internal/apperrors"
	"github.com/wanderplan/trip_pricing_app/internal/core/domain"
	portsrepo "github.com/wanderplan/trip_pricing_app/internal/core/ports/repositories"
	portssvc "github.com/wanderplan/trip_pricing_app/internal/core/ports/services"
	"github.com/wanderplan/trip_pricing_app/internal/dto"
	"github.com/wanderplan/trip_pricing_app/internal/utils/costing"
	"github.com/wanderplan/trip_pricing_app/internal/utils/pagination"
)

// itineraryService provides business logic for itineraries and their
// derived cost summaries.
type itineraryService struct {
	BaseService
	itineraryRepo   portsrepo.ItineraryRepositoryWithTx
	priceRepo       portsrepo.PriceRecordRepositoryFacade
	currencyService portssvc.CurrencyReaderSvc
	rateService     portssvc.ExchangeRateReaderSvc
	quoteSender     portssvc.QuoteSender
}

var _ portssvc.ItinerarySvcFacade = (*itineraryService)(nil)

// NewItineraryService creates a new itinerary service. quoteSender may be
// nil when outbound email is not configured.
func NewItineraryService(
	itineraryRepo portsrepo.ItineraryRepositoryWithTx,
	priceRepo portsrepo.PriceRecordRepositoryFacade,
	currencyService portssvc.CurrencyReaderSvc,
	rateService portssvc.ExchangeRateReaderSvc,
	quoteSender portssvc.QuoteSender,
) portssvc.ItinerarySvcFacade {
	return &itineraryService{
		itineraryRepo:   itineraryRepo,
		priceRepo:       priceRepo,
		currencyService: currencyService,
		rateService:     rateService,
		quoteSender:     quoteSender,
	}
}

// buildDays converts the request day set into domain days with fresh item
// IDs, after validating the structure and every price reference.
func (s *itineraryService) buildDays(ctx context.Context, reqDays []dto.CreateItineraryDayRequest) ([]domain.ItineraryDay, error) {
	days := make([]domain.ItineraryDay, len(reqDays))
	priceIDs := make([]string, 0)
	for i, reqDay := range reqDays {
		day := domain.ItineraryDay{
			DayNumber: reqDay.DayNumber,
			Title:     reqDay.Title,
			Items:     make([]domain.ItineraryItem, len(reqDay.Items)),
		}
		for j, reqItem := range reqDay.Items {
			if reqItem.Quantity.LessThanOrEqual(decimal.Zero) {
				return nil, fmt.Errorf("%w: day %d: quantity must be positive", apperrors.ErrValidation, reqDay.DayNumber)
			}
			if reqItem.PriceOverride != nil && reqItem.PriceOverride.IsNegative() {
				return nil, fmt.Errorf("%w: day %d: price override must not be negative", apperrors.ErrValidation, reqDay.DayNumber)
			}
			day.Items[j] = domain.ItineraryItem{
				ItemID:        uuid.NewString(),
				PriceID:       reqItem.PriceID,
				Quantity:      reqItem.Quantity,
				PriceOverride: reqItem.PriceOverride,
				Note:          reqItem.Note,
			}
			priceIDs = append(priceIDs, reqItem.PriceID)
		}
		days[i] = day
	}

	if err := costing.ValidateDayNumbers(days); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	if len(priceIDs) > 0 {
		records, err := s.priceRepo.FindPriceRecordsByIDs(ctx, priceIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve price records: %w", err)
		}
		for _, id := range priceIDs {
			record, ok := records[id]
			if !ok {
				return nil, fmt.Errorf("%w: price record '%s' not found", apperrors.ErrValidation, id)
			}
			if !record.IsActive {
				return nil, fmt.Errorf("%w: price record '%s' is inactive", apperrors.ErrValidation, id)
			}
		}
	}

	return days, nil
}

// validateDisplayCurrency checks the display currency is registered.
func (s *itineraryService) validateDisplayCurrency(ctx context.Context, code string) error {
	if _, err := s.currencyService.GetCurrencyByCode(ctx, code); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: display currency '%s' not found", apperrors.ErrValidation, code)
		}
		return fmt.Errorf("failed to validate display currency '%s': %w", code, err)
	}
	return nil
}

// CreateItinerary persists a new draft itinerary with its nested days and
// items in one transaction.
func (s *itineraryService) CreateItinerary(ctx context.Context, req dto.CreateItineraryRequest, creatorUserID string) (*domain.Itinerary, error) {
	if err := s.validateDisplayCurrency(ctx, req.DisplayCurrency); err != nil {
		return nil, err
	}

	days, err := s.buildDays(ctx, req.Days)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	itinerary := domain.Itinerary{
		ItineraryID:     uuid.NewString(),
		Name:            req.Name,
		ClientName:      req.ClientName,
		StartDate:       req.StartDate,
		DisplayCurrency: req.DisplayCurrency,
		Status:          domain.StatusDraft,
		Days:            days,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.itineraryRepo.SaveItinerary(ctx, itinerary); err != nil {
		s.LogError(ctx, err, "Failed to create itinerary", "name", req.Name)
		return nil, fmt.Errorf("failed to create itinerary in service: %w", err)
	}

	s.LogInfo(ctx, "Itinerary created", "itinerary_id", itinerary.ItineraryID, "days", len(days))
	return &itinerary, nil
}

// GetItineraryByID retrieves an itinerary with its days and items.
func (s *itineraryService) GetItineraryByID(ctx context.Context, itineraryID string) (*domain.Itinerary, error) {
	itinerary, err := s.itineraryRepo.FindItineraryByID(ctx, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get itinerary by ID in service: %w", err)
	}
	return itinerary, nil
}

// ListItineraries retrieves itinerary headers using token based pagination.
func (s *itineraryService) ListItineraries(ctx context.Context, params dto.ListItinerariesParams) ([]domain.Itinerary, string, error) {
	if params.PageToken != "" {
		if _, err := pagination.DecodeDateBasedToken(params.PageToken); err != nil {
			return nil, "", fmt.Errorf("%w: invalid page token", apperrors.ErrValidation)
		}
	}

	var status *domain.ItineraryStatus
	if params.Status != nil {
		st := domain.ItineraryStatus(*params.Status)
		status = &st
	}

	itineraries, nextToken, err := s.itineraryRepo.ListItineraries(ctx, status, params.Limit, params.PageToken)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list itineraries in service: %w", err)
	}
	if itineraries == nil {
		itineraries = []domain.Itinerary{}
	}
	return itineraries, nextToken, nil
}

// UpdateItinerary replaces the header, days and items of an itinerary.
// Archived itineraries are immutable.
func (s *itineraryService) UpdateItinerary(ctx context.Context, itineraryID string, req dto.UpdateItineraryRequest, updaterUserID string) (*domain.Itinerary, error) {
	existing, err := s.itineraryRepo.FindItineraryByID(ctx, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find itinerary for update: %w", err)
	}

	if existing.Status == domain.StatusArchived {
		return nil, apperrors.NewForbiddenError("archived itineraries cannot be modified")
	}

	if err := s.validateDisplayCurrency(ctx, req.DisplayCurrency); err != nil {
		return nil, err
	}

	days, err := s.buildDays(ctx, req.Days)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.Name = req.Name
	updated.ClientName = req.ClientName
	updated.StartDate = req.StartDate
	updated.DisplayCurrency = req.DisplayCurrency
	updated.Days = days
	updated.LastUpdatedAt = time.Now()
	updated.LastUpdatedBy = updaterUserID

	if err := s.itineraryRepo.ReplaceItinerary(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update itinerary", "itinerary_id", itineraryID)
		return nil, fmt.Errorf("failed to update itinerary in service: %w", err)
	}

	return &updated, nil
}

// UpdateItineraryStatus advances an itinerary along DRAFT -> CONFIRMED ->
// ARCHIVED. Any other transition is rejected.
func (s *itineraryService) UpdateItineraryStatus(ctx context.Context, itineraryID string, req dto.UpdateItineraryStatusRequest, updaterUserID string) (*domain.Itinerary, error) {
	itinerary, err := s.itineraryRepo.FindItineraryByID(ctx, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find itinerary for status update: %w", err)
	}

	next := domain.ItineraryStatus(req.Status)
	if !itinerary.Status.CanTransitionTo(next) {
		return nil, apperrors.NewConflictError(fmt.Sprintf("cannot transition itinerary from %s to %s", itinerary.Status, next))
	}

	now := time.Now()
	if err := s.itineraryRepo.UpdateItineraryStatus(ctx, itineraryID, next, now, updaterUserID); err != nil {
		s.LogError(ctx, err, "Failed to update itinerary status", "itinerary_id", itineraryID, "status", string(next))
		return nil, fmt.Errorf("failed to update itinerary status in service: %w", err)
	}

	itinerary.Status = next
	itinerary.LastUpdatedAt = now
	itinerary.LastUpdatedBy = updaterUserID

	s.LogInfo(ctx, "Itinerary status updated", "itinerary_id", itineraryID, "status", string(next))
	return itinerary, nil
}

// DeleteItinerary removes a draft itinerary with its days and items.
func (s *itineraryService) DeleteItinerary(ctx context.Context, itineraryID string, deleterUserID string) error {
	itinerary, err := s.itineraryRepo.FindItineraryByID(ctx, itineraryID)
	if err != nil {
		return fmt.Errorf("failed to find itinerary for deletion: %w", err)
	}

	if itinerary.Status != domain.StatusDraft {
		return apperrors.NewConflictError(fmt.Sprintf("only draft itineraries can be deleted, itinerary is %s", itinerary.Status))
	}

	if err := s.itineraryRepo.DeleteItinerary(ctx, itineraryID); err != nil {
		s.LogError(ctx, err, "Failed to delete itinerary", "itinerary_id", itineraryID)
		return fmt.Errorf("failed to delete itinerary in service: %w", err)
	}

	s.LogInfo(ctx, "Itinerary deleted", "itinerary_id", itineraryID, "deleted_by", deleterUserID)
	return nil
}

// GetCostSummary computes the full cost breakdown of an itinerary in its
// display currency. Nothing is persisted; the summary is always derived.
func (s *itineraryService) GetCostSummary(ctx context.Context, itineraryID string) (*domain.CostSummary, error) {
	itinerary, err := s.itineraryRepo.FindItineraryByID(ctx, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find itinerary for costing: %w", err)
	}

	displayCurrency, err := s.currencyService.GetCurrencyByCode(ctx, itinerary.DisplayCurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve display currency for costing: %w", err)
	}

	priceIDs := make([]string, 0)
	for _, day := range itinerary.Days {
		for _, item := range day.Items {
			priceIDs = append(priceIDs, item.PriceID)
		}
	}

	records := map[string]domain.PriceRecord{}
	if len(priceIDs) > 0 {
		records, err = s.priceRepo.FindPriceRecordsByIDs(ctx, priceIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve price records for costing: %w", err)
		}
	}

	resolver := func(fromCode, toCode string) (decimal.Decimal, error) {
		rate, err := s.rateService.GetExchangeRate(ctx, fromCode, toCode)
		if err != nil {
			return decimal.Zero, err
		}
		return rate.Rate, nil
	}

	summary, err := costing.Summarize(*itinerary, records, resolver, int32(displayCurrency.Precision))
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	return &summary, nil
}

// EmailQuote computes the cost summary and mails it to the given address.
func (s *itineraryService) EmailQuote(ctx context.Context, itineraryID string, toAddress string) error {
	if s.quoteSender == nil {
		return apperrors.NewAppError(http.StatusServiceUnavailable, "outbound email is not configured", nil)
	}

	itinerary, err := s.itineraryRepo.FindItineraryByID(ctx, itineraryID)
	if err != nil {
		return fmt.Errorf("failed to find itinerary for quote: %w", err)
	}

	summary, err := s.GetCostSummary(ctx, itineraryID)
	if err != nil {
		return err
	}

	if err := s.quoteSender.SendQuote(ctx, toAddress, itinerary.ClientName, itinerary.Name, summary); err != nil {
		return fmt.Errorf("failed to send quote email: %w", err)
	}

	s.LogInfo(ctx, "Quote emailed", "itinerary_id", itineraryID, "to", toAddress)
	return nil
}
