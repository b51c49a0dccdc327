package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wanderplan/trip_pricing_app/internal/apperrors"
	"github.com/wanderplan/trip_pricing_app/internal/core/domain"
	portsrepo "github.com/wanderplan/trip_pricing_app/internal/core/ports/repositories"
	portssvc "github.com/wanderplan/trip_pricing_app/internal/core/ports/services"
	"github.com/wanderplan/trip_pricing_app/internal/dto"
)

// defaultPrecision is used when a create request omits the precision.
const defaultPrecision int16 = 2

// currencyService provides business logic for the currency registry.
type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// NewCurrencyService creates a new currency service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

// CreateCurrency registers a new custom currency. Codes seeded by the
// system cannot be re-registered.
func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	now := time.Now()

	precision := req.Precision
	if precision == 0 {
		precision = defaultPrecision
	}

	currency := domain.Currency{
		CurrencyCode: req.CurrencyCode,
		Symbol:       req.Symbol,
		Name:         req.Name,
		Precision:    precision,
		IsSystem:     false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		s.LogError(ctx, err, "Failed to create currency", "currency_code", req.CurrencyCode)
		return nil, fmt.Errorf("failed to create currency in service: %w", err)
	}

	return &currency, nil
}

// GetCurrencyByCode retrieves a currency by its three-letter code.
func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currencyCode = strings.ToUpper(currencyCode)
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get currency by code in service: %w", err)
	}
	return currency, nil
}

// ListCurrencies returns all registered currencies, system set first.
func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies in service: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

// DeleteCurrency removes a custom currency. System currencies are
// immutable, and currencies still referenced by price records or
// itineraries are protected by FK constraints (surfaced as a conflict).
func (s *currencyService) DeleteCurrency(ctx context.Context, currencyCode string, deleterUserID string) error {
	currencyCode = strings.ToUpper(currencyCode)

	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return fmt.Errorf("failed to find currency for deletion: %w", err)
	}

	if currency.IsSystem {
		return apperrors.NewForbiddenError(fmt.Sprintf("currency %s is a system currency and cannot be deleted", currencyCode))
	}

	if err := s.currencyRepo.DeleteCurrency(ctx, currencyCode); err != nil {
		s.LogError(ctx, err, "Failed to delete currency", "currency_code", currencyCode, "deleted_by", deleterUserID)
		return fmt.Errorf("failed to delete currency in service: %w", err)
	}

	s.LogInfo(ctx, "Currency deleted", "currency_code", currencyCode, "deleted_by", deleterUserID)
	return nil
}
