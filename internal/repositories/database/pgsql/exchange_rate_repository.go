package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/wanderplan/trip_pricing_app/internal/apperrors"
	"github.com/wanderplan/trip_pricing_app/internal/core/domain"
	portsrepo "github.com/wanderplan/trip_pricing_app/internal/core/ports/repositories"
	"github.com/wanderplan/trip_pricing_app/internal/models"
	"github.com/wanderplan/trip_pricing_app/internal/utils/mapping"
)

type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for exchange rate data.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

const exchangeRateColumns = `exchange_rate_id, from_currency_code, to_currency_code, rate, date_effective, created_at, created_by, last_updated_at, last_updated_by`

// SaveExchangeRate inserts a rate, updating in place when one already
// exists for the same pair and effective date.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	modelRate := mapping.ToModelExchangeRate(rate)

	query := `
		INSERT INTO exchange_rates (exchange_rate_id, from_currency_code, to_currency_code, rate, date_effective, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (from_currency_code, to_currency_code, date_effective) DO UPDATE SET
			rate = EXCLUDED.rate,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`

	_, err := r.Pool.Exec(ctx, query,
		modelRate.ExchangeRateID,
		modelRate.FromCurrencyCode,
		modelRate.ToCurrencyCode,
		modelRate.Rate,
		modelRate.DateEffective,
		modelRate.CreatedAt,
		modelRate.CreatedBy,
		modelRate.LastUpdatedAt,
		modelRate.LastUpdatedBy,
	)

	if err != nil {
		return fmt.Errorf("failed to save exchange rate %s->%s: %w", modelRate.FromCurrencyCode, modelRate.ToCurrencyCode, err)
	}
	return nil
}

// FindExchangeRate retrieves the most recent rate between two currencies.
// When no direct rate exists, the most recent inverse rate is returned
// with its Rate inverted so callers always multiply.
func (r *PgxExchangeRateRepository) FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	direct, err := r.findLatestRate(ctx, fromCurrencyCode, toCurrencyCode)
	if err == nil {
		return direct, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	inverse, err := r.findLatestRate(ctx, toCurrencyCode, fromCurrencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if inverse.Rate.IsZero() {
		return nil, fmt.Errorf("inverse exchange rate %s->%s is zero", toCurrencyCode, fromCurrencyCode)
	}

	inverted := *inverse
	inverted.FromCurrencyCode = fromCurrencyCode
	inverted.ToCurrencyCode = toCurrencyCode
	inverted.Rate = decimal.NewFromInt(1).Div(inverse.Rate)
	return &inverted, nil
}

func (r *PgxExchangeRateRepository) findLatestRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2
		ORDER BY date_effective DESC
		LIMIT 1;
	`
	var modelRate models.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, fromCurrencyCode, toCurrencyCode).Scan(
		&modelRate.ExchangeRateID,
		&modelRate.FromCurrencyCode,
		&modelRate.ToCurrencyCode,
		&modelRate.Rate,
		&modelRate.DateEffective,
		&modelRate.CreatedAt,
		&modelRate.CreatedBy,
		&modelRate.LastUpdatedAt,
		&modelRate.LastUpdatedBy,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find exchange rate %s->%s: %w", fromCurrencyCode, toCurrencyCode, err)
	}

	domainRate := mapping.ToDomainExchangeRate(modelRate)
	return &domainRate, nil
}

// ListExchangeRates retrieves rates with optional pair filters, newest
// effective date first, paginated, with the total match count.
func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context, fromCurrency, toCurrency *string, page, pageSize int) ([]domain.ExchangeRate, int, error) {
	whereClause := ` WHERE ($1::text IS NULL OR from_currency_code = $1) AND ($2::text IS NULL OR to_currency_code = $2)`

	var total int
	countQuery := `SELECT COUNT(*) FROM exchange_rates` + whereClause + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, fromCurrency, toCurrency).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count exchange rates: %w", err)
	}

	offset := (page - 1) * pageSize
	listQuery := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates` + whereClause + `
		ORDER BY date_effective DESC, from_currency_code, to_currency_code
		LIMIT $3 OFFSET $4;
	`
	rows, err := r.Pool.Query(ctx, listQuery, fromCurrency, toCurrency, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	defer rows.Close()

	modelRates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExchangeRate, error) {
		var rate models.ExchangeRate
		err := row.Scan(
			&rate.ExchangeRateID,
			&rate.FromCurrencyCode,
			&rate.ToCurrencyCode,
			&rate.Rate,
			&rate.DateEffective,
			&rate.CreatedAt,
			&rate.CreatedBy,
			&rate.LastUpdatedAt,
			&rate.LastUpdatedBy,
		)
		return rate, err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan exchange rates: %w", err)
	}

	domainRates := make([]domain.ExchangeRate, len(modelRates))
	for i, m := range modelRates {
		domainRates[i] = mapping.ToDomainExchangeRate(m)
	}
	return domainRates, total, nil
}
