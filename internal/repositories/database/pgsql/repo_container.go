package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/wanderplan/trip_pricing_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	currencyRepo := newPgxCurrencyRepository(dbPool)
	exchangeRateRepo := newPgxExchangeRateRepository(dbPool)
	provinceRepo := newPgxProvinceRepository(dbPool)
	priceRecordRepo := newPgxPriceRecordRepository(dbPool)
	itineraryRepo := newPgxItineraryRepository(dbPool)
	documentRepo := newPgxDocumentRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CurrencyRepo:     currencyRepo,
		ExchangeRateRepo: exchangeRateRepo,
		ProvinceRepo:     provinceRepo,
		PriceRecordRepo:  priceRecordRepo,
		ItineraryRepo:    itineraryRepo,
		DocumentRepo:     documentRepo,
		UserRepo:         userRepo,
	}
}
