package services

import (
	portsrepo "github.com/wanderplan/trip_pricing_app/internal/core/ports/repositories"
	portssvc "github.com/wanderplan/trip_pricing_app/internal/core/ports/services"
	"github.com/wanderplan/trip_pricing_app/internal/platform/ai"
	"github.com/wanderplan/trip_pricing_app/internal/platform/config"
	"github.com/wanderplan/trip_pricing_app/internal/platform/email"
	"github.com/wanderplan/trip_pricing_app/internal/platform/storage"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, fileStorage storage.FileStorage, aiClient ai.Client) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, container.Currency)
	container.Province = NewProvinceService(repos.ProvinceRepo)
	container.Pricing = NewPricingService(repos.PriceRecordRepo, container.Province, container.Currency)

	var quoteSender portssvc.QuoteSender
	if cfg.ResendAPIKey != "" {
		quoteSender = email.NewQuoteMailer(cfg.ResendAPIKey, cfg.EmailFromAddress)
	}
	container.Itinerary = NewItineraryService(repos.ItineraryRepo, repos.PriceRecordRepo, container.Currency, container.ExchangeRate, quoteSender)

	container.Document = NewDocumentService(repos.DocumentRepo, repos.ItineraryRepo, fileStorage)
	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)
	container.AIFlows = NewAIFlowService(aiClient)

	return container
}
