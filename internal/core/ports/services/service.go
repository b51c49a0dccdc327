package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Currency     CurrencySvcFacade
	ExchangeRate ExchangeRateSvcFacade
	Province     ProvinceSvcFacade
	Pricing      PricingSvcFacade
	Itinerary    ItinerarySvcFacade
	Document     DocumentSvcFacade
	User         UserSvcFacade
	Token        TokenSvcFacade
	GoogleOAuth  GoogleOAuthHandlerSvcFacade
	AIFlows      AIFlowSvcFacade
}
