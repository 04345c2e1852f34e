package services

import (
	portsrepo "github.com/useprospera/prospera_backend/internal/core/ports/repositories"
	portssvc "github.com/useprospera/prospera_backend/internal/core/ports/services"
	"github.com/useprospera/prospera_backend/pkg/config"
)

// NewServiceContainer wires repositories and configuration into the service
// layer the handlers consume.
func NewServiceContainer(
	quoteRepo portsrepo.QuoteRepositoryFacade,
	methodRepo portsrepo.PaymentMethodRepositoryFacade,
	catalogRepo portsrepo.CatalogRepositoryFacade,
	cfg *config.Config,
) *portssvc.ServiceContainer {
	paymentSvc := NewPaymentMethodService(methodRepo)

	return &portssvc.ServiceContainer{
		Quote:         NewQuoteService(quoteRepo, paymentSvc, cfg.PublicBaseURL, cfg.SharePassword),
		PaymentMethod: paymentSvc,
		Catalog:       NewCatalogService(catalogRepo),
		Auth:          NewAuthService(cfg.OperatorEmails, cfg.OperatorPasswordHash, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer),
	}
}
