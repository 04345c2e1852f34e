package repositories

import (
	"context"

	"github.com/useprospera/prospera_backend/internal/core/domain"
)

// CatalogReader defines read operations for the reusable service catalog
type CatalogReader interface {
	// ListServices retrieves all catalog entries, newest first.
	ListServices(ctx context.Context) ([]domain.CatalogService, error)
}

// CatalogWriter defines write operations for the service catalog
type CatalogWriter interface {
	// SaveService persists a new catalog entry.
	SaveService(ctx context.Context, service domain.CatalogService) error

	// DeleteService removes a catalog entry.
	DeleteService(ctx context.Context, serviceID string) error
}

// CatalogRepositoryFacade combines all catalog repository interfaces
type CatalogRepositoryFacade interface {
	CatalogReader
	CatalogWriter
}
