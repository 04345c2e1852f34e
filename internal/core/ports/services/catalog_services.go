package services

import (
	"context"

	"github.com/useprospera/prospera_backend/internal/core/domain"
	"github.com/useprospera/prospera_backend/internal/dto"
)

// CatalogReaderSvc defines read operations for the reusable service catalog
type CatalogReaderSvc interface {
	// ListServices retrieves all catalog entries, newest first.
	ListServices(ctx context.Context) ([]domain.CatalogService, error)
}

// CatalogWriterSvc defines write operations for the service catalog
type CatalogWriterSvc interface {
	// CreateService persists a new catalog entry.
	CreateService(ctx context.Context, req dto.CreateServiceRequest, creatorEmail string) (*domain.CatalogService, error)

	// DeleteService removes a catalog entry.
	DeleteService(ctx context.Context, serviceID string) error
}

// CatalogSvcFacade combines all catalog service interfaces
type CatalogSvcFacade interface {
	CatalogReaderSvc
	CatalogWriterSvc
}
