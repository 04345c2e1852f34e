package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/useprospera/prospera_backend/internal/apperrors"
	"github.com/useprospera/prospera_backend/internal/core/domain"
	portsrepo "github.com/useprospera/prospera_backend/internal/core/ports/repositories"
	portssvc "github.com/useprospera/prospera_backend/internal/core/ports/services"
	"github.com/useprospera/prospera_backend/internal/dto"
	"github.com/useprospera/prospera_backend/internal/middleware"
)

// catalogService manages the reusable service catalog operators import line
// items from.
type catalogService struct {
	catalogRepo portsrepo.CatalogRepositoryFacade
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(catalogRepo portsrepo.CatalogRepositoryFacade) portssvc.CatalogSvcFacade {
	return &catalogService{catalogRepo: catalogRepo}
}

var _ portssvc.CatalogSvcFacade = (*catalogService)(nil)

// ListServices retrieves all catalog entries, newest first.
func (s *catalogService) ListServices(ctx context.Context) ([]domain.CatalogService, error) {
	services, err := s.catalogRepo.ListServices(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list services", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

// CreateService validates and persists a new catalog entry.
func (s *catalogService) CreateService(ctx context.Context, req dto.CreateServiceRequest, creatorEmail string) (*domain.CatalogService, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: service description is required", apperrors.ErrValidation)
	}
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: service amount must not be negative", apperrors.ErrValidation)
	}
	kind := domain.ItemKind(req.Kind)
	if kind != domain.OneTime && kind != domain.Recurring {
		return nil, fmt.Errorf("%w: unknown item kind %q", apperrors.ErrValidation, req.Kind)
	}

	now := time.Now().UTC()
	service := domain.CatalogService{
		ServiceID:   uuid.NewString(),
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Kind:        kind,
		UserEmail:   creatorEmail,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorEmail,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorEmail,
		},
	}

	if err := s.catalogRepo.SaveService(ctx, service); err != nil {
		logger.Error("Failed to save service", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save service: %w", err)
	}

	logger.Info("Catalog service created", slog.String("service_id", service.ServiceID))
	return &service, nil
}

// DeleteService removes a catalog entry. Items already imported onto quotes
// are copies and are unaffected.
func (s *catalogService) DeleteService(ctx context.Context, serviceID string) error {
	if err := s.catalogRepo.DeleteService(ctx, serviceID); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to delete service", slog.String("error", err.Error()), slog.String("service_id", serviceID))
		return fmt.Errorf("failed to delete service %s: %w", serviceID, err)
	}
	return nil
}
