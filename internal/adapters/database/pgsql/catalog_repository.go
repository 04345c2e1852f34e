package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/useprospera/prospera_backend/internal/apperrors"
	"github.com/useprospera/prospera_backend/internal/core/domain"
	portsrepo "github.com/useprospera/prospera_backend/internal/core/ports/repositories"
)

type PgxCatalogRepository struct {
	pool *pgxpool.Pool
}

// NewPgxCatalogRepository creates a new repository for the service catalog.
func NewPgxCatalogRepository(pool *pgxpool.Pool) portsrepo.CatalogRepositoryFacade {
	return &PgxCatalogRepository{pool: pool}
}

var _ portsrepo.CatalogRepositoryFacade = (*PgxCatalogRepository)(nil)

// SaveService inserts or updates a catalog entry.
func (r *PgxCatalogRepository) SaveService(ctx context.Context, service domain.CatalogService) error {
	query := `
		INSERT INTO services (service_id, description, amount, kind, user_email, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (service_id) DO UPDATE SET
			description = EXCLUDED.description,
			amount = EXCLUDED.amount,
			kind = EXCLUDED.kind,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.pool.Exec(ctx, query,
		service.ServiceID,
		service.Description,
		service.Amount,
		service.Kind,
		service.UserEmail,
		service.CreatedAt,
		service.CreatedBy,
		service.LastUpdatedAt,
		service.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to save service %s: %v", apperrors.ErrPersistence, service.ServiceID, err)
	}
	return nil
}

// ListServices retrieves all catalog entries, newest first.
func (r *PgxCatalogRepository) ListServices(ctx context.Context) ([]domain.CatalogService, error) {
	query := `
		SELECT service_id, description, amount, kind, user_email, created_at, created_by, last_updated_at, last_updated_by
		FROM services
		ORDER BY created_at DESC;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query services: %v", apperrors.ErrPersistence, err)
	}
	defer rows.Close()

	services, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CatalogService, error) {
		var service domain.CatalogService
		err := row.Scan(
			&service.ServiceID,
			&service.Description,
			&service.Amount,
			&service.Kind,
			&service.UserEmail,
			&service.CreatedAt,
			&service.CreatedBy,
			&service.LastUpdatedAt,
			&service.LastUpdatedBy,
		)
		return service, err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to scan services: %v", apperrors.ErrPersistence, err)
	}
	return services, nil
}

// DeleteService removes a catalog entry by id.
func (r *PgxCatalogRepository) DeleteService(ctx context.Context, serviceID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM services WHERE service_id = $1;`, serviceID)
	if err != nil {
		return fmt.Errorf("%w: failed to delete service %s: %v", apperrors.ErrPersistence, serviceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
