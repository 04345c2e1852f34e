package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/useprospera/prospera_backend/internal/apperrors"
	"github.com/useprospera/prospera_backend/internal/core/domain"
	portsrepo "github.com/useprospera/prospera_backend/internal/core/ports/repositories"
)

type PgxPaymentMethodRepository struct {
	pool *pgxpool.Pool
}

// NewPgxPaymentMethodRepository creates a new repository for payment method data.
func NewPgxPaymentMethodRepository(pool *pgxpool.Pool) portsrepo.PaymentMethodRepositoryFacade {
	return &PgxPaymentMethodRepository{pool: pool}
}

var _ portsrepo.PaymentMethodRepositoryFacade = (*PgxPaymentMethodRepository)(nil)

// SavePaymentMethod inserts or updates a payment method.
func (r *PgxPaymentMethodRepository) SavePaymentMethod(ctx context.Context, method domain.PaymentMethod) error {
	query := `
		INSERT INTO payment_methods (method_id, name, discount_percent, active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (method_id) DO UPDATE SET
			name = EXCLUDED.name,
			discount_percent = EXCLUDED.discount_percent,
			active = EXCLUDED.active,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.pool.Exec(ctx, query,
		method.MethodID,
		method.Name,
		method.DiscountPercent,
		method.Active,
		method.CreatedAt,
		method.CreatedBy,
		method.LastUpdatedAt,
		method.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to save payment method %s: %v", apperrors.ErrPersistence, method.MethodID, err)
	}
	return nil
}

// FindPaymentMethodByID retrieves a single method, active or not.
func (r *PgxPaymentMethodRepository) FindPaymentMethodByID(ctx context.Context, methodID string) (*domain.PaymentMethod, error) {
	query := `
		SELECT method_id, name, discount_percent, active, created_at, created_by, last_updated_at, last_updated_by
		FROM payment_methods
		WHERE method_id = $1;
	`
	var method domain.PaymentMethod
	err := r.pool.QueryRow(ctx, query, methodID).Scan(
		&method.MethodID,
		&method.Name,
		&method.DiscountPercent,
		&method.Active,
		&method.CreatedAt,
		&method.CreatedBy,
		&method.LastUpdatedAt,
		&method.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("%w: failed to find payment method %s: %v", apperrors.ErrPersistence, methodID, err)
	}
	return &method, nil
}

// ListActivePaymentMethods retrieves active methods ordered by name.
func (r *PgxPaymentMethodRepository) ListActivePaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	query := `
		SELECT method_id, name, discount_percent, active, created_at, created_by, last_updated_at, last_updated_by
		FROM payment_methods
		WHERE active
		ORDER BY name;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query payment methods: %v", apperrors.ErrPersistence, err)
	}
	defer rows.Close()

	methods, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PaymentMethod, error) {
		var method domain.PaymentMethod
		err := row.Scan(
			&method.MethodID,
			&method.Name,
			&method.DiscountPercent,
			&method.Active,
			&method.CreatedAt,
			&method.CreatedBy,
			&method.LastUpdatedAt,
			&method.LastUpdatedBy,
		)
		return method, err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to scan payment methods: %v", apperrors.ErrPersistence, err)
	}
	return methods, nil
}

// DeletePaymentMethod removes a method by id.
func (r *PgxPaymentMethodRepository) DeletePaymentMethod(ctx context.Context, methodID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM payment_methods WHERE method_id = $1;`, methodID)
	if err != nil {
		return fmt.Errorf("%w: failed to delete payment method %s: %v", apperrors.ErrPersistence, methodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
