package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/useprospera/prospera_backend/internal/apperrors"
	"github.com/useprospera/prospera_backend/internal/core/domain"
	portsrepo "github.com/useprospera/prospera_backend/internal/core/ports/repositories"
)

type PgxQuoteRepository struct {
	pool *pgxpool.Pool
}

// NewPgxQuoteRepository creates a new repository for quote data.
func NewPgxQuoteRepository(pool *pgxpool.Pool) portsrepo.QuoteRepositoryFacade {
	return &PgxQuoteRepository{pool: pool}
}

var _ portsrepo.QuoteRepositoryFacade = (*PgxQuoteRepository)(nil)

const quoteColumns = `
	quote_id, client_name, client_email, service_description, valid_until,
	production_days, items, status, user_email, payment_options,
	payment_method_id, legacy_installments, legacy_has_down_payment,
	selected_payment_option_id, layout_type, content,
	created_at, created_by, last_updated_at, last_updated_by`

// SaveQuote inserts or fully replaces a quote record. Items, payment options
// and content are stored as jsonb documents since they travel with the quote
// as a unit and are never queried column-wise.
func (r *PgxQuoteRepository) SaveQuote(ctx context.Context, quote domain.Quote) error {
	itemsJSON, err := json.Marshal(quote.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal quote items: %w", err)
	}
	optionsJSON, err := json.Marshal(quote.PaymentOptions)
	if err != nil {
		return fmt.Errorf("failed to marshal payment options: %w", err)
	}
	var contentJSON []byte
	if quote.Content != nil {
		contentJSON, err = json.Marshal(quote.Content)
		if err != nil {
			return fmt.Errorf("failed to marshal quote content: %w", err)
		}
	}

	query := `
		INSERT INTO quotes (` + quoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (quote_id) DO UPDATE SET
			client_name = EXCLUDED.client_name,
			client_email = EXCLUDED.client_email,
			service_description = EXCLUDED.service_description,
			valid_until = EXCLUDED.valid_until,
			production_days = EXCLUDED.production_days,
			items = EXCLUDED.items,
			status = EXCLUDED.status,
			user_email = EXCLUDED.user_email,
			payment_options = EXCLUDED.payment_options,
			payment_method_id = EXCLUDED.payment_method_id,
			legacy_installments = EXCLUDED.legacy_installments,
			legacy_has_down_payment = EXCLUDED.legacy_has_down_payment,
			selected_payment_option_id = EXCLUDED.selected_payment_option_id,
			layout_type = EXCLUDED.layout_type,
			content = EXCLUDED.content,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`

	_, err = r.pool.Exec(ctx, query,
		quote.QuoteID,
		quote.ClientName,
		quote.ClientEmail,
		quote.ServiceDescription,
		quote.ValidUntil,
		quote.ProductionDays,
		itemsJSON,
		quote.Status,
		quote.UserEmail,
		optionsJSON,
		quote.PaymentMethodID,
		quote.LegacyInstallments,
		quote.LegacyHasDownPayment,
		quote.SelectedPaymentOptionID,
		quote.LayoutType,
		contentJSON,
		quote.CreatedAt,
		quote.CreatedBy,
		quote.LastUpdatedAt,
		quote.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to save quote %s: %v", apperrors.ErrPersistence, quote.QuoteID, err)
	}
	return nil
}

// FindQuoteByID retrieves a quote by its short id, case-insensitively.
func (r *PgxQuoteRepository) FindQuoteByID(ctx context.Context, quoteID string) (*domain.Quote, error) {
	query := `
		SELECT ` + quoteColumns + `
		FROM quotes
		WHERE upper(quote_id) = upper($1);
	`
	row := r.pool.QueryRow(ctx, query, quoteID)
	quote, err := scanQuote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("%w: failed to find quote %s: %v", apperrors.ErrPersistence, quoteID, err)
	}
	return quote, nil
}

// ListQuotes retrieves all quotes, newest first.
func (r *PgxQuoteRepository) ListQuotes(ctx context.Context) ([]domain.Quote, error) {
	query := `
		SELECT ` + quoteColumns + `
		FROM quotes
		ORDER BY created_at DESC;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query quotes: %v", apperrors.ErrPersistence, err)
	}
	defer rows.Close()

	quotes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Quote, error) {
		quote, err := scanQuote(row)
		if err != nil {
			return domain.Quote{}, err
		}
		return *quote, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to scan quotes: %v", apperrors.ErrPersistence, err)
	}
	return quotes, nil
}

// UpdateQuoteStatus updates only the lifecycle status and selected option,
// stamping the audit columns, and returns the updated row.
func (r *PgxQuoteRepository) UpdateQuoteStatus(ctx context.Context, quoteID string, status domain.QuoteStatus, selectedOptionID *string, updatedAt time.Time, updatedBy string) (*domain.Quote, error) {
	query := `
		UPDATE quotes
		SET status = $2, selected_payment_option_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE upper(quote_id) = upper($1)
		RETURNING ` + quoteColumns + `;
	`
	row := r.pool.QueryRow(ctx, query, quoteID, status, selectedOptionID, updatedAt, updatedBy)
	quote, err := scanQuote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("%w: failed to update status of quote %s: %v", apperrors.ErrPersistence, quoteID, err)
	}
	return quote, nil
}

// scanQuote maps one row onto the aggregate, decoding the jsonb documents.
func scanQuote(row pgx.Row) (*domain.Quote, error) {
	var quote domain.Quote
	var itemsJSON, optionsJSON, contentJSON []byte

	err := row.Scan(
		&quote.QuoteID,
		&quote.ClientName,
		&quote.ClientEmail,
		&quote.ServiceDescription,
		&quote.ValidUntil,
		&quote.ProductionDays,
		&itemsJSON,
		&quote.Status,
		&quote.UserEmail,
		&optionsJSON,
		&quote.PaymentMethodID,
		&quote.LegacyInstallments,
		&quote.LegacyHasDownPayment,
		&quote.SelectedPaymentOptionID,
		&quote.LayoutType,
		&contentJSON,
		&quote.CreatedAt,
		&quote.CreatedBy,
		&quote.LastUpdatedAt,
		&quote.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &quote.Items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal quote items: %w", err)
		}
	}
	if len(optionsJSON) > 0 {
		if err := json.Unmarshal(optionsJSON, &quote.PaymentOptions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal payment options: %w", err)
		}
	}
	if len(contentJSON) > 0 {
		if err := json.Unmarshal(contentJSON, &quote.Content); err != nil {
			return nil, fmt.Errorf("failed to unmarshal quote content: %w", err)
		}
	}
	return &quote, nil
}
