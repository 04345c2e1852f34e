package repositories

import (
	"context"
	"time"

	"github.com/useprospera/prospera_backend/internal/core/domain"
)

// QuoteReader defines read operations for quote data
type QuoteReader interface {
	// FindQuoteByID retrieves a quote by its short id. Lookup is
	// case-insensitive since ids are typed and copied by hand.
	FindQuoteByID(ctx context.Context, quoteID string) (*domain.Quote, error)

	// ListQuotes retrieves all quotes ordered by creation time, newest first.
	ListQuotes(ctx context.Context) ([]domain.Quote, error)
}

// QuoteWriter defines write operations for quote data
type QuoteWriter interface {
	// SaveQuote inserts or fully replaces a quote record.
	SaveQuote(ctx context.Context, quote domain.Quote) error

	// UpdateQuoteStatus updates only the lifecycle status and, when approving,
	// the selected payment option, stamping the audit fields. Returns the
	// updated quote.
	UpdateQuoteStatus(ctx context.Context, quoteID string, status domain.QuoteStatus, selectedOptionID *string, updatedAt time.Time, updatedBy string) (*domain.Quote, error)
}

// QuoteRepositoryFacade combines all quote-related repository interfaces
type QuoteRepositoryFacade interface {
	QuoteReader
	QuoteWriter
}
