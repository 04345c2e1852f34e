package services

import (
	"context"

	"github.com/useprospera/prospera_backend/internal/core/domain"
	"github.com/useprospera/prospera_backend/internal/dto"
	"github.com/useprospera/prospera_backend/internal/utils/pricing"
)

// QuoteReaderSvc defines read operations for quotes
type QuoteReaderSvc interface {
	// GetQuoteByID retrieves a quote by its short id (case-insensitive).
	GetQuoteByID(ctx context.Context, quoteID string) (*domain.Quote, error)

	// ListQuotes retrieves all quotes, newest first.
	ListQuotes(ctx context.Context) ([]domain.Quote, error)

	// PriceQuote normalizes the quote's payment plan and runs the pricing
	// engine for every option.
	PriceQuote(ctx context.Context, quote *domain.Quote) ([]pricing.OptionBreakdown, error)

	// ShareMessage composes the copyable share artifact for a quote.
	ShareMessage(ctx context.Context, quoteID string) (*dto.ShareMessageResponse, error)
}

// QuoteWriterSvc defines lifecycle operations for quotes
type QuoteWriterSvc interface {
	// CreateQuote validates and persists a new quote in DRAFT (or SENT when
	// the request is not flagged as a draft).
	CreateQuote(ctx context.Context, req dto.SaveQuoteRequest, creatorEmail string) (*domain.Quote, error)

	// SaveQuote validates and persists changes to an existing DRAFT/SENT quote.
	SaveQuote(ctx context.Context, quoteID string, req dto.SaveQuoteRequest, updaterEmail string) (*domain.Quote, error)

	// ApproveQuote is the client-facing transition to APPROVED, fixing the
	// selected payment option.
	ApproveQuote(ctx context.Context, quoteID string, selectedOptionID *string) (*domain.Quote, error)

	// UpdateQuoteStatus is the operator-facing status change (e.g. the manual
	// EXPIRED marking).
	UpdateQuoteStatus(ctx context.Context, quoteID string, req dto.UpdateQuoteStatusRequest, updaterEmail string) (*domain.Quote, error)

	// ReopenQuote is the explicit admin entry point that unlocks an APPROVED
	// quote for editing by resetting it to DRAFT.
	ReopenQuote(ctx context.Context, quoteID string, updaterEmail string) (*domain.Quote, error)
}

// QuoteSvcFacade combines all quote-related service interfaces
type QuoteSvcFacade interface {
	QuoteReaderSvc
	QuoteWriterSvc
}
