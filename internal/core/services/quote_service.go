package services

import (
	"context"
	"errors"
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
	"github.com/useprospera/prospera_backend/internal/utils"
	"github.com/useprospera/prospera_backend/internal/utils/pricing"
)

// maxIDAttempts bounds the retry-on-collision loop for short id generation.
const maxIDAttempts = 5

// quoteService provides quote lifecycle and pricing orchestration.
type quoteService struct {
	quoteRepo     portsrepo.QuoteRepositoryFacade
	paymentSvc    portssvc.PaymentMethodSvcFacade
	shareBaseURL  string
	sharePassword string
}

// NewQuoteService creates a new QuoteService.
func NewQuoteService(quoteRepo portsrepo.QuoteRepositoryFacade, paymentSvc portssvc.PaymentMethodSvcFacade, shareBaseURL, sharePassword string) portssvc.QuoteSvcFacade {
	return &quoteService{
		quoteRepo:     quoteRepo,
		paymentSvc:    paymentSvc,
		shareBaseURL:  strings.TrimRight(shareBaseURL, "/"),
		sharePassword: sharePassword,
	}
}

// Ensure quoteService implements the portssvc.QuoteSvcFacade interface
var _ portssvc.QuoteSvcFacade = (*quoteService)(nil)

// validateSaveRequest enforces the rules a quote must satisfy before it may
// leave the editor: non-empty client name, at least one item, at least one
// payment option, and range-checked numerics. Nothing is persisted when any
// of these fail.
func (s *quoteService) validateSaveRequest(req dto.SaveQuoteRequest) error {
	if strings.TrimSpace(req.ClientName) == "" {
		return fmt.Errorf("%w: client name is required", apperrors.ErrValidation)
	}
	if len(req.Items) == 0 {
		return fmt.Errorf("%w: quote must have at least one line item", apperrors.ErrValidation)
	}
	if len(req.PaymentOptions) == 0 {
		return fmt.Errorf("%w: quote must have at least one payment option", apperrors.ErrValidation)
	}
	if req.ProductionDays < 0 {
		return fmt.Errorf("%w: production days must not be negative", apperrors.ErrValidation)
	}
	return nil
}

// buildQuoteItems converts request items to domain items, assigning ids where
// the editor did not send any, and range-checks them via the pricing engine's
// validators so unvalidated input never reaches the math.
func buildQuoteItems(req dto.SaveQuoteRequest) ([]domain.LineItem, error) {
	items := make([]domain.LineItem, len(req.Items))
	for i, it := range req.Items {
		id := it.ID
		if id == "" {
			id = uuid.NewString()
		}
		items[i] = domain.LineItem{
			ItemID:      id,
			Description: strings.TrimSpace(it.Description),
			Amount:      it.Amount,
			Kind:        domain.ItemKind(it.Kind),
		}
	}
	if err := pricing.ValidateItems(items); err != nil {
		return nil, err
	}
	return items, nil
}

func buildQuoteOptions(req dto.SaveQuoteRequest) ([]domain.PaymentOption, error) {
	options := make([]domain.PaymentOption, len(req.PaymentOptions))
	for i, opt := range req.PaymentOptions {
		id := opt.ID
		if id == "" {
			id = uuid.NewString()
		}
		options[i] = domain.PaymentOption{
			OptionID:        id,
			PaymentMethodID: opt.PaymentMethodID,
			Installments:    opt.Installments,
			HasDownPayment:  opt.HasDownPayment,
			DiscountPercent: opt.DiscountPercent,
			PaymentTerms:    opt.PaymentTerms,
		}
		if err := pricing.ValidateOption(options[i]); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// generateUniqueID draws short ids until one is free. The id space is small
// enough that collisions are possible, so every draw is checked against the
// store before use.
func (s *quoteService) generateUniqueID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := utils.GenerateShortID()
		if err != nil {
			return "", fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
		}
		_, err = s.quoteRepo.FindQuoteByID(ctx, id)
		if errors.Is(err, apperrors.ErrNotFound) {
			return id, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check quote id availability: %w", err)
		}
	}
	return "", fmt.Errorf("%w: could not generate a unique quote id after %d attempts", apperrors.ErrInternal, maxIDAttempts)
}

// CreateQuote validates the editor form and persists a new quote.
// Implements portssvc.QuoteSvcFacade
func (s *quoteService) CreateQuote(ctx context.Context, req dto.SaveQuoteRequest, creatorEmail string) (*domain.Quote, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.validateSaveRequest(req); err != nil {
		return nil, err
	}
	items, err := buildQuoteItems(req)
	if err != nil {
		return nil, err
	}
	options, err := buildQuoteOptions(req)
	if err != nil {
		return nil, err
	}

	quoteID, err := s.generateUniqueID(ctx)
	if err != nil {
		logger.Error("Failed to generate quote id", slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now().UTC()
	status := domain.StatusSent
	if req.AsDraft {
		status = domain.StatusDraft
	}

	quote := domain.Quote{
		QuoteID:            quoteID,
		ClientName:         strings.TrimSpace(req.ClientName),
		ClientEmail:        req.ClientEmail,
		ServiceDescription: req.ServiceDescription,
		ValidUntil:         req.ValidUntil,
		ProductionDays:     req.ProductionDays,
		Items:              items,
		PaymentOptions:     options,
		Status:             status,
		UserEmail:          creatorEmail,
		LayoutType:         domain.LayoutType(req.LayoutType),
		Content:            req.Content,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorEmail,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorEmail,
		},
	}

	if err := s.quoteRepo.SaveQuote(ctx, quote); err != nil {
		logger.Error("Failed to save new quote", slog.String("error", err.Error()), slog.String("quote_id", quoteID))
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}

	logger.Info("Quote created", slog.String("quote_id", quoteID), slog.String("status", string(status)))
	return &quote, nil
}

// SaveQuote validates and persists changes to an existing quote. An APPROVED
// quote is frozen; editing it requires the explicit ReopenQuote entry point.
// Implements portssvc.QuoteSvcFacade
func (s *quoteService) SaveQuote(ctx context.Context, quoteID string, req dto.SaveQuoteRequest, updaterEmail string) (*domain.Quote, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.quoteRepo.FindQuoteByID(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to find quote %s: %w", quoteID, err)
	}
	if existing.IsApproved() {
		return nil, fmt.Errorf("%w: quote %s is approved and locked; reopen it to edit", apperrors.ErrConflict, quoteID)
	}
	if existing.Status == domain.StatusExpired {
		return nil, fmt.Errorf("%w: quote %s has expired; move it back to DRAFT or SENT before editing", apperrors.ErrConflict, quoteID)
	}

	if err := s.validateSaveRequest(req); err != nil {
		return nil, err
	}
	items, err := buildQuoteItems(req)
	if err != nil {
		return nil, err
	}
	options, err := buildQuoteOptions(req)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	status := domain.StatusSent
	if req.AsDraft {
		status = domain.StatusDraft
	}

	updated := *existing
	updated.ClientName = strings.TrimSpace(req.ClientName)
	updated.ClientEmail = req.ClientEmail
	updated.ServiceDescription = req.ServiceDescription
	updated.ValidUntil = req.ValidUntil
	updated.ProductionDays = req.ProductionDays
	updated.Items = items
	updated.PaymentOptions = options
	updated.Status = status
	updated.LayoutType = domain.LayoutType(req.LayoutType)
	updated.Content = req.Content
	// Editing replaces the legacy flat method fields with the options list.
	updated.PaymentMethodID = ""
	updated.LegacyInstallments = 0
	updated.LegacyHasDownPayment = false
	updated.SelectedPaymentOptionID = nil
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = updaterEmail

	if err := s.quoteRepo.SaveQuote(ctx, updated); err != nil {
		logger.Error("Failed to save quote update", slog.String("error", err.Error()), slog.String("quote_id", quoteID))
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}

	logger.Info("Quote saved", slog.String("quote_id", updated.QuoteID), slog.String("status", string(status)))
	return &updated, nil
}

// methodLookup resolves stored payment method ids for legacy plan
// normalization.
func (s *quoteService) methodLookup(ctx context.Context) func(methodID string) (domain.PaymentMethod, bool) {
	return func(methodID string) (domain.PaymentMethod, bool) {
		method, err := s.paymentSvc.GetPaymentMethodByID(ctx, methodID)
		if err != nil {
			return domain.PaymentMethod{}, false
		}
		return *method, true
	}
}

// validateSelection checks the chosen option against the quote's normalized
// option list, so a persisted selection always references an option the viewer
// can render. Legacy single-method quotes accept only their synthetic option
// id, and approval without a selection applies the single implicit option.
func validateSelection(quoteID string, options []domain.PaymentOption, selectedOptionID *string) error {
	if selectedOptionID == nil {
		// Single-option quotes approve without an explicit pick.
		if len(options) == 1 {
			return nil
		}
		return fmt.Errorf("%w: a payment option must be selected", apperrors.ErrValidation)
	}
	for _, opt := range options {
		if opt.OptionID == *selectedOptionID {
			return nil
		}
	}
	return fmt.Errorf("%w: payment option %s is not on quote %s", apperrors.ErrValidation, *selectedOptionID, quoteID)
}

// ApproveQuote is the client-facing transition to APPROVED. Re-approving an
// already approved quote with the same (or no) option is a no-op; switching
// the option through this path is a conflict.
// Implements portssvc.QuoteSvcFacade
func (s *quoteService) ApproveQuote(ctx context.Context, quoteID string, selectedOptionID *string) (*domain.Quote, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	quote, err := s.quoteRepo.FindQuoteByID(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to find quote %s: %w", quoteID, err)
	}

	if quote.IsApproved() {
		if selectedOptionID == nil {
			return quote, nil
		}
		if quote.SelectedPaymentOptionID != nil && *quote.SelectedPaymentOptionID == *selectedOptionID {
			return quote, nil
		}
		return nil, fmt.Errorf("%w: quote %s is already approved with a different option", apperrors.ErrConflict, quoteID)
	}
	if quote.Status == domain.StatusExpired {
		return nil, fmt.Errorf("%w: quote %s has expired", apperrors.ErrConflict, quoteID)
	}

	options := quote.Plan().Normalize(s.methodLookup(ctx))
	if err := validateSelection(quote.QuoteID, options, selectedOptionID); err != nil {
		return nil, err
	}

	// Single-option quotes fix their only (possibly synthetic) option on
	// approval.
	effective := selectedOptionID
	if effective == nil {
		effective = &options[0].OptionID
	}

	// Client approval carries no operator identity; the audit stamp keeps the
	// last operator touch.
	updated, err := s.quoteRepo.UpdateQuoteStatus(ctx, quote.QuoteID, domain.StatusApproved, effective, time.Now().UTC(), quote.LastUpdatedBy)
	if err != nil {
		logger.Error("Failed to approve quote", slog.String("error", err.Error()), slog.String("quote_id", quoteID))
		return nil, fmt.Errorf("failed to approve quote: %w", err)
	}

	logger.Info("Quote approved", slog.String("quote_id", quote.QuoteID))
	return updated, nil
}

// UpdateQuoteStatus is the operator-facing status change, including the manual
// EXPIRED marking. Leaving APPROVED goes through ReopenQuote instead.
// Implements portssvc.QuoteSvcFacade
func (s *quoteService) UpdateQuoteStatus(ctx context.Context, quoteID string, req dto.UpdateQuoteStatusRequest, updaterEmail string) (*domain.Quote, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	status := domain.QuoteStatus(req.Status)
	if !domain.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, req.Status)
	}

	quote, err := s.quoteRepo.FindQuoteByID(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to find quote %s: %w", quoteID, err)
	}

	if quote.IsApproved() && status != domain.StatusApproved {
		return nil, fmt.Errorf("%w: quote %s is approved; reopen it instead", apperrors.ErrConflict, quoteID)
	}

	selected := req.SelectedPaymentOptionID
	if status == domain.StatusApproved {
		options := quote.Plan().Normalize(s.methodLookup(ctx))
		if err := validateSelection(quote.QuoteID, options, selected); err != nil {
			return nil, err
		}
		if selected == nil {
			selected = &options[0].OptionID
		}
	} else {
		selected = nil
	}

	updated, err := s.quoteRepo.UpdateQuoteStatus(ctx, quote.QuoteID, status, selected, time.Now().UTC(), updaterEmail)
	if err != nil {
		logger.Error("Failed to update quote status", slog.String("error", err.Error()), slog.String("quote_id", quoteID))
		return nil, fmt.Errorf("failed to update quote status: %w", err)
	}

	logger.Info("Quote status updated", slog.String("quote_id", quote.QuoteID), slog.String("status", string(status)), slog.String("updated_by", updaterEmail))
	return updated, nil
}

// ReopenQuote unlocks an APPROVED quote for editing. The quote drops back to
// DRAFT and loses its selected option; this is an explicit admin action,
// distinct from the client-facing flow.
// Implements portssvc.QuoteSvcFacade
func (s *quoteService) ReopenQuote(ctx context.Context, quoteID string, updaterEmail string) (*domain.Quote, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	quote, err := s.quoteRepo.FindQuoteByID(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to find quote %s: %w", quoteID, err)
	}
	if !quote.IsApproved() {
		return quote, nil
	}

	updated, err := s.quoteRepo.UpdateQuoteStatus(ctx, quote.QuoteID, domain.StatusDraft, nil, time.Now().UTC(), updaterEmail)
	if err != nil {
		logger.Error("Failed to reopen quote", slog.String("error", err.Error()), slog.String("quote_id", quoteID))
		return nil, fmt.Errorf("failed to reopen quote: %w", err)
	}

	logger.Info("Quote reopened", slog.String("quote_id", quote.QuoteID), slog.String("updated_by", updaterEmail))
	return updated, nil
}

// GetQuoteByID retrieves a quote by its short id.
// Implements portssvc.QuoteSvcFacade
func (s *quoteService) GetQuoteByID(ctx context.Context, quoteID string) (*domain.Quote, error) {
	quote, err := s.quoteRepo.FindQuoteByID(ctx, quoteID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find quote", slog.String("error", err.Error()), slog.String("quote_id", quoteID))
		}
		return nil, fmt.Errorf("failed to find quote %s: %w", quoteID, err)
	}
	return quote, nil
}

// ListQuotes retrieves all quotes, newest first.
// Implements portssvc.QuoteSvcFacade
func (s *quoteService) ListQuotes(ctx context.Context) ([]domain.Quote, error) {
	quotes, err := s.quoteRepo.ListQuotes(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list quotes", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	return quotes, nil
}

// PriceQuote normalizes the quote's payment plan and runs the pricing engine
// for every option. Legacy single-method quotes become a one-element list so
// the engine only ever sees one shape.
// Implements portssvc.QuoteSvcFacade
func (s *quoteService) PriceQuote(ctx context.Context, quote *domain.Quote) ([]pricing.OptionBreakdown, error) {
	options := quote.Plan().Normalize(s.methodLookup(ctx))
	return pricing.ComputeAll(quote.Items, options)
}

// ShareMessage composes the copyable share artifact: the viewer deep link and
// the static shared password.
// Implements portssvc.QuoteSvcFacade
func (s *quoteService) ShareMessage(ctx context.Context, quoteID string) (*dto.ShareMessageResponse, error) {
	quote, err := s.quoteRepo.FindQuoteByID(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to find quote %s: %w", quoteID, err)
	}

	url := fmt.Sprintf("%s/#/view/%s", s.shareBaseURL, quote.QuoteID)
	message := fmt.Sprintf("Olá! Segue o link da sua proposta comercial:\n\n%s\n\nSenha de acesso: %s", url, s.sharePassword)

	return &dto.ShareMessageResponse{
		URL:      url,
		Password: s.sharePassword,
		Message:  message,
	}, nil
}
