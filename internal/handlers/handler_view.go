package handlers

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/useprospera/prospera_backend/internal/apperrors"
	portssvc "github.com/useprospera/prospera_backend/internal/core/ports/services"
	"github.com/useprospera/prospera_backend/internal/dto"
	"github.com/useprospera/prospera_backend/internal/middleware"
	"github.com/useprospera/prospera_backend/internal/utils"
	"github.com/useprospera/prospera_backend/pkg/config"
)

// viewHandler serves the public client-facing routes. There is no login here:
// access is gated by the static share password and rate limited by IP.
type viewHandler struct {
	quoteService  portssvc.QuoteSvcFacade
	sharePassword string
}

func newViewHandler(qs portssvc.QuoteSvcFacade, sharePassword string) *viewHandler {
	return &viewHandler{quoteService: qs, sharePassword: sharePassword}
}

// registerViewRoutes registers the password-gated public viewer routes.
func registerViewRoutes(r *gin.Engine, cfg *config.Config, quoteService portssvc.QuoteSvcFacade) {
	h := newViewHandler(quoteService, cfg.SharePassword)

	rate, err := limiter.NewRateFromFormatted(cfg.ViewerRateLimit)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("30-M")
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)

	view := r.Group("/api/v1/view", middleware.RateLimit(ipLimiter))
	{
		view.GET("/:id", h.viewQuote)
		view.POST("/:id/approve", h.approveQuote)
	}
}

// checkGate validates the share password. An empty configured password means
// the gate is closed entirely.
func (h *viewHandler) checkGate(supplied string) bool {
	if h.sharePassword == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(h.sharePassword)) == 1
}

// viewQuote godoc
// @Summary View a shared quote
// @Description Retrieves a quote for the client viewer, gated by the share password
// @Tags view
// @Produce json
// @Param id path string true "Quote ID (case-insensitive)"
// @Param password query string true "Share password"
// @Success 200 {object} dto.QuoteResponse
// @Failure 401 {object} ErrorResponse "Wrong password"
// @Failure 404 {object} ErrorResponse "Quote not found"
// @Failure 429 {object} ErrorResponse "Rate limited"
// @Failure 500 {object} ErrorResponse "Failed to retrieve quote"
// @Router /view/{id} [get]
func (h *viewHandler) viewQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	quoteID := c.Param("id")

	var req dto.ViewQuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Password is required"})
		return
	}
	if !h.checkGate(req.Password) {
		logger.Warn("Viewer supplied wrong share password", slog.String("quote_id", quoteID))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Senha incorreta"})
		return
	}

	quote, err := h.quoteService.GetQuoteByID(c.Request.Context(), quoteID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Quote not found"})
			return
		}
		logger.Error("Failed to get quote for viewer", slog.String("quote_id", quoteID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve quote"})
		return
	}

	breakdowns, err := h.quoteService.PriceQuote(c.Request.Context(), quote)
	if err != nil {
		logger.Error("Failed to price quote for viewer", slog.String("quote_id", quoteID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute quote pricing"})
		return
	}

	// The viewer renders localized amounts, so attach the formatted strings
	// alongside the raw decimals.
	resp := dto.ToQuoteResponse(quote, breakdowns)
	for i := range resp.Pricing {
		resp.Pricing[i].GrandTotalDisplay = utils.FormatBRL(breakdowns[i].GrandTotal)
		resp.Pricing[i].InstallmentAmountDisplay = utils.FormatBRL(breakdowns[i].InstallmentAmount)
	}
	c.JSON(http.StatusOK, resp)
}

// approveQuote godoc
// @Summary Approve a shared quote
// @Description Client-facing approval: fixes the chosen payment option and moves the quote to APPROVED
// @Tags view
// @Accept json
// @Produce json
// @Param id path string true "Quote ID (case-insensitive)"
// @Param approval body dto.ApproveQuoteRequest true "Share password and chosen option"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} ErrorResponse "Invalid selection"
// @Failure 401 {object} ErrorResponse "Wrong password"
// @Failure 404 {object} ErrorResponse "Quote not found"
// @Failure 409 {object} ErrorResponse "Quote already decided"
// @Failure 429 {object} ErrorResponse "Rate limited"
// @Failure 500 {object} ErrorResponse "Failed to approve quote"
// @Router /view/{id}/approve [post]
func (h *viewHandler) approveQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	quoteID := c.Param("id")

	var req dto.ApproveQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	if !h.checkGate(req.Password) {
		logger.Warn("Approval attempt with wrong share password", slog.String("quote_id", quoteID))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Senha incorreta"})
		return
	}

	quote, err := h.quoteService.ApproveQuote(c.Request.Context(), quoteID, req.SelectedPaymentOptionID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Quote not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to approve quote", slog.String("quote_id", quoteID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to approve quote"})
		}
		return
	}

	logger.Info("Quote approved by client", slog.String("quote_id", quote.QuoteID))

	breakdowns, err := h.quoteService.PriceQuote(c.Request.Context(), quote)
	if err != nil {
		logger.Error("Failed to price approved quote", slog.String("quote_id", quoteID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute quote pricing"})
		return
	}
	c.JSON(http.StatusOK, dto.ToQuoteResponse(quote, breakdowns))
}
