package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/useprospera/prospera_backend/internal/apperrors"
	"github.com/useprospera/prospera_backend/internal/core/domain"
	portssvc "github.com/useprospera/prospera_backend/internal/core/ports/services"
	"github.com/useprospera/prospera_backend/internal/dto"
	"github.com/useprospera/prospera_backend/internal/middleware"
)

// quoteHandler handles the operator-facing quote CRUD and lifecycle routes.
type quoteHandler struct {
	quoteService portssvc.QuoteSvcFacade
}

func newQuoteHandler(qs portssvc.QuoteSvcFacade) *quoteHandler {
	return &quoteHandler{quoteService: qs}
}

// registerQuoteRoutes registers routes related to quotes.
func registerQuoteRoutes(rg *gin.RouterGroup, quoteService portssvc.QuoteSvcFacade) {
	h := newQuoteHandler(quoteService)

	quotes := rg.Group("/quotes")
	{
		quotes.POST("", h.createQuote)
		quotes.GET("", h.listQuotes)
		quotes.GET("/:id", h.getQuoteByID)
		quotes.PUT("/:id", h.saveQuote)
		quotes.PATCH("/:id/status", h.updateQuoteStatus)
		quotes.POST("/:id/reopen", h.reopenQuote)
		quotes.GET("/:id/share", h.shareQuote)
	}
}

// respondQuote prices the quote and writes the full response.
func (h *quoteHandler) respondQuote(c *gin.Context, status int, quote *domain.Quote) {
	breakdowns, err := h.quoteService.PriceQuote(c.Request.Context(), quote)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to price quote", slog.String("quote_id", quote.QuoteID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute quote pricing"})
		return
	}
	c.JSON(status, dto.ToQuoteResponse(quote, breakdowns))
}

// createQuote godoc
// @Summary Create a new quote
// @Description Validates and persists a new quote in DRAFT (or SENT), assigning a short shareable id
// @Tags quotes
// @Accept json
// @Produce json
// @Param quote body dto.SaveQuoteRequest true "Quote details"
// @Success 201 {object} dto.QuoteResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to create quote"
// @Security BearerAuth
// @Router /quotes [post]
func (h *quoteHandler) createQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SaveQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateQuote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorEmail, ok := middleware.GetUserEmailFromContext(c)
	if !ok {
		logger.Error("Creator email not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	quote, err := h.quoteService.CreateQuote(c.Request.Context(), req, creatorEmail)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating quote", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to create quote", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create quote"})
		return
	}

	logger.Info("Quote created", slog.String("quote_id", quote.QuoteID))
	h.respondQuote(c, http.StatusCreated, quote)
}

// listQuotes godoc
// @Summary List quotes
// @Description Retrieves dashboard summaries for all quotes, newest first
// @Tags quotes
// @Produce json
// @Success 200 {array} dto.QuoteSummaryResponse
// @Failure 500 {object} ErrorResponse "Failed to list quotes"
// @Security BearerAuth
// @Router /quotes [get]
func (h *quoteHandler) listQuotes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	quotes, err := h.quoteService.ListQuotes(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list quotes", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list quotes"})
		return
	}

	summaries := make([]dto.QuoteSummaryResponse, len(quotes))
	for i := range quotes {
		summaries[i] = dto.ToQuoteSummaryResponse(&quotes[i])
	}
	c.JSON(http.StatusOK, summaries)
}

// getQuoteByID godoc
// @Summary Get a quote
// @Description Retrieves a quote with computed pricing for every payment option
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID (6 characters, case-insensitive)"
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} ErrorResponse "Quote not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve quote"
// @Security BearerAuth
// @Router /quotes/{id} [get]
func (h *quoteHandler) getQuoteByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	quoteID := c.Param("id")

	quote, err := h.quoteService.GetQuoteByID(c.Request.Context(), quoteID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Quote not found"})
			return
		}
		logger.Error("Failed to get quote", slog.String("quote_id", quoteID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve quote"})
		return
	}

	h.respondQuote(c, http.StatusOK, quote)
}

// saveQuote godoc
// @Summary Update a quote
// @Description Fully replaces the editable fields of an existing DRAFT or SENT quote
// @Tags quotes
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param quote body dto.SaveQuoteRequest true "Quote details"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Quote not found"
// @Failure 409 {object} ErrorResponse "Quote is approved and locked"
// @Failure 500 {object} ErrorResponse "Failed to save quote"
// @Security BearerAuth
// @Router /quotes/{id} [put]
func (h *quoteHandler) saveQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	quoteID := c.Param("id")

	var req dto.SaveQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SaveQuote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	updaterEmail, ok := middleware.GetUserEmailFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	quote, err := h.quoteService.SaveQuote(c.Request.Context(), quoteID, req, updaterEmail)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Quote not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to save quote", slog.String("quote_id", quoteID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save quote"})
		}
		return
	}

	logger.Info("Quote saved", slog.String("quote_id", quote.QuoteID))
	h.respondQuote(c, http.StatusOK, quote)
}

// updateQuoteStatus godoc
// @Summary Update quote status
// @Description Operator-facing lifecycle transition, including the manual EXPIRED marking
// @Tags quotes
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param status body dto.UpdateQuoteStatusRequest true "Target status"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Quote not found"
// @Failure 409 {object} ErrorResponse "Transition not allowed"
// @Failure 500 {object} ErrorResponse "Failed to update status"
// @Security BearerAuth
// @Router /quotes/{id}/status [patch]
func (h *quoteHandler) updateQuoteStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	quoteID := c.Param("id")

	var req dto.UpdateQuoteStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	updaterEmail, ok := middleware.GetUserEmailFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	quote, err := h.quoteService.UpdateQuoteStatus(c.Request.Context(), quoteID, req, updaterEmail)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Quote not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to update quote status", slog.String("quote_id", quoteID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update quote status"})
		}
		return
	}

	logger.Info("Quote status updated", slog.String("quote_id", quote.QuoteID), slog.String("status", string(quote.Status)))
	h.respondQuote(c, http.StatusOK, quote)
}

// reopenQuote godoc
// @Summary Reopen an approved quote
// @Description Resets an APPROVED quote to DRAFT and clears the selected payment option
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} ErrorResponse "Quote not found"
// @Failure 409 {object} ErrorResponse "Quote is not approved"
// @Failure 500 {object} ErrorResponse "Failed to reopen quote"
// @Security BearerAuth
// @Router /quotes/{id}/reopen [post]
func (h *quoteHandler) reopenQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	quoteID := c.Param("id")

	updaterEmail, ok := middleware.GetUserEmailFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	quote, err := h.quoteService.ReopenQuote(c.Request.Context(), quoteID, updaterEmail)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Quote not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to reopen quote", slog.String("quote_id", quoteID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to reopen quote"})
		}
		return
	}

	logger.Info("Quote reopened", slog.String("quote_id", quote.QuoteID))
	h.respondQuote(c, http.StatusOK, quote)
}

// shareQuote godoc
// @Summary Get the share message
// @Description Composes the copyable share artifact (deep link, password and pt-BR message)
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} dto.ShareMessageResponse
// @Failure 404 {object} ErrorResponse "Quote not found"
// @Failure 500 {object} ErrorResponse "Failed to compose share message"
// @Security BearerAuth
// @Router /quotes/{id}/share [get]
func (h *quoteHandler) shareQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	quoteID := c.Param("id")

	msg, err := h.quoteService.ShareMessage(c.Request.Context(), quoteID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Quote not found"})
			return
		}
		logger.Error("Failed to compose share message", slog.String("quote_id", quoteID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compose share message"})
		return
	}

	c.JSON(http.StatusOK, msg)
}
