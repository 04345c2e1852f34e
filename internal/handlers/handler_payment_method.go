package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/useprospera/prospera_backend/internal/apperrors"
	portssvc "github.com/useprospera/prospera_backend/internal/core/ports/services"
	"github.com/useprospera/prospera_backend/internal/dto"
	"github.com/useprospera/prospera_backend/internal/middleware"
)

// paymentMethodHandler handles HTTP requests related to payment methods.
type paymentMethodHandler struct {
	methodService portssvc.PaymentMethodSvcFacade
}

func newPaymentMethodHandler(ms portssvc.PaymentMethodSvcFacade) *paymentMethodHandler {
	return &paymentMethodHandler{methodService: ms}
}

// registerPaymentMethodRoutes registers routes related to payment methods.
func registerPaymentMethodRoutes(rg *gin.RouterGroup, methodService portssvc.PaymentMethodSvcFacade) {
	h := newPaymentMethodHandler(methodService)

	methods := rg.Group("/payment-methods")
	{
		methods.POST("", h.createPaymentMethod)
		methods.GET("", h.listPaymentMethods)
		methods.DELETE("/:id", h.deletePaymentMethod)
	}
}

// createPaymentMethod godoc
// @Summary Create a payment method
// @Description Adds a new payment method for use in quote options
// @Tags payment-methods
// @Accept json
// @Produce json
// @Param method body dto.CreatePaymentMethodRequest true "Payment method details"
// @Success 201 {object} dto.PaymentMethodResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to create payment method"
// @Security BearerAuth
// @Router /payment-methods [post]
func (h *paymentMethodHandler) createPaymentMethod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePaymentMethod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorEmail, ok := middleware.GetUserEmailFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	method, err := h.methodService.CreatePaymentMethod(c.Request.Context(), req, creatorEmail)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to create payment method", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create payment method"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToPaymentMethodResponse(method))
}

// listPaymentMethods godoc
// @Summary List payment methods
// @Description Retrieves the active payment methods ordered by name
// @Tags payment-methods
// @Produce json
// @Success 200 {array} dto.PaymentMethodResponse
// @Failure 500 {object} ErrorResponse "Failed to list payment methods"
// @Security BearerAuth
// @Router /payment-methods [get]
func (h *paymentMethodHandler) listPaymentMethods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	methods, err := h.methodService.ListPaymentMethods(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list payment methods", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list payment methods"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListPaymentMethodResponse(methods))
}

// deletePaymentMethod godoc
// @Summary Delete a payment method
// @Description Removes a payment method. Existing quotes keep their own discount values.
// @Tags payment-methods
// @Produce json
// @Param id path string true "Payment method ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse "Payment method not found"
// @Failure 500 {object} ErrorResponse "Failed to delete payment method"
// @Security BearerAuth
// @Router /payment-methods/{id} [delete]
func (h *paymentMethodHandler) deletePaymentMethod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	methodID := c.Param("id")

	if err := h.methodService.DeletePaymentMethod(c.Request.Context(), methodID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Payment method not found"})
			return
		}
		logger.Error("Failed to delete payment method", slog.String("method_id", methodID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete payment method"})
		return
	}

	c.Status(http.StatusNoContent)
}
