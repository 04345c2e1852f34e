package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/useprospera/prospera_backend/internal/apperrors"
	"github.com/useprospera/prospera_backend/internal/core/domain"
	portsrepo "github.com/useprospera/prospera_backend/internal/core/ports/repositories"
	portssvc "github.com/useprospera/prospera_backend/internal/core/ports/services"
	"github.com/useprospera/prospera_backend/internal/dto"
	"github.com/useprospera/prospera_backend/internal/middleware"
)

var oneHundred = decimal.NewFromInt(100)

// paymentMethodService manages the payment method reference data.
type paymentMethodService struct {
	methodRepo portsrepo.PaymentMethodRepositoryFacade
}

// NewPaymentMethodService creates a new PaymentMethodService.
func NewPaymentMethodService(methodRepo portsrepo.PaymentMethodRepositoryFacade) portssvc.PaymentMethodSvcFacade {
	return &paymentMethodService{methodRepo: methodRepo}
}

var _ portssvc.PaymentMethodSvcFacade = (*paymentMethodService)(nil)

// ListPaymentMethods retrieves the active methods ordered by name.
func (s *paymentMethodService) ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	methods, err := s.methodRepo.ListActivePaymentMethods(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list payment methods", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	return methods, nil
}

// GetPaymentMethodByID retrieves a method by id. Ids that predate stored
// methods resolve against the built-in legacy list instead of failing.
func (s *paymentMethodService) GetPaymentMethodByID(ctx context.Context, methodID string) (*domain.PaymentMethod, error) {
	method, err := s.methodRepo.FindPaymentMethodByID(ctx, methodID)
	if err == nil {
		return method, nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		fallback := domain.FallbackPaymentMethod(methodID)
		return &fallback, nil
	}
	middleware.GetLoggerFromCtx(ctx).Error("Failed to find payment method", slog.String("error", err.Error()), slog.String("method_id", methodID))
	return nil, fmt.Errorf("failed to find payment method %s: %w", methodID, err)
}

// CreatePaymentMethod validates and persists a new method.
func (s *paymentMethodService) CreatePaymentMethod(ctx context.Context, req dto.CreatePaymentMethodRequest, creatorEmail string) (*domain.PaymentMethod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: payment method name is required", apperrors.ErrValidation)
	}
	if req.DiscountPercent.IsNegative() || req.DiscountPercent.GreaterThan(oneHundred) {
		return nil, fmt.Errorf("%w: discount percent %s is outside [0,100]", apperrors.ErrValidation, req.DiscountPercent.String())
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now().UTC()
	method := domain.PaymentMethod{
		MethodID:        uuid.NewString(),
		Name:            strings.TrimSpace(req.Name),
		DiscountPercent: req.DiscountPercent,
		Active:          active,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorEmail,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorEmail,
		},
	}

	if err := s.methodRepo.SavePaymentMethod(ctx, method); err != nil {
		logger.Error("Failed to save payment method", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save payment method: %w", err)
	}

	logger.Info("Payment method created", slog.String("method_id", method.MethodID), slog.String("name", method.Name))
	return &method, nil
}

// DeletePaymentMethod removes a method. Quotes referencing it keep working:
// their options carry their own discount percent, and legacy lookups fall back
// to the built-in list.
func (s *paymentMethodService) DeletePaymentMethod(ctx context.Context, methodID string) error {
	if err := s.methodRepo.DeletePaymentMethod(ctx, methodID); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to delete payment method", slog.String("error", err.Error()), slog.String("method_id", methodID))
		return fmt.Errorf("failed to delete payment method %s: %w", methodID, err)
	}
	return nil
}
