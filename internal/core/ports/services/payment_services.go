package services

import (
	"context"

	"github.com/useprospera/prospera_backend/internal/core/domain"
	"github.com/useprospera/prospera_backend/internal/dto"
)

// PaymentMethodReaderSvc defines read operations for payment methods
type PaymentMethodReaderSvc interface {
	// ListPaymentMethods retrieves active methods ordered by name.
	ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error)

	// GetPaymentMethodByID retrieves a single method, falling back to the
	// built-in legacy list for ids that predate stored methods.
	GetPaymentMethodByID(ctx context.Context, methodID string) (*domain.PaymentMethod, error)
}

// PaymentMethodWriterSvc defines write operations for payment methods
type PaymentMethodWriterSvc interface {
	// CreatePaymentMethod persists a new method.
	CreatePaymentMethod(ctx context.Context, req dto.CreatePaymentMethodRequest, creatorEmail string) (*domain.PaymentMethod, error)

	// DeletePaymentMethod removes a method.
	DeletePaymentMethod(ctx context.Context, methodID string) error
}

// PaymentMethodSvcFacade combines all payment-method service interfaces
type PaymentMethodSvcFacade interface {
	PaymentMethodReaderSvc
	PaymentMethodWriterSvc
}
