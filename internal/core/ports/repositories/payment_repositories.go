package repositories

import (
	"context"

	"github.com/useprospera/prospera_backend/internal/core/domain"
)

// PaymentMethodReader defines read operations for payment method data
type PaymentMethodReader interface {
	// ListActivePaymentMethods retrieves active methods ordered by name.
	ListActivePaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error)

	// FindPaymentMethodByID retrieves a single method, active or not.
	FindPaymentMethodByID(ctx context.Context, methodID string) (*domain.PaymentMethod, error)
}

// PaymentMethodWriter defines write operations for payment method data
type PaymentMethodWriter interface {
	// SavePaymentMethod persists a new payment method.
	SavePaymentMethod(ctx context.Context, method domain.PaymentMethod) error

	// DeletePaymentMethod removes a payment method.
	DeletePaymentMethod(ctx context.Context, methodID string) error
}

// PaymentMethodRepositoryFacade combines all payment-method repository interfaces
type PaymentMethodRepositoryFacade interface {
	PaymentMethodReader
	PaymentMethodWriter
}
