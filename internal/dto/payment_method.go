package dto

import (
	"github.com/shopspring/decimal"
	"github.com/useprospera/prospera_backend/internal/core/domain"
)

// CreatePaymentMethodRequest defines the data needed to create a payment method.
type CreatePaymentMethodRequest struct {
	Name            string          `json:"name" binding:"required"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	Active          *bool           `json:"active"`
}

// PaymentMethodResponse defines the data returned for a payment method.
type PaymentMethodResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	Active          bool            `json:"active"`
}

// ToPaymentMethodResponse converts a domain.PaymentMethod to its DTO.
func ToPaymentMethodResponse(m *domain.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		ID:              m.MethodID,
		Name:            m.Name,
		DiscountPercent: m.DiscountPercent,
		Active:          m.Active,
	}
}

// ToListPaymentMethodResponse converts a slice of methods to DTOs.
func ToListPaymentMethodResponse(methods []domain.PaymentMethod) []PaymentMethodResponse {
	res := make([]PaymentMethodResponse, len(methods))
	for i, m := range methods {
		res[i] = ToPaymentMethodResponse(&m)
	}
	return res
}
