package dto

import (
	"github.com/shopspring/decimal"
	"github.com/useprospera/prospera_backend/internal/core/domain"
)

// CreateServiceRequest defines the data needed to add a catalog entry.
type CreateServiceRequest struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        string          `json:"type" binding:"required,oneof=ONE_TIME RECURRING"`
}

// ServiceResponse defines the data returned for a catalog entry.
type ServiceResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        domain.ItemKind `json:"type"`
	UserEmail   string          `json:"userEmail,omitempty"`
}

// ToServiceResponse converts a domain.CatalogService to its DTO.
func ToServiceResponse(s *domain.CatalogService) ServiceResponse {
	return ServiceResponse{
		ID:          s.ServiceID,
		Description: s.Description,
		Amount:      s.Amount,
		Kind:        s.Kind,
		UserEmail:   s.UserEmail,
	}
}

// ToListServiceResponse converts a slice of catalog entries to DTOs.
func ToListServiceResponse(services []domain.CatalogService) []ServiceResponse {
	res := make([]ServiceResponse, len(services))
	for i, s := range services {
		res[i] = ToServiceResponse(&s)
	}
	return res
}
