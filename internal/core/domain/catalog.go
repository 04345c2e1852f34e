package domain

import "github.com/shopspring/decimal"

// CatalogService is a reusable catalog entry an operator can import verbatim
// as a line item when assembling a quote.
type CatalogService struct {
	ServiceID   string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        ItemKind        `json:"type"`
	UserEmail   string          `json:"userEmail,omitempty"`
	AuditFields
}

// AsLineItem converts a catalog entry into a quote line item with the given id.
func (s CatalogService) AsLineItem(itemID string) LineItem {
	return LineItem{
		ItemID:      itemID,
		Description: s.Description,
		Amount:      s.Amount,
		Kind:        s.Kind,
	}
}
