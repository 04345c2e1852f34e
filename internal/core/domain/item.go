package domain

import "github.com/shopspring/decimal"

// ItemKind indicates whether a line item is billed once or on a monthly basis.
type ItemKind string

const (
	OneTime   ItemKind = "ONE_TIME"
	Recurring ItemKind = "RECURRING"
)

// LineItem is a single billable entry on a quote. Amount is a non-negative
// currency value; recurring items are never discounted.
type LineItem struct {
	ItemID      string          `json:"id"` // Unique within the quote
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        ItemKind        `json:"type"`
}
