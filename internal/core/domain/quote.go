package domain

import "time"

// QuoteStatus indicates where a quote sits in its lifecycle.
type QuoteStatus string

const (
	StatusDraft    QuoteStatus = "DRAFT"
	StatusSent     QuoteStatus = "SENT"
	StatusApproved QuoteStatus = "APPROVED"
	// StatusExpired is manually assignable only; nothing in the system sets it
	// on a timer.
	StatusExpired QuoteStatus = "EXPIRED"
)

// ValidStatus reports whether s is one of the known lifecycle statuses.
func ValidStatus(s QuoteStatus) bool {
	switch s {
	case StatusDraft, StatusSent, StatusApproved, StatusExpired:
		return true
	}
	return false
}

// LayoutType selects the client-facing presentation. Rendering only, never
// pricing.
type LayoutType string

const (
	LayoutSimple  LayoutType = "SIMPLE"
	LayoutPremium LayoutType = "PREMIUM"
)

// Quote is the aggregate root: client info, line items, payment options and
// lifecycle status. The id is a short human-transcribable code, compared
// case-insensitively.
type Quote struct {
	QuoteID            string      `json:"id"`
	ClientName         string      `json:"clientName"`
	ClientEmail        string      `json:"clientEmail,omitempty"`
	ServiceDescription string      `json:"serviceDescription,omitempty"`
	ValidUntil         time.Time   `json:"validUntil"`
	ProductionDays     int         `json:"productionDays"`
	Items              []LineItem  `json:"items"`
	Status             QuoteStatus `json:"status"`
	UserEmail          string      `json:"userEmail,omitempty"`

	// Payment terms. PaymentOptions is the current shape; legacy records carry
	// only PaymentMethodID (plus the flat installment fields) and no list.
	PaymentOptions          []PaymentOption `json:"paymentOptions,omitempty"`
	PaymentMethodID         string          `json:"paymentMethodId,omitempty"`
	LegacyInstallments      int             `json:"installments,omitempty"`
	LegacyHasDownPayment    bool            `json:"hasDownPayment,omitempty"`
	SelectedPaymentOptionID *string         `json:"selectedPaymentOptionId,omitempty"`

	LayoutType LayoutType    `json:"layoutType,omitempty"`
	Content    *QuoteContent `json:"content,omitempty"`

	AuditFields
}

// Plan returns the quote's payment terms as a tagged union ready for
// normalization.
func (q *Quote) Plan() PaymentPlan {
	return PaymentPlan{
		Options:        q.PaymentOptions,
		MethodID:       q.PaymentMethodID,
		Installments:   q.LegacyInstallments,
		HasDownPayment: q.LegacyHasDownPayment,
	}
}

// OptionByID looks up a payment option on the quote's ordered list.
func (q *Quote) OptionByID(optionID string) (PaymentOption, bool) {
	for _, opt := range q.PaymentOptions {
		if opt.OptionID == optionID {
			return opt, true
		}
	}
	return PaymentOption{}, false
}

// IsApproved reports whether the quote has been accepted by the client, after
// which items and options are frozen for the client-facing flow.
func (q *Quote) IsApproved() bool {
	return q.Status == StatusApproved
}
