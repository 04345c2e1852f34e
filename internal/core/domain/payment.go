package domain

import "github.com/shopspring/decimal"

// PaymentMethod is reference data managed independently of quotes. A quote
// stores only the method id; the option's own discount percent is what the
// pricing engine uses.
type PaymentMethod struct {
	MethodID        string          `json:"id"`
	Name            string          `json:"name"`
	DiscountPercent decimal.Decimal `json:"discountPercent"` // 0-100
	Active          bool            `json:"active"`
	AuditFields
}

// PaymentOption is one selectable combination of method, discount and
// installment plan attached to a quote. DiscountPercent is copied from the
// method at creation time and may be hand-edited afterwards.
type PaymentOption struct {
	OptionID        string          `json:"id"`
	PaymentMethodID string          `json:"paymentMethodId"`
	Installments    int             `json:"installments"` // >= 1
	HasDownPayment  bool            `json:"hasDownPayment"`
	DiscountPercent decimal.Decimal `json:"discountPercent"` // 0-100
	PaymentTerms    string          `json:"paymentTerms,omitempty"`
}

// PaymentPlan is the tagged-union view of how a quote carries its payment
// terms: either an ordered option list, or (for legacy records) a single flat
// method id with optional installment fields.
type PaymentPlan struct {
	Options []PaymentOption

	// Legacy single-method fields, only meaningful when Options is empty.
	MethodID       string
	Installments   int
	HasDownPayment bool
}

// fallbackPaymentMethods mirrors the fixed list the original client shipped
// for quotes that predate stored payment methods. The second entry is the
// default when a legacy method id matches nothing.
var fallbackPaymentMethods = []PaymentMethod{
	{MethodID: "pix", Name: "Pix", DiscountPercent: decimal.NewFromInt(5), Active: true},
	{MethodID: "cartao", Name: "Cartão de Crédito", DiscountPercent: decimal.Zero, Active: true},
	{MethodID: "boleto", Name: "Boleto Bancário", DiscountPercent: decimal.Zero, Active: true},
}

// FallbackPaymentMethod resolves a legacy method id against the built-in list.
func FallbackPaymentMethod(methodID string) PaymentMethod {
	for _, m := range fallbackPaymentMethods {
		if m.MethodID == methodID {
			return m
		}
	}
	return fallbackPaymentMethods[1]
}

// FallbackPaymentMethods returns a copy of the built-in method list.
func FallbackPaymentMethods() []PaymentMethod {
	out := make([]PaymentMethod, len(fallbackPaymentMethods))
	copy(out, fallbackPaymentMethods)
	return out
}

// Normalize converts the plan into a non-empty option list so the pricing
// engine only ever sees one shape. A legacy single-method plan becomes a
// synthetic one-element list carrying the method's discount; lookup resolves
// method ids against stored methods and may be nil, in which case only the
// built-in fallback list is consulted.
func (p PaymentPlan) Normalize(lookup func(methodID string) (PaymentMethod, bool)) []PaymentOption {
	if len(p.Options) > 0 {
		out := make([]PaymentOption, len(p.Options))
		copy(out, p.Options)
		return out
	}

	method, found := PaymentMethod{}, false
	if lookup != nil {
		method, found = lookup(p.MethodID)
	}
	if !found {
		method = FallbackPaymentMethod(p.MethodID)
	}

	installments := p.Installments
	if installments < 1 {
		installments = 1
	}

	return []PaymentOption{{
		OptionID:        "legacy-" + method.MethodID,
		PaymentMethodID: method.MethodID,
		Installments:    installments,
		HasDownPayment:  p.HasDownPayment,
		DiscountPercent: method.DiscountPercent,
	}}
}

// OptionLabel returns the operator-facing label for the option at the given
// position in the quote's ordered list ("Opção A", "Opção B", ...).
func OptionLabel(index int) string {
	if index < 0 {
		index = 0
	}
	letters := ""
	for {
		letters = string(rune('A'+index%26)) + letters
		index = index/26 - 1
		if index < 0 {
			break
		}
	}
	return "Opção " + letters
}
