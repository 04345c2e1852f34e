package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/useprospera/prospera_backend/internal/apperrors"
	"github.com/useprospera/prospera_backend/internal/core/domain"
)

// The pricing engine is pure: given line items and a payment option it
// produces the figures shown to operator and client. No I/O, no hidden state.
// Amounts stay unrounded decimals internally; rounding to 2 decimal places
// happens only at the installment/display boundary.

var oneHundred = decimal.NewFromInt(100)

// Subtotal sums the amounts of the items matching the given kind. Calling it
// once per kind partitions the item set with no overlap and no leftovers.
func Subtotal(items []domain.LineItem, kind domain.ItemKind) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		if item.Kind == kind {
			sum = sum.Add(item.Amount)
		}
	}
	return sum
}

// DiscountAmount is the absolute discount on the one-time subtotal. Recurring
// amounts are never discounted.
func DiscountAmount(subtotalOneTime, discountPercent decimal.Decimal) decimal.Decimal {
	return subtotalOneTime.Mul(discountPercent).Div(oneHundred)
}

// TotalOneTime is the discounted one-time subtotal.
func TotalOneTime(subtotalOneTime, discountAmount decimal.Decimal) decimal.Decimal {
	return subtotalOneTime.Sub(discountAmount)
}

// OptionTotal recomputes the one-time total under a specific option. The
// option's own discount percent is authoritative, not the referenced method's.
func OptionTotal(subtotalOneTime decimal.Decimal, option domain.PaymentOption) decimal.Decimal {
	return TotalOneTime(subtotalOneTime, DiscountAmount(subtotalOneTime, option.DiscountPercent))
}

// InstallmentSchedule splits total into n parts rounded to cents. The parts
// are equal except that the cent remainder lands on the last installment, so
// the schedule always sums back to the rounded total. A down-payment flag on
// the option changes wording only, never this math.
func InstallmentSchedule(total decimal.Decimal, installments int) ([]decimal.Decimal, error) {
	if installments < 1 {
		return nil, fmt.Errorf("%w: installments must be at least 1, got %d", apperrors.ErrValidation, installments)
	}
	n := decimal.NewFromInt(int64(installments))
	per := total.DivRound(n, 2)

	schedule := make([]decimal.Decimal, installments)
	for i := 0; i < installments-1; i++ {
		schedule[i] = per
	}
	schedule[installments-1] = total.Round(2).Sub(per.Mul(decimal.NewFromInt(int64(installments - 1))))
	return schedule, nil
}

// ValidateItems rejects items the engine must never see: empty descriptions
// and negative amounts.
func ValidateItems(items []domain.LineItem) error {
	for _, item := range items {
		if item.Description == "" {
			return fmt.Errorf("%w: line item %s has an empty description", apperrors.ErrValidation, item.ItemID)
		}
		if item.Amount.IsNegative() {
			return fmt.Errorf("%w: line item %s has a negative amount %s", apperrors.ErrValidation, item.ItemID, item.Amount.String())
		}
		if item.Kind != domain.OneTime && item.Kind != domain.Recurring {
			return fmt.Errorf("%w: line item %s has unknown kind %q", apperrors.ErrValidation, item.ItemID, item.Kind)
		}
	}
	return nil
}

// ValidateOption range-checks an option before any math runs. Discount
// percents outside [0,100] would silently produce negative prices, so they
// fail instead.
func ValidateOption(option domain.PaymentOption) error {
	if option.DiscountPercent.IsNegative() || option.DiscountPercent.GreaterThan(oneHundred) {
		return fmt.Errorf("%w: discount percent %s is outside [0,100] for option %s", apperrors.ErrValidation, option.DiscountPercent.String(), option.OptionID)
	}
	if option.Installments < 1 {
		return fmt.Errorf("%w: installments must be at least 1, got %d for option %s", apperrors.ErrValidation, option.Installments, option.OptionID)
	}
	return nil
}

// OptionBreakdown is everything the editor and viewer display for one option.
type OptionBreakdown struct {
	Option            domain.PaymentOption
	Label             string
	SubtotalOneTime   decimal.Decimal
	SubtotalRecurring decimal.Decimal
	DiscountAmount    decimal.Decimal
	TotalOneTime      decimal.Decimal
	// GrandTotal is the editor headline: discounted one-time total plus the
	// recurring subtotal shown as a single figure. The viewer in multi-option
	// mode shows TotalOneTime and SubtotalRecurring separately instead.
	GrandTotal        decimal.Decimal
	InstallmentAmount decimal.Decimal
	Installments      []decimal.Decimal
}

// ComputeOption runs the full pricing pass for one option over the quote's
// items. It is idempotent: same inputs, same breakdown.
func ComputeOption(items []domain.LineItem, option domain.PaymentOption) (*OptionBreakdown, error) {
	if err := ValidateItems(items); err != nil {
		return nil, err
	}
	if err := ValidateOption(option); err != nil {
		return nil, err
	}

	subtotalOneTime := Subtotal(items, domain.OneTime)
	subtotalRecurring := Subtotal(items, domain.Recurring)
	discount := DiscountAmount(subtotalOneTime, option.DiscountPercent)
	totalOneTime := TotalOneTime(subtotalOneTime, discount)

	schedule, err := InstallmentSchedule(totalOneTime, option.Installments)
	if err != nil {
		return nil, err
	}

	return &OptionBreakdown{
		Option:            option,
		SubtotalOneTime:   subtotalOneTime,
		SubtotalRecurring: subtotalRecurring,
		DiscountAmount:    discount,
		TotalOneTime:      totalOneTime,
		GrandTotal:        totalOneTime.Add(subtotalRecurring),
		InstallmentAmount: schedule[0],
		Installments:      schedule,
	}, nil
}

// ComputeAll prices every option in order, labelling them by position
// (Opção A, B, C, ...). The options slice must already be normalized, i.e.
// legacy single-method quotes converted to a one-element list.
func ComputeAll(items []domain.LineItem, options []domain.PaymentOption) ([]OptionBreakdown, error) {
	breakdowns := make([]OptionBreakdown, 0, len(options))
	for i, opt := range options {
		b, err := ComputeOption(items, opt)
		if err != nil {
			return nil, err
		}
		b.Label = domain.OptionLabel(i)
		breakdowns = append(breakdowns, *b)
	}
	return breakdowns, nil
}
