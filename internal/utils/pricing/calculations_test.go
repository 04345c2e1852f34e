package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/useprospera/prospera_backend/internal/apperrors"
	"github.com/useprospera/prospera_backend/internal/core/domain"
	"github.com/useprospera/prospera_backend/internal/utils/pricing"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleItems() []domain.LineItem {
	return []domain.LineItem{
		{ItemID: "i1", Description: "Design", Amount: dec("1000"), Kind: domain.OneTime},
		{ItemID: "i2", Description: "Hosting", Amount: dec("50"), Kind: domain.Recurring},
	}
}

func TestSubtotal_PartitionsItems(t *testing.T) {
	items := []domain.LineItem{
		{ItemID: "a", Description: "Site", Amount: dec("1200.50"), Kind: domain.OneTime},
		{ItemID: "b", Description: "SEO", Amount: dec("300"), Kind: domain.OneTime},
		{ItemID: "c", Description: "Hospedagem", Amount: dec("49.90"), Kind: domain.Recurring},
		{ItemID: "d", Description: "Suporte", Amount: dec("99.90"), Kind: domain.Recurring},
	}

	oneTime := pricing.Subtotal(items, domain.OneTime)
	recurring := pricing.Subtotal(items, domain.Recurring)

	assert.True(t, oneTime.Equal(dec("1500.50")), "one-time subtotal: %s", oneTime)
	assert.True(t, recurring.Equal(dec("149.80")), "recurring subtotal: %s", recurring)

	// Partition completeness: the two subtotals account for every item.
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	assert.True(t, oneTime.Add(recurring).Equal(total))
}

func TestSubtotal_EmptyItems(t *testing.T) {
	assert.True(t, pricing.Subtotal(nil, domain.OneTime).IsZero())
	assert.True(t, pricing.Subtotal(nil, domain.Recurring).IsZero())
}

func TestDiscountAmount(t *testing.T) {
	tests := []struct {
		name     string
		subtotal string
		percent  string
		want     string
	}{
		{"five percent", "1000", "5", "50"},
		{"zero percent", "1000", "0", "0"},
		{"full discount", "200", "100", "200"},
		{"fractional subtotal", "333.33", "10", "33.333"},
		{"zero subtotal", "0", "50", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pricing.DiscountAmount(dec(tt.subtotal), dec(tt.percent))
			assert.True(t, got.Equal(dec(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestTotalOneTime_MatchesClosedForm(t *testing.T) {
	// S - S*d/100 == S*(1-d/100), and the result is never negative for
	// d in [0,100].
	for _, d := range []string{"0", "5", "12.5", "50", "100"} {
		subtotal := dec("950.75")
		discount := pricing.DiscountAmount(subtotal, dec(d))
		total := pricing.TotalOneTime(subtotal, discount)

		closedForm := subtotal.Mul(decimal.NewFromInt(1).Sub(dec(d).Div(dec("100"))))
		assert.True(t, total.Equal(closedForm), "discount %s%%: %s != %s", d, total, closedForm)
		assert.False(t, total.IsNegative())
	}
}

func TestInstallmentSchedule_SumsToTotal(t *testing.T) {
	tests := []struct {
		name         string
		total        string
		installments int
	}{
		{"single", "950", 1},
		{"even split", "900", 3},
		{"remainder", "1000", 3},
		{"many installments", "1234.56", 12},
		{"tiny total", "0.05", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule, err := pricing.InstallmentSchedule(dec(tt.total), tt.installments)
			require.NoError(t, err)
			require.Len(t, schedule, tt.installments)

			sum := decimal.Zero
			for _, part := range schedule {
				sum = sum.Add(part)
			}
			assert.True(t, sum.Equal(dec(tt.total).Round(2)), "schedule sums to %s, want %s", sum, tt.total)
		})
	}
}

func TestInstallmentSchedule_RemainderOnLast(t *testing.T) {
	schedule, err := pricing.InstallmentSchedule(dec("1000"), 3)
	require.NoError(t, err)

	assert.True(t, schedule[0].Equal(dec("333.33")))
	assert.True(t, schedule[1].Equal(dec("333.33")))
	assert.True(t, schedule[2].Equal(dec("333.34")))
}

func TestInstallmentSchedule_RejectsZeroInstallments(t *testing.T) {
	_, err := pricing.InstallmentSchedule(dec("100"), 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestValidateOption_RangeChecks(t *testing.T) {
	tests := []struct {
		name    string
		option  domain.PaymentOption
		wantErr bool
	}{
		{"valid", domain.PaymentOption{OptionID: "o1", DiscountPercent: dec("5"), Installments: 1}, false},
		{"boundary zero", domain.PaymentOption{OptionID: "o2", DiscountPercent: dec("0"), Installments: 1}, false},
		{"boundary hundred", domain.PaymentOption{OptionID: "o3", DiscountPercent: dec("100"), Installments: 1}, false},
		{"negative discount", domain.PaymentOption{OptionID: "o4", DiscountPercent: dec("-1"), Installments: 1}, true},
		{"over hundred", domain.PaymentOption{OptionID: "o5", DiscountPercent: dec("101"), Installments: 1}, true},
		{"zero installments", domain.PaymentOption{OptionID: "o6", DiscountPercent: dec("0"), Installments: 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pricing.ValidateOption(tt.option)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateItems_RejectsBadItems(t *testing.T) {
	err := pricing.ValidateItems([]domain.LineItem{
		{ItemID: "x", Description: "", Amount: dec("10"), Kind: domain.OneTime},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	err = pricing.ValidateItems([]domain.LineItem{
		{ItemID: "y", Description: "Design", Amount: dec("-10"), Kind: domain.OneTime},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

// Scenario: Design 1000 one-time + Hosting 50 recurring, 5% discount, single
// installment. The editor headline shows 950 plus "50/mo".
func TestComputeOption_DiscountedSingleInstallment(t *testing.T) {
	option := domain.PaymentOption{
		OptionID:        "opt-a",
		PaymentMethodID: "pix",
		Installments:    1,
		DiscountPercent: dec("5"),
	}

	b, err := pricing.ComputeOption(sampleItems(), option)
	require.NoError(t, err)

	assert.True(t, b.SubtotalOneTime.Equal(dec("1000")))
	assert.True(t, b.SubtotalRecurring.Equal(dec("50")))
	assert.True(t, b.DiscountAmount.Equal(dec("50")))
	assert.True(t, b.TotalOneTime.Equal(dec("950")))
	assert.True(t, b.GrandTotal.Equal(dec("1000"))) // 950 one-time + 50 recurring
	assert.True(t, b.InstallmentAmount.Equal(dec("950")))
	require.Len(t, b.Installments, 1)
}

// Scenario: same items, no discount, three installments. 1000/3 rounds to
// 333.33 with the extra cent on the last installment.
func TestComputeOption_ThreeInstallments(t *testing.T) {
	option := domain.PaymentOption{
		OptionID:        "opt-b",
		PaymentMethodID: "boleto",
		Installments:    3,
		DiscountPercent: dec("0"),
	}

	b, err := pricing.ComputeOption(sampleItems(), option)
	require.NoError(t, err)

	assert.True(t, b.TotalOneTime.Equal(dec("1000")))
	assert.True(t, b.InstallmentAmount.Equal(dec("333.33")))
	require.Len(t, b.Installments, 3)
	assert.True(t, b.Installments[2].Equal(dec("333.34")))
}

// The down-payment flag changes the descriptive wording only; the schedule is
// identical with and without it.
func TestComputeOption_DownPaymentDoesNotChangeMath(t *testing.T) {
	base := domain.PaymentOption{OptionID: "o", Installments: 4, DiscountPercent: dec("10")}
	withDown := base
	withDown.HasDownPayment = true

	a, err := pricing.ComputeOption(sampleItems(), base)
	require.NoError(t, err)
	b, err := pricing.ComputeOption(sampleItems(), withDown)
	require.NoError(t, err)

	require.Len(t, b.Installments, len(a.Installments))
	for i := range a.Installments {
		assert.True(t, a.Installments[i].Equal(b.Installments[i]))
	}
}

// Pure function: computing the same option twice yields identical results.
func TestComputeOption_Idempotent(t *testing.T) {
	option := domain.PaymentOption{OptionID: "o", Installments: 7, DiscountPercent: dec("12.5")}
	items := sampleItems()

	first, err := pricing.ComputeOption(items, option)
	require.NoError(t, err)
	second, err := pricing.ComputeOption(items, option)
	require.NoError(t, err)

	assert.True(t, first.TotalOneTime.Equal(second.TotalOneTime))
	assert.True(t, first.GrandTotal.Equal(second.GrandTotal))
	for i := range first.Installments {
		assert.True(t, first.Installments[i].Equal(second.Installments[i]))
	}
}

func TestComputeAll_LabelsByPosition(t *testing.T) {
	options := []domain.PaymentOption{
		{OptionID: "o1", Installments: 1, DiscountPercent: dec("5")},
		{OptionID: "o2", Installments: 3, DiscountPercent: dec("0")},
	}

	breakdowns, err := pricing.ComputeAll(sampleItems(), options)
	require.NoError(t, err)
	require.Len(t, breakdowns, 2)

	assert.Equal(t, "Opção A", breakdowns[0].Label)
	assert.Equal(t, "Opção B", breakdowns[1].Label)
	assert.True(t, breakdowns[0].TotalOneTime.Equal(dec("950")))
	assert.True(t, breakdowns[1].TotalOneTime.Equal(dec("1000")))
}

func TestComputeAll_PropagatesValidationError(t *testing.T) {
	options := []domain.PaymentOption{
		{OptionID: "bad", Installments: 1, DiscountPercent: dec("250")},
	}
	_, err := pricing.ComputeAll(sampleItems(), options)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
