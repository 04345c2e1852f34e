package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/useprospera/prospera_backend/internal/core/domain"
)

func TestPaymentPlan_Normalize(t *testing.T) {
	storedMethods := map[string]domain.PaymentMethod{
		"m1": {MethodID: "m1", Name: "Transferência", DiscountPercent: decimal.NewFromInt(3), Active: true},
	}
	lookup := func(methodID string) (domain.PaymentMethod, bool) {
		m, ok := storedMethods[methodID]
		return m, ok
	}

	tests := []struct {
		name         string
		plan         domain.PaymentPlan
		wantLen      int
		wantOptionID string
		wantDiscount decimal.Decimal
		wantInstall  int
	}{
		{
			name: "option list passes through untouched",
			plan: domain.PaymentPlan{
				Options: []domain.PaymentOption{
					{OptionID: "opt-1", PaymentMethodID: "pix", Installments: 2, DiscountPercent: decimal.NewFromInt(10)},
					{OptionID: "opt-2", PaymentMethodID: "cartao", Installments: 6, DiscountPercent: decimal.Zero},
				},
			},
			wantLen:      2,
			wantOptionID: "opt-1",
			wantDiscount: decimal.NewFromInt(10),
			wantInstall:  2,
		},
		{
			name:         "legacy flat method resolves against stored methods",
			plan:         domain.PaymentPlan{MethodID: "m1", Installments: 3},
			wantLen:      1,
			wantOptionID: "legacy-m1",
			wantDiscount: decimal.NewFromInt(3),
			wantInstall:  3,
		},
		{
			name:         "legacy built-in pix keeps its discount",
			plan:         domain.PaymentPlan{MethodID: "pix"},
			wantLen:      1,
			wantOptionID: "legacy-pix",
			wantDiscount: decimal.NewFromInt(5),
			wantInstall:  1,
		},
		{
			name:         "unknown legacy id falls back to the default entry",
			plan:         domain.PaymentPlan{MethodID: "sumiu", Installments: 4},
			wantLen:      1,
			wantOptionID: "legacy-cartao",
			wantDiscount: decimal.Zero,
			wantInstall:  4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.plan.Normalize(lookup)
			require.Len(t, got, tt.wantLen)
			assert.Equal(t, tt.wantOptionID, got[0].OptionID)
			assert.True(t, got[0].DiscountPercent.Equal(tt.wantDiscount),
				"discount was %s, want %s", got[0].DiscountPercent, tt.wantDiscount)
			assert.Equal(t, tt.wantInstall, got[0].Installments)
		})
	}
}

func TestPaymentPlan_Normalize_NilLookup(t *testing.T) {
	plan := domain.PaymentPlan{MethodID: "boleto", Installments: 2, HasDownPayment: true}

	got := plan.Normalize(nil)

	require.Len(t, got, 1)
	assert.Equal(t, "legacy-boleto", got[0].OptionID)
	assert.True(t, got[0].HasDownPayment)
	assert.True(t, got[0].DiscountPercent.IsZero())
}

func TestOptionLabel(t *testing.T) {
	assert.Equal(t, "Opção A", domain.OptionLabel(0))
	assert.Equal(t, "Opção B", domain.OptionLabel(1))
	assert.Equal(t, "Opção Z", domain.OptionLabel(25))
	assert.Equal(t, "Opção AA", domain.OptionLabel(26))
	assert.Equal(t, "Opção A", domain.OptionLabel(-3))
}

func TestQuote_OptionByID(t *testing.T) {
	q := domain.Quote{
		PaymentOptions: []domain.PaymentOption{
			{OptionID: "opt-a"},
			{OptionID: "opt-b"},
		},
	}

	opt, ok := q.OptionByID("opt-b")
	require.True(t, ok)
	assert.Equal(t, "opt-b", opt.OptionID)

	_, ok = q.OptionByID("opt-z")
	assert.False(t, ok)
}
