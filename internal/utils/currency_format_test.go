package utils_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/useprospera/prospera_backend/internal/utils"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "R$ 0,00"},
		{"50", "R$ 50,00"},
		{"950", "R$ 950,00"},
		{"1234.5", "R$ 1.234,50"},
		{"1234567.891", "R$ 1.234.567,89"},
		{"333.335", "R$ 333,34"}, // half-away rounding at the display boundary
		{"-10.5", "-R$ 10,50"},
	}
	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.amount)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, utils.FormatBRL(d), "amount %s", tt.amount)
	}
}
