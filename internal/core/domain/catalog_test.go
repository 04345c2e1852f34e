package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/useprospera/prospera_backend/internal/core/domain"
)

func TestCatalogService_AsLineItem(t *testing.T) {
	svc := domain.CatalogService{
		ServiceID:   "svc-1",
		Description: "Manutenção mensal",
		Amount:      decimal.NewFromInt(250),
		Kind:        domain.Recurring,
	}

	item := svc.AsLineItem("item-9")

	assert.Equal(t, "item-9", item.ItemID)
	assert.Equal(t, "Manutenção mensal", item.Description)
	assert.True(t, item.Amount.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, domain.Recurring, item.Kind)
}
