package stock_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Radiologia-api/internal/domain/entity"
	"github.com/jhoicas/Radiologia-api/internal/domain/stock"
)

func TestEstimateItemsCost(t *testing.T) {
	prices := stock.NewPriceMap([]entity.Material{
		{ID: 1, Name: "Gadolinio", UnitPrice: decimal.NewFromFloat(1.50)},
		{ID: 2, Name: "Guante", UnitPrice: decimal.NewFromFloat(2.00)},
	})

	enriched, total := stock.EstimateItemsCost([]entity.ExamUsageItem{
		{MaterialID: 1, Quantity: 10},
		{MaterialID: 2, Quantity: 2},
		{MaterialID: 1, Quantity: 0},  // descartada
		{MaterialID: 2, Quantity: -1}, // descartada
	}, prices)

	require.Len(t, enriched, 2)
	assert.True(t, enriched[0].Subtotal.Equal(decimal.NewFromFloat(15.0)), "subtotal=%s", enriched[0].Subtotal)
	assert.True(t, enriched[1].Subtotal.Equal(decimal.NewFromFloat(4.0)), "subtotal=%s", enriched[1].Subtotal)
	assert.True(t, total.Equal(decimal.NewFromFloat(19.0)), "total=%s", total)
}

func TestEstimateItemsCost_MaterialSinPrecio(t *testing.T) {
	enriched, total := stock.EstimateItemsCost([]entity.ExamUsageItem{
		{MaterialID: 42, Quantity: 3},
	}, stock.PriceMap{})

	require.Len(t, enriched, 1)
	assert.True(t, enriched[0].UnitPrice.IsZero(), "sin precio en catálogo el unitario es cero")
	assert.True(t, total.IsZero())
}
