package stock

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Radiologia-api/internal/domain/entity"
)

// PriceMap precio unitario por id de material.
type PriceMap map[int]decimal.Decimal

// NewPriceMap construye el mapa de precios desde el catálogo.
func NewPriceMap(materials []entity.Material) PriceMap {
	pm := make(PriceMap, len(materials))
	for _, m := range materials {
		pm[m.ID] = m.UnitPrice
	}
	return pm
}

// EstimateItemsCost enriquece las líneas de consumo con precio unitario y
// subtotal (redondeado a 6 decimales) y devuelve el total estimado.
// Las líneas con cantidad <= 0 se descartan, igual que en el origen de datos.
func EstimateItemsCost(items []entity.ExamUsageItem, prices PriceMap) ([]entity.ExamUsageItem, decimal.Decimal) {
	enriched := make([]entity.ExamUsageItem, 0, len(items))
	total := decimal.Zero
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		price := prices[it.MaterialID]
		subtotal := price.Mul(decimal.NewFromFloat(it.Quantity)).Round(6)
		enriched = append(enriched, entity.ExamUsageItem{
			MaterialID: it.MaterialID,
			Quantity:   it.Quantity,
			LotID:      it.LotID,
			UnitPrice:  price,
			Subtotal:   subtotal,
		})
		total = total.Add(subtotal)
	}
	return enriched, total.Round(6)
}
