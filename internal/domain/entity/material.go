package entity

import "github.com/shopspring/decimal"

// Tipos de material del catálogo.
const (
	MaterialTypeMaterial = "Material"
	MaterialTypeContrast = "Contraste"
)

// Material representa un insumo consumible del catálogo (material o contraste).
// InitialStock es el stock inicial heredado del sistema anterior: solo se usa
// como base de la fórmula de saldo cuando el material aún no tiene lotes.
type Material struct {
	ID           int             `json:"id"`
	Name         string          `json:"nombre"`
	Type         string          `json:"tipo"`    // Material | Contraste
	Unit         string          `json:"unidad"`  // mL, par, unidad...
	UnitPrice    decimal.Decimal `json:"valor_unitario"`
	InitialStock float64         `json:"stock_inicial"`
	MinStock     float64         `json:"stock_minimo"` // 0 = sin alerta de mínimo
}
