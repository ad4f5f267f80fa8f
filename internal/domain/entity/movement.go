package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento manual de stock (value object conceptual).
const (
	MovementTypeEntry  = "entrada"
	MovementTypeExit   = "salida"
	MovementTypeAdjust = "ajuste"
)

// ValidMovementType valida el tipo de movimiento.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeEntry, MovementTypeExit, MovementTypeAdjust:
		return true
	}
	return false
}

// Movement es un movimiento manual de stock, inmutable una vez registrado.
// Quantity siempre es positiva: la dirección la da Type (y para "ajuste",
// la heurística de dirección del registrador de movimientos).
// El consumo por exámenes NO genera movimientos; descuenta lotes directamente.
type Movement struct {
	ID         int              `json:"id"`
	MaterialID int              `json:"material_id"`
	Type       string           `json:"tipo"` // entrada | salida | ajuste
	Quantity   float64          `json:"cantidad"`
	LotCode    *string          `json:"lote,omitempty"`
	Expiry     *string          `json:"vencimiento,omitempty"` // ISO YYYY-MM-DD
	UnitCost   *decimal.Decimal `json:"valor_unitario,omitempty"`
	Note       *string          `json:"obs,omitempty"`
	CreatedAt  time.Time        `json:"ts"`
}
