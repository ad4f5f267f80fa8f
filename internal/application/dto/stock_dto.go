package dto

import "github.com/shopspring/decimal"

// RegisterMovementRequest alta de movimiento manual de stock.
// Para "ajuste" la dirección no viene en el request: la infiere el registrador
// (costo unitario presente o signo en la nota).
type RegisterMovementRequest struct {
	MaterialID int              `json:"material_id" validate:"required,gt=0"`
	Type       string           `json:"tipo" validate:"required,oneof=entrada salida ajuste"`
	Quantity   float64          `json:"cantidad" validate:"required,gt=0"`
	LotCode    *string          `json:"lote,omitempty"`
	Expiry     *string          `json:"vencimiento,omitempty" validate:"omitempty,datetime=2006-01-02"`
	UnitCost   *decimal.Decimal `json:"valor_unitario,omitempty"`
	Note       *string          `json:"obs,omitempty"`
}

// ConsumeItemRequest una línea de consumo directo por lotes.
type ConsumeItemRequest struct {
	MaterialID int     `json:"material_id" validate:"required,gt=0"`
	Quantity   float64 `json:"cantidad" validate:"required,gt=0"`
	LotID      *int    `json:"lote_id,omitempty"`
}

// ConsumeRequest lote de líneas de consumo; todo-o-nada.
type ConsumeRequest struct {
	Items []ConsumeItemRequest `json:"items" validate:"required,min=1,dive"`
}

// BatchResponse lote activo de un material para la UI.
type BatchResponse struct {
	ID         int     `json:"id"`
	MaterialID int     `json:"material_id"`
	LotCode    string  `json:"lote"`
	Expiry     string  `json:"vencimiento"`
	Balance    float64 `json:"saldo"`
}

// SnapshotRow fila del tablero gerencial de stock (derivada, no persistida).
type SnapshotRow struct {
	MaterialID   int             `json:"id"`
	Name         string          `json:"nombre"`
	Type         string          `json:"tipo"`
	Unit         string          `json:"unidad"`
	UnitPrice    decimal.Decimal `json:"valor_unitario"`
	InitialStock float64         `json:"stock_inicial"`
	MinStock     float64         `json:"stock_minimo"`
	Consumption  float64         `json:"consumo_examenes"`
	Entries      float64         `json:"entradas"`
	Exits        float64         `json:"salidas"`
	Adjustments  float64         `json:"ajustes"`
	Current      float64         `json:"stock_actual"`
	BelowMin     bool            `json:"bajo_minimo"`
}
