package dto

import "github.com/shopspring/decimal"

// CreateMaterialRequest alta de material en el catálogo.
type CreateMaterialRequest struct {
	Name         string           `json:"nombre" validate:"required"`
	Type         string           `json:"tipo" validate:"omitempty,oneof=Material Contraste"`
	Unit         string           `json:"unidad"`
	UnitPrice    *decimal.Decimal `json:"valor_unitario,omitempty"`
	InitialStock *float64         `json:"stock_inicial,omitempty" validate:"omitempty,gte=0"`
	MinStock     *float64         `json:"stock_minimo,omitempty" validate:"omitempty,gte=0"`
}

// UpdateMaterialRequest actualización parcial de material; nil = sin cambio.
type UpdateMaterialRequest struct {
	Name         *string          `json:"nombre,omitempty"`
	Type         *string          `json:"tipo,omitempty" validate:"omitempty,oneof=Material Contraste"`
	Unit         *string          `json:"unidad,omitempty"`
	UnitPrice    *decimal.Decimal `json:"valor_unitario,omitempty"`
	InitialStock *float64         `json:"stock_inicial,omitempty" validate:"omitempty,gte=0"`
	MinStock     *float64         `json:"stock_minimo,omitempty" validate:"omitempty,gte=0"`
}
