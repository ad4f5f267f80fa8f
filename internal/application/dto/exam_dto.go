package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExamUsageItemRequest línea de consumo declarada al guardar un examen.
type ExamUsageItemRequest struct {
	MaterialID int     `json:"material_id" validate:"required,gt=0"`
	Quantity   float64 `json:"cantidad" validate:"required,gt=0"`
	LotID      *int    `json:"lote_id,omitempty"`
}

// SaveExamRequest alta o edición de examen. Con ID presente es edición y el
// registro se persiste tal cual (el ajuste de stock lo orquesta el caller vía
// el motor de estornos); sin ID es alta y dispara el consumo FIFO/por lote.
type SaveExamRequest struct {
	ID            int                    `json:"id,omitempty"`
	PublicID      string                 `json:"exam_id,omitempty"`
	Modality      string                 `json:"modalidad" validate:"required,oneof=RX CT US MR MG NM"`
	Name          string                 `json:"examen" validate:"required"`
	Doctor        string                 `json:"medico"`
	PatientAge    int                    `json:"edad" validate:"gte=0,lte=130"`
	PerformedAt   time.Time              `json:"fecha_hora"`
	Note          string                 `json:"observacion"`
	UsedMaterials []ExamUsageItemRequest `json:"materiales_usados" validate:"dive"`
}

// UpdateExamUsageRequest nueva lista de insumos de un examen existente;
// el delta contra la lista anterior se aplica como estorno/salida sintética.
type UpdateExamUsageRequest struct {
	Items []ExamUsageItemRequest `json:"items" validate:"dive"`
}

// CostPreviewResponse previsualización de costo de una lista de insumos.
type CostPreviewResponse struct {
	Total decimal.Decimal   `json:"total"`
	Items []CostPreviewItem `json:"items"`
}

// CostPreviewItem línea enriquecida con precio y subtotal.
type CostPreviewItem struct {
	MaterialID int             `json:"material_id"`
	Quantity   float64         `json:"cantidad"`
	LotID      *int            `json:"lote_id,omitempty"`
	UnitPrice  decimal.Decimal `json:"valor_unitario"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}
