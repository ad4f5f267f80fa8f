package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Modalidades de examen soportadas.
var Modalities = []string{"RX", "CT", "US", "MR", "MG", "NM"}

var modalityLabels = map[string]string{
	"RX": "Rayos X",
	"CT": "Tomografía",
	"US": "Ultrasonido",
	"MR": "Resonancia",
	"MG": "Mamografía",
	"NM": "Medicina Nuclear",
}

// ModalityLabel devuelve la etiqueta legible de una modalidad.
func ModalityLabel(m string) string {
	if l, ok := modalityLabels[m]; ok {
		return l
	}
	return m
}

// ExamUsageItem es un insumo consumido por un examen. LotID nulo significa
// consumo FIFO por vencimiento; con valor apunta a un lote concreto.
// UnitPrice y Subtotal se fijan al momento de guardar (no se recalculan).
type ExamUsageItem struct {
	MaterialID int             `json:"material_id"`
	Quantity   float64         `json:"cantidad"`
	LotID      *int            `json:"lote_id,omitempty"`
	UnitPrice  decimal.Decimal `json:"valor_unitario"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// Exam representa un examen radiológico y su consumo de insumos.
// Un examen cancelado queda marcado para siempre y con UsedMaterials vacío
// (el estorno ya devolvió todo al stock).
type Exam struct {
	ID            int             `json:"id"`
	PublicID      string          `json:"exam_id"` // ej. E-0001
	Modality      string          `json:"modalidad"`
	Name          string          `json:"examen"`
	Doctor        string          `json:"medico"`
	PatientAge    int             `json:"edad"`
	PerformedAt   time.Time       `json:"fecha_hora"`
	UserEmail     string          `json:"user_email"`
	Note          string          `json:"observacion,omitempty"`
	UsedMaterials []ExamUsageItem `json:"materiales_usados"`
	EstimatedCost decimal.Decimal `json:"costo_estimado_total"`
	Cancelled     bool            `json:"cancelado,omitempty"`
}
