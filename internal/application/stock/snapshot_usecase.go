package stock

import (
	"context"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/Radiologia-api/internal/application/dto"
	"github.com/jhoicas/Radiologia-api/internal/domain/entity"
	"github.com/jhoicas/Radiologia-api/internal/domain/repository"
	"github.com/jhoicas/Radiologia-api/internal/domain/stock"
)

// SnapshotUseCase arma el tablero gerencial de stock por material. El saldo
// actual sale del libro de lotes cuando el material tiene lotes (fuente
// autoritativa, aun con saldo cero); si no, cae a la fórmula heredada
// inicial + entradas − salidas + ajustes − consumo, para materiales nunca
// migrados a lotes.
type SnapshotUseCase struct {
	materials repository.MaterialRepository
	movements repository.MovementRepository
	exams     repository.ExamRepository
	ledger    repository.LedgerRepository
	collator  *collate.Collator
}

// NewSnapshotUseCase construye el caso de uso.
func NewSnapshotUseCase(
	materials repository.MaterialRepository,
	movements repository.MovementRepository,
	exams repository.ExamRepository,
	ledger repository.LedgerRepository,
) *SnapshotUseCase {
	return &SnapshotUseCase{
		materials: materials,
		movements: movements,
		exams:     exams,
		ledger:    ledger,
		collator:  collate.New(language.Spanish, collate.IgnoreCase),
	}
}

// movementSums acumulado de movimientos manuales por tipo.
type movementSums struct {
	entries, exits, adjustments float64
}

// Compute devuelve una fila por material, ordenadas por nombre sin distinguir
// mayúsculas. Es una lectura derivada: dos llamadas sin mutaciones intermedias
// devuelven exactamente lo mismo.
func (uc *SnapshotUseCase) Compute(ctx context.Context) ([]dto.SnapshotRow, error) {
	mats, err := uc.materials.List()
	if err != nil {
		return nil, err
	}
	moves, err := uc.movements.List()
	if err != nil {
		return nil, err
	}
	exams, err := uc.exams.List()
	if err != nil {
		return nil, err
	}

	sums := map[int]movementSums{}
	for _, m := range moves {
		s := sums[m.MaterialID]
		switch m.Type {
		case entity.MovementTypeEntry:
			s.entries += m.Quantity
		case entity.MovementTypeExit:
			s.exits += m.Quantity
		case entity.MovementTypeAdjust:
			s.adjustments += m.Quantity
		}
		sums[m.MaterialID] = s
	}

	// Consumo total por material. Los exámenes cancelados ya tienen la lista
	// vacía (el estorno la limpió), así que no hace falta filtrarlos.
	usage := map[int]float64{}
	for _, e := range exams {
		for _, it := range e.UsedMaterials {
			usage[it.MaterialID] += it.Quantity
		}
	}

	rows := make([]dto.SnapshotRow, 0, len(mats))
	err = uc.ledger.View(func(l stock.Ledger) error {
		for _, m := range mats {
			s := sums[m.ID]
			cons := usage[m.ID]
			var current float64
			if l.HasLots(m.ID) {
				current = l.SumBalances(m.ID)
			} else {
				current = m.InitialStock + s.entries - s.exits + s.adjustments - cons
			}
			rows = append(rows, dto.SnapshotRow{
				MaterialID:   m.ID,
				Name:         m.Name,
				Type:         m.Type,
				Unit:         m.Unit,
				UnitPrice:    m.UnitPrice,
				InitialStock: m.InitialStock,
				MinStock:     m.MinStock,
				Consumption:  cons,
				Entries:      s.entries,
				Exits:        s.exits,
				Adjustments:  s.adjustments,
				Current:      current,
				BelowMin:     m.MinStock > 0 && current < m.MinStock,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return uc.collator.CompareString(rows[i].Name, rows[j].Name) < 0
	})
	return rows, nil
}
