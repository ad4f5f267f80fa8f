package stock

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/Radiologia-api/internal/domain"
	"github.com/jhoicas/Radiologia-api/internal/domain/entity"
	"github.com/jhoicas/Radiologia-api/internal/domain/repository"
	"github.com/jhoicas/Radiologia-api/internal/domain/stock"
	"github.com/jhoicas/Radiologia-api/pkg/logger"
)

// ReversalUseCase ajusta el stock cuando un examen se edita o se cancela:
// calcula el delta por (material, lote) entre el consumo anterior y el nuevo y
// lo re-aplica como entradas/salidas sintéticas a través del registrador de
// movimientos. La cancelación es el caso extremo: nuevo consumo cero en todo.
type ReversalUseCase struct {
	exams     repository.ExamRepository
	materials repository.MaterialRepository
	ledger    repository.LedgerRepository
	movements *MovementUseCase
	log       *logger.Logger
}

// NewReversalUseCase construye el caso de uso.
func NewReversalUseCase(
	exams repository.ExamRepository,
	materials repository.MaterialRepository,
	ledger repository.LedgerRepository,
	movements *MovementUseCase,
	log *logger.Logger,
) *ReversalUseCase {
	return &ReversalUseCase{exams: exams, materials: materials, ledger: ledger, movements: movements, log: log}
}

// usageKey agrupa consumo por material y lote (lote 0 = sin lote).
type usageKey struct {
	materialID int
	lotID      int
	keyed      bool
}

// UpdateUsage reemplaza la lista de insumos de un examen aplicando al stock
// solo la diferencia con la lista anterior, y persiste el examen con las
// líneas re-enriquecidas (precio y subtotal actuales).
func (uc *ReversalUseCase) UpdateUsage(ctx context.Context, examID int, newItems []entity.ExamUsageItem) error {
	exam, err := uc.exams.GetByID(examID)
	if err != nil {
		return err
	}
	if exam == nil {
		return domain.ErrNotFound
	}
	if exam.Cancelled {
		return fmt.Errorf("examen cancelado no admite cambios de insumos: %w", domain.ErrConflict)
	}

	deltas := usageDeltas(exam.UsedMaterials, newItems)
	if err := uc.applyDeltas(ctx, exam.PublicID, deltas); err != nil {
		return err
	}

	mats, err := uc.materials.List()
	if err != nil {
		return err
	}
	enriched, total := stock.EstimateItemsCost(newItems, stock.NewPriceMap(mats))
	exam.UsedMaterials = enriched
	exam.EstimatedCost = total
	ok, err := uc.exams.Replace(exam)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// Cancel estorna todo el consumo del examen, vacía su lista de insumos y lo
// marca cancelado para siempre. Un examen ya cancelado no se vuelve a estornar.
func (uc *ReversalUseCase) Cancel(ctx context.Context, examID int) error {
	exam, err := uc.exams.GetByID(examID)
	if err != nil {
		return err
	}
	if exam == nil {
		return domain.ErrNotFound
	}
	if exam.Cancelled {
		return fmt.Errorf("el examen ya está cancelado: %w", domain.ErrConflict)
	}

	deltas := usageDeltas(exam.UsedMaterials, nil)
	if err := uc.applyDeltas(ctx, exam.PublicID, deltas); err != nil {
		return err
	}

	exam.UsedMaterials = []entity.ExamUsageItem{}
	exam.Cancelled = true
	ok, err := uc.exams.Replace(exam)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// usageDeltas agrega ambas listas por (material, lote) y devuelve nuevo−viejo.
func usageDeltas(oldItems, newItems []entity.ExamUsageItem) map[usageKey]float64 {
	deltas := map[usageKey]float64{}
	for _, it := range oldItems {
		deltas[keyOf(it)] -= it.Quantity
	}
	for _, it := range newItems {
		deltas[keyOf(it)] += it.Quantity
	}
	return deltas
}

func keyOf(it entity.ExamUsageItem) usageKey {
	k := usageKey{materialID: it.MaterialID}
	if it.LotID != nil {
		k.lotID = *it.LotID
		k.keyed = true
	}
	return k
}

// applyDeltas emite los movimientos sintéticos, en orden determinista.
func (uc *ReversalUseCase) applyDeltas(ctx context.Context, examRef string, deltas map[usageKey]float64) error {
	keys := make([]usageKey, 0, len(deltas))
	for k := range deltas {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].materialID != keys[j].materialID {
			return keys[i].materialID < keys[j].materialID
		}
		return keys[i].lotID < keys[j].lotID
	})

	for _, k := range keys {
		delta := deltas[k]
		if delta > -stock.Epsilon && delta < stock.Epsilon {
			continue
		}
		if k.keyed {
			if err := uc.applyKeyedDelta(ctx, examRef, k, delta); err != nil {
				return err
			}
			continue
		}
		if delta > 0 {
			if err := uc.applyFIFOExit(ctx, examRef, k.materialID, delta); err != nil {
				return err
			}
			continue
		}
		note := fmt.Sprintf("Estorno insumos examen %s", examRef)
		if _, err := uc.movements.Register(ctx, MovementInput{
			MaterialID: k.materialID,
			Type:       entity.MovementTypeEntry,
			Quantity:   -delta,
			Note:       &note,
		}); err != nil {
			return err
		}
	}
	return nil
}

// applyKeyedDelta ajusta contra un lote concreto, resolviendo su código y
// vencimiento; si el lote ya no existe el movimiento sale sin lote (FIFO).
func (uc *ReversalUseCase) applyKeyedDelta(ctx context.Context, examRef string, k usageKey, delta float64) error {
	var code, expiry *string
	if err := uc.ledger.View(func(l stock.Ledger) error {
		if lot := l.FindLotByID(k.materialID, k.lotID); lot != nil {
			code, expiry = lot.Code, lot.Expiry
		}
		return nil
	}); err != nil {
		return err
	}

	in := MovementInput{MaterialID: k.materialID, LotCode: code, Expiry: expiry}
	if delta > 0 {
		in.Type = entity.MovementTypeExit
		in.Quantity = delta
		note := fmt.Sprintf("Ajuste insumos examen %s", examRef)
		in.Note = &note
	} else {
		in.Type = entity.MovementTypeEntry
		in.Quantity = -delta
		note := fmt.Sprintf("Estorno insumos examen %s", examRef)
		in.Note = &note
	}
	_, err := uc.movements.Register(ctx, in)
	return err
}

// applyFIFOExit descompone una salida sin lote en salidas por lote en orden de
// vencimiento. Si los lotes no alcanzan, el resto sale como salida residual
// forzada: el saldo puede quedar negativo, pero un estorno nunca se bloquea.
func (uc *ReversalUseCase) applyFIFOExit(ctx context.Context, examRef string, materialID int, qty float64) error {
	type take struct {
		code, expiry *string
		qty          float64
	}
	var takes []take
	rest := qty
	if err := uc.ledger.View(func(l stock.Ledger) error {
		for _, lot := range l.FIFOLots(materialID) {
			if rest <= 0 {
				break
			}
			t := lot.Balance
			if t > rest {
				t = rest
			}
			if t > 0 {
				takes = append(takes, take{code: lot.Code, expiry: lot.Expiry, qty: t})
				rest -= t
			}
		}
		return nil
	}); err != nil {
		return err
	}

	note := fmt.Sprintf("Ajuste insumos examen %s (FIFO)", examRef)
	for _, t := range takes {
		if _, err := uc.movements.Register(ctx, MovementInput{
			MaterialID: materialID,
			Type:       entity.MovementTypeExit,
			Quantity:   t.qty,
			LotCode:    t.code,
			Expiry:     t.expiry,
			Note:       &note,
		}); err != nil {
			return err
		}
	}

	if rest > stock.Epsilon {
		correlation := uuid.New().String()
		residualNote := fmt.Sprintf("Ajuste insumos examen %s (residual %s)", examRef, correlation)
		uc.log.Warn().
			Str("correlation", correlation).
			Str("examen", examRef).
			Int("material_id", materialID).
			Float64("cantidad", rest).
			Msg("salida residual de estorno: lotes insuficientes, el saldo puede quedar negativo")
		if _, err := uc.movements.RegisterResidualExit(ctx, materialID, rest, &residualNote); err != nil {
			return err
		}
	}
	return nil
}
