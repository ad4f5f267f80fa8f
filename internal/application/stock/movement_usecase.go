// Package stock contiene los casos de uso del motor de inventario: registro de
// movimientos manuales, consumo por exámenes, estornos y el snapshot gerencial.
package stock

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Radiologia-api/internal/domain"
	"github.com/jhoicas/Radiologia-api/internal/domain/entity"
	"github.com/jhoicas/Radiologia-api/internal/domain/repository"
	"github.com/jhoicas/Radiologia-api/internal/domain/stock"
)

// MovementInput entrada para registrar un movimiento manual.
type MovementInput struct {
	MaterialID int
	Type       string // entrada | salida | ajuste
	Quantity   float64
	LotCode    *string
	Expiry     *string
	UnitCost   *decimal.Decimal
	Note       *string
}

// MovementUseCase registra movimientos manuales y los refleja en el libro de
// lotes en el mismo ciclo: la mutación del libro se valida y aplica primero y
// el movimiento se anexa solo cuando aquella está garantizada, para que el
// historial nunca afirme algo que el libro no hizo.
type MovementUseCase struct {
	materials repository.MaterialRepository
	ledger    repository.LedgerRepository
	movements repository.MovementRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	materials repository.MaterialRepository,
	ledger repository.LedgerRepository,
	movements repository.MovementRepository,
) *MovementUseCase {
	return &MovementUseCase{materials: materials, ledger: ledger, movements: movements}
}

// Register valida, aplica el efecto sobre el libro de lotes y anexa el
// movimiento inmutable. Devuelve el id del movimiento.
func (uc *MovementUseCase) Register(ctx context.Context, in MovementInput) (int, error) {
	if !entity.ValidMovementType(in.Type) || in.Quantity <= 0 {
		return 0, domain.ErrInvalidInput
	}
	mat, err := uc.materials.GetByID(in.MaterialID)
	if err != nil {
		return 0, err
	}
	if mat == nil {
		return 0, domain.ErrNotFound
	}

	in.LotCode = normalizePtr(in.LotCode)
	in.Expiry = normalizePtr(in.Expiry)
	in.Note = normalizePtr(in.Note)

	if err := uc.ledger.Update(func(l stock.Ledger) error {
		return applyMovement(l, in)
	}); err != nil {
		return 0, err
	}

	mov := &entity.Movement{
		MaterialID: in.MaterialID,
		Type:       in.Type,
		Quantity:   in.Quantity,
		LotCode:    in.LotCode,
		Expiry:     in.Expiry,
		UnitCost:   in.UnitCost,
		Note:       in.Note,
		CreatedAt:  time.Now().UTC(),
	}
	return uc.movements.Append(mov)
}

// RegisterResidualExit registra una salida forzada: descuenta lo que haya por
// FIFO y el resto lo carga contra el lote sin código, aunque quede negativo.
// Es el escape del motor de estornos para que un estorno nunca quede bloqueado
// por falta de saldo; el llamador es responsable de dejar rastro en el log.
func (uc *MovementUseCase) RegisterResidualExit(ctx context.Context, materialID int, qty float64, note *string) (int, error) {
	if qty <= 0 {
		return 0, domain.ErrInvalidInput
	}
	if err := uc.ledger.Update(func(l stock.Ledger) error {
		rest := qty
		for _, lot := range l.FIFOLots(materialID) {
			if rest <= 0 {
				break
			}
			take := lot.Balance
			if take > rest {
				take = rest
			}
			lot.Balance = stock.Round6(lot.Balance - take)
			rest -= take
		}
		if rest > stock.Epsilon {
			lot := l.EnsureLot(materialID, nil, nil)
			lot.Balance = stock.Round6(lot.Balance - rest) // puede quedar negativo
		}
		return nil
	}); err != nil {
		return 0, err
	}
	mov := &entity.Movement{
		MaterialID: materialID,
		Type:       entity.MovementTypeExit,
		Quantity:   qty,
		Note:       normalizePtr(note),
		CreatedAt:  time.Now().UTC(),
	}
	return uc.movements.Append(mov)
}

// List devuelve todos los movimientos registrados.
func (uc *MovementUseCase) List(ctx context.Context) ([]entity.Movement, error) {
	return uc.movements.List()
}

// History devuelve los movimientos de un material.
func (uc *MovementUseCase) History(ctx context.Context, materialID int) ([]entity.Movement, error) {
	return uc.movements.ListByMaterial(materialID)
}

// applyMovement aplica el efecto de un movimiento sobre el libro en memoria.
func applyMovement(l stock.Ledger, in MovementInput) error {
	switch in.Type {
	case entity.MovementTypeEntry:
		stock.Credit(l.EnsureLot(in.MaterialID, in.LotCode, in.Expiry), in.Quantity)
		return nil
	case entity.MovementTypeExit:
		return applyExit(l, in)
	case entity.MovementTypeAdjust:
		if adjustmentIsCredit(in) {
			stock.Credit(l.EnsureLot(in.MaterialID, in.LotCode, in.Expiry), in.Quantity)
			return nil
		}
		return applyExit(l, in)
	}
	return domain.ErrInvalidInput
}

// applyExit descuenta del lote indicado o por FIFO si no hay lote.
func applyExit(l stock.Ledger, in MovementInput) error {
	if in.LotCode != nil || in.Expiry != nil {
		lot := l.FindLot(in.MaterialID, in.LotCode, in.Expiry)
		if lot == nil {
			return domain.ErrLotNotFound
		}
		return stock.Debit(lot, in.Quantity)
	}
	return l.DebitFIFO(in.MaterialID, in.Quantity)
}

// adjustmentIsCredit decide la dirección de un "ajuste". La cantidad llega sin
// signo, así que la dirección se infiere de señales incidentales heredadas del
// sistema anterior: costo unitario presente, o un "+" sin "-" en la nota,
// significan crédito; un "-" sin "+" significa débito; por defecto, crédito.
// La heurística es ambigua a propósito: se conserva tal cual por
// compatibilidad hasta que negocio confirme la semántica deseada.
func adjustmentIsCredit(in MovementInput) bool {
	note := ""
	if in.Note != nil {
		note = *in.Note
	}
	hasPlus := strings.Contains(note, "+")
	hasMinus := strings.Contains(note, "-")
	credit := true
	if in.UnitCost != nil || (hasPlus && !hasMinus) {
		credit = true
	}
	if hasMinus && !hasPlus {
		credit = false
	}
	return credit
}

// normalizePtr convierte strings vacíos (tras recorte) en nil.
func normalizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
