package stock

import (
	"context"

	"github.com/jhoicas/Radiologia-api/internal/domain/entity"
	"github.com/jhoicas/Radiologia-api/internal/domain/repository"
	"github.com/jhoicas/Radiologia-api/internal/domain/stock"
)

// ConsumptionUseCase aplica el consumo de insumos de un examen sobre el libro
// de lotes. No genera movimientos manuales: el consumo por exámenes descuenta
// lotes directamente (registrarlo también como "salida" duplicaría la baja).
type ConsumptionUseCase struct {
	ledger repository.LedgerRepository
}

// NewConsumptionUseCase construye el caso de uso.
func NewConsumptionUseCase(ledger repository.LedgerRepository) *ConsumptionUseCase {
	return &ConsumptionUseCase{ledger: ledger}
}

// ConsumeByLots descuenta todas las líneas en un único ciclo
// leer-modificar-escribir: si cualquiera falla (lote inexistente o saldo
// insuficiente) no se persiste ninguna mutación del lote.
func (uc *ConsumptionUseCase) ConsumeByLots(ctx context.Context, items []stock.ConsumeItem) error {
	if len(items) == 0 {
		return nil
	}
	return uc.ledger.Update(func(l stock.Ledger) error {
		return l.Consume(items)
	})
}

// ActiveBatches devuelve los lotes con saldo positivo de un material,
// ordenados por vencimiento ascendente.
func (uc *ConsumptionUseCase) ActiveBatches(ctx context.Context, materialID int) ([]entity.Lot, error) {
	var out []entity.Lot
	err := uc.ledger.View(func(l stock.Ledger) error {
		for _, lot := range l.FIFOLots(materialID) {
			out = append(out, *lot)
		}
		return nil
	})
	return out, err
}
