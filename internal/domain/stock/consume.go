package stock

import (
	"fmt"

	"github.com/jhoicas/Radiologia-api/internal/domain"
)

// ConsumeItem es una línea de consumo de examen. LotID nulo = FIFO por
// vencimiento; con valor, descuenta exactamente de ese lote.
type ConsumeItem struct {
	MaterialID int
	Quantity   float64
	LotID      *int
}

// Consume aplica el consumo de un examen sobre el libro en memoria.
// El todo-o-nada lo da el llamador: ejecuta Consume dentro de un ciclo
// leer-modificar-escribir y solo persiste el libro si no hubo error.
func (l Ledger) Consume(items []ConsumeItem) error {
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		if it.LotID != nil {
			lot := l.FindLotByID(it.MaterialID, *it.LotID)
			if lot == nil {
				return fmt.Errorf("lote id=%d del material id=%d: %w", *it.LotID, it.MaterialID, domain.ErrLotNotFound)
			}
			if err := Debit(lot, it.Quantity); err != nil {
				return fmt.Errorf("lote id=%d (saldo=%v < cantidad=%v): %w", lot.ID, lot.Balance, it.Quantity, err)
			}
			continue
		}
		if err := l.DebitFIFO(it.MaterialID, it.Quantity); err != nil {
			return fmt.Errorf("material id=%d: %w", it.MaterialID, err)
		}
	}
	return nil
}
