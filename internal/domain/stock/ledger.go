// Package stock contiene el núcleo del libro de lotes: estructura de lotes por
// material, consumo FIFO por vencimiento y las primitivas de débito/crédito.
// Es lógica de dominio pura: sin I/O, sin logging; los errores son los
// sentinelas del paquete domain.
package stock

import (
	"math"
	"sort"
	"strconv"

	"github.com/jhoicas/Radiologia-api/internal/domain"
	"github.com/jhoicas/Radiologia-api/internal/domain/entity"
)

// Epsilon absorbe la deriva de coma flotante en comparaciones de saldo.
const Epsilon = 1e-9

// expirySentinel ordena al final los lotes sin vencimiento.
const expirySentinel = "9999-99-99"

// Ledger es el libro de lotes: lotes por id de material. La clave es el id de
// material como string porque así viaja en el documento JSON persistido.
type Ledger map[string][]*entity.Lot

// Key normaliza un id de material a clave del libro.
func Key(materialID int) string {
	return strconv.Itoa(materialID)
}

// Round6 redondea un saldo a 6 decimales, la precisión con la que se persiste.
func Round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

// Lots devuelve los lotes de un material (puede ser nil).
func (l Ledger) Lots(materialID int) []*entity.Lot {
	return l[Key(materialID)]
}

// HasLots indica si el material tiene lotes registrados, incluso con saldo cero.
// Cuando es verdadero, el libro es la fuente autoritativa del saldo actual.
func (l Ledger) HasLots(materialID int) bool {
	return len(l[Key(materialID)]) > 0
}

// MaxLotID devuelve el id de lote máximo sobre TODO el libro (no por material).
func (l Ledger) MaxLotID() int {
	max := 0
	for _, lots := range l {
		for _, lot := range lots {
			if lot.ID > max {
				max = lot.ID
			}
		}
	}
	return max
}

// FindLot busca un lote por el par exacto (código, vencimiento); ambos pueden
// ser nil y se comparan tal cual.
func (l Ledger) FindLot(materialID int, code, expiry *string) *entity.Lot {
	for _, lot := range l[Key(materialID)] {
		if equalPtr(lot.Code, code) && equalPtr(lot.Expiry, expiry) {
			return lot
		}
	}
	return nil
}

// FindLotByID busca un lote por id dentro de un material.
func (l Ledger) FindLotByID(materialID, lotID int) *entity.Lot {
	for _, lot := range l[Key(materialID)] {
		if lot.ID == lotID {
			return lot
		}
	}
	return nil
}

// EnsureLot garantiza la existencia del lote (código, vencimiento) para el
// material: si no existe lo crea con saldo 0 y id = máximo global + 1.
// Muta el libro en memoria; el llamador es responsable de persistir.
func (l Ledger) EnsureLot(materialID int, code, expiry *string) *entity.Lot {
	if lot := l.FindLot(materialID, code, expiry); lot != nil {
		return lot
	}
	lot := &entity.Lot{ID: l.MaxLotID() + 1, Code: code, Expiry: expiry}
	key := Key(materialID)
	l[key] = append(l[key], lot)
	return lot
}

// FIFOLots devuelve los lotes con saldo positivo de un material, ordenados por
// vencimiento ascendente (sin vencimiento al final) con orden estable en empates.
func (l Ledger) FIFOLots(materialID int) []*entity.Lot {
	var out []*entity.Lot
	for _, lot := range l[Key(materialID)] {
		if lot.Balance > 0 {
			out = append(out, lot)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return sortExpiry(out[i].Expiry) < sortExpiry(out[j].Expiry)
	})
	return out
}

// SumBalances suma los saldos de todos los lotes del material, incluidos los
// de saldo cero.
func (l Ledger) SumBalances(materialID int) float64 {
	total := 0.0
	for _, lot := range l[Key(materialID)] {
		total += lot.Balance
	}
	return total
}

// Debit descuenta qty del lote. Falla con ErrInsufficientStock si el saldo no
// alcanza (con tolerancia Epsilon); nunca deja un débito parcial.
func Debit(lot *entity.Lot, qty float64) error {
	if lot.Balance+Epsilon < qty {
		return domain.ErrInsufficientStock
	}
	lot.Balance = Round6(lot.Balance - qty)
	return nil
}

// Credit acredita qty al lote, sin tope superior.
func Credit(lot *entity.Lot, qty float64) {
	lot.Balance = Round6(lot.Balance + qty)
}

// DebitFIFO descuenta qty del material recorriendo sus lotes en orden FIFO.
// Si tras agotar todos los lotes queda un residuo mayor que Epsilon, falla con
// ErrInsufficientStock; el llamador decide si las mutaciones parciales en
// memoria se descartan (no persistiendo el libro).
func (l Ledger) DebitFIFO(materialID int, qty float64) error {
	rest := qty
	for _, lot := range l.FIFOLots(materialID) {
		if rest <= 0 {
			break
		}
		take := math.Min(lot.Balance, rest)
		if take <= 0 {
			continue
		}
		lot.Balance = Round6(lot.Balance - take)
		rest -= take
	}
	if rest > Epsilon {
		return domain.ErrInsufficientStock
	}
	return nil
}

// RemoveMaterial elimina todos los lotes de un material (cascada al borrar el
// material del catálogo).
func (l Ledger) RemoveMaterial(materialID int) {
	delete(l, Key(materialID))
}

func sortExpiry(expiry *string) string {
	if expiry == nil || *expiry == "" {
		return expirySentinel
	}
	return *expiry
}

func equalPtr(a, b *string) bool {
	av, bv := "", ""
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	return av == bv
}
