package jsonstore

import (
	"github.com/jhoicas/Radiologia-api/internal/domain/repository"
	"github.com/jhoicas/Radiologia-api/internal/domain/stock"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación de LedgerRepository sobre la colección JSON del
// libro de lotes. Todo el libro viaja en un único documento, así que cada
// Update es un ciclo leer-modificar-escribir serializado por el lock de la
// colección y persistido de forma atómica.
type LedgerRepo struct {
	col *Collection[stock.Ledger]
}

// NewLedgerRepository construye el adaptador del libro de lotes.
func NewLedgerRepository(path string) *LedgerRepo {
	return &LedgerRepo{col: NewCollection[stock.Ledger](path)}
}

// View ejecuta fn sobre una lectura del libro.
func (r *LedgerRepo) View(fn func(stock.Ledger) error) error {
	return r.col.View(func(l stock.Ledger) error {
		if l == nil {
			l = stock.Ledger{}
		}
		return fn(l)
	})
}

// Update ejecuta fn sobre el libro y persiste solo si fn devuelve nil.
func (r *LedgerRepo) Update(fn func(stock.Ledger) error) error {
	return r.col.Update(func(l *stock.Ledger) error {
		if *l == nil {
			*l = stock.Ledger{}
		}
		return fn(*l)
	})
}

// RemoveMaterial elimina los lotes de un material (cascada del catálogo).
func (r *LedgerRepo) RemoveMaterial(materialID int) error {
	return r.Update(func(l stock.Ledger) error {
		l.RemoveMaterial(materialID)
		return nil
	})
}
