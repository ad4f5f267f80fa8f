package repository

import "github.com/jhoicas/Radiologia-api/internal/domain/stock"

// LedgerRepository define el puerto de persistencia del libro de lotes.
// Update ejecuta fn dentro del ciclo leer-modificar-escribir bajo el lock de la
// colección y SOLO persiste si fn devuelve nil: es la garantía todo-o-nada del
// motor de consumo (análogo al TxRunner de una base transaccional).
// View ejecuta fn sobre una lectura del libro, sin persistir.
type LedgerRepository interface {
	View(fn func(stock.Ledger) error) error
	Update(fn func(stock.Ledger) error) error
}
