package entity

// Lot representa un lote de un material, con su vencimiento y saldo propio.
// Code y Expiry son opcionales: un lote puede existir sin código ni vencimiento.
// El ID es monótono sobre TODO el libro de lotes (no por material), para mantener
// compatibilidad con los ids de los datos exportados del sistema anterior.
// Invariante: Balance >= 0 en reposo, salvo la salida residual de un estorno.
type Lot struct {
	ID      int     `json:"id"`
	Code    *string `json:"lote,omitempty"`
	Expiry  *string `json:"vencimiento,omitempty"` // fecha ISO YYYY-MM-DD
	Balance float64 `json:"saldo"`
}

// HasBalance indica si el lote tiene saldo disponible.
func (l *Lot) HasBalance() bool {
	return l.Balance > 0
}
