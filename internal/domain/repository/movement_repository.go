package repository

import "github.com/jhoicas/Radiologia-api/internal/domain/entity"

// MovementRepository define el puerto del historial de movimientos manuales.
// La colección es append-only: no hay update ni delete.
type MovementRepository interface {
	List() ([]entity.Movement, error)
	ListByMaterial(materialID int) ([]entity.Movement, error)
	Append(m *entity.Movement) (int, error)
}
