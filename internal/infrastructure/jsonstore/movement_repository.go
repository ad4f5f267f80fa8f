package jsonstore

import (
	"github.com/jhoicas/Radiologia-api/internal/domain/entity"
	"github.com/jhoicas/Radiologia-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación append-only de MovementRepository.
type MovementRepo struct {
	col *Collection[[]entity.Movement]
}

// NewMovementRepository construye el adaptador del historial de movimientos.
func NewMovementRepository(path string) *MovementRepo {
	return &MovementRepo{col: NewCollection[[]entity.Movement](path)}
}

// List devuelve todos los movimientos manuales.
func (r *MovementRepo) List() ([]entity.Movement, error) {
	var out []entity.Movement
	err := r.col.View(func(rows []entity.Movement) error {
		out = append(out, rows...)
		return nil
	})
	return out, err
}

// ListByMaterial devuelve los movimientos de un material.
func (r *MovementRepo) ListByMaterial(materialID int) ([]entity.Movement, error) {
	var out []entity.Movement
	err := r.col.View(func(rows []entity.Movement) error {
		for _, m := range rows {
			if m.MaterialID == materialID {
				out = append(out, m)
			}
		}
		return nil
	})
	return out, err
}

// Append asigna id monótono por colección y agrega el movimiento.
func (r *MovementRepo) Append(m *entity.Movement) (int, error) {
	err := r.col.Update(func(rows *[]entity.Movement) error {
		m.ID = nextID(*rows, func(x entity.Movement) int { return x.ID })
		*rows = append(*rows, *m)
		return nil
	})
	return m.ID, err
}
