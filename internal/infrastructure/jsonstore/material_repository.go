package jsonstore

import (
	"github.com/jhoicas/Radiologia-api/internal/domain/entity"
	"github.com/jhoicas/Radiologia-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación de MaterialRepository sobre la colección JSON.
// Delete borra en cascada los lotes del material en el libro.
type MaterialRepo struct {
	col    *Collection[[]entity.Material]
	ledger *LedgerRepo
}

// NewMaterialRepository construye el adaptador de materiales.
func NewMaterialRepository(path string, ledger *LedgerRepo) *MaterialRepo {
	return &MaterialRepo{col: NewCollection[[]entity.Material](path), ledger: ledger}
}

// List devuelve el catálogo completo.
func (r *MaterialRepo) List() ([]entity.Material, error) {
	var out []entity.Material
	err := r.col.View(func(rows []entity.Material) error {
		out = append(out, rows...)
		return nil
	})
	return out, err
}

// GetByID devuelve el material o nil si no existe.
func (r *MaterialRepo) GetByID(id int) (*entity.Material, error) {
	var found *entity.Material
	err := r.col.View(func(rows []entity.Material) error {
		for i := range rows {
			if rows[i].ID == id {
				m := rows[i]
				found = &m
				return nil
			}
		}
		return nil
	})
	return found, err
}

// Create asigna id (máximo de la colección + 1) y persiste.
func (r *MaterialRepo) Create(m *entity.Material) (int, error) {
	err := r.col.Update(func(rows *[]entity.Material) error {
		m.ID = nextID(*rows, func(x entity.Material) int { return x.ID })
		*rows = append(*rows, *m)
		return nil
	})
	return m.ID, err
}

// Update aplica fields sobre el registro; devuelve false si el id no existe.
func (r *MaterialRepo) Update(id int, fields func(*entity.Material)) (bool, error) {
	ok := false
	err := r.col.Update(func(rows *[]entity.Material) error {
		for i := range *rows {
			if (*rows)[i].ID == id {
				fields(&(*rows)[i])
				ok = true
				break
			}
		}
		return nil
	})
	return ok, err
}

// Delete elimina el material y, en cascada, sus lotes del libro.
func (r *MaterialRepo) Delete(id int) (bool, error) {
	removed := false
	err := r.col.Update(func(rows *[]entity.Material) error {
		kept := (*rows)[:0]
		for _, m := range *rows {
			if m.ID == id {
				removed = true
				continue
			}
			kept = append(kept, m)
		}
		*rows = kept
		return nil
	})
	if err != nil {
		return false, err
	}
	if err := r.ledger.RemoveMaterial(id); err != nil {
		return removed, err
	}
	return removed, nil
}
