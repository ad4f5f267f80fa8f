package repository

import "github.com/jhoicas/Radiologia-api/internal/domain/entity"

// MaterialRepository define el puerto de persistencia para Material (DIP).
type MaterialRepository interface {
	List() ([]entity.Material, error)
	GetByID(id int) (*entity.Material, error)
	Create(m *entity.Material) (int, error)
	Update(id int, fields func(*entity.Material)) (bool, error)
	Delete(id int) (bool, error)
}
