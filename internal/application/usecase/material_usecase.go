// Package usecase agrupa los casos de uso de catálogo: wrappers finos de
// persistencia sin lógica de inventario (la lógica vive en application/stock).
package usecase

import (
	"context"

	"github.com/jhoicas/Radiologia-api/internal/application/dto"
	"github.com/jhoicas/Radiologia-api/internal/domain"
	"github.com/jhoicas/Radiologia-api/internal/domain/entity"
	"github.com/jhoicas/Radiologia-api/internal/domain/repository"
)

// MaterialUseCase CRUD del catálogo de materiales.
type MaterialUseCase struct {
	materials repository.MaterialRepository
	audit     *AuditService
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(materials repository.MaterialRepository, audit *AuditService) *MaterialUseCase {
	return &MaterialUseCase{materials: materials, audit: audit}
}

// List devuelve el catálogo completo.
func (uc *MaterialUseCase) List(ctx context.Context) ([]entity.Material, error) {
	return uc.materials.List()
}

// Create da de alta un material con defaults razonables.
func (uc *MaterialUseCase) Create(ctx context.Context, userEmail string, in dto.CreateMaterialRequest) (int, error) {
	m := &entity.Material{
		Name: in.Name,
		Type: in.Type,
		Unit: in.Unit,
	}
	if m.Type == "" {
		m.Type = entity.MaterialTypeMaterial
	}
	if in.UnitPrice != nil {
		m.UnitPrice = *in.UnitPrice
	}
	if in.InitialStock != nil {
		m.InitialStock = *in.InitialStock
	}
	if in.MinStock != nil {
		m.MinStock = *in.MinStock
	}
	id, err := uc.materials.Create(m)
	if err != nil {
		return 0, err
	}
	uc.audit.Record(userEmail, entity.AuditCreate, "material", id, nil, m)
	return id, nil
}

// Update aplica cambios parciales; ErrNotFound si el id no existe.
func (uc *MaterialUseCase) Update(ctx context.Context, userEmail string, id int, in dto.UpdateMaterialRequest) error {
	before, err := uc.materials.GetByID(id)
	if err != nil {
		return err
	}
	if before == nil {
		return domain.ErrNotFound
	}
	ok, err := uc.materials.Update(id, func(m *entity.Material) {
		if in.Name != nil {
			m.Name = *in.Name
		}
		if in.Type != nil {
			m.Type = *in.Type
		}
		if in.Unit != nil {
			m.Unit = *in.Unit
		}
		if in.UnitPrice != nil {
			m.UnitPrice = *in.UnitPrice
		}
		if in.InitialStock != nil {
			m.InitialStock = *in.InitialStock
		}
		if in.MinStock != nil {
			m.MinStock = *in.MinStock
		}
	})
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	after, _ := uc.materials.GetByID(id)
	uc.audit.Record(userEmail, entity.AuditUpdate, "material", id, before, after)
	return nil
}

// Delete elimina el material y sus lotes en cascada; ErrNotFound si no existe.
func (uc *MaterialUseCase) Delete(ctx context.Context, userEmail string, id int) error {
	before, err := uc.materials.GetByID(id)
	if err != nil {
		return err
	}
	if before == nil {
		return domain.ErrNotFound
	}
	ok, err := uc.materials.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	uc.audit.Record(userEmail, entity.AuditDelete, "material", id, before, nil)
	return nil
}
