package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Radiologia-api/internal/application/dto"
	"github.com/jhoicas/Radiologia-api/internal/domain"
	"github.com/jhoicas/Radiologia-api/internal/domain/entity"
	"github.com/jhoicas/Radiologia-api/internal/domain/repository"
)

// CatalogUseCase administra médicos y tipos de examen.
type CatalogUseCase struct {
	doctors   repository.DoctorRepository
	examTypes repository.ExamTypeRepository
}

// NewCatalogUseCase construye el caso de uso de catálogos.
func NewCatalogUseCase(doctors repository.DoctorRepository, examTypes repository.ExamTypeRepository) *CatalogUseCase {
	return &CatalogUseCase{doctors: doctors, examTypes: examTypes}
}

// ListDoctors devuelve los médicos registrados.
func (uc *CatalogUseCase) ListDoctors(ctx context.Context) ([]entity.Doctor, error) {
	return uc.doctors.List()
}

// CreateDoctor da de alta un médico; si el nombre ya existe devuelve el id existente.
func (uc *CatalogUseCase) CreateDoctor(ctx context.Context, in dto.CreateDoctorRequest) (int, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return 0, domain.ErrInvalidInput
	}
	existing, err := uc.doctors.List()
	if err != nil {
		return 0, err
	}
	for _, d := range existing {
		if strings.EqualFold(d.Name, name) {
			return d.ID, nil
		}
	}
	return uc.doctors.Create(&entity.Doctor{Name: name})
}

// DeleteDoctor elimina un médico; ErrNotFound si no existe.
func (uc *CatalogUseCase) DeleteDoctor(ctx context.Context, id int) error {
	ok, err := uc.doctors.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// ListExamTypes devuelve el catálogo de exámenes, opcionalmente filtrado por modalidad.
func (uc *CatalogUseCase) ListExamTypes(ctx context.Context, modality string) ([]entity.ExamType, error) {
	all, err := uc.examTypes.List()
	if err != nil {
		return nil, err
	}
	if modality == "" {
		return all, nil
	}
	out := make([]entity.ExamType, 0, len(all))
	for _, t := range all {
		if t.Modality == modality {
			out = append(out, t)
		}
	}
	return out, nil
}

// CreateExamType da de alta una entrada del catálogo.
func (uc *CatalogUseCase) CreateExamType(ctx context.Context, in dto.CreateExamTypeRequest) (int, error) {
	if strings.TrimSpace(in.Name) == "" {
		return 0, domain.ErrInvalidInput
	}
	return uc.examTypes.Create(&entity.ExamType{
		Modality: in.Modality,
		Name:     strings.TrimSpace(in.Name),
		Code:     strings.TrimSpace(in.Code),
	})
}

// UpdateExamType aplica cambios parciales; ErrNotFound si el id no existe.
func (uc *CatalogUseCase) UpdateExamType(ctx context.Context, id int, in dto.UpdateExamTypeRequest) error {
	ok, err := uc.examTypes.Update(id, func(t *entity.ExamType) {
		if in.Modality != nil {
			t.Modality = *in.Modality
		}
		if in.Name != nil {
			t.Name = strings.TrimSpace(*in.Name)
		}
		if in.Code != nil {
			t.Code = strings.TrimSpace(*in.Code)
		}
	})
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteExamType elimina una entrada del catálogo; ErrNotFound si no existe.
func (uc *CatalogUseCase) DeleteExamType(ctx context.Context, id int) error {
	ok, err := uc.examTypes.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}
