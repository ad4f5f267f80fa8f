// Package exam contiene el caso de uso de alta/edición de exámenes y su
// acople con el motor de stock.
package exam

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	appstock "github.com/jhoicas/Radiologia-api/internal/application/stock"
	"github.com/jhoicas/Radiologia-api/internal/domain"
	"github.com/jhoicas/Radiologia-api/internal/domain/entity"
	"github.com/jhoicas/Radiologia-api/internal/domain/repository"
	"github.com/jhoicas/Radiologia-api/internal/domain/stock"
)

// UseCase guarda exámenes y dispara el consumo de insumos.
//
// Asimetría heredada y deliberada: el ALTA enriquece costos, consume stock y
// recién entonces persiste; la EDICIÓN persiste tal cual y NO toca el libro de
// lotes (el ajuste de stock lo orquesta el caller con el motor de estornos
// antes de llamar aquí). Consumo y persistencia del examen son dos ciclos
// bloqueados independientes: una caída entre ambos puede dejar stock
// descontado sin examen registrado. Riesgo conocido y aceptado para el
// despliegue de proceso único.
type UseCase struct {
	exams       repository.ExamRepository
	materials   repository.MaterialRepository
	doctors     repository.DoctorRepository
	consumption *appstock.ConsumptionUseCase
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	exams repository.ExamRepository,
	materials repository.MaterialRepository,
	doctors repository.DoctorRepository,
	consumption *appstock.ConsumptionUseCase,
) *UseCase {
	return &UseCase{exams: exams, materials: materials, doctors: doctors, consumption: consumption}
}

// Save inserta o actualiza un examen y devuelve su id.
func (uc *UseCase) Save(ctx context.Context, e *entity.Exam) (int, error) {
	if e.ID != 0 {
		ok, err := uc.exams.Replace(e)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, domain.ErrNotFound
		}
		return e.ID, nil
	}

	mats, err := uc.materials.List()
	if err != nil {
		return 0, err
	}
	enriched, total := stock.EstimateItemsCost(e.UsedMaterials, stock.NewPriceMap(mats))

	items := make([]stock.ConsumeItem, 0, len(enriched))
	for _, it := range enriched {
		items = append(items, stock.ConsumeItem{MaterialID: it.MaterialID, Quantity: it.Quantity, LotID: it.LotID})
	}
	if err := uc.consumption.ConsumeByLots(ctx, items); err != nil {
		return 0, err
	}

	e.UsedMaterials = enriched
	e.EstimatedCost = total
	if e.PerformedAt.IsZero() {
		e.PerformedAt = time.Now().UTC()
	}
	id, err := uc.exams.Create(e)
	if err != nil {
		return 0, err
	}
	if e.PublicID == "" {
		e.PublicID = fmt.Sprintf("E-%04d", id)
		if _, err := uc.exams.Replace(e); err != nil {
			return 0, err
		}
	}
	if err := uc.ensureDoctor(e.Doctor); err != nil {
		return 0, err
	}
	return id, nil
}

// List devuelve todos los exámenes.
func (uc *UseCase) List(ctx context.Context) ([]entity.Exam, error) {
	return uc.exams.List()
}

// Filter criterios de búsqueda de exámenes; los campos en cero no filtran.
type Filter struct {
	Modality string
	Doctor   string
	Text     string // busca en nombre del examen y en exam_id público
	From     time.Time
	To       time.Time
}

// ListFiltered devuelve los exámenes que cumplen todos los criterios del filtro.
func (uc *UseCase) ListFiltered(ctx context.Context, f Filter) ([]entity.Exam, error) {
	all, err := uc.exams.List()
	if err != nil {
		return nil, err
	}
	out := make([]entity.Exam, 0, len(all))
	for _, e := range all {
		if f.Modality != "" && e.Modality != f.Modality {
			continue
		}
		if f.Doctor != "" && !strings.EqualFold(e.Doctor, f.Doctor) {
			continue
		}
		if f.Text != "" {
			q := strings.ToLower(f.Text)
			if !strings.Contains(strings.ToLower(e.Name), q) &&
				!strings.Contains(strings.ToLower(e.PublicID), q) {
				continue
			}
		}
		if !f.From.IsZero() && e.PerformedAt.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && e.PerformedAt.After(f.To) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// GetByID devuelve el examen o ErrNotFound.
func (uc *UseCase) GetByID(ctx context.Context, id int) (*entity.Exam, error) {
	e, err := uc.exams.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

// PreviewCost estima el costo de una lista de insumos sin tocar el stock.
func (uc *UseCase) PreviewCost(ctx context.Context, items []entity.ExamUsageItem) ([]entity.ExamUsageItem, decimal.Decimal, error) {
	mats, err := uc.materials.List()
	if err != nil {
		return nil, decimal.Zero, err
	}
	enriched, total := stock.EstimateItemsCost(items, stock.NewPriceMap(mats))
	return enriched, total, nil
}

// ensureDoctor registra al médico solicitante si todavía no está en catálogo.
func (uc *UseCase) ensureDoctor(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	docs, err := uc.doctors.List()
	if err != nil {
		return err
	}
	for _, d := range docs {
		if strings.EqualFold(strings.TrimSpace(d.Name), name) {
			return nil
		}
	}
	_, err = uc.doctors.Create(&entity.Doctor{Name: name})
	return err
}
