package exam_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appexam "github.com/jhoicas/Radiologia-api/internal/application/exam"
	appstock "github.com/jhoicas/Radiologia-api/internal/application/stock"
	"github.com/jhoicas/Radiologia-api/internal/domain"
	"github.com/jhoicas/Radiologia-api/internal/domain/entity"
	"github.com/jhoicas/Radiologia-api/internal/domain/stock"
	"github.com/jhoicas/Radiologia-api/internal/infrastructure/jsonstore"
)

type examEnv struct {
	exams     *jsonstore.ExamRepo
	materials *jsonstore.MaterialRepo
	doctors   *jsonstore.DoctorRepo
	ledger    *jsonstore.LedgerRepo
	uc        *appexam.UseCase
}

func newExamEnv(t *testing.T) *examEnv {
	t.Helper()
	dir := t.TempDir()

	ledger := jsonstore.NewLedgerRepository(filepath.Join(dir, "lotes.json"))
	materials := jsonstore.NewMaterialRepository(filepath.Join(dir, "materiales.json"), ledger)
	exams := jsonstore.NewExamRepository(filepath.Join(dir, "examenes.json"))
	doctors := jsonstore.NewDoctorRepository(filepath.Join(dir, "medicos.json"))

	_, err := materials.Create(&entity.Material{
		Name: "Gadolinio", Unit: "mL", UnitPrice: decimal.NewFromFloat(1.50),
	})
	require.NoError(t, err)
	require.NoError(t, ledger.Update(func(l stock.Ledger) error {
		code, exp := "GAD-01", "2026-12-31"
		stock.Credit(l.EnsureLot(1, &code, &exp), 100)
		return nil
	}))

	consumption := appstock.NewConsumptionUseCase(ledger)
	uc := appexam.NewUseCase(exams, materials, doctors, consumption)
	return &examEnv{exams: exams, materials: materials, doctors: doctors, ledger: ledger, uc: uc}
}

func (e *examEnv) balance(t *testing.T, materialID int) float64 {
	t.Helper()
	var total float64
	require.NoError(t, e.ledger.View(func(l stock.Ledger) error {
		total = l.SumBalances(materialID)
		return nil
	}))
	return total
}

func TestSave_AltaConsumeEnriqueceYAsignaPublicID(t *testing.T) {
	env := newExamEnv(t)

	e := &entity.Exam{
		Modality:      "MR",
		Name:          "Resonancia cerebral",
		Doctor:        "Dra. Rojas",
		UsedMaterials: []entity.ExamUsageItem{{MaterialID: 1, Quantity: 10}},
	}
	id, err := env.uc.Save(context.Background(), e)
	require.NoError(t, err)
	require.Equal(t, 1, id)

	// El consumo se aplicó por FIFO.
	assert.InDelta(t, 90.0, env.balance(t, 1), 1e-9)

	got, err := env.uc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "E-0001", got.PublicID)
	assert.False(t, got.PerformedAt.IsZero(), "la fecha se completa al guardar")
	require.Len(t, got.UsedMaterials, 1)
	assert.True(t, got.UsedMaterials[0].Subtotal.Equal(decimal.NewFromFloat(15.0)),
		"subtotal=%s", got.UsedMaterials[0].Subtotal)
	assert.True(t, got.EstimatedCost.Equal(decimal.NewFromFloat(15.0)))

	// El médico entra al catálogo.
	docs, err := env.doctors.List()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Dra. Rojas", docs[0].Name)
}

func TestSave_AltaSinStockNoPersisteNada(t *testing.T) {
	env := newExamEnv(t)

	e := &entity.Exam{
		Modality:      "MR",
		Name:          "Resonancia cerebral",
		UsedMaterials: []entity.ExamUsageItem{{MaterialID: 1, Quantity: 500}},
	}
	_, err := env.uc.Save(context.Background(), e)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.InDelta(t, 100.0, env.balance(t, 1), 1e-9)
	all, err := env.uc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSave_EdicionPersisteTalCualSinTocarStock(t *testing.T) {
	env := newExamEnv(t)

	e := &entity.Exam{
		Modality:      "MR",
		Name:          "Resonancia cerebral",
		UsedMaterials: []entity.ExamUsageItem{{MaterialID: 1, Quantity: 10}},
	}
	id, err := env.uc.Save(context.Background(), e)
	require.NoError(t, err)
	require.InDelta(t, 90.0, env.balance(t, 1), 1e-9)

	// La edición persiste el registro tal cual: aunque declare otro consumo,
	// el libro no cambia (el ajuste de stock es trabajo del motor de estornos).
	edited, err := env.uc.GetByID(context.Background(), id)
	require.NoError(t, err)
	edited.Name = "Resonancia cerebral con contraste"
	edited.UsedMaterials = []entity.ExamUsageItem{{MaterialID: 1, Quantity: 99}}

	_, err = env.uc.Save(context.Background(), edited)
	require.NoError(t, err)

	assert.InDelta(t, 90.0, env.balance(t, 1), 1e-9, "la edición no debe consumir stock")
	got, err := env.uc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Resonancia cerebral con contraste", got.Name)
	assert.InDelta(t, 99.0, got.UsedMaterials[0].Quantity, 1e-9)
}

func TestSave_EdicionDeInexistenteFalla(t *testing.T) {
	env := newExamEnv(t)
	_, err := env.uc.Save(context.Background(), &entity.Exam{ID: 99, Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListFiltered(t *testing.T) {
	env := newExamEnv(t)

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	seed := []entity.Exam{
		{Modality: "MR", Name: "Resonancia cerebral", Doctor: "Dra. Rojas", PerformedAt: base},
		{Modality: "RX", Name: "Tórax PA/L", Doctor: "Dr. Soto", PerformedAt: base.AddDate(0, 1, 0)},
		{Modality: "MR", Name: "Columna lumbar", Doctor: "Dr. Soto", PerformedAt: base.AddDate(0, 2, 0)},
	}
	for i := range seed {
		_, err := env.uc.Save(context.Background(), &seed[i])
		require.NoError(t, err)
	}

	byModality, err := env.uc.ListFiltered(context.Background(), appexam.Filter{Modality: "MR"})
	require.NoError(t, err)
	assert.Len(t, byModality, 2)

	byDoctor, err := env.uc.ListFiltered(context.Background(), appexam.Filter{Doctor: "dr. soto"})
	require.NoError(t, err)
	assert.Len(t, byDoctor, 2, "el filtro por médico no distingue mayúsculas")

	byText, err := env.uc.ListFiltered(context.Background(), appexam.Filter{Text: "tórax"})
	require.NoError(t, err)
	require.Len(t, byText, 1)
	assert.Equal(t, "Tórax PA/L", byText[0].Name)

	byRange, err := env.uc.ListFiltered(context.Background(), appexam.Filter{
		From: base.AddDate(0, 0, 15),
		To:   base.AddDate(0, 1, 15),
	})
	require.NoError(t, err)
	require.Len(t, byRange, 1)
	assert.Equal(t, "Tórax PA/L", byRange[0].Name)
}

func TestPreviewCost_NoTocaElStock(t *testing.T) {
	env := newExamEnv(t)

	items, total, err := env.uc.PreviewCost(context.Background(), []entity.ExamUsageItem{
		{MaterialID: 1, Quantity: 20},
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, total.Equal(decimal.NewFromFloat(30.0)), "total=%s", total)
	assert.InDelta(t, 100.0, env.balance(t, 1), 1e-9)
}
