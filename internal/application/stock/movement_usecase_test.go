package stock_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appstock "github.com/jhoicas/Radiologia-api/internal/application/stock"
	"github.com/jhoicas/Radiologia-api/internal/domain"
	"github.com/jhoicas/Radiologia-api/internal/domain/entity"
	"github.com/jhoicas/Radiologia-api/internal/domain/stock"
	"github.com/jhoicas/Radiologia-api/internal/infrastructure/jsonstore"
	"github.com/jhoicas/Radiologia-api/pkg/logger"
)

// testEnv arma el motor de stock completo sobre colecciones en un directorio
// temporal, con un material sembrado (id 1).
type testEnv struct {
	materials *jsonstore.MaterialRepo
	ledger    *jsonstore.LedgerRepo
	movRepo   *jsonstore.MovementRepo
	exams     *jsonstore.ExamRepo

	movements   *appstock.MovementUseCase
	consumption *appstock.ConsumptionUseCase
	snapshot    *appstock.SnapshotUseCase
	reversal    *appstock.ReversalUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	ledger := jsonstore.NewLedgerRepository(filepath.Join(dir, "lotes.json"))
	materials := jsonstore.NewMaterialRepository(filepath.Join(dir, "materiales.json"), ledger)
	movRepo := jsonstore.NewMovementRepository(filepath.Join(dir, "movimientos.json"))
	exams := jsonstore.NewExamRepository(filepath.Join(dir, "examenes.json"))

	_, err := materials.Create(&entity.Material{
		Name: "Gadolinio", Type: entity.MaterialTypeContrast, Unit: "mL",
		UnitPrice: decimal.NewFromFloat(1.50), MinStock: 5,
	})
	require.NoError(t, err)

	log := logger.New(logger.Config{Env: "development", Level: "error"})
	movements := appstock.NewMovementUseCase(materials, ledger, movRepo)
	consumption := appstock.NewConsumptionUseCase(ledger)
	snapshot := appstock.NewSnapshotUseCase(materials, movRepo, exams, ledger)
	reversal := appstock.NewReversalUseCase(exams, materials, ledger, movements, log)

	return &testEnv{
		materials: materials, ledger: ledger, movRepo: movRepo, exams: exams,
		movements: movements, consumption: consumption, snapshot: snapshot, reversal: reversal,
	}
}

// balance devuelve el saldo total del material en el libro.
func (e *testEnv) balance(t *testing.T, materialID int) float64 {
	t.Helper()
	var total float64
	require.NoError(t, e.ledger.View(func(l stock.Ledger) error {
		total = l.SumBalances(materialID)
		return nil
	}))
	return total
}

// entry registra una entrada con lote y vencimiento.
func (e *testEnv) entry(t *testing.T, materialID int, qty float64, code, expiry string) {
	t.Helper()
	_, err := e.movements.Register(context.Background(), appstock.MovementInput{
		MaterialID: materialID,
		Type:       entity.MovementTypeEntry,
		Quantity:   qty,
		LotCode:    &code,
		Expiry:     &expiry,
	})
	require.NoError(t, err)
}

func strp(s string) *string { return &s }

func TestRegister_EntradaCreaLoteYMovimiento(t *testing.T) {
	env := newTestEnv(t)

	env.entry(t, 1, 100, "GAD-01", "2026-12-31")

	assert.InDelta(t, 100.0, env.balance(t, 1), 1e-9)

	movs, err := env.movements.History(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeEntry, movs[0].Type)
	assert.Equal(t, "GAD-01", *movs[0].LotCode)
}

func TestRegister_EntradaRoundTripConLotesActivos(t *testing.T) {
	env := newTestEnv(t)
	env.entry(t, 1, 40, "GAD-02", "2027-06-30")
	env.entry(t, 1, 60, "GAD-01", "2026-12-31")

	lots, err := env.consumption.ActiveBatches(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, lots, 2)
	// Orden FIFO: vence antes primero.
	assert.Equal(t, "GAD-01", *lots[0].Code)
	assert.InDelta(t, 60.0, lots[0].Balance, 1e-9)
	assert.Equal(t, "GAD-02", *lots[1].Code)
}

func TestRegister_MaterialInexistente(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.movements.Register(context.Background(), appstock.MovementInput{
		MaterialID: 99, Type: entity.MovementTypeEntry, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegister_TipoOCantidadInvalida(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.movements.Register(context.Background(), appstock.MovementInput{
		MaterialID: 1, Type: "transferencia", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.movements.Register(context.Background(), appstock.MovementInput{
		MaterialID: 1, Type: entity.MovementTypeEntry, Quantity: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_SalidaPorLoteYPorFIFO(t *testing.T) {
	env := newTestEnv(t)
	env.entry(t, 1, 60, "GAD-01", "2026-12-31")
	env.entry(t, 1, 40, "GAD-02", "2027-06-30")

	// Salida dirigida a un lote concreto.
	_, err := env.movements.Register(context.Background(), appstock.MovementInput{
		MaterialID: 1, Type: entity.MovementTypeExit, Quantity: 10,
		LotCode: strp("GAD-02"), Expiry: strp("2027-06-30"),
	})
	require.NoError(t, err)

	// Salida sin lote: drena por vencimiento.
	_, err = env.movements.Register(context.Background(), appstock.MovementInput{
		MaterialID: 1, Type: entity.MovementTypeExit, Quantity: 70,
	})
	require.NoError(t, err)

	require.NoError(t, env.ledger.View(func(l stock.Ledger) error {
		assert.InDelta(t, 0.0, l.FindLot(1, strp("GAD-01"), strp("2026-12-31")).Balance, 1e-9)
		assert.InDelta(t, 20.0, l.FindLot(1, strp("GAD-02"), strp("2027-06-30")).Balance, 1e-9)
		return nil
	}))
}

func TestRegister_SalidaLoteInexistente(t *testing.T) {
	env := newTestEnv(t)
	env.entry(t, 1, 10, "GAD-01", "2026-12-31")

	_, err := env.movements.Register(context.Background(), appstock.MovementInput{
		MaterialID: 1, Type: entity.MovementTypeExit, Quantity: 1,
		LotCode: strp("NO-EXISTE"), Expiry: strp("2026-12-31"),
	})
	assert.ErrorIs(t, err, domain.ErrLotNotFound)
}

func TestRegister_SalidaInsuficienteNoDejaRastro(t *testing.T) {
	env := newTestEnv(t)
	env.entry(t, 1, 10, "GAD-01", "2026-12-31")

	_, err := env.movements.Register(context.Background(), appstock.MovementInput{
		MaterialID: 1, Type: entity.MovementTypeExit, Quantity: 11,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Ni el libro ni el historial deben reflejar el intento fallido.
	assert.InDelta(t, 10.0, env.balance(t, 1), 1e-9)
	movs, err := env.movements.History(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, movs, 1, "solo la entrada inicial")
}

// ──────────────────────────────────────────────────────────────────────────────
// Heurística de dirección de "ajuste"
// ──────────────────────────────────────────────────────────────────────────────

func TestAjuste_SinSenalesEsCredito(t *testing.T) {
	env := newTestEnv(t)
	env.entry(t, 1, 10, "GAD-01", "2026-12-31")

	_, err := env.movements.Register(context.Background(), appstock.MovementInput{
		MaterialID: 1, Type: entity.MovementTypeAdjust, Quantity: 5,
		LotCode: strp("GAD-01"), Expiry: strp("2026-12-31"),
	})
	require.NoError(t, err)
	assert.InDelta(t, 15.0, env.balance(t, 1), 1e-9)
}

func TestAjuste_NotaConMenosEsDebito(t *testing.T) {
	env := newTestEnv(t)
	env.entry(t, 1, 10, "GAD-01", "2026-12-31")

	_, err := env.movements.Register(context.Background(), appstock.MovementInput{
		MaterialID: 1, Type: entity.MovementTypeAdjust, Quantity: 4,
		Note: strp("merma -4 por derrame"),
	})
	require.NoError(t, err)
	assert.InDelta(t, 6.0, env.balance(t, 1), 1e-9)
}

func TestAjuste_NotaConMasEsCredito(t *testing.T) {
	env := newTestEnv(t)
	env.entry(t, 1, 10, "GAD-01", "2026-12-31")

	_, err := env.movements.Register(context.Background(), appstock.MovementInput{
		MaterialID: 1, Type: entity.MovementTypeAdjust, Quantity: 3,
		LotCode: strp("GAD-01"), Expiry: strp("2026-12-31"),
		Note: strp("conteo +3"),
	})
	require.NoError(t, err)
	assert.InDelta(t, 13.0, env.balance(t, 1), 1e-9)
}

func TestAjuste_CostoUnitarioPresenteEsCredito(t *testing.T) {
	env := newTestEnv(t)
	env.entry(t, 1, 10, "GAD-01", "2026-12-31")

	cost := decimal.NewFromFloat(1.25)
	_, err := env.movements.Register(context.Background(), appstock.MovementInput{
		MaterialID: 1, Type: entity.MovementTypeAdjust, Quantity: 2,
		LotCode: strp("GAD-01"), Expiry: strp("2026-12-31"),
		UnitCost: &cost,
	})
	require.NoError(t, err)
	assert.InDelta(t, 12.0, env.balance(t, 1), 1e-9)
}

func TestAjuste_AmbosSignosEsCredito(t *testing.T) {
	env := newTestEnv(t)
	env.entry(t, 1, 10, "GAD-01", "2026-12-31")

	_, err := env.movements.Register(context.Background(), appstock.MovementInput{
		MaterialID: 1, Type: entity.MovementTypeAdjust, Quantity: 1,
		LotCode: strp("GAD-01"), Expiry: strp("2026-12-31"),
		Note: strp("recuento +1/-0"),
	})
	require.NoError(t, err)
	assert.InDelta(t, 11.0, env.balance(t, 1), 1e-9)
}

// ──────────────────────────────────────────────────────────────────────────────
// Salida residual forzada
// ──────────────────────────────────────────────────────────────────────────────

func TestResidualExit_PermiteSaldoNegativo(t *testing.T) {
	env := newTestEnv(t)
	env.entry(t, 1, 3, "GAD-01", "2026-12-31")

	_, err := env.movements.RegisterResidualExit(context.Background(), 1, 5, strp("regularización"))
	require.NoError(t, err)

	// 3 salen del lote, el resto fuerza -2 en el lote sin código.
	assert.InDelta(t, -2.0, env.balance(t, 1), 1e-9)

	require.NoError(t, env.ledger.View(func(l stock.Ledger) error {
		residual := l.FindLot(1, nil, nil)
		require.NotNil(t, residual)
		assert.InDelta(t, -2.0, residual.Balance, 1e-9)
		return nil
	}))

	movs, err := env.movements.History(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementTypeExit, movs[1].Type)
}
