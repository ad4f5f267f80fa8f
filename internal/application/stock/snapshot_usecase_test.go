package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Radiologia-api/internal/domain/entity"
)

func TestSnapshot_LibroDeLotesEsLaFuenteAutoritativa(t *testing.T) {
	env := newTestEnv(t)
	env.entry(t, 1, 100, "GAD-01", "2026-12-31")
	require.NoError(t, env.consumption.ConsumeByLots(context.Background(), usageToConsume([]entity.ExamUsageItem{{MaterialID: 1, Quantity: 6}})))
	seedExam(t, env, []entity.ExamUsageItem{{MaterialID: 1, Quantity: 6}})

	rows, err := env.snapshot.Compute(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, 1, r.MaterialID)
	assert.InDelta(t, 100.0, r.Entries, 1e-9)
	assert.InDelta(t, 6.0, r.Consumption, 1e-9)
	// Con lotes registrados manda el libro, no la fórmula.
	assert.InDelta(t, 94.0, r.Current, 1e-9)
	assert.False(t, r.BelowMin)
}

func TestSnapshot_SinLotesUsaLaFormulaHeredada(t *testing.T) {
	env := newTestEnv(t)

	// Material sin lotes: stock_inicial + entradas - salidas + ajustes - consumo.
	_, err := env.materials.Create(&entity.Material{
		Name: "Alcohol", Unit: "mL", InitialStock: 500, MinStock: 100,
	})
	require.NoError(t, err)
	seedExam(t, env, []entity.ExamUsageItem{{MaterialID: 2, Quantity: 120}})

	rows, err := env.snapshot.Compute(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	var alcohol *struct {
		current float64
		below   bool
	}
	for _, r := range rows {
		if r.MaterialID == 2 {
			alcohol = &struct {
				current float64
				below   bool
			}{r.Current, r.BelowMin}
		}
	}
	require.NotNil(t, alcohol)
	assert.InDelta(t, 380.0, alcohol.current, 1e-9)
	assert.False(t, alcohol.below)
}

func TestSnapshot_BajoMinimo(t *testing.T) {
	env := newTestEnv(t) // Gadolinio tiene stock_minimo=5
	env.entry(t, 1, 4, "GAD-01", "2026-12-31")

	rows, err := env.snapshot.Compute(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].BelowMin)
}

func TestSnapshot_EsIdempotente(t *testing.T) {
	env := newTestEnv(t)
	env.entry(t, 1, 50, "GAD-01", "2026-12-31")
	require.NoError(t, env.consumption.ConsumeByLots(context.Background(), usageToConsume([]entity.ExamUsageItem{{MaterialID: 1, Quantity: 6}})))
	seedExam(t, env, []entity.ExamUsageItem{{MaterialID: 1, Quantity: 6}})

	first, err := env.snapshot.Compute(context.Background())
	require.NoError(t, err)
	second, err := env.snapshot.Compute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second, "dos lecturas sin mutaciones intermedias deben ser idénticas")
}

func TestSnapshot_OrdenaPorNombre(t *testing.T) {
	env := newTestEnv(t) // "Gadolinio"
	for _, name := range []string{"ácido", "Bario", "agua"} {
		_, err := env.materials.Create(&entity.Material{Name: name, Unit: "mL"})
		require.NoError(t, err)
	}

	rows, err := env.snapshot.Compute(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 4)

	// Colación española sin distinguir mayúsculas ni acentos como ASCII.
	names := []string{rows[0].Name, rows[1].Name, rows[2].Name, rows[3].Name}
	assert.Equal(t, []string{"ácido", "agua", "Bario", "Gadolinio"}, names)
}

func TestSnapshot_ExamenCanceladoNoCuentaComoConsumo(t *testing.T) {
	env := newTestEnv(t)
	env.entry(t, 1, 100, "GAD-01", "2026-12-31")
	require.NoError(t, env.consumption.ConsumeByLots(context.Background(), usageToConsume([]entity.ExamUsageItem{{MaterialID: 1, Quantity: 6}})))
	exam := seedExam(t, env, []entity.ExamUsageItem{{MaterialID: 1, Quantity: 6}})
	require.NoError(t, env.reversal.Cancel(context.Background(), exam.ID))

	rows, err := env.snapshot.Compute(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.InDelta(t, 0.0, rows[0].Consumption, 1e-9)
	assert.InDelta(t, 100.0, rows[0].Current, 1e-9)
}
