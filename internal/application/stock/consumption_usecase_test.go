package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Radiologia-api/internal/domain"
	"github.com/jhoicas/Radiologia-api/internal/domain/entity"
	"github.com/jhoicas/Radiologia-api/internal/domain/stock"
)

func intp(v int) *int { return &v }

func TestConsumeByLots_DescuentaFIFOYPorLote(t *testing.T) {
	env := newTestEnv(t)
	env.entry(t, 1, 60, "GAD-01", "2026-12-31")
	env.entry(t, 1, 40, "GAD-02", "2027-06-30")

	var lotID2 int
	require.NoError(t, env.ledger.View(func(l stock.Ledger) error {
		lotID2 = l.FindLot(1, strp("GAD-02"), strp("2027-06-30")).ID
		return nil
	}))

	err := env.consumption.ConsumeByLots(context.Background(), []stock.ConsumeItem{
		{MaterialID: 1, Quantity: 70},                  // FIFO: agota GAD-01 y toma 10 de GAD-02
		{MaterialID: 1, Quantity: 5, LotID: &lotID2}, // directo a GAD-02
	})
	require.NoError(t, err)

	assert.InDelta(t, 25.0, env.balance(t, 1), 1e-9)
}

func TestConsumeByLots_FallaTotalSinEfectosParciales(t *testing.T) {
	env := newTestEnv(t)
	env.entry(t, 1, 60, "GAD-01", "2026-12-31")

	_, err := env.materials.Create(&entity.Material{Name: "Guante", Unit: "par"})
	require.NoError(t, err)
	env.entry(t, 2, 10, "GUA-01", "2026-06-30")

	// La primera línea es válida; la segunda excede el saldo. Nada debe cambiar.
	err = env.consumption.ConsumeByLots(context.Background(), []stock.ConsumeItem{
		{MaterialID: 1, Quantity: 30},
		{MaterialID: 2, Quantity: 11},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.InDelta(t, 60.0, env.balance(t, 1), 1e-9, "la línea válida no debe persistirse")
	assert.InDelta(t, 10.0, env.balance(t, 2), 1e-9)
}

func TestConsumeByLots_LoteInexistenteAbortaTodo(t *testing.T) {
	env := newTestEnv(t)
	env.entry(t, 1, 60, "GAD-01", "2026-12-31")

	err := env.consumption.ConsumeByLots(context.Background(), []stock.ConsumeItem{
		{MaterialID: 1, Quantity: 10},
		{MaterialID: 1, Quantity: 1, LotID: intp(99)},
	})
	require.ErrorIs(t, err, domain.ErrLotNotFound)
	assert.InDelta(t, 60.0, env.balance(t, 1), 1e-9)
}

func TestConsumeByLots_SinLineasEsNoOp(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.consumption.ConsumeByLots(context.Background(), nil))
}
