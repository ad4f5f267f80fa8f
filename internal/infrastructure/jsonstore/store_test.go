package jsonstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Radiologia-api/internal/domain/entity"
	"github.com/jhoicas/Radiologia-api/internal/domain/stock"
)

func TestCollection_ArchivoInexistenteSeLeeVacio(t *testing.T) {
	col := NewCollection[[]entity.Doctor](filepath.Join(t.TempDir(), "medicos.json"))

	err := col.View(func(docs []entity.Doctor) error {
		assert.Empty(t, docs)
		return nil
	})
	require.NoError(t, err)
}

func TestCollection_UpdatePersisteYRelee(t *testing.T) {
	path := filepath.Join(t.TempDir(), "medicos.json")
	col := NewCollection[[]entity.Doctor](path)

	require.NoError(t, col.Update(func(docs *[]entity.Doctor) error {
		*docs = append(*docs, entity.Doctor{ID: 1, Name: "Dra. Rojas"})
		return nil
	}))

	// Una colección nueva sobre la misma ruta ve lo persistido.
	again := NewCollection[[]entity.Doctor](path)
	err := again.View(func(docs []entity.Doctor) error {
		require.Len(t, docs, 1)
		assert.Equal(t, "Dra. Rojas", docs[0].Name)
		return nil
	})
	require.NoError(t, err)

	// El reemplazo es por renombre: no debe quedar el temporal.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestCollection_ErrorDeFnDescartaMutaciones(t *testing.T) {
	path := filepath.Join(t.TempDir(), "medicos.json")
	col := NewCollection[[]entity.Doctor](path)
	require.NoError(t, col.Update(func(docs *[]entity.Doctor) error {
		*docs = []entity.Doctor{{ID: 1, Name: "Dra. Rojas"}}
		return nil
	}))

	boom := errors.New("boom")
	err := col.Update(func(docs *[]entity.Doctor) error {
		*docs = nil // mutación que NO debe persistirse
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = col.View(func(docs []entity.Doctor) error {
		assert.Len(t, docs, 1, "un Update fallido no debe tocar el disco")
		return nil
	})
	require.NoError(t, err)
}

func TestCollection_JSONCorruptoFalla(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roto.json")
	require.NoError(t, os.WriteFile(path, []byte("{no es json"), 0o644))

	col := NewCollection[[]entity.Doctor](path)
	err := col.View(func([]entity.Doctor) error { return nil })
	assert.Error(t, err)
}

func TestLedgerRepo_InicializaLibroVacio(t *testing.T) {
	repo := NewLedgerRepository(filepath.Join(t.TempDir(), "lotes.json"))

	// Sin archivo, el libro debe llegar como mapa utilizable, no nil.
	require.NoError(t, repo.Update(func(l stock.Ledger) error {
		stock.Credit(l.EnsureLot(1, nil, nil), 10)
		return nil
	}))

	err := repo.View(func(l stock.Ledger) error {
		assert.InDelta(t, 10.0, l.SumBalances(1), 1e-9)
		return nil
	})
	require.NoError(t, err)
}

func TestLedgerRepo_UpdateFallidoNoPersiste(t *testing.T) {
	repo := NewLedgerRepository(filepath.Join(t.TempDir(), "lotes.json"))
	require.NoError(t, repo.Update(func(l stock.Ledger) error {
		stock.Credit(l.EnsureLot(1, nil, nil), 10)
		return nil
	}))

	boom := errors.New("boom")
	require.ErrorIs(t, repo.Update(func(l stock.Ledger) error {
		l.RemoveMaterial(1)
		return boom
	}), boom)

	err := repo.View(func(l stock.Ledger) error {
		assert.True(t, l.HasLots(1), "la mutación descartada no debe llegar al disco")
		return nil
	})
	require.NoError(t, err)
}

func TestSeed_EsIdempotente(t *testing.T) {
	paths := DefaultPaths(t.TempDir())
	admin := AdminSeed{Name: "Admin", Email: "admin@portal.local", Password: "secreta123"}

	require.NoError(t, Seed(paths, admin))
	require.NoError(t, Seed(paths, admin)) // segunda pasada no duplica

	users := NewUserRepository(paths.Users)
	all, err := users.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, entity.RoleAdmin, all[0].Role)
	assert.Equal(t, "*", all[0].AllowedModalities)

	mats, err := NewMaterialRepository(paths.Materials, NewLedgerRepository(paths.Ledger)).List()
	require.NoError(t, err)
	assert.Len(t, mats, 3)

	// Los lotes sembrados tienen vencimientos escalonados y saldo positivo.
	ledger := NewLedgerRepository(paths.Ledger)
	err = ledger.View(func(l stock.Ledger) error {
		for _, m := range mats {
			assert.True(t, l.HasLots(m.ID), "material %q debe tener lotes", m.Name)
			assert.Greater(t, l.SumBalances(m.ID), 0.0)
		}
		return nil
	})
	require.NoError(t, err)
}
