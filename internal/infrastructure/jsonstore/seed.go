package jsonstore

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Radiologia-api/internal/domain/entity"
	"github.com/jhoicas/Radiologia-api/internal/domain/stock"
)

// AdminSeed credenciales del usuario administrador inicial.
type AdminSeed struct {
	Name     string
	Email    string
	Password string
}

// Seed crea los datos mínimos en colecciones vacías: usuario administrador,
// catálogo de exámenes de ejemplo, materiales y sus lotes iniciales.
// Es idempotente: no toca colecciones que ya tienen registros.
func Seed(paths Paths, admin AdminSeed) error {
	users := NewUserRepository(paths.Users)
	existing, err := users.List()
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash de contraseña inicial: %w", err)
		}
		if _, err := users.Create(&entity.User{
			Name:              admin.Name,
			Email:             admin.Email,
			PasswordHash:      string(hash),
			Role:              entity.RoleAdmin,
			AllowedModalities: "*",
		}); err != nil {
			return err
		}
	}

	types := NewExamTypeRepository(paths.ExamTypes)
	if rows, err := types.List(); err != nil {
		return err
	} else if len(rows) == 0 {
		seedTypes := []entity.ExamType{
			{Modality: "RX", Name: "Tórax PA/L", Code: "RX001"},
			{Modality: "CT", Name: "Cráneo", Code: "CT001"},
			{Modality: "US", Name: "Abdomen total", Code: "US001"},
		}
		for i := range seedTypes {
			if _, err := types.Create(&seedTypes[i]); err != nil {
				return err
			}
		}
	}

	ledgerRepo := NewLedgerRepository(paths.Ledger)
	materials := NewMaterialRepository(paths.Materials, ledgerRepo)
	rows, err := materials.List()
	if err != nil {
		return err
	}
	if len(rows) > 0 {
		return nil
	}
	seedMaterials := []entity.Material{
		{Name: "Gadolinio", Type: entity.MaterialTypeContrast, Unit: "mL", UnitPrice: decimal.NewFromFloat(1.50), InitialStock: 2000, MinStock: 500},
		{Name: "Guante Estéril", Type: entity.MaterialTypeMaterial, Unit: "par", UnitPrice: decimal.NewFromFloat(2.00), InitialStock: 500, MinStock: 100},
		{Name: "Suero Fisiológico 0,9%", Type: entity.MaterialTypeMaterial, Unit: "mL", UnitPrice: decimal.NewFromFloat(0.02), InitialStock: 5000, MinStock: 500},
	}
	for i := range seedMaterials {
		if _, err := materials.Create(&seedMaterials[i]); err != nil {
			return err
		}
	}

	// Lotes iniciales con vencimientos escalonados para ejercitar el FIFO.
	year := time.Now().Year()
	return ledgerRepo.Update(func(l stock.Ledger) error {
		if len(l) > 0 {
			return nil
		}
		expiry := func(offsetYears int, month string) *string {
			s := fmt.Sprintf("%d-%s", year+offsetYears, month)
			return &s
		}
		code := func(s string) *string { return &s }
		stock.Credit(l.EnsureLot(seedMaterials[0].ID, code("GAD-A123"), expiry(1, "12-31")), 1200)
		stock.Credit(l.EnsureLot(seedMaterials[0].ID, code("GAD-B456"), expiry(2, "06-30")), 800)
		stock.Credit(l.EnsureLot(seedMaterials[1].ID, code("GUA-01"), expiry(0, "12-31")), 300)
		stock.Credit(l.EnsureLot(seedMaterials[1].ID, code("GUA-02"), expiry(1, "10-31")), 200)
		stock.Credit(l.EnsureLot(seedMaterials[2].ID, code("SUE-01"), expiry(1, "02-28")), 5000)
		return nil
	})
}
