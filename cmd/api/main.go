package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Radiologia-api/internal/application/auth"
	appexam "github.com/jhoicas/Radiologia-api/internal/application/exam"
	appstock "github.com/jhoicas/Radiologia-api/internal/application/stock"
	"github.com/jhoicas/Radiologia-api/internal/application/usecase"
	"github.com/jhoicas/Radiologia-api/internal/infrastructure/jsonstore"
	"github.com/jhoicas/Radiologia-api/internal/infrastructure/report"
	httpRouter "github.com/jhoicas/Radiologia-api/internal/interfaces/http"
	"github.com/jhoicas/Radiologia-api/pkg/config"
	"github.com/jhoicas/Radiologia-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("data_dir", cfg.Storage.DataDir).
		Msg("iniciando aplicación")

	paths := jsonstore.DefaultPaths(cfg.Storage.DataDir)
	if err := jsonstore.Seed(paths, jsonstore.AdminSeed{
		Name:     cfg.Admin.Name,
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
	}); err != nil {
		log.Fatal().Err(err).Msg("sembrar datos iniciales")
	}

	ledgerRepo := jsonstore.NewLedgerRepository(paths.Ledger)
	materialRepo := jsonstore.NewMaterialRepository(paths.Materials, ledgerRepo)
	movementRepo := jsonstore.NewMovementRepository(paths.Movements)
	examRepo := jsonstore.NewExamRepository(paths.Exams)
	userRepo := jsonstore.NewUserRepository(paths.Users)
	doctorRepo := jsonstore.NewDoctorRepository(paths.Doctors)
	examTypeRepo := jsonstore.NewExamTypeRepository(paths.ExamTypes)
	auditRepo := jsonstore.NewAuditRepository(paths.Audit)
	settingsRepo := jsonstore.NewSettingsRepository(paths.Settings)

	auditSvc := usecase.NewAuditService(auditRepo, log.Component("audit"))
	movementUC := appstock.NewMovementUseCase(materialRepo, ledgerRepo, movementRepo)
	consumptionUC := appstock.NewConsumptionUseCase(ledgerRepo)
	snapshotUC := appstock.NewSnapshotUseCase(materialRepo, movementRepo, examRepo, ledgerRepo)
	reversalUC := appstock.NewReversalUseCase(examRepo, materialRepo, ledgerRepo, movementUC, log.Component("reversal"))
	examUC := appexam.NewUseCase(examRepo, materialRepo, doctorRepo, consumptionUC)
	materialUC := usecase.NewMaterialUseCase(materialRepo, auditSvc)
	catalogUC := usecase.NewCatalogUseCase(doctorRepo, examTypeRepo)
	userUC := usecase.NewUserUseCase(userRepo, auditSvc)
	settingsUC := usecase.NewSettingsUseCase(settingsRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Radiología API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		MaterialUC:  materialUC,
		CatalogUC:   catalogUC,
		UserUC:      userUC,
		SettingsUC:  settingsUC,
		Audit:       auditSvc,
		MovementUC:  movementUC,
		Consumption: consumptionUC,
		SnapshotUC:  snapshotUC,
		ReversalUC:  reversalUC,
		ExamUC:      examUC,
		PDF:         report.NewStockPDFGenerator(),
		XLSX:        report.NewStockXLSXGenerator(),
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
