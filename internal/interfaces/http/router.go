package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Radiologia-api/internal/application/auth"
	appexam "github.com/jhoicas/Radiologia-api/internal/application/exam"
	appstock "github.com/jhoicas/Radiologia-api/internal/application/stock"
	"github.com/jhoicas/Radiologia-api/internal/application/usecase"
	"github.com/jhoicas/Radiologia-api/internal/infrastructure/report"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	MaterialUC  *usecase.MaterialUseCase
	CatalogUC   *usecase.CatalogUseCase
	UserUC      *usecase.UserUseCase
	SettingsUC  *usecase.SettingsUseCase
	Audit       *usecase.AuditService
	MovementUC  *appstock.MovementUseCase
	Consumption *appstock.ConsumptionUseCase
	SnapshotUC  *appstock.SnapshotUseCase
	ReversalUC  *appstock.ReversalUseCase
	ExamUC      *appexam.UseCase
	PDF         *report.StockPDFGenerator
	XLSX        *report.StockXLSXGenerator
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Materiales (protegido)
	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Get("/", materialHandler.List)
	materials.Post("/", materialHandler.Create)
	materials.Put("/:id", materialHandler.Update)
	materials.Delete("/:id", materialHandler.Delete)

	// Stock: movimientos, lotes, consumo, snapshot (protegido)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.MovementUC, deps.Consumption, deps.SnapshotUC)
	stockGroup.Post("/movements", stockHandler.RegisterMovement)
	stockGroup.Get("/movements", stockHandler.ListMovements)
	stockGroup.Get("/movements/material/:id", stockHandler.MaterialHistory)
	stockGroup.Get("/batches/:id", stockHandler.ListBatches)
	stockGroup.Post("/consume", stockHandler.Consume)
	stockGroup.Get("/snapshot", stockHandler.Snapshot)

	// Exámenes (protegido)
	exams := protected.Group("/exams")
	examHandler := NewExamHandler(deps.ExamUC, deps.ReversalUC)
	exams.Post("/", examHandler.Save)
	exams.Get("/", examHandler.List)
	exams.Post("/cost-preview", examHandler.PreviewCost)
	exams.Get("/:id", examHandler.GetByID)
	exams.Put("/:id/usage", examHandler.UpdateUsage)
	exams.Post("/:id/cancel", examHandler.Cancel)

	// Catálogos: médicos y tipos de examen (protegido)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	doctors := protected.Group("/doctors")
	doctors.Get("/", catalogHandler.ListDoctors)
	doctors.Post("/", catalogHandler.CreateDoctor)
	doctors.Delete("/:id", catalogHandler.DeleteDoctor)
	examTypes := protected.Group("/exam-types")
	examTypes.Get("/", catalogHandler.ListExamTypes)
	examTypes.Post("/", catalogHandler.CreateExamType)
	examTypes.Put("/:id", catalogHandler.UpdateExamType)
	examTypes.Delete("/:id", catalogHandler.DeleteExamType)

	// Reportes (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.SnapshotUC, deps.MovementUC, deps.SettingsUC, deps.PDF, deps.XLSX)
	reports.Get("/stock.pdf", reportHandler.StockPDF)
	reports.Get("/stock.xlsx", reportHandler.StockXLSX)

	// Administración: usuarios, configuración y auditoría (solo admin)
	admin := protected.Group("/", AdminOnly())
	users := admin.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	settingsHandler := NewSettingsHandler(deps.SettingsUC, deps.Audit)
	admin.Get("/settings", settingsHandler.Get)
	admin.Put("/settings", settingsHandler.Update)
	admin.Get("/audit", settingsHandler.AuditLog)
}
