package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Radiologia-api/internal/application/dto"
	appstock "github.com/jhoicas/Radiologia-api/internal/application/stock"
	"github.com/jhoicas/Radiologia-api/internal/application/usecase"
	"github.com/jhoicas/Radiologia-api/internal/infrastructure/report"
)

// ReportHandler exporta el tablero de stock como PDF o XLSX (protegido).
type ReportHandler struct {
	snapshot  *appstock.SnapshotUseCase
	movements *appstock.MovementUseCase
	settings  *usecase.SettingsUseCase
	pdf       *report.StockPDFGenerator
	xlsx      *report.StockXLSXGenerator
}

// NewReportHandler construye el handler.
func NewReportHandler(
	snapshot *appstock.SnapshotUseCase,
	movements *appstock.MovementUseCase,
	settings *usecase.SettingsUseCase,
	pdf *report.StockPDFGenerator,
	xlsx *report.StockXLSXGenerator,
) *ReportHandler {
	return &ReportHandler{snapshot: snapshot, movements: movements, settings: settings, pdf: pdf, xlsx: xlsx}
}

// StockPDF godoc
// @Summary      Reporte de stock en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/stock.pdf [get]
func (h *ReportHandler) StockPDF(c *fiber.Ctx) error {
	rows, err := h.snapshot.Compute(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	s, err := h.settings.Get(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	data, err := h.pdf.Generate(s.PortalName, rows)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="stock.pdf"`)
	return c.Send(data)
}

// StockXLSX godoc
// @Summary      Reporte de stock en XLSX (tablero + movimientos)
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/reports/stock.xlsx [get]
func (h *ReportHandler) StockXLSX(c *fiber.Ctx) error {
	rows, err := h.snapshot.Compute(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	movs, err := h.movements.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	data, err := h.xlsx.Generate(rows, movs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="stock.xlsx"`)
	return c.Send(data)
}
