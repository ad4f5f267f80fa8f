package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Radiologia-api/internal/application/dto"
	"github.com/jhoicas/Radiologia-api/internal/application/usecase"
)

// SettingsHandler maneja la configuración del portal y el log de auditoría
// (solo admin).
type SettingsHandler struct {
	settings *usecase.SettingsUseCase
	audit    *usecase.AuditService
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(settings *usecase.SettingsUseCase, audit *usecase.AuditService) *SettingsHandler {
	return &SettingsHandler{settings: settings, audit: audit}
}

// Get godoc
// @Summary      Configuración vigente del portal
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  entity.Settings
// @Router       /api/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	s, err := h.settings.Get(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(s)
}

// Update godoc
// @Summary      Actualizar configuración del portal (parcial)
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateSettingsRequest  true  "campos a cambiar"
// @Success      200   {object}  entity.Settings
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	s, err := h.settings.Update(c.Context(), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(s)
}

// AuditLog godoc
// @Summary      Log de auditoría (más reciente primero)
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.AuditEntry
// @Router       /api/audit [get]
func (h *SettingsHandler) AuditLog(c *fiber.Ctx) error {
	entries, err := h.audit.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(entries)
}
