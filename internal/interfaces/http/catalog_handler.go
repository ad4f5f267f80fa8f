package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Radiologia-api/internal/application/dto"
	"github.com/jhoicas/Radiologia-api/internal/application/usecase"
	"github.com/jhoicas/Radiologia-api/internal/domain"
)

// CatalogHandler maneja médicos y tipos de examen (protegido).
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListDoctors godoc
// @Summary      Listar médicos solicitantes
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Doctor
// @Router       /api/doctors [get]
func (h *CatalogHandler) ListDoctors(c *fiber.Ctx) error {
	items, err := h.uc.ListDoctors(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(items)
}

// CreateDoctor godoc
// @Summary      Registrar médico (idempotente por nombre)
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDoctorRequest  true  "nombre"
// @Success      201   {object}  map[string]int
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/doctors [post]
func (h *CatalogHandler) CreateDoctor(c *fiber.Ctx) error {
	var in dto.CreateDoctorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	id, err := h.uc.CreateDoctor(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// DeleteDoctor godoc
// @Summary      Eliminar médico
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "id del médico"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/doctors/{id} [delete]
func (h *CatalogHandler) DeleteDoctor(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	if err := h.uc.DeleteDoctor(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "médico no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "médico eliminado"})
}

// ListExamTypes godoc
// @Summary      Listar catálogo de exámenes
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        modalidad  query  string  false  "filtrar por modalidad"
// @Success      200  {array}  entity.ExamType
// @Router       /api/exam-types [get]
func (h *CatalogHandler) ListExamTypes(c *fiber.Ctx) error {
	items, err := h.uc.ListExamTypes(c.Context(), c.Query("modalidad"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(items)
}

// CreateExamType godoc
// @Summary      Crear entrada del catálogo de exámenes
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExamTypeRequest  true  "modalidad, nombre, codigo"
// @Success      201   {object}  map[string]int
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/exam-types [post]
func (h *CatalogHandler) CreateExamType(c *fiber.Ctx) error {
	var in dto.CreateExamTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	id, err := h.uc.CreateExamType(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// UpdateExamType godoc
// @Summary      Actualizar entrada del catálogo (parcial)
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "id de la entrada"
// @Param        body  body  dto.UpdateExamTypeRequest  true  "campos a cambiar"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/exam-types/{id} [put]
func (h *CatalogHandler) UpdateExamType(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.UpdateExamTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if err := h.uc.UpdateExamType(c.Context(), id, in); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "entrada no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "entrada actualizada"})
}

// DeleteExamType godoc
// @Summary      Eliminar entrada del catálogo
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "id de la entrada"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/exam-types/{id} [delete]
func (h *CatalogHandler) DeleteExamType(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	if err := h.uc.DeleteExamType(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "entrada no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "entrada eliminada"})
}
