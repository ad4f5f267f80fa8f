package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Radiologia-api/internal/application/dto"
	appexam "github.com/jhoicas/Radiologia-api/internal/application/exam"
	appstock "github.com/jhoicas/Radiologia-api/internal/application/stock"
	"github.com/jhoicas/Radiologia-api/internal/domain"
	"github.com/jhoicas/Radiologia-api/internal/domain/entity"
)

// ExamHandler maneja alta, consulta, edición de insumos y cancelación de
// exámenes (protegido).
type ExamHandler struct {
	exams    *appexam.UseCase
	reversal *appstock.ReversalUseCase
}

// NewExamHandler construye el handler.
func NewExamHandler(exams *appexam.UseCase, reversal *appstock.ReversalUseCase) *ExamHandler {
	return &ExamHandler{exams: exams, reversal: reversal}
}

// Save godoc
// @Summary      Registrar examen (consume insumos) o editar cabecera
// @Tags         exams
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveExamRequest  true  "datos del examen y sus insumos"
// @Success      201   {object}  map[string]int
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/exams [post]
func (h *ExamHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveExamRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	e := &entity.Exam{
		ID:            in.ID,
		PublicID:      in.PublicID,
		Modality:      in.Modality,
		Name:          in.Name,
		Doctor:        in.Doctor,
		PatientAge:    in.PatientAge,
		PerformedAt:   in.PerformedAt,
		UserEmail:     GetEmail(c),
		Note:          in.Note,
		UsedMaterials: usageItems(in.UsedMaterials),
	}
	id, err := h.exams.Save(c.Context(), e)
	if err != nil {
		return stockError(c, err)
	}
	status := fiber.StatusCreated
	if in.ID != 0 {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(fiber.Map{"id": id})
}

// List godoc
// @Summary      Listar exámenes con filtros opcionales
// @Tags         exams
// @Security     Bearer
// @Produce      json
// @Param        modalidad  query  string  false  "RX, CT, US, MR, MG, NM"
// @Param        medico     query  string  false  "nombre exacto del médico"
// @Param        q          query  string  false  "texto en examen o exam_id"
// @Param        desde      query  string  false  "fecha ISO YYYY-MM-DD"
// @Param        hasta      query  string  false  "fecha ISO YYYY-MM-DD"
// @Success      200  {array}  entity.Exam
// @Router       /api/exams [get]
func (h *ExamHandler) List(c *fiber.Ctx) error {
	f := appexam.Filter{
		Modality: c.Query("modalidad"),
		Doctor:   c.Query("medico"),
		Text:     c.Query("q"),
	}
	if v := c.Query("desde"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde inválido (YYYY-MM-DD)"})
		}
		f.From = t
	}
	if v := c.Query("hasta"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "hasta inválido (YYYY-MM-DD)"})
		}
		// inclusivo hasta el final del día
		f.To = t.Add(24*time.Hour - time.Nanosecond)
	}
	items, err := h.exams.ListFiltered(c.Context(), f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(items)
}

// GetByID godoc
// @Summary      Consultar examen por id
// @Tags         exams
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "id interno del examen"
// @Success      200  {object}  entity.Exam
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/exams/{id} [get]
func (h *ExamHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	e, err := h.exams.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "examen no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(e)
}

// UpdateUsage godoc
// @Summary      Reemplazar los insumos de un examen (estorno por delta)
// @Tags         exams
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "id interno del examen"
// @Param        body  body  dto.UpdateExamUsageRequest  true  "nueva lista de insumos"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/exams/{id}/usage [put]
func (h *ExamHandler) UpdateUsage(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.UpdateExamUsageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if err := h.reversal.UpdateUsage(c.Context(), id, usageItems(in.Items)); err != nil {
		return reversalError(c, err)
	}
	return c.JSON(fiber.Map{"message": "insumos actualizados"})
}

// Cancel godoc
// @Summary      Cancelar examen (estorna todo su consumo)
// @Tags         exams
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "id interno del examen"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/exams/{id}/cancel [post]
func (h *ExamHandler) Cancel(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	if err := h.reversal.Cancel(c.Context(), id); err != nil {
		return reversalError(c, err)
	}
	return c.JSON(fiber.Map{"message": "examen cancelado"})
}

// PreviewCost godoc
// @Summary      Previsualizar el costo de una lista de insumos
// @Tags         exams
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateExamUsageRequest  true  "líneas a costear"
// @Success      200   {object}  dto.CostPreviewResponse
// @Router       /api/exams/cost-preview [post]
func (h *ExamHandler) PreviewCost(c *fiber.Ctx) error {
	var in dto.UpdateExamUsageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	enriched, total, err := h.exams.PreviewCost(c.Context(), usageItems(in.Items))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := dto.CostPreviewResponse{Total: total, Items: make([]dto.CostPreviewItem, 0, len(enriched))}
	for _, it := range enriched {
		out.Items = append(out.Items, dto.CostPreviewItem{
			MaterialID: it.MaterialID,
			Quantity:   it.Quantity,
			LotID:      it.LotID,
			UnitPrice:  it.UnitPrice,
			Subtotal:   it.Subtotal,
		})
	}
	return c.JSON(out)
}

// usageItems convierte líneas del request a items de dominio.
func usageItems(in []dto.ExamUsageItemRequest) []entity.ExamUsageItem {
	out := make([]entity.ExamUsageItem, 0, len(in))
	for _, it := range in {
		out = append(out, entity.ExamUsageItem{
			MaterialID: it.MaterialID,
			Quantity:   it.Quantity,
			LotID:      it.LotID,
		})
	}
	return out
}

// reversalError traduce errores del motor de estornos a códigos HTTP.
func reversalError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "examen no encontrado"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
