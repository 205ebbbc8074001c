package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ordenes-pro/internal/application/dto"
	"github.com/tu-usuario/ordenes-pro/internal/application/ordenes"
	"github.com/tu-usuario/ordenes-pro/internal/domain"
)

// OrdenHandler maneja las peticiones HTTP de órdenes de compra (protegido, admin).
type OrdenHandler struct {
	uc *ordenes.UseCase
}

// NewOrdenHandler construye el handler.
func NewOrdenHandler(uc *ordenes.UseCase) *OrdenHandler {
	return &OrdenHandler{uc: uc}
}

// List GET /api/ordenes
func (h *OrdenHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.Listar(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if len(list) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no se encontraron las ordenes"})
	}
	return c.JSON(list)
}

// GetByID GET /api/ordenes/:id
func (h *OrdenHandler) GetByID(c *fiber.Ctx) error {
	orden, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no se encontró ninguna orden con ese ID"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(orden)
}

// Create POST /api/ordenes
// La creación de la orden y la actualización del haber del proveedor son una
// sola transacción; la respuesta incluye los snapshots del scope del token.
func (h *OrdenHandler) Create(c *fiber.Ctx) error {
	var in dto.CrearOrdenRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.CrearOrden(c.Context(), GetRequestContext(c), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "proveedor y total (> 0) son requeridos"})
		}
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe una orden con ese id"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "proveedor no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Update PUT /api/ordenes/:id — solo metadata (comprobante, tipo_orden).
func (h *OrdenHandler) Update(c *fiber.Ctx) error {
	var in dto.ActualizarOrdenRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	orden, err := h.uc.ActualizarOrden(c.Context(), c.Params("id"), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el total y el proveedor de una orden no se pueden modificar"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no se encontró ninguna orden con ese ID"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(orden)
}

// Delete DELETE /api/ordenes/:id
// Elimina la orden y descuenta su total del haber del proveedor en la misma
// transacción.
func (h *OrdenHandler) Delete(c *fiber.Ctx) error {
	resp, err := h.uc.EliminarOrden(c.Context(), GetRequestContext(c), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no se encontró ninguna orden con ese ID"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}
