package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ordenes-pro/internal/application/dto"
	"github.com/tu-usuario/ordenes-pro/internal/application/reportes"
	"github.com/tu-usuario/ordenes-pro/internal/domain"
)

// ReporteHandler maneja la descarga de reportes (protegido, admin).
type ReporteHandler struct {
	estadoCuenta *reportes.EstadoCuentaUseCase
}

// NewReporteHandler construye el handler.
func NewReporteHandler(estadoCuenta *reportes.EstadoCuentaUseCase) *ReporteHandler {
	return &ReporteHandler{estadoCuenta: estadoCuenta}
}

// EstadoCuenta GET /api/proveedores/:id/estado-cuenta — PDF con las órdenes y
// el haber acumulado del proveedor.
func (h *ReporteHandler) EstadoCuenta(c *fiber.Ctx) error {
	pdf, filename, err := h.estadoCuenta.Download(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no se encontró ningún proveedor con ese ID"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
