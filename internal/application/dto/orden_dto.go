package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CrearOrdenRequest body para POST /api/ordenes.
// Total acepta número o string JSON ("150.00" y 150.00 son equivalentes);
// decimal.Decimal parsea ambos sin pasar por float64.
type CrearOrdenRequest struct {
	Proveedor   string          `json:"proveedor"`
	Total       decimal.Decimal `json:"total"`
	Comprobante string          `json:"comprobante,omitempty"`
	TipoOrden   string          `json:"tipo_orden"`
}

// ActualizarOrdenRequest body para PUT /api/ordenes/:id. Solo metadata:
// cambiar total o proveedor exige eliminar la orden y crear otra.
type ActualizarOrdenRequest struct {
	Comprobante string `json:"comprobante"`
	TipoOrden   string `json:"tipo_orden"`
}

// OrdenResponse salida de una orden.
type OrdenResponse struct {
	ID          string          `json:"id"`
	Proveedor   string          `json:"proveedor"`
	Total       decimal.Decimal `json:"total"`
	Comprobante string          `json:"comprobante"`
	TipoOrden   string          `json:"tipo_orden"`
	Localidad   string          `json:"localidad"`
	Sucursal    string          `json:"sucursal"`
	Usuario     string          `json:"usuario"`
	RoleID      string          `json:"role_id"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CrearOrdenResponse respuesta de creación: la orden nueva más los snapshots
// de la sucursal, leídos dentro de la misma transacción.
type CrearOrdenResponse struct {
	NuevaOrden              *OrdenResponse       `json:"nueva_orden"`
	TodasLasOrdenes         []*OrdenResponse     `json:"todas_las_ordenes"`
	ProveedoresActualizados []*ProveedorResponse `json:"proveedores_actualizados"`
}

// EliminarOrdenResponse respuesta de eliminación con los snapshots del scope.
type EliminarOrdenResponse struct {
	Message                 string               `json:"message"`
	TodasLasOrdenes         []*OrdenResponse     `json:"todas_las_ordenes"`
	ProveedoresActualizados []*ProveedorResponse `json:"proveedores_actualizados"`
}
