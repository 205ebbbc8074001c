package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CrearProveedorRequest body para POST /api/proveedores.
// Los tres campos son obligatorios y de texto; deber y haber se inicializan
// en cero del lado del servidor.
type CrearProveedorRequest struct {
	Proveedor          string `json:"proveedor"`
	LocalidadProveedor string `json:"localidad_proveedor"`
	ProvinciaProveedor string `json:"provincia_proveedor"`
}

// ActualizarProveedorRequest body para PUT /api/proveedores/:id.
// Solo campos descriptivos; el haber lo administra el reconciliador de órdenes.
type ActualizarProveedorRequest struct {
	Proveedor          string `json:"proveedor"`
	LocalidadProveedor string `json:"localidad_proveedor"`
	ProvinciaProveedor string `json:"provincia_proveedor"`
}

// ProveedorResponse salida de un proveedor.
type ProveedorResponse struct {
	ID                 string          `json:"id"`
	Proveedor          string          `json:"proveedor"`
	LocalidadProveedor string          `json:"localidad_proveedor"`
	ProvinciaProveedor string          `json:"provincia_proveedor"`
	Deber              decimal.Decimal `json:"deber"`
	Haber              decimal.Decimal `json:"haber"`
	Localidad          string          `json:"localidad"`
	Sucursal           string          `json:"sucursal"`
	Usuario            string          `json:"usuario"`
	RoleID             string          `json:"role_id"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// CrearProveedorResponse respuesta de creación con el listado del scope.
type CrearProveedorResponse struct {
	NuevoProveedor      *ProveedorResponse   `json:"nuevo_proveedor"`
	TodosLosProveedores []*ProveedorResponse `json:"todos_los_proveedores"`
}

// CrearComprobanteRequest body para POST /api/proveedores/:id/comprobantes.
// El contenido es opaco: se guarda tal cual llega.
type CrearComprobanteRequest struct {
	Comprobante json.RawMessage `json:"comprobante"`
}

// ComprobanteResponse salida de un comprobante adjunto.
type ComprobanteResponse struct {
	ID      string          `json:"id"`
	Fecha   time.Time       `json:"fecha"`
	Payload json.RawMessage `json:"payload"`
}
