package entity

import (
	"encoding/json"
	"time"
)

// Comprobante es un sub-recurso del proveedor: un adjunto opaco (factura,
// remito, nota) con id propio y fecha de carga. Antes vivía serializado en una
// columna del proveedor; ahora es entidad hija para que dos cargas
// concurrentes no se pisen.
type Comprobante struct {
	ID          string
	ProveedorID string
	Fecha       time.Time
	Payload     json.RawMessage // contenido enviado por el caller, no se interpreta
}
