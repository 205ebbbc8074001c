package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de orden de compra.
const (
	TipoOrdenCompra     = "compra"
	TipoOrdenDevolucion = "devolucion"
	TipoOrdenAjuste     = "ajuste"
)

// Orden es una orden de compra emitida contra un proveedor.
// Total se aplica exactamente una vez al haber del proveedor: se suma al
// crearla y se resta al eliminarla, siempre dentro de la misma transacción.
type Orden struct {
	ID          string
	Proveedor   string // referencia por nombre a proveedores.proveedor
	Total       decimal.Decimal
	Comprobante string // referencia de comprobante/factura asociada
	TipoOrden   string
	Localidad   string
	Sucursal    string
	Usuario     string
	RoleID      string
	CreatedAt   time.Time
}
