package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Proveedor representa un proveedor con su cuenta corriente.
// Haber es el crédito acumulado: fuera de una transacción en curso siempre
// equivale a la suma de los totales de sus órdenes. Solo el reconciliador de
// órdenes puede escribirlo. Deber se conserva por compatibilidad y hoy ninguna
// mutación lo toca.
type Proveedor struct {
	ID                 string
	Proveedor          string // nombre comercial, único en el sistema
	LocalidadProveedor string
	ProvinciaProveedor string
	Deber              decimal.Decimal
	Haber              decimal.Decimal
	Localidad          string // scope de la sucursal que lo cargó
	Sucursal           string
	Usuario            string // usuario que lo creó
	RoleID             string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
