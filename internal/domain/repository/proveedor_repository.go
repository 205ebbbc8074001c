package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ordenes-pro/internal/domain/entity"
)

// ProveedorRepository define el puerto de persistencia para Proveedor.
// Las operaciones de haber se usan dentro de transacciones para garantizar
// consistencia con las órdenes.
type ProveedorRepository interface {
	Create(proveedor *entity.Proveedor) error
	GetByID(id string) (*entity.Proveedor, error)
	GetByNombre(nombre string) (*entity.Proveedor, error)
	List() ([]*entity.Proveedor, error)
	ListByScope(localidad, sucursal string) ([]*entity.Proveedor, error)
	// Update actualiza solo campos descriptivos (nombre, localidad, provincia);
	// nunca toca deber ni haber.
	Update(proveedor *entity.Proveedor) error
	Delete(id string) error
	// GetHaberForUpdate bloquea la fila del proveedor (SELECT FOR UPDATE) y
	// devuelve su haber actual. ErrNotFound si el proveedor no existe.
	GetHaberForUpdate(nombre string) (decimal.Decimal, error)
	UpdateHaber(nombre string, haber decimal.Decimal) error
}
