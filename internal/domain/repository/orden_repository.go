package repository

import "github.com/tu-usuario/ordenes-pro/internal/domain/entity"

// OrdenRepository define el puerto de persistencia para Orden.
type OrdenRepository interface {
	Create(orden *entity.Orden) error
	GetByID(id string) (*entity.Orden, error)
	List() ([]*entity.Orden, error)
	ListByScope(localidad, sucursal string) ([]*entity.Orden, error)
	ListByProveedor(nombre string) ([]*entity.Orden, error)
	// UpdateMetadata actualiza comprobante y tipo_orden. El total y el
	// proveedor de una orden son inmutables: para cambiarlos hay que eliminar
	// la orden y crear otra, de modo que el haber se reconcilie.
	UpdateMetadata(id, comprobante, tipoOrden string) (*entity.Orden, error)
	Delete(id string) error
}
