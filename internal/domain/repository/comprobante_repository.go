package repository

import "github.com/tu-usuario/ordenes-pro/internal/domain/entity"

// ComprobanteRepository define el puerto de persistencia para los comprobantes
// adjuntos de un proveedor.
type ComprobanteRepository interface {
	Create(comprobante *entity.Comprobante) error
	ListByProveedor(proveedorID string) ([]*entity.Comprobante, error)
	Delete(proveedorID, id string) error
}
