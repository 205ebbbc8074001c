package ordenes

import (
	"context"

	"github.com/tu-usuario/ordenes-pro/internal/domain/repository"
)

// TxRunner abre una transacción y ejecuta fn con repositorios atados a ella.
// Si fn devuelve error la transacción se revierte completa; si no, se commitea.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ordenRepo repository.OrdenRepository,
		proveedorRepo repository.ProveedorRepository,
	) error) error
}
