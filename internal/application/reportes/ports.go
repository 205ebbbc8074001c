package reportes

import (
	"context"

	"github.com/tu-usuario/ordenes-pro/internal/domain/entity"
)

// EstadoCuentaPDFGenerator renderiza el estado de cuenta de un proveedor.
type EstadoCuentaPDFGenerator interface {
	GenerateEstadoCuentaPDF(ctx context.Context, proveedor *entity.Proveedor, ordenes []*entity.Orden) ([]byte, error)
}
