package reportes

import (
	"context"
	"fmt"
	"strings"

	"github.com/tu-usuario/ordenes-pro/internal/domain"
	"github.com/tu-usuario/ordenes-pro/internal/domain/repository"
)

// EstadoCuentaUseCase genera el estado de cuenta (PDF) de un proveedor:
// sus órdenes vigentes y el haber acumulado.
type EstadoCuentaUseCase struct {
	proveedorRepo repository.ProveedorRepository
	ordenRepo     repository.OrdenRepository
	generator     EstadoCuentaPDFGenerator
}

// NewEstadoCuentaUseCase construye el caso de uso.
func NewEstadoCuentaUseCase(
	proveedorRepo repository.ProveedorRepository,
	ordenRepo repository.OrdenRepository,
	generator EstadoCuentaPDFGenerator,
) *EstadoCuentaUseCase {
	return &EstadoCuentaUseCase{proveedorRepo: proveedorRepo, ordenRepo: ordenRepo, generator: generator}
}

// Download arma el estado de cuenta del proveedor y devuelve el PDF con su filename.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si el proveedor no existe.
func (uc *EstadoCuentaUseCase) Download(ctx context.Context, proveedorID string) (pdfBytes []byte, filename string, err error) {
	p, err := uc.proveedorRepo.GetByID(proveedorID)
	if err != nil {
		return nil, "", fmt.Errorf("estado de cuenta: obtener proveedor: %w", err)
	}
	if p == nil {
		return nil, "", domain.ErrNotFound
	}
	ordenes, err := uc.ordenRepo.ListByProveedor(p.Proveedor)
	if err != nil {
		return nil, "", fmt.Errorf("estado de cuenta: listar ordenes: %w", err)
	}
	pdf, err := uc.generator.GenerateEstadoCuentaPDF(ctx, p, ordenes)
	if err != nil {
		return nil, "", err
	}
	name := strings.ReplaceAll(strings.ToLower(p.Proveedor), " ", "-")
	return pdf, fmt.Sprintf("estado-cuenta-%s.pdf", name), nil
}
