package proveedores

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ordenes-pro/internal/application/dto"
	"github.com/tu-usuario/ordenes-pro/internal/domain"
	"github.com/tu-usuario/ordenes-pro/internal/domain/entity"
	"github.com/tu-usuario/ordenes-pro/internal/domain/repository"
	"github.com/tu-usuario/ordenes-pro/pkg/normalize"
)

// UseCase administra proveedores y sus comprobantes adjuntos. Nunca toca el
// haber: eso es exclusivo del reconciliador de órdenes.
type UseCase struct {
	proveedorRepo   repository.ProveedorRepository
	comprobanteRepo repository.ComprobanteRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(proveedorRepo repository.ProveedorRepository, comprobanteRepo repository.ComprobanteRepository) *UseCase {
	return &UseCase{proveedorRepo: proveedorRepo, comprobanteRepo: comprobanteRepo}
}

// Crear da de alta un proveedor con deber y haber en cero. Los tres campos
// descriptivos son obligatorios. Rechaza nombres que colisionen con uno
// existente aun difiriendo en mayúsculas o acentos; el índice único de la DB
// es la garantía final contra inserciones concurrentes.
func (uc *UseCase) Crear(ctx context.Context, rc dto.RequestContext, in dto.CrearProveedorRequest) (*dto.CrearProveedorResponse, error) {
	nombre := strings.TrimSpace(in.Proveedor)
	if nombre == "" || strings.TrimSpace(in.LocalidadProveedor) == "" || strings.TrimSpace(in.ProvinciaProveedor) == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkNombreLibre(nombre, ""); err != nil {
		return nil, err
	}

	now := time.Now()
	p := &entity.Proveedor{
		ID:                 uuid.New().String(),
		Proveedor:          nombre,
		LocalidadProveedor: in.LocalidadProveedor,
		ProvinciaProveedor: in.ProvinciaProveedor,
		Deber:              decimal.Zero,
		Haber:              decimal.Zero,
		Localidad:          rc.Localidad,
		Sucursal:           rc.Sucursal,
		Usuario:            rc.Username,
		RoleID:             rc.Role,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.proveedorRepo.Create(p); err != nil {
		return nil, err
	}
	scope, err := uc.proveedorRepo.ListByScope(rc.Localidad, rc.Sucursal)
	if err != nil {
		return nil, err
	}
	return &dto.CrearProveedorResponse{
		NuevoProveedor:      toProveedorResponse(p),
		TodosLosProveedores: toProveedorResponses(scope),
	}, nil
}

// GetByID obtiene un proveedor.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.ProveedorResponse, error) {
	p, err := uc.proveedorRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProveedorResponse(p), nil
}

// Listar lista todos los proveedores.
func (uc *UseCase) Listar(ctx context.Context) ([]*dto.ProveedorResponse, error) {
	list, err := uc.proveedorRepo.List()
	if err != nil {
		return nil, err
	}
	return toProveedorResponses(list), nil
}

// ListarPorScope lista los proveedores visibles para la sucursal de la petición.
func (uc *UseCase) ListarPorScope(ctx context.Context, rc dto.RequestContext) ([]*dto.ProveedorResponse, error) {
	list, err := uc.proveedorRepo.ListByScope(rc.Localidad, rc.Sucursal)
	if err != nil {
		return nil, err
	}
	return toProveedorResponses(list), nil
}

// Actualizar modifica los campos descriptivos. Un rename se propaga a las
// órdenes por la FK en cascada, así el vínculo orden-proveedor no se corta.
func (uc *UseCase) Actualizar(ctx context.Context, rc dto.RequestContext, id string, in dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error) {
	nombre := strings.TrimSpace(in.Proveedor)
	if nombre == "" || strings.TrimSpace(in.LocalidadProveedor) == "" || strings.TrimSpace(in.ProvinciaProveedor) == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.proveedorRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkNombreLibre(nombre, p.ID); err != nil {
		return nil, err
	}

	p.Proveedor = nombre
	p.LocalidadProveedor = in.LocalidadProveedor
	p.ProvinciaProveedor = in.ProvinciaProveedor
	p.Usuario = rc.Username
	p.RoleID = rc.Role
	if err := uc.proveedorRepo.Update(p); err != nil {
		return nil, err
	}
	updated, err := uc.proveedorRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toProveedorResponse(updated), nil
}

// Eliminar borra un proveedor. Si todavía tiene órdenes devuelve ErrConflict:
// primero hay que eliminar (y reconciliar) esas órdenes.
func (uc *UseCase) Eliminar(ctx context.Context, id string) error {
	return uc.proveedorRepo.Delete(id)
}

// AgregarComprobante adjunta un comprobante al proveedor: id generado,
// fecha del servidor y payload tal cual lo mandó el caller.
func (uc *UseCase) AgregarComprobante(ctx context.Context, proveedorID string, in dto.CrearComprobanteRequest) (*dto.ComprobanteResponse, error) {
	if len(in.Comprobante) == 0 {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.proveedorRepo.GetByID(proveedorID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	c := &entity.Comprobante{
		ID:          uuid.New().String(),
		ProveedorID: proveedorID,
		Fecha:       time.Now(),
		Payload:     in.Comprobante,
	}
	if err := uc.comprobanteRepo.Create(c); err != nil {
		return nil, err
	}
	return toComprobanteResponse(c), nil
}

// ListarComprobantes lista los comprobantes adjuntos de un proveedor.
func (uc *UseCase) ListarComprobantes(ctx context.Context, proveedorID string) ([]*dto.ComprobanteResponse, error) {
	p, err := uc.proveedorRepo.GetByID(proveedorID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.comprobanteRepo.ListByProveedor(proveedorID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ComprobanteResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toComprobanteResponse(c))
	}
	return out, nil
}

// EliminarComprobante borra un comprobante de un proveedor.
func (uc *UseCase) EliminarComprobante(ctx context.Context, proveedorID, id string) error {
	return uc.comprobanteRepo.Delete(proveedorID, id)
}

// checkNombreLibre rechaza nombres que normalizados chocan con otro proveedor.
// excludeID permite el no-op de renombrar un proveedor a su propio nombre.
func (uc *UseCase) checkNombreLibre(nombre, excludeID string) error {
	// Camino rápido: choque exacto contra el índice único, sin listar todo.
	exact, err := uc.proveedorRepo.GetByNombre(nombre)
	if err != nil {
		return err
	}
	if exact != nil && exact.ID != excludeID {
		return domain.ErrDuplicate
	}
	list, err := uc.proveedorRepo.List()
	if err != nil {
		return err
	}
	for _, existing := range list {
		if existing.ID == excludeID {
			continue
		}
		if normalize.Equal(existing.Proveedor, nombre) {
			return domain.ErrDuplicate
		}
	}
	return nil
}
