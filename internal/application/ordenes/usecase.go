package ordenes

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
)

// UseCase reconcilia órdenes y haber del proveedor de forma transaccional.
// Es el único escritor del haber: crear una orden lo incrementa en el total,
// eliminarla lo decrementa, siempre en la misma transacción y con la fila del
// proveedor bloqueada (SELECT FOR UPDATE) entre la lectura y la escritura.
type UseCase struct {
	txRunner      TxRunner
	ordenRepo     repository.OrdenRepository
	proveedorRepo repository.ProveedorRepository
}

// NewUseCase construye el caso de uso. ordenRepo y proveedorRepo van atados al
// pool y se usan solo para lecturas directas; las mutaciones pasan por txRunner.
func NewUseCase(txRunner TxRunner, ordenRepo repository.OrdenRepository, proveedorRepo repository.ProveedorRepository) *UseCase {
	return &UseCase{txRunner: txRunner, ordenRepo: ordenRepo, proveedorRepo: proveedorRepo}
}

// CrearOrden crea una orden y suma su total al haber del proveedor, como una
// unidad atómica. Dentro de la transacción:
//
//  1. bloquea la fila del proveedor y lee su haber actual (ErrNotFound si el
//     proveedor no existe: nada se insertó todavía),
//  2. inserta la orden (ErrDuplicate si el id colisiona),
//  3. escribe haber + total,
//  4. lee los snapshots de ordenes y proveedores del scope de la petición.
//
// El lock va ANTES del insert: insertar primero tomaría un lock de FK sobre la
// fila del proveedor y dos creaciones concurrentes se matarían entre sí al
// intentar subirlo a FOR UPDATE. Bloqueando primero, se serializan y listo.
// Cualquier falla revierte todo; nunca queda una orden sin su haber aplicado.
func (uc *UseCase) CrearOrden(ctx context.Context, rc dto.RequestContext, in dto.CrearOrdenRequest) (*dto.CrearOrdenResponse, error) {
	if strings.TrimSpace(in.Proveedor) == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Total.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	orden := &entity.Orden{
		ID:          uuid.New().String(),
		Proveedor:   in.Proveedor,
		Total:       in.Total,
		Comprobante: in.Comprobante,
		TipoOrden:   in.TipoOrden,
		Localidad:   rc.Localidad,
		Sucursal:    rc.Sucursal,
		Usuario:     rc.Username,
		RoleID:      rc.Role,
		CreatedAt:   time.Now(),
	}

	var resp dto.CrearOrdenResponse
	err := uc.txRunner.Run(ctx, func(
		ordenRepo repository.OrdenRepository,
		proveedorRepo repository.ProveedorRepository,
	) error {
		haber, err := proveedorRepo.GetHaberForUpdate(orden.Proveedor)
		if err != nil {
			return err
		}
		if err := ordenRepo.Create(orden); err != nil {
			return err
		}
		if err := proveedorRepo.UpdateHaber(orden.Proveedor, haber.Add(orden.Total)); err != nil {
			return err
		}
		ordenesScope, err := ordenRepo.ListByScope(rc.Localidad, rc.Sucursal)
		if err != nil {
			return err
		}
		proveedoresScope, err := proveedorRepo.ListByScope(rc.Localidad, rc.Sucursal)
		if err != nil {
			return err
		}
		resp = dto.CrearOrdenResponse{
			NuevaOrden:              toOrdenResponse(orden),
			TodasLasOrdenes:         toOrdenResponses(ordenesScope),
			ProveedoresActualizados: toProveedorResponses(proveedoresScope),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// EliminarOrden elimina una orden y resta su total del haber del proveedor,
// como una unidad atómica. Si la orden no existe devuelve ErrNotFound sin
// mutar nada; si el proveedor referenciado falta, la eliminación ya hecha
// dentro de la transacción también se revierte.
func (uc *UseCase) EliminarOrden(ctx context.Context, rc dto.RequestContext, id string) (*dto.EliminarOrdenResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidInput
	}

	var resp dto.EliminarOrdenResponse
	err := uc.txRunner.Run(ctx, func(
		ordenRepo repository.OrdenRepository,
		proveedorRepo repository.ProveedorRepository,
	) error {
		orden, err := ordenRepo.GetByID(id)
		if err != nil {
			return err
		}
		if orden == nil {
			return domain.ErrNotFound
		}
		// Capturar proveedor y total antes de borrar la fila.
		proveedor, total := orden.Proveedor, orden.Total

		if err := ordenRepo.Delete(id); err != nil {
			return err
		}
		haber, err := proveedorRepo.GetHaberForUpdate(proveedor)
		if err != nil {
			return err
		}
		if err := proveedorRepo.UpdateHaber(proveedor, haber.Sub(total)); err != nil {
			return err
		}
		ordenesScope, err := ordenRepo.ListByScope(rc.Localidad, rc.Sucursal)
		if err != nil {
			return err
		}
		proveedoresScope, err := proveedorRepo.ListByScope(rc.Localidad, rc.Sucursal)
		if err != nil {
			return err
		}
		resp = dto.EliminarOrdenResponse{
			Message:                 "Orden eliminada correctamente",
			TodasLasOrdenes:         toOrdenResponses(ordenesScope),
			ProveedoresActualizados: toProveedorResponses(proveedoresScope),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ActualizarOrden actualiza solo la metadata de una orden (comprobante y
// tipo_orden). No existe camino de update para total o proveedor: ese cambio
// se expresa como eliminar + crear, para que el haber quede reconciliado.
func (uc *UseCase) ActualizarOrden(ctx context.Context, id string, in dto.ActualizarOrdenRequest) (*dto.OrdenResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidInput
	}
	orden, err := uc.ordenRepo.UpdateMetadata(id, in.Comprobante, in.TipoOrden)
	if err != nil {
		return nil, err
	}
	return toOrdenResponse(orden), nil
}

// GetByID obtiene una orden.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.OrdenResponse, error) {
	orden, err := uc.ordenRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if orden == nil {
		return nil, domain.ErrNotFound
	}
	return toOrdenResponse(orden), nil
}

// Listar lista todas las órdenes.
func (uc *UseCase) Listar(ctx context.Context) ([]*dto.OrdenResponse, error) {
	list, err := uc.ordenRepo.List()
	if err != nil {
		return nil, err
	}
	return toOrdenResponses(list), nil
}

// ListarPorScope lista las órdenes visibles para la sucursal de la petición.
func (uc *UseCase) ListarPorScope(ctx context.Context, rc dto.RequestContext) ([]*dto.OrdenResponse, error) {
	list, err := uc.ordenRepo.ListByScope(rc.Localidad, rc.Sucursal)
	if err != nil {
		return nil, err
	}
	return toOrdenResponses(list), nil
}
