package ordenes

import (
	"github.com/tu-usuario/ordenes-pro/internal/application/dto"
	"github.com/tu-usuario/ordenes-pro/internal/domain/entity"
)

func toOrdenResponse(o *entity.Orden) *dto.OrdenResponse {
	return &dto.OrdenResponse{
		ID:          o.ID,
		Proveedor:   o.Proveedor,
		Total:       o.Total,
		Comprobante: o.Comprobante,
		TipoOrden:   o.TipoOrden,
		Localidad:   o.Localidad,
		Sucursal:    o.Sucursal,
		Usuario:     o.Usuario,
		RoleID:      o.RoleID,
		CreatedAt:   o.CreatedAt,
	}
}

func toOrdenResponses(list []*entity.Orden) []*dto.OrdenResponse {
	out := make([]*dto.OrdenResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrdenResponse(o))
	}
	return out
}

func toProveedorResponses(list []*entity.Proveedor) []*dto.ProveedorResponse {
	out := make([]*dto.ProveedorResponse, 0, len(list))
	for _, p := range list {
		out = append(out, &dto.ProveedorResponse{
			ID:                 p.ID,
			Proveedor:          p.Proveedor,
			LocalidadProveedor: p.LocalidadProveedor,
			ProvinciaProveedor: p.ProvinciaProveedor,
			Deber:              p.Deber,
			Haber:              p.Haber,
			Localidad:          p.Localidad,
			Sucursal:           p.Sucursal,
			Usuario:            p.Usuario,
			RoleID:             p.RoleID,
			CreatedAt:          p.CreatedAt,
			UpdatedAt:          p.UpdatedAt,
		})
	}
	return out
}
