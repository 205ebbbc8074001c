package proveedores

import (
	"github.com/tu-usuario/ordenes-pro/internal/application/dto"
	"github.com/tu-usuario/ordenes-pro/internal/domain/entity"
)

func toProveedorResponse(p *entity.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{
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
	}
}

func toProveedorResponses(list []*entity.Proveedor) []*dto.ProveedorResponse {
	out := make([]*dto.ProveedorResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProveedorResponse(p))
	}
	return out
}

func toComprobanteResponse(c *entity.Comprobante) *dto.ComprobanteResponse {
	return &dto.ComprobanteResponse{
		ID:      c.ID,
		Fecha:   c.Fecha,
		Payload: c.Payload,
	}
}
