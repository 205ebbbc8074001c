package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/ordenes-pro/internal/domain"
	"github.com/tu-usuario/ordenes-pro/internal/domain/entity"
	"github.com/tu-usuario/ordenes-pro/internal/domain/repository"
)

var _ repository.ComprobanteRepository = (*ComprobanteRepo)(nil)

// ComprobanteRepo implementación de ComprobanteRepository (usable con pool o tx).
type ComprobanteRepo struct {
	q Querier
}

// NewComprobanteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewComprobanteRepository(q Querier) *ComprobanteRepo {
	return &ComprobanteRepo{q: q}
}

// Create persiste un comprobante adjunto. Genera el ID si viene vacío.
// Devuelve domain.ErrNotFound si el proveedor no existe (FK).
func (r *ComprobanteRepo) Create(c *entity.Comprobante) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	query := `
		INSERT INTO comprobantes (id, proveedor_id, fecha, payload)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, c.ID, c.ProveedorID, c.Fecha, c.Payload)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert comprobante: %w", err)
	}
	return nil
}

// ListByProveedor lista los comprobantes de un proveedor, del más viejo al más nuevo.
func (r *ComprobanteRepo) ListByProveedor(proveedorID string) ([]*entity.Comprobante, error) {
	query := `
		SELECT id, proveedor_id, fecha, payload
		FROM comprobantes WHERE proveedor_id = $1 ORDER BY fecha`
	rows, err := r.q.Query(context.Background(), query, proveedorID)
	if err != nil {
		return nil, fmt.Errorf("list comprobantes: %w", err)
	}
	defer rows.Close()
	return scanComprobantes(rows)
}

// Delete elimina un comprobante de un proveedor.
func (r *ComprobanteRepo) Delete(proveedorID, id string) error {
	query := `DELETE FROM comprobantes WHERE proveedor_id = $1 AND id = $2`
	tag, err := r.q.Exec(context.Background(), query, proveedorID, id)
	if err != nil {
		return fmt.Errorf("delete comprobante: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanComprobantes(rows pgx.Rows) ([]*entity.Comprobante, error) {
	var list []*entity.Comprobante
	for rows.Next() {
		var c entity.Comprobante
		if err := rows.Scan(&c.ID, &c.ProveedorID, &c.Fecha, &c.Payload); err != nil {
			return nil, fmt.Errorf("scan comprobante: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
