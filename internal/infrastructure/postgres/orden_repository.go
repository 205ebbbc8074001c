package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/ordenes-pro/internal/domain"
	"github.com/tu-usuario/ordenes-pro/internal/domain/entity"
	"github.com/tu-usuario/ordenes-pro/internal/domain/repository"
)

var _ repository.OrdenRepository = (*OrdenRepo)(nil)

const ordenColumns = `id, proveedor, total, comprobante, tipo_orden, localidad, sucursal, usuario, role_id, created_at`

// OrdenRepo implementación de OrdenRepository sobre PostgreSQL (usable con pool o tx).
type OrdenRepo struct {
	q Querier
}

// NewOrdenRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrdenRepository(q Querier) *OrdenRepo {
	return &OrdenRepo{q: q}
}

// Create persiste una nueva orden. Genera el ID si viene vacío.
// Devuelve domain.ErrDuplicate si el ID colisiona y domain.ErrNotFound si el
// proveedor referenciado no existe (FK).
func (r *OrdenRepo) Create(o *entity.Orden) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	query := `
		INSERT INTO ordenes (id, proveedor, total, comprobante, tipo_orden, localidad, sucursal, usuario, role_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.Proveedor, o.Total, o.Comprobante, o.TipoOrden,
		o.Localidad, o.Sucursal, o.Usuario, o.RoleID, o.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert orden: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID. Devuelve (nil, nil) si no existe.
func (r *OrdenRepo) GetByID(id string) (*entity.Orden, error) {
	query := `SELECT ` + ordenColumns + ` FROM ordenes WHERE id = $1`
	var o entity.Orden
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.Proveedor, &o.Total, &o.Comprobante, &o.TipoOrden,
		&o.Localidad, &o.Sucursal, &o.Usuario, &o.RoleID, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orden: %w", err)
	}
	return &o, nil
}

// List lista todas las órdenes.
func (r *OrdenRepo) List() ([]*entity.Orden, error) {
	query := `SELECT ` + ordenColumns + ` FROM ordenes ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list ordenes: %w", err)
	}
	defer rows.Close()
	return scanOrdenes(rows)
}

// ListByScope lista las órdenes de una localidad y sucursal.
func (r *OrdenRepo) ListByScope(localidad, sucursal string) ([]*entity.Orden, error) {
	query := `SELECT ` + ordenColumns + ` FROM ordenes WHERE localidad = $1 AND sucursal = $2 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, localidad, sucursal)
	if err != nil {
		return nil, fmt.Errorf("list ordenes by scope: %w", err)
	}
	defer rows.Close()
	return scanOrdenes(rows)
}

// ListByProveedor lista las órdenes de un proveedor (por nombre).
func (r *OrdenRepo) ListByProveedor(nombre string) ([]*entity.Orden, error) {
	query := `SELECT ` + ordenColumns + ` FROM ordenes WHERE proveedor = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, nombre)
	if err != nil {
		return nil, fmt.Errorf("list ordenes by proveedor: %w", err)
	}
	defer rows.Close()
	return scanOrdenes(rows)
}

// UpdateMetadata actualiza comprobante y tipo_orden de una orden.
// Total y proveedor son inmutables por esta vía.
func (r *OrdenRepo) UpdateMetadata(id, comprobante, tipoOrden string) (*entity.Orden, error) {
	query := `
		UPDATE ordenes SET comprobante = $2, tipo_orden = $3
		WHERE id = $1
		RETURNING ` + ordenColumns
	var o entity.Orden
	err := r.q.QueryRow(context.Background(), query, id, comprobante, tipoOrden).Scan(
		&o.ID, &o.Proveedor, &o.Total, &o.Comprobante, &o.TipoOrden,
		&o.Localidad, &o.Sucursal, &o.Usuario, &o.RoleID, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update orden: %w", err)
	}
	return &o, nil
}

// Delete elimina una orden. Devuelve domain.ErrNotFound si no existe.
func (r *OrdenRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM ordenes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete orden: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanOrdenes(rows pgx.Rows) ([]*entity.Orden, error) {
	var list []*entity.Orden
	for rows.Next() {
		var o entity.Orden
		if err := rows.Scan(
			&o.ID, &o.Proveedor, &o.Total, &o.Comprobante, &o.TipoOrden,
			&o.Localidad, &o.Sucursal, &o.Usuario, &o.RoleID, &o.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan orden: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
