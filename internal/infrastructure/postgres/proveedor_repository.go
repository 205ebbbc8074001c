package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ordenes-pro/internal/domain"
	"github.com/tu-usuario/ordenes-pro/internal/domain/entity"
	"github.com/tu-usuario/ordenes-pro/internal/domain/repository"
)

var _ repository.ProveedorRepository = (*ProveedorRepo)(nil)

const proveedorColumns = `id, proveedor, localidad_proveedor, provincia_proveedor, deber, haber,
	       localidad, sucursal, usuario, role_id, created_at, updated_at`

// ProveedorRepo implementación de ProveedorRepository sobre PostgreSQL (usable con pool o tx).
type ProveedorRepo struct {
	q Querier
}

// NewProveedorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProveedorRepository(q Querier) *ProveedorRepo {
	return &ProveedorRepo{q: q}
}

// Create persiste un nuevo proveedor. El nombre es único: devuelve
// domain.ErrDuplicate si ya existe un proveedor con ese nombre.
func (r *ProveedorRepo) Create(p *entity.Proveedor) error {
	query := `
		INSERT INTO proveedores (id, proveedor, localidad_proveedor, provincia_proveedor, deber, haber, localidad, sucursal, usuario, role_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Proveedor, p.LocalidadProveedor, p.ProvinciaProveedor, p.Deber, p.Haber,
		p.Localidad, p.Sucursal, p.Usuario, p.RoleID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert proveedor: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID. Devuelve (nil, nil) si no existe.
func (r *ProveedorRepo) GetByID(id string) (*entity.Proveedor, error) {
	query := `SELECT ` + proveedorColumns + ` FROM proveedores WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByNombre obtiene un proveedor por su nombre. Devuelve (nil, nil) si no existe.
func (r *ProveedorRepo) GetByNombre(nombre string) (*entity.Proveedor, error) {
	query := `SELECT ` + proveedorColumns + ` FROM proveedores WHERE proveedor = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, nombre))
}

// List lista todos los proveedores.
func (r *ProveedorRepo) List() ([]*entity.Proveedor, error) {
	query := `SELECT ` + proveedorColumns + ` FROM proveedores ORDER BY proveedor`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list proveedores: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// ListByScope lista los proveedores de una localidad y sucursal.
func (r *ProveedorRepo) ListByScope(localidad, sucursal string) ([]*entity.Proveedor, error) {
	query := `SELECT ` + proveedorColumns + ` FROM proveedores WHERE localidad = $1 AND sucursal = $2 ORDER BY proveedor`
	rows, err := r.q.Query(context.Background(), query, localidad, sucursal)
	if err != nil {
		return nil, fmt.Errorf("list proveedores by scope: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// Update actualiza los campos descriptivos del proveedor. No toca deber ni haber.
// El rename se propaga a ordenes.proveedor vía ON UPDATE CASCADE.
func (r *ProveedorRepo) Update(p *entity.Proveedor) error {
	query := `
		UPDATE proveedores
		SET proveedor = $2, localidad_proveedor = $3, provincia_proveedor = $4,
		    usuario = $5, role_id = $6, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		p.ID, p.Proveedor, p.LocalidadProveedor, p.ProvinciaProveedor, p.Usuario, p.RoleID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update proveedor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un proveedor. Devuelve domain.ErrConflict si todavía tiene
// órdenes asociadas (la FK de ordenes.proveedor lo impide).
func (r *ProveedorRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM proveedores WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete proveedor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetHaberForUpdate obtiene el haber del proveedor y bloquea la fila
// (SELECT FOR UPDATE). Dos reconciliaciones concurrentes sobre el mismo
// proveedor se serializan acá. Devuelve domain.ErrNotFound si no existe.
func (r *ProveedorRepo) GetHaberForUpdate(nombre string) (decimal.Decimal, error) {
	query := `SELECT haber FROM proveedores WHERE proveedor = $1 FOR UPDATE`
	var haber decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, nombre).Scan(&haber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("get haber for update: %w", err)
	}
	return haber, nil
}

// UpdateHaber escribe el nuevo haber del proveedor. Debe ejecutarse en la misma
// transacción que la mutación de la orden que lo originó.
func (r *ProveedorRepo) UpdateHaber(nombre string, haber decimal.Decimal) error {
	query := `UPDATE proveedores SET haber = $2, updated_at = now() WHERE proveedor = $1`
	tag, err := r.q.Exec(context.Background(), query, nombre, haber)
	if err != nil {
		return fmt.Errorf("update haber: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProveedorRepo) scanOne(row pgx.Row) (*entity.Proveedor, error) {
	var p entity.Proveedor
	err := row.Scan(
		&p.ID, &p.Proveedor, &p.LocalidadProveedor, &p.ProvinciaProveedor, &p.Deber, &p.Haber,
		&p.Localidad, &p.Sucursal, &p.Usuario, &p.RoleID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor: %w", err)
	}
	return &p, nil
}

func (r *ProveedorRepo) scanAll(rows pgx.Rows) ([]*entity.Proveedor, error) {
	var list []*entity.Proveedor
	for rows.Next() {
		var p entity.Proveedor
		if err := rows.Scan(
			&p.ID, &p.Proveedor, &p.LocalidadProveedor, &p.ProvinciaProveedor, &p.Deber, &p.Haber,
			&p.Localidad, &p.Sucursal, &p.Usuario, &p.RoleID, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan proveedor: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
