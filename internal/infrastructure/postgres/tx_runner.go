package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/ordenes-pro/internal/application/ordenes"
	"github.com/tu-usuario/ordenes-pro/internal/domain/repository"
)

// Ensure TxRunner implements ordenes.TxRunner.
var _ ordenes.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Es el único camino por el que una orden y el haber de su proveedor cambian
// juntos: el callback recibe repos atados a la misma tx y cualquier error
// revierte todo.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// El Rollback diferido es inocuo después de un Commit exitoso.
func (r *TxRunner) Run(ctx context.Context, fn func(
	ordenRepo repository.OrdenRepository,
	proveedorRepo repository.ProveedorRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ordenRepo := NewOrdenRepository(tx)
	proveedorRepo := NewProveedorRepository(tx)

	if err := fn(ordenRepo, proveedorRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
