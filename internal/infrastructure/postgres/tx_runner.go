package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/pos-ventas-api/internal/application/sales"
	"github.com/jhoicas/pos-ventas-api/internal/domain/repository"
)

var _ sales.SalesTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool          *pgxpool.Pool
	commitTimeout time.Duration
	lockTimeout   time.Duration
}

// NewTxRunner construye el runner. commitTimeout acota la transacción completa y lockTimeout la
// espera por cada bloqueo de fila; cero desactiva el límite.
func NewTxRunner(pool *pgxpool.Pool, commitTimeout, lockTimeout time.Duration) *TxRunner {
	return &TxRunner{pool: pool, commitTimeout: commitTimeout, lockTimeout: lockTimeout}
}

// RunSale inicia una transacción READ COMMITTED, ejecuta fn con repos atados a la tx y hace Commit o
// Rollback. Timeouts, deadlocks y fallos de serialización salen como domain.ErrStorageConflict.
func (r *TxRunner) RunSale(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if r.commitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.commitTimeout)
		defer cancel()
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return classifyTxError(fmt.Errorf("begin transaction: %w", err))
	}
	// Rollback con contexto propio: ctx puede haber vencido.
	defer func() { _ = tx.Rollback(context.Background()) }()

	if r.lockTimeout > 0 {
		if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())); err != nil {
			return classifyTxError(fmt.Errorf("set lock_timeout: %w", err))
		}
	}

	if err := fn(&unitOfWork{tx: tx}); err != nil {
		return classifyTxError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return classifyTxError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

type unitOfWork struct {
	tx pgx.Tx
}

var _ repository.UnitOfWork = (*unitOfWork)(nil)

func (u *unitOfWork) Products() repository.ProductRepository { return NewProductRepository(u.tx) }

func (u *unitOfWork) Sales() repository.SaleRepository { return NewSaleRepository(u.tx) }

func (u *unitOfWork) Movements() repository.InventoryMovementRepository {
	return NewInventoryMovementRepository(u.tx)
}
