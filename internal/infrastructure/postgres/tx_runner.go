package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL (read committed).
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Fallos de Begin/Commit se reportan como domain.ErrAtomicityFailure: nada quedó confirmado.
func (r *TxRunner) Run(ctx context.Context, fn func(
	txRepo repository.InventoryTransactionRepository,
	ledgerRepo repository.LedgerEntryRepository,
	itemRepo repository.ItemRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %w", domain.ErrAtomicityFailure, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	txRepo := NewInventoryTransactionRepository(tx)
	ledgerRepo := NewLedgerEntryRepository(tx)
	itemRepo := NewItemRepository(tx)

	if err := fn(txRepo, ledgerRepo, itemRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit transaction: %w", domain.ErrAtomicityFailure, err)
	}
	return nil
}
