package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// LedgerFilter filtros para el diario.
type LedgerFilter struct {
	AccountID string
	Range     DateRange
}

// LedgerEntryRepository define el puerto de persistencia del diario (append-only).
type LedgerEntryRepository interface {
	// CreateBatch inserta los asientos de un movimiento; se usa siempre dentro de TxRunner.
	CreateBatch(ctx context.Context, entries []entity.LedgerEntry) error
	List(ctx context.Context, userID string, filter LedgerFilter, page Page) ([]*entity.LedgerEntry, int, error)
	ListByTransaction(ctx context.Context, userID, transactionID string) ([]*entity.LedgerEntry, error)
	CountByAccount(ctx context.Context, userID, accountID string) (int, error)
}
