package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// TransactionFilter filtros para listar movimientos.
type TransactionFilter struct {
	Type   string
	ItemID string
	Range  DateRange
}

// InventoryTransactionRepository define el puerto de persistencia para movimientos.
// No hay Update ni Delete: los movimientos son inmutables.
type InventoryTransactionRepository interface {
	Create(ctx context.Context, tx *entity.InventoryTransaction) error
	GetByID(ctx context.Context, userID, id string) (*entity.InventoryTransaction, error)
	GetByIdempotencyKey(ctx context.Context, userID, key string) (*entity.InventoryTransaction, error)
	List(ctx context.Context, userID string, filter TransactionFilter, page Page) ([]*entity.InventoryTransaction, int, error)
	// ListAll recorre todos los movimientos de un usuario (userID vacío = todos) para verificaciones.
	ListAll(ctx context.Context, userID string) ([]*entity.InventoryTransaction, error)
}
