package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/ledger"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// GetByID devuelve un movimiento del usuario con sus asientos.
func (uc *TransactionUseCase) GetByID(ctx context.Context, userID, id string) (*entity.InventoryTransaction, []*entity.LedgerEntry, error) {
	tx, err := uc.txRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get transaction: %w", err)
	}
	if tx == nil {
		return nil, nil, fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, id)
	}
	entries, err := uc.ledgerRepo.ListByTransaction(ctx, userID, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list entries: %w", err)
	}
	return tx, entries, nil
}

// List movimientos del usuario paginados.
func (uc *TransactionUseCase) List(ctx context.Context, userID string, filter repository.TransactionFilter, page repository.Page) ([]*entity.InventoryTransaction, int, error) {
	if filter.Type != "" && !entity.IsValidTransactionType(filter.Type) {
		return nil, 0, fmt.Errorf("%w: tipo %q", domain.ErrValidation, filter.Type)
	}
	return uc.txRepo.List(ctx, userID, filter, page)
}

// ListLedger asientos del usuario paginados.
func (uc *TransactionUseCase) ListLedger(ctx context.Context, userID string, filter repository.LedgerFilter, page repository.Page) ([]*entity.LedgerEntry, int, error) {
	return uc.ledgerRepo.List(ctx, userID, filter, page)
}

// Imbalance diferencia detectada por Verify en un movimiento.
type Imbalance struct {
	TransactionID string
	Expected      string
	Debit         string
	Credit        string
	Entries       int
}

// Verify recorre los movimientos (userID vacío = todos) y reporta los que no tienen exactamente
// un débito y un crédito iguales al total del movimiento.
func (uc *TransactionUseCase) Verify(ctx context.Context, userID string) (checked int, broken []Imbalance, err error) {
	txs, err := uc.txRepo.ListAll(ctx, userID)
	if err != nil {
		return 0, nil, fmt.Errorf("list transactions: %w", err)
	}
	for _, tx := range txs {
		ptrs, err := uc.ledgerRepo.ListByTransaction(ctx, tx.UserID, tx.ID)
		if err != nil {
			return checked, broken, fmt.Errorf("list entries %s: %w", tx.ID, err)
		}
		entries := make([]entity.LedgerEntry, 0, len(ptrs))
		for _, e := range ptrs {
			entries = append(entries, *e)
		}
		checked++
		if len(entries) == 2 && ledger.Balanced(entries, tx.TotalAmount) {
			continue
		}
		debit, credit := ledger.Totals(entries)
		broken = append(broken, Imbalance{
			TransactionID: tx.ID,
			Expected:      tx.TotalAmount.StringFixed(2),
			Debit:         debit.StringFixed(2),
			Credit:        credit.StringFixed(2),
			Entries:       len(entries),
		})
	}
	return checked, broken, nil
}
