package http_test

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// store estado en memoria compartido por los repos fake. Sin rollback: los tests HTTP
// solo verifican el mapeo de peticiones y respuestas.
type store struct {
	mu       sync.Mutex
	accounts map[string]*entity.Account
	items    map[string]*entity.Item
	txs      []*entity.InventoryTransaction
	entries  []*entity.LedgerEntry
}

func newStore() *store {
	return &store{accounts: map[string]*entity.Account{}, items: map[string]*entity.Item{}}
}

type runner struct{ s *store }

func (r runner) Run(_ context.Context, fn func(
	txRepo repository.InventoryTransactionRepository,
	ledgerRepo repository.LedgerEntryRepository,
	itemRepo repository.ItemRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return fn(txRepo{r.s}, ledgerRepo{r.s}, itemRepo{r.s})
}

type accountRepo struct{ s *store }

func (r accountRepo) Create(_ context.Context, a *entity.Account) error {
	r.s.accounts[a.ID] = a
	return nil
}

func (r accountRepo) GetByID(_ context.Context, userID, id string) (*entity.Account, error) {
	if a, ok := r.s.accounts[id]; ok && a.UserID == userID {
		return a, nil
	}
	return nil, nil
}

func (r accountRepo) GetByName(_ context.Context, userID, name string) (*entity.Account, error) {
	for _, a := range r.s.accounts {
		if a.UserID == userID && a.Name == name {
			return a, nil
		}
	}
	return nil, nil
}

func (r accountRepo) ListByUser(_ context.Context, userID, _ string) ([]*entity.Account, error) {
	var out []*entity.Account
	for _, a := range r.s.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r accountRepo) Update(_ context.Context, a *entity.Account) error {
	r.s.accounts[a.ID] = a
	return nil
}

func (r accountRepo) Delete(_ context.Context, _, id string) error {
	delete(r.s.accounts, id)
	return nil
}

type itemRepo struct{ s *store }

func (r itemRepo) Create(_ context.Context, i *entity.Item) error {
	r.s.items[i.ID] = i
	return nil
}

func (r itemRepo) GetByID(_ context.Context, userID, id string) (*entity.Item, error) {
	if i, ok := r.s.items[id]; ok && i.UserID == userID {
		cp := *i
		return &cp, nil
	}
	return nil, nil
}

func (r itemRepo) GetForUpdate(ctx context.Context, userID, id string) (*entity.Item, error) {
	return r.GetByID(ctx, userID, id)
}

func (r itemRepo) Update(_ context.Context, i *entity.Item) error {
	r.s.items[i.ID] = i
	return nil
}

func (r itemRepo) UpdateStatus(_ context.Context, userID, id, status string, at time.Time) error {
	i, ok := r.s.items[id]
	if !ok || i.UserID != userID {
		return domain.ErrNotFound
	}
	i.Status = status
	i.UpdatedAt = at
	return nil
}

func (r itemRepo) SoftDelete(_ context.Context, _, id string, at time.Time) error {
	if i, ok := r.s.items[id]; ok {
		i.DeletedAt = &at
	}
	return nil
}

func (r itemRepo) List(_ context.Context, userID string, _ repository.ItemFilter, _ repository.Page) ([]*entity.Item, int, error) {
	var out []*entity.Item
	for _, i := range r.s.items {
		if i.UserID == userID && !i.IsDeleted() {
			out = append(out, i)
		}
	}
	return out, len(out), nil
}

func (r itemRepo) CountByStatus(_ context.Context, userID string) (map[string]int, error) {
	out := map[string]int{}
	for _, i := range r.s.items {
		if i.UserID == userID && !i.IsDeleted() {
			out[i.Status]++
		}
	}
	return out, nil
}

type txRepo struct{ s *store }

func (r txRepo) Create(_ context.Context, tx *entity.InventoryTransaction) error {
	for _, t := range r.s.txs {
		if tx.IdempotencyKey != "" && t.UserID == tx.UserID && t.IdempotencyKey == tx.IdempotencyKey {
			return domain.ErrDuplicate
		}
	}
	cp := *tx
	r.s.txs = append(r.s.txs, &cp)
	return nil
}

func (r txRepo) GetByID(_ context.Context, userID, id string) (*entity.InventoryTransaction, error) {
	for _, t := range r.s.txs {
		if t.ID == id && t.UserID == userID {
			return t, nil
		}
	}
	return nil, nil
}

func (r txRepo) GetByIdempotencyKey(_ context.Context, userID, key string) (*entity.InventoryTransaction, error) {
	for _, t := range r.s.txs {
		if t.UserID == userID && t.IdempotencyKey == key {
			return t, nil
		}
	}
	return nil, nil
}

func (r txRepo) List(_ context.Context, userID string, f repository.TransactionFilter, _ repository.Page) ([]*entity.InventoryTransaction, int, error) {
	var out []*entity.InventoryTransaction
	for _, t := range r.s.txs {
		if t.UserID == userID && (f.Type == "" || t.Type == f.Type) {
			out = append(out, t)
		}
	}
	return out, len(out), nil
}

func (r txRepo) ListAll(_ context.Context, userID string) ([]*entity.InventoryTransaction, error) {
	return r.s.txs, nil
}

type ledgerRepo struct{ s *store }

func (r ledgerRepo) CreateBatch(_ context.Context, entries []entity.LedgerEntry) error {
	for i := range entries {
		e := entries[i]
		r.s.entries = append(r.s.entries, &e)
	}
	return nil
}

func (r ledgerRepo) List(_ context.Context, userID string, f repository.LedgerFilter, _ repository.Page) ([]*entity.LedgerEntry, int, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.s.entries {
		if e.UserID == userID && (f.AccountID == "" || e.AccountID == f.AccountID) {
			out = append(out, e)
		}
	}
	return out, len(out), nil
}

func (r ledgerRepo) ListByTransaction(_ context.Context, userID, transactionID string) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.s.entries {
		if e.UserID == userID && e.TransactionID == transactionID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r ledgerRepo) CountByAccount(_ context.Context, userID, accountID string) (int, error) {
	n := 0
	for _, e := range r.s.entries {
		if e.UserID == userID && e.AccountID == accountID {
			n++
		}
	}
	return n, nil
}
