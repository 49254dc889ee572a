package usecase_test

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

type fakeAccountRepo struct {
	accounts map[string]*entity.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[string]*entity.Account{}}
}

func (r *fakeAccountRepo) Create(_ context.Context, a *entity.Account) error {
	r.accounts[a.ID] = a
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, userID, id string) (*entity.Account, error) {
	if a, ok := r.accounts[id]; ok && a.UserID == userID {
		return a, nil
	}
	return nil, nil
}

func (r *fakeAccountRepo) GetByName(_ context.Context, userID, name string) (*entity.Account, error) {
	for _, a := range r.accounts {
		if a.UserID == userID && a.Name == name {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) ListByUser(_ context.Context, userID, accountType string) ([]*entity.Account, error) {
	var out []*entity.Account
	for _, a := range r.accounts {
		if a.UserID == userID && (accountType == "" || a.Type == accountType) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAccountRepo) Update(_ context.Context, a *entity.Account) error {
	r.accounts[a.ID] = a
	return nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, _, id string) error {
	delete(r.accounts, id)
	return nil
}

// fakeLedgerRepo guarda asientos; solo lo necesario para cuentas e ítems.
type fakeLedgerRepo struct {
	entries []entity.LedgerEntry
	fail    error
}

func (r *fakeLedgerRepo) CreateBatch(_ context.Context, entries []entity.LedgerEntry) error {
	if r.fail != nil {
		return r.fail
	}
	r.entries = append(r.entries, entries...)
	return nil
}

func (r *fakeLedgerRepo) List(context.Context, string, repository.LedgerFilter, repository.Page) ([]*entity.LedgerEntry, int, error) {
	return nil, 0, nil
}

func (r *fakeLedgerRepo) ListByTransaction(context.Context, string, string) ([]*entity.LedgerEntry, error) {
	return nil, nil
}

func (r *fakeLedgerRepo) CountByAccount(_ context.Context, userID, accountID string) (int, error) {
	n := 0
	for _, e := range r.entries {
		if e.UserID == userID && e.AccountID == accountID {
			n++
		}
	}
	return n, nil
}

type fakeItemRepo struct {
	items map[string]*entity.Item
}

func newFakeItemRepo() *fakeItemRepo { return &fakeItemRepo{items: map[string]*entity.Item{}} }

func (r *fakeItemRepo) Create(_ context.Context, i *entity.Item) error {
	cp := *i
	r.items[i.ID] = &cp
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, userID, id string) (*entity.Item, error) {
	if i, ok := r.items[id]; ok && i.UserID == userID {
		cp := *i
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeItemRepo) GetForUpdate(ctx context.Context, userID, id string) (*entity.Item, error) {
	return r.GetByID(ctx, userID, id)
}

func (r *fakeItemRepo) Update(_ context.Context, i *entity.Item) error {
	cp := *i
	r.items[i.ID] = &cp
	return nil
}

func (r *fakeItemRepo) UpdateStatus(_ context.Context, _, id, status string, at time.Time) error {
	r.items[id].Status = status
	r.items[id].UpdatedAt = at
	return nil
}

func (r *fakeItemRepo) SoftDelete(_ context.Context, _, id string, at time.Time) error {
	r.items[id].DeletedAt = &at
	return nil
}

func (r *fakeItemRepo) List(_ context.Context, userID string, f repository.ItemFilter, _ repository.Page) ([]*entity.Item, int, error) {
	var out []*entity.Item
	for _, i := range r.items {
		if i.UserID == userID && !i.IsDeleted() && (f.Status == "" || i.Status == f.Status) {
			out = append(out, i)
		}
	}
	return out, len(out), nil
}

func (r *fakeItemRepo) CountByStatus(_ context.Context, userID string) (map[string]int, error) {
	out := map[string]int{}
	for _, i := range r.items {
		if i.UserID == userID && !i.IsDeleted() {
			out[i.Status]++
		}
	}
	return out, nil
}

type fakeTxRepo struct {
	txs []*entity.InventoryTransaction
}

func (r *fakeTxRepo) Create(_ context.Context, tx *entity.InventoryTransaction) error {
	r.txs = append(r.txs, tx)
	return nil
}

func (r *fakeTxRepo) GetByID(context.Context, string, string) (*entity.InventoryTransaction, error) {
	return nil, nil
}

func (r *fakeTxRepo) GetByIdempotencyKey(context.Context, string, string) (*entity.InventoryTransaction, error) {
	return nil, nil
}

func (r *fakeTxRepo) List(context.Context, string, repository.TransactionFilter, repository.Page) ([]*entity.InventoryTransaction, int, error) {
	return nil, 0, nil
}

func (r *fakeTxRepo) ListAll(context.Context, string) ([]*entity.InventoryTransaction, error) {
	return r.txs, nil
}

type fakeCategoryRepo struct {
	categories map[string]*entity.Category
}

func (r fakeCategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	return r.categories[id], nil
}

func (r fakeCategoryRepo) List(context.Context, *string) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, nil
}

// snapshotRunner copia ítems, movimientos y asientos antes de fn y los restaura si falla.
type snapshotRunner struct {
	items  *fakeItemRepo
	txs    *fakeTxRepo
	ledger *fakeLedgerRepo
}

func (r snapshotRunner) Run(_ context.Context, fn func(
	txRepo repository.InventoryTransactionRepository,
	ledgerRepo repository.LedgerEntryRepository,
	itemRepo repository.ItemRepository,
) error) error {
	items := map[string]*entity.Item{}
	for k, v := range r.items.items {
		cp := *v
		items[k] = &cp
	}
	txs := append([]*entity.InventoryTransaction(nil), r.txs.txs...)
	entries := append([]entity.LedgerEntry(nil), r.ledger.entries...)
	if err := fn(r.txs, r.ledger, r.items); err != nil {
		r.items.items = items
		r.txs.txs = txs
		r.ledger.entries = entries
		return err
	}
	return nil
}
