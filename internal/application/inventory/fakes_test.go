package inventory_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// memState estado en memoria; memRunner trabaja sobre una copia y la confirma solo si fn no falla.
type memState struct {
	accounts map[string]*entity.Account
	items    map[string]*entity.Item
	txs      []*entity.InventoryTransaction
	entries  []*entity.LedgerEntry
}

func newMemState() *memState {
	return &memState{
		accounts: map[string]*entity.Account{},
		items:    map[string]*entity.Item{},
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	for k, v := range s.accounts {
		a := *v
		c.accounts[k] = &a
	}
	for k, v := range s.items {
		i := *v
		c.items[k] = &i
	}
	for _, t := range s.txs {
		cp := *t
		c.txs = append(c.txs, &cp)
	}
	for _, e := range s.entries {
		cp := *e
		c.entries = append(c.entries, &cp)
	}
	return c
}

type memDB struct {
	mu    sync.Mutex
	state *memState

	failLedger error // si no es nil, CreateBatch falla con este error
}

func newMemDB() *memDB { return &memDB{state: newMemState()} }

func (db *memDB) addAccount(userID, id string) {
	db.state.accounts[id] = &entity.Account{ID: id, UserID: userID, Name: id, Type: entity.AccountTypeCash}
}

func (db *memDB) addItem(userID, id string) {
	db.state.items[id] = &entity.Item{
		ID: id, UserID: userID, Name: id, Status: entity.ItemStatusActive,
		PurchasePrice: decimal.NewFromInt(10),
	}
}

// ─── TxRunner ────────────────────────────────────────────────────────────────

type memRunner struct{ db *memDB }

func (r memRunner) Run(ctx context.Context, fn func(
	txRepo repository.InventoryTransactionRepository,
	ledgerRepo repository.LedgerEntryRepository,
	itemRepo repository.ItemRepository,
) error) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	staged := r.db.state.clone()
	v := memView{db: r.db, s: staged}
	if err := fn(memTxRepo{v}, memLedgerRepo{v}, memItemRepo{v}); err != nil {
		return err
	}
	r.db.state = staged
	return nil
}

// ─── Repositorios ────────────────────────────────────────────────────────────

type memView struct {
	db *memDB
	s  *memState // nil = estado confirmado actual
}

func (v memView) st() *memState {
	if v.s != nil {
		return v.s
	}
	return v.db.state
}

type memAccountRepo struct{ memView }

func (r memAccountRepo) Create(_ context.Context, a *entity.Account) error {
	r.st().accounts[a.ID] = a
	return nil
}

func (r memAccountRepo) GetByID(_ context.Context, userID, id string) (*entity.Account, error) {
	a, ok := r.st().accounts[id]
	if !ok || a.UserID != userID {
		return nil, nil
	}
	return a, nil
}

func (r memAccountRepo) GetByName(_ context.Context, userID, name string) (*entity.Account, error) {
	for _, a := range r.st().accounts {
		if a.UserID == userID && a.Name == name {
			return a, nil
		}
	}
	return nil, nil
}

func (r memAccountRepo) ListByUser(_ context.Context, userID, accountType string) ([]*entity.Account, error) {
	var out []*entity.Account
	for _, a := range r.st().accounts {
		if a.UserID == userID && (accountType == "" || a.Type == accountType) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r memAccountRepo) Update(_ context.Context, a *entity.Account) error {
	r.st().accounts[a.ID] = a
	return nil
}

func (r memAccountRepo) Delete(_ context.Context, _, id string) error {
	delete(r.st().accounts, id)
	return nil
}

type memItemRepo struct{ memView }

func (r memItemRepo) Create(_ context.Context, i *entity.Item) error {
	r.st().items[i.ID] = i
	return nil
}

func (r memItemRepo) GetByID(_ context.Context, userID, id string) (*entity.Item, error) {
	i, ok := r.st().items[id]
	if !ok || i.UserID != userID {
		return nil, nil
	}
	cp := *i
	return &cp, nil
}

func (r memItemRepo) GetForUpdate(ctx context.Context, userID, id string) (*entity.Item, error) {
	return r.GetByID(ctx, userID, id)
}

func (r memItemRepo) Update(_ context.Context, i *entity.Item) error {
	r.st().items[i.ID] = i
	return nil
}

func (r memItemRepo) UpdateStatus(_ context.Context, userID, id, status string, at time.Time) error {
	i, ok := r.st().items[id]
	if !ok || i.UserID != userID {
		return domain.ErrNotFound
	}
	i.Status = status
	i.UpdatedAt = at
	return nil
}

func (r memItemRepo) SoftDelete(_ context.Context, userID, id string, at time.Time) error {
	i, ok := r.st().items[id]
	if !ok || i.UserID != userID {
		return domain.ErrNotFound
	}
	i.DeletedAt = &at
	return nil
}

func (r memItemRepo) List(_ context.Context, userID string, _ repository.ItemFilter, _ repository.Page) ([]*entity.Item, int, error) {
	var out []*entity.Item
	for _, i := range r.st().items {
		if i.UserID == userID && !i.IsDeleted() {
			out = append(out, i)
		}
	}
	return out, len(out), nil
}

func (r memItemRepo) CountByStatus(_ context.Context, userID string) (map[string]int, error) {
	out := map[string]int{}
	for _, i := range r.st().items {
		if i.UserID == userID && !i.IsDeleted() {
			out[i.Status]++
		}
	}
	return out, nil
}

type memTxRepo struct{ memView }

func (r memTxRepo) Create(_ context.Context, tx *entity.InventoryTransaction) error {
	for _, t := range r.st().txs {
		if tx.IdempotencyKey != "" && t.UserID == tx.UserID && t.IdempotencyKey == tx.IdempotencyKey {
			return domain.ErrDuplicate
		}
	}
	cp := *tx
	r.st().txs = append(r.st().txs, &cp)
	return nil
}

func (r memTxRepo) GetByID(_ context.Context, userID, id string) (*entity.InventoryTransaction, error) {
	for _, t := range r.st().txs {
		if t.ID == id && t.UserID == userID {
			return t, nil
		}
	}
	return nil, nil
}

func (r memTxRepo) GetByIdempotencyKey(_ context.Context, userID, key string) (*entity.InventoryTransaction, error) {
	for _, t := range r.st().txs {
		if t.UserID == userID && t.IdempotencyKey == key {
			return t, nil
		}
	}
	return nil, nil
}

func (r memTxRepo) List(_ context.Context, userID string, f repository.TransactionFilter, _ repository.Page) ([]*entity.InventoryTransaction, int, error) {
	var out []*entity.InventoryTransaction
	for _, t := range r.st().txs {
		if t.UserID == userID && (f.Type == "" || t.Type == f.Type) {
			out = append(out, t)
		}
	}
	return out, len(out), nil
}

func (r memTxRepo) ListAll(_ context.Context, userID string) ([]*entity.InventoryTransaction, error) {
	var out []*entity.InventoryTransaction
	for _, t := range r.st().txs {
		if userID == "" || t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

type memLedgerRepo struct{ memView }

func (r memLedgerRepo) CreateBatch(_ context.Context, entries []entity.LedgerEntry) error {
	if r.db.failLedger != nil {
		return r.db.failLedger
	}
	for i := range entries {
		e := entries[i]
		r.st().entries = append(r.st().entries, &e)
	}
	return nil
}

func (r memLedgerRepo) List(_ context.Context, userID string, f repository.LedgerFilter, _ repository.Page) ([]*entity.LedgerEntry, int, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.st().entries {
		if e.UserID == userID && (f.AccountID == "" || e.AccountID == f.AccountID) {
			out = append(out, e)
		}
	}
	return out, len(out), nil
}

func (r memLedgerRepo) ListByTransaction(_ context.Context, userID, transactionID string) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.st().entries {
		if e.UserID == userID && e.TransactionID == transactionID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Direction == entity.DirectionDebit && out[j].Direction != entity.DirectionDebit })
	return out, nil
}

func (r memLedgerRepo) CountByAccount(_ context.Context, userID, accountID string) (int, error) {
	n := 0
	for _, e := range r.st().entries {
		if e.UserID == userID && e.AccountID == accountID {
			n++
		}
	}
	return n, nil
}

// ─── Idempotencia ────────────────────────────────────────────────────────────

type memIdempotency struct {
	mu   sync.Mutex
	keys map[string]string // key -> transaction id ("" = en curso)
}

func newMemIdempotency() *memIdempotency { return &memIdempotency{keys: map[string]string{}} }

func (m *memIdempotency) Claim(_ context.Context, key string) (bool, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.keys[key]; ok {
		return false, id, nil
	}
	m.keys[key] = ""
	return true, "", nil
}

func (m *memIdempotency) Complete(_ context.Context, key, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[key] = id
	return nil
}

func (m *memIdempotency) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keys, key)
	return nil
}

var errStoreDown = errors.New("almacén caído")
