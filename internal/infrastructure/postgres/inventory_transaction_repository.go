package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.InventoryTransactionRepository = (*InventoryTransactionRepo)(nil)

// InventoryTransactionRepo implementación sobre PostgreSQL (usable con pool o tx).
// Solo inserta y lee: los movimientos son inmutables.
type InventoryTransactionRepo struct {
	q Querier
}

// NewInventoryTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryTransactionRepository(q Querier) *InventoryTransactionRepo {
	return &InventoryTransactionRepo{q: q}
}

const transactionColumns = `id, user_id, item_id, account_id, type, quantity, unit_price, total_amount,
	transaction_date, reason, notes, idempotency_key, created_at`

var transactionSortColumns = map[string]string{
	"transaction_date": "transaction_date",
	"created_at":       "created_at",
	"total_amount":     "total_amount",
}

// Create persiste un movimiento. La clave de idempotencia repetida se traduce a ErrDuplicate.
func (r *InventoryTransactionRepo) Create(ctx context.Context, tx *entity.InventoryTransaction) error {
	query := `INSERT INTO inventory_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		tx.ID, tx.UserID, tx.ItemID, tx.AccountID, tx.Type, tx.Quantity, tx.UnitPrice, tx.TotalAmount,
		tx.TransactionDate, tx.Reason, tx.Notes, nullString(tx.IdempotencyKey), tx.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: idempotency key %q", domain.ErrDuplicate, tx.IdempotencyKey)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, constraintName(err))
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento del usuario.
func (r *InventoryTransactionRepo) GetByID(ctx context.Context, userID, id string) (*entity.InventoryTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM inventory_transactions WHERE id = $1 AND user_id = $2`
	return r.getOne(ctx, query, id, userID)
}

// GetByIdempotencyKey obtiene el movimiento registrado con esa clave.
func (r *InventoryTransactionRepo) GetByIdempotencyKey(ctx context.Context, userID, key string) (*entity.InventoryTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM inventory_transactions WHERE user_id = $1 AND idempotency_key = $2`
	return r.getOne(ctx, query, userID, key)
}

// List movimientos del usuario con filtros, orden y paginación; devuelve el total sin paginar.
func (r *InventoryTransactionRepo) List(ctx context.Context, userID string, filter repository.TransactionFilter, page repository.Page) ([]*entity.InventoryTransaction, int, error) {
	w := &whereBuilder{}
	w.add("user_id = $%d", userID)
	if filter.Type != "" {
		w.add("type = $%d", filter.Type)
	}
	if filter.ItemID != "" {
		w.add("item_id = $%d", filter.ItemID)
	}
	w.addRange("transaction_date", filter.Range)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_transactions`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}
	query := `SELECT ` + transactionColumns + ` FROM inventory_transactions` + w.sql() +
		orderBy(page, transactionSortColumns, "transaction_date") + ", created_at DESC" + w.limitOffset(page)
	list, err := r.query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListAll todos los movimientos (userID vacío = todos los usuarios), en orden de creación.
func (r *InventoryTransactionRepo) ListAll(ctx context.Context, userID string) ([]*entity.InventoryTransaction, error) {
	w := &whereBuilder{}
	if userID != "" {
		w.add("user_id = $%d", userID)
	}
	query := `SELECT ` + transactionColumns + ` FROM inventory_transactions` + w.sql() + ` ORDER BY created_at`
	return r.query(ctx, query, w.args...)
}

func (r *InventoryTransactionRepo) getOne(ctx context.Context, query string, args ...any) (*entity.InventoryTransaction, error) {
	t, err := scanTransaction(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func (r *InventoryTransactionRepo) query(ctx context.Context, query string, args ...any) ([]*entity.InventoryTransaction, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryTransaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func scanTransaction(row pgx.Row) (*entity.InventoryTransaction, error) {
	var t entity.InventoryTransaction
	var key *string
	if err := row.Scan(
		&t.ID, &t.UserID, &t.ItemID, &t.AccountID, &t.Type, &t.Quantity, &t.UnitPrice, &t.TotalAmount,
		&t.TransactionDate, &t.Reason, &t.Notes, &key, &t.CreatedAt,
	); err != nil {
		return nil, err
	}
	if key != nil {
		t.IdempotencyKey = *key
	}
	return &t, nil
}
