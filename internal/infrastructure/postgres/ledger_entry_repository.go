package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.LedgerEntryRepository = (*LedgerEntryRepo)(nil)

// LedgerEntryRepo diario contable append-only sobre PostgreSQL.
type LedgerEntryRepo struct {
	q Querier
}

// NewLedgerEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerEntryRepository(q Querier) *LedgerEntryRepo {
	return &LedgerEntryRepo{q: q}
}

const ledgerColumns = `id, user_id, transaction_id, transaction_date, amount, direction, account_id, item_id,
	category_code, note, created_at`

var ledgerSortColumns = map[string]string{
	"transaction_date": "transaction_date",
	"amount":           "amount",
	"created_at":       "created_at",
}

// CreateBatch inserta los asientos con un único round-trip (pgx.Batch).
func (r *LedgerEntryRepo) CreateBatch(ctx context.Context, entries []entity.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	query := `INSERT INTO ledger_entries (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(query,
			e.ID, e.UserID, e.TransactionID, e.TransactionDate, e.Amount, e.Direction, e.AccountID,
			nullString(e.ItemID), e.CategoryCode, e.Note, e.CreatedAt,
		)
	}
	results := r.sendBatch(ctx, batch)
	if results == nil {
		for _, e := range entries {
			if _, err := r.q.Exec(ctx, query,
				e.ID, e.UserID, e.TransactionID, e.TransactionDate, e.Amount, e.Direction, e.AccountID,
				nullString(e.ItemID), e.CategoryCode, e.Note, e.CreatedAt,
			); err != nil {
				return fmt.Errorf("insert ledger entry: %w", err)
			}
		}
		return nil
	}
	defer results.Close()
	for range entries {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert ledger entry: %w", err)
		}
	}
	return results.Close()
}

// List asientos del usuario con filtros (cuenta, rango de fechas) y paginación.
func (r *LedgerEntryRepo) List(ctx context.Context, userID string, filter repository.LedgerFilter, page repository.Page) ([]*entity.LedgerEntry, int, error) {
	w := &whereBuilder{}
	w.add("user_id = $%d", userID)
	if filter.AccountID != "" {
		w.add("account_id = $%d", filter.AccountID)
	}
	w.addRange("transaction_date", filter.Range)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM ledger_entries`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count ledger entries: %w", err)
	}
	// direction DESC deja DEBIT antes que CREDIT dentro de un mismo movimiento
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries` + w.sql() +
		orderBy(page, ledgerSortColumns, "transaction_date") + ", transaction_id, direction DESC" + w.limitOffset(page)
	list, err := r.query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListByTransaction asientos de un movimiento, DEBIT primero.
func (r *LedgerEntryRepo) ListByTransaction(ctx context.Context, userID, transactionID string) ([]*entity.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries
		WHERE user_id = $1 AND transaction_id = $2 ORDER BY direction DESC`
	return r.query(ctx, query, userID, transactionID)
}

// CountByAccount número de asientos que referencian la cuenta.
func (r *LedgerEntryRepo) CountByAccount(ctx context.Context, userID, accountID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM ledger_entries WHERE user_id = $1 AND account_id = $2`,
		userID, accountID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count ledger entries by account: %w", err)
	}
	return n, nil
}

func (r *LedgerEntryRepo) query(ctx context.Context, query string, args ...any) ([]*entity.LedgerEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		var itemID *string
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.TransactionID, &e.TransactionDate, &e.Amount, &e.Direction, &e.AccountID,
			&itemID, &e.CategoryCode, &e.Note, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		if itemID != nil {
			e.ItemID = *itemID
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// batchSender lo cumplen pgx.Tx y *pgxpool.Pool.
type batchSender interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

func (r *LedgerEntryRepo) sendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	if s, ok := r.q.(batchSender); ok {
		return s.SendBatch(ctx, b)
	}
	return nil
}
