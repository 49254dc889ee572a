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

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implementación del puerto AccountRepository sobre PostgreSQL.
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

const accountColumns = `id, user_id, name, type, created_at, updated_at`

// Create persiste una cuenta. El índice único (user_id, name) se traduce a ErrDuplicate.
func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	query := `INSERT INTO accounts (` + accountColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, a.ID, a.UserID, a.Name, a.Type, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: cuenta %q", domain.ErrDuplicate, a.Name)
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta del usuario; nil si no existe o es de otro dueño.
func (r *AccountRepo) GetByID(ctx context.Context, userID, id string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 AND user_id = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, id, userID))
}

// GetByName obtiene una cuenta del usuario por nombre exacto (ya normalizado).
func (r *AccountRepo) GetByName(ctx context.Context, userID, name string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 AND name = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, userID, name))
}

// ListByUser lista las cuentas del usuario ordenadas por nombre.
func (r *AccountRepo) ListByUser(ctx context.Context, userID, accountType string) ([]*entity.Account, error) {
	w := &whereBuilder{}
	w.add("user_id = $%d", userID)
	if accountType != "" {
		w.add("type = $%d", accountType)
	}
	query := `SELECT ` + accountColumns + ` FROM accounts` + w.sql() + ` ORDER BY name`
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Account
	for rows.Next() {
		var a entity.Account
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Update actualiza nombre y tipo.
func (r *AccountRepo) Update(ctx context.Context, a *entity.Account) error {
	query := `UPDATE accounts SET name = $1, type = $2, updated_at = $3 WHERE id = $4 AND user_id = $5`
	tag, err := r.q.Exec(ctx, query, a.Name, a.Type, a.UpdatedAt, a.ID, a.UserID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: cuenta %q", domain.ErrDuplicate, a.Name)
		}
		return fmt.Errorf("update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: cuenta %s", domain.ErrNotFound, a.ID)
	}
	return nil
}

// Delete elimina una cuenta. El FK RESTRICT de ledger_entries/inventory_transactions se traduce a ErrConflict.
func (r *AccountRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM accounts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: la cuenta tiene movimientos (%s)", domain.ErrConflict, constraintName(err))
		}
		return fmt.Errorf("delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: cuenta %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *AccountRepo) scanOne(row pgx.Row) (*entity.Account, error) {
	var a entity.Account
	err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &a, nil
}
