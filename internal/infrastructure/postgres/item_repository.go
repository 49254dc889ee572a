package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemSelect = `
	SELECT i.id, i.user_id, i.name, i.category_id, COALESCE(c.name, ''), i.brand, i.size, i.color,
	       i.purchase_price, i.purchase_date, i.location, i.images, i.status,
	       i.created_at, i.updated_at, i.deleted_at
	FROM items i
	LEFT JOIN categories c ON c.id = i.category_id`

var itemSortColumns = map[string]string{
	"name":           "i.name",
	"purchase_price": "i.purchase_price",
	"purchase_date":  "i.purchase_date",
	"created_at":     "i.created_at",
}

// Create persiste un nuevo ítem.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (id, user_id, name, category_id, brand, size, color, purchase_price, purchase_date,
		                   location, images, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.UserID, item.Name, nullString(item.CategoryID), item.Brand, item.Size, item.Color,
		item.PurchasePrice, item.PurchaseDate, item.Location, images(item.Images), item.Status,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: categoría %s", domain.ErrValidation, item.CategoryID)
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem del usuario (incluye borrados lógicos).
func (r *ItemRepo) GetByID(ctx context.Context, userID, id string) (*entity.Item, error) {
	return r.getOne(ctx, itemSelect+` WHERE i.id = $1 AND i.user_id = $2`, userID, id)
}

// GetForUpdate obtiene el ítem y bloquea su fila hasta el fin de la transacción (SELECT FOR UPDATE).
func (r *ItemRepo) GetForUpdate(ctx context.Context, userID, id string) (*entity.Item, error) {
	return r.getOne(ctx, itemSelect+` WHERE i.id = $1 AND i.user_id = $2 FOR UPDATE OF i`, userID, id)
}

// Update actualiza campos descriptivos. No toca status ni deleted_at.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE items SET name = $1, category_id = $2, brand = $3, size = $4, color = $5,
		       purchase_price = $6, purchase_date = $7, location = $8, images = $9, updated_at = $10
		WHERE id = $11 AND user_id = $12 AND deleted_at IS NULL`
	tag, err := r.q.Exec(ctx, query,
		item.Name, nullString(item.CategoryID), item.Brand, item.Size, item.Color,
		item.PurchasePrice, item.PurchaseDate, item.Location, images(item.Images), item.UpdatedAt,
		item.ID, item.UserID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: categoría %s", domain.ErrValidation, item.CategoryID)
		}
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: ítem %s", domain.ErrNotFound, item.ID)
	}
	return nil
}

// UpdateStatus cambia el estado del ciclo de vida.
func (r *ItemRepo) UpdateStatus(ctx context.Context, userID, id, status string, at time.Time) error {
	query := `UPDATE items SET status = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`
	tag, err := r.q.Exec(ctx, query, status, at, id, userID)
	if err != nil {
		return fmt.Errorf("update item status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: ítem %s", domain.ErrNotFound, id)
	}
	return nil
}

// SoftDelete marca deleted_at; idempotente sobre ítems ya borrados.
func (r *ItemRepo) SoftDelete(ctx context.Context, userID, id string, at time.Time) error {
	query := `UPDATE items SET deleted_at = COALESCE(deleted_at, $1), updated_at = $1 WHERE id = $2 AND user_id = $3`
	tag, err := r.q.Exec(ctx, query, at, id, userID)
	if err != nil {
		return fmt.Errorf("soft delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: ítem %s", domain.ErrNotFound, id)
	}
	return nil
}

// List ítems vigentes del usuario con filtros, orden y paginación. Devuelve también el total sin paginar.
func (r *ItemRepo) List(ctx context.Context, userID string, filter repository.ItemFilter, page repository.Page) ([]*entity.Item, int, error) {
	w := &whereBuilder{}
	w.add("i.user_id = $%d", userID)
	w.conds = append(w.conds, "i.deleted_at IS NULL")
	if filter.Search != "" {
		w.add("(i.name ILIKE $%[1]d OR i.brand ILIKE $%[1]d)", "%"+filter.Search+"%")
	}
	if filter.CategoryID != "" {
		w.add("i.category_id = $%d", filter.CategoryID)
	}
	if filter.Status != "" {
		w.add("i.status = $%d", filter.Status)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM items i` + w.sql()
	if err := r.q.QueryRow(ctx, countQuery, w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	query := itemSelect + w.sql() + orderBy(page, itemSortColumns, "i.created_at") + w.limitOffset(page)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, item)
	}
	return list, total, rows.Err()
}

// CountByStatus cuenta ítems no borrados por estado.
func (r *ItemRepo) CountByStatus(ctx context.Context, userID string) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM items WHERE user_id = $1 AND deleted_at IS NULL GROUP BY status`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("count items by status: %w", err)
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan item count: %w", err)
		}
		out[status] = n
	}
	return out, rows.Err()
}

func (r *ItemRepo) getOne(ctx context.Context, query, userID, id string) (*entity.Item, error) {
	item, err := scanItem(r.q.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var i entity.Item
	var categoryID *string
	err := row.Scan(
		&i.ID, &i.UserID, &i.Name, &categoryID, &i.CategoryName, &i.Brand, &i.Size, &i.Color,
		&i.PurchasePrice, &i.PurchaseDate, &i.Location, &i.Images, &i.Status,
		&i.CreatedAt, &i.UpdatedAt, &i.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan item: %w", err)
	}
	if categoryID != nil {
		i.CategoryID = *categoryID
	}
	return &i, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func images(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
