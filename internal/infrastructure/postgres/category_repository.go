package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo lectura de categorías sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// GetByID obtiene una categoría; nil si no existe.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	query := `SELECT id, parent_id, name, created_at FROM categories WHERE id = $1`
	var c entity.Category
	var parent *string
	err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &parent, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	if parent != nil {
		c.ParentID = *parent
	}
	return &c, nil
}

// List categorías hijas de parentID; parentID nil devuelve todas.
func (r *CategoryRepo) List(ctx context.Context, parentID *string) ([]*entity.Category, error) {
	query := `SELECT id, parent_id, name, created_at FROM categories`
	var args []any
	if parentID != nil {
		if *parentID == "" {
			query += ` WHERE parent_id IS NULL`
		} else {
			query += ` WHERE parent_id = $1`
			args = append(args, *parentID)
		}
	}
	query += ` ORDER BY name`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		var parent *string
		if err := rows.Scan(&c.ID, &parent, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		if parent != nil {
			c.ParentID = *parent
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
