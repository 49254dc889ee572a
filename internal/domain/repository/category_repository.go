package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// CategoryRepository lectura de categorías (árbol administrado fuera de este servicio).
type CategoryRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	List(ctx context.Context, parentID *string) ([]*entity.Category, error)
}
