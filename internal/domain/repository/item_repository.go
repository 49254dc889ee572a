package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// ItemFilter filtros para listar ítems vigentes (siempre excluye borrados lógicos).
type ItemFilter struct {
	Search     string // nombre o marca, sin distinguir mayúsculas
	CategoryID string
	Status     string
}

// ItemRepository define el puerto de persistencia para Item.
// GetByID devuelve también ítems borrados; el caso de uso decide qué hacer con ellos.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, userID, id string) (*entity.Item, error)
	// GetForUpdate bloquea la fila del ítem hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, userID, id string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	UpdateStatus(ctx context.Context, userID, id, status string, at time.Time) error
	SoftDelete(ctx context.Context, userID, id string, at time.Time) error
	List(ctx context.Context, userID string, filter ItemFilter, page Page) ([]*entity.Item, int, error)
	// CountByStatus cuenta ítems no borrados por estado.
	CountByStatus(ctx context.Context, userID string) (map[string]int, error)
}
