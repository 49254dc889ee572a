package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// AccountRepository define el puerto de persistencia para Account.
// Todas las lecturas se filtran por dueño: una cuenta ajena se trata como inexistente (nil, nil).
type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	GetByID(ctx context.Context, userID, id string) (*entity.Account, error)
	GetByName(ctx context.Context, userID, name string) (*entity.Account, error)
	ListByUser(ctx context.Context, userID, accountType string) ([]*entity.Account, error)
	Update(ctx context.Context, account *entity.Account) error
	Delete(ctx context.Context, userID, id string) error
}
