package usecase

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// CategoryUseCase lectura del árbol de categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// List devuelve las categorías hijas de parentID (nil = todas).
func (uc *CategoryUseCase) List(ctx context.Context, parentID *string) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx, parentID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CategoryResponse{ID: c.ID, ParentID: c.ParentID, Name: c.Name})
	}
	return out, nil
}
