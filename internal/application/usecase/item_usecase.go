package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD para ítems. Status solo cambia vía movimientos.
type ItemUseCase struct {
	repo         repository.ItemRepository
	accountRepo  repository.AccountRepository
	categoryRepo repository.CategoryRepository
	transactions *inventory.TransactionUseCase
	now          func() time.Time
}

// NewItemUseCase construye el caso de uso. transactions da de alta el ítem junto con su
// compra inicial opcional en una sola transacción.
func NewItemUseCase(
	repo repository.ItemRepository,
	accountRepo repository.AccountRepository,
	categoryRepo repository.CategoryRepository,
	transactions *inventory.TransactionUseCase,
) *ItemUseCase {
	return &ItemUseCase{
		repo:         repo,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
		transactions: transactions,
		now:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *ItemUseCase) WithClock(now func() time.Time) *ItemUseCase {
	uc.now = now
	return uc
}

// Create da de alta un ítem ACTIVE. Con in.Purchase registra además IN/PURCHASE por el precio de compra;
// si el movimiento falla tampoco queda el ítem.
func (uc *ItemUseCase) Create(ctx context.Context, userID string, in dto.CreateItemRequest) (*dto.CreateItemResponse, error) {
	now := uc.now()
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre requerido", domain.ErrValidation)
	}
	if err := inventory.CheckAmount("purchase_price", in.PurchasePrice); err != nil {
		return nil, err
	}
	purchaseDate, err := uc.parsePurchaseDate(in.PurchaseDate, now)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	item := &entity.Item{
		ID:            uuid.New().String(),
		UserID:        userID,
		Name:          name,
		CategoryID:    in.CategoryID,
		Brand:         in.Brand,
		Size:          in.Size,
		Color:         in.Color,
		PurchasePrice: in.PurchasePrice,
		PurchaseDate:  purchaseDate,
		Location:      in.Location,
		Images:        in.Images,
		Status:        entity.ItemStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if in.Purchase == nil {
		if err := uc.repo.Create(ctx, item); err != nil {
			return nil, err
		}
		return &dto.CreateItemResponse{Item: *toItemResponse(item)}, nil
	}

	record := inventory.RecordInput{
		UserID:          userID,
		ItemID:          item.ID,
		AccountID:       in.Purchase.AccountID,
		Type:            entity.TransactionTypeIN,
		Quantity:        1,
		UnitPrice:       item.PurchasePrice,
		TransactionDate: purchaseDate,
		Reason:          entity.ReasonPurchase,
		Notes:           in.Purchase.Notes,
	}
	if err := inventory.ValidateInput(&record, now); err != nil {
		return nil, err
	}
	account, err := uc.accountRepo.GetByID(ctx, userID, record.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: cuenta %s", domain.ErrNotFound, record.AccountID)
	}

	tx, err := uc.transactions.CreateWithPurchase(ctx, item, record)
	if err != nil {
		return nil, err
	}
	txResp := dto.TransactionFromEntity(tx)
	return &dto.CreateItemResponse{Item: *toItemResponse(item), Transaction: &txResp}, nil
}

// GetByID obtiene un ítem vigente del usuario.
func (uc *ItemUseCase) GetByID(ctx context.Context, userID, id string) (*dto.ItemResponse, error) {
	item, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Update modifica campos descriptivos, categoría, precio y fecha de compra.
func (uc *ItemUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: nombre requerido", domain.ErrValidation)
		}
		item.Name = name
	}
	if in.CategoryID != nil {
		if err := uc.ensureCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		item.CategoryID = *in.CategoryID
	}
	if in.Brand != nil {
		item.Brand = *in.Brand
	}
	if in.Size != nil {
		item.Size = *in.Size
	}
	if in.Color != nil {
		item.Color = *in.Color
	}
	if in.PurchasePrice != nil {
		if err := inventory.CheckAmount("purchase_price", *in.PurchasePrice); err != nil {
			return nil, err
		}
		item.PurchasePrice = *in.PurchasePrice
	}
	if in.PurchaseDate != nil {
		d, err := uc.parsePurchaseDate(*in.PurchaseDate, now)
		if err != nil {
			return nil, err
		}
		item.PurchaseDate = d
	}
	if in.Location != nil {
		item.Location = *in.Location
	}
	if in.Images != nil {
		item.Images = in.Images
	}
	item.UpdatedAt = now
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Delete borrado lógico: el ítem deja de listarse y de valorizarse; su historial se conserva.
func (uc *ItemUseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.get(ctx, userID, id); err != nil {
		return err
	}
	return uc.repo.SoftDelete(ctx, userID, id, uc.now())
}

// List lista ítems vigentes con filtros y paginación.
func (uc *ItemUseCase) List(ctx context.Context, userID string, in dto.ItemListRequest) (*dto.ItemListResponse, error) {
	in.DefaultPage()
	if in.Status != "" && in.Status != entity.ItemStatusActive && in.Status != entity.ItemStatusRemoved {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrValidation, in.Status)
	}
	filter := repository.ItemFilter{
		Search:     strings.TrimSpace(in.Search),
		CategoryID: in.CategoryID,
		Status:     in.Status,
	}
	page := repository.Page{Limit: in.Limit, Offset: in.Offset, SortBy: in.SortBy, Direction: in.Direction}
	list, total, err := uc.repo.List(ctx, userID, filter, page)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Stats conteo de ítems vigentes por estado.
func (uc *ItemUseCase) Stats(ctx context.Context, userID string) (*dto.ItemStatsResponse, error) {
	counts, err := uc.repo.CountByStatus(ctx, userID)
	if err != nil {
		return nil, err
	}
	active := counts[entity.ItemStatusActive]
	removed := counts[entity.ItemStatusRemoved]
	return &dto.ItemStatsResponse{Total: active + removed, Active: active, Removed: removed}, nil
}

func (uc *ItemUseCase) get(ctx context.Context, userID, id string) (*entity.Item, error) {
	item, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.IsDeleted() {
		return nil, fmt.Errorf("%w: ítem %s", domain.ErrNotFound, id)
	}
	return item, nil
}

func (uc *ItemUseCase) ensureCategory(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return nil
	}
	c, err := uc.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("%w: categoría %s", domain.ErrValidation, categoryID)
	}
	return nil
}

func (uc *ItemUseCase) parsePurchaseDate(raw string, now time.Time) (time.Time, error) {
	if raw == "" {
		return inventory.DateOnly(now), nil
	}
	d, err := dto.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: purchase_date %q", domain.ErrValidation, raw)
	}
	if d.After(inventory.DateOnly(now)) {
		return time.Time{}, fmt.Errorf("%w: purchase_date no puede ser futura", domain.ErrValidation)
	}
	return d, nil
}

func toItemResponse(i *entity.Item) *dto.ItemResponse {
	if i == nil {
		return nil
	}
	images := i.Images
	if images == nil {
		images = []string{}
	}
	return &dto.ItemResponse{
		ID:            i.ID,
		Name:          i.Name,
		CategoryID:    i.CategoryID,
		CategoryName:  i.CategoryName,
		Brand:         i.Brand,
		Size:          i.Size,
		Color:         i.Color,
		PurchasePrice: i.PurchasePrice,
		PurchaseDate:  dto.FormatDate(i.PurchaseDate),
		Location:      i.Location,
		Images:        images,
		Status:        i.Status,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}
