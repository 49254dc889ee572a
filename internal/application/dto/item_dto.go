package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InitialPurchase compra inicial opcional al dar de alta un ítem (IN/PURCHASE, cantidad 1).
type InitialPurchase struct {
	AccountID string `json:"account_id" validate:"required,uuid"`
	Notes     string `json:"notes,omitempty"`
}

// CreateItemRequest body para POST /api/v1/items.
type CreateItemRequest struct {
	Name          string           `json:"name" validate:"required,max=200"`
	CategoryID    string           `json:"category_id,omitempty"`
	Brand         string           `json:"brand,omitempty"`
	Size          string           `json:"size,omitempty"`
	Color         string           `json:"color,omitempty"`
	PurchasePrice decimal.Decimal  `json:"purchase_price"`
	PurchaseDate  string           `json:"purchase_date"` // YYYY-MM-DD
	Location      string           `json:"location,omitempty"`
	Images        []string         `json:"images,omitempty"`
	Purchase      *InitialPurchase `json:"purchase,omitempty"`
}

// UpdateItemRequest body para PUT /api/v1/items/:id. Status no se modifica aquí (solo vía movimientos).
type UpdateItemRequest struct {
	Name          *string          `json:"name,omitempty"`
	CategoryID    *string          `json:"category_id,omitempty"`
	Brand         *string          `json:"brand,omitempty"`
	Size          *string          `json:"size,omitempty"`
	Color         *string          `json:"color,omitempty"`
	PurchasePrice *decimal.Decimal `json:"purchase_price,omitempty"`
	PurchaseDate  *string          `json:"purchase_date,omitempty"`
	Location      *string          `json:"location,omitempty"`
	Images        []string         `json:"images,omitempty"`
}

// ItemListRequest filtros de GET /api/v1/items.
type ItemListRequest struct {
	PageRequest
	Search     string `query:"search"`
	CategoryID string `query:"category_id"`
	Status     string `query:"status"`
	SortBy     string `query:"sort_by"`
	Direction  string `query:"direction"`
}

// ItemResponse salida de un ítem.
type ItemResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	CategoryID    string          `json:"category_id,omitempty"`
	CategoryName  string          `json:"category_name,omitempty"`
	Brand         string          `json:"brand,omitempty"`
	Size          string          `json:"size,omitempty"`
	Color         string          `json:"color,omitempty"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	PurchaseDate  string          `json:"purchase_date"`
	Location      string          `json:"location,omitempty"`
	Images        []string        `json:"images"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CreateItemResponse ítem creado y, si se pidió, su movimiento de compra.
type CreateItemResponse struct {
	Item        ItemResponse         `json:"item"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
}

// ItemListResponse listado paginado de ítems.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ItemStatsResponse conteo de ítems vigentes por estado.
type ItemStatsResponse struct {
	Total   int `json:"total"`
	Active  int `json:"active"`
	Removed int `json:"removed"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID       string `json:"id"`
	ParentID string `json:"parent_id,omitempty"`
	Name     string `json:"name"`
}
