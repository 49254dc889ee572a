package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransactionRequest body para POST /api/v1/transactions.
// La cabecera Idempotency-Key tiene prioridad sobre IdempotencyKey.
type CreateTransactionRequest struct {
	ItemID          string          `json:"item_id" validate:"required,uuid"`
	AccountID       string          `json:"account_id" validate:"required,uuid"`
	Type            string          `json:"type" validate:"required,oneof=IN OUT ADJUST"`
	Quantity        int             `json:"quantity" validate:"min=1"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TransactionDate string          `json:"transaction_date"` // YYYY-MM-DD
	Reason          string          `json:"reason" validate:"required"`
	Notes           string          `json:"notes,omitempty"`
	IdempotencyKey  string          `json:"idempotency_key,omitempty"`
}

// TransactionResponse salida de un movimiento.
type TransactionResponse struct {
	ID              string          `json:"id"`
	ItemID          string          `json:"item_id"`
	AccountID       string          `json:"account_id"`
	Type            string          `json:"type"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	TransactionDate string          `json:"transaction_date"`
	Reason          string          `json:"reason"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TransactionDetailResponse movimiento con sus asientos.
type TransactionDetailResponse struct {
	TransactionResponse
	Entries []LedgerEntryResponse `json:"entries"`
}

// TransactionListResponse listado paginado de movimientos.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// LedgerEntryResponse salida de un asiento.
type LedgerEntryResponse struct {
	ID              string          `json:"id"`
	TransactionID   string          `json:"transaction_id"`
	TransactionDate string          `json:"transaction_date"`
	Amount          decimal.Decimal `json:"amount"`
	Direction       string          `json:"direction"`
	AccountID       string          `json:"account_id"`
	ItemID          string          `json:"item_id,omitempty"`
	CategoryCode    string          `json:"category_code"`
	Note            string          `json:"note"`
	CreatedAt       time.Time       `json:"created_at"`
}

// LedgerListResponse listado paginado de asientos.
type LedgerListResponse struct {
	Items []LedgerEntryResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
