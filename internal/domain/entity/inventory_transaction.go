package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	TransactionTypeIN     = "IN"     // entrada
	TransactionTypeOUT    = "OUT"    // salida
	TransactionTypeADJUST = "ADJUST" // ajuste
)

// Motivos de movimiento.
const (
	ReasonPurchase = "PURCHASE"
	ReasonSell     = "SELL"
	ReasonDispose  = "DISPOSE"
	ReasonGift     = "GIFT"
	ReasonLost     = "LOST"
	ReasonAdjust   = "ADJUST"
)

// InventoryTransaction movimiento de inventario. Inmutable: una corrección es un nuevo movimiento compensatorio.
// TotalAmount siempre se recalcula como UnitPrice * Quantity.
type InventoryTransaction struct {
	ID              string
	UserID          string
	ItemID          string
	AccountID       string
	Type            string
	Quantity        int
	UnitPrice       decimal.Decimal
	TotalAmount     decimal.Decimal
	TransactionDate time.Time
	Reason          string
	Notes           string
	IdempotencyKey  string // vacío si el llamador no envió clave
	CreatedAt       time.Time
}

// IsValidTransactionType indica si t es IN, OUT o ADJUST.
func IsValidTransactionType(t string) bool {
	switch t {
	case TransactionTypeIN, TransactionTypeOUT, TransactionTypeADJUST:
		return true
	}
	return false
}

// IsValidReason indica si r es uno de los motivos soportados.
func IsValidReason(r string) bool {
	switch r {
	case ReasonPurchase, ReasonSell, ReasonDispose, ReasonGift, ReasonLost, ReasonAdjust:
		return true
	}
	return false
}
