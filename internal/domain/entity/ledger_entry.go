package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dirección del asiento.
const (
	DirectionDebit  = "DEBIT"
	DirectionCredit = "CREDIT"
)

// Códigos de categoría contable (significado económico del asiento, distinto de Category del ítem).
const (
	LedgerCodeInventory = "INVENTORY"
	LedgerCodeCash      = "CASH"
	LedgerCodeLoss      = "LOSS"
)

// LedgerEntry fila del diario. Append-only: nunca se actualiza ni se borra.
// Solo la crea el motor de contabilización, en pares balanceados por movimiento.
type LedgerEntry struct {
	ID              string
	UserID          string
	TransactionID   string // movimiento que originó el asiento
	TransactionDate time.Time
	Amount          decimal.Decimal
	Direction       string
	AccountID       string
	ItemID          string // vacío si no aplica
	CategoryCode    string
	Note            string
	CreatedAt       time.Time
}
