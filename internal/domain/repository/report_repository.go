package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// UncategorizedLabel agrupa en la valorización los ítems sin categoría.
const UncategorizedLabel = "uncategorized"

// CategoryValue valorización de ítems vigentes de una categoría.
type CategoryValue struct {
	CategoryName string
	Value        decimal.Decimal
}

// ReasonAmount suma de salidas por motivo.
type ReasonAmount struct {
	Reason string
	Amount decimal.Decimal
}

// MonthlyFlow entradas y salidas de un mes (Month = día 1 del mes).
type MonthlyFlow struct {
	Month    time.Time
	Inbound  decimal.Decimal
	Outbound decimal.Decimal
}

// CodeAmount suma de asientos por código contable y dirección.
type CodeAmount struct {
	CategoryCode string
	Direction    string
	Amount       decimal.Decimal
}

// ReportRepository consultas de solo lectura para el motor de agregación.
// Las implementaciones nunca modifican datos y devuelven cero (no error) cuando no hay filas.
// Los resultados son una foto consistente con el nivel de aislamiento del almacén (read committed).
type ReportRepository interface {
	// TotalValue Σ purchase_price de ítems ACTIVE y no borrados.
	TotalValue(ctx context.Context, userID string) (decimal.Decimal, error)

	// ValueByCategory misma suma agrupada por nombre de categoría; sin categoría -> UncategorizedLabel.
	ValueByCategory(ctx context.Context, userID string) ([]CategoryValue, error)

	// TotalByType Σ total_amount de movimientos del tipo dado en [from, to].
	TotalByType(ctx context.Context, userID, txType string, from, to time.Time) (decimal.Decimal, error)

	// OutboundByReason Σ total_amount de salidas agrupadas por motivo en [from, to].
	OutboundByReason(ctx context.Context, userID string, from, to time.Time) ([]ReasonAmount, error)

	// MonthlyFlows entradas/salidas por mes en [from, to].
	MonthlyFlows(ctx context.Context, userID string, from, to time.Time) ([]MonthlyFlow, error)

	// AccountTotals Σ débitos y Σ créditos de una cuenta en [from, to].
	AccountTotals(ctx context.Context, userID, accountID string, from, to time.Time) (debit, credit decimal.Decimal, err error)

	// AmountByLedgerCode Σ amount por código contable y dirección en [from, to].
	AmountByLedgerCode(ctx context.Context, userID string, from, to time.Time) ([]CodeAmount, error)
}
