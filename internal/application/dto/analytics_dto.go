package dto

import "github.com/shopspring/decimal"

// ── Rango aplicado ────────────────────────────────────────────────────────────

// PeriodDTO rango efectivo del reporte (ya resuelto con los valores por defecto).
type PeriodDTO struct {
	From string `json:"from"` // YYYY-MM-DD
	To   string `json:"to"`   // YYYY-MM-DD
}

// ── Valorización ──────────────────────────────────────────────────────────────

// InventoryValueDTO respuesta de GET /api/v1/reports/inventory-value.
// La suma de ByCategory siempre es igual a Total.
type InventoryValueDTO struct {
	Total      decimal.Decimal            `json:"total"`
	ByCategory map[string]decimal.Decimal `json:"by_category"` // ítems sin categoría en "uncategorized"
}

// ── Bajas ─────────────────────────────────────────────────────────────────────

// DisposalProfitDTO salidas agrupadas por motivo.
type DisposalProfitDTO struct {
	Period   PeriodDTO                  `json:"period"`
	ByReason map[string]decimal.Decimal `json:"by_reason"`
	Total    decimal.Decimal            `json:"total"`
}

// ── Tendencias ────────────────────────────────────────────────────────────────

// MonthlyTrendDTO entradas/salidas de un mes.
type MonthlyTrendDTO struct {
	Month    string          `json:"month"` // YYYY-MM
	Inbound  decimal.Decimal `json:"inbound"`
	Outbound decimal.Decimal `json:"outbound"`
	Net      decimal.Decimal `json:"net"` // Inbound - Outbound
}

// TrendsDTO respuesta de GET /api/v1/reports/trends.
type TrendsDTO struct {
	Period   PeriodDTO         `json:"period"`
	Inbound  decimal.Decimal   `json:"inbound"`
	Outbound decimal.Decimal   `json:"outbound"`
	Net      decimal.Decimal   `json:"net"`
	Monthly  []MonthlyTrendDTO `json:"monthly"`
}

// ── Movimientos ───────────────────────────────────────────────────────────────

// TransactionStatsDTO respuesta de GET /api/v1/transactions/stats.
type TransactionStatsDTO struct {
	Period            PeriodDTO                  `json:"period"`
	Inbound           decimal.Decimal            `json:"inbound"`
	Outbound          decimal.Decimal            `json:"outbound"`
	DisposalsByReason map[string]decimal.Decimal `json:"disposals_by_reason"`
}

// ── Diario ────────────────────────────────────────────────────────────────────

// AccountBalanceDTO saldo de una cuenta (Balance = Debit - Credit; positivo = saldo deudor).
type AccountBalanceDTO struct {
	AccountID string          `json:"account_id"`
	Period    PeriodDTO       `json:"period"`
	Debit     decimal.Decimal `json:"debit_total"`
	Credit    decimal.Decimal `json:"credit_total"`
	Balance   decimal.Decimal `json:"balance"`
}

// DirectionAmountDTO importes de un código contable por dirección.
type DirectionAmountDTO struct {
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

// LedgerCategoriesDTO Σ amount por código contable (INVENTORY, CASH, LOSS).
type LedgerCategoriesDTO struct {
	Period PeriodDTO                     `json:"period"`
	ByCode map[string]DirectionAmountDTO `json:"by_code"`
}
