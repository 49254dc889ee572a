package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para el motor de agregación.
// Todas las sumas usan COALESCE(SUM(...), 0): sin filas el resultado es cero.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// TotalValue Σ purchase_price de ítems ACTIVE no borrados.
func (r *ReportRepo) TotalValue(ctx context.Context, userID string) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(purchase_price), 0)
	FROM items
	WHERE user_id = $1 AND status = $2 AND deleted_at IS NULL`

	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, userID, entity.ItemStatusActive).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("reports.TotalValue: %w", err)
	}
	return total, nil
}

// ValueByCategory misma suma agrupada por categoría; sin categoría -> UncategorizedLabel.
func (r *ReportRepo) ValueByCategory(ctx context.Context, userID string) ([]repository.CategoryValue, error) {
	const query = `
	SELECT
	    COALESCE(c.name, $3)                AS category_name,
	    COALESCE(SUM(i.purchase_price), 0)  AS value
	FROM items i
	LEFT JOIN categories c ON c.id = i.category_id
	WHERE i.user_id = $1 AND i.status = $2 AND i.deleted_at IS NULL
	GROUP BY COALESCE(c.name, $3)
	ORDER BY value DESC`

	rows, err := r.pool.Query(ctx, query, userID, entity.ItemStatusActive, repository.UncategorizedLabel)
	if err != nil {
		return nil, fmt.Errorf("reports.ValueByCategory: %w", err)
	}
	defer rows.Close()

	var results []repository.CategoryValue
	for rows.Next() {
		var row repository.CategoryValue
		if err := rows.Scan(&row.CategoryName, &row.Value); err != nil {
			return nil, fmt.Errorf("reports.ValueByCategory scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// TotalByType Σ total_amount de movimientos del tipo en [from, to].
func (r *ReportRepo) TotalByType(ctx context.Context, userID, txType string, from, to time.Time) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(total_amount), 0)
	FROM inventory_transactions
	WHERE user_id = $1 AND type = $2 AND transaction_date BETWEEN $3 AND $4`

	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, userID, txType, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("reports.TotalByType: %w", err)
	}
	return total, nil
}

// OutboundByReason Σ total_amount de salidas por motivo en [from, to].
func (r *ReportRepo) OutboundByReason(ctx context.Context, userID string, from, to time.Time) ([]repository.ReasonAmount, error) {
	const query = `
	SELECT reason, COALESCE(SUM(total_amount), 0)
	FROM inventory_transactions
	WHERE user_id = $1 AND type = $2 AND transaction_date BETWEEN $3 AND $4
	GROUP BY reason
	ORDER BY reason`

	rows, err := r.pool.Query(ctx, query, userID, entity.TransactionTypeOUT, from, to)
	if err != nil {
		return nil, fmt.Errorf("reports.OutboundByReason: %w", err)
	}
	defer rows.Close()

	var results []repository.ReasonAmount
	for rows.Next() {
		var row repository.ReasonAmount
		if err := rows.Scan(&row.Reason, &row.Amount); err != nil {
			return nil, fmt.Errorf("reports.OutboundByReason scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// MonthlyFlows entradas y salidas agrupadas por mes (date_trunc) en [from, to].
func (r *ReportRepo) MonthlyFlows(ctx context.Context, userID string, from, to time.Time) ([]repository.MonthlyFlow, error) {
	const query = `
	SELECT
	    date_trunc('month', transaction_date)::date                              AS month,
	    COALESCE(SUM(total_amount) FILTER (WHERE type = 'IN'), 0)                AS inbound,
	    COALESCE(SUM(total_amount) FILTER (WHERE type = 'OUT'), 0)               AS outbound
	FROM inventory_transactions
	WHERE user_id = $1 AND transaction_date BETWEEN $2 AND $3
	GROUP BY 1
	ORDER BY 1`

	rows, err := r.pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("reports.MonthlyFlows: %w", err)
	}
	defer rows.Close()

	var results []repository.MonthlyFlow
	for rows.Next() {
		var row repository.MonthlyFlow
		if err := rows.Scan(&row.Month, &row.Inbound, &row.Outbound); err != nil {
			return nil, fmt.Errorf("reports.MonthlyFlows scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// AccountTotals Σ débitos y Σ créditos de la cuenta en [from, to].
func (r *ReportRepo) AccountTotals(ctx context.Context, userID, accountID string, from, to time.Time) (debit, credit decimal.Decimal, err error) {
	const query = `
	SELECT
	    COALESCE(SUM(amount) FILTER (WHERE direction = 'DEBIT'), 0),
	    COALESCE(SUM(amount) FILTER (WHERE direction = 'CREDIT'), 0)
	FROM ledger_entries
	WHERE user_id = $1 AND account_id = $2 AND transaction_date BETWEEN $3 AND $4`

	if err := r.pool.QueryRow(ctx, query, userID, accountID, from, to).Scan(&debit, &credit); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("reports.AccountTotals: %w", err)
	}
	return debit, credit, nil
}

// AmountByLedgerCode Σ amount por código contable y dirección en [from, to].
func (r *ReportRepo) AmountByLedgerCode(ctx context.Context, userID string, from, to time.Time) ([]repository.CodeAmount, error) {
	const query = `
	SELECT category_code, direction, COALESCE(SUM(amount), 0)
	FROM ledger_entries
	WHERE user_id = $1 AND transaction_date BETWEEN $2 AND $3
	GROUP BY category_code, direction
	ORDER BY category_code, direction DESC`

	rows, err := r.pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("reports.AmountByLedgerCode: %w", err)
	}
	defer rows.Close()

	var results []repository.CodeAmount
	for rows.Next() {
		var row repository.CodeAmount
		if err := rows.Scan(&row.CategoryCode, &row.Direction, &row.Amount); err != nil {
			return nil, fmt.Errorf("reports.AmountByLedgerCode scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
