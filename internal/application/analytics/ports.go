package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// LedgerSheet datos del diario a exportar.
type LedgerSheet struct {
	From, To     time.Time
	Currency     string
	Entries      []*entity.LedgerEntry
	AccountNames map[string]string // account_id -> nombre
}

// ValuationReport datos de la valorización a renderizar.
type ValuationReport struct {
	GeneratedAt time.Time
	Currency    string
	Total       decimal.Decimal
	ByCategory  []repository.CategoryValue
}

// LedgerExporter genera el archivo del diario (ej. XLSX).
type LedgerExporter interface {
	ExportLedger(ctx context.Context, sheet LedgerSheet) ([]byte, error)
}

// ValuationRenderer genera el documento de valorización (ej. PDF).
type ValuationRenderer interface {
	RenderValuation(ctx context.Context, report ValuationReport) ([]byte, error)
}
