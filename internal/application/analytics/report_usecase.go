// Package analytics contiene el motor de agregación: reportes de solo lectura sobre ítems,
// movimientos y el diario contable, más sus exportaciones.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

const exportPageSize = 500 // asientos por página al exportar el diario

// maxRangeYears amplitud máxima de un rango de reporte.
const maxRangeYears = 10

// Config rangos por defecto (meses hacia atrás desde hoy) y moneda de presentación.
type Config struct {
	StatsDefaultMonths int
	TrendDefaultMonths int
	Currency           string
}

func (c Config) withDefaults() Config {
	if c.StatsDefaultMonths <= 0 {
		c.StatsDefaultMonths = 1
	}
	if c.TrendDefaultMonths <= 0 {
		c.TrendDefaultMonths = 6
	}
	if c.Currency == "" {
		c.Currency = "USD"
	}
	return c
}

// ReportUseCase genera los reportes del usuario.
//
// Fuente de datos: ReportRepository (consultas read-only). Todos los totales son cero,
// nunca error, cuando no hay filas. Los resultados son una foto a nivel read committed,
// no un saldo en tiempo real.
type ReportUseCase struct {
	reportRepo  repository.ReportRepository
	accountRepo repository.AccountRepository
	ledgerRepo  repository.LedgerEntryRepository
	exporter    LedgerExporter
	renderer    ValuationRenderer
	cfg         Config
	now         func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	accountRepo repository.AccountRepository,
	ledgerRepo repository.LedgerEntryRepository,
	cfg Config,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo:  reportRepo,
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		cfg:         cfg.withDefaults(),
		now:         time.Now,
	}
}

// WithExporters conecta los generadores de XLSX y PDF.
func (uc *ReportUseCase) WithExporters(exporter LedgerExporter, renderer ValuationRenderer) *ReportUseCase {
	uc.exporter = exporter
	uc.renderer = renderer
	return uc
}

// WithClock reemplaza el reloj (tests).
func (uc *ReportUseCase) WithClock(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

// Currency moneda de presentación configurada.
func (uc *ReportUseCase) Currency() string { return uc.cfg.Currency }

// InventoryValue Σ purchase_price de ítems ACTIVE no borrados, total y por categoría.
func (uc *ReportUseCase) InventoryValue(ctx context.Context, userID string) (*dto.InventoryValueDTO, error) {
	total, err := uc.reportRepo.TotalValue(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("inventory value: total: %w", err)
	}
	rows, err := uc.reportRepo.ValueByCategory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("inventory value: categorías: %w", err)
	}
	byCategory := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		name := r.CategoryName
		if name == "" {
			name = repository.UncategorizedLabel
		}
		byCategory[name] = byCategory[name].Add(r.Value)
	}
	return &dto.InventoryValueDTO{Total: total, ByCategory: byCategory}, nil
}

// DisposalProfit salidas agrupadas por motivo (rango por defecto: últimos StatsDefaultMonths meses).
func (uc *ReportUseCase) DisposalProfit(ctx context.Context, userID string, r repository.DateRange) (*dto.DisposalProfitDTO, error) {
	from, to, err := uc.resolve(r, uc.cfg.StatsDefaultMonths)
	if err != nil {
		return nil, err
	}
	byReason, err := uc.outboundByReason(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, v := range byReason {
		total = total.Add(v)
	}
	return &dto.DisposalProfitDTO{Period: period(from, to), ByReason: byReason, Total: total}, nil
}

// Trends entradas, salidas y neto del rango más la serie mensual
// (rango por defecto: últimos TrendDefaultMonths meses). Los meses sin movimientos van en cero.
func (uc *ReportUseCase) Trends(ctx context.Context, userID string, r repository.DateRange) (*dto.TrendsDTO, error) {
	from, to, err := uc.resolve(r, uc.cfg.TrendDefaultMonths)
	if err != nil {
		return nil, err
	}
	inbound, err := uc.reportRepo.TotalByType(ctx, userID, entity.TransactionTypeIN, from, to)
	if err != nil {
		return nil, fmt.Errorf("trends: entradas: %w", err)
	}
	outbound, err := uc.reportRepo.TotalByType(ctx, userID, entity.TransactionTypeOUT, from, to)
	if err != nil {
		return nil, fmt.Errorf("trends: salidas: %w", err)
	}
	flows, err := uc.reportRepo.MonthlyFlows(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("trends: serie mensual: %w", err)
	}
	return &dto.TrendsDTO{
		Period:   period(from, to),
		Inbound:  inbound,
		Outbound: outbound,
		Net:      inbound.Sub(outbound),
		Monthly:  monthlySeries(from, to, flows),
	}, nil
}

// TransactionStats entradas, salidas y bajas por motivo (rango por defecto: StatsDefaultMonths).
func (uc *ReportUseCase) TransactionStats(ctx context.Context, userID string, r repository.DateRange) (*dto.TransactionStatsDTO, error) {
	from, to, err := uc.resolve(r, uc.cfg.StatsDefaultMonths)
	if err != nil {
		return nil, err
	}
	inbound, err := uc.reportRepo.TotalByType(ctx, userID, entity.TransactionTypeIN, from, to)
	if err != nil {
		return nil, fmt.Errorf("stats: entradas: %w", err)
	}
	outbound, err := uc.reportRepo.TotalByType(ctx, userID, entity.TransactionTypeOUT, from, to)
	if err != nil {
		return nil, fmt.Errorf("stats: salidas: %w", err)
	}
	byReason, err := uc.outboundByReason(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.TransactionStatsDTO{
		Period:            period(from, to),
		Inbound:           inbound,
		Outbound:          outbound,
		DisposalsByReason: byReason,
	}, nil
}

// AccountBalance Σ débitos, Σ créditos y saldo (débito - crédito) de una cuenta del usuario.
func (uc *ReportUseCase) AccountBalance(ctx context.Context, userID, accountID string, r repository.DateRange) (*dto.AccountBalanceDTO, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: account_id requerido", domain.ErrValidation)
	}
	account, err := uc.accountRepo.GetByID(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: cuenta %s", domain.ErrNotFound, accountID)
	}
	from, to, err := uc.resolve(r, uc.cfg.StatsDefaultMonths)
	if err != nil {
		return nil, err
	}
	debit, credit, err := uc.reportRepo.AccountTotals(ctx, userID, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("account balance: %w", err)
	}
	return &dto.AccountBalanceDTO{
		AccountID: accountID,
		Period:    period(from, to),
		Debit:     debit,
		Credit:    credit,
		Balance:   debit.Sub(credit),
	}, nil
}

// AmountByLedgerCategory Σ amount por código contable separado por dirección.
// Los tres códigos siempre aparecen (en cero si no hay asientos).
func (uc *ReportUseCase) AmountByLedgerCategory(ctx context.Context, userID string, r repository.DateRange) (*dto.LedgerCategoriesDTO, error) {
	from, to, err := uc.resolve(r, uc.cfg.StatsDefaultMonths)
	if err != nil {
		return nil, err
	}
	rows, err := uc.reportRepo.AmountByLedgerCode(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("ledger categories: %w", err)
	}
	byCode := map[string]dto.DirectionAmountDTO{}
	for _, code := range []string{entity.LedgerCodeInventory, entity.LedgerCodeCash, entity.LedgerCodeLoss} {
		byCode[code] = dto.DirectionAmountDTO{Debit: decimal.Zero, Credit: decimal.Zero}
	}
	for _, row := range rows {
		cur, ok := byCode[row.CategoryCode]
		if !ok {
			cur = dto.DirectionAmountDTO{Debit: decimal.Zero, Credit: decimal.Zero}
		}
		switch row.Direction {
		case entity.DirectionDebit:
			cur.Debit = cur.Debit.Add(row.Amount)
		case entity.DirectionCredit:
			cur.Credit = cur.Credit.Add(row.Amount)
		}
		byCode[row.CategoryCode] = cur
	}
	return &dto.LedgerCategoriesDTO{Period: period(from, to), ByCode: byCode}, nil
}

// Summary valorización, estadísticas y tendencias con sus rangos por defecto.
//
// Tres llamadas en paralelo:
//  1. InventoryValue
//  2. TransactionStats (StatsDefaultMonths)
//  3. Trends (TrendDefaultMonths)
func (uc *ReportUseCase) Summary(ctx context.Context, userID string) (*dto.SummaryDTO, error) {
	type valueResult struct {
		v   *dto.InventoryValueDTO
		err error
	}
	type statsResult struct {
		v   *dto.TransactionStatsDTO
		err error
	}
	type trendsResult struct {
		v   *dto.TrendsDTO
		err error
	}

	valueCh := make(chan valueResult, 1)
	statsCh := make(chan statsResult, 1)
	trendsCh := make(chan trendsResult, 1)

	go func() {
		v, err := uc.InventoryValue(ctx, userID)
		valueCh <- valueResult{v, err}
	}()
	go func() {
		v, err := uc.TransactionStats(ctx, userID, repository.DateRange{})
		statsCh <- statsResult{v, err}
	}()
	go func() {
		v, err := uc.Trends(ctx, userID, repository.DateRange{})
		trendsCh <- trendsResult{v, err}
	}()

	value := <-valueCh
	stats := <-statsCh
	trends := <-trendsCh

	if value.err != nil {
		return nil, fmt.Errorf("summary: valorización: %w", value.err)
	}
	if stats.err != nil {
		return nil, fmt.Errorf("summary: estadísticas: %w", stats.err)
	}
	if trends.err != nil {
		return nil, fmt.Errorf("summary: tendencias: %w", trends.err)
	}
	return &dto.SummaryDTO{
		InventoryValue: *value.v,
		Stats:          *stats.v,
		Trends:         *trends.v,
		Currency:       uc.cfg.Currency,
	}, nil
}

// ExportLedgerXLSX exporta los asientos del rango (por defecto StatsDefaultMonths).
func (uc *ReportUseCase) ExportLedgerXLSX(ctx context.Context, userID string, r repository.DateRange) ([]byte, error) {
	if uc.exporter == nil {
		return nil, fmt.Errorf("export ledger: exportador no configurado")
	}
	from, to, err := uc.resolve(r, uc.cfg.StatsDefaultMonths)
	if err != nil {
		return nil, err
	}
	filter := repository.LedgerFilter{Range: repository.DateRange{From: &from, To: &to}}
	var entries []*entity.LedgerEntry
	for offset := 0; ; offset += exportPageSize {
		page := repository.Page{Limit: exportPageSize, Offset: offset, SortBy: "transaction_date", Direction: repository.SortAsc}
		batch, total, err := uc.ledgerRepo.List(ctx, userID, filter, page)
		if err != nil {
			return nil, fmt.Errorf("export ledger: %w", err)
		}
		entries = append(entries, batch...)
		if len(batch) == 0 || len(entries) >= total {
			break
		}
	}
	accounts, err := uc.accountRepo.ListByUser(ctx, userID, "")
	if err != nil {
		return nil, fmt.Errorf("export ledger: cuentas: %w", err)
	}
	names := make(map[string]string, len(accounts))
	for _, a := range accounts {
		names[a.ID] = a.Name
	}
	return uc.exporter.ExportLedger(ctx, LedgerSheet{
		From:         from,
		To:           to,
		Currency:     uc.cfg.Currency,
		Entries:      entries,
		AccountNames: names,
	})
}

// ValuationPDF genera el PDF de valorización actual.
func (uc *ReportUseCase) ValuationPDF(ctx context.Context, userID string) ([]byte, error) {
	if uc.renderer == nil {
		return nil, fmt.Errorf("valuation pdf: generador no configurado")
	}
	value, err := uc.InventoryValue(ctx, userID)
	if err != nil {
		return nil, err
	}
	rows := make([]repository.CategoryValue, 0, len(value.ByCategory))
	for name, v := range value.ByCategory {
		rows = append(rows, repository.CategoryValue{CategoryName: name, Value: v})
	}
	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].Value.Cmp(rows[j].Value); c != 0 {
			return c > 0
		}
		return rows[i].CategoryName < rows[j].CategoryName
	})
	return uc.renderer.RenderValuation(ctx, ValuationReport{
		GeneratedAt: uc.now(),
		Currency:    uc.cfg.Currency,
		Total:       value.Total,
		ByCategory:  rows,
	})
}

func (uc *ReportUseCase) outboundByReason(ctx context.Context, userID string, from, to time.Time) (map[string]decimal.Decimal, error) {
	rows, err := uc.reportRepo.OutboundByReason(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("salidas por motivo: %w", err)
	}
	out := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		out[r.Reason] = out[r.Reason].Add(r.Amount)
	}
	return out, nil
}

// resolve completa el rango: To = hoy, From = To - months. From > To o más de maxRangeYears es inválido.
func (uc *ReportUseCase) resolve(r repository.DateRange, months int) (from, to time.Time, err error) {
	to = dateOnly(uc.now())
	if r.To != nil {
		to = dateOnly(*r.To)
	}
	from = to.AddDate(0, -months, 0)
	if r.From != nil {
		from = dateOnly(*r.From)
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from posterior a to", domain.ErrValidation)
	}
	if from.Before(to.AddDate(-maxRangeYears, 0, 0)) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: el rango supera %d años", domain.ErrValidation, maxRangeYears)
	}
	return from, to, nil
}

// monthlySeries un bucket por mes entre from y to; los meses sin filas quedan en cero.
func monthlySeries(from, to time.Time, flows []repository.MonthlyFlow) []dto.MonthlyTrendDTO {
	byMonth := make(map[string]repository.MonthlyFlow, len(flows))
	for _, f := range flows {
		byMonth[f.Month.Format("2006-01")] = f
	}
	var out []dto.MonthlyTrendDTO
	for m := monthStart(from); !m.After(to); m = m.AddDate(0, 1, 0) {
		key := m.Format("2006-01")
		in, outb := decimal.Zero, decimal.Zero
		if f, ok := byMonth[key]; ok {
			in, outb = f.Inbound, f.Outbound
		}
		out = append(out, dto.MonthlyTrendDTO{Month: key, Inbound: in, Outbound: outb, Net: in.Sub(outb)})
	}
	return out
}

func period(from, to time.Time) dto.PeriodDTO {
	return dto.PeriodDTO{From: dto.FormatDate(from), To: dto.FormatDate(to)}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
