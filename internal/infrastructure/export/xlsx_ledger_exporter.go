package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/analytics"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/pkg/currency"
)

// Hojas del libro exportado.
const (
	LedgerSheetName  = "Diario"
	SummarySheetName = "Resumen"
)

const dateLayout = "2006-01-02"

var ledgerHeader = []interface{}{
	"Fecha", "Movimiento", "Cuenta", "Categoría", "Dirección", "Monto", "Ítem", "Nota",
}

// Ensure XLSXLedgerExporter implements analytics.LedgerExporter.
var _ analytics.LedgerExporter = (*XLSXLedgerExporter)(nil)

// XLSXLedgerExporter exporta el diario a un libro Excel: una fila por asiento y una hoja de totales.
type XLSXLedgerExporter struct{}

// NewXLSXLedgerExporter construye el exportador.
func NewXLSXLedgerExporter() *XLSXLedgerExporter {
	return &XLSXLedgerExporter{}
}

// ExportLedger genera el archivo XLSX en memoria.
func (e *XLSXLedgerExporter) ExportLedger(ctx context.Context, sheet analytics.LedgerSheet) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), LedgerSheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if err := f.SetSheetRow(LedgerSheetName, "A1", &ledgerHeader); err != nil {
		return nil, fmt.Errorf("xlsx: encabezado: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	_ = f.SetCellStyle(LedgerSheetName, "A1", "H1", headerStyle)

	debit, credit := decimal.Zero, decimal.Zero
	row := 2
	for _, le := range sheet.Entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		account := sheet.AccountNames[le.AccountID]
		if account == "" {
			account = le.AccountID
		}
		values := []interface{}{
			le.TransactionDate.Format(dateLayout),
			le.TransactionID,
			account,
			le.CategoryCode,
			le.Direction,
			le.Amount.InexactFloat64(),
			le.ItemID,
			le.Note,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("xlsx: celda: %w", err)
		}
		if err := f.SetSheetRow(LedgerSheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", row, err)
		}
		amountCell, _ := excelize.CoordinatesToCellName(6, row)
		_ = f.SetCellStyle(LedgerSheetName, amountCell, amountCell, amountStyle)

		if le.Direction == entity.DirectionDebit {
			debit = debit.Add(le.Amount)
		} else {
			credit = credit.Add(le.Amount)
		}
		row++
	}
	_ = f.SetColWidth(LedgerSheetName, "B", "B", 38)
	_ = f.SetColWidth(LedgerSheetName, "C", "C", 20)
	_ = f.SetColWidth(LedgerSheetName, "G", "H", 38)

	if err := writeSummary(f, sheet, debit, credit, headerStyle); err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, sheet analytics.LedgerSheet, debit, credit decimal.Decimal, headerStyle int) error {
	if _, err := f.NewSheet(SummarySheetName); err != nil {
		return fmt.Errorf("xlsx: hoja resumen: %w", err)
	}
	rows := [][]interface{}{
		{"Desde", sheet.From.Format(dateLayout)},
		{"Hasta", sheet.To.Format(dateLayout)},
		{"Moneda", currency.Normalize(sheet.Currency)},
		{"Asientos", len(sheet.Entries)},
		{"Total débitos", currency.Format(debit, sheet.Currency)},
		{"Total créditos", currency.Format(credit, sheet.Currency)},
		{"Balanceado", yesNo(debit.Equal(credit))},
	}
	for i, values := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("xlsx: celda: %w", err)
		}
		if err := f.SetSheetRow(SummarySheetName, cell, &values); err != nil {
			return fmt.Errorf("xlsx: resumen fila %d: %w", i+1, err)
		}
	}
	_ = f.SetCellStyle(SummarySheetName, "A1", fmt.Sprintf("A%d", len(rows)), headerStyle)
	_ = f.SetColWidth(SummarySheetName, "A", "B", 20)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "sí"
	}
	return "no"
}
