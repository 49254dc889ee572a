package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-ledger/internal/application/analytics"
	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/export"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/postgres"
)

func exportLedgerCmd() *cobra.Command {
	var userID, from, to, out string
	cmd := &cobra.Command{
		Use:   "export-ledger",
		Short: "Exportar el diario de un usuario a XLSX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := parseRange(from, to)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			e, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			uc := analytics.NewReportUseCase(
				postgres.NewReportRepository(e.pool),
				postgres.NewAccountRepository(e.pool),
				postgres.NewLedgerEntryRepository(e.pool),
				analytics.Config{
					StatsDefaultMonths: e.cfg.Reports.StatsDefaultMonths,
					TrendDefaultMonths: e.cfg.Reports.TrendDefaultMonths,
					Currency:           e.cfg.Reports.Currency,
				},
			).WithExporters(export.NewXLSXLedgerExporter(), nil)

			data, err := uc.ExportLedgerXLSX(ctx, userID, r)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", out, err)
			}
			e.log.Info().Str("user_id", userID).Str("file", out).Int("bytes", len(data)).Msg("diario exportado")
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "ID de usuario (requerido)")
	cmd.Flags().StringVar(&from, "from", "", "fecha inicial YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "fecha final YYYY-MM-DD")
	cmd.Flags().StringVar(&out, "out", "diario.xlsx", "archivo de salida")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func parseRange(from, to string) (repository.DateRange, error) {
	var r repository.DateRange
	for _, p := range []struct {
		name string
		raw  string
		dst  **time.Time
	}{{"from", from, &r.From}, {"to", to, &r.To}} {
		if p.raw == "" {
			continue
		}
		d, err := dto.ParseDate(p.raw)
		if err != nil {
			return r, fmt.Errorf("--%s %q: use YYYY-MM-DD", p.name, p.raw)
		}
		*p.dst = &d
	}
	return r, nil
}
