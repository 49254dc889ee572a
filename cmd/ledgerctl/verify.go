package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/postgres"
)

func verifyCmd() *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Comprobar que cada movimiento tenga dos asientos balanceados",
		Long: `Recorre los movimientos (de un usuario o de todos) y reporta los que no tienen
exactamente un débito y un crédito por el total del movimiento. Sale con código 1 si hay descuadres.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			e, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			uc := inventory.NewTransactionUseCase(
				postgres.NewTxRunner(e.pool),
				postgres.NewAccountRepository(e.pool),
				postgres.NewItemRepository(e.pool),
				postgres.NewInventoryTransactionRepository(e.pool),
				postgres.NewLedgerEntryRepository(e.pool),
				zerolog.Nop(),
			)
			checked, broken, err := uc.Verify(ctx, userID)
			if err != nil {
				return err
			}
			e.log.Info().Int("checked", checked).Int("broken", len(broken)).Str("user_id", userID).Msg("verificación terminada")
			if len(broken) == 0 {
				fmt.Printf("%d movimientos verificados, sin descuadres\n", checked)
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "MOVIMIENTO\tESPERADO\tDÉBITO\tCRÉDITO\tASIENTOS")
			for _, b := range broken {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", b.TransactionID, b.Expected, b.Debit, b.Credit, b.Entries)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			return fmt.Errorf("%d de %d movimientos descuadrados", len(broken), checked)
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "ID de usuario (vacío = todos)")
	return cmd
}
