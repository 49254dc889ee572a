package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-ledger/internal/infrastructure/postgres"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplicar o revertir migraciones del esquema",
	}
	for _, c := range []struct{ use, short string }{
		{postgres.MigrateUp, "Aplicar migraciones pendientes"},
		{postgres.MigrateDown, "Revertir la última migración"},
		{postgres.MigrateStatus, "Mostrar el estado de cada migración"},
	} {
		command := c.use
		cmd.AddCommand(&cobra.Command{
			Use:   c.use,
			Short: c.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				ctx := cmd.Context()
				e, err := openEnv(ctx)
				if err != nil {
					return err
				}
				defer e.Close()
				return postgres.Migrate(ctx, e.pool, command, e.log.Component("migrations"))
			},
		})
	}
	return cmd
}
