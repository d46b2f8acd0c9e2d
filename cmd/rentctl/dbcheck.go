package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/proman-api/internal/infrastructure/postgres"
)

var dbcheckCmd = &cobra.Command{
	Use:   "dbcheck",
	Short: "Comprueba la conexión a PostgreSQL y aplica las migraciones pendientes",
	Args:  cobra.NoArgs,
	RunE:  runDBCheck,
}

func init() {
	rootCmd.AddCommand(dbcheckCmd)
	dbcheckCmd.Flags().Bool("migrate", false, "aplicar el esquema tras conectar")
	dbcheckCmd.Flags().Duration("timeout", 10*time.Second, "tiempo máximo de la comprobación")
}

func runDBCheck(cmd *cobra.Command, _ []string) error {
	migrate, _ := cmd.Flags().GetBool("migrate")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	start := time.Now()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	var serverVersion string
	if err := pool.QueryRow(ctx, "SHOW server_version").Scan(&serverVersion); err != nil {
		return fmt.Errorf("consulta de versión: %w", err)
	}
	log.Info().
		Str("server_version", serverVersion).
		Dur("elapsed", time.Since(start)).
		Msg("PostgreSQL accesible")

	if migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("migraciones: %w", err)
		}
		log.Info().Msg("esquema aplicado")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok (PostgreSQL %s)\n", serverVersion)
	return nil
}
