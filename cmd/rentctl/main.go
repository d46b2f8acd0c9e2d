// rentctl utilidades de operación: comprobar la base de datos, validar NIF y exportar SAF-T
// sin pasar por la API HTTP.
//
// Uso: go run ./cmd/rentctl --help
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/proman-api/pkg/config"
	"github.com/jhoicas/proman-api/pkg/logger"
)

var version = "1.0.0"

var (
	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:           "rentctl",
	Short:         "Herramientas de línea de comandos de Proman",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		level, _ := cmd.Flags().GetString("log-level")
		if level == "" {
			level = cfg.App.LogLevel
		}
		log = logger.New(logger.Config{Env: cfg.App.Env, Level: level})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "nivel de log (por defecto LOG_LEVEL)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if log != nil {
			log.Error().Err(err).Msg("comando fallido")
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
