package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	pkgsaft "github.com/jhoicas/proman-api/pkg/saft"
)

var nifCmd = &cobra.Command{
	Use:   "nif",
	Short: "Utilidades de NIF portugués",
}

var nifValidateCmd = &cobra.Command{
	Use:     "validate <nif>...",
	Short:   "Valida uno o varios NIF (forma y dígito de control)",
	Example: "  rentctl nif validate 123456789 500000000",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runNIFValidate,
}

var nifCheckDigitCmd = &cobra.Command{
	Use:     "check-digit <8 dígitos>",
	Short:   "Completa un NIF calculando su dígito de control",
	Example: "  rentctl nif check-digit 12345678",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nif, err := pkgsaft.CompleteNIF(strings.TrimSpace(args[0]))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), nif)
		return nil
	},
}

func init() {
	nifCmd.AddCommand(nifValidateCmd, nifCheckDigitCmd)
	rootCmd.AddCommand(nifCmd)
}

func runNIFValidate(cmd *cobra.Command, args []string) error {
	invalid := 0
	for _, raw := range args {
		nif := strings.TrimSpace(raw)
		status := "válido"
		switch {
		case !pkgsaft.IsNIFShape(nif):
			status = "inválido (se esperan 9 dígitos)"
			invalid++
		case !pkgsaft.ValidateNIF(nif):
			status = "inválido (dígito de control)"
			invalid++
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", nif, status)
	}
	if invalid > 0 {
		return fmt.Errorf("%d de %d NIF inválidos", invalid, len(args))
	}
	return nil
}
