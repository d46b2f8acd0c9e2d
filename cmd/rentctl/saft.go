package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/proman-api/internal/application/dto"
	appsaft "github.com/jhoicas/proman-api/internal/application/saft"
	"github.com/jhoicas/proman-api/internal/application/validation"
	"github.com/jhoicas/proman-api/internal/domain"
	"github.com/jhoicas/proman-api/internal/infrastructure/postgres"
	infrasaft "github.com/jhoicas/proman-api/internal/infrastructure/saft"
)

var saftCmd = &cobra.Command{
	Use:   "saft",
	Short: "Exportación SAF-T PT",
}

var saftExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Genera el fichero SAF-T de un usuario leyendo de PostgreSQL",
	Example: `  rentctl saft export --user 6f1c... --year 2025 --from 1 --to 3 \
    --nif 123456789 --name "Rendas Lda" --address "Rua Augusta 1" \
    --city Lisboa --postal-code 1100-048 --out ./export`,
	Args: cobra.NoArgs,
	RunE: runSAFTExport,
}

func init() {
	f := saftExportCmd.Flags()
	f.String("user", "", "ID del usuario propietario de las facturas")
	f.Int("year", time.Now().Year(), "año fiscal")
	f.Int("from", 1, "mes inicial (1-12)")
	f.Int("to", 12, "mes final (1-12)")
	f.String("nif", "", "NIF de la empresa")
	f.String("name", "", "nombre de la empresa")
	f.String("address", "", "dirección")
	f.String("city", "", "localidad")
	f.String("postal-code", "", "código postal NNNN-NNN")
	f.String("encoding", "", "UTF-8 | windows-1252")
	f.String("out", ".", "directorio de salida")
	f.Bool("zip", false, "comprimir el XML en un .zip")
	_ = saftExportCmd.MarkFlagRequired("user")
	_ = saftExportCmd.MarkFlagRequired("nif")

	saftCmd.AddCommand(saftExportCmd)
	rootCmd.AddCommand(saftCmd)
}

func runSAFTExport(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	userID, _ := f.GetString("user")
	outDir, _ := f.GetString("out")
	compress, _ := f.GetBool("zip")

	req := &dto.SAFTExportRequest{}
	req.FiscalYear, _ = f.GetInt("year")
	req.StartMonth, _ = f.GetInt("from")
	req.EndMonth, _ = f.GetInt("to")
	req.Encoding, _ = f.GetString("encoding")
	req.CompanyInfo.NIF, _ = f.GetString("nif")
	req.CompanyInfo.Name, _ = f.GetString("name")
	req.CompanyInfo.Address, _ = f.GetString("address")
	req.CompanyInfo.City, _ = f.GetString("city")
	req.CompanyInfo.PostalCode, _ = f.GetString("postal-code")

	ctx := cmd.Context()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	uc := appsaft.NewExportUseCase(postgres.NewStore(pool).Financial, validation.New(), infrasaft.NewXMLBuilderService(), infrasaft.ProductData{
		ProductID:                 cfg.SAFT.ProductID,
		ProductVersion:            cfg.SAFT.ProductVersion,
		ProductCompanyTaxID:       cfg.SAFT.ProductCompanyTaxID,
		SoftwareCertificateNumber: cfg.SAFT.SoftwareCertificateNumber,
	}, log.Component("saft"))

	res, err := uc.Export(ctx, userID, req)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			for _, v := range verr.Violations {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", v.Field, v.Message)
			}
		}
		return err
	}

	name, body := res.Filename, res.XML
	if compress {
		body, err = infrasaft.CompressXMLToZip(res.XML, res.Filename)
		if err != nil {
			return err
		}
		name = infrasaft.ZipFilename(res.Filename)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(outDir, name)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", path, err)
	}

	log.Info().
		Str("file", path).
		Int("invoices", res.InvoiceCount).
		Str("total", res.TotalAmount.StringFixed(2)).
		Str("digest", res.Digest).
		Msg("SAF-T exportado")
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d facturas\t%s EUR\n", path, res.InvoiceCount, res.TotalAmount.StringFixed(2))
	return nil
}
