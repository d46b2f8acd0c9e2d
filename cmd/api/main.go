package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/jhoicas/proman-api/internal/application/billing"
	"github.com/jhoicas/proman-api/internal/application/correspondence"
	"github.com/jhoicas/proman-api/internal/application/property"
	"github.com/jhoicas/proman-api/internal/application/reports"
	appsaft "github.com/jhoicas/proman-api/internal/application/saft"
	"github.com/jhoicas/proman-api/internal/application/validation"
	"github.com/jhoicas/proman-api/internal/domain/repository"
	"github.com/jhoicas/proman-api/internal/infrastructure/memory"
	"github.com/jhoicas/proman-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/proman-api/internal/infrastructure/pdf"
	"github.com/jhoicas/proman-api/internal/infrastructure/postgres"
	infrasaft "github.com/jhoicas/proman-api/internal/infrastructure/saft"
	"github.com/jhoicas/proman-api/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jhoicas/proman-api/internal/interfaces/http"
	"github.com/jhoicas/proman-api/pkg/config"
	"github.com/jhoicas/proman-api/pkg/logger"

	_ "github.com/jhoicas/proman-api/docs"
)

// @title                       Proman API
// @version                     1.0
// @description                 Gestión de alquileres: inmuebles, inquilinos, facturación, reportes y SAF-T PT.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("data_mode", cfg.Data.Mode).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()

	// El almacén se elige una sola vez: postgres (por defecto) o memoria para demo.
	var (
		repos    repository.Store
		txRunner billing.BillingTxRunner
	)
	switch cfg.Data.Mode {
	case config.DataModeMemory:
		store := memory.NewStore()
		if cfg.Data.SeedDemo {
			store.SeedDemo(memory.DemoUserID, time.Now().UTC())
			log.Info().Str("user_id", memory.DemoUserID).Msg("datos de demostración cargados")
		}
		repos, txRunner = store.Repositories(), store
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		repos, txRunner = postgres.NewStore(pool), postgres.NewTxRunner(pool)
	}

	zl := log.Zerolog()
	v := validation.New()
	m := metrics.New()

	propertyUC := property.NewPropertyUseCase(repos.Properties, repos.Tenants, v)
	tenantUC := property.NewTenantUseCase(repos.Tenants, repos.Properties, v)
	invoiceUC := billing.NewInvoiceUseCase(repos.Invoices, repos.Tenants, txRunner, v, log.Component("invoices"))
	receiptUC := billing.NewReceiptUseCase(repos.Receipts, repos.Tenants, repos.Invoices, txRunner, v)
	expenseUC := billing.NewExpenseUseCase(repos.Expenses, repos.Properties, v)

	// PDF: representación gráfica de la factura de renta
	invoicePDFUC := billing.NewPDFUseCase(
		repos.Invoices, repos.Tenants, repos.Properties, infrapdf.NewMarotoPDFGenerator(),
	)
	corrSvc := correspondence.NewService(
		repos.Templates, repos.Correspondences, repos.Tenants, repos.Properties, v, log.Component("correspondence"),
	)
	reportGen := reports.NewGenerator(repos.Financial, log.Component("reports"))
	saftUC := appsaft.NewExportUseCase(repos.Financial, v, infrasaft.NewXMLBuilderService(), infrasaft.ProductData{
		ProductID:                 cfg.SAFT.ProductID,
		ProductVersion:            cfg.SAFT.ProductVersion,
		ProductCompanyTaxID:       cfg.SAFT.ProductCompanyTaxID,
		SoftwareCertificateNumber: cfg.SAFT.SoftwareCertificateNumber,
	}, log.Component("saft"))

	app := httpRouter.NewApp(httpRouter.ServerConfig{
		Name:        cfg.App.Name,
		Development: cfg.App.IsDevelopment(),
		Log:         zl,
		Metrics:     m,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Proman API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName:    cfg.App.Name,
		PropertyUC:     propertyUC,
		TenantUC:       tenantUC,
		InvoiceUC:      invoiceUC,
		ReceiptUC:      receiptUC,
		ExpenseUC:      expenseUC,
		InvoicePDF:     invoicePDFUC,
		Correspondence: corrSvc,
		Reports:        reportGen,
		Spreadsheet:    spreadsheet.NewExcelizeWriter(),
		SAFTExport:     saftUC,
		Metrics:        m,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
