package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/proman-api/internal/application/billing"
	"github.com/jhoicas/proman-api/internal/application/correspondence"
	"github.com/jhoicas/proman-api/internal/application/property"
	"github.com/jhoicas/proman-api/internal/application/reports"
	appsaft "github.com/jhoicas/proman-api/internal/application/saft"
	"github.com/jhoicas/proman-api/internal/infrastructure/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName    string
	PropertyUC     *property.PropertyUseCase
	TenantUC       *property.TenantUseCase
	InvoiceUC      *billing.InvoiceUseCase
	ReceiptUC      *billing.ReceiptUseCase
	ExpenseUC      *billing.ExpenseUseCase
	InvoicePDF     *billing.PDFUseCase
	Correspondence *correspondence.Service
	Reports        *reports.Generator
	Spreadsheet    reports.SpreadsheetWriter
	SAFTExport     *appsaft.ExportUseCase
	Metrics        *metrics.Metrics // opcional
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	properties := protected.Group("/properties")
	propertyHandler := NewPropertyHandler(deps.PropertyUC)
	properties.Post("/", propertyHandler.Create)
	properties.Get("/", propertyHandler.List)
	properties.Get("/:id", propertyHandler.Get)
	properties.Put("/:id", propertyHandler.Update)
	properties.Delete("/:id", propertyHandler.Delete)

	tenants := protected.Group("/tenants")
	tenantHandler := NewTenantHandler(deps.TenantUC)
	tenants.Post("/", tenantHandler.Create)
	tenants.Get("/", tenantHandler.List)
	tenants.Get("/:id", tenantHandler.Get)
	tenants.Put("/:id", tenantHandler.Update)
	tenants.Delete("/:id", tenantHandler.Delete)

	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.ReceiptUC, deps.InvoicePDF)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/refresh-overdue", invoiceHandler.RefreshOverdue)
	invoices.Get("/:id", invoiceHandler.Get)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Post("/:id/pay", invoiceHandler.Pay)
	invoices.Post("/:id/cancel", invoiceHandler.Cancel)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Post("/:id/receipt", invoiceHandler.CreateReceipt)

	receipts := protected.Group("/receipts")
	receiptHandler := NewReceiptHandler(deps.ReceiptUC)
	receipts.Post("/", receiptHandler.Create)
	receipts.Get("/", receiptHandler.List)
	receipts.Get("/:id", receiptHandler.Get)
	receipts.Put("/:id", receiptHandler.Update)
	receipts.Delete("/:id", receiptHandler.Delete)

	expenses := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Get("/:id", expenseHandler.Get)
	expenses.Put("/:id", expenseHandler.Update)
	expenses.Delete("/:id", expenseHandler.Delete)

	corrHandler := NewCorrespondenceHandler(deps.Correspondence)
	templates := protected.Group("/templates")
	templates.Post("/", corrHandler.CreateTemplate)
	templates.Get("/", corrHandler.ListTemplates)
	templates.Get("/:id", corrHandler.GetTemplate)
	templates.Put("/:id", corrHandler.UpdateTemplate)
	templates.Delete("/:id", corrHandler.DeleteTemplate)

	corr := protected.Group("/correspondence")
	corr.Post("/", corrHandler.Generate)
	corr.Post("/preview", corrHandler.Preview)
	corr.Get("/", corrHandler.List)
	corr.Get("/:id", corrHandler.Get)
	corr.Post("/:id/sent", corrHandler.MarkSent)

	reportHandler := NewReportHandler(deps.Reports, deps.Spreadsheet, deps.Metrics)
	protected.Get("/reports/:type", reportHandler.Get)

	saft := protected.Group("/saft")
	saftHandler := NewSAFTHandler(deps.SAFTExport, deps.Metrics)
	saft.Post("/export", saftHandler.Export)
	saft.Post("/validate", saftHandler.Validate)
}
