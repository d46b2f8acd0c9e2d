package billing

import (
	"context"

	"github.com/jhoicas/proman-api/internal/domain/entity"
	"github.com/jhoicas/proman-api/internal/domain/repository"
)

// BillingTxRunner ejecuta fn en una transacción que abarca facturas y recibos.
// Si fn retorna error, nada de lo escrito dentro persiste.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		receiptRepo repository.ReceiptRepository,
	) error) error
}

// InvoicePDFGenerator genera la representación en PDF de una factura.
// property puede ser nil si la factura no está asociada a un inmueble.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		invoice *entity.Invoice,
		tenant *entity.Tenant,
		property *entity.Property,
	) ([]byte, error)
}
