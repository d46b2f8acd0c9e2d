package memory

import (
	"context"
	"maps"

	"github.com/jhoicas/proman-api/internal/application/billing"
	"github.com/jhoicas/proman-api/internal/domain/entity"
	"github.com/jhoicas/proman-api/internal/domain/repository"
)

var _ billing.BillingTxRunner = (*Store)(nil)

// RunBilling ejecuta fn con los repositorios de facturas y recibos. Las transacciones se
// serializan; si fn devuelve error se restauran facturas y recibos al estado previo.
func (s *Store) RunBilling(
	ctx context.Context,
	fn func(invoiceRepo repository.InvoiceRepository, receiptRepo repository.ReceiptRepository) error,
) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	invoices := make(map[string]entity.Invoice, len(s.invoices))
	for id, inv := range s.invoices {
		invoices[id] = *cloneInvoice(inv)
	}
	receipts := maps.Clone(s.receipts)
	s.mu.RUnlock()

	if err := fn(&InvoiceRepo{s: s}, &ReceiptRepo{s: s}); err != nil {
		s.mu.Lock()
		s.invoices = invoices
		s.receipts = receipts
		s.mu.Unlock()
		return err
	}
	return ctx.Err()
}
