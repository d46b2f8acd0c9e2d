package postgres

import (
	"context"

	"github.com/jhoicas/proman-api/internal/domain/entity"
	"github.com/jhoicas/proman-api/internal/domain/repository"
)

var _ repository.FinancialDataSource = (*FinancialDataSource)(nil)

// FinancialDataSource lecturas para reportes y SAF-T compuestas a partir de los repositorios.
type FinancialDataSource struct {
	properties *PropertyRepo
	tenants    *TenantRepo
	invoices   *InvoiceRepo
	receipts   *ReceiptRepo
	expenses   *ExpenseRepo
}

// NewFinancialDataSource construye el origen de datos sobre q (pool o tx).
func NewFinancialDataSource(q Querier) *FinancialDataSource {
	return &FinancialDataSource{
		properties: NewPropertyRepository(q),
		tenants:    NewTenantRepository(q),
		invoices:   NewInvoiceRepository(q),
		receipts:   NewReceiptRepository(q),
		expenses:   NewExpenseRepository(q),
	}
}

func (s *FinancialDataSource) ListReceipts(ctx context.Context, userID string, f repository.ReceiptFilter) ([]*entity.Receipt, error) {
	return s.receipts.List(ctx, userID, f)
}

func (s *FinancialDataSource) ListExpenses(ctx context.Context, userID string, f repository.ExpenseFilter) ([]*entity.Expense, error) {
	return s.expenses.List(ctx, userID, f)
}

func (s *FinancialDataSource) ListInvoices(ctx context.Context, userID string, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	return s.invoices.List(ctx, userID, f)
}

func (s *FinancialDataSource) ListTenants(ctx context.Context, userID string) ([]*entity.Tenant, error) {
	return s.tenants.List(ctx, userID)
}

func (s *FinancialDataSource) ListProperties(ctx context.Context, userID string) ([]*entity.Property, error) {
	return s.properties.List(ctx, userID)
}

// NewStore agrupa todos los repositorios sobre q.
func NewStore(q Querier) repository.Store {
	return repository.Store{
		Properties:      NewPropertyRepository(q),
		Tenants:         NewTenantRepository(q),
		Invoices:        NewInvoiceRepository(q),
		Receipts:        NewReceiptRepository(q),
		Expenses:        NewExpenseRepository(q),
		Templates:       NewTemplateRepository(q),
		Correspondences: NewCorrespondenceRepository(q),
		Financial:       NewFinancialDataSource(q),
	}
}
