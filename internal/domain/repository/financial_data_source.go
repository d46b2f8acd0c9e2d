package repository

import (
	"context"

	"github.com/jhoicas/proman-api/internal/domain/entity"
)

// FinancialDataSource consultas de solo lectura que alimentan reportes y exportación SAF-T.
// Hay una implementación en memoria y otra sobre PostgreSQL; se elige una vez al arrancar.
//
// Los listados vienen ordenados por fecha ascendente y luego por ID, de modo que
// dos lecturas sin escrituras intermedias devuelven exactamente la misma secuencia.
type FinancialDataSource interface {
	ListReceipts(ctx context.Context, userID string, filter ReceiptFilter) ([]*entity.Receipt, error)
	ListExpenses(ctx context.Context, userID string, filter ExpenseFilter) ([]*entity.Expense, error)
	ListInvoices(ctx context.Context, userID string, filter InvoiceFilter) ([]*entity.Invoice, error)
	// ListTenants ordena por nombre y luego por ID.
	ListTenants(ctx context.Context, userID string) ([]*entity.Tenant, error)
	// ListProperties ordena por nombre y luego por ID.
	ListProperties(ctx context.Context, userID string) ([]*entity.Property, error)
}
