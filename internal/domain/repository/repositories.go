package repository

import (
	"context"

	"github.com/jhoicas/proman-api/internal/domain/entity"
)

// PropertyRepository define el puerto de persistencia para Property.
type PropertyRepository interface {
	Create(ctx context.Context, p *entity.Property) error
	GetByID(ctx context.Context, userID, id string) (*entity.Property, error)
	List(ctx context.Context, userID string) ([]*entity.Property, error)
	Update(ctx context.Context, p *entity.Property) error
	Delete(ctx context.Context, userID, id string) error
}

// TenantRepository define el puerto de persistencia para Tenant.
type TenantRepository interface {
	Create(ctx context.Context, t *entity.Tenant) error
	GetByID(ctx context.Context, userID, id string) (*entity.Tenant, error)
	List(ctx context.Context, userID string) ([]*entity.Tenant, error)
	Update(ctx context.Context, t *entity.Tenant) error
	Delete(ctx context.Context, userID, id string) error
}

// ReceiptRepository define el puerto de persistencia para Receipt.
type ReceiptRepository interface {
	Create(ctx context.Context, r *entity.Receipt) error
	GetByID(ctx context.Context, userID, id string) (*entity.Receipt, error)
	List(ctx context.Context, userID string, filter ReceiptFilter) ([]*entity.Receipt, error)
	Update(ctx context.Context, r *entity.Receipt) error
	Delete(ctx context.Context, userID, id string) error
}

// ExpenseRepository define el puerto de persistencia para Expense.
type ExpenseRepository interface {
	Create(ctx context.Context, e *entity.Expense) error
	GetByID(ctx context.Context, userID, id string) (*entity.Expense, error)
	List(ctx context.Context, userID string, filter ExpenseFilter) ([]*entity.Expense, error)
	Update(ctx context.Context, e *entity.Expense) error
	Delete(ctx context.Context, userID, id string) error
}

// TemplateRepository define el puerto de persistencia para plantillas de correspondencia.
type TemplateRepository interface {
	Create(ctx context.Context, t *entity.CorrespondenceTemplate) error
	GetByID(ctx context.Context, userID, id string) (*entity.CorrespondenceTemplate, error)
	List(ctx context.Context, userID string) ([]*entity.CorrespondenceTemplate, error)
	Update(ctx context.Context, t *entity.CorrespondenceTemplate) error
	Delete(ctx context.Context, userID, id string) error
}

// CorrespondenceRepository define el puerto de persistencia para documentos generados.
type CorrespondenceRepository interface {
	Create(ctx context.Context, c *entity.Correspondence) error
	GetByID(ctx context.Context, userID, id string) (*entity.Correspondence, error)
	List(ctx context.Context, userID string) ([]*entity.Correspondence, error)
	Update(ctx context.Context, c *entity.Correspondence) error
}

// Store agrupa todos los repositorios de una implementación concreta (postgres o memoria).
type Store struct {
	Properties      PropertyRepository
	Tenants         TenantRepository
	Invoices        InvoiceRepository
	Receipts        ReceiptRepository
	Expenses        ExpenseRepository
	Templates       TemplateRepository
	Correspondences CorrespondenceRepository
	Financial       FinancialDataSource
}
