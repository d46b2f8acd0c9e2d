// Package memory implementa los repositorios y el FinancialDataSource en memoria.
// Se usa con DATA_MODE=memory (demo) y en los tests de casos de uso.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/proman-api/internal/domain"
	"github.com/jhoicas/proman-api/internal/domain/entity"
	"github.com/jhoicas/proman-api/internal/domain/repository"
)

var _ repository.FinancialDataSource = (*Store)(nil)

// Store guarda todas las entidades en mapas protegidos por un RWMutex.
// Las entidades se copian al entrar y al salir; nadie comparte punteros con el almacén.
type Store struct {
	mu              sync.RWMutex
	txMu            sync.Mutex // serializa RunBilling
	properties      map[string]entity.Property
	tenants         map[string]entity.Tenant
	invoices        map[string]entity.Invoice
	receipts        map[string]entity.Receipt
	expenses        map[string]entity.Expense
	templates       map[string]entity.CorrespondenceTemplate
	correspondences map[string]entity.Correspondence
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		properties:      map[string]entity.Property{},
		tenants:         map[string]entity.Tenant{},
		invoices:        map[string]entity.Invoice{},
		receipts:        map[string]entity.Receipt{},
		expenses:        map[string]entity.Expense{},
		templates:       map[string]entity.CorrespondenceTemplate{},
		correspondences: map[string]entity.Correspondence{},
	}
}

// Repositories expone el almacén como repository.Store.
func (s *Store) Repositories() repository.Store {
	return repository.Store{
		Properties:      &PropertyRepo{s: s},
		Tenants:         &TenantRepo{s: s},
		Invoices:        &InvoiceRepo{s: s},
		Receipts:        &ReceiptRepo{s: s},
		Expenses:        &ExpenseRepo{s: s},
		Templates:       &TemplateRepo{s: s},
		Correspondences: &CorrespondenceRepo{s: s},
		Financial:       s,
	}
}

func newID(id string) string {
	if id == "" {
		return uuid.New().String()
	}
	return id
}

func cloneInvoice(inv entity.Invoice) *entity.Invoice {
	if inv.LineItems != nil {
		items := make([]entity.LineItem, len(inv.LineItems))
		copy(items, inv.LineItems)
		inv.LineItems = items
	}
	return &inv
}

func cloneTemplate(t entity.CorrespondenceTemplate) *entity.CorrespondenceTemplate {
	if t.Variables != nil {
		vars := make([]string, len(t.Variables))
		copy(vars, t.Variables)
		t.Variables = vars
	}
	return &t
}

// ── FinancialDataSource ─────────────────────────────────────────────────────

// ListReceipts recibos del usuario que cumplen el filtro, por fecha e ID.
func (s *Store) ListReceipts(ctx context.Context, userID string, f repository.ReceiptFilter) ([]*entity.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.DatabaseError("memory: listar recibos", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Receipt, 0)
	for _, r := range s.receipts {
		if r.UserID != userID || !f.Range.Contains(r.Date) {
			continue
		}
		if (f.Status != "" && r.Status != f.Status) || (f.Type != "" && r.Type != f.Type) || (f.TenantID != "" && r.TenantID != f.TenantID) {
			continue
		}
		r := r
		out = append(out, &r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ListExpenses gastos del usuario que cumplen el filtro, por fecha e ID.
func (s *Store) ListExpenses(ctx context.Context, userID string, f repository.ExpenseFilter) ([]*entity.Expense, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.DatabaseError("memory: listar gastos", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Expense, 0)
	for _, e := range s.expenses {
		if e.UserID != userID || !f.Range.Contains(e.Date) {
			continue
		}
		if (f.PropertyID != "" && e.PropertyID != f.PropertyID) || (f.Category != "" && e.Category != f.Category) {
			continue
		}
		e := e
		out = append(out, &e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ListInvoices facturas del usuario; el rango se aplica sobre DueDate o IssueDate según el filtro.
func (s *Store) ListInvoices(ctx context.Context, userID string, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.DatabaseError("memory: listar facturas", err)
	}
	byIssue := f.DateField == repository.InvoiceByIssueDate
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Invoice, 0)
	for _, inv := range s.invoices {
		if inv.UserID != userID {
			continue
		}
		d := inv.DueDate
		if byIssue {
			d = inv.IssueDate
		}
		if !f.Range.Contains(d) {
			continue
		}
		if (f.Status != "" && inv.Status != f.Status) || (f.TenantID != "" && inv.TenantID != f.TenantID) {
			continue
		}
		out = append(out, cloneInvoice(inv))
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].DueDate, out[j].DueDate
		if byIssue {
			di, dj = out[i].IssueDate, out[j].IssueDate
		}
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ListTenants inquilinos del usuario por nombre e ID.
func (s *Store) ListTenants(ctx context.Context, userID string) ([]*entity.Tenant, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.DatabaseError("memory: listar inquilinos", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Tenant, 0)
	for _, t := range s.tenants {
		if t.UserID == userID {
			t := t
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ListProperties inmuebles del usuario por nombre e ID.
func (s *Store) ListProperties(ctx context.Context, userID string) ([]*entity.Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.DatabaseError("memory: listar inmuebles", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Property, 0)
	for _, p := range s.properties {
		if p.UserID == userID {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
