package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/proman-api/internal/domain"
	"github.com/jhoicas/proman-api/internal/domain/entity"
	"github.com/jhoicas/proman-api/internal/domain/repository"
)

var (
	_ repository.PropertyRepository       = (*PropertyRepo)(nil)
	_ repository.TenantRepository         = (*TenantRepo)(nil)
	_ repository.InvoiceRepository        = (*InvoiceRepo)(nil)
	_ repository.ReceiptRepository        = (*ReceiptRepo)(nil)
	_ repository.ExpenseRepository        = (*ExpenseRepo)(nil)
	_ repository.TemplateRepository       = (*TemplateRepo)(nil)
	_ repository.CorrespondenceRepository = (*CorrespondenceRepo)(nil)
)

// ── Property ────────────────────────────────────────────────────────────────

// PropertyRepo repositorio de inmuebles en memoria.
type PropertyRepo struct{ s *Store }

func (r *PropertyRepo) Create(_ context.Context, p *entity.Property) error {
	p.ID = newID(p.ID)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.properties[p.ID] = *p
	return nil
}

func (r *PropertyRepo) GetByID(_ context.Context, userID, id string) (*entity.Property, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.properties[id]
	if !ok || p.UserID != userID {
		return nil, nil
	}
	return &p, nil
}

func (r *PropertyRepo) List(ctx context.Context, userID string) ([]*entity.Property, error) {
	return r.s.ListProperties(ctx, userID)
}

func (r *PropertyRepo) Update(_ context.Context, p *entity.Property) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.properties[p.ID]
	if !ok || cur.UserID != p.UserID {
		return domain.ErrNotFound
	}
	r.s.properties[p.ID] = *p
	return nil
}

func (r *PropertyRepo) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.properties[id]
	if !ok || cur.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.s.properties, id)
	return nil
}

// ── Tenant ──────────────────────────────────────────────────────────────────

// TenantRepo repositorio de inquilinos en memoria.
type TenantRepo struct{ s *Store }

func (r *TenantRepo) Create(_ context.Context, t *entity.Tenant) error {
	t.ID = newID(t.ID)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.tenants[t.ID] = *t
	return nil
}

func (r *TenantRepo) GetByID(_ context.Context, userID, id string) (*entity.Tenant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tenants[id]
	if !ok || t.UserID != userID {
		return nil, nil
	}
	return &t, nil
}

func (r *TenantRepo) List(ctx context.Context, userID string) ([]*entity.Tenant, error) {
	return r.s.ListTenants(ctx, userID)
}

func (r *TenantRepo) Update(_ context.Context, t *entity.Tenant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.tenants[t.ID]
	if !ok || cur.UserID != t.UserID {
		return domain.ErrNotFound
	}
	r.s.tenants[t.ID] = *t
	return nil
}

func (r *TenantRepo) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.tenants[id]
	if !ok || cur.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.s.tenants, id)
	return nil
}

// ── Invoice ─────────────────────────────────────────────────────────────────

// InvoiceRepo repositorio de facturas en memoria.
type InvoiceRepo struct{ s *Store }

func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	inv.ID = newID(inv.ID)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.invoices[inv.ID] = *cloneInvoice(*inv)
	return nil
}

func (r *InvoiceRepo) GetByID(_ context.Context, userID, id string) (*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	inv, ok := r.s.invoices[id]
	if !ok || inv.UserID != userID {
		return nil, nil
	}
	return cloneInvoice(inv), nil
}

func (r *InvoiceRepo) List(ctx context.Context, userID string, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	return r.s.ListInvoices(ctx, userID, f)
}

func (r *InvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.invoices[inv.ID]
	if !ok || cur.UserID != inv.UserID {
		return domain.ErrNotFound
	}
	r.s.invoices[inv.ID] = *cloneInvoice(*inv)
	return nil
}

func (r *InvoiceRepo) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.invoices[id]
	if !ok || cur.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.s.invoices, id)
	return nil
}

// ── Receipt ─────────────────────────────────────────────────────────────────

// ReceiptRepo repositorio de recibos en memoria.
type ReceiptRepo struct{ s *Store }

func (r *ReceiptRepo) Create(_ context.Context, rc *entity.Receipt) error {
	rc.ID = newID(rc.ID)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.receipts[rc.ID] = *rc
	return nil
}

func (r *ReceiptRepo) GetByID(_ context.Context, userID, id string) (*entity.Receipt, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rc, ok := r.s.receipts[id]
	if !ok || rc.UserID != userID {
		return nil, nil
	}
	return &rc, nil
}

func (r *ReceiptRepo) List(ctx context.Context, userID string, f repository.ReceiptFilter) ([]*entity.Receipt, error) {
	return r.s.ListReceipts(ctx, userID, f)
}

func (r *ReceiptRepo) Update(_ context.Context, rc *entity.Receipt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.receipts[rc.ID]
	if !ok || cur.UserID != rc.UserID {
		return domain.ErrNotFound
	}
	r.s.receipts[rc.ID] = *rc
	return nil
}

func (r *ReceiptRepo) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.receipts[id]
	if !ok || cur.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.s.receipts, id)
	return nil
}

// ── Expense ─────────────────────────────────────────────────────────────────

// ExpenseRepo repositorio de gastos en memoria.
type ExpenseRepo struct{ s *Store }

func (r *ExpenseRepo) Create(_ context.Context, e *entity.Expense) error {
	e.ID = newID(e.ID)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.expenses[e.ID] = *e
	return nil
}

func (r *ExpenseRepo) GetByID(_ context.Context, userID, id string) (*entity.Expense, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.expenses[id]
	if !ok || e.UserID != userID {
		return nil, nil
	}
	return &e, nil
}

func (r *ExpenseRepo) List(ctx context.Context, userID string, f repository.ExpenseFilter) ([]*entity.Expense, error) {
	return r.s.ListExpenses(ctx, userID, f)
}

func (r *ExpenseRepo) Update(_ context.Context, e *entity.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.expenses[e.ID]
	if !ok || cur.UserID != e.UserID {
		return domain.ErrNotFound
	}
	r.s.expenses[e.ID] = *e
	return nil
}

func (r *ExpenseRepo) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.expenses[id]
	if !ok || cur.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.s.expenses, id)
	return nil
}

// ── Templates / Correspondence ──────────────────────────────────────────────

// TemplateRepo repositorio de plantillas en memoria.
type TemplateRepo struct{ s *Store }

func (r *TemplateRepo) Create(_ context.Context, t *entity.CorrespondenceTemplate) error {
	t.ID = newID(t.ID)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.templates[t.ID] = *cloneTemplate(*t)
	return nil
}

func (r *TemplateRepo) GetByID(_ context.Context, userID, id string) (*entity.CorrespondenceTemplate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.templates[id]
	if !ok || t.UserID != userID {
		return nil, nil
	}
	return cloneTemplate(t), nil
}

func (r *TemplateRepo) List(_ context.Context, userID string) ([]*entity.CorrespondenceTemplate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.CorrespondenceTemplate, 0)
	for _, t := range r.s.templates {
		if t.UserID == userID {
			out = append(out, cloneTemplate(t))
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

func (r *TemplateRepo) Update(_ context.Context, t *entity.CorrespondenceTemplate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.templates[t.ID]
	if !ok || cur.UserID != t.UserID {
		return domain.ErrNotFound
	}
	r.s.templates[t.ID] = *cloneTemplate(*t)
	return nil
}

func (r *TemplateRepo) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.templates[id]
	if !ok || cur.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.s.templates, id)
	return nil
}

// CorrespondenceRepo repositorio de documentos generados en memoria.
type CorrespondenceRepo struct{ s *Store }

func (r *CorrespondenceRepo) Create(_ context.Context, c *entity.Correspondence) error {
	c.ID = newID(c.ID)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.correspondences[c.ID] = *c
	return nil
}

func (r *CorrespondenceRepo) GetByID(_ context.Context, userID, id string) (*entity.Correspondence, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.correspondences[id]
	if !ok || c.UserID != userID {
		return nil, nil
	}
	return &c, nil
}

func (r *CorrespondenceRepo) List(_ context.Context, userID string) ([]*entity.Correspondence, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Correspondence, 0)
	for _, c := range r.s.correspondences {
		if c.UserID == userID {
			c := c
			out = append(out, &c)
		}
	}
	// más recientes primero
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *CorrespondenceRepo) Update(_ context.Context, c *entity.Correspondence) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.correspondences[c.ID]
	if !ok || cur.UserID != c.UserID {
		return domain.ErrNotFound
	}
	r.s.correspondences[c.ID] = *c
	return nil
}
