package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/proman-api/internal/domain"
	"github.com/jhoicas/proman-api/internal/domain/entity"
	"github.com/jhoicas/proman-api/internal/domain/repository"
	"github.com/jhoicas/proman-api/internal/infrastructure/memory"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStore_ListReceipts_OrdenYFiltros(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	repos := s.Repositories()

	for _, r := range []entity.Receipt{
		{ID: "b", UserID: "u1", Amount: decimal.NewFromInt(10), Date: day(2025, 2, 1), Status: entity.ReceiptStatusPaid},
		{ID: "a", UserID: "u1", Amount: decimal.NewFromInt(20), Date: day(2025, 2, 1), Status: entity.ReceiptStatusPaid},
		{ID: "c", UserID: "u1", Amount: decimal.NewFromInt(30), Date: day(2025, 1, 5), Status: entity.ReceiptStatusPending},
		{ID: "d", UserID: "u2", Amount: decimal.NewFromInt(40), Date: day(2025, 1, 5), Status: entity.ReceiptStatusPaid},
	} {
		r := r
		require.NoError(t, repos.Receipts.Create(ctx, &r))
	}

	all, err := s.ListReceipts(ctx, "u1", repository.ReceiptFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{all[0].ID, all[1].ID, all[2].ID})

	paid, err := s.ListReceipts(ctx, "u1", repository.ReceiptFilter{
		Status: entity.ReceiptStatusPaid,
		Range:  repository.DateRange{From: day(2025, 2, 1), To: day(2025, 2, 28)},
	})
	require.NoError(t, err)
	assert.Len(t, paid, 2)
}

func TestStore_AislamientoPorUsuario(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repositories()

	p := &entity.Property{UserID: "u1", Name: "T1"}
	require.NoError(t, repos.Properties.Create(ctx, p))
	require.NotEmpty(t, p.ID)

	got, err := repos.Properties.GetByID(ctx, "u2", p.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "otro usuario no ve el inmueble")

	err = repos.Properties.Delete(ctx, "u2", p.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestStore_CopiaDefensivaDeLineas(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repositories()

	inv := &entity.Invoice{UserID: "u1", LineItems: []entity.LineItem{{Description: "Renda"}}}
	require.NoError(t, repos.Invoices.Create(ctx, inv))
	inv.LineItems[0].Description = "alterado"

	got, err := repos.Invoices.GetByID(ctx, "u1", inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renda", got.LineItems[0].Description)
}

func TestStore_ListInvoices_PorFechaDeEmision(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	repos := s.Repositories()
	require.NoError(t, repos.Invoices.Create(ctx, &entity.Invoice{ID: "i1", UserID: "u1", IssueDate: day(2025, 3, 31), DueDate: day(2025, 4, 8)}))
	require.NoError(t, repos.Invoices.Create(ctx, &entity.Invoice{ID: "i2", UserID: "u1", IssueDate: day(2025, 4, 1), DueDate: day(2025, 4, 8)}))

	q1 := repository.DateRange{From: day(2025, 1, 1), To: day(2025, 3, 31)}
	byIssue, err := s.ListInvoices(ctx, "u1", repository.InvoiceFilter{DateField: repository.InvoiceByIssueDate, Range: q1})
	require.NoError(t, err)
	require.Len(t, byIssue, 1)
	assert.Equal(t, "i1", byIssue[0].ID)

	byDue, err := s.ListInvoices(ctx, "u1", repository.InvoiceFilter{Range: q1})
	require.NoError(t, err)
	assert.Empty(t, byDue)
}

func TestStore_SeedDemo_Determinista(t *testing.T) {
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	a, b := memory.NewStore(), memory.NewStore()
	a.SeedDemo(memory.DemoUserID, now)
	b.SeedDemo(memory.DemoUserID, now)

	ctx := context.Background()
	ia, err := a.ListInvoices(ctx, memory.DemoUserID, repository.InvoiceFilter{})
	require.NoError(t, err)
	ib, err := b.ListInvoices(ctx, memory.DemoUserID, repository.InvoiceFilter{})
	require.NoError(t, err)
	assert.Equal(t, ia, ib)
	assert.Len(t, ia, 6, "3 meses x 2 inquilinos")

	rc, err := a.ListReceipts(ctx, memory.DemoUserID, repository.ReceiptFilter{})
	require.NoError(t, err)
	assert.Len(t, rc, 4, "enero y febrero pagados")
}
