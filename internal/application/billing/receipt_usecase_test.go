package billing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/proman-api/internal/application/dto"
	"github.com/jhoicas/proman-api/internal/domain"
	"github.com/jhoicas/proman-api/internal/domain/entity"
	"github.com/jhoicas/proman-api/internal/domain/repository"
)

func TestReceiptCreate(t *testing.T) {
	f := newFixture(t)
	uc := f.receipts()
	ctx := context.Background()

	out, err := uc.Create(ctx, userID, dto.CreateReceiptRequest{
		TenantID: "t-1", Amount: dec("1200"), Date: "2025-03-05", Type: entity.ReceiptTypeRent,
	})
	require.NoError(t, err)
	assert.Equal(t, "p-1", out.PropertyID)
	assert.Equal(t, entity.ReceiptStatusPaid, out.Status)

	// t-2 no tiene inmueble
	_, err = uc.Create(ctx, userID, dto.CreateReceiptRequest{
		TenantID: "t-2", Amount: dec("100"), Date: "2025-03-05", Type: entity.ReceiptTypeDeposit,
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, hasViolation(err, "property_id", "required"))

	_, err = uc.Create(ctx, userID, dto.CreateReceiptRequest{
		TenantID: "t-1", Amount: dec("-1"), Date: "2025-03-05", Type: "gift",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, hasViolation(err, "amount", "gt"))
	assert.True(t, hasViolation(err, "type", "oneof"))
}

func TestReceipt_UpdateListDelete(t *testing.T) {
	f := newFixture(t)
	uc := f.receipts()
	ctx := context.Background()

	r, err := uc.Create(ctx, userID, dto.CreateReceiptRequest{
		TenantID: "t-1", Amount: dec("1200"), Date: "2025-03-05", Type: entity.ReceiptTypeRent, Status: entity.ReceiptStatusPending,
	})
	require.NoError(t, err)

	status := entity.ReceiptStatusPaid
	upd, err := uc.Update(ctx, userID, r.ID, dto.UpdateReceiptRequest{Status: &status, Description: strPtr("<i>Renda</i>")})
	require.NoError(t, err)
	assert.Equal(t, entity.ReceiptStatusPaid, upd.Status)
	assert.Equal(t, "Renda", upd.Description)

	list, err := uc.List(ctx, userID, dto.ReceiptListRequest{Status: entity.ReceiptStatusPaid, StartDate: "2025-03-01", EndDate: "2025-03-31"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.Delete(ctx, userID, r.ID))
	assert.ErrorIs(t, uc.Delete(ctx, userID, r.ID), domain.ErrNotFound)
}

func TestCreateFromInvoice(t *testing.T) {
	f := newFixture(t)
	invoices := f.invoices()
	uc := f.receipts()
	ctx := context.Background()
	inv := createInvoice(t, invoices, "2025-03-08")

	rc, err := uc.CreateFromInvoice(ctx, userID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "1200.00", rc.Amount.StringFixed(2))
	assert.Equal(t, entity.ReceiptTypeRent, rc.Type)
	assert.Equal(t, "2025-03-20", rc.Date)
	assert.Equal(t, "Renda 03/2025", rc.Description)
	require.NotNil(t, rc.InvoiceID)
	assert.Equal(t, inv.ID, *rc.InvoiceID)

	got, err := invoices.Get(ctx, userID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, got.Status, "la factura queda pagada")

	_, err = uc.CreateFromInvoice(ctx, userID, inv.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "un solo recibo por factura")
}

func TestCreateFromInvoice_AnuladaOInexistente(t *testing.T) {
	f := newFixture(t)
	invoices := f.invoices()
	uc := f.receipts()
	ctx := context.Background()
	inv := createInvoice(t, invoices, "2025-03-08")
	_, err := invoices.Cancel(ctx, userID, inv.ID)
	require.NoError(t, err)

	_, err = uc.CreateFromInvoice(ctx, userID, inv.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.CreateFromInvoice(ctx, userID, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Un fallo dentro de la transacción no deja la factura marcada como pagada.
func TestRunBilling_Rollback(t *testing.T) {
	f := newFixture(t)
	inv := createInvoice(t, f.invoices(), "2025-03-08")
	ctx := context.Background()
	boom := errors.New("boom")

	err := f.store.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, receiptRepo repository.ReceiptRepository) error {
		got, err := invoiceRepo.GetByID(ctx, userID, inv.ID)
		require.NoError(t, err)
		got.Status = entity.InvoiceStatusPaid
		require.NoError(t, invoiceRepo.Update(ctx, got))
		require.NoError(t, receiptRepo.Create(ctx, &entity.Receipt{UserID: userID, TenantID: "t-1", Amount: dec("1")}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := f.repos.Invoices.GetByID(ctx, userID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPending, got.Status)

	receipts, err := f.repos.Receipts.List(ctx, userID, repository.ReceiptFilter{})
	require.NoError(t, err)
	assert.Empty(t, receipts)
}
