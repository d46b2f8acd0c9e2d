package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/proman-api/internal/application/billing"
	"github.com/jhoicas/proman-api/internal/application/dto"
	"github.com/jhoicas/proman-api/internal/application/validation"
	"github.com/jhoicas/proman-api/internal/domain"
	"github.com/jhoicas/proman-api/internal/domain/entity"
	"github.com/jhoicas/proman-api/internal/domain/repository"
	"github.com/jhoicas/proman-api/internal/infrastructure/memory"
)

const userID = "u-1"

func fixedNow() time.Time { return time.Date(2025, 3, 20, 10, 30, 0, 0, time.UTC) }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strPtr(s string) *string { return &s }

// fixture: un inmueble y un inquilino asignado.
type fixture struct {
	store *memory.Store
	repos repository.Store
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	st := memory.NewStore()
	repos := st.Repositories()
	require.NoError(t, repos.Properties.Create(ctx, &entity.Property{ID: "p-1", UserID: userID, Name: "Alfama"}))
	require.NoError(t, repos.Tenants.Create(ctx, &entity.Tenant{
		ID: "t-1", UserID: userID, PropertyID: strPtr("p-1"), Name: "Ana",
		Rent: dec("1200"), LeaseStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, repos.Tenants.Create(ctx, &entity.Tenant{
		ID: "t-2", UserID: userID, Name: "Rui", LeaseStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}))
	return fixture{store: st, repos: repos}
}

func (f fixture) invoices() *billing.InvoiceUseCase {
	return billing.NewInvoiceUseCase(f.repos.Invoices, f.repos.Tenants, f.store, validation.New(), zerolog.Nop()).WithClock(fixedNow)
}

func (f fixture) receipts() *billing.ReceiptUseCase {
	return billing.NewReceiptUseCase(f.repos.Receipts, f.repos.Tenants, f.repos.Invoices, f.store, validation.New()).WithClock(fixedNow)
}

func (f fixture) expenses() *billing.ExpenseUseCase {
	return billing.NewExpenseUseCase(f.repos.Expenses, f.repos.Properties, validation.New()).WithClock(fixedNow)
}

func createInvoice(t *testing.T, uc *billing.InvoiceUseCase, due string) *dto.InvoiceResponse {
	t.Helper()
	out, err := uc.Create(context.Background(), userID, dto.CreateInvoiceRequest{
		TenantID: "t-1", Amount: dec("1200"), IssueDate: "2025-03-01", DueDate: due,
	})
	require.NoError(t, err)
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Create
// ─────────────────────────────────────────────────────────────────────────────

func TestInvoiceCreate_PorDefecto(t *testing.T) {
	f := newFixture(t)
	out, err := f.invoices().Create(context.Background(), userID, dto.CreateInvoiceRequest{
		TenantID: "t-1", Amount: dec("1200"), DueDate: "2025-03-28", Description: "  Renda <b>março</b> ",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, entity.InvoiceStatusPending, out.Status)
	assert.Equal(t, "2025-03-20", out.IssueDate, "emisión por defecto hoy")
	require.NotNil(t, out.PropertyID)
	assert.Equal(t, "p-1", *out.PropertyID, "inmueble heredado del inquilino")
	assert.Equal(t, "Renda março", out.Description)
	assert.Nil(t, out.PaidDate)
}

func TestInvoiceCreate_ConLineas(t *testing.T) {
	f := newFixture(t)
	out, err := f.invoices().Create(context.Background(), userID, dto.CreateInvoiceRequest{
		TenantID: "t-1", IssueDate: "2025-03-01", DueDate: "2025-03-08",
		LineItems: []dto.LineItemRequest{
			{Description: "Renda", Quantity: dec("1"), UnitPrice: dec("1100")},
			{Description: "Condomínio", Quantity: dec("2"), UnitPrice: dec("50.005")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "1200.01", out.Amount.StringFixed(2))
	require.Len(t, out.LineItems, 2)
	assert.Equal(t, "100.01", out.LineItems[1].Total.StringFixed(2))
}

func TestInvoiceCreate_Validaciones(t *testing.T) {
	f := newFixture(t)
	uc := f.invoices()
	ctx := context.Background()

	t.Run("importe distinto de la suma de líneas", func(t *testing.T) {
		_, err := uc.Create(ctx, userID, dto.CreateInvoiceRequest{
			TenantID: "t-1", Amount: dec("999"), DueDate: "2025-03-28",
			LineItems: []dto.LineItemRequest{{Description: "Renda", Quantity: dec("1"), UnitPrice: dec("1200")}},
		})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Equal(t, "line_items_total", domain.Violations(err)[0].Rule)
	})

	t.Run("sin importe ni líneas", func(t *testing.T) {
		_, err := uc.Create(ctx, userID, dto.CreateInvoiceRequest{TenantID: "t-1", DueDate: "2025-03-28"})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.True(t, hasViolation(err, "amount", "required"))
	})

	t.Run("vencimiento anterior a la emisión", func(t *testing.T) {
		_, err := uc.Create(ctx, userID, dto.CreateInvoiceRequest{
			TenantID: "t-1", Amount: dec("10"), IssueDate: "2025-03-10", DueDate: "2025-03-09",
		})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.True(t, hasViolation(err, "due_date", "gtefield"))
	})

	t.Run("varias violaciones a la vez", func(t *testing.T) {
		_, err := uc.Create(ctx, userID, dto.CreateInvoiceRequest{DueDate: "28/03/2025"})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.True(t, hasViolation(err, "tenant_id", "required"))
		assert.True(t, hasViolation(err, "due_date", "ymd"))
		assert.True(t, hasViolation(err, "amount", "required"))
	})

	t.Run("inquilino inexistente", func(t *testing.T) {
		_, err := uc.Create(ctx, userID, dto.CreateInvoiceRequest{TenantID: "nope", Amount: dec("10"), DueDate: "2025-03-28"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("inquilino de otro usuario", func(t *testing.T) {
		_, err := uc.Create(ctx, "otro", dto.CreateInvoiceRequest{TenantID: "t-1", Amount: dec("10"), DueDate: "2025-03-28"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func hasViolation(err error, field, rule string) bool {
	for _, v := range domain.Violations(err) {
		if v.Field == field && v.Rule == rule {
			return true
		}
	}
	return false
}

// ─────────────────────────────────────────────────────────────────────────────
// Transiciones
// ─────────────────────────────────────────────────────────────────────────────

func TestInvoice_MarkPaidYTerminal(t *testing.T) {
	f := newFixture(t)
	uc := f.invoices()
	ctx := context.Background()
	inv := createInvoice(t, uc, "2025-03-08")

	paid, err := uc.MarkPaid(ctx, userID, inv.ID, dto.MarkPaidRequest{})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidDate)
	assert.Equal(t, "2025-03-20", *paid.PaidDate)

	_, err = uc.Cancel(ctx, userID, inv.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Update(ctx, userID, inv.ID, dto.UpdateInvoiceRequest{Description: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrConflict)

	assert.ErrorIs(t, uc.Delete(ctx, userID, inv.ID), domain.ErrConflict)
}

func TestInvoice_MarkPaidConFecha(t *testing.T) {
	f := newFixture(t)
	uc := f.invoices()
	inv := createInvoice(t, uc, "2025-03-08")

	paid, err := uc.MarkPaid(context.Background(), userID, inv.ID, dto.MarkPaidRequest{PaidDate: "2025-03-07"})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-07", *paid.PaidDate)
}

func TestInvoice_CancelYBorrado(t *testing.T) {
	f := newFixture(t)
	uc := f.invoices()
	ctx := context.Background()
	inv := createInvoice(t, uc, "2025-03-08")

	cancelled, err := uc.Cancel(ctx, userID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusCancelled, cancelled.Status)

	_, err = uc.MarkPaid(ctx, userID, inv.ID, dto.MarkPaidRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, uc.Delete(ctx, userID, inv.ID))
	_, err = uc.Get(ctx, userID, inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoice_RefreshOverdue(t *testing.T) {
	f := newFixture(t)
	uc := f.invoices()
	ctx := context.Background()
	late := createInvoice(t, uc, "2025-03-08")
	createInvoice(t, uc, "2025-03-20") // vence hoy: no está vencida
	paid := createInvoice(t, uc, "2025-03-01")
	_, err := uc.MarkPaid(ctx, userID, paid.ID, dto.MarkPaidRequest{})
	require.NoError(t, err)

	n, err := uc.RefreshOverdue(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := uc.Get(ctx, userID, late.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusOverdue, got.Status)

	n, err = uc.RefreshOverdue(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, n, "segunda pasada sin cambios")

	// overdue → paid sigue permitido
	_, err = uc.MarkPaid(ctx, userID, late.ID, dto.MarkPaidRequest{})
	assert.NoError(t, err)
}

func TestInvoice_Update(t *testing.T) {
	f := newFixture(t)
	uc := f.invoices()
	ctx := context.Background()
	inv := createInvoice(t, uc, "2025-03-08")

	items := []dto.LineItemRequest{{Description: "Renda", Quantity: dec("1"), UnitPrice: dec("1250")}}
	out, err := uc.Update(ctx, userID, inv.ID, dto.UpdateInvoiceRequest{LineItems: &items, Number: strPtr("FT A/9")})
	require.NoError(t, err)
	assert.Equal(t, "1250.00", out.Amount.StringFixed(2))
	assert.Equal(t, "FT A/9", out.Number)

	_, err = uc.Update(ctx, userID, inv.ID, dto.UpdateInvoiceRequest{Amount: decPtr("10")})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, hasViolation(err, "amount", "line_items_total"))

	_, err = uc.Update(ctx, userID, inv.ID, dto.UpdateInvoiceRequest{DueDate: strPtr("2025-02-01")})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, hasViolation(err, "due_date", "gtefield"))
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestInvoice_List(t *testing.T) {
	f := newFixture(t)
	uc := f.invoices()
	ctx := context.Background()
	createInvoice(t, uc, "2025-03-08")
	createInvoice(t, uc, "2025-04-08")

	list, err := uc.List(ctx, userID, dto.InvoiceListRequest{StartDate: "2025-04-01", EndDate: "2025-04-08"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2025-04-08", list[0].DueDate)

	_, err = uc.List(ctx, userID, dto.InvoiceListRequest{StartDate: "2025-05-01", EndDate: "2025-04-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.List(ctx, userID, dto.InvoiceListRequest{Status: "draft"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestInvoiceCreate_LineasQueRedondeanACero(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.invoices().Create(ctx, userID, dto.CreateInvoiceRequest{
		TenantID: "t-1", DueDate: "2025-03-28",
		LineItems: []dto.LineItemRequest{{Description: "Ajuste", Quantity: dec("0.001"), UnitPrice: dec("1")}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, hasViolation(err, "line_items", "gt"))

	list, err := f.repos.Invoices.List(ctx, userID, repository.InvoiceFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

// errLineas simula un fallo al escribir las líneas después de la cabecera.
var errLineas = errors.New("insertar líneas: conexión perdida")

// linesFailTx ejecuta la transacción del store con un repo de facturas que escribe y luego falla.
type linesFailTx struct{ store *memory.Store }

func (tx linesFailTx) RunBilling(
	ctx context.Context,
	fn func(invoiceRepo repository.InvoiceRepository, receiptRepo repository.ReceiptRepository) error,
) error {
	return tx.store.RunBilling(ctx, func(inv repository.InvoiceRepository, rc repository.ReceiptRepository) error {
		return fn(linesFailRepo{InvoiceRepository: inv}, rc)
	})
}

type linesFailRepo struct{ repository.InvoiceRepository }

func (r linesFailRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	if err := r.InvoiceRepository.Create(ctx, inv); err != nil {
		return err
	}
	return errLineas
}

func (r linesFailRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	if err := r.InvoiceRepository.Update(ctx, inv); err != nil {
		return err
	}
	return errLineas
}

func TestInvoice_EscriturasFallidasSeDeshacen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv, err := f.invoices().Create(ctx, userID, dto.CreateInvoiceRequest{
		TenantID: "t-1", IssueDate: "2025-03-01", DueDate: "2025-03-08",
		LineItems: []dto.LineItemRequest{{Description: "Renda", Quantity: dec("1"), UnitPrice: dec("1200")}},
	})
	require.NoError(t, err)

	failing := billing.NewInvoiceUseCase(f.repos.Invoices, f.repos.Tenants, linesFailTx{store: f.store},
		validation.New(), zerolog.Nop()).WithClock(fixedNow)

	t.Run("create", func(t *testing.T) {
		_, err := failing.Create(ctx, userID, dto.CreateInvoiceRequest{
			TenantID: "t-1", Amount: dec("50"), DueDate: "2025-03-28",
		})
		require.ErrorIs(t, err, errLineas)
		list, err := f.repos.Invoices.List(ctx, userID, repository.InvoiceFilter{})
		require.NoError(t, err)
		assert.Len(t, list, 1, "solo queda la factura inicial")
	})

	t.Run("update", func(t *testing.T) {
		items := []dto.LineItemRequest{
			{Description: "Renda", Quantity: dec("1"), UnitPrice: dec("1250")},
			{Description: "Água", Quantity: dec("1"), UnitPrice: dec("30")},
		}
		_, err := failing.Update(ctx, userID, inv.ID, dto.UpdateInvoiceRequest{LineItems: &items})
		require.ErrorIs(t, err, errLineas)

		got, err := f.repos.Invoices.GetByID(ctx, userID, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, "1200.00", got.Amount.StringFixed(2))
		require.Len(t, got.LineItems, 1)
		assert.True(t, got.Amount.Equal(got.LineItemsTotal()))
	})

	t.Run("transiciones", func(t *testing.T) {
		_, err := failing.MarkPaid(ctx, userID, inv.ID, dto.MarkPaidRequest{})
		require.ErrorIs(t, err, errLineas)
		n, err := failing.RefreshOverdue(ctx, userID)
		require.ErrorIs(t, err, errLineas)
		assert.Zero(t, n)

		got, err := f.repos.Invoices.GetByID(ctx, userID, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.InvoiceStatusPending, got.Status)
		assert.Nil(t, got.PaidDate)
	})
}
