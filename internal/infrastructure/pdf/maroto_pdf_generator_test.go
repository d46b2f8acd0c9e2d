package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/proman-api/internal/domain/entity"
	"github.com/jhoicas/proman-api/internal/infrastructure/pdf"
)

func sampleInvoice() *entity.Invoice {
	li := entity.LineItem{Description: "Renda março", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("1200")}
	li.ComputeTotal()
	paid := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	return &entity.Invoice{
		ID:        "inv-1",
		TenantID:  "t-1",
		Number:    "FT A/7",
		Amount:    decimal.RequireFromString("1200"),
		IssueDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:   time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC),
		Status:    entity.InvoiceStatusPaid,
		LineItems: []entity.LineItem{li},
		PaidDate:  &paid,
	}
}

func TestGenerateInvoicePDF(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator()
	tenant := &entity.Tenant{ID: "t-1", Name: "Ana Silva", NIF: "123456789", Email: "ana@example.pt"}
	prop := &entity.Property{ID: "p-1", Name: "Alfama T2", Address: "Rua da Regueira 12", City: "Lisboa", PostalCode: "1100-440"}

	out, err := g.GenerateInvoicePDF(context.Background(), sampleInvoice(), tenant, prop)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un PDF")
}

func TestGenerateInvoicePDF_SinLineasNiInmueble(t *testing.T) {
	inv := sampleInvoice()
	inv.LineItems = nil
	inv.Number = ""
	inv.PaidDate = nil
	inv.Status = entity.InvoiceStatusPending

	out, err := pdf.NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), inv, &entity.Tenant{ID: "t-1", Name: "Rui"}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
