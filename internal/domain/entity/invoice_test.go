package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/proman-api/internal/domain/entity"
)

func TestInvoice_CanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{entity.InvoiceStatusPending, entity.InvoiceStatusPaid, true},
		{entity.InvoiceStatusPending, entity.InvoiceStatusOverdue, true},
		{entity.InvoiceStatusPending, entity.InvoiceStatusCancelled, true},
		{entity.InvoiceStatusOverdue, entity.InvoiceStatusPaid, true},
		{entity.InvoiceStatusOverdue, entity.InvoiceStatusCancelled, true},
		{entity.InvoiceStatusOverdue, entity.InvoiceStatusPending, false},
		{entity.InvoiceStatusPaid, entity.InvoiceStatusCancelled, false},
		{entity.InvoiceStatusPaid, entity.InvoiceStatusPending, false},
		{entity.InvoiceStatusCancelled, entity.InvoiceStatusPaid, false},
	}
	for _, tc := range cases {
		inv := &entity.Invoice{Status: tc.from}
		assert.Equal(t, tc.ok, inv.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestInvoice_LineItemsTotal(t *testing.T) {
	li1 := entity.LineItem{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("850.00")}
	li2 := entity.LineItem{Quantity: decimal.NewFromInt(3), UnitPrice: decimal.RequireFromString("16.665")}
	li1.ComputeTotal()
	li2.ComputeTotal()
	inv := &entity.Invoice{LineItems: []entity.LineItem{li1, li2}}
	assert.Equal(t, "900.00", inv.LineItemsTotal().StringFixed(2))
}

func TestInvoice_IsOverdueOn(t *testing.T) {
	due := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	inv := &entity.Invoice{Status: entity.InvoiceStatusPending, DueDate: due}
	assert.False(t, inv.IsOverdueOn(due.Add(15*time.Hour)), "el mismo día no está vencida")
	assert.True(t, inv.IsOverdueOn(due.AddDate(0, 0, 1)))

	inv.Status = entity.InvoiceStatusPaid
	assert.False(t, inv.IsOverdueOn(due.AddDate(0, 1, 0)))
}

func TestTenant_Lease(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	tn := &entity.Tenant{LeaseStart: start, LeaseEnd: &end}

	assert.True(t, tn.LeaseValid())
	assert.True(t, tn.ActiveOn(start))
	assert.True(t, tn.ActiveOn(end.Add(20*time.Hour)))
	assert.False(t, tn.ActiveOn(end.AddDate(0, 0, 1)))
	assert.False(t, tn.ActiveOn(start.AddDate(0, 0, -1)))

	before := start.AddDate(0, 0, -1)
	tn.LeaseEnd = &before
	assert.False(t, tn.LeaseValid())

	tn.LeaseEnd = nil
	assert.True(t, tn.ActiveOn(start.AddDate(10, 0, 0)))
}
