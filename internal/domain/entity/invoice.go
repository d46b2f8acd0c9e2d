package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura de renta.
const (
	InvoiceStatusPending   = "pending"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

// InvoiceStatuses en el orden en que se reportan.
var InvoiceStatuses = []string{
	InvoiceStatusPending,
	InvoiceStatusPaid,
	InvoiceStatusOverdue,
	InvoiceStatusCancelled,
}

// transiciones permitidas; paid y cancelled son terminales.
var invoiceTransitions = map[string][]string{
	InvoiceStatusPending: {InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled},
	InvoiceStatusOverdue: {InvoiceStatusPaid, InvoiceStatusCancelled},
}

// Invoice representa una factura emitida a un inquilino.
type Invoice struct {
	ID          string
	UserID      string
	TenantID    string
	PropertyID  *string
	Number      string // vacío = se numera al exportar (FT {año}/{secuencia})
	Description string
	Amount      decimal.Decimal
	IssueDate   time.Time
	DueDate     time.Time
	Status      string
	LineItems   []LineItem
	PaidDate    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LineItem es un cargo dentro de la factura.
type LineItem struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal // Quantity * UnitPrice, 2 decimales
}

// ComputeTotal fija Total = Quantity * UnitPrice redondeado a 2 decimales.
func (li *LineItem) ComputeTotal() {
	li.Total = li.Quantity.Mul(li.UnitPrice).Round(2)
}

// LineItemsTotal suma los totales de línea.
func (inv *Invoice) LineItemsTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, li := range inv.LineItems {
		sum = sum.Add(li.Total)
	}
	return sum
}

// CanTransition indica si el paso de Status a next es válido.
func (inv *Invoice) CanTransition(next string) bool {
	for _, s := range invoiceTransitions[inv.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// IsEditable: solo facturas pendientes o vencidas admiten cambios.
func (inv *Invoice) IsEditable() bool {
	return inv.Status == InvoiceStatusPending || inv.Status == InvoiceStatusOverdue
}

// IsOverdueOn indica si una factura pendiente está vencida en la fecha dada.
func (inv *Invoice) IsOverdueOn(day time.Time) bool {
	return inv.Status == InvoiceStatusPending && truncateDay(inv.DueDate).Before(truncateDay(day))
}
