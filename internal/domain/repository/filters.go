package repository

import "time"

// DateRange intervalo cerrado [From, To]. Un extremo cero no restringe.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains indica si t cae dentro del intervalo.
func (r DateRange) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To) {
		return false
	}
	return true
}

// InvoiceDateField campo de fecha sobre el que filtra InvoiceFilter.
type InvoiceDateField string

const (
	InvoiceByDueDate   InvoiceDateField = "due_date"
	InvoiceByIssueDate InvoiceDateField = "issue_date"
)

// InvoiceFilter filtros de listado de facturas.
type InvoiceFilter struct {
	Status    string // vacío = todas
	TenantID  string
	DateField InvoiceDateField // por defecto due_date
	Range     DateRange
}

// ReceiptFilter filtros de listado de recibos.
type ReceiptFilter struct {
	Status   string
	Type     string
	TenantID string
	Range    DateRange
}

// ExpenseFilter filtros de listado de gastos.
type ExpenseFilter struct {
	PropertyID string
	Category   string
	Range      DateRange
}
