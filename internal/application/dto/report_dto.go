package dto

import "github.com/shopspring/decimal"

// Tipos de reporte.
const (
	ReportFinancial      = "financial"
	ReportTax            = "tax"
	ReportRentRoll       = "rent_roll"
	ReportInvoiceSummary = "invoice_summary"
)

// Formatos de salida.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ReportRequest unión discriminada por Type: solo uno de los punteros de parámetros está presente.
type ReportRequest struct {
	Type           string
	Format         string
	Financial      *FinancialReportParams
	Tax            *TaxReportParams
	RentRoll       *RentRollParams
	InvoiceSummary *InvoiceSummaryParams
}

// FinancialReportParams ?start_date&end_date. Por defecto, el mes natural en curso.
type FinancialReportParams struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}

// TaxReportParams ?year. Por defecto, el año en curso.
type TaxReportParams struct {
	Year string `query:"year"`
}

// RentRollParams ?as_of. Por defecto, hoy.
type RentRollParams struct {
	AsOf string `query:"as_of"`
}

// InvoiceSummaryParams ?start_date&end_date sobre la fecha de vencimiento; ambos opcionales.
type InvoiceSummaryParams struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}

// Report resultado del generador; solo uno de los punteros está presente.
type Report struct {
	Type           string
	GeneratedOn    string // YYYY-MM-DD, usado en el nombre del fichero
	Financial      *FinancialReport
	Tax            *TaxReport
	RentRoll       *RentRoll
	InvoiceSummary *InvoiceSummary
}

// Payload devuelve el reporte concreto para serializar en { "data": ... }.
func (r *Report) Payload() interface{} {
	switch {
	case r.Financial != nil:
		return r.Financial
	case r.Tax != nil:
		return r.Tax
	case r.RentRoll != nil:
		return r.RentRoll
	default:
		return r.InvoiceSummary
	}
}

// FinancialReport ingresos (recibos pagados) y gastos del periodo.
type FinancialReport struct {
	Period        PeriodDTO        `json:"period"`
	TotalIncome   decimal.Decimal  `json:"totalIncome"`
	TotalExpenses decimal.Decimal  `json:"totalExpenses"`
	NetIncome     decimal.Decimal  `json:"netIncome"`
	IncomeCount   int              `json:"incomeCount"`
	ExpenseCount  int              `json:"expenseCount"`
	Entries       []FinancialEntry `json:"entries"`
}

// Tipos de asiento del reporte financiero.
const (
	EntryIncome  = "income"
	EntryExpense = "expense"
)

// FinancialEntry un recibo o gasto del periodo.
type FinancialEntry struct {
	Date        string          `json:"date"`
	Kind        string          `json:"kind"`     // income | expense
	Category    string          `json:"category"` // tipo de recibo o categoría de gasto
	ID          string          `json:"id"`
	PropertyID  string          `json:"propertyId"`
	TenantID    string          `json:"tenantId,omitempty"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// TaxReport resumen fiscal de un año.
type TaxReport struct {
	Year               int             `json:"year"`
	Period             PeriodDTO       `json:"period"`
	TotalIncome        decimal.Decimal `json:"totalIncome"`
	TotalExpenses      decimal.Decimal `json:"totalExpenses"`
	NetTaxableIncome   decimal.Decimal `json:"netTaxableIncome"`
	Months             []MonthlyTotals `json:"months"`
	ExpensesByCategory []CategoryTotal `json:"expensesByCategory"`
	Properties         []PropertyTotal `json:"properties"`
}

// MonthlyTotals totales de un mes (1..12).
type MonthlyTotals struct {
	Month    int             `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// CategoryTotal gastos agregados por categoría.
type CategoryTotal struct {
	Category string          `json:"category"`
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
}

// PropertyTotal resultado por inmueble.
type PropertyTotal struct {
	PropertyID   string          `json:"propertyId"`
	PropertyName string          `json:"propertyName"`
	Income       decimal.Decimal `json:"income"`
	Expenses     decimal.Decimal `json:"expenses"`
	Net          decimal.Decimal `json:"net"`
}

// RentRoll inquilinos con contrato vigente a una fecha.
type RentRoll struct {
	AsOf             string          `json:"asOf"`
	Entries          []RentRollEntry `json:"entries"`
	TotalMonthlyRent decimal.Decimal `json:"totalMonthlyRent"`
	OccupiedUnits    int             `json:"occupiedUnits"`
	TotalUnits       int             `json:"totalUnits"`
	OccupancyRate    decimal.Decimal `json:"occupancyRate"` // porcentaje, 2 decimales
}

// RentRollEntry una línea del rent roll.
type RentRollEntry struct {
	TenantID      string          `json:"tenantId"`
	TenantName    string          `json:"tenantName"`
	PropertyID    string          `json:"propertyId,omitempty"`
	PropertyName  string          `json:"propertyName,omitempty"`
	Rent          decimal.Decimal `json:"rent"`
	LeaseStart    string          `json:"leaseStart"`
	LeaseEnd      string          `json:"leaseEnd,omitempty"`
	PaymentStatus string          `json:"paymentStatus"`
}

// InvoiceSummary facturas agregadas por estado.
type InvoiceSummary struct {
	Period            *PeriodDTO             `json:"period,omitempty"`
	ByStatus          []InvoiceStatusSummary `json:"byStatus"`
	TotalCount        int                    `json:"totalCount"`
	TotalAmount       decimal.Decimal        `json:"totalAmount"`
	OutstandingAmount decimal.Decimal        `json:"outstandingAmount"` // pending + overdue
}

// InvoiceStatusSummary conteo y total de un estado.
type InvoiceStatusSummary struct {
	Status string          `json:"status"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
}
