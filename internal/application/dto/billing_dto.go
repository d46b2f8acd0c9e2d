package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/proman-api/internal/domain/entity"
)

// ── Facturas ────────────────────────────────────────────────────────────────

// CreateInvoiceRequest body para POST /api/invoices.
// Si se envían líneas, amount es opcional y debe coincidir con su suma.
type CreateInvoiceRequest struct {
	TenantID    string            `json:"tenant_id" validate:"required"`
	PropertyID  *string           `json:"property_id" validate:"omitempty,min=1"`
	Number      string            `json:"number" validate:"omitempty,max=60"`
	Description string            `json:"description" validate:"omitempty,max=500"`
	Amount      decimal.Decimal   `json:"amount" validate:"omitempty,gt=0"`
	IssueDate   string            `json:"issue_date" validate:"omitempty,ymd"` // por defecto hoy
	DueDate     string            `json:"due_date" validate:"required,ymd"`
	LineItems   []LineItemRequest `json:"line_items" validate:"omitempty,max=200,dive"`
}

// LineItemRequest línea de factura.
type LineItemRequest struct {
	Description string          `json:"description" validate:"required,min=1,max=300"`
	Quantity    decimal.Decimal `json:"quantity" validate:"gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"gt=0"`
}

// UpdateInvoiceRequest body para PUT /api/invoices/:id (solo pending u overdue).
type UpdateInvoiceRequest struct {
	Number      *string            `json:"number" validate:"omitempty,max=60"`
	Description *string            `json:"description" validate:"omitempty,max=500"`
	Amount      *decimal.Decimal   `json:"amount" validate:"omitempty,gt=0"`
	IssueDate   *string            `json:"issue_date" validate:"omitempty,ymd"`
	DueDate     *string            `json:"due_date" validate:"omitempty,ymd"`
	LineItems   *[]LineItemRequest `json:"line_items" validate:"omitempty,max=200,dive"`
}

// MarkPaidRequest body para POST /api/invoices/:id/pay.
type MarkPaidRequest struct {
	PaidDate string `json:"paid_date" validate:"omitempty,ymd"` // por defecto hoy
}

// InvoiceListRequest query de GET /api/invoices.
type InvoiceListRequest struct {
	Status    string `query:"status" validate:"omitempty,oneof=pending paid overdue cancelled"`
	TenantID  string `query:"tenant_id"`
	StartDate string `query:"start_date" validate:"omitempty,ymd"`
	EndDate   string `query:"end_date" validate:"omitempty,ymd"`
}

// InvoiceResponse factura en respuestas.
type InvoiceResponse struct {
	ID          string             `json:"id"`
	TenantID    string             `json:"tenant_id"`
	PropertyID  *string            `json:"property_id"`
	Number      string             `json:"number,omitempty"`
	Description string             `json:"description,omitempty"`
	Amount      decimal.Decimal    `json:"amount"`
	IssueDate   string             `json:"issue_date"`
	DueDate     string             `json:"due_date"`
	Status      string             `json:"status"`
	PaidDate    *string            `json:"paid_date"`
	LineItems   []LineItemResponse `json:"line_items"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// LineItemResponse línea en respuestas.
type LineItemResponse struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// NewInvoiceResponse mapea la entidad.
func NewInvoiceResponse(inv *entity.Invoice) InvoiceResponse {
	items := make([]LineItemResponse, 0, len(inv.LineItems))
	for _, li := range inv.LineItems {
		items = append(items, LineItemResponse{Description: li.Description, Quantity: li.Quantity, UnitPrice: li.UnitPrice, Total: li.Total})
	}
	return InvoiceResponse{
		ID: inv.ID, TenantID: inv.TenantID, PropertyID: inv.PropertyID, Number: inv.Number,
		Description: inv.Description, Amount: inv.Amount,
		IssueDate: FormatDate(inv.IssueDate), DueDate: FormatDate(inv.DueDate),
		Status: inv.Status, PaidDate: FormatDatePtr(inv.PaidDate), LineItems: items,
		CreatedAt: inv.CreatedAt, UpdatedAt: inv.UpdatedAt,
	}
}

// RefreshOverdueResponse resultado de POST /api/invoices/refresh-overdue.
type RefreshOverdueResponse struct {
	Updated int `json:"updated"`
}

// ── Recibos ─────────────────────────────────────────────────────────────────

// CreateReceiptRequest body para POST /api/receipts.
type CreateReceiptRequest struct {
	TenantID    string          `json:"tenant_id" validate:"required"`
	PropertyID  string          `json:"property_id" validate:"omitempty,min=1"` // por defecto el del inquilino
	InvoiceID   *string         `json:"invoice_id" validate:"omitempty,min=1"`
	Amount      decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Date        string          `json:"date" validate:"required,ymd"`
	Type        string          `json:"type" validate:"required,oneof=rent deposit maintenance other"`
	Status      string          `json:"status" validate:"omitempty,oneof=paid pending"`
	Description string          `json:"description" validate:"omitempty,max=500"`
}

// UpdateReceiptRequest body para PUT /api/receipts/:id.
type UpdateReceiptRequest struct {
	Amount      *decimal.Decimal `json:"amount" validate:"omitempty,gt=0"`
	Date        *string          `json:"date" validate:"omitempty,ymd"`
	Type        *string          `json:"type" validate:"omitempty,oneof=rent deposit maintenance other"`
	Status      *string          `json:"status" validate:"omitempty,oneof=paid pending"`
	Description *string          `json:"description" validate:"omitempty,max=500"`
}

// ReceiptListRequest query de GET /api/receipts.
type ReceiptListRequest struct {
	Status    string `query:"status" validate:"omitempty,oneof=paid pending"`
	Type      string `query:"type" validate:"omitempty,oneof=rent deposit maintenance other"`
	TenantID  string `query:"tenant_id"`
	StartDate string `query:"start_date" validate:"omitempty,ymd"`
	EndDate   string `query:"end_date" validate:"omitempty,ymd"`
}

// ReceiptResponse recibo en respuestas.
type ReceiptResponse struct {
	ID          string          `json:"id"`
	TenantID    string          `json:"tenant_id"`
	PropertyID  string          `json:"property_id"`
	InvoiceID   *string         `json:"invoice_id"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewReceiptResponse mapea la entidad.
func NewReceiptResponse(r *entity.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ID: r.ID, TenantID: r.TenantID, PropertyID: r.PropertyID, InvoiceID: r.InvoiceID,
		Amount: r.Amount, Date: FormatDate(r.Date), Type: r.Type, Status: r.Status,
		Description: r.Description, CreatedAt: r.CreatedAt,
	}
}

// ── Gastos ──────────────────────────────────────────────────────────────────

// CreateExpenseRequest body para POST /api/expenses.
type CreateExpenseRequest struct {
	PropertyID  string          `json:"property_id" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Date        string          `json:"date" validate:"required,ymd"`
	Category    string          `json:"category" validate:"required,oneof=maintenance repairs utilities insurance taxes management other"`
	Description string          `json:"description" validate:"omitempty,max=500"`
	Vendor      string          `json:"vendor" validate:"omitempty,max=200"`
}

// UpdateExpenseRequest body para PUT /api/expenses/:id.
type UpdateExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount" validate:"omitempty,gt=0"`
	Date        *string          `json:"date" validate:"omitempty,ymd"`
	Category    *string          `json:"category" validate:"omitempty,oneof=maintenance repairs utilities insurance taxes management other"`
	Description *string          `json:"description" validate:"omitempty,max=500"`
	Vendor      *string          `json:"vendor" validate:"omitempty,max=200"`
}

// ExpenseListRequest query de GET /api/expenses.
type ExpenseListRequest struct {
	PropertyID string `query:"property_id"`
	Category   string `query:"category" validate:"omitempty,oneof=maintenance repairs utilities insurance taxes management other"`
	StartDate  string `query:"start_date" validate:"omitempty,ymd"`
	EndDate    string `query:"end_date" validate:"omitempty,ymd"`
}

// ExpenseResponse gasto en respuestas.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	PropertyID  string          `json:"property_id"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Vendor      string          `json:"vendor,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewExpenseResponse mapea la entidad.
func NewExpenseResponse(e *entity.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID: e.ID, PropertyID: e.PropertyID, Amount: e.Amount, Date: FormatDate(e.Date),
		Category: e.Category, Description: e.Description, Vendor: e.Vendor, CreatedAt: e.CreatedAt,
	}
}
