package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de recibo.
const (
	ReceiptTypeRent        = "rent"
	ReceiptTypeDeposit     = "deposit"
	ReceiptTypeMaintenance = "maintenance"
	ReceiptTypeOther       = "other"
)

// Estados de recibo.
const (
	ReceiptStatusPaid    = "paid"
	ReceiptStatusPending = "pending"
)

// Receipt representa un cobro recibido (o pendiente) de un inquilino.
type Receipt struct {
	ID          string
	UserID      string
	TenantID    string
	PropertyID  string
	InvoiceID   *string
	Amount      decimal.Decimal
	Date        time.Time
	Type        string
	Status      string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
