package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de gasto admitidas.
const (
	ExpenseCategoryMaintenance = "maintenance"
	ExpenseCategoryRepairs     = "repairs"
	ExpenseCategoryUtilities   = "utilities"
	ExpenseCategoryInsurance   = "insurance"
	ExpenseCategoryTaxes       = "taxes"
	ExpenseCategoryManagement  = "management"
	ExpenseCategoryOther       = "other"
)

// Expense representa un gasto asociado a un inmueble.
type Expense struct {
	ID          string
	UserID      string
	PropertyID  string
	Amount      decimal.Decimal
	Date        time.Time
	Category    string
	Description string
	Vendor      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
