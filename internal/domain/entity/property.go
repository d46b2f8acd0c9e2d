package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un inmueble.
const (
	PropertyStatusAvailable   = "available"
	PropertyStatusOccupied    = "occupied"
	PropertyStatusMaintenance = "maintenance"
)

// Property representa un inmueble en arrendamiento. Pertenece a un único usuario.
type Property struct {
	ID         string
	UserID     string
	Name       string
	Address    string
	City       string
	PostalCode string // NNNN-NNN
	Type       string // apartment, house, commercial, ...
	Bedrooms   int
	Rent       decimal.Decimal
	Status     string // ver PropertyStatus*
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
