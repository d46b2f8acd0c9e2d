package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estado de pagos del inquilino.
const (
	PaymentStatusCurrent = "current"
	PaymentStatusLate    = "late"
	PaymentStatusOverdue = "overdue"
)

// Tenant representa un inquilino y su contrato vigente.
type Tenant struct {
	ID            string
	UserID        string
	PropertyID    *string // nil si no tiene inmueble asignado
	Name          string
	Email         string
	Phone         string
	NIF           string // opcional; si está vacío se declara como consumidor final
	Rent          decimal.Decimal
	LeaseStart    time.Time
	LeaseEnd      *time.Time // nil = contrato indefinido
	PaymentStatus string     // ver PaymentStatus*
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LeaseValid comprueba leaseEnd >= leaseStart.
func (t *Tenant) LeaseValid() bool {
	return t.LeaseEnd == nil || !t.LeaseEnd.Before(t.LeaseStart)
}

// ActiveOn indica si el contrato está vigente en la fecha dada (comparación por día).
func (t *Tenant) ActiveOn(day time.Time) bool {
	d := truncateDay(day)
	if truncateDay(t.LeaseStart).After(d) {
		return false
	}
	return t.LeaseEnd == nil || !truncateDay(*t.LeaseEnd).Before(d)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
