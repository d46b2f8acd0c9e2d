package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/proman-api/internal/domain/entity"
)

// CreatePropertyRequest body para POST /api/properties.
type CreatePropertyRequest struct {
	Name       string          `json:"name" validate:"required,min=1,max=200"`
	Address    string          `json:"address" validate:"required,min=1,max=300"`
	City       string          `json:"city" validate:"omitempty,max=100"`
	PostalCode string          `json:"postal_code" validate:"omitempty,pt_postal_code"`
	Type       string          `json:"type" validate:"omitempty,oneof=apartment house commercial room other"`
	Bedrooms   int             `json:"bedrooms" validate:"min=0,max=50"`
	Rent       decimal.Decimal `json:"rent" validate:"gte=0"`
	Status     string          `json:"status" validate:"omitempty,oneof=available occupied maintenance"`
}

// UpdatePropertyRequest body para PUT /api/properties/:id (campos opcionales).
type UpdatePropertyRequest struct {
	Name       *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Address    *string          `json:"address" validate:"omitempty,min=1,max=300"`
	City       *string          `json:"city" validate:"omitempty,max=100"`
	PostalCode *string          `json:"postal_code" validate:"omitempty,pt_postal_code_or_empty"`
	Type       *string          `json:"type" validate:"omitempty,oneof=apartment house commercial room other"`
	Bedrooms   *int             `json:"bedrooms" validate:"omitempty,min=0,max=50"`
	Rent       *decimal.Decimal `json:"rent" validate:"omitempty,gte=0"`
	Status     *string          `json:"status" validate:"omitempty,oneof=available occupied maintenance"`
}

// PropertyResponse inmueble en respuestas.
type PropertyResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Address    string          `json:"address"`
	City       string          `json:"city,omitempty"`
	PostalCode string          `json:"postal_code,omitempty"`
	Type       string          `json:"type,omitempty"`
	Bedrooms   int             `json:"bedrooms"`
	Rent       decimal.Decimal `json:"rent"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// NewPropertyResponse mapea la entidad.
func NewPropertyResponse(p *entity.Property) PropertyResponse {
	return PropertyResponse{
		ID: p.ID, Name: p.Name, Address: p.Address, City: p.City, PostalCode: p.PostalCode,
		Type: p.Type, Bedrooms: p.Bedrooms, Rent: p.Rent, Status: p.Status,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

// CreateTenantRequest body para POST /api/tenants.
type CreateTenantRequest struct {
	PropertyID    *string         `json:"property_id" validate:"omitempty,min=1"`
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Email         string          `json:"email" validate:"omitempty,email"`
	Phone         string          `json:"phone" validate:"omitempty,max=30"`
	NIF           string          `json:"nif" validate:"omitempty,nif9,nif"`
	Rent          decimal.Decimal `json:"rent" validate:"gte=0"`
	LeaseStart    string          `json:"lease_start" validate:"required,ymd"`
	LeaseEnd      *string         `json:"lease_end" validate:"omitempty,ymd"`
	PaymentStatus string          `json:"payment_status" validate:"omitempty,oneof=current late overdue"`
	Notes         string          `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateTenantRequest body para PUT /api/tenants/:id.
type UpdateTenantRequest struct {
	PropertyID    *string          `json:"property_id"`
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Email         *string          `json:"email" validate:"omitempty,email_or_empty"`
	Phone         *string          `json:"phone" validate:"omitempty,max=30"`
	NIF           *string          `json:"nif" validate:"omitempty,nif9_or_empty,nif_or_empty"`
	Rent          *decimal.Decimal `json:"rent" validate:"omitempty,gte=0"`
	LeaseStart    *string          `json:"lease_start" validate:"omitempty,ymd"`
	LeaseEnd      *string          `json:"lease_end" validate:"omitempty,ymd_or_empty"`
	PaymentStatus *string          `json:"payment_status" validate:"omitempty,oneof=current late overdue"`
	Notes         *string          `json:"notes" validate:"omitempty,max=2000"`
}

// TenantResponse inquilino en respuestas.
type TenantResponse struct {
	ID            string          `json:"id"`
	PropertyID    *string         `json:"property_id"`
	Name          string          `json:"name"`
	Email         string          `json:"email,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	NIF           string          `json:"nif,omitempty"`
	Rent          decimal.Decimal `json:"rent"`
	LeaseStart    string          `json:"lease_start"`
	LeaseEnd      *string         `json:"lease_end"`
	PaymentStatus string          `json:"payment_status"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewTenantResponse mapea la entidad.
func NewTenantResponse(t *entity.Tenant) TenantResponse {
	return TenantResponse{
		ID: t.ID, PropertyID: t.PropertyID, Name: t.Name, Email: t.Email, Phone: t.Phone, NIF: t.NIF,
		Rent: t.Rent, LeaseStart: FormatDate(t.LeaseStart), LeaseEnd: FormatDatePtr(t.LeaseEnd),
		PaymentStatus: t.PaymentStatus, Notes: t.Notes, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt,
	}
}

// FormatDate devuelve YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatDatePtr devuelve nil si t es nil.
func FormatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatDate(*t)
	return &s
}
