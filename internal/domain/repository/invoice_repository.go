package repository

import (
	"context"

	"github.com/jhoicas/proman-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
// Todas las operaciones se acotan por userID; GetByID devuelve (nil, nil) si no existe.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, userID, id string) (*entity.Invoice, error)
	List(ctx context.Context, userID string, filter InvoiceFilter) ([]*entity.Invoice, error)
	// Update reemplaza cabecera y líneas.
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, userID, id string) error
}
