// Package property contiene los casos de uso de inmuebles e inquilinos.
package property

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/proman-api/internal/application/dto"
	"github.com/jhoicas/proman-api/internal/application/validation"
	"github.com/jhoicas/proman-api/internal/domain"
	"github.com/jhoicas/proman-api/internal/domain/entity"
	"github.com/jhoicas/proman-api/internal/domain/repository"
	"github.com/jhoicas/proman-api/pkg/sanitize"
)

// PropertyUseCase CRUD de inmuebles.
type PropertyUseCase struct {
	propertyRepo repository.PropertyRepository
	tenantRepo   repository.TenantRepository
	validator    *validation.Validator
	now          func() time.Time
}

// NewPropertyUseCase construye el caso de uso.
func NewPropertyUseCase(
	propertyRepo repository.PropertyRepository,
	tenantRepo repository.TenantRepository,
	validator *validation.Validator,
) *PropertyUseCase {
	return &PropertyUseCase{
		propertyRepo: propertyRepo,
		tenantRepo:   tenantRepo,
		validator:    validator,
		now:          time.Now,
	}
}

// Create valida, sanea y persiste el inmueble. Sin estado explícito queda available.
func (uc *PropertyUseCase) Create(ctx context.Context, userID string, in dto.CreatePropertyRequest) (*dto.PropertyResponse, error) {
	if err := uc.validator.Validate(in); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = entity.PropertyStatusAvailable
	}
	now := uc.now()
	p := &entity.Property{
		UserID:     userID,
		Name:       sanitize.Text(in.Name),
		Address:    sanitize.Text(in.Address),
		City:       sanitize.Text(in.City),
		PostalCode: in.PostalCode,
		Type:       in.Type,
		Bedrooms:   in.Bedrooms,
		Rent:       in.Rent.Round(2),
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if p.Name == "" {
		return nil, domain.Invalid("name", "required", "el nombre queda vacío tras limpiar el texto")
	}
	if err := uc.propertyRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	out := dto.NewPropertyResponse(p)
	return &out, nil
}

// Get obtiene un inmueble.
func (uc *PropertyUseCase) Get(ctx context.Context, userID, id string) (*dto.PropertyResponse, error) {
	p, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewPropertyResponse(p)
	return &out, nil
}

// List inmuebles del usuario.
func (uc *PropertyUseCase) List(ctx context.Context, userID string) ([]dto.PropertyResponse, error) {
	list, err := uc.propertyRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PropertyResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.NewPropertyResponse(p))
	}
	return items, nil
}

// Update modifica los campos enviados.
func (uc *PropertyUseCase) Update(ctx context.Context, userID, id string, in dto.UpdatePropertyRequest) (*dto.PropertyResponse, error) {
	if err := uc.validator.Validate(in); err != nil {
		return nil, err
	}
	p, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		p.Name = sanitize.Text(*in.Name)
	}
	if in.Address != nil {
		p.Address = sanitize.Text(*in.Address)
	}
	if in.City != nil {
		p.City = sanitize.Text(*in.City)
	}
	if in.PostalCode != nil {
		p.PostalCode = *in.PostalCode
	}
	if in.Type != nil {
		p.Type = *in.Type
	}
	if in.Bedrooms != nil {
		p.Bedrooms = *in.Bedrooms
	}
	if in.Rent != nil {
		p.Rent = in.Rent.Round(2)
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	p.UpdatedAt = uc.now()
	if err := uc.propertyRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	out := dto.NewPropertyResponse(p)
	return &out, nil
}

// Delete elimina el inmueble. Con inquilinos asignados devuelve domain.ErrConflict.
func (uc *PropertyUseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.load(ctx, userID, id); err != nil {
		return err
	}
	tenants, err := uc.tenantRepo.List(ctx, userID)
	if err != nil {
		return err
	}
	for _, t := range tenants {
		if t.PropertyID != nil && *t.PropertyID == id {
			return fmt.Errorf("%w: el inmueble tiene inquilinos asignados", domain.ErrConflict)
		}
	}
	return uc.propertyRepo.Delete(ctx, userID, id)
}

func (uc *PropertyUseCase) load(ctx context.Context, userID, id string) (*entity.Property, error) {
	p, err := uc.propertyRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: inmueble %s", domain.ErrNotFound, id)
	}
	return p, nil
}
