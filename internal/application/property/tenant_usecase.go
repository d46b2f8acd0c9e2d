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

// TenantUseCase CRUD de inquilinos. Mantiene lease_end >= lease_start y exige que el
// inmueble asignado exista.
type TenantUseCase struct {
	tenantRepo   repository.TenantRepository
	propertyRepo repository.PropertyRepository
	validator    *validation.Validator
	loc          *time.Location
	now          func() time.Time
}

// NewTenantUseCase construye el caso de uso.
func NewTenantUseCase(
	tenantRepo repository.TenantRepository,
	propertyRepo repository.PropertyRepository,
	validator *validation.Validator,
) *TenantUseCase {
	return &TenantUseCase{
		tenantRepo:   tenantRepo,
		propertyRepo: propertyRepo,
		validator:    validator,
		loc:          time.UTC,
		now:          time.Now,
	}
}

// Create valida y persiste el inquilino.
func (uc *TenantUseCase) Create(ctx context.Context, userID string, in dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	if err := uc.validator.Validate(in); err != nil {
		return nil, err
	}
	if err := uc.checkProperty(ctx, userID, in.PropertyID); err != nil {
		return nil, err
	}
	start, _, _ := validation.ParseDate("lease_start", in.LeaseStart, uc.loc)
	status := in.PaymentStatus
	if status == "" {
		status = entity.PaymentStatusCurrent
	}

	now := uc.now()
	t := &entity.Tenant{
		UserID:        userID,
		PropertyID:    in.PropertyID,
		Name:          sanitize.Text(in.Name),
		Email:         in.Email,
		Phone:         sanitize.Text(in.Phone),
		NIF:           in.NIF,
		Rent:          in.Rent.Round(2),
		LeaseStart:    start,
		PaymentStatus: status,
		Notes:         sanitize.Text(in.Notes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.LeaseEnd != nil {
		end, _, _ := validation.ParseDate("lease_end", *in.LeaseEnd, uc.loc)
		t.LeaseEnd = &end
	}
	if !t.LeaseValid() {
		return nil, domain.Invalid("lease_end", "gtefield", "lease_end no puede ser anterior a lease_start")
	}
	if err := uc.tenantRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	out := dto.NewTenantResponse(t)
	return &out, nil
}

// Get obtiene un inquilino.
func (uc *TenantUseCase) Get(ctx context.Context, userID, id string) (*dto.TenantResponse, error) {
	t, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewTenantResponse(t)
	return &out, nil
}

// List inquilinos del usuario.
func (uc *TenantUseCase) List(ctx context.Context, userID string) ([]dto.TenantResponse, error) {
	list, err := uc.tenantRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TenantResponse, 0, len(list))
	for _, t := range list {
		items = append(items, dto.NewTenantResponse(t))
	}
	return items, nil
}

// Update modifica los campos enviados. property_id "" desasigna el inmueble y
// lease_end "" deja el contrato indefinido.
func (uc *TenantUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateTenantRequest) (*dto.TenantResponse, error) {
	if err := uc.validator.Validate(in); err != nil {
		return nil, err
	}
	t, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if in.PropertyID != nil {
		if *in.PropertyID == "" {
			t.PropertyID = nil
		} else {
			if err := uc.checkProperty(ctx, userID, in.PropertyID); err != nil {
				return nil, err
			}
			pid := *in.PropertyID
			t.PropertyID = &pid
		}
	}
	if in.Name != nil {
		t.Name = sanitize.Text(*in.Name)
	}
	if in.Email != nil {
		t.Email = *in.Email
	}
	if in.Phone != nil {
		t.Phone = sanitize.Text(*in.Phone)
	}
	if in.NIF != nil {
		t.NIF = *in.NIF
	}
	if in.Rent != nil {
		t.Rent = in.Rent.Round(2)
	}
	if in.LeaseStart != nil {
		t.LeaseStart, _, _ = validation.ParseDate("lease_start", *in.LeaseStart, uc.loc)
	}
	if in.LeaseEnd != nil {
		if end, ok, _ := validation.ParseDate("lease_end", *in.LeaseEnd, uc.loc); ok {
			t.LeaseEnd = &end
		} else {
			t.LeaseEnd = nil
		}
	}
	if in.PaymentStatus != nil {
		t.PaymentStatus = *in.PaymentStatus
	}
	if in.Notes != nil {
		t.Notes = sanitize.Text(*in.Notes)
	}
	if !t.LeaseValid() {
		return nil, domain.Invalid("lease_end", "gtefield", "lease_end no puede ser anterior a lease_start")
	}

	t.UpdatedAt = uc.now()
	if err := uc.tenantRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	out := dto.NewTenantResponse(t)
	return &out, nil
}

// Delete elimina un inquilino.
func (uc *TenantUseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.load(ctx, userID, id); err != nil {
		return err
	}
	return uc.tenantRepo.Delete(ctx, userID, id)
}

func (uc *TenantUseCase) checkProperty(ctx context.Context, userID string, propertyID *string) error {
	if propertyID == nil {
		return nil
	}
	p, err := uc.propertyRepo.GetByID(ctx, userID, *propertyID)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("%w: inmueble %s", domain.ErrNotFound, *propertyID)
	}
	return nil
}

func (uc *TenantUseCase) load(ctx context.Context, userID, id string) (*entity.Tenant, error) {
	t, err := uc.tenantRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: inquilino %s", domain.ErrNotFound, id)
	}
	return t, nil
}
