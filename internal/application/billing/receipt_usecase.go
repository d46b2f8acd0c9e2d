package billing

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

// ReceiptUseCase CRUD de recibos y registro del cobro de una factura.
type ReceiptUseCase struct {
	receiptRepo repository.ReceiptRepository
	tenantRepo  repository.TenantRepository
	invoiceRepo repository.InvoiceRepository
	txRunner    BillingTxRunner
	validator   *validation.Validator
	loc         *time.Location
	now         func() time.Time
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	receiptRepo repository.ReceiptRepository,
	tenantRepo repository.TenantRepository,
	invoiceRepo repository.InvoiceRepository,
	txRunner BillingTxRunner,
	validator *validation.Validator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		receiptRepo: receiptRepo,
		tenantRepo:  tenantRepo,
		invoiceRepo: invoiceRepo,
		txRunner:    txRunner,
		validator:   validator,
		loc:         time.UTC,
		now:         time.Now,
	}
}

// WithClock fija el reloj.
func (uc *ReceiptUseCase) WithClock(now func() time.Time) *ReceiptUseCase {
	uc.now = now
	return uc
}

// Create valida y persiste un recibo. El inmueble por defecto es el del inquilino.
func (uc *ReceiptUseCase) Create(ctx context.Context, userID string, in dto.CreateReceiptRequest) (*dto.ReceiptResponse, error) {
	if err := uc.validator.Validate(in); err != nil {
		return nil, err
	}
	tenant, err := uc.tenantRepo.GetByID(ctx, userID, in.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, fmt.Errorf("%w: inquilino %s", domain.ErrNotFound, in.TenantID)
	}

	propertyID := in.PropertyID
	if propertyID == "" && tenant.PropertyID != nil {
		propertyID = *tenant.PropertyID
	}
	if propertyID == "" {
		return nil, domain.Invalid("property_id", "required", "el inquilino no tiene inmueble; indique property_id")
	}
	status := in.Status
	if status == "" {
		status = entity.ReceiptStatusPaid
	}
	date, _, _ := validation.ParseDate("date", in.Date, uc.loc)

	now := uc.now()
	r := &entity.Receipt{
		UserID:      userID,
		TenantID:    tenant.ID,
		PropertyID:  propertyID,
		InvoiceID:   in.InvoiceID,
		Amount:      in.Amount.Round(2),
		Date:        date,
		Type:        in.Type,
		Status:      status,
		Description: sanitize.Text(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.receiptRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	out := dto.NewReceiptResponse(r)
	return &out, nil
}

// Get obtiene un recibo.
func (uc *ReceiptUseCase) Get(ctx context.Context, userID, id string) (*dto.ReceiptResponse, error) {
	r, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewReceiptResponse(r)
	return &out, nil
}

// List filtra por estado, tipo, inquilino y fecha.
func (uc *ReceiptUseCase) List(ctx context.Context, userID string, in dto.ReceiptListRequest) ([]dto.ReceiptResponse, error) {
	if err := uc.validator.Validate(in); err != nil {
		return nil, err
	}
	rng, err := dateRange(in.StartDate, in.EndDate, uc.loc)
	if err != nil {
		return nil, err
	}
	list, err := uc.receiptRepo.List(ctx, userID, repository.ReceiptFilter{
		Status: in.Status, Type: in.Type, TenantID: in.TenantID, Range: rng,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReceiptResponse, 0, len(list))
	for _, r := range list {
		items = append(items, dto.NewReceiptResponse(r))
	}
	return items, nil
}

// Update modifica los campos enviados.
func (uc *ReceiptUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateReceiptRequest) (*dto.ReceiptResponse, error) {
	if err := uc.validator.Validate(in); err != nil {
		return nil, err
	}
	r, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Amount != nil {
		r.Amount = in.Amount.Round(2)
	}
	if in.Date != nil {
		r.Date, _, _ = validation.ParseDate("date", *in.Date, uc.loc)
	}
	if in.Type != nil {
		r.Type = *in.Type
	}
	if in.Status != nil {
		r.Status = *in.Status
	}
	if in.Description != nil {
		r.Description = sanitize.Text(*in.Description)
	}
	r.UpdatedAt = uc.now()
	if err := uc.receiptRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	out := dto.NewReceiptResponse(r)
	return &out, nil
}

// Delete elimina un recibo.
func (uc *ReceiptUseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.load(ctx, userID, id); err != nil {
		return err
	}
	return uc.receiptRepo.Delete(ctx, userID, id)
}

// CreateFromInvoice registra el cobro de renta de una factura. Si la factura aún está
// pendiente o vencida se marca pagada en la misma transacción. Una factura anulada o
// que ya tiene recibo devuelve domain.ErrConflict.
func (uc *ReceiptUseCase) CreateFromInvoice(ctx context.Context, userID, invoiceID string) (*dto.ReceiptResponse, error) {
	var created *entity.Receipt

	err := uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, receiptRepo repository.ReceiptRepository) error {
		inv, err := invoiceRepo.GetByID(ctx, userID, invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return fmt.Errorf("%w: factura %s", domain.ErrNotFound, invoiceID)
		}
		if inv.Status == entity.InvoiceStatusCancelled {
			return fmt.Errorf("%w: la factura está anulada", domain.ErrConflict)
		}

		existing, err := receiptRepo.List(ctx, userID, repository.ReceiptFilter{TenantID: inv.TenantID})
		if err != nil {
			return err
		}
		for _, r := range existing {
			if r.InvoiceID != nil && *r.InvoiceID == inv.ID {
				return fmt.Errorf("%w: la factura ya tiene el recibo %s", domain.ErrConflict, r.ID)
			}
		}

		now := uc.now()
		if inv.Status != entity.InvoiceStatusPaid {
			paid := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)
			inv.Status = entity.InvoiceStatusPaid
			inv.PaidDate = &paid
			inv.UpdatedAt = now
			if err := invoiceRepo.Update(ctx, inv); err != nil {
				return err
			}
		}

		propertyID := ""
		if inv.PropertyID != nil {
			propertyID = *inv.PropertyID
		}
		description := inv.Description
		if description == "" {
			description = "Renda " + inv.DueDate.Format("01/2006")
		}
		created = &entity.Receipt{
			UserID:      userID,
			TenantID:    inv.TenantID,
			PropertyID:  propertyID,
			InvoiceID:   &inv.ID,
			Amount:      inv.Amount,
			Date:        *inv.PaidDate,
			Type:        entity.ReceiptTypeRent,
			Status:      entity.ReceiptStatusPaid,
			Description: description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return receiptRepo.Create(ctx, created)
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewReceiptResponse(created)
	return &out, nil
}

func (uc *ReceiptUseCase) load(ctx context.Context, userID, id string) (*entity.Receipt, error) {
	r, err := uc.receiptRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: recibo %s", domain.ErrNotFound, id)
	}
	return r, nil
}
