package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/proman-api/internal/application/dto"
	"github.com/jhoicas/proman-api/internal/application/validation"
	"github.com/jhoicas/proman-api/internal/domain"
	"github.com/jhoicas/proman-api/internal/domain/entity"
	"github.com/jhoicas/proman-api/internal/domain/repository"
	"github.com/jhoicas/proman-api/pkg/sanitize"
)

// InvoiceUseCase reglas de negocio de facturas: totales, transiciones de estado y vencimiento.
//
//	pending → paid | overdue | cancelled
//	overdue → paid | cancelled
//	paid, cancelled: terminales
type InvoiceUseCase struct {
	invoiceRepo repository.InvoiceRepository
	tenantRepo  repository.TenantRepository
	tx          BillingTxRunner
	validator   *validation.Validator
	log         zerolog.Logger
	loc         *time.Location
	now         func() time.Time
}

// NewInvoiceUseCase construye el caso de uso. Las escrituras (cabecera y líneas) pasan
// por tx; invoiceRepo solo se usa para lecturas.
func NewInvoiceUseCase(
	invoiceRepo repository.InvoiceRepository,
	tenantRepo repository.TenantRepository,
	tx BillingTxRunner,
	validator *validation.Validator,
	log zerolog.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		invoiceRepo: invoiceRepo,
		tenantRepo:  tenantRepo,
		tx:          tx,
		validator:   validator,
		log:         log,
		loc:         time.UTC,
		now:         time.Now,
	}
}

// WithClock fija el reloj (fecha por defecto de emisión y de pago, vencimientos).
func (uc *InvoiceUseCase) WithClock(now func() time.Time) *InvoiceUseCase {
	uc.now = now
	return uc
}

func (uc *InvoiceUseCase) today() time.Time {
	n := uc.now().In(uc.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, uc.loc)
}

// Create valida, sanea y persiste una factura pendiente.
// Con líneas, amount se calcula como su suma; si además se envía debe coincidir.
func (uc *InvoiceUseCase) Create(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	violations := uc.validator.Struct(in)

	issue := uc.today()
	if t, ok, v := validation.ParseDate("issue_date", in.IssueDate, uc.loc); v == nil && ok {
		issue = t
	}
	due, _, _ := validation.ParseDate("due_date", in.DueDate, uc.loc)

	items := lineItems(in.LineItems)
	amount := in.Amount
	if len(items) > 0 {
		sum := sumLineItems(items)
		if !in.Amount.IsZero() && !in.Amount.Equal(sum) {
			violations = append(violations, domain.Violation{
				Field: "amount", Rule: "line_items_total",
				Message: fmt.Sprintf("amount debe coincidir con la suma de las líneas (%s)", sum.StringFixed(2)),
			})
		}
		amount = sum
		if !amount.IsPositive() {
			violations = append(violations, domain.Violation{
				Field: "line_items", Rule: "gt", Message: "la suma de las líneas debe ser mayor que 0",
			})
		}
	} else if in.Amount.IsZero() {
		violations = append(violations, domain.Violation{
			Field: "amount", Rule: "required", Message: "amount es obligatorio si no hay líneas",
		})
	}
	if len(violations) == 0 && due.Before(issue) {
		violations = append(violations, domain.Violation{
			Field: "due_date", Rule: "gtefield", Message: "due_date no puede ser anterior a issue_date",
		})
	}
	if err := domain.NewValidationError(violations...); err != nil {
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
	if propertyID == nil {
		propertyID = tenant.PropertyID
	}

	now := uc.now()
	inv := &entity.Invoice{
		UserID:      userID,
		TenantID:    tenant.ID,
		PropertyID:  propertyID,
		Number:      sanitize.Text(in.Number),
		Description: sanitize.Text(in.Description),
		Amount:      amount.Round(2),
		IssueDate:   issue,
		DueDate:     due,
		Status:      entity.InvoiceStatusPending,
		LineItems:   items,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.tx.RunBilling(ctx, func(invoices repository.InvoiceRepository, _ repository.ReceiptRepository) error {
		return invoices.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewInvoiceResponse(inv)
	return &out, nil
}

// Get obtiene una factura; domain.ErrNotFound si no existe para el usuario.
func (uc *InvoiceUseCase) Get(ctx context.Context, userID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewInvoiceResponse(inv)
	return &out, nil
}

// List filtra por estado, inquilino y rango de vencimiento.
func (uc *InvoiceUseCase) List(ctx context.Context, userID string, in dto.InvoiceListRequest) ([]dto.InvoiceResponse, error) {
	if err := uc.validator.Validate(in); err != nil {
		return nil, err
	}
	rng, err := dateRange(in.StartDate, in.EndDate, uc.loc)
	if err != nil {
		return nil, err
	}
	list, err := uc.invoiceRepo.List(ctx, userID, repository.InvoiceFilter{
		Status:    in.Status,
		TenantID:  in.TenantID,
		DateField: repository.InvoiceByDueDate,
		Range:     rng,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, dto.NewInvoiceResponse(inv))
	}
	return items, nil
}

// Update modifica una factura pendiente o vencida; en otro estado devuelve domain.ErrConflict.
func (uc *InvoiceUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := uc.validator.Validate(in); err != nil {
		return nil, err
	}
	inv, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !inv.IsEditable() {
		return nil, fmt.Errorf("%w: la factura está %s y no admite cambios", domain.ErrConflict, inv.Status)
	}

	if in.Number != nil {
		inv.Number = sanitize.Text(*in.Number)
	}
	if in.Description != nil {
		inv.Description = sanitize.Text(*in.Description)
	}
	if in.IssueDate != nil {
		inv.IssueDate, _, _ = validation.ParseDate("issue_date", *in.IssueDate, uc.loc)
	}
	if in.DueDate != nil {
		inv.DueDate, _, _ = validation.ParseDate("due_date", *in.DueDate, uc.loc)
	}

	var violations []domain.Violation
	switch {
	case in.LineItems != nil:
		inv.LineItems = lineItems(*in.LineItems)
		if len(inv.LineItems) > 0 {
			sum := sumLineItems(inv.LineItems)
			if in.Amount != nil && !in.Amount.Equal(sum) {
				violations = append(violations, domain.Violation{
					Field: "amount", Rule: "line_items_total",
					Message: fmt.Sprintf("amount debe coincidir con la suma de las líneas (%s)", sum.StringFixed(2)),
				})
			}
			inv.Amount = sum
		} else if in.Amount != nil {
			inv.Amount = in.Amount.Round(2)
		}
	case in.Amount != nil:
		if len(inv.LineItems) > 0 && !in.Amount.Equal(inv.LineItemsTotal()) {
			violations = append(violations, domain.Violation{
				Field: "amount", Rule: "line_items_total",
				Message: "amount debe coincidir con la suma de las líneas",
			})
		}
		inv.Amount = in.Amount.Round(2)
	}
	if !inv.Amount.IsPositive() {
		violations = append(violations, domain.Violation{Field: "amount", Rule: "gt", Message: "amount debe ser mayor que 0"})
	}
	if inv.DueDate.Before(inv.IssueDate) {
		violations = append(violations, domain.Violation{
			Field: "due_date", Rule: "gtefield", Message: "due_date no puede ser anterior a issue_date",
		})
	}
	if err := domain.NewValidationError(violations...); err != nil {
		return nil, err
	}

	inv.UpdatedAt = uc.now()
	if err := uc.update(ctx, inv); err != nil {
		return nil, err
	}
	out := dto.NewInvoiceResponse(inv)
	return &out, nil
}

// Delete elimina una factura. Las pagadas son registro fiscal y no se borran (domain.ErrConflict).
func (uc *InvoiceUseCase) Delete(ctx context.Context, userID, id string) error {
	inv, err := uc.load(ctx, userID, id)
	if err != nil {
		return err
	}
	if inv.Status == entity.InvoiceStatusPaid {
		return fmt.Errorf("%w: una factura pagada no se puede eliminar", domain.ErrConflict)
	}
	return uc.invoiceRepo.Delete(ctx, userID, id)
}

// MarkPaid pasa la factura a paid con fecha de pago (hoy si no se indica).
func (uc *InvoiceUseCase) MarkPaid(ctx context.Context, userID, id string, in dto.MarkPaidRequest) (*dto.InvoiceResponse, error) {
	if err := uc.validator.Validate(in); err != nil {
		return nil, err
	}
	paid := uc.today()
	if t, ok, _ := validation.ParseDate("paid_date", in.PaidDate, uc.loc); ok {
		paid = t
	}
	return uc.transition(ctx, userID, id, entity.InvoiceStatusPaid, func(inv *entity.Invoice) {
		inv.PaidDate = &paid
	})
}

// Cancel anula la factura. Se conserva para la exportación SAF-T con estado A.
func (uc *InvoiceUseCase) Cancel(ctx context.Context, userID, id string) (*dto.InvoiceResponse, error) {
	return uc.transition(ctx, userID, id, entity.InvoiceStatusCancelled, nil)
}

// RefreshOverdue marca como overdue las facturas pendientes con vencimiento anterior a hoy.
// Todas cambian en la misma transacción; devuelve cuántas cambiaron.
func (uc *InvoiceUseCase) RefreshOverdue(ctx context.Context, userID string) (int, error) {
	today := uc.today()
	updated := 0
	err := uc.tx.RunBilling(ctx, func(invoices repository.InvoiceRepository, _ repository.ReceiptRepository) error {
		pending, err := invoices.List(ctx, userID, repository.InvoiceFilter{Status: entity.InvoiceStatusPending})
		if err != nil {
			return err
		}
		for _, inv := range pending {
			if !inv.IsOverdueOn(today) {
				continue
			}
			inv.Status = entity.InvoiceStatusOverdue
			inv.UpdatedAt = uc.now()
			if err := invoices.Update(ctx, inv); err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if updated > 0 {
		uc.log.Info().Str("user_id", userID).Int("updated", updated).Msg("facturas marcadas como vencidas")
	}
	return updated, nil
}

func (uc *InvoiceUseCase) transition(ctx context.Context, userID, id, next string, apply func(*entity.Invoice)) (*dto.InvoiceResponse, error) {
	var inv *entity.Invoice
	err := uc.tx.RunBilling(ctx, func(invoices repository.InvoiceRepository, _ repository.ReceiptRepository) error {
		var err error
		inv, err = invoices.GetByID(ctx, userID, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return fmt.Errorf("%w: factura %s", domain.ErrNotFound, id)
		}
		if !inv.CanTransition(next) {
			return fmt.Errorf("%w: transición %s → %s no permitida", domain.ErrConflict, inv.Status, next)
		}
		inv.Status = next
		if apply != nil {
			apply(inv)
		}
		inv.UpdatedAt = uc.now()
		return invoices.Update(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewInvoiceResponse(inv)
	return &out, nil
}

// update reescribe cabecera y líneas en una sola transacción.
func (uc *InvoiceUseCase) update(ctx context.Context, inv *entity.Invoice) error {
	return uc.tx.RunBilling(ctx, func(invoices repository.InvoiceRepository, _ repository.ReceiptRepository) error {
		return invoices.Update(ctx, inv)
	})
}

func (uc *InvoiceUseCase) load(ctx context.Context, userID, id string) (*entity.Invoice, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: factura %s", domain.ErrNotFound, id)
	}
	return inv, nil
}

// ── helpers ─────────────────────────────────────────────────────────────────

func lineItems(in []dto.LineItemRequest) []entity.LineItem {
	if len(in) == 0 {
		return nil
	}
	out := make([]entity.LineItem, 0, len(in))
	for _, li := range in {
		item := entity.LineItem{
			Description: sanitize.Text(li.Description),
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
		}
		item.ComputeTotal()
		out = append(out, item)
	}
	return out
}

func sumLineItems(items []entity.LineItem) decimal.Decimal {
	inv := entity.Invoice{LineItems: items}
	return inv.LineItemsTotal()
}

// dateRange interpreta start/end (ya validados como YYYY-MM-DD); end inclusivo.
func dateRange(start, end string, loc *time.Location) (repository.DateRange, error) {
	var rng repository.DateRange
	if t, ok, _ := validation.ParseDate("start_date", start, loc); ok {
		rng.From = t
	}
	if t, ok, _ := validation.ParseDate("end_date", end, loc); ok {
		rng.To = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if !rng.From.IsZero() && !rng.To.IsZero() && rng.From.After(rng.To) {
		return rng, domain.Invalid("end_date", "gtefield", "start_date no puede ser posterior a end_date")
	}
	return rng, nil
}
