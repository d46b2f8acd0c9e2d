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

// ExpenseUseCase CRUD de gastos por inmueble.
type ExpenseUseCase struct {
	expenseRepo  repository.ExpenseRepository
	propertyRepo repository.PropertyRepository
	validator    *validation.Validator
	loc          *time.Location
	now          func() time.Time
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(
	expenseRepo repository.ExpenseRepository,
	propertyRepo repository.PropertyRepository,
	validator *validation.Validator,
) *ExpenseUseCase {
	return &ExpenseUseCase{
		expenseRepo:  expenseRepo,
		propertyRepo: propertyRepo,
		validator:    validator,
		loc:          time.UTC,
		now:          time.Now,
	}
}

// WithClock fija el reloj.
func (uc *ExpenseUseCase) WithClock(now func() time.Time) *ExpenseUseCase {
	uc.now = now
	return uc
}

// Create valida que el inmueble exista y persiste el gasto.
func (uc *ExpenseUseCase) Create(ctx context.Context, userID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if err := uc.validator.Validate(in); err != nil {
		return nil, err
	}
	prop, err := uc.propertyRepo.GetByID(ctx, userID, in.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, fmt.Errorf("%w: inmueble %s", domain.ErrNotFound, in.PropertyID)
	}
	date, _, _ := validation.ParseDate("date", in.Date, uc.loc)

	now := uc.now()
	e := &entity.Expense{
		UserID:      userID,
		PropertyID:  prop.ID,
		Amount:      in.Amount.Round(2),
		Date:        date,
		Category:    in.Category,
		Description: sanitize.Text(in.Description),
		Vendor:      sanitize.Text(in.Vendor),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.expenseRepo.Create(ctx, e); err != nil {
		return nil, err
	}
	out := dto.NewExpenseResponse(e)
	return &out, nil
}

// Get obtiene un gasto.
func (uc *ExpenseUseCase) Get(ctx context.Context, userID, id string) (*dto.ExpenseResponse, error) {
	e, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewExpenseResponse(e)
	return &out, nil
}

// List filtra por inmueble, categoría y fecha.
func (uc *ExpenseUseCase) List(ctx context.Context, userID string, in dto.ExpenseListRequest) ([]dto.ExpenseResponse, error) {
	if err := uc.validator.Validate(in); err != nil {
		return nil, err
	}
	rng, err := dateRange(in.StartDate, in.EndDate, uc.loc)
	if err != nil {
		return nil, err
	}
	list, err := uc.expenseRepo.List(ctx, userID, repository.ExpenseFilter{
		PropertyID: in.PropertyID, Category: in.Category, Range: rng,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		items = append(items, dto.NewExpenseResponse(e))
	}
	return items, nil
}

// Update modifica los campos enviados.
func (uc *ExpenseUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	if err := uc.validator.Validate(in); err != nil {
		return nil, err
	}
	e, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Amount != nil {
		e.Amount = in.Amount.Round(2)
	}
	if in.Date != nil {
		e.Date, _, _ = validation.ParseDate("date", *in.Date, uc.loc)
	}
	if in.Category != nil {
		e.Category = *in.Category
	}
	if in.Description != nil {
		e.Description = sanitize.Text(*in.Description)
	}
	if in.Vendor != nil {
		e.Vendor = sanitize.Text(*in.Vendor)
	}
	e.UpdatedAt = uc.now()
	if err := uc.expenseRepo.Update(ctx, e); err != nil {
		return nil, err
	}
	out := dto.NewExpenseResponse(e)
	return &out, nil
}

// Delete elimina un gasto.
func (uc *ExpenseUseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.load(ctx, userID, id); err != nil {
		return err
	}
	return uc.expenseRepo.Delete(ctx, userID, id)
}

func (uc *ExpenseUseCase) load(ctx context.Context, userID, id string) (*entity.Expense, error) {
	e, err := uc.expenseRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("%w: gasto %s", domain.ErrNotFound, id)
	}
	return e, nil
}
