package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/proman-api/internal/application/dto"
	"github.com/jhoicas/proman-api/internal/domain"
	"github.com/jhoicas/proman-api/internal/domain/entity"
)

func TestExpense_CRUD(t *testing.T) {
	f := newFixture(t)
	uc := f.expenses()
	ctx := context.Background()

	e, err := uc.Create(ctx, userID, dto.CreateExpenseRequest{
		PropertyID: "p-1", Amount: dec("45.905"), Date: "2025-03-02",
		Category: entity.ExpenseCategoryUtilities, Vendor: " EDP ",
	})
	require.NoError(t, err)
	assert.Equal(t, "45.91", e.Amount.StringFixed(2))
	assert.Equal(t, "EDP", e.Vendor)

	cat := entity.ExpenseCategoryRepairs
	upd, err := uc.Update(ctx, userID, e.ID, dto.UpdateExpenseRequest{Category: &cat})
	require.NoError(t, err)
	assert.Equal(t, cat, upd.Category)

	list, err := uc.List(ctx, userID, dto.ExpenseListRequest{PropertyID: "p-1", Category: cat})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.Delete(ctx, userID, e.ID))
	_, err = uc.Get(ctx, userID, e.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExpenseCreate_Errores(t *testing.T) {
	f := newFixture(t)
	uc := f.expenses()
	ctx := context.Background()

	_, err := uc.Create(ctx, userID, dto.CreateExpenseRequest{
		PropertyID: "nope", Amount: dec("10"), Date: "2025-03-02", Category: entity.ExpenseCategoryOther,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(ctx, userID, dto.CreateExpenseRequest{PropertyID: "p-1", Date: "2025-3-2", Category: "food"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, hasViolation(err, "amount", "required"))
	assert.True(t, hasViolation(err, "date", "ymd"))
	assert.True(t, hasViolation(err, "category", "oneof"))
}
