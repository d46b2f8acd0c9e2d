package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/proman-api/internal/domain"
	"github.com/jhoicas/proman-api/internal/domain/entity"
	"github.com/jhoicas/proman-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo implementación de ExpenseRepository.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador.
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

const expenseColumns = `id, user_id, property_id, amount, date, category, description, vendor, created_at, updated_at`

func scanExpense(row pgx.Row) (*entity.Expense, error) {
	var e entity.Expense
	var description, vendor *string
	if err := row.Scan(&e.ID, &e.UserID, &e.PropertyID, &e.Amount, &e.Date, &e.Category,
		&description, &vendor, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.Description, e.Vendor = derefStr(description), derefStr(vendor)
	return &e, nil
}

// Create persiste un gasto.
func (r *ExpenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `INSERT INTO expenses (`+expenseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.ID, e.UserID, e.PropertyID, e.Amount, e.Date, e.Category,
		nullIfEmpty(e.Description), nullIfEmpty(e.Vendor), e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return dbError("insertar gasto", err)
	}
	return nil
}

// GetByID obtiene un gasto del usuario; (nil, nil) si no existe.
func (r *ExpenseRepo) GetByID(ctx context.Context, userID, id string) (*entity.Expense, error) {
	e, err := scanExpense(r.q.QueryRow(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE user_id = $1 AND id = $2`, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("obtener gasto", err)
	}
	return e, nil
}

// List gastos del usuario por fecha e ID.
func (r *ExpenseRepo) List(ctx context.Context, userID string, f repository.ExpenseFilter) ([]*entity.Expense, error) {
	w := &where{}
	w.add("user_id = ?", userID)
	if f.PropertyID != "" {
		w.add("property_id = ?", f.PropertyID)
	}
	if f.Category != "" {
		w.add("category = ?", f.Category)
	}
	if !f.Range.From.IsZero() {
		w.add("date >= ?", f.Range.From)
	}
	if !f.Range.To.IsZero() {
		w.add("date <= ?", f.Range.To)
	}
	rows, err := r.q.Query(ctx, `SELECT `+expenseColumns+` FROM expenses`+w.String()+` ORDER BY date, id`, w.args...)
	if err != nil {
		return nil, dbError("listar gastos", err)
	}
	defer rows.Close()
	list := make([]*entity.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, dbError("leer gasto", err)
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("listar gastos", err)
	}
	return list, nil
}

// Update reemplaza los campos editables.
func (r *ExpenseRepo) Update(ctx context.Context, e *entity.Expense) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE expenses
		SET amount = $3, date = $4, category = $5, description = $6, vendor = $7, updated_at = $8
		WHERE user_id = $1 AND id = $2`,
		e.UserID, e.ID, e.Amount, e.Date, e.Category, nullIfEmpty(e.Description), nullIfEmpty(e.Vendor), e.UpdatedAt,
	)
	if err != nil {
		return dbError("actualizar gasto", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un gasto.
func (r *ExpenseRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM expenses WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return dbError("eliminar gasto", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
