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

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// ReceiptRepo implementación de ReceiptRepository (usable con pool o tx).
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador.
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

const receiptColumns = `id, user_id, tenant_id, property_id, invoice_id, amount, date, type, status,
	description, created_at, updated_at`

func scanReceipt(row pgx.Row) (*entity.Receipt, error) {
	var rc entity.Receipt
	var description *string
	if err := row.Scan(&rc.ID, &rc.UserID, &rc.TenantID, &rc.PropertyID, &rc.InvoiceID, &rc.Amount,
		&rc.Date, &rc.Type, &rc.Status, &description, &rc.CreatedAt, &rc.UpdatedAt); err != nil {
		return nil, err
	}
	rc.Description = derefStr(description)
	return &rc, nil
}

// Create persiste un recibo. Un segundo recibo para la misma factura es domain.ErrConflict.
func (r *ReceiptRepo) Create(ctx context.Context, rc *entity.Receipt) error {
	if rc.ID == "" {
		rc.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `INSERT INTO receipts (`+receiptColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		rc.ID, rc.UserID, rc.TenantID, rc.PropertyID, rc.InvoiceID, rc.Amount, rc.Date, rc.Type, rc.Status,
		nullIfEmpty(rc.Description), rc.CreatedAt, rc.UpdatedAt,
	)
	if err != nil {
		return dbError("insertar recibo", err)
	}
	return nil
}

// GetByID obtiene un recibo del usuario; (nil, nil) si no existe.
func (r *ReceiptRepo) GetByID(ctx context.Context, userID, id string) (*entity.Receipt, error) {
	rc, err := scanReceipt(r.q.QueryRow(ctx,
		`SELECT `+receiptColumns+` FROM receipts WHERE user_id = $1 AND id = $2`, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("obtener recibo", err)
	}
	return rc, nil
}

// List recibos del usuario por fecha e ID.
func (r *ReceiptRepo) List(ctx context.Context, userID string, f repository.ReceiptFilter) ([]*entity.Receipt, error) {
	w := &where{}
	w.add("user_id = ?", userID)
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.Type != "" {
		w.add("type = ?", f.Type)
	}
	if f.TenantID != "" {
		w.add("tenant_id = ?", f.TenantID)
	}
	if !f.Range.From.IsZero() {
		w.add("date >= ?", f.Range.From)
	}
	if !f.Range.To.IsZero() {
		w.add("date <= ?", f.Range.To)
	}
	rows, err := r.q.Query(ctx, `SELECT `+receiptColumns+` FROM receipts`+w.String()+` ORDER BY date, id`, w.args...)
	if err != nil {
		return nil, dbError("listar recibos", err)
	}
	defer rows.Close()
	list := make([]*entity.Receipt, 0)
	for rows.Next() {
		rc, err := scanReceipt(rows)
		if err != nil {
			return nil, dbError("leer recibo", err)
		}
		list = append(list, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("listar recibos", err)
	}
	return list, nil
}

// Update reemplaza los campos editables.
func (r *ReceiptRepo) Update(ctx context.Context, rc *entity.Receipt) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE receipts
		SET amount = $3, date = $4, type = $5, status = $6, description = $7, updated_at = $8
		WHERE user_id = $1 AND id = $2`,
		rc.UserID, rc.ID, rc.Amount, rc.Date, rc.Type, rc.Status, nullIfEmpty(rc.Description), rc.UpdatedAt,
	)
	if err != nil {
		return dbError("actualizar recibo", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un recibo.
func (r *ReceiptRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM receipts WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return dbError("eliminar recibo", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
