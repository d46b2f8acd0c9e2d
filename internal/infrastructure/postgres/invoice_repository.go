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

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
// Las líneas viven en invoice_line_items y se reemplazan completas en Update. Create y Update
// son varias sentencias: las escrituras se hacen con el repo que entrega TxRunner.RunBilling.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, user_id, tenant_id, property_id, number, description, amount,
	issue_date, due_date, status, paid_date, created_at, updated_at`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var number, description *string
	if err := row.Scan(&inv.ID, &inv.UserID, &inv.TenantID, &inv.PropertyID, &number, &description,
		&inv.Amount, &inv.IssueDate, &inv.DueDate, &inv.Status, &inv.PaidDate,
		&inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return nil, err
	}
	inv.Number, inv.Description = derefStr(number), derefStr(description)
	return &inv, nil
}

// Create persiste la cabecera y sus líneas.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		inv.ID, inv.UserID, inv.TenantID, inv.PropertyID, nullIfEmpty(inv.Number), nullIfEmpty(inv.Description),
		inv.Amount, inv.IssueDate, inv.DueDate, inv.Status, inv.PaidDate, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		return dbError("insertar factura", err)
	}
	return r.insertLines(ctx, inv)
}

func (r *InvoiceRepo) insertLines(ctx context.Context, inv *entity.Invoice) error {
	for i, li := range inv.LineItems {
		_, err := r.q.Exec(ctx, `
			INSERT INTO invoice_line_items (invoice_id, position, description, quantity, unit_price, total)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			inv.ID, i+1, li.Description, li.Quantity, li.UnitPrice, li.Total,
		)
		if err != nil {
			return dbError("insertar línea de factura", err)
		}
	}
	return nil
}

// GetByID obtiene una factura completa; (nil, nil) si no existe para el usuario.
func (r *InvoiceRepo) GetByID(ctx context.Context, userID, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE user_id = $1 AND id = $2`, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("obtener factura", err)
	}
	if err := r.attachLines(ctx, []*entity.Invoice{inv}); err != nil {
		return nil, err
	}
	return inv, nil
}

// List facturas del usuario ordenadas por la fecha filtrada y luego por ID.
func (r *InvoiceRepo) List(ctx context.Context, userID string, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	dateCol := "due_date"
	if f.DateField == repository.InvoiceByIssueDate {
		dateCol = "issue_date"
	}
	w := &where{}
	w.add("user_id = ?", userID)
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.TenantID != "" {
		w.add("tenant_id = ?", f.TenantID)
	}
	if !f.Range.From.IsZero() {
		w.add(dateCol+" >= ?", f.Range.From)
	}
	if !f.Range.To.IsZero() {
		w.add(dateCol+" <= ?", f.Range.To)
	}

	rows, err := r.q.Query(ctx, `SELECT `+invoiceColumns+` FROM invoices`+w.String()+
		` ORDER BY `+dateCol+`, id`, w.args...)
	if err != nil {
		return nil, dbError("listar facturas", err)
	}
	list := make([]*entity.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			rows.Close()
			return nil, dbError("leer factura", err)
		}
		list = append(list, inv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, dbError("listar facturas", err)
	}
	if err := r.attachLines(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// attachLines carga las líneas de todas las facturas en una sola consulta.
func (r *InvoiceRepo) attachLines(ctx context.Context, invoices []*entity.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}
	ids := make([]string, 0, len(invoices))
	byID := make(map[string]*entity.Invoice, len(invoices))
	for _, inv := range invoices {
		ids = append(ids, inv.ID)
		byID[inv.ID] = inv
	}
	rows, err := r.q.Query(ctx, `
		SELECT invoice_id, description, quantity, unit_price, total
		FROM invoice_line_items WHERE invoice_id = ANY($1) ORDER BY invoice_id, position`, ids)
	if err != nil {
		return dbError("listar líneas de factura", err)
	}
	defer rows.Close()
	for rows.Next() {
		var invoiceID string
		var li entity.LineItem
		if err := rows.Scan(&invoiceID, &li.Description, &li.Quantity, &li.UnitPrice, &li.Total); err != nil {
			return dbError("leer línea de factura", err)
		}
		if inv := byID[invoiceID]; inv != nil {
			inv.LineItems = append(inv.LineItems, li)
		}
	}
	if err := rows.Err(); err != nil {
		return dbError("listar líneas de factura", err)
	}
	return nil
}

// Update reemplaza cabecera y líneas.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE invoices
		SET property_id = $3, number = $4, description = $5, amount = $6, issue_date = $7,
		    due_date = $8, status = $9, paid_date = $10, updated_at = $11
		WHERE user_id = $1 AND id = $2`,
		inv.UserID, inv.ID, inv.PropertyID, nullIfEmpty(inv.Number), nullIfEmpty(inv.Description), inv.Amount,
		inv.IssueDate, inv.DueDate, inv.Status, inv.PaidDate, inv.UpdatedAt,
	)
	if err != nil {
		return dbError("actualizar factura", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_line_items WHERE invoice_id = $1`, inv.ID); err != nil {
		return dbError("reemplazar líneas de factura", err)
	}
	return r.insertLines(ctx, inv)
}

// Delete elimina la factura (las líneas se borran en cascada).
func (r *InvoiceRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return dbError("eliminar factura", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
