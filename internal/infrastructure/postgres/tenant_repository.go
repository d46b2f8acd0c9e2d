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

var _ repository.TenantRepository = (*TenantRepo)(nil)

// TenantRepo implementación de TenantRepository (usable con pool o tx).
type TenantRepo struct {
	q Querier
}

// NewTenantRepository construye el adaptador.
func NewTenantRepository(q Querier) *TenantRepo {
	return &TenantRepo{q: q}
}

const tenantColumns = `id, user_id, property_id, name, email, phone, nif, rent, lease_start, lease_end,
	payment_status, notes, created_at, updated_at`

func scanTenant(row pgx.Row) (*entity.Tenant, error) {
	var t entity.Tenant
	var email, phone, nif, notes *string
	if err := row.Scan(&t.ID, &t.UserID, &t.PropertyID, &t.Name, &email, &phone, &nif, &t.Rent,
		&t.LeaseStart, &t.LeaseEnd, &t.PaymentStatus, &notes, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Email, t.Phone, t.NIF, t.Notes = derefStr(email), derefStr(phone), derefStr(nif), derefStr(notes)
	return &t, nil
}

// Create persiste un nuevo inquilino.
func (r *TenantRepo) Create(ctx context.Context, t *entity.Tenant) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `INSERT INTO tenants (`+tenantColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		t.ID, t.UserID, t.PropertyID, t.Name, nullIfEmpty(t.Email), nullIfEmpty(t.Phone), nullIfEmpty(t.NIF),
		t.Rent, t.LeaseStart, t.LeaseEnd, t.PaymentStatus, nullIfEmpty(t.Notes), t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return dbError("insertar inquilino", err)
	}
	return nil
}

// GetByID obtiene un inquilino del usuario; (nil, nil) si no existe.
func (r *TenantRepo) GetByID(ctx context.Context, userID, id string) (*entity.Tenant, error) {
	t, err := scanTenant(r.q.QueryRow(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE user_id = $1 AND id = $2`, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("obtener inquilino", err)
	}
	return t, nil
}

// List inquilinos del usuario por nombre e ID.
func (r *TenantRepo) List(ctx context.Context, userID string) ([]*entity.Tenant, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE user_id = $1 ORDER BY name, id`, userID)
	if err != nil {
		return nil, dbError("listar inquilinos", err)
	}
	defer rows.Close()
	list := make([]*entity.Tenant, 0)
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, dbError("leer inquilino", err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("listar inquilinos", err)
	}
	return list, nil
}

// Update reemplaza los campos editables.
func (r *TenantRepo) Update(ctx context.Context, t *entity.Tenant) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE tenants
		SET property_id = $3, name = $4, email = $5, phone = $6, nif = $7, rent = $8,
		    lease_start = $9, lease_end = $10, payment_status = $11, notes = $12, updated_at = $13
		WHERE user_id = $1 AND id = $2`,
		t.UserID, t.ID, t.PropertyID, t.Name, nullIfEmpty(t.Email), nullIfEmpty(t.Phone), nullIfEmpty(t.NIF),
		t.Rent, t.LeaseStart, t.LeaseEnd, t.PaymentStatus, nullIfEmpty(t.Notes), t.UpdatedAt,
	)
	if err != nil {
		return dbError("actualizar inquilino", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un inquilino.
func (r *TenantRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM tenants WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return dbError("eliminar inquilino", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
