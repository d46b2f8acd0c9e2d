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

var _ repository.PropertyRepository = (*PropertyRepo)(nil)

// PropertyRepo implementación de PropertyRepository (usable con pool o tx).
type PropertyRepo struct {
	q Querier
}

// NewPropertyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPropertyRepository(q Querier) *PropertyRepo {
	return &PropertyRepo{q: q}
}

const propertyColumns = `id, user_id, name, address, city, postal_code, type, bedrooms, rent, status, created_at, updated_at`

func scanProperty(row pgx.Row) (*entity.Property, error) {
	var p entity.Property
	var city, postal, typ *string
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Address, &city, &postal, &typ,
		&p.Bedrooms, &p.Rent, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.City, p.PostalCode, p.Type = derefStr(city), derefStr(postal), derefStr(typ)
	return &p, nil
}

// Create persiste un nuevo inmueble.
func (r *PropertyRepo) Create(ctx context.Context, p *entity.Property) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `INSERT INTO properties (`+propertyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, p.UserID, p.Name, p.Address, nullIfEmpty(p.City), nullIfEmpty(p.PostalCode), nullIfEmpty(p.Type),
		p.Bedrooms, p.Rent, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return dbError("insertar inmueble", err)
	}
	return nil
}

// GetByID obtiene un inmueble del usuario; (nil, nil) si no existe.
func (r *PropertyRepo) GetByID(ctx context.Context, userID, id string) (*entity.Property, error) {
	p, err := scanProperty(r.q.QueryRow(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE user_id = $1 AND id = $2`, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("obtener inmueble", err)
	}
	return p, nil
}

// List inmuebles del usuario por nombre e ID.
func (r *PropertyRepo) List(ctx context.Context, userID string) ([]*entity.Property, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE user_id = $1 ORDER BY name, id`, userID)
	if err != nil {
		return nil, dbError("listar inmuebles", err)
	}
	defer rows.Close()
	list := make([]*entity.Property, 0)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, dbError("leer inmueble", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("listar inmuebles", err)
	}
	return list, nil
}

// Update reemplaza los campos editables.
func (r *PropertyRepo) Update(ctx context.Context, p *entity.Property) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE properties
		SET name = $3, address = $4, city = $5, postal_code = $6, type = $7,
		    bedrooms = $8, rent = $9, status = $10, updated_at = $11
		WHERE user_id = $1 AND id = $2`,
		p.UserID, p.ID, p.Name, p.Address, nullIfEmpty(p.City), nullIfEmpty(p.PostalCode), nullIfEmpty(p.Type),
		p.Bedrooms, p.Rent, p.Status, p.UpdatedAt,
	)
	if err != nil {
		return dbError("actualizar inmueble", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un inmueble.
func (r *PropertyRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM properties WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return dbError("eliminar inmueble", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
