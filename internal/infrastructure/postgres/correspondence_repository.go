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

var (
	_ repository.TemplateRepository       = (*TemplateRepo)(nil)
	_ repository.CorrespondenceRepository = (*CorrespondenceRepo)(nil)
)

// ── Plantillas ──────────────────────────────────────────────────────────────

// TemplateRepo plantillas de correspondencia; las variables se guardan como TEXT[].
type TemplateRepo struct {
	q Querier
}

// NewTemplateRepository construye el adaptador.
func NewTemplateRepository(q Querier) *TemplateRepo {
	return &TemplateRepo{q: q}
}

const templateColumns = `id, user_id, name, type, subject, content, variables, created_at, updated_at`

func scanTemplate(row pgx.Row) (*entity.CorrespondenceTemplate, error) {
	var t entity.CorrespondenceTemplate
	var subject *string
	if err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Type, &subject, &t.Content, &t.Variables,
		&t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Subject = derefStr(subject)
	return &t, nil
}

func variablesOrEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

// Create persiste una plantilla.
func (r *TemplateRepo) Create(ctx context.Context, t *entity.CorrespondenceTemplate) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `INSERT INTO correspondence_templates (`+templateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.UserID, t.Name, t.Type, nullIfEmpty(t.Subject), t.Content, variablesOrEmpty(t.Variables),
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return dbError("insertar plantilla", err)
	}
	return nil
}

// GetByID obtiene una plantilla; (nil, nil) si no existe.
func (r *TemplateRepo) GetByID(ctx context.Context, userID, id string) (*entity.CorrespondenceTemplate, error) {
	t, err := scanTemplate(r.q.QueryRow(ctx,
		`SELECT `+templateColumns+` FROM correspondence_templates WHERE user_id = $1 AND id = $2`, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("obtener plantilla", err)
	}
	return t, nil
}

// List plantillas por nombre e ID.
func (r *TemplateRepo) List(ctx context.Context, userID string) ([]*entity.CorrespondenceTemplate, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+templateColumns+` FROM correspondence_templates WHERE user_id = $1 ORDER BY name, id`, userID)
	if err != nil {
		return nil, dbError("listar plantillas", err)
	}
	defer rows.Close()
	list := make([]*entity.CorrespondenceTemplate, 0)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, dbError("leer plantilla", err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("listar plantillas", err)
	}
	return list, nil
}

// Update reemplaza los campos editables y las variables.
func (r *TemplateRepo) Update(ctx context.Context, t *entity.CorrespondenceTemplate) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE correspondence_templates
		SET name = $3, type = $4, subject = $5, content = $6, variables = $7, updated_at = $8
		WHERE user_id = $1 AND id = $2`,
		t.UserID, t.ID, t.Name, t.Type, nullIfEmpty(t.Subject), t.Content, variablesOrEmpty(t.Variables), t.UpdatedAt,
	)
	if err != nil {
		return dbError("actualizar plantilla", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una plantilla.
func (r *TemplateRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM correspondence_templates WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return dbError("eliminar plantilla", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ── Documentos generados ────────────────────────────────────────────────────

// CorrespondenceRepo documentos generados a partir de plantillas.
type CorrespondenceRepo struct {
	q Querier
}

// NewCorrespondenceRepository construye el adaptador.
func NewCorrespondenceRepository(q Querier) *CorrespondenceRepo {
	return &CorrespondenceRepo{q: q}
}

const correspondenceColumns = `id, user_id, template_id, tenant_id, subject, content, status, sent_at, created_at, updated_at`

func scanCorrespondence(row pgx.Row) (*entity.Correspondence, error) {
	var c entity.Correspondence
	var subject *string
	if err := row.Scan(&c.ID, &c.UserID, &c.TemplateID, &c.TenantID, &subject, &c.Content, &c.Status,
		&c.SentAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Subject = derefStr(subject)
	return &c, nil
}

// Create persiste un documento.
func (r *CorrespondenceRepo) Create(ctx context.Context, c *entity.Correspondence) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `INSERT INTO correspondences (`+correspondenceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.UserID, c.TemplateID, c.TenantID, nullIfEmpty(c.Subject), c.Content, c.Status,
		c.SentAt, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return dbError("insertar comunicación", err)
	}
	return nil
}

// GetByID obtiene un documento; (nil, nil) si no existe.
func (r *CorrespondenceRepo) GetByID(ctx context.Context, userID, id string) (*entity.Correspondence, error) {
	c, err := scanCorrespondence(r.q.QueryRow(ctx,
		`SELECT `+correspondenceColumns+` FROM correspondences WHERE user_id = $1 AND id = $2`, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("obtener comunicación", err)
	}
	return c, nil
}

// List documentos del usuario, más recientes primero.
func (r *CorrespondenceRepo) List(ctx context.Context, userID string) ([]*entity.Correspondence, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+correspondenceColumns+` FROM correspondences WHERE user_id = $1 ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, dbError("listar comunicaciones", err)
	}
	defer rows.Close()
	list := make([]*entity.Correspondence, 0)
	for rows.Next() {
		c, err := scanCorrespondence(rows)
		if err != nil {
			return nil, dbError("leer comunicación", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("listar comunicaciones", err)
	}
	return list, nil
}

// Update guarda estado y fecha de envío.
func (r *CorrespondenceRepo) Update(ctx context.Context, c *entity.Correspondence) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE correspondences SET status = $3, sent_at = $4, updated_at = $5
		WHERE user_id = $1 AND id = $2`,
		c.UserID, c.ID, c.Status, c.SentAt, c.UpdatedAt,
	)
	if err != nil {
		return dbError("actualizar comunicación", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
