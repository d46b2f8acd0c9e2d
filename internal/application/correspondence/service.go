// Package correspondence gestiona plantillas y genera comunicaciones para inquilinos.
package correspondence

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/proman-api/internal/application/dto"
	"github.com/jhoicas/proman-api/internal/application/validation"
	"github.com/jhoicas/proman-api/internal/domain"
	domcorr "github.com/jhoicas/proman-api/internal/domain/correspondence"
	"github.com/jhoicas/proman-api/internal/domain/entity"
	"github.com/jhoicas/proman-api/internal/domain/repository"
	"github.com/jhoicas/proman-api/pkg/sanitize"
)

// Variables que se rellenan a partir del inquilino y su inmueble.
const (
	VarTenantName      = "tenant_name"
	VarTenantEmail     = "tenant_email"
	VarPropertyName    = "property_name"
	VarPropertyAddress = "property_address"
	VarRentAmount      = "rent_amount"
	VarLeaseStart      = "lease_start"
	VarLeaseEnd        = "lease_end"
)

// Service plantillas (CRUD) y documentos generados.
type Service struct {
	templates       repository.TemplateRepository
	correspondences repository.CorrespondenceRepository
	tenants         repository.TenantRepository
	properties      repository.PropertyRepository
	validator       *validation.Validator
	log             zerolog.Logger
	now             func() time.Time
}

// NewService construye el servicio.
func NewService(
	templates repository.TemplateRepository,
	correspondences repository.CorrespondenceRepository,
	tenants repository.TenantRepository,
	properties repository.PropertyRepository,
	validator *validation.Validator,
	log zerolog.Logger,
) *Service {
	return &Service{
		templates:       templates,
		correspondences: correspondences,
		tenants:         tenants,
		properties:      properties,
		validator:       validator,
		log:             log,
		now:             time.Now,
	}
}

// WithClock fija el reloj (current_date, current_year y fechas de envío).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ── Plantillas ──────────────────────────────────────────────────────────────

// CreateTemplate persiste la plantilla con sus variables ya descubiertas.
func (s *Service) CreateTemplate(ctx context.Context, userID string, in dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}
	typ := in.Type
	if typ == "" {
		typ = "other"
	}
	now := s.now()
	t := &entity.CorrespondenceTemplate{
		UserID:    userID,
		Name:      sanitize.Text(in.Name),
		Type:      typ,
		Subject:   sanitize.Text(in.Subject),
		Content:   sanitize.RichText(in.Content),
		CreatedAt: now,
		UpdatedAt: now,
	}
	t.Variables = domcorr.Variables(t.Subject, t.Content)
	if err := s.templates.Create(ctx, t); err != nil {
		return nil, err
	}
	out := dto.NewTemplateResponse(t)
	return &out, nil
}

// GetTemplate obtiene una plantilla.
func (s *Service) GetTemplate(ctx context.Context, userID, id string) (*dto.TemplateResponse, error) {
	t, err := s.loadTemplate(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewTemplateResponse(t)
	return &out, nil
}

// ListTemplates plantillas del usuario.
func (s *Service) ListTemplates(ctx context.Context, userID string) ([]dto.TemplateResponse, error) {
	list, err := s.templates.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TemplateResponse, 0, len(list))
	for _, t := range list {
		items = append(items, dto.NewTemplateResponse(t))
	}
	return items, nil
}

// UpdateTemplate modifica los campos enviados y recalcula las variables.
func (s *Service) UpdateTemplate(ctx context.Context, userID, id string, in dto.UpdateTemplateRequest) (*dto.TemplateResponse, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}
	t, err := s.loadTemplate(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		t.Name = sanitize.Text(*in.Name)
	}
	if in.Type != nil {
		t.Type = *in.Type
	}
	if in.Subject != nil {
		t.Subject = sanitize.Text(*in.Subject)
	}
	if in.Content != nil {
		t.Content = sanitize.RichText(*in.Content)
	}
	t.Variables = domcorr.Variables(t.Subject, t.Content)
	t.UpdatedAt = s.now()
	if err := s.templates.Update(ctx, t); err != nil {
		return nil, err
	}
	out := dto.NewTemplateResponse(t)
	return &out, nil
}

// DeleteTemplate elimina una plantilla; los documentos ya generados se conservan.
func (s *Service) DeleteTemplate(ctx context.Context, userID, id string) error {
	if _, err := s.loadTemplate(ctx, userID, id); err != nil {
		return err
	}
	return s.templates.Delete(ctx, userID, id)
}

// ── Documentos ──────────────────────────────────────────────────────────────

// Preview sustituye las variables sin persistir nada.
func (s *Service) Preview(ctx context.Context, userID string, in dto.GenerateCorrespondenceRequest) (*dto.CorrespondenceResponse, error) {
	c, err := s.render(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	out := dto.NewCorrespondenceResponse(c)
	return &out, nil
}

// Generate sustituye las variables y guarda el resultado como borrador.
func (s *Service) Generate(ctx context.Context, userID string, in dto.GenerateCorrespondenceRequest) (*dto.CorrespondenceResponse, error) {
	c, err := s.render(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	if err := s.correspondences.Create(ctx, c); err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", userID).Str("template_id", c.TemplateID).Str("correspondence_id", c.ID).
		Msg("correspondencia generada")
	out := dto.NewCorrespondenceResponse(c)
	return &out, nil
}

// List documentos generados por el usuario.
func (s *Service) List(ctx context.Context, userID string) ([]dto.CorrespondenceResponse, error) {
	list, err := s.correspondences.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CorrespondenceResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.NewCorrespondenceResponse(c))
	}
	return items, nil
}

// Get obtiene un documento generado.
func (s *Service) Get(ctx context.Context, userID, id string) (*dto.CorrespondenceResponse, error) {
	c, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewCorrespondenceResponse(c)
	return &out, nil
}

// MarkSent registra el envío. Marcar dos veces devuelve domain.ErrConflict.
func (s *Service) MarkSent(ctx context.Context, userID, id string) (*dto.CorrespondenceResponse, error) {
	c, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if c.Status == entity.CorrespondenceStatusSent {
		return nil, fmt.Errorf("%w: la comunicación ya fue enviada", domain.ErrConflict)
	}
	now := s.now()
	c.Status = entity.CorrespondenceStatusSent
	c.SentAt = &now
	c.UpdatedAt = now
	if err := s.correspondences.Update(ctx, c); err != nil {
		return nil, err
	}
	out := dto.NewCorrespondenceResponse(c)
	return &out, nil
}

// render arma el documento: integrados < inquilino/inmueble < variables del llamador.
func (s *Service) render(ctx context.Context, userID string, in dto.GenerateCorrespondenceRequest) (*entity.Correspondence, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}
	tpl, err := s.loadTemplate(ctx, userID, in.TemplateID)
	if err != nil {
		return nil, err
	}

	entityVars := map[string]string{}
	if in.TenantID != nil {
		entityVars, err = s.tenantVariables(ctx, userID, *in.TenantID)
		if err != nil {
			return nil, err
		}
	}

	now := s.now()
	vars := domcorr.MergeVariables(domcorr.BuiltinVariables(now), entityVars, in.Variables)
	return &entity.Correspondence{
		UserID:     userID,
		TemplateID: tpl.ID,
		TenantID:   in.TenantID,
		Subject:    domcorr.Parse(tpl.Subject).Execute(vars),
		Content:    domcorr.Parse(tpl.Content).Execute(vars),
		Status:     entity.CorrespondenceStatusDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func (s *Service) tenantVariables(ctx context.Context, userID, tenantID string) (map[string]string, error) {
	t, err := s.tenants.GetByID(ctx, userID, tenantID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: inquilino %s", domain.ErrNotFound, tenantID)
	}
	vars := map[string]string{
		VarTenantName:  t.Name,
		VarTenantEmail: t.Email,
		VarRentAmount:  t.Rent.StringFixed(2),
		VarLeaseStart:  t.LeaseStart.Format("02/01/2006"),
	}
	if t.LeaseEnd != nil {
		vars[VarLeaseEnd] = t.LeaseEnd.Format("02/01/2006")
	}
	if t.PropertyID != nil {
		p, err := s.properties.GetByID(ctx, userID, *t.PropertyID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			vars[VarPropertyName] = p.Name
			vars[VarPropertyAddress] = p.Address
		}
	}
	return vars, nil
}

func (s *Service) loadTemplate(ctx context.Context, userID, id string) (*entity.CorrespondenceTemplate, error) {
	t, err := s.templates.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: plantilla %s", domain.ErrNotFound, id)
	}
	return t, nil
}

func (s *Service) load(ctx context.Context, userID, id string) (*entity.Correspondence, error) {
	c, err := s.correspondences.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: comunicación %s", domain.ErrNotFound, id)
	}
	return c, nil
}
