package dto

import (
	"time"

	"github.com/jhoicas/proman-api/internal/domain/entity"
)

// CreateTemplateRequest body para POST /api/templates.
type CreateTemplateRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Type    string `json:"type" validate:"omitempty,oneof=notice reminder renewal welcome other"`
	Subject string `json:"subject" validate:"omitempty,max=300"`
	Content string `json:"content" validate:"required,min=1,max=20000"`
}

// UpdateTemplateRequest body para PUT /api/templates/:id.
type UpdateTemplateRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Type    *string `json:"type" validate:"omitempty,oneof=notice reminder renewal welcome other"`
	Subject *string `json:"subject" validate:"omitempty,max=300"`
	Content *string `json:"content" validate:"omitempty,min=1,max=20000"`
}

// TemplateResponse plantilla en respuestas.
type TemplateResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Subject   string    `json:"subject"`
	Content   string    `json:"content"`
	Variables []string  `json:"variables"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTemplateResponse mapea la entidad.
func NewTemplateResponse(t *entity.CorrespondenceTemplate) TemplateResponse {
	vars := t.Variables
	if vars == nil {
		vars = []string{}
	}
	return TemplateResponse{
		ID: t.ID, Name: t.Name, Type: t.Type, Subject: t.Subject, Content: t.Content,
		Variables: vars, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt,
	}
}

// GenerateCorrespondenceRequest body para POST /api/correspondence y /preview.
type GenerateCorrespondenceRequest struct {
	TemplateID string            `json:"template_id" validate:"required"`
	TenantID   *string           `json:"tenant_id" validate:"omitempty,min=1"`
	Variables  map[string]string `json:"variables" validate:"omitempty,max=100"`
}

// CorrespondenceResponse documento generado.
type CorrespondenceResponse struct {
	ID         string     `json:"id,omitempty"`
	TemplateID string     `json:"template_id"`
	TenantID   *string    `json:"tenant_id"`
	Subject    string     `json:"subject"`
	Content    string     `json:"content"`
	Status     string     `json:"status"`
	SentAt     *time.Time `json:"sent_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewCorrespondenceResponse mapea la entidad.
func NewCorrespondenceResponse(c *entity.Correspondence) CorrespondenceResponse {
	return CorrespondenceResponse{
		ID: c.ID, TemplateID: c.TemplateID, TenantID: c.TenantID, Subject: c.Subject,
		Content: c.Content, Status: c.Status, SentAt: c.SentAt, CreatedAt: c.CreatedAt,
	}
}
