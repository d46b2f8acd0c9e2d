package entity

import "time"

// Estados de una comunicación generada.
const (
	CorrespondenceStatusDraft = "draft"
	CorrespondenceStatusSent  = "sent"
)

// CorrespondenceTemplate plantilla con marcadores {{variable}}.
type CorrespondenceTemplate struct {
	ID        string
	UserID    string
	Name      string
	Type      string // notice, reminder, renewal, welcome, other
	Subject   string
	Content   string
	Variables []string // marcadores encontrados en Subject y Content, en orden de aparición
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Correspondence documento generado a partir de una plantilla.
type Correspondence struct {
	ID         string
	UserID     string
	TemplateID string
	TenantID   *string
	Subject    string
	Content    string
	Status     string
	SentAt     *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
