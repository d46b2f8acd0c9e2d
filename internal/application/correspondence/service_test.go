package correspondence_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/proman-api/internal/application/correspondence"
	"github.com/jhoicas/proman-api/internal/application/dto"
	"github.com/jhoicas/proman-api/internal/application/validation"
	"github.com/jhoicas/proman-api/internal/domain"
	"github.com/jhoicas/proman-api/internal/domain/entity"
	"github.com/jhoicas/proman-api/internal/infrastructure/memory"
)

const userID = "u-1"

func fixedNow() time.Time { return time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC) }

func strPtr(s string) *string { return &s }

func newService(t *testing.T) *correspondence.Service {
	t.Helper()
	ctx := context.Background()
	repos := memory.NewStore().Repositories()
	pid := "p-1"
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repos.Properties.Create(ctx, &entity.Property{ID: pid, UserID: userID, Name: "T2 Alfama", Address: "Rua dos Remédios 12"}))
	require.NoError(t, repos.Tenants.Create(ctx, &entity.Tenant{
		ID: "t-1", UserID: userID, PropertyID: &pid, Name: "Ana Sousa", Email: "ana@example.pt",
		Rent: decimal.NewFromInt(950), LeaseStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), LeaseEnd: &end,
	}))
	return correspondence.NewService(
		repos.Templates, repos.Correspondences, repos.Tenants, repos.Properties, validation.New(), zerolog.Nop(),
	).WithClock(fixedNow)
}

func createTemplate(t *testing.T, s *correspondence.Service) *dto.TemplateResponse {
	t.Helper()
	tpl, err := s.CreateTemplate(context.Background(), userID, dto.CreateTemplateRequest{
		Name:    "Aviso de renda",
		Type:    "reminder",
		Subject: "Renda de {{property_name}} ({{current_year}})",
		Content: "<p>Caro(a) {{tenant_name}}, a renda de {{rent_amount}} EUR vence a {{due_date}}. Lisboa, {{current_date}}.</p>",
	})
	require.NoError(t, err)
	return tpl
}

// ─────────────────────────────────────────────────────────────────────────────
// Plantillas
// ─────────────────────────────────────────────────────────────────────────────

func TestCreateTemplate_DescubreVariables(t *testing.T) {
	s := newService(t)
	tpl := createTemplate(t, s)
	assert.Equal(t, []string{"property_name", "current_year", "tenant_name", "rent_amount", "due_date", "current_date"}, tpl.Variables)
}

func TestCreateTemplate_SaneaContenido(t *testing.T) {
	s := newService(t)
	tpl, err := s.CreateTemplate(context.Background(), userID, dto.CreateTemplateRequest{
		Name: "x", Content: `<p onclick="evil()">Olá {{tenant_name}}</p><script>alert(1)</script>`,
	})
	require.NoError(t, err)
	assert.Equal(t, "<p>Olá {{tenant_name}}</p>", tpl.Content)
	assert.Equal(t, "other", tpl.Type)
	assert.Equal(t, []string{"tenant_name"}, tpl.Variables)
}

func TestUpdateTemplate_RecalculaVariables(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	tpl := createTemplate(t, s)

	upd, err := s.UpdateTemplate(ctx, userID, tpl.ID, dto.UpdateTemplateRequest{Content: strPtr("Olá {{tenant_name}}")})
	require.NoError(t, err)
	assert.Equal(t, []string{"property_name", "current_year", "tenant_name"}, upd.Variables)

	require.NoError(t, s.DeleteTemplate(ctx, userID, tpl.ID))
	_, err = s.GetTemplate(ctx, userID, tpl.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateTemplate_Validacion(t *testing.T) {
	s := newService(t)
	_, err := s.CreateTemplate(context.Background(), userID, dto.CreateTemplateRequest{Type: "spam"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Len(t, domain.Violations(err), 3)
}

// ─────────────────────────────────────────────────────────────────────────────
// Generación
// ─────────────────────────────────────────────────────────────────────────────

func TestGenerate_ConInquilino(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	tpl := createTemplate(t, s)

	out, err := s.Generate(ctx, userID, dto.GenerateCorrespondenceRequest{
		TemplateID: tpl.ID, TenantID: strPtr("t-1"),
		Variables: map[string]string{"due_date": "08/04/2025"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, entity.CorrespondenceStatusDraft, out.Status)
	assert.Equal(t, "Renda de T2 Alfama (2025)", out.Subject)
	assert.Equal(t, "<p>Caro(a) Ana Sousa, a renda de 950.00 EUR vence a 08/04/2025. Lisboa, 20/03/2025.</p>", out.Content)

	got, err := s.Get(ctx, userID, out.ID)
	require.NoError(t, err)
	assert.Equal(t, out.Content, got.Content)
}

func TestGenerate_ElLlamadorPrevalece(t *testing.T) {
	s := newService(t)
	tpl := createTemplate(t, s)

	out, err := s.Preview(context.Background(), userID, dto.GenerateCorrespondenceRequest{
		TemplateID: tpl.ID, TenantID: strPtr("t-1"),
		Variables: map[string]string{"tenant_name": "Sra. Ana", "current_year": "2030"},
	})
	require.NoError(t, err)
	assert.Contains(t, out.Content, "Caro(a) Sra. Ana,")
	assert.Contains(t, out.Content, "{{due_date}}", "los marcadores sin valor quedan literales")
	assert.Equal(t, "Renda de T2 Alfama (2030)", out.Subject)
	assert.Empty(t, out.ID, "preview no persiste")
}

func TestGenerate_SinInquilino(t *testing.T) {
	s := newService(t)
	tpl := createTemplate(t, s)

	out, err := s.Preview(context.Background(), userID, dto.GenerateCorrespondenceRequest{TemplateID: tpl.ID})
	require.NoError(t, err)
	assert.Equal(t, "Renda de {{property_name}} (2025)", out.Subject)
}

func TestGenerate_NoEncontrado(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	tpl := createTemplate(t, s)

	_, err := s.Generate(ctx, userID, dto.GenerateCorrespondenceRequest{TemplateID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.Generate(ctx, userID, dto.GenerateCorrespondenceRequest{TemplateID: tpl.ID, TenantID: strPtr("nope")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.Generate(ctx, "otro", dto.GenerateCorrespondenceRequest{TemplateID: tpl.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMarkSent(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	tpl := createTemplate(t, s)
	out, err := s.Generate(ctx, userID, dto.GenerateCorrespondenceRequest{TemplateID: tpl.ID})
	require.NoError(t, err)

	sent, err := s.MarkSent(ctx, userID, out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CorrespondenceStatusSent, sent.Status)
	require.NotNil(t, sent.SentAt)
	assert.True(t, sent.SentAt.Equal(fixedNow()))

	_, err = s.MarkSent(ctx, userID, out.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	list, err := s.List(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
