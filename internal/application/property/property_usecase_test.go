package property_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/proman-api/internal/application/dto"
	"github.com/jhoicas/proman-api/internal/application/property"
	"github.com/jhoicas/proman-api/internal/application/validation"
	"github.com/jhoicas/proman-api/internal/domain"
	"github.com/jhoicas/proman-api/internal/domain/entity"
	"github.com/jhoicas/proman-api/internal/domain/repository"
	"github.com/jhoicas/proman-api/internal/infrastructure/memory"
)

const userID = "u-1"

func strPtr(s string) *string { return &s }

func newUseCases() (*property.PropertyUseCase, *property.TenantUseCase, repository.Store) {
	repos := memory.NewStore().Repositories()
	v := validation.New()
	return property.NewPropertyUseCase(repos.Properties, repos.Tenants, v),
		property.NewTenantUseCase(repos.Tenants, repos.Properties, v),
		repos
}

func hasViolation(err error, field, rule string) bool {
	for _, v := range domain.Violations(err) {
		if v.Field == field && v.Rule == rule {
			return true
		}
	}
	return false
}

// ─────────────────────────────────────────────────────────────────────────────
// Inmuebles
// ─────────────────────────────────────────────────────────────────────────────

func TestPropertyCreate(t *testing.T) {
	props, _, _ := newUseCases()
	out, err := props.Create(context.Background(), userID, dto.CreatePropertyRequest{
		Name: "<script>alert(1)</script>T2 Alfama", Address: "Rua dos Remédios 12", PostalCode: "1100-441",
		Rent: decimal.RequireFromString("950.456"),
	})
	require.NoError(t, err)
	assert.Equal(t, "T2 Alfama", out.Name)
	assert.Equal(t, entity.PropertyStatusAvailable, out.Status)
	assert.Equal(t, "950.46", out.Rent.StringFixed(2))
}

func TestPropertyCreate_Validaciones(t *testing.T) {
	props, _, _ := newUseCases()
	_, err := props.Create(context.Background(), userID, dto.CreatePropertyRequest{
		PostalCode: "1100441", Status: "sold", Rent: decimal.NewFromInt(-1),
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, hasViolation(err, "name", "required"))
	assert.True(t, hasViolation(err, "address", "required"))
	assert.True(t, hasViolation(err, "postal_code", "pt_postal_code"))
	assert.True(t, hasViolation(err, "status", "oneof"))
	assert.True(t, hasViolation(err, "rent", "gte"))

	_, err = props.Create(context.Background(), userID, dto.CreatePropertyRequest{Name: "<b></b>", Address: "x"})
	assert.True(t, hasViolation(err, "name", "required"), "un nombre que queda vacío tras limpiar es inválido")
}

func TestProperty_UpdateYDelete(t *testing.T) {
	props, tenants, _ := newUseCases()
	ctx := context.Background()
	p, err := props.Create(ctx, userID, dto.CreatePropertyRequest{Name: "Foz", Address: "Rua do Passeio Alegre 80"})
	require.NoError(t, err)

	upd, err := props.Update(ctx, userID, p.ID, dto.UpdatePropertyRequest{Status: strPtr(entity.PropertyStatusOccupied)})
	require.NoError(t, err)
	assert.Equal(t, entity.PropertyStatusOccupied, upd.Status)
	assert.Equal(t, "Foz", upd.Name)

	tn, err := tenants.Create(ctx, userID, dto.CreateTenantRequest{Name: "Bruno", PropertyID: &p.ID, LeaseStart: "2025-01-01"})
	require.NoError(t, err)
	assert.ErrorIs(t, props.Delete(ctx, userID, p.ID), domain.ErrConflict)

	require.NoError(t, tenants.Delete(ctx, userID, tn.ID))
	require.NoError(t, props.Delete(ctx, userID, p.ID))
	_, err = props.Get(ctx, userID, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProperty_AislamientoPorUsuario(t *testing.T) {
	props, _, _ := newUseCases()
	ctx := context.Background()
	p, err := props.Create(ctx, userID, dto.CreatePropertyRequest{Name: "Foz", Address: "x"})
	require.NoError(t, err)

	_, err = props.Get(ctx, "otro", p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	list, err := props.List(ctx, "otro")
	require.NoError(t, err)
	assert.Empty(t, list)
}

// ─────────────────────────────────────────────────────────────────────────────
// Inquilinos
// ─────────────────────────────────────────────────────────────────────────────

func TestTenantCreate(t *testing.T) {
	props, tenants, _ := newUseCases()
	ctx := context.Background()
	p, err := props.Create(ctx, userID, dto.CreatePropertyRequest{Name: "Foz", Address: "x"})
	require.NoError(t, err)

	out, err := tenants.Create(ctx, userID, dto.CreateTenantRequest{
		PropertyID: &p.ID, Name: "Ana", NIF: "123456789", Email: "ana@example.pt",
		Rent: decimal.NewFromInt(1200), LeaseStart: "2025-01-01", LeaseEnd: strPtr("2025-12-31"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusCurrent, out.PaymentStatus)
	assert.Equal(t, "2025-12-31", *out.LeaseEnd)
}

func TestTenantCreate_Errores(t *testing.T) {
	_, tenants, _ := newUseCases()
	ctx := context.Background()

	_, err := tenants.Create(ctx, userID, dto.CreateTenantRequest{
		Name: "Ana", LeaseStart: "2025-06-01", LeaseEnd: strPtr("2025-05-31"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, hasViolation(err, "lease_end", "gtefield"))

	_, err = tenants.Create(ctx, userID, dto.CreateTenantRequest{Name: "Ana", NIF: "123456780", LeaseStart: "2025-06-01"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, hasViolation(err, "nif", "nif"))

	_, err = tenants.Create(ctx, userID, dto.CreateTenantRequest{Name: "Ana", Email: "no-es-email", LeaseStart: "2025-06-01"})
	assert.True(t, hasViolation(err, "email", "email"))

	_, err = tenants.Create(ctx, userID, dto.CreateTenantRequest{Name: "Ana", PropertyID: strPtr("nope"), LeaseStart: "2025-06-01"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTenantUpdate(t *testing.T) {
	props, tenants, _ := newUseCases()
	ctx := context.Background()
	p, err := props.Create(ctx, userID, dto.CreatePropertyRequest{Name: "Foz", Address: "x"})
	require.NoError(t, err)
	tn, err := tenants.Create(ctx, userID, dto.CreateTenantRequest{
		Name: "Ana", PropertyID: &p.ID, LeaseStart: "2025-01-01", LeaseEnd: strPtr("2025-12-31"),
	})
	require.NoError(t, err)

	_, err = tenants.Update(ctx, userID, tn.ID, dto.UpdateTenantRequest{LeaseStart: strPtr("2026-01-01")})
	require.ErrorIs(t, err, domain.ErrInvalidInput, "el nuevo inicio dejaría el fin antes que el inicio")

	out, err := tenants.Update(ctx, userID, tn.ID, dto.UpdateTenantRequest{
		LeaseEnd: strPtr(""), PropertyID: strPtr(""), Email: strPtr(""), NIF: strPtr(""),
	})
	require.NoError(t, err)
	assert.Nil(t, out.LeaseEnd)
	assert.Nil(t, out.PropertyID)
	assert.Empty(t, out.Email)
	assert.Empty(t, out.NIF)

	_, err = tenants.Update(ctx, userID, tn.ID, dto.UpdateTenantRequest{PropertyID: strPtr("nope")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
