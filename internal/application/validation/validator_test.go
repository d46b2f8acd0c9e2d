package validation_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/proman-api/internal/application/dto"
	"github.com/jhoicas/proman-api/internal/application/validation"
	"github.com/jhoicas/proman-api/internal/domain"
)

func fields(v []domain.Violation) []string {
	out := make([]string, 0, len(v))
	for _, x := range v {
		out = append(out, x.Field)
	}
	return out
}

func validSAFT() dto.SAFTExportRequest {
	return dto.SAFTExportRequest{
		FiscalYear: 2025, StartMonth: 1, EndMonth: 3,
		CompanyInfo: dto.SAFTCompanyInfo{
			NIF: "123456789", Name: "Gestão Lda", Address: "Rua A 1", City: "Lisboa", PostalCode: "1000-001",
		},
	}
}

func TestStruct_SAFTValido(t *testing.T) {
	v := validation.New()
	assert.Empty(t, v.Struct(validSAFT()))
}

func TestStruct_ReportaTodasLasViolaciones(t *testing.T) {
	v := validation.New()
	req := validSAFT()
	req.CompanyInfo.NIF = "12345"
	req.CompanyInfo.PostalCode = "1000001"
	req.StartMonth = 13

	got := v.Struct(req)
	assert.ElementsMatch(t,
		[]string{"company_info.nif", "company_info.postal_code", "start_month"},
		fields(got))
}

func TestStruct_CamposObligatoriosDeEmpresa(t *testing.T) {
	v := validation.New()
	req := validSAFT()
	req.CompanyInfo = dto.SAFTCompanyInfo{}
	got := v.Struct(req)
	assert.ElementsMatch(t, []string{
		"company_info.nif", "company_info.name", "company_info.address",
		"company_info.city", "company_info.postal_code",
	}, fields(got))
}

func TestStruct_DecimalGtCero(t *testing.T) {
	v := validation.New()
	req := dto.CreateReceiptRequest{
		TenantID: "t1", Amount: decimal.Zero, Date: "2025-01-01", Type: "rent",
	}
	got := v.Struct(req)
	require.Len(t, got, 1)
	assert.Equal(t, "amount", got[0].Field)

	req.Amount = decimal.RequireFromString("-5")
	got = v.Struct(req)
	require.Len(t, got, 1)
	assert.Equal(t, "gt", got[0].Rule)

	req.Amount = decimal.RequireFromString("0.01")
	assert.Empty(t, v.Struct(req))
}

func TestStruct_FechaYEnum(t *testing.T) {
	v := validation.New()
	req := dto.CreateExpenseRequest{
		PropertyID: "p1", Amount: decimal.NewFromInt(10), Date: "2025-13-01", Category: "yacht",
	}
	assert.ElementsMatch(t, []string{"date", "category"}, fields(v.Struct(req)))
}

func TestStruct_NIFDeInquilino(t *testing.T) {
	v := validation.New()
	req := dto.CreateTenantRequest{Name: "Ana", LeaseStart: "2025-01-01", NIF: "123456780"}
	got := v.Struct(req)
	require.Len(t, got, 1)
	assert.Equal(t, "nif", got[0].Rule)
}

func TestStruct_UpdateAceptaVaciarCampos(t *testing.T) {
	v := validation.New()
	empty := ""
	req := dto.UpdateTenantRequest{Email: &empty, NIF: &empty, LeaseEnd: &empty}
	assert.Empty(t, v.Struct(req))
	assert.Empty(t, v.Struct(dto.UpdatePropertyRequest{PostalCode: &empty}))
}

func TestStruct_UpdateValidaValoresNoVacios(t *testing.T) {
	v := validation.New()
	email, nif, end := "no-es-email", "123456780", "2025-02-30"
	got := v.Struct(dto.UpdateTenantRequest{Email: &email, NIF: &nif, LeaseEnd: &end})
	require.Len(t, got, 3)
	rules := map[string]string{}
	for _, x := range got {
		rules[x.Field] = x.Rule
	}
	assert.Equal(t, map[string]string{"email": "email", "nif": "nif", "lease_end": "ymd"}, rules)

	start := ""
	got = v.Struct(dto.UpdateTenantRequest{LeaseStart: &start})
	require.Len(t, got, 1, "lease_start no se puede vaciar")
	assert.Equal(t, "lease_start", got[0].Field)
}

func TestValidate_DevuelveValidationError(t *testing.T) {
	err := validation.New().Validate(dto.CreateTemplateRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// ── DecodeStrict ────────────────────────────────────────────────────────────

func TestDecodeStrict_RechazaCamposDesconocidos(t *testing.T) {
	var req dto.SAFTExportRequest
	err := validation.DecodeStrict([]byte(`{"fiscal_year":2025,"dataMode":"mock"}`), &req)
	require.Error(t, err)
	v := domain.Violations(err)
	require.Len(t, v, 1)
	assert.Equal(t, "dataMode", v[0].Field)
	assert.Equal(t, "unknown_field", v[0].Rule)
}

func TestDecodeStrict_TipoInvalido(t *testing.T) {
	var req dto.SAFTExportRequest
	err := validation.DecodeStrict([]byte(`{"fiscal_year":"2025"}`), &req)
	require.Error(t, err)
	assert.Equal(t, "fiscal_year", domain.Violations(err)[0].Field)
}

func TestDecodeStrict_DatosSobrantesYVacio(t *testing.T) {
	var req dto.SAFTExportRequest
	assert.Error(t, validation.DecodeStrict([]byte(`{} {}`), &req))
	assert.Error(t, validation.DecodeStrict([]byte(`  `), &req))
	assert.Error(t, validation.DecodeStrict([]byte(`{"fiscal_year":`), &req))
	assert.NoError(t, validation.DecodeStrict([]byte(`{"fiscal_year":2025}`), &req))
	assert.Equal(t, 2025, req.FiscalYear)
}

func TestRejectUnknownKeys(t *testing.T) {
	got := validation.RejectUnknownKeys([]string{"year", "start_date", "zeta", "format"}, "year", "format")
	assert.Equal(t, []string{"start_date", "zeta"}, fields(got))
}
