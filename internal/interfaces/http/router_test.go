package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/proman-api/internal/application/billing"
	"github.com/jhoicas/proman-api/internal/application/correspondence"
	"github.com/jhoicas/proman-api/internal/application/dto"
	"github.com/jhoicas/proman-api/internal/application/property"
	"github.com/jhoicas/proman-api/internal/application/reports"
	appsaft "github.com/jhoicas/proman-api/internal/application/saft"
	"github.com/jhoicas/proman-api/internal/application/validation"
	"github.com/jhoicas/proman-api/internal/domain"
	"github.com/jhoicas/proman-api/internal/infrastructure/memory"
	"github.com/jhoicas/proman-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/proman-api/internal/infrastructure/pdf"
	infrasaft "github.com/jhoicas/proman-api/internal/infrastructure/saft"
	"github.com/jhoicas/proman-api/internal/infrastructure/spreadsheet"
	apphttp "github.com/jhoicas/proman-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Aplicación completa sobre el almacén en memoria
// ──────────────────────────────────────────────────────────────────────────────

func clock() time.Time { return time.Date(2025, 3, 20, 10, 30, 0, 0, time.UTC) }

// newTestApp monta el router con la cartera de demostración de testUserID (enero a marzo de 2025).
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	store.SeedDemo(testUserID, clock())
	repos := store.Repositories()
	v := validation.New()
	log := zerolog.Nop()
	m := metrics.New()

	app := apphttp.NewApp(apphttp.ServerConfig{Name: "proman-test", Log: log, Metrics: m})
	apphttp.Router(app, apphttp.RouterDeps{
		ServiceName: "proman-test",
		PropertyUC:  property.NewPropertyUseCase(repos.Properties, repos.Tenants, v),
		TenantUC:    property.NewTenantUseCase(repos.Tenants, repos.Properties, v),
		InvoiceUC:   billing.NewInvoiceUseCase(repos.Invoices, repos.Tenants, store, v, log).WithClock(clock),
		ReceiptUC:   billing.NewReceiptUseCase(repos.Receipts, repos.Tenants, repos.Invoices, store, v).WithClock(clock),
		ExpenseUC:   billing.NewExpenseUseCase(repos.Expenses, repos.Properties, v).WithClock(clock),
		InvoicePDF:  billing.NewPDFUseCase(repos.Invoices, repos.Tenants, repos.Properties, infrapdf.NewMarotoPDFGenerator()),
		Correspondence: correspondence.NewService(
			repos.Templates, repos.Correspondences, repos.Tenants, repos.Properties, v, log,
		).WithClock(clock),
		Reports:     reports.NewGenerator(repos.Financial, log).WithClock(clock),
		Spreadsheet: spreadsheet.NewExcelizeWriter(),
		SAFTExport: appsaft.NewExportUseCase(repos.Financial, v, infrasaft.NewXMLBuilderService(), infrasaft.ProductData{
			ProductID: "Proman/Proman", ProductVersion: "1.0", ProductCompanyTaxID: "999999990", SoftwareCertificateNumber: "0",
		}, log).WithClock(clock),
		Metrics:   m,
		JWTSecret: testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, target, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", bearer(t, testUserID))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeData(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func readAll(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return b
}

const saftBody = `{
	"fiscal_year": 2025, "start_month": 1, "end_month": 3,
	"company_info": {"nif": "123456789", "name": "Proman Lda", "address": "Rua Augusta 1",
		"city": "Lisboa", "postal_code": "1100-048"}
}`

// ──────────────────────────────────────────────────────────────────────────────
// Rutas públicas y autenticación
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_HealthPublico(t *testing.T) {
	app := newTestApp(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_RutaProtegidaSinToken(t *testing.T) {
	app := newTestApp(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/properties", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_DatosAisladosPorUsuario(t *testing.T) {
	app := newTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/invoices/demo-inv-2025-01-1", nil)
	req.Header.Set("Authorization", bearer(t, "otro-usuario"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// CRUD y mapeo de errores
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_PropertyCRUD(t *testing.T) {
	app := newTestApp(t)

	resp := call(t, app, http.MethodPost, "/api/properties",
		`{"name":"T1 Graça","address":"Rua da Graça 3","postal_code":"1170-165","rent":"700"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.PropertyResponse
	decodeData(t, resp, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "available", created.Status)

	resp = call(t, app, http.MethodGet, "/api/properties/"+created.ID, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, app, http.MethodDelete, "/api/properties/"+created.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var del dto.DeletedResponse
	decodeData(t, resp, &del)
	assert.True(t, del.Deleted)

	resp = call(t, app, http.MethodGet, "/api/properties/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_ValidacionDevuelveTodasLasViolaciones(t *testing.T) {
	app := newTestApp(t)

	resp := call(t, app, http.MethodPost, "/api/properties", `{"name":"","address":"","postal_code":"1100"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeError(t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	fields := map[string]bool{}
	for _, v := range body.Details {
		fields[v.Field] = true
	}
	assert.True(t, fields["name"])
	assert.True(t, fields["address"])
	assert.True(t, fields["postal_code"])
}

func TestRouter_CampoDesconocido(t *testing.T) {
	app := newTestApp(t)
	resp := call(t, app, http.MethodPost, "/api/expenses", `{"property_id":"demo-prop-1","hack":true}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeError(t, resp)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "hack", body.Details[0].Field)
}

func TestRouter_BorrarInmuebleConInquilinosEsConflicto(t *testing.T) {
	app := newTestApp(t)
	resp := call(t, app, http.MethodDelete, "/api/properties/demo-prop-1", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", decodeError(t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Facturas
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_ReciboDesdeFactura(t *testing.T) {
	app := newTestApp(t)

	resp := call(t, app, http.MethodPost, "/api/invoices/demo-inv-2025-03-1/receipt", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var rcpt dto.ReceiptResponse
	decodeData(t, resp, &rcpt)
	assert.Equal(t, "demo-tenant-1", rcpt.TenantID)

	resp = call(t, app, http.MethodGet, "/api/invoices/demo-inv-2025-03-1", "")
	var inv dto.InvoiceResponse
	decodeData(t, resp, &inv)
	assert.Equal(t, "paid", inv.Status)

	resp = call(t, app, http.MethodPost, "/api/invoices/demo-inv-2025-03-1/receipt", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRouter_PagarSinCuerpoYAnularPagadaEsConflicto(t *testing.T) {
	app := newTestApp(t)

	resp := call(t, app, http.MethodPost, "/api/invoices/demo-inv-2025-03-2/pay", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var inv dto.InvoiceResponse
	decodeData(t, resp, &inv)
	assert.Equal(t, "paid", inv.Status)
	require.NotNil(t, inv.PaidDate)
	assert.Equal(t, "2025-03-20", *inv.PaidDate)

	resp = call(t, app, http.MethodPost, "/api/invoices/demo-inv-2025-03-2/cancel", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRouter_PDF(t *testing.T) {
	app := newTestApp(t)
	resp := call(t, app, http.MethodGet, "/api/invoices/demo-inv-2025-01-1/pdf", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "factura_")
	assert.True(t, bytes.HasPrefix(readAll(t, resp), []byte("%PDF")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_ReporteFinancieroJSON(t *testing.T) {
	app := newTestApp(t)
	resp := call(t, app, http.MethodGet, "/api/reports/financial?start_date=2025-01-01&end_date=2025-02-28", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rep dto.FinancialReport
	decodeData(t, resp, &rep)
	assert.True(t, rep.TotalIncome.Equal(decimal.NewFromInt(4800)), rep.TotalIncome.String())
	assert.True(t, rep.TotalExpenses.Equal(decimal.RequireFromString("411.80")), rep.TotalExpenses.String())
	assert.Equal(t, 4, rep.IncomeCount)
}

func TestRouter_ReporteCSVyXLSX(t *testing.T) {
	app := newTestApp(t)

	resp := call(t, app, http.MethodGet, "/api/reports/invoice_summary?format=csv", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, reports.ContentTypeCSV, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "invoice_summary-report-2025-03-20.csv")

	resp = call(t, app, http.MethodGet, "/api/reports/rent_roll?format=xlsx", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, reports.ContentTypeXLSX, resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(readAll(t, resp), []byte("PK")))

	resp = call(t, app, http.MethodGet, "/metrics", "")
	metricsBody := string(readAll(t, resp))
	assert.Contains(t, metricsBody, `proman_reports_generated_total{format="csv",type="invoice_summary"} 1`)
	assert.Contains(t, metricsBody, `proman_reports_generated_total{format="xlsx",type="rent_roll"} 1`)
	assert.Contains(t, metricsBody, "proman_http_requests_total")
}

func TestRouter_ReporteParametrosInvalidos(t *testing.T) {
	app := newTestApp(t)

	resp := call(t, app, http.MethodGet, "/api/reports/tax?year=2025&foo=1&format=pdf", "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeError(t, resp)
	require.Len(t, body.Details, 2)
	assert.Equal(t, "foo", body.Details[0].Field)
	assert.Equal(t, "format", body.Details[1].Field)

	resp = call(t, app, http.MethodGet, "/api/reports/balance", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// SAF-T
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_SAFTExportXML(t *testing.T) {
	app := newTestApp(t)
	resp := call(t, app, http.MethodPost, "/api/saft/export", saftBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "application/xml; charset=UTF-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "SAF-T_123456789_2025_01-03.xml")
	assert.Equal(t, "6", resp.Header.Get(apphttp.HeaderSAFTInvoiceCount))
	assert.Equal(t, "7200.00", resp.Header.Get(apphttp.HeaderSAFTTotalAmount))
	assert.Len(t, resp.Header.Get(apphttp.HeaderSAFTDigest), 64)
	assert.Contains(t, string(readAll(t, resp)), "<AuditFile")
}

func TestRouter_SAFTExportJSONyZip(t *testing.T) {
	app := newTestApp(t)

	resp := call(t, app, http.MethodPost, "/api/saft/export?response=json", saftBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var meta dto.SAFTExportResponse
	decodeData(t, resp, &meta)
	assert.Equal(t, 6, meta.InvoiceCount)
	assert.Equal(t, "7200.00", meta.TotalAmount, "mismo formato que X-SAFT-Total-Amount")
	assert.Equal(t, "2025-03-31", meta.Period.EndDate)
	assert.NotEmpty(t, meta.XML)

	resp = call(t, app, http.MethodPost, "/api/saft/export?compress=zip", saftBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/zip", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".zip")
	assert.True(t, bytes.HasPrefix(readAll(t, resp), []byte("PK")))

	resp = call(t, app, http.MethodPost, "/api/saft/export?compress=gzip", saftBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_SAFTValidate(t *testing.T) {
	app := newTestApp(t)

	resp := call(t, app, http.MethodPost, "/api/saft/validate", saftBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ok dto.SAFTValidateResponse
	decodeData(t, resp, &ok)
	assert.True(t, ok.Valid)

	bad := strings.Replace(saftBody, `"123456789"`, `"123456780"`, 1)
	bad = strings.Replace(bad, `"end_month": 3`, `"end_month": 13`, 1)
	resp = call(t, app, http.MethodPost, "/api/saft/validate", bad)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	fields := map[string]bool{}
	for _, v := range decodeError(t, resp).Details {
		fields[v.Field] = true
	}
	assert.True(t, fields["company_info.nif"])
	assert.True(t, fields["end_month"])

	resp = call(t, app, http.MethodPost, "/api/saft/export", bad)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	metricsBody := string(readAll(t, call(t, app, http.MethodGet, "/metrics", "")))
	assert.Contains(t, metricsBody, `proman_saft_exports_total{result="invalid"} 1`)
}

// ──────────────────────────────────────────────────────────────────────────────
// Correspondencia
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_CorrespondenciaPreviewYGenerate(t *testing.T) {
	app := newTestApp(t)
	body := `{"template_id":"demo-tpl-reminder","tenant_id":"demo-tenant-1","variables":{"rent_amount":"999"}}`

	resp := call(t, app, http.MethodPost, "/api/correspondence/preview", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var prev dto.CorrespondenceResponse
	decodeData(t, resp, &prev)
	assert.Empty(t, prev.ID)
	assert.Equal(t, "Renda de Apartamento T2 Alfama", prev.Subject)
	assert.Contains(t, prev.Content, "Ana Sousa")
	assert.Contains(t, prev.Content, "999 EUR")
	assert.Contains(t, prev.Content, "20/03/2025")

	resp = call(t, app, http.MethodPost, "/api/correspondence", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var gen dto.CorrespondenceResponse
	decodeData(t, resp, &gen)
	require.NotEmpty(t, gen.ID)

	resp = call(t, app, http.MethodPost, "/api/correspondence/"+gen.ID+"/sent", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = call(t, app, http.MethodPost, "/api/correspondence/"+gen.ID+"/sent", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// ErrorHandler
// ──────────────────────────────────────────────────────────────────────────────

func TestErrorHandler_500SinFiltrarDetalles(t *testing.T) {
	for _, dev := range []bool{false, true} {
		app := apphttp.NewApp(apphttp.ServerConfig{Log: zerolog.Nop(), Development: dev})
		app.Get("/boom", func(*fiber.Ctx) error {
			return domain.DatabaseError("listar facturas", errors.New("conexión rechazada"))
		})
		app.Get("/panic", func(*fiber.Ctx) error { panic("inesperado") })

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
		require.NoError(t, err)
		body := decodeError(t, resp)
		resp.Body.Close()

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "error interno del servidor", body.Error)
		if dev {
			assert.Contains(t, body.Detail, "conexión rechazada")
		} else {
			assert.Empty(t, body.Detail)
		}

		resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	}
}

func TestErrorHandler_RutaInexistente(t *testing.T) {
	app := apphttp.NewApp(apphttp.ServerConfig{Log: zerolog.Nop()})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nada", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Code)
}
