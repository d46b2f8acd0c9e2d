// Package saft orquesta la exportación SAF-T PT: validación en dos fases, lectura de facturas
// del periodo, construcción del AuditFile y metadatos del fichero.
//
//	DecodeStrict → validator (estructura) + dominio (NIF, año, meses) → facturas → XML → digest → codificación
package saft

import (
	"context"
	"fmt"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/proman-api/internal/application/dto"
	"github.com/jhoicas/proman-api/internal/application/validation"
	"github.com/jhoicas/proman-api/internal/domain"
	"github.com/jhoicas/proman-api/internal/domain/entity"
	"github.com/jhoicas/proman-api/internal/domain/repository"
	domainsaft "github.com/jhoicas/proman-api/internal/domain/saft"
	infrasaft "github.com/jhoicas/proman-api/internal/infrastructure/saft"
	pkgsaft "github.com/jhoicas/proman-api/pkg/saft"
	"github.com/jhoicas/proman-api/pkg/sanitize"
)

// SAF-T limita SourceID a 30 caracteres.
const maxSourceIDLen = 30

const defaultLineDescription = "Renda"

// ExportResult fichero generado y sus metadatos.
type ExportResult struct {
	XML          []byte
	Filename     string
	InvoiceCount int
	TotalAmount  decimal.Decimal
	Period       dto.SAFTPeriod
	Encoding     string
	Digest       string // SHA-256 de la forma canónica del XML UTF-8
}

// Response metadatos listos para serializar; includeXML añade el contenido.
func (r *ExportResult) Response(includeXML bool) dto.SAFTExportResponse {
	out := dto.SAFTExportResponse{
		Filename:     r.Filename,
		InvoiceCount: r.InvoiceCount,
		TotalAmount:  r.TotalAmount.StringFixed(2),
		Period:       r.Period,
		Encoding:     r.Encoding,
		Digest:       r.Digest,
	}
	if includeXML {
		out.XML = string(r.XML)
	}
	return out
}

// ExportUseCase genera el fichero SAF-T de un usuario para un rango de meses.
type ExportUseCase struct {
	data      repository.FinancialDataSource
	validator *validation.Validator
	builder   *infrasaft.XMLBuilderService
	product   infrasaft.ProductData
	log       zerolog.Logger
	loc       *time.Location
	now       func() time.Time
}

// NewExportUseCase construye el caso de uso. Las fechas se interpretan en UTC.
func NewExportUseCase(
	data repository.FinancialDataSource,
	validator *validation.Validator,
	builder *infrasaft.XMLBuilderService,
	product infrasaft.ProductData,
	log zerolog.Logger,
) *ExportUseCase {
	return &ExportUseCase{
		data:      data,
		validator: validator,
		builder:   builder,
		product:   product,
		log:       log,
		loc:       time.UTC,
		now:       time.Now,
	}
}

// WithClock fija el reloj usado para el límite superior del año fiscal.
func (uc *ExportUseCase) WithClock(now func() time.Time) *ExportUseCase {
	uc.now = now
	return uc
}

// Validate ejecuta las dos fases y devuelve un único *domain.ValidationError con todas
// las violaciones, o nil.
func (uc *ExportUseCase) Validate(req *dto.SAFTExportRequest) error {
	violations := uc.validator.Struct(req)
	violations = append(violations, domainsaft.Validate(domainsaft.Request{
		FiscalYear: req.FiscalYear,
		StartMonth: req.StartMonth,
		EndMonth:   req.EndMonth,
		NIF:        req.CompanyInfo.NIF,
	}, uc.now())...)
	return domain.NewValidationError(violations...)
}

// Export valida la solicitud y genera el fichero. No escribe nada.
func (uc *ExportUseCase) Export(ctx context.Context, userID string, req *dto.SAFTExportRequest) (*ExportResult, error) {
	if err := uc.Validate(req); err != nil {
		return nil, err
	}
	period := domainsaft.NewPeriod(req.FiscalYear, req.StartMonth, req.EndMonth, uc.loc)

	invoices, err := uc.data.ListInvoices(ctx, userID, repository.InvoiceFilter{
		DateField: repository.InvoiceByIssueDate,
		Range:     repository.DateRange{From: period.Start, To: period.End},
	})
	if err != nil {
		return nil, err
	}
	tenants, err := uc.data.ListTenants(ctx, userID)
	if err != nil {
		return nil, err
	}
	properties, err := uc.data.ListProperties(ctx, userID)
	if err != nil {
		return nil, err
	}

	data := uc.auditFileData(userID, req, period, invoices, tenants, properties)
	xmlUTF8, err := uc.builder.Build(data)
	if err != nil {
		return nil, err
	}
	digest, err := infrasaft.Digest(xmlUTF8)
	if err != nil {
		return nil, err
	}

	encoding := req.Encoding
	if encoding == "" {
		encoding = pkgsaft.EncodingUTF8
	}
	out, err := infrasaft.Encode(xmlUTF8, encoding)
	if err != nil {
		return nil, err
	}

	res := &ExportResult{
		XML:          out,
		Filename:     pkgsaft.Filename(req.CompanyInfo.NIF, req.FiscalYear, req.StartMonth, req.EndMonth),
		InvoiceCount: len(data.Invoices),
		TotalAmount:  data.TotalCredit,
		Period: dto.SAFTPeriod{
			FiscalYear: period.FiscalYear,
			StartMonth: period.StartMonth,
			EndMonth:   period.EndMonth,
			StartDate:  period.StartDate(),
			EndDate:    period.EndDate(),
		},
		Encoding: encoding,
		Digest:   digest,
	}

	uc.log.Info().
		Str("user_id", userID).
		Str("filename", res.Filename).
		Int("invoices", res.InvoiceCount).
		Str("total", res.TotalAmount.StringFixed(2)).
		Msg("SAF-T generado")
	return res, nil
}

// auditFileData traduce las entidades a la estructura del builder.
// invoices ya viene ordenado por (IssueDate, ID).
func (uc *ExportUseCase) auditFileData(
	userID string,
	req *dto.SAFTExportRequest,
	period domainsaft.Period,
	invoices []*entity.Invoice,
	tenants []*entity.Tenant,
	properties []*entity.Property,
) *infrasaft.AuditFileData {
	ci := req.CompanyInfo
	data := &infrasaft.AuditFileData{
		Company: infrasaft.CompanyData{
			NIF:        ci.NIF,
			Name:       sanitize.Text(ci.Name),
			Address:    sanitize.Text(ci.Address),
			City:       sanitize.Text(ci.City),
			PostalCode: ci.PostalCode,
			Country:    ci.Country,
		},
		Product:     uc.product,
		FiscalYear:  period.FiscalYear,
		StartDate:   period.Start,
		EndDate:     period.End,
		DateCreated: period.End,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	sourceID := truncateRunes(userID, maxSourceIDLen)

	referenced := make(map[string]struct{})
	for i, inv := range invoices {
		referenced[inv.TenantID] = struct{}{}

		status := pkgsaft.InvoiceStatusNormal
		if inv.Status == entity.InvoiceStatusCancelled {
			status = pkgsaft.InvoiceStatusAnulado
		} else {
			data.TotalCredit = data.TotalCredit.Add(inv.Amount)
		}

		number := inv.Number
		if number == "" {
			number = fmt.Sprintf("%s %d/%d", pkgsaft.InvoiceTypeFatura, inv.IssueDate.Year(), i+1)
		}

		data.Invoices = append(data.Invoices, infrasaft.InvoiceData{
			InvoiceNo:   number,
			Status:      status,
			InvoiceDate: inv.IssueDate,
			CustomerID:  inv.TenantID,
			SourceID:    sourceID,
			Lines:       invoiceLines(inv),
			NetTotal:    inv.Amount,
			GrossTotal:  inv.Amount,
		})
	}

	data.Customers = customers(referenced, tenants, properties)
	return data
}

// truncateRunes corta s a n caracteres sin partir secuencias UTF-8.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func invoiceLines(inv *entity.Invoice) []infrasaft.LineData {
	if len(inv.LineItems) == 0 {
		desc := sanitize.Text(inv.Description)
		if desc == "" {
			desc = defaultLineDescription
		}
		return []infrasaft.LineData{{
			LineNumber:   1,
			Description:  desc,
			Quantity:     decimal.NewFromInt(1),
			UnitPrice:    inv.Amount,
			CreditAmount: inv.Amount,
			TaxPointDate: inv.IssueDate,
		}}
	}
	lines := make([]infrasaft.LineData, 0, len(inv.LineItems))
	for i, li := range inv.LineItems {
		lines = append(lines, infrasaft.LineData{
			LineNumber:   i + 1,
			Description:  sanitize.Text(li.Description),
			Quantity:     li.Quantity,
			UnitPrice:    li.UnitPrice,
			CreditAmount: li.Total,
			TaxPointDate: inv.IssueDate,
		})
	}
	return lines
}

// customers genera una entrada por inquilino referenciado, ordenadas por ID.
// Un inquilino ya borrado se declara como consumidor final.
func customers(referenced map[string]struct{}, tenants []*entity.Tenant, properties []*entity.Property) []infrasaft.CustomerData {
	byID := make(map[string]*entity.Tenant, len(tenants))
	for _, t := range tenants {
		byID[t.ID] = t
	}
	propByID := make(map[string]*entity.Property, len(properties))
	for _, p := range properties {
		propByID[p.ID] = p
	}

	ids := make([]string, 0, len(referenced))
	for id := range referenced {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]infrasaft.CustomerData, 0, len(ids))
	for _, id := range ids {
		c := infrasaft.CustomerData{CustomerID: id, CompanyName: "Consumidor final", Country: pkgsaft.CountryPT}
		if t, ok := byID[id]; ok {
			c.CompanyName = sanitize.Text(t.Name)
			if pkgsaft.ValidateNIF(t.NIF) {
				c.TaxID = t.NIF
			}
			if t.PropertyID != nil {
				if p, ok := propByID[*t.PropertyID]; ok {
					c.Address = sanitize.Text(p.Address)
					c.City = sanitize.Text(p.City)
					if pkgsaft.ValidatePostalCode(p.PostalCode) {
						c.PostalCode = p.PostalCode
					}
				}
			}
		}
		out = append(out, c)
	}
	return out
}
