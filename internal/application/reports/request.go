package reports

import (
	"sort"

	"github.com/jhoicas/proman-api/internal/application/dto"
	"github.com/jhoicas/proman-api/internal/application/validation"
	"github.com/jhoicas/proman-api/internal/domain"
)

const paramFormat = "format"

// allowedParams parámetros de query permitidos por tipo (además de format).
var allowedParams = map[string][]string{
	dto.ReportFinancial:      {"start_date", "end_date"},
	dto.ReportTax:            {"year"},
	dto.ReportRentRoll:       {"as_of"},
	dto.ReportInvoiceSummary: {"start_date", "end_date"},
}

// Types tipos de reporte soportados, en orden alfabético.
func Types() []string {
	out := make([]string, 0, len(allowedParams))
	for t := range allowedParams {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// NewRequest construye la unión discriminada a partir del tipo y los parámetros de query.
// Un tipo desconocido, un formato no soportado o claves no permitidas se reportan juntos.
func NewRequest(reportType string, query map[string]string) (dto.ReportRequest, error) {
	allowed, ok := allowedParams[reportType]
	if !ok {
		return dto.ReportRequest{}, domain.Invalid("type", "oneof",
			"tipo de reporte no soportado: "+reportType)
	}

	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	violations := validation.RejectUnknownKeys(keys, append([]string{paramFormat}, allowed...)...)

	format := query[paramFormat]
	switch format {
	case "":
		format = dto.FormatJSON
	case dto.FormatJSON, dto.FormatCSV, dto.FormatXLSX:
	default:
		violations = append(violations, domain.Violation{
			Field: paramFormat, Rule: "oneof", Message: "debe ser uno de: json csv xlsx",
		})
	}
	if err := domain.NewValidationError(violations...); err != nil {
		return dto.ReportRequest{}, err
	}

	req := dto.ReportRequest{Type: reportType, Format: format}
	switch reportType {
	case dto.ReportFinancial:
		req.Financial = &dto.FinancialReportParams{StartDate: query["start_date"], EndDate: query["end_date"]}
	case dto.ReportTax:
		req.Tax = &dto.TaxReportParams{Year: query["year"]}
	case dto.ReportRentRoll:
		req.RentRoll = &dto.RentRollParams{AsOf: query["as_of"]}
	case dto.ReportInvoiceSummary:
		req.InvoiceSummary = &dto.InvoiceSummaryParams{StartDate: query["start_date"], EndDate: query["end_date"]}
	}
	return req, nil
}
