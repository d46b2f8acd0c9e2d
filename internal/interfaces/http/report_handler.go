package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/proman-api/internal/application/dto"
	"github.com/jhoicas/proman-api/internal/application/reports"
	"github.com/jhoicas/proman-api/internal/infrastructure/metrics"
)

// ReportHandler reportes derivados en JSON, CSV o XLSX (protegido).
type ReportHandler struct {
	gen     *reports.Generator
	xlsx    reports.SpreadsheetWriter
	metrics *metrics.Metrics
}

// NewReportHandler construye el handler. m puede ser nil.
func NewReportHandler(gen *reports.Generator, xlsx reports.SpreadsheetWriter, m *metrics.Metrics) *ReportHandler {
	return &ReportHandler{gen: gen, xlsx: xlsx, metrics: m}
}

// Get genera el reporte indicado.
// @Summary      Generar reporte
// @Description  financial (?start_date&end_date), tax (?year), rent_roll (?as_of), invoice_summary (?start_date&end_date).
// @Description  Cualquier otro parámetro es un 400. format=csv|xlsx devuelve un adjunto {type}-report-{YYYY-MM-DD}.{ext}.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Produce      text/csv
// @Param        type        path      string  true   "financial | tax | rent_roll | invoice_summary"
// @Param        format      query     string  false  "json | csv | xlsx"
// @Param        start_date  query     string  false  "YYYY-MM-DD"
// @Param        end_date    query     string  false  "YYYY-MM-DD"
// @Param        year        query     string  false  "YYYY"
// @Param        as_of       query     string  false  "YYYY-MM-DD"
// @Success      200         {object}  dto.DataResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Failure      500         {object}  dto.ErrorResponse
// @Router       /api/reports/{type} [get]
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	req, err := reports.NewRequest(c.Params("type"), c.Queries())
	if err != nil {
		return err
	}
	report, err := h.gen.Generate(c.UserContext(), userID, req)
	if err != nil {
		return err
	}

	switch req.Format {
	case dto.FormatCSV:
		body, err := reports.WriteCSV(report)
		if err != nil {
			return err
		}
		err = attachment(c, reports.ContentTypeCSV, reports.Filename(report, dto.FormatCSV), body)
		h.observe(req, err)
		return err
	case dto.FormatXLSX:
		body, err := h.xlsx.WriteXLSX(reports.ToTable(report))
		if err != nil {
			return err
		}
		err = attachment(c, reports.ContentTypeXLSX, reports.Filename(report, dto.FormatXLSX), body)
		h.observe(req, err)
		return err
	default:
		err = respond(c, fiber.StatusOK, report.Payload())
		h.observe(req, err)
		return err
	}
}

func (h *ReportHandler) observe(req dto.ReportRequest, err error) {
	if h.metrics != nil && err == nil {
		h.metrics.ReportGenerated(req.Type, req.Format)
	}
}
