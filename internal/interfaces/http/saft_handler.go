package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/proman-api/internal/application/dto"
	appsaft "github.com/jhoicas/proman-api/internal/application/saft"
	"github.com/jhoicas/proman-api/internal/domain"
	"github.com/jhoicas/proman-api/internal/infrastructure/metrics"
	infrasaft "github.com/jhoicas/proman-api/internal/infrastructure/saft"
)

// Cabeceras con los metadatos del fichero SAF-T.
const (
	HeaderSAFTInvoiceCount = "X-SAFT-Invoice-Count"
	HeaderSAFTTotalAmount  = "X-SAFT-Total-Amount"
	HeaderSAFTDigest       = "X-SAFT-Digest"
)

// SAFTHandler exportación SAF-T PT (protegido).
type SAFTHandler struct {
	uc      *appsaft.ExportUseCase
	metrics *metrics.Metrics
}

// NewSAFTHandler construye el handler. m puede ser nil.
func NewSAFTHandler(uc *appsaft.ExportUseCase, m *metrics.Metrics) *SAFTHandler {
	return &SAFTHandler{uc: uc, metrics: m}
}

// Export genera el AuditFile del periodo.
// @Summary      Exportar SAF-T PT
// @Description  Devuelve el XML como adjunto SAF-T_{NIF}_{año}_{MM-MM}.xml con los metadatos en cabeceras X-SAFT-*.
// @Description  ?response=json devuelve los metadatos y el XML en JSON; ?compress=zip empaqueta el XML en un ZIP.
// @Tags         saft
// @Security     Bearer
// @Accept       json
// @Produce      application/xml
// @Produce      json
// @Param        body      body      dto.SAFTExportRequest  true   "fiscal_year, start_month, end_month, company_info"
// @Param        response  query     string                 false  "xml | json"
// @Param        compress  query     string                 false  "zip"
// @Success      200       {object}  dto.DataResponse{data=dto.SAFTExportResponse}
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      500       {object}  dto.ErrorResponse
// @Router       /api/saft/export [post]
func (h *SAFTHandler) Export(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	asJSON, zipped, err := exportOptions(c)
	if err != nil {
		return err
	}
	var in dto.SAFTExportRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}

	res, err := h.uc.Export(c.UserContext(), userID, &in)
	if err != nil {
		h.observe(err)
		return err
	}
	h.observe(nil)

	if asJSON {
		return respond(c, fiber.StatusOK, res.Response(true))
	}

	c.Set(HeaderSAFTInvoiceCount, strconv.Itoa(res.InvoiceCount))
	c.Set(HeaderSAFTTotalAmount, res.TotalAmount.StringFixed(2))
	c.Set(HeaderSAFTDigest, res.Digest)
	if zipped {
		body, err := infrasaft.CompressXMLToZip(res.XML, res.Filename)
		if err != nil {
			return err
		}
		return attachment(c, "application/zip", infrasaft.ZipFilename(res.Filename), body)
	}
	return attachment(c, "application/xml; charset="+res.Encoding, res.Filename, res.XML)
}

// Validate ejecuta las dos fases de validación sin leer datos.
// @Summary      Validar solicitud SAF-T
// @Tags         saft
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SAFTExportRequest  true  "fiscal_year, start_month, end_month, company_info"
// @Success      200   {object}  dto.DataResponse{data=dto.SAFTValidateResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/saft/validate [post]
func (h *SAFTHandler) Validate(c *fiber.Ctx) error {
	if _, err := requireUser(c); err != nil {
		return err
	}
	var in dto.SAFTExportRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if err := h.uc.Validate(&in); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, dto.SAFTValidateResponse{Valid: true})
}

func exportOptions(c *fiber.Ctx) (asJSON, zipped bool, err error) {
	var violations []domain.Violation
	switch c.Query("response") {
	case "", "xml":
	case "json":
		asJSON = true
	default:
		violations = append(violations, domain.Violation{Field: "response", Rule: "oneof", Message: "debe ser uno de: xml json"})
	}
	switch c.Query("compress") {
	case "":
	case "zip":
		zipped = true
	default:
		violations = append(violations, domain.Violation{Field: "compress", Rule: "oneof", Message: "debe ser: zip"})
	}
	return asJSON, zipped, domain.NewValidationError(violations...)
}

func (h *SAFTHandler) observe(err error) {
	if h.metrics == nil {
		return
	}
	switch {
	case err == nil:
		h.metrics.SAFTExport(metrics.ResultOK)
	case errors.Is(err, domain.ErrInvalidInput):
		h.metrics.SAFTExport(metrics.ResultInvalid)
	default:
		h.metrics.SAFTExport(metrics.ResultError)
	}
}
