package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/proman-api/internal/application/billing"
	"github.com/jhoicas/proman-api/internal/application/dto"
)

// InvoiceHandler maneja las peticiones HTTP de facturación (protegido).
type InvoiceHandler struct {
	uc       *billing.InvoiceUseCase
	receipts *billing.ReceiptUseCase
	pdf      *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, receipts *billing.ReceiptUseCase, pdf *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, receipts: receipts, pdf: pdf}
}

// Create crea una factura de renta.
// @Summary      Crear factura
// @Description  Sin líneas el importe es obligatorio; con líneas el importe es la suma de cantidad × precio.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateInvoiceRequest  true  "tenant_id, amount, due_date, line_items..."
// @Success      201   {object}  dto.DataResponse{data=dto.InvoiceResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var in dto.CreateInvoiceRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), userID, in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, out)
}

// List filtra por estado, inquilino y fecha de vencimiento.
// @Summary      Listar facturas
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        status      query     string  false  "pending | paid | overdue | cancelled"
// @Param        tenant_id   query     string  false  "ID del inquilino"
// @Param        start_date  query     string  false  "YYYY-MM-DD"
// @Param        end_date    query     string  false  "YYYY-MM-DD"
// @Success      200         {object}  dto.DataResponse{data=[]dto.InvoiceResponse}
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var in dto.InvoiceListRequest
	if err := parseQuery(c, &in); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), userID, in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// Get obtiene el detalle de una factura con sus líneas.
// @Summary      Obtener factura
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la factura"
// @Success      200  {object}  dto.DataResponse{data=dto.InvoiceResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Get(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// Update modifica una factura pendiente o vencida.
// @Summary      Actualizar factura
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "ID de la factura"
// @Param        body  body      dto.UpdateInvoiceRequest  true  "campos a modificar"
// @Success      200   {object}  dto.DataResponse{data=dto.InvoiceResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [put]
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var in dto.UpdateInvoiceRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), userID, c.Params("id"), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// Delete elimina una factura que no esté pagada.
// @Summary      Eliminar factura
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la factura"
// @Success      200  {object}  dto.DataResponse{data=dto.DeletedResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	id := c.Params("id")
	if err := h.uc.Delete(c.UserContext(), userID, id); err != nil {
		return err
	}
	return deleted(c, id)
}

// Pay marca la factura como pagada. El cuerpo es opcional.
// @Summary      Marcar factura pagada
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string               true   "ID de la factura"
// @Param        body  body      dto.MarkPaidRequest  false  "paid_date (por defecto hoy)"
// @Success      200   {object}  dto.DataResponse{data=dto.InvoiceResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pay [post]
func (h *InvoiceHandler) Pay(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var in dto.MarkPaidRequest
	if len(bytes.TrimSpace(c.Body())) > 0 {
		if err := parseBody(c, &in); err != nil {
			return err
		}
	}
	out, err := h.uc.MarkPaid(c.UserContext(), userID, c.Params("id"), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// Cancel anula la factura.
// @Summary      Anular factura
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la factura"
// @Success      200  {object}  dto.DataResponse{data=dto.InvoiceResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/cancel [post]
func (h *InvoiceHandler) Cancel(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Cancel(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// RefreshOverdue pasa a overdue las facturas pendientes con vencimiento anterior a hoy.
// @Summary      Actualizar facturas vencidas
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DataResponse{data=dto.RefreshOverdueResponse}
// @Router       /api/invoices/refresh-overdue [post]
func (h *InvoiceHandler) RefreshOverdue(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	n, err := h.uc.RefreshOverdue(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, dto.RefreshOverdueResponse{Updated: n})
}

// DownloadPDF genera y devuelve el PDF de la factura.
// @Summary      Descargar PDF de factura
// @Tags         invoices
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	pdfBytes, filename, err := h.pdf.DownloadInvoicePDF(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return attachment(c, "application/pdf", filename, pdfBytes)
}

// CreateReceipt registra el cobro de la factura y la marca pagada.
// @Summary      Registrar recibo de una factura
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la factura"
// @Success      201  {object}  dto.DataResponse{data=dto.ReceiptResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/receipt [post]
func (h *InvoiceHandler) CreateReceipt(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	out, err := h.receipts.CreateFromInvoice(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, out)
}
