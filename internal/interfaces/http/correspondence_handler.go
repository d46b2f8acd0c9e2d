package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/proman-api/internal/application/correspondence"
	"github.com/jhoicas/proman-api/internal/application/dto"
)

// CorrespondenceHandler plantillas y documentos generados (protegido).
type CorrespondenceHandler struct {
	svc *correspondence.Service
}

// NewCorrespondenceHandler construye el handler.
func NewCorrespondenceHandler(svc *correspondence.Service) *CorrespondenceHandler {
	return &CorrespondenceHandler{svc: svc}
}

// CreateTemplate guarda una plantilla; las variables se detectan del asunto y el contenido.
// @Summary      Crear plantilla
// @Tags         templates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateTemplateRequest  true  "name, subject, content, type"
// @Success      201   {object}  dto.DataResponse{data=dto.TemplateResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/templates [post]
func (h *CorrespondenceHandler) CreateTemplate(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var in dto.CreateTemplateRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.svc.CreateTemplate(c.UserContext(), userID, in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, out)
}

// ListTemplates devuelve las plantillas del usuario.
// @Summary      Listar plantillas
// @Tags         templates
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DataResponse{data=[]dto.TemplateResponse}
// @Router       /api/templates [get]
func (h *CorrespondenceHandler) ListTemplates(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	out, err := h.svc.ListTemplates(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// GetTemplate obtiene una plantilla.
// @Summary      Obtener plantilla
// @Tags         templates
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la plantilla"
// @Success      200  {object}  dto.DataResponse{data=dto.TemplateResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/templates/{id} [get]
func (h *CorrespondenceHandler) GetTemplate(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	out, err := h.svc.GetTemplate(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// UpdateTemplate modifica la plantilla y recalcula sus variables.
// @Summary      Actualizar plantilla
// @Tags         templates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "ID de la plantilla"
// @Param        body  body      dto.UpdateTemplateRequest  true  "campos a modificar"
// @Success      200   {object}  dto.DataResponse{data=dto.TemplateResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/templates/{id} [put]
func (h *CorrespondenceHandler) UpdateTemplate(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var in dto.UpdateTemplateRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.svc.UpdateTemplate(c.UserContext(), userID, c.Params("id"), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// DeleteTemplate elimina una plantilla.
// @Summary      Eliminar plantilla
// @Tags         templates
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la plantilla"
// @Success      200  {object}  dto.DataResponse{data=dto.DeletedResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/templates/{id} [delete]
func (h *CorrespondenceHandler) DeleteTemplate(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	id := c.Params("id")
	if err := h.svc.DeleteTemplate(c.UserContext(), userID, id); err != nil {
		return err
	}
	return deleted(c, id)
}

// Generate sustituye las variables y guarda el documento como borrador.
// @Summary      Generar correspondencia
// @Description  Las variables del llamador tienen prioridad sobre las del inquilino e inmueble.
// @Tags         correspondence
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.GenerateCorrespondenceRequest  true  "template_id, tenant_id, variables"
// @Success      201   {object}  dto.DataResponse{data=dto.CorrespondenceResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/correspondence [post]
func (h *CorrespondenceHandler) Generate(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var in dto.GenerateCorrespondenceRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.svc.Generate(c.UserContext(), userID, in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, out)
}

// Preview igual que Generate pero sin persistir.
// @Summary      Previsualizar correspondencia
// @Tags         correspondence
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.GenerateCorrespondenceRequest  true  "template_id, tenant_id, variables"
// @Success      200   {object}  dto.DataResponse{data=dto.CorrespondenceResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/correspondence/preview [post]
func (h *CorrespondenceHandler) Preview(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var in dto.GenerateCorrespondenceRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.svc.Preview(c.UserContext(), userID, in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// List devuelve los documentos generados.
// @Summary      Listar correspondencia
// @Tags         correspondence
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DataResponse{data=[]dto.CorrespondenceResponse}
// @Router       /api/correspondence [get]
func (h *CorrespondenceHandler) List(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	out, err := h.svc.List(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// Get obtiene un documento.
// @Summary      Obtener correspondencia
// @Tags         correspondence
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del documento"
// @Success      200  {object}  dto.DataResponse{data=dto.CorrespondenceResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/correspondence/{id} [get]
func (h *CorrespondenceHandler) Get(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	out, err := h.svc.Get(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// MarkSent marca el documento como enviado.
// @Summary      Marcar correspondencia enviada
// @Tags         correspondence
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del documento"
// @Success      200  {object}  dto.DataResponse{data=dto.CorrespondenceResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/correspondence/{id}/sent [post]
func (h *CorrespondenceHandler) MarkSent(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	out, err := h.svc.MarkSent(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}
