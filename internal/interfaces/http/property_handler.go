package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/proman-api/internal/application/dto"
	"github.com/jhoicas/proman-api/internal/application/property"
)

// PropertyHandler CRUD de inmuebles (protegido).
type PropertyHandler struct {
	uc *property.PropertyUseCase
}

// NewPropertyHandler construye el handler.
func NewPropertyHandler(uc *property.PropertyUseCase) *PropertyHandler {
	return &PropertyHandler{uc: uc}
}

// Create registra un inmueble.
// @Summary      Crear inmueble
// @Tags         properties
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreatePropertyRequest  true  "name, address, rent..."
// @Success      201   {object}  dto.DataResponse{data=dto.PropertyResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/properties [post]
func (h *PropertyHandler) Create(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var in dto.CreatePropertyRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), userID, in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, out)
}

// List devuelve los inmuebles del usuario.
// @Summary      Listar inmuebles
// @Tags         properties
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DataResponse{data=[]dto.PropertyResponse}
// @Router       /api/properties [get]
func (h *PropertyHandler) List(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// Get obtiene un inmueble.
// @Summary      Obtener inmueble
// @Tags         properties
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del inmueble"
// @Success      200  {object}  dto.DataResponse{data=dto.PropertyResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/properties/{id} [get]
func (h *PropertyHandler) Get(c *fiber.Ctx) error {
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

// Update modifica los campos enviados.
// @Summary      Actualizar inmueble
// @Tags         properties
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "ID del inmueble"
// @Param        body  body      dto.UpdatePropertyRequest  true  "campos a modificar"
// @Success      200   {object}  dto.DataResponse{data=dto.PropertyResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/properties/{id} [put]
func (h *PropertyHandler) Update(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var in dto.UpdatePropertyRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), userID, c.Params("id"), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// Delete elimina un inmueble sin inquilinos asignados.
// @Summary      Eliminar inmueble
// @Tags         properties
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del inmueble"
// @Success      200  {object}  dto.DataResponse{data=dto.DeletedResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/properties/{id} [delete]
func (h *PropertyHandler) Delete(c *fiber.Ctx) error {
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

// TenantHandler CRUD de inquilinos (protegido).
type TenantHandler struct {
	uc *property.TenantUseCase
}

// NewTenantHandler construye el handler.
func NewTenantHandler(uc *property.TenantUseCase) *TenantHandler {
	return &TenantHandler{uc: uc}
}

// Create registra un inquilino.
// @Summary      Crear inquilino
// @Tags         tenants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateTenantRequest  true  "name, email, property_id, lease_start..."
// @Success      201   {object}  dto.DataResponse{data=dto.TenantResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tenants [post]
func (h *TenantHandler) Create(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var in dto.CreateTenantRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), userID, in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, out)
}

// List devuelve los inquilinos del usuario.
// @Summary      Listar inquilinos
// @Tags         tenants
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DataResponse{data=[]dto.TenantResponse}
// @Router       /api/tenants [get]
func (h *TenantHandler) List(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// Get obtiene un inquilino.
// @Summary      Obtener inquilino
// @Tags         tenants
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del inquilino"
// @Success      200  {object}  dto.DataResponse{data=dto.TenantResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tenants/{id} [get]
func (h *TenantHandler) Get(c *fiber.Ctx) error {
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

// Update modifica los campos enviados; property_id "" desasigna el inmueble.
// @Summary      Actualizar inquilino
// @Tags         tenants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "ID del inquilino"
// @Param        body  body      dto.UpdateTenantRequest  true  "campos a modificar"
// @Success      200   {object}  dto.DataResponse{data=dto.TenantResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tenants/{id} [put]
func (h *TenantHandler) Update(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var in dto.UpdateTenantRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), userID, c.Params("id"), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// Delete elimina un inquilino.
// @Summary      Eliminar inquilino
// @Tags         tenants
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del inquilino"
// @Success      200  {object}  dto.DataResponse{data=dto.DeletedResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/tenants/{id} [delete]
func (h *TenantHandler) Delete(c *fiber.Ctx) error {
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
