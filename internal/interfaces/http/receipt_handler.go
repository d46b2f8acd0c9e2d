package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/proman-api/internal/application/billing"
	"github.com/jhoicas/proman-api/internal/application/dto"
)

// ReceiptHandler CRUD de recibos (protegido).
type ReceiptHandler struct {
	uc *billing.ReceiptUseCase
}

// NewReceiptHandler construye el handler.
func NewReceiptHandler(uc *billing.ReceiptUseCase) *ReceiptHandler {
	return &ReceiptHandler{uc: uc}
}

// Create registra un recibo.
// @Summary      Crear recibo
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateReceiptRequest  true  "tenant_id, amount, date, type..."
// @Success      201   {object}  dto.DataResponse{data=dto.ReceiptResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/receipts [post]
func (h *ReceiptHandler) Create(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var in dto.CreateReceiptRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), userID, in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, out)
}

// List filtra por estado, tipo, inquilino y fecha.
// @Summary      Listar recibos
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        status      query     string  false  "paid | pending"
// @Param        type        query     string  false  "rent | deposit | maintenance | other"
// @Param        tenant_id   query     string  false  "ID del inquilino"
// @Param        start_date  query     string  false  "YYYY-MM-DD"
// @Param        end_date    query     string  false  "YYYY-MM-DD"
// @Success      200         {object}  dto.DataResponse{data=[]dto.ReceiptResponse}
// @Router       /api/receipts [get]
func (h *ReceiptHandler) List(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var in dto.ReceiptListRequest
	if err := parseQuery(c, &in); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), userID, in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// Get obtiene un recibo.
// @Summary      Obtener recibo
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del recibo"
// @Success      200  {object}  dto.DataResponse{data=dto.ReceiptResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [get]
func (h *ReceiptHandler) Get(c *fiber.Ctx) error {
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
// @Summary      Actualizar recibo
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "ID del recibo"
// @Param        body  body      dto.UpdateReceiptRequest  true  "campos a modificar"
// @Success      200   {object}  dto.DataResponse{data=dto.ReceiptResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [put]
func (h *ReceiptHandler) Update(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var in dto.UpdateReceiptRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), userID, c.Params("id"), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// Delete elimina un recibo.
// @Summary      Eliminar recibo
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del recibo"
// @Success      200  {object}  dto.DataResponse{data=dto.DeletedResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [delete]
func (h *ReceiptHandler) Delete(c *fiber.Ctx) error {
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

// ExpenseHandler CRUD de gastos (protegido).
type ExpenseHandler struct {
	uc *billing.ExpenseUseCase
}

// NewExpenseHandler construye el handler.
func NewExpenseHandler(uc *billing.ExpenseUseCase) *ExpenseHandler {
	return &ExpenseHandler{uc: uc}
}

// Create registra un gasto de un inmueble.
// @Summary      Crear gasto
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateExpenseRequest  true  "property_id, amount, date, category..."
// @Success      201   {object}  dto.DataResponse{data=dto.ExpenseResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var in dto.CreateExpenseRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), userID, in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, out)
}

// List filtra por inmueble, categoría y fecha.
// @Summary      Listar gastos
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        property_id  query     string  false  "ID del inmueble"
// @Param        category     query     string  false  "maintenance | repairs | utilities | insurance | taxes | management | other"
// @Param        start_date   query     string  false  "YYYY-MM-DD"
// @Param        end_date     query     string  false  "YYYY-MM-DD"
// @Success      200          {object}  dto.DataResponse{data=[]dto.ExpenseResponse}
// @Router       /api/expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var in dto.ExpenseListRequest
	if err := parseQuery(c, &in); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), userID, in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// Get obtiene un gasto.
// @Summary      Obtener gasto
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del gasto"
// @Success      200  {object}  dto.DataResponse{data=dto.ExpenseResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [get]
func (h *ExpenseHandler) Get(c *fiber.Ctx) error {
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
// @Summary      Actualizar gasto
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "ID del gasto"
// @Param        body  body      dto.UpdateExpenseRequest  true  "campos a modificar"
// @Success      200   {object}  dto.DataResponse{data=dto.ExpenseResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var in dto.UpdateExpenseRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), userID, c.Params("id"), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// Delete elimina un gasto.
// @Summary      Eliminar gasto
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del gasto"
// @Success      200  {object}  dto.DataResponse{data=dto.DeletedResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
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
