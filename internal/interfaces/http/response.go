package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/proman-api/internal/application/dto"
	"github.com/jhoicas/proman-api/internal/application/validation"
	"github.com/jhoicas/proman-api/internal/domain"
)

// respond envuelve v en { "data": ... }.
func respond(c *fiber.Ctx, status int, v interface{}) error {
	return c.Status(status).JSON(dto.DataResponse{Data: v})
}

// parseBody decodifica el JSON rechazando campos desconocidos.
func parseBody(c *fiber.Ctx, dst interface{}) error {
	return validation.DecodeStrict(c.Body(), dst)
}

// parseQuery llena dst a partir de los parámetros de query (tags `query:"..."`).
func parseQuery(c *fiber.Ctx, dst interface{}) error {
	if err := c.QueryParser(dst); err != nil {
		return domain.Invalid("query", "type", "parámetros de consulta inválidos")
	}
	return nil
}

// attachment responde un fichero para descarga.
func attachment(c *fiber.Ctx, contentType, filename string, body []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Status(fiber.StatusOK).Send(body)
}

func deleted(c *fiber.Ctx, id string) error {
	return respond(c, fiber.StatusOK, dto.DeletedResponse{ID: id, Deleted: true})
}
