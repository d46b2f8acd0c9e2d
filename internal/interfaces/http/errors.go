package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/proman-api/internal/application/dto"
	"github.com/jhoicas/proman-api/internal/domain"
)

const msgInternal = "error interno del servidor"

// ErrorHandler es el único punto donde los errores de dominio se convierten en status HTTP.
// Los 5xx se registran con la cadena completa; la causa solo viaja en la respuesta si
// development es true.
func ErrorHandler(log zerolog.Logger, development bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := mapError(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Method()).
				Str("route", routeOf(c)).
				Str("user_id", GetUserID(c)).
				Msg("error no controlado")
			if development {
				body.Detail = err.Error()
			}
		}
		return c.Status(status).JSON(body)
	}
}

func mapError(err error) (int, dto.ErrorResponse) {
	var ve *domain.ValidationError
	var fe *fiber.Error
	switch {
	case errors.As(err, &ve):
		return fiber.StatusBadRequest, dto.ErrorResponse{
			Error: "datos inválidos", Code: "VALIDATION", Details: ve.Violations,
		}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Error: err.Error(), Code: "NOT_FOUND"}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Error: err.Error(), Code: "UNAUTHORIZED"}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Error: err.Error(), Code: "FORBIDDEN"}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Error: err.Error(), Code: "CONFLICT"}
	case errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError:
		// rutas inexistentes, método no permitido, cuerpo demasiado grande...
		return fe.Code, dto.ErrorResponse{Error: fe.Message, Code: codeForStatus(fe.Code)}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Error: msgInternal, Code: "INTERNAL"}
	}
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	default:
		return "BAD_REQUEST"
	}
}

// routeOf patrón de la ruta atendida (/api/invoices/:id), no la URL concreta.
func routeOf(c *fiber.Ctx) string {
	if r := c.Route(); r != nil && r.Path != "" {
		return r.Path
	}
	return c.Path()
}
