package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/proman-api/internal/infrastructure/metrics"
)

// RequestLogger registra cada petición (método, ruta, status, duración y user_id) y
// alimenta las métricas HTTP si m no es nil.
//
// El error de la cadena se resuelve aquí con el ErrorHandler de la app para conocer el
// status final antes de registrar.
func RequestLogger(log zerolog.Logger, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		route := routeOf(c)
		if m != nil {
			m.ObserveHTTP(c.Method(), route, status, elapsed)
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("route", route).
			Int("status", status).
			Float64("duration_ms", float64(elapsed.Microseconds())/1000).
			Str("user_id", GetUserID(c)).
			Msg("http")
		return nil
	}
}
