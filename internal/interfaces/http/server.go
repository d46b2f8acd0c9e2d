package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/jhoicas/proman-api/internal/infrastructure/metrics"
)

// ServerConfig parámetros de la aplicación Fiber.
type ServerConfig struct {
	Name        string
	Development bool // incluye la causa de los 500 en "detail"
	Log         zerolog.Logger
	Metrics     *metrics.Metrics
}

// NewApp crea la aplicación con el ErrorHandler central, el log de peticiones y recover.
func NewApp(sc ServerConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      sc.Name,
		// Params, Queries y Method se conservan más allá de la petición (etiquetas de métricas, DTOs)
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: ErrorHandler(sc.Log, sc.Development),
	})
	app.Use(RequestLogger(sc.Log, sc.Metrics))
	app.Use(recover.New())
	return app
}
