package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Proveo-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Proveo-api/pkg/logger"
)

// NewApp crea la app Fiber con el manejo de errores de dominio, recover y observación de requests.
func NewApp(appName string, log *logger.Logger, rec *metrics.Recorder) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      appName,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    1 << 20,
		ErrorHandler: ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(RequestObserver(log, rec))
	return app
}
