package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Proveo-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Proveo-api/pkg/logger"
)

// RequestObserver registra cada request (log estructurado y métricas).
// Resuelve el error de la cadena con el ErrorHandler de la app para conocer el status final.
func RequestObserver(log *logger.Logger, rec *metrics.Recorder) fiber.Handler {
	log = log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()

		route := c.Route().Path
		rec.ObserveRequest(c.Method(), route, status, elapsed)

		ev := log.Debug()
		if status >= fiber.StatusInternalServerError {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("route", route).
			Int("status", status).
			Dur("elapsed", elapsed).
			Msg("request")
		return nil
	}
}
