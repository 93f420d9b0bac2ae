package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/Proveo-api/internal/application/dto"
	"github.com/jhoicas/Proveo-api/internal/domain"
	"github.com/jhoicas/Proveo-api/pkg/logger"
)

// ErrorHandler traduce los errores devueltos por los handlers a respuestas JSON.
// Los errores no clasificados se registran y se responden como 500 sin detalle.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := errorResponse(err)
		if status == fiber.StatusInternalServerError {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
		}
		return c.Status(status).JSON(body)
	}
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	var (
		verr *domain.ValidationError
		cerr *domain.ConflictError
		rerr *domain.RefreshError
		ferr *fiber.Error
	)
	switch {
	case errors.As(err, &verr):
		var details map[string]any
		if verr.Field != "" {
			details = map[string]any{"field": verr.Field}
		}
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: verr.Error(), Details: details}
	case errors.As(err, &cerr):
		return fiber.StatusConflict, dto.ErrorResponse{
			Code:    "CONFLICT",
			Message: cerr.Reason,
			Details: map[string]any{"references": cerr.References},
		}
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: err.Error()}
	case errors.Is(err, domain.ErrCompanyAlreadyExists):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "COMPANY_EXISTS", Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.As(err, &rerr):
		// sin resultado que devolver (el caso con resultado lo resuelve respond)
		return fiber.StatusServiceUnavailable, dto.ErrorResponse{
			Code:    "INDEX_REFRESH_FAILED",
			Message: rerr.Error(),
			Details: map[string]any{"saved": true},
		}
	case errors.Is(err, domain.ErrTransient):
		return fiber.StatusServiceUnavailable, dto.ErrorResponse{Code: "UNAVAILABLE", Message: "base de datos no disponible, intente más tarde"}
	case errors.As(err, &ferr):
		return ferr.Code, dto.ErrorResponse{Code: "HTTP_ERROR", Message: ferr.Message}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
	}
}

// respond escribe out con status. Si la escritura se confirmó pero el índice no pudo
// refrescarse, responde 503 INDEX_REFRESH_FAILED con el resultado guardado en details.
func respond(c *fiber.Ctx, status int, out any, err error) error {
	if err == nil {
		return c.Status(status).JSON(out)
	}
	var rerr *domain.RefreshError
	if errors.As(err, &rerr) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code:    "INDEX_REFRESH_FAILED",
			Message: "cambio guardado, pero el índice de búsqueda no se actualizó",
			Details: map[string]any{"saved": true, "result": out},
		})
	}
	return err
}

// pathID lee el parámetro :id y exige un UUID válido.
func pathID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", domain.NewValidation("id", "debe ser un UUID válido")
	}
	return id, nil
}

// parseBody decodifica el JSON del cuerpo.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.NewValidation("body", "cuerpo inválido")
	}
	return nil
}
