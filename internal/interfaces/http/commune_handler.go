package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Proveo-api/internal/application/dto"
	"github.com/jhoicas/Proveo-api/internal/application/usecase"
)

// CommuneHandler maneja las peticiones HTTP para comunas.
type CommuneHandler struct {
	uc *usecase.CommuneUseCase
}

func NewCommuneHandler(uc *usecase.CommuneUseCase) *CommuneHandler {
	return &CommuneHandler{uc: uc}
}

// Create godoc
// @Summary      Crear comuna (admin)
// @Tags         communes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateCommuneRequest  true  "Nombre"
// @Success      201   {object}  dto.CommuneResponse
// @Router       /api/v1/communes [post]
func (h *CommuneHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCommuneRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), Requester(c), in)
	if out == nil && err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, out, err)
}

// @Router       /api/v1/communes/{id} [get]
func (h *CommuneHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// @Router       /api/v1/communes [get]
func (h *CommuneHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// @Router       /api/v1/communes/{id} [patch]
func (h *CommuneHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var in dto.UpdateCommuneRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), Requester(c), id, in)
	if out == nil && err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out, err)
}

// @Router       /api/v1/communes/{id} [delete]
func (h *CommuneHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Delete(c.UserContext(), Requester(c), id)
	if out == nil && err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out, err)
}
