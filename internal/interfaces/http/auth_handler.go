package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Proveo-api/internal/application/auth"
	"github.com/jhoicas/Proveo-api/internal/application/dto"
	"github.com/jhoicas/Proveo-api/internal/application/usecase"
)

// UserHandler maneja registro, login, verificación y cuenta propia.
type UserHandler struct {
	auth  *auth.AuthUseCase
	users *usecase.UserUseCase
}

// NewUserHandler construye el handler de usuarios.
func NewUserHandler(authUC *auth.AuthUseCase, users *usecase.UserUseCase) *UserHandler {
	return &UserHandler{auth: authUC, users: users}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "name, email, password"
// @Success      201   {object}  dto.RegisterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/users/register [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.auth.RegisterUser(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/v1/users/login [post]
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.auth.Login(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Verify godoc
// @Summary      Verificar email con el token emitido en el registro
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyEmailRequest  true  "token"
// @Success      200   {object}  dto.UserResponse
// @Router       /api/v1/users/verify [post]
func (h *UserHandler) Verify(c *fiber.Ctx) error {
	var in dto.VerifyEmailRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.auth.VerifyEmail(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Router       /api/v1/users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	out, err := h.users.Get(c.UserContext(), GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DeleteMe godoc
// @Summary      Borrar la cuenta propia y sus empresas
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserDeletionResponse
// @Router       /api/v1/users/me [delete]
func (h *UserHandler) DeleteMe(c *fiber.Ctx) error {
	out, err := h.users.Delete(c.UserContext(), Requester(c), GetUserID(c))
	if out == nil && err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out, err)
}

// AdminDelete godoc
// @Summary      Borrar un usuario y sus empresas (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserDeletionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/admin/users/{id} [delete]
func (h *UserHandler) AdminDelete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	out, err := h.users.Delete(c.UserContext(), Requester(c), id)
	if out == nil && err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out, err)
}
