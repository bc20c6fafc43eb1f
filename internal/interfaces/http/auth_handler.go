package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/copier-service-api/internal/application/auth"
	"github.com/jhoicas/copier-service-api/internal/application/dto"
)

// AuthHandler login y perfil propio.
type AuthHandler struct {
	svc *auth.AuthService
}

// NewAuthHandler construye el handler.
func NewAuthHandler(svc *auth.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.svc.Login(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.svc.RequireAuth(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, user)
}

// UpdateMe PUT /api/auth/me
func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	ctx := c.UserContext()
	current, err := h.svc.RequireAuth(ctx)
	if err != nil {
		return fail(c, err)
	}
	var in dto.UpdateUserRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	user, err := h.svc.UpdateUser(ctx, current.ID, in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, user)
}
