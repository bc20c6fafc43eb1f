package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/application/usecase"
	"github.com/jhoicas/copier-service-api/internal/domain"
)

// UserHandler administración de usuarios.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Create POST /api/users
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	user, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, user)
}

// List GET /api/users (?email= filtra por email)
func (h *UserHandler) List(c *fiber.Ctx) error {
	if email := c.Query("email"); email != "" {
		user, err := h.uc.GetByEmail(c.UserContext(), email)
		if err != nil {
			return fail(c, err)
		}
		if user == nil {
			return fail(c, &domain.NotFoundError{Entity: "User", Field: "email", Value: email})
		}
		return respond(c, fiber.StatusOK, user)
	}
	list, err := h.uc.GetAll(c.UserContext())
	return listed(c, list, err)
}

// Technicians GET /api/users/technicians
func (h *UserHandler) Technicians(c *fiber.Ctx) error {
	list, err := h.uc.ListTechnicians(c.UserContext())
	return listed(c, list, err)
}

// GetByID GET /api/users/:id
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	user, err := h.uc.Get(c.UserContext(), id)
	return found(c, user, "User", id, err)
}
