package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/application/usecase"
)

// ContactHandler maneja las peticiones HTTP de contactos.
type ContactHandler struct {
	uc *usecase.ContactUseCase
}

// NewContactHandler construye el handler.
func NewContactHandler(uc *usecase.ContactUseCase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

// Create POST /api/contacts
func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateContactRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	contact, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, contact)
}

// List GET /api/contacts
func (h *ContactHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.GetAll(c.UserContext())
	return listed(c, list, err)
}

// GetByID GET /api/contacts/:id
func (h *ContactHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	contact, err := h.uc.Get(c.UserContext(), id)
	return found(c, contact, "Contact", id, err)
}

// GetWithRelations GET /api/contacts/:id/relations
func (h *ContactHandler) GetWithRelations(c *fiber.Ctx) error {
	id := c.Params("id")
	contact, err := h.uc.GetWithRelations(c.UserContext(), id)
	return found(c, contact, "Contact", id, err)
}

// Update PUT /api/contacts/:id
func (h *ContactHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateContactRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	contact, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, contact)
}

// Delete DELETE /api/contacts/:id
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, nil)
}
