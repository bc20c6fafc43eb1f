package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/application/usecase"
)

// CustomerHandler maneja las peticiones HTTP de clientes.
type CustomerHandler struct {
	uc       *usecase.CustomerUseCase
	contacts *usecase.ContactUseCase
	devices  *usecase.DeviceUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase, contacts *usecase.ContactUseCase, devices *usecase.DeviceUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc, contacts: contacts, devices: devices}
}

// Create POST /api/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	customer, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, customer)
}

// List GET /api/customers
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.GetAll(c.UserContext())
	return listed(c, list, err)
}

// GetByID GET /api/customers/:id
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	customer, err := h.uc.Get(c.UserContext(), id)
	return found(c, customer, "Customer", id, err)
}

// GetWithRelations GET /api/customers/:id/relations
func (h *CustomerHandler) GetWithRelations(c *fiber.Ctx) error {
	id := c.Params("id")
	customer, err := h.uc.GetWithRelations(c.UserContext(), id)
	return found(c, customer, "Customer", id, err)
}

// Contacts GET /api/customers/:id/contacts
func (h *CustomerHandler) Contacts(c *fiber.Ctx) error {
	list, err := h.contacts.GetAllForCustomer(c.UserContext(), c.Params("id"))
	return listed(c, list, err)
}

// Devices GET /api/customers/:id/devices
func (h *CustomerHandler) Devices(c *fiber.Ctx) error {
	list, err := h.devices.GetAllForCustomer(c.UserContext(), c.Params("id"))
	return listed(c, list, err)
}

// Update PUT /api/customers/:id
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCustomerRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	customer, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, customer)
}

// Delete DELETE /api/customers/:id
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, nil)
}
