package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/application/usecase"
	"github.com/jhoicas/copier-service-api/internal/domain"
)

// DeviceHandler maneja las peticiones HTTP de equipos.
type DeviceHandler struct {
	uc     *usecase.DeviceUseCase
	orders *usecase.ServiceOrderUseCase
}

// NewDeviceHandler construye el handler.
func NewDeviceHandler(uc *usecase.DeviceUseCase, orders *usecase.ServiceOrderUseCase) *DeviceHandler {
	return &DeviceHandler{uc: uc, orders: orders}
}

// Create POST /api/devices
func (h *DeviceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDeviceRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	device, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, device)
}

// List GET /api/devices
func (h *DeviceHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.GetAll(c.UserContext())
	return listed(c, list, err)
}

// Table GET /api/devices/table (equipos con su cliente)
func (h *DeviceHandler) Table(c *fiber.Ctx) error {
	list, err := h.uc.GetAllWithRelations(c.UserContext())
	return listed(c, list, err)
}

// GetBySerial GET /api/devices/serial/:serialNumber
func (h *DeviceHandler) GetBySerial(c *fiber.Ctx) error {
	serial := c.Params("serialNumber")
	device, err := h.uc.GetBySerialNumber(c.UserContext(), serial)
	if err != nil {
		return fail(c, err)
	}
	if device == nil {
		return fail(c, &domain.NotFoundError{Entity: "Device", Field: "serial number", Value: serial})
	}
	return respond(c, fiber.StatusOK, device)
}

// GetByID GET /api/devices/:id
func (h *DeviceHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	device, err := h.uc.Get(c.UserContext(), id)
	return found(c, device, "Device", id, err)
}

// GetWithRelations GET /api/devices/:id/relations
func (h *DeviceHandler) GetWithRelations(c *fiber.Ctx) error {
	id := c.Params("id")
	device, err := h.uc.GetWithRelations(c.UserContext(), id)
	return found(c, device, "Device", id, err)
}

// ServiceOrders GET /api/devices/:id/service-orders
func (h *DeviceHandler) ServiceOrders(c *fiber.Ctx) error {
	list, err := h.orders.GetAllForDevice(c.UserContext(), c.Params("id"))
	return listed(c, list, err)
}

// Update PUT /api/devices/:id
func (h *DeviceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDeviceRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	device, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, device)
}

// Delete DELETE /api/devices/:id
func (h *DeviceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, nil)
}
