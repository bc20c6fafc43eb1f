package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/application/usecase"
)

// ServiceOrderHandler maneja las peticiones HTTP de órdenes de servicio.
type ServiceOrderHandler struct {
	uc *usecase.ServiceOrderUseCase
}

// NewServiceOrderHandler construye el handler.
func NewServiceOrderHandler(uc *usecase.ServiceOrderUseCase) *ServiceOrderHandler {
	return &ServiceOrderHandler{uc: uc}
}

// Create POST /api/service-orders
func (h *ServiceOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateServiceOrderRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	order, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, order)
}

// List GET /api/service-orders
func (h *ServiceOrderHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.GetAll(c.UserContext())
	return listed(c, list, err)
}

// Table GET /api/service-orders/table
func (h *ServiceOrderHandler) Table(c *fiber.Ctx) error {
	list, err := h.uc.GetAllForTable(c.UserContext())
	return listed(c, list, err)
}

// Mine GET /api/service-orders/mine (órdenes asignadas al usuario actual)
func (h *ServiceOrderHandler) Mine(c *fiber.Ctx) error {
	list, err := h.uc.GetMine(c.UserContext())
	return listed(c, list, err)
}

// GetByID GET /api/service-orders/:id
func (h *ServiceOrderHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	order, err := h.uc.Get(c.UserContext(), id)
	return found(c, order, "Service order", id, err)
}

// GetWithRelations GET /api/service-orders/:id/relations
func (h *ServiceOrderHandler) GetWithRelations(c *fiber.Ctx) error {
	id := c.Params("id")
	order, err := h.uc.GetWithRelations(c.UserContext(), id)
	return found(c, order, "Service order", id, err)
}

// Details GET /api/service-orders/:id/details
func (h *ServiceOrderHandler) Details(c *fiber.Ctx) error {
	id := c.Params("id")
	view, err := h.uc.GetDetails(c.UserContext(), id)
	return found(c, view, "Service order", id, err)
}

// PDF GET /api/service-orders/:id/pdf
func (h *ServiceOrderHandler) PDF(c *fiber.Ctx) error {
	id := c.Params("id")
	doc, err := h.uc.WorkOrderPDF(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="orden-%s.pdf"`, id))
	return c.Status(fiber.StatusOK).Send(doc)
}

// Update PUT /api/service-orders/:id
func (h *ServiceOrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateServiceOrderRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	order, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, order)
}

// Delete DELETE /api/service-orders/:id
func (h *ServiceOrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, nil)
}
