package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/copier-service-api/internal/application/auth"
	"github.com/jhoicas/copier-service-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Auth          *auth.AuthService
	Customers     *usecase.CustomerUseCase
	Contacts      *usecase.ContactUseCase
	Devices       *usecase.DeviceUseCase
	ServiceOrders *usecase.ServiceOrderUseCase
	Users         *usecase.UserUseCase
	LoginLimiter  *IPRateLimiter
	Log           zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestLogger(deps.Log), SessionMiddleware(deps.Auth))

	limiter := deps.LoginLimiter
	if limiter == nil {
		limiter = NewIPRateLimiter(10, 5, 10*time.Minute)
	}

	authHandler := NewAuthHandler(deps.Auth)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", RateLimit(limiter), authHandler.Login)
	authGroup.Get("/me", authHandler.Me)
	authGroup.Put("/me", authHandler.UpdateMe)

	customerHandler := NewCustomerHandler(deps.Customers, deps.Contacts, deps.Devices)
	customers := api.Group("/customers")
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Get("/:id/relations", customerHandler.GetWithRelations)
	customers.Get("/:id/contacts", customerHandler.Contacts)
	customers.Get("/:id/devices", customerHandler.Devices)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	contactHandler := NewContactHandler(deps.Contacts)
	contacts := api.Group("/contacts")
	contacts.Get("/", contactHandler.List)
	contacts.Post("/", contactHandler.Create)
	contacts.Get("/:id", contactHandler.GetByID)
	contacts.Get("/:id/relations", contactHandler.GetWithRelations)
	contacts.Put("/:id", contactHandler.Update)
	contacts.Delete("/:id", contactHandler.Delete)

	// Rutas estáticas antes de /:id.
	deviceHandler := NewDeviceHandler(deps.Devices, deps.ServiceOrders)
	devices := api.Group("/devices")
	devices.Get("/", deviceHandler.List)
	devices.Post("/", deviceHandler.Create)
	devices.Get("/table", deviceHandler.Table)
	devices.Get("/serial/:serialNumber", deviceHandler.GetBySerial)
	devices.Get("/:id", deviceHandler.GetByID)
	devices.Get("/:id/relations", deviceHandler.GetWithRelations)
	devices.Get("/:id/service-orders", deviceHandler.ServiceOrders)
	devices.Put("/:id", deviceHandler.Update)
	devices.Delete("/:id", deviceHandler.Delete)

	orderHandler := NewServiceOrderHandler(deps.ServiceOrders)
	orders := api.Group("/service-orders")
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Get("/table", orderHandler.Table)
	orders.Get("/mine", orderHandler.Mine)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Get("/:id/relations", orderHandler.GetWithRelations)
	orders.Get("/:id/details", orderHandler.Details)
	orders.Get("/:id/pdf", orderHandler.PDF)
	orders.Put("/:id", orderHandler.Update)
	orders.Delete("/:id", orderHandler.Delete)

	userHandler := NewUserHandler(deps.Users)
	users := api.Group("/users")
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/technicians", userHandler.Technicians)
	users.Get("/:id", userHandler.GetByID)
}
