package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/copier-service-api/internal/application/auth"
	"github.com/jhoicas/copier-service-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/copier-service-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/copier-service-api/internal/interfaces/http"
	"github.com/jhoicas/copier-service-api/pkg/config"
	"github.com/jhoicas/copier-service-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		App:   cfg.App.Name,
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, closeRepos, err := openRepositories(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer closeRepos()

	authSvc := auth.NewAuthService(repos.users, repos.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Component("auth"))

	// PDF: hoja de orden de trabajo que el técnico lleva a la visita
	workOrderPDF := infrapdf.NewWorkOrderGenerator(cfg.App.Name)

	customerUC := usecase.NewCustomerUseCase(repos.customers, authSvc)
	contactUC := usecase.NewContactUseCase(repos.contacts, repos.customers, authSvc)
	deviceUC := usecase.NewDeviceUseCase(repos.devices, repos.customers, authSvc)
	serviceOrderUC := usecase.NewServiceOrderUseCase(repos.orders, repos.devices, repos.users, workOrderPDF, authSvc)
	userUC := usecase.NewUserUseCase(repos.users, authSvc)

	created, err := userUC.BootstrapAdmin(ctx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("crear administrador inicial")
	}
	if created {
		log.Info().Str("email", cfg.Seed.AdminEmail).Msg("administrador inicial creado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Copier Service API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Auth:          authSvc,
		Customers:     customerUC,
		Contacts:      contactUC,
		Devices:       deviceUC,
		ServiceOrders: serviceOrderUC,
		Users:         userUC,
		LoginLimiter:  httpRouter.NewIPRateLimiter(cfg.Login.RatePerMinute, cfg.Login.Burst, 15*time.Minute),
		Log:           log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
