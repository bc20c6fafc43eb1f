package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/copier-service-api/internal/application/ports"
	"github.com/jhoicas/copier-service-api/internal/infrastructure/memory"
	"github.com/jhoicas/copier-service-api/internal/infrastructure/postgres"
	"github.com/jhoicas/copier-service-api/pkg/config"
)

// userStore usuarios + búsqueda de credenciales (mismo adaptador en ambos drivers).
type userStore interface {
	ports.UserRepository
	ports.CredentialStore
}

type repositories struct {
	users     userStore
	customers ports.CustomerRepository
	contacts  ports.ContactRepository
	devices   ports.DeviceRepository
	orders    ports.ServiceOrderRepository
}

// openRepositories construye los adaptadores según DB_DRIVER. El cierre libera el pool.
func openRepositories(ctx context.Context, cfg config.DBConfig) (*repositories, func(), error) {
	switch cfg.Driver {
	case "memory":
		store := memory.NewStore()
		return &repositories{
			users:     memory.NewUserRepository(store),
			customers: memory.NewCustomerRepository(store),
			contacts:  memory.NewContactRepository(store),
			devices:   memory.NewDeviceRepository(store),
			orders:    memory.NewServiceOrderRepository(store),
		}, func() {}, nil
	case "postgres", "":
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.Migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, nil, fmt.Errorf("migraciones: %w", err)
			}
		}
		return &repositories{
			users:     postgres.NewUserRepository(pool),
			customers: postgres.NewCustomerRepository(pool),
			contacts:  postgres.NewContactRepository(pool),
			devices:   postgres.NewDeviceRepository(pool),
			orders:    postgres.NewServiceOrderRepository(pool),
		}, pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("DB_DRIVER no soportado: %q", cfg.Driver)
	}
}
