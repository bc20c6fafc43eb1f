package ports

import (
	"context"
	"time"

	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/domain/entity"
)

// Repository contrato base de persistencia para un DTO T creado con C y actualizado con U.
//
//   - FindByID devuelve (nil, nil) si no existe.
//   - FindAll devuelve un slice vacío (no nil) si no hay filas.
//   - Update y Delete no comprueban existencia: el caller lo hace antes.
//   - Todo fallo técnico llega como *domain.RepositoryError.
type Repository[T, C, U any] interface {
	Create(ctx context.Context, in C) (*T, error)
	FindByID(ctx context.Context, id string) (*T, error)
	FindAll(ctx context.Context) ([]T, error)
	Update(ctx context.Context, id string, in U) (*T, error)
	Delete(ctx context.Context, id string) error
}

// NewUser datos de alta de un usuario ya con el password hasheado.
type NewUser struct {
	Name         *string
	Email        string
	PasswordHash string
	Role         entity.Role
	Image        *string
}

// UserChanges actualización parcial; nil = sin cambio.
type UserChanges struct {
	Name         *string
	Email        *string
	Image        *string
	Role         *entity.Role
	PasswordHash *string
}

// UserRepository los usuarios no se eliminan desde la aplicación.
type UserRepository interface {
	Create(ctx context.Context, in NewUser) (*dto.UserResponse, error)
	FindByID(ctx context.Context, id string) (*dto.UserResponse, error)
	FindByEmail(ctx context.Context, email string) (*dto.UserResponse, error)
	FindAll(ctx context.Context) ([]dto.UserResponse, error)
	FindAllByRole(ctx context.Context, role entity.Role) ([]dto.UserResponse, error)
	Update(ctx context.Context, id string, in UserChanges) (*dto.UserResponse, error)
	Count(ctx context.Context) (int, error)
}

// CredentialStore acceso al registro completo (con hash) solo para verificar credenciales.
type CredentialStore interface {
	FindCredentialsByEmail(ctx context.Context, email string) (*entity.User, error)
}

type CustomerRepository interface {
	Repository[dto.CustomerResponse, dto.CreateCustomerRequest, dto.UpdateCustomerRequest]
	FindByIDWithRelations(ctx context.Context, id string) (*dto.CustomerWithRelationsResponse, error)
}

type ContactRepository interface {
	Repository[dto.ContactResponse, dto.CreateContactRequest, dto.UpdateContactRequest]
	FindByIDWithRelations(ctx context.Context, id string) (*dto.ContactWithRelationsResponse, error)
	FindAllForCustomer(ctx context.Context, customerID string) ([]dto.ContactResponse, error)
}

type DeviceRepository interface {
	Repository[dto.DeviceResponse, dto.CreateDeviceRequest, dto.UpdateDeviceRequest]
	FindBySerialNumber(ctx context.Context, serialNumber string) (*dto.DeviceResponse, error)
	FindByIDWithRelations(ctx context.Context, id string) (*dto.DeviceWithRelationsResponse, error)
	FindAllWithRelations(ctx context.Context) ([]dto.DeviceWithRelationsResponse, error)
	FindAllForCustomer(ctx context.Context, customerID string) ([]dto.DeviceResponse, error)
}

// NewServiceOrder datos de alta ya validados por el servicio.
type NewServiceOrder struct {
	DeviceID           string
	TroubleDescription string
	AssignedToID       *string
	Status             entity.ServiceOrderStatus
	CompletedAt        *time.Time
}

// ServiceOrderChanges reemplazo de los campos editables. CompletedAt nil = conservar.
type ServiceOrderChanges struct {
	TroubleDescription string
	AssignedToID       *string
	Status             entity.ServiceOrderStatus
	CompletedAt        *time.Time
}

type ServiceOrderRepository interface {
	Repository[dto.ServiceOrderResponse, NewServiceOrder, ServiceOrderChanges]
	FindByIDWithRelations(ctx context.Context, id string) (*dto.ServiceOrderWithRelationsResponse, error)
	FindAllWithRelations(ctx context.Context) ([]dto.ServiceOrderWithRelationsResponse, error)
	FindAllForDevice(ctx context.Context, deviceID string) ([]dto.ServiceOrderResponse, error)
	FindAllForAssignee(ctx context.Context, userID string) ([]dto.ServiceOrderResponse, error)
}
