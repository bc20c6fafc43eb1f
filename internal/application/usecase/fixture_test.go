package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/copier-service-api/internal/application/auth"
	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/application/ports"
	"github.com/jhoicas/copier-service-api/internal/application/usecase"
	"github.com/jhoicas/copier-service-api/internal/domain/entity"
	"github.com/jhoicas/copier-service-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: almacén en memoria + servicios reales + un ADMIN y un TECHNICIAN
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	users     *memory.UserRepo
	customers *memory.CustomerRepo
	contacts  *memory.ContactRepo
	devices   *memory.DeviceRepo
	orders    *memory.ServiceOrderRepo

	auth        *auth.AuthService
	customerUC  *usecase.CustomerUseCase
	contactUC   *usecase.ContactUseCase
	deviceUC    *usecase.DeviceUseCase
	orderUC     *usecase.ServiceOrderUseCase
	userUC      *usecase.UserUseCase
	renderer    *fakeRenderer
	admin       *dto.UserResponse
	technician  *dto.UserResponse
	technician2 *dto.UserResponse
}

type fakeRenderer struct {
	got *dto.ServiceOrderDetailsView
}

func (f *fakeRenderer) RenderWorkOrder(_ context.Context, v *dto.ServiceOrderDetailsView) ([]byte, error) {
	f.got = v
	return []byte("%PDF-fake"), nil
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		users:     memory.NewUserRepository(store),
		customers: memory.NewCustomerRepository(store),
		contacts:  memory.NewContactRepository(store),
		devices:   memory.NewDeviceRepository(store),
		orders:    memory.NewServiceOrderRepository(store),
		renderer:  &fakeRenderer{},
	}
	f.auth = auth.NewAuthService(f.users, f.users, auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "test"}, zerolog.Nop())
	f.customerUC = usecase.NewCustomerUseCase(f.customers, f.auth)
	f.contactUC = usecase.NewContactUseCase(f.contacts, f.customers, f.auth)
	f.deviceUC = usecase.NewDeviceUseCase(f.devices, f.customers, f.auth)
	f.orderUC = usecase.NewServiceOrderUseCase(f.orders, f.devices, f.users, f.renderer, f.auth)
	f.userUC = usecase.NewUserUseCase(f.users, f.auth)

	f.admin = f.seedUser(t, "admin@konica.com", entity.RoleAdmin)
	f.technician = f.seedUser(t, "technician@konica.com", entity.RoleTechnician)
	f.technician2 = f.seedUser(t, "second.tech@konica.com", entity.RoleTechnician)
	return f
}

func (f *fixture) seedUser(t *testing.T, email string, role entity.Role) *dto.UserResponse {
	t.Helper()
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	name := string(role) + " user"
	u, err := f.users.Create(context.Background(), ports.NewUser{Name: &name, Email: email, PasswordHash: hash, Role: role})
	require.NoError(t, err)
	return u
}

// as devuelve un contexto con la sesión del usuario.
func as(u *dto.UserResponse) context.Context {
	return ports.WithSession(context.Background(), &ports.Session{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	})
}

func (f *fixture) seedCustomer(t *testing.T, name string) *dto.CustomerResponse {
	t.Helper()
	c, err := f.customerUC.Create(as(f.admin), dto.CreateCustomerRequest{Name: name, Address: "1 Main St"})
	require.NoError(t, err)
	return c
}

func (f *fixture) seedDevice(t *testing.T, serial string, customerID *string) *dto.DeviceResponse {
	t.Helper()
	d, err := f.deviceUC.Create(as(f.admin), dto.CreateDeviceRequest{
		Model:        entity.DeviceModelC258,
		SerialNumber: serial,
		CustomerID:   customerID,
	})
	require.NoError(t, err)
	return d
}

func (f *fixture) seedOrder(t *testing.T, deviceID string, status entity.ServiceOrderStatus) *dto.ServiceOrderResponse {
	t.Helper()
	o, err := f.orderUC.Create(as(f.technician), dto.CreateServiceOrderRequest{
		DeviceID:           deviceID,
		TroubleDescription: "Paper jam in tray 2",
		AssignedToID:       &f.technician.ID,
		Status:             status,
	})
	require.NoError(t, err)
	return o
}

func ptr[T any](v T) *T { return &v }
