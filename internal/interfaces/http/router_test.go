package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/copier-service-api/internal/application/auth"
	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/application/ports"
	"github.com/jhoicas/copier-service-api/internal/application/usecase"
	"github.com/jhoicas/copier-service-api/internal/domain/entity"
	"github.com/jhoicas/copier-service-api/internal/infrastructure/memory"
	httpapi "github.com/jhoicas/copier-service-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

type pdfStub struct{}

func (pdfStub) RenderWorkOrder(_ context.Context, _ *dto.ServiceOrderDetailsView) ([]byte, error) {
	return []byte("%PDF-1.4 stub"), nil
}

type server struct {
	app        *fiber.App
	users      *memory.UserRepo
	adminToken string
	techToken  string
	techID     string
}

const password = "password123"

func newServer(t *testing.T, limiter *httpapi.IPRateLimiter) *server {
	t.Helper()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	customers := memory.NewCustomerRepository(store)
	contacts := memory.NewContactRepository(store)
	devices := memory.NewDeviceRepository(store)
	orders := memory.NewServiceOrderRepository(store)

	authSvc := auth.NewAuthService(users, users, auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "test"}, zerolog.Nop())
	app := fiber.New()
	httpapi.Router(app, httpapi.RouterDeps{
		Auth:          authSvc,
		Customers:     usecase.NewCustomerUseCase(customers, authSvc),
		Contacts:      usecase.NewContactUseCase(contacts, customers, authSvc),
		Devices:       usecase.NewDeviceUseCase(devices, customers, authSvc),
		ServiceOrders: usecase.NewServiceOrderUseCase(orders, devices, users, pdfStub{}, authSvc),
		Users:         usecase.NewUserUseCase(users, authSvc),
		LoginLimiter:  limiter,
		Log:           zerolog.Nop(),
	})

	s := &server{app: app, users: users}
	s.seedUser(t, "admin@konica.com", entity.RoleAdmin)
	tech := s.seedUser(t, "technician@konica.com", entity.RoleTechnician)
	s.techID = tech.ID
	s.adminToken = s.login(t, "admin@konica.com")
	s.techToken = s.login(t, "technician@konica.com")
	return s
}

func (s *server) seedUser(t *testing.T, email string, role entity.Role) *dto.UserResponse {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	u, err := s.users.Create(context.Background(), ports.NewUser{Email: email, PasswordHash: hash, Role: role})
	require.NoError(t, err)
	return u
}

func (s *server) login(t *testing.T, email string) string {
	t.Helper()
	status, env := s.do(t, fiber.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: password})
	require.Equal(t, fiber.StatusOK, status, env.Error)
	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func (s *server) raw(t *testing.T, method, path, token string, body any) *nethttp.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (s *server) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()
	resp := s.raw(t, method, path, token, body)
	defer resp.Body.Close()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión y login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesInvalidas(t *testing.T) {
	s := newServer(t, nil)
	status, env := s.do(t, fiber.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@konica.com", Password: "wrong-password"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.False(t, env.Success)
	assert.Equal(t, httpapi.CodeInvalidCredentials, env.Code)

	status, env = s.do(t, fiber.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "nobody@konica.com", Password: password})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, httpapi.CodeInvalidCredentials, env.Code)
}

func TestLogin_BodyInvalido(t *testing.T) {
	s := newServer(t, nil)
	status, env := s.do(t, fiber.MethodPost, "/api/auth/login", "", map[string]string{"email": "not-an-email"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, httpapi.CodeValidation, env.Code)
	assert.Contains(t, env.Error, "email must be a valid email")
	assert.Contains(t, env.Error, "password is required")
}

func TestLogin_RateLimit(t *testing.T) {
	s := newServer(t, httpapi.NewIPRateLimiter(1, 2, time.Minute))
	// newServer ya consumió las dos fichas de la ráfaga.
	status, env := s.do(t, fiber.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@konica.com", Password: password})
	assert.Equal(t, fiber.StatusTooManyRequests, status)
	assert.Equal(t, httpapi.CodeRateLimited, env.Code)
}

func TestSession_SinTokenEsAnonimo(t *testing.T) {
	s := newServer(t, nil)
	status, env := s.do(t, fiber.MethodGet, "/api/customers", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, httpapi.CodeUnauthorized, env.Code)
}

func TestSession_TokenInvalido(t *testing.T) {
	s := newServer(t, nil)
	status, env := s.do(t, fiber.MethodGet, "/api/customers", "not-a-jwt", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, httpapi.CodeInvalidToken, env.Code)

	req := httptest.NewRequest(fiber.MethodGet, "/api/customers", nil)
	req.Header.Set("Authorization", "Basic abc")
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMe(t *testing.T) {
	s := newServer(t, nil)
	status, env := s.do(t, fiber.MethodGet, "/api/auth/me", s.techToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	me := decode[dto.UserResponse](t, env)
	assert.Equal(t, "technician@konica.com", me.Email)
	assert.Equal(t, entity.RoleTechnician, me.Role)

	name := "Tech One"
	status, env = s.do(t, fiber.MethodPut, "/api/auth/me", s.techToken, dto.UpdateUserRequest{Name: &name})
	require.Equal(t, fiber.StatusOK, status, env.Error)
	require.NotNil(t, decode[dto.UserResponse](t, env).Name)
	assert.Equal(t, name, *decode[dto.UserResponse](t, env).Name)

	role := entity.RoleAdmin
	status, env = s.do(t, fiber.MethodPut, "/api/auth/me", s.techToken, dto.UpdateUserRequest{Role: &role})
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "Required role: ADMIN", env.Error)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recursos
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomers_CRUD(t *testing.T) {
	s := newServer(t, nil)

	status, env := s.do(t, fiber.MethodPost, "/api/customers", s.techToken, dto.CreateCustomerRequest{Name: "Acme", Address: "1 Main St"})
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, httpapi.CodeForbidden, env.Code)

	status, env = s.do(t, fiber.MethodPost, "/api/customers", s.adminToken, dto.CreateCustomerRequest{Name: "A", Address: "1 Main St"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, env.Error, "name must be at least 2 characters")

	status, env = s.do(t, fiber.MethodPost, "/api/customers", s.adminToken, dto.CreateCustomerRequest{Name: "Acme", Address: "1 Main St"})
	require.Equal(t, fiber.StatusCreated, status, env.Error)
	created := decode[dto.CustomerResponse](t, env)

	status, env = s.do(t, fiber.MethodGet, "/api/customers/"+created.ID, s.techToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Acme", decode[dto.CustomerResponse](t, env).Name)

	status, env = s.do(t, fiber.MethodPut, "/api/customers/"+created.ID, s.adminToken, dto.UpdateCustomerRequest{Name: "Acme Corp", Address: "2 Main St"})
	require.Equal(t, fiber.StatusOK, status, env.Error)
	assert.Equal(t, "Acme Corp", decode[dto.CustomerResponse](t, env).Name)

	status, env = s.do(t, fiber.MethodDelete, "/api/customers/"+created.ID, s.adminToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, env.Success)

	status, env = s.do(t, fiber.MethodGet, "/api/customers/"+created.ID, s.adminToken, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Customer with ID "+created.ID+" not found", env.Error)

	status, env = s.do(t, fiber.MethodDelete, "/api/customers/"+created.ID, s.adminToken, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, httpapi.CodeNotFound, env.Code)
}

func TestDevices_SerialDuplicadoYRutasEstaticas(t *testing.T) {
	s := newServer(t, nil)
	_, env := s.do(t, fiber.MethodPost, "/api/customers", s.adminToken, dto.CreateCustomerRequest{Name: "Acme", Address: "1 Main St"})
	customer := decode[dto.CustomerResponse](t, env)

	in := dto.CreateDeviceRequest{Model: entity.DeviceModelC258, SerialNumber: "SN-001", CustomerID: &customer.ID}
	status, env := s.do(t, fiber.MethodPost, "/api/devices", s.adminToken, in)
	require.Equal(t, fiber.StatusCreated, status, env.Error)

	status, env = s.do(t, fiber.MethodPost, "/api/devices", s.adminToken, in)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, httpapi.CodeDuplicate, env.Code)

	status, env = s.do(t, fiber.MethodPost, "/api/devices", s.adminToken, map[string]string{"model": "X100", "serial_number": "SN-002"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, env.Error, "model must be one of")

	status, env = s.do(t, fiber.MethodGet, "/api/devices/serial/SN-001", s.techToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "SN-001", decode[dto.DeviceResponse](t, env).SerialNumber)

	status, env = s.do(t, fiber.MethodGet, "/api/devices/serial/SN-404", s.techToken, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Device with serial number SN-404 not found", env.Error)

	status, env = s.do(t, fiber.MethodGet, "/api/devices/table", s.techToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	table := decode[[]dto.DeviceWithRelationsResponse](t, env)
	require.Len(t, table, 1)
	require.NotNil(t, table[0].Customer)
	assert.Equal(t, "Acme", table[0].Customer.Name)

	status, env = s.do(t, fiber.MethodGet, "/api/customers/"+customer.ID+"/devices", s.techToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decode[[]dto.DeviceResponse](t, env), 1)
}

func TestServiceOrders_Flujo(t *testing.T) {
	s := newServer(t, nil)
	_, env := s.do(t, fiber.MethodPost, "/api/customers", s.adminToken, dto.CreateCustomerRequest{Name: "Acme", Address: "1 Main St"})
	customer := decode[dto.CustomerResponse](t, env)
	_, env = s.do(t, fiber.MethodPost, "/api/devices", s.adminToken, dto.CreateDeviceRequest{Model: entity.DeviceModelC224, SerialNumber: "SN-100", CustomerID: &customer.ID})
	device := decode[dto.DeviceResponse](t, env)

	status, env := s.do(t, fiber.MethodPost, "/api/service-orders", s.techToken, dto.CreateServiceOrderRequest{
		DeviceID:           "missing-device",
		TroubleDescription: "Paper jam in tray 2",
	})
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Device with ID missing-device not found", env.Error)

	status, env = s.do(t, fiber.MethodPost, "/api/service-orders", s.techToken, dto.CreateServiceOrderRequest{
		DeviceID:           device.ID,
		TroubleDescription: "short",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, env.Error, "trouble_description must be at least 10 characters")

	status, env = s.do(t, fiber.MethodPost, "/api/service-orders", s.techToken, dto.CreateServiceOrderRequest{
		DeviceID:           device.ID,
		TroubleDescription: "Paper jam in tray 2",
		AssignedToID:       &s.techID,
	})
	require.Equal(t, fiber.StatusCreated, status, env.Error)
	order := decode[dto.ServiceOrderResponse](t, env)
	assert.Equal(t, entity.StatusPending, order.Status)

	status, env = s.do(t, fiber.MethodGet, "/api/service-orders/table", s.techToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	rows := decode[[]dto.ServiceOrderTableView](t, env)
	require.Len(t, rows, 1)
	assert.Equal(t, "SN-100", rows[0].DeviceSerialNumber)

	status, env = s.do(t, fiber.MethodGet, "/api/service-orders/mine", s.techToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decode[[]dto.ServiceOrderResponse](t, env), 1)

	status, env = s.do(t, fiber.MethodGet, "/api/service-orders/"+order.ID+"/details", s.techToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, device.ID, decode[dto.ServiceOrderDetailsView](t, env).DeviceID)

	status, env = s.do(t, fiber.MethodPut, "/api/service-orders/"+order.ID, s.techToken, dto.UpdateServiceOrderRequest{
		TroubleDescription: "Paper jam in tray 2",
		AssignedToID:       &s.techID,
		Status:             entity.StatusCompleted,
	})
	require.Equal(t, fiber.StatusOK, status, env.Error)
	assert.NotNil(t, decode[dto.ServiceOrderResponse](t, env).CompletedAt)

	status, env = s.do(t, fiber.MethodPut, "/api/service-orders/"+order.ID, s.techToken, dto.UpdateServiceOrderRequest{
		TroubleDescription: "Paper jam in tray 2",
		Status:             entity.StatusPending,
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Cannot change status from COMPLETED to PENDING", env.Error)

	status, _ = s.do(t, fiber.MethodDelete, "/api/service-orders/"+order.ID, s.techToken, nil)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestServiceOrders_PDF(t *testing.T) {
	s := newServer(t, nil)
	_, env := s.do(t, fiber.MethodPost, "/api/devices", s.adminToken, dto.CreateDeviceRequest{Model: entity.DeviceModelC250i, SerialNumber: "SN-PDF"})
	device := decode[dto.DeviceResponse](t, env)
	_, env = s.do(t, fiber.MethodPost, "/api/service-orders", s.techToken, dto.CreateServiceOrderRequest{
		DeviceID:           device.ID,
		TroubleDescription: "Fuser unit error C3425",
	})
	order := decode[dto.ServiceOrderResponse](t, env)

	resp := s.raw(t, fiber.MethodGet, "/api/service-orders/"+order.ID+"/pdf", s.techToken, nil)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	status, _ := s.do(t, fiber.MethodGet, "/api/service-orders/missing/pdf", s.techToken, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestUsers_SoloAdmin(t *testing.T) {
	s := newServer(t, nil)

	status, _ := s.do(t, fiber.MethodGet, "/api/users", s.techToken, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, env := s.do(t, fiber.MethodGet, "/api/users/technicians", s.techToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decode[[]dto.UserResponse](t, env), 1)

	status, env = s.do(t, fiber.MethodPost, "/api/users", s.adminToken, dto.CreateUserRequest{
		Email:    "new.tech@konica.com",
		Password: "supersecret",
		Role:     entity.RoleTechnician,
	})
	require.Equal(t, fiber.StatusCreated, status, env.Error)
	assert.NotContains(t, string(env.Data), "password")

	status, env = s.do(t, fiber.MethodGet, "/api/users?email=new.tech@konica.com", s.adminToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, entity.RoleTechnician, decode[dto.UserResponse](t, env).Role)

	status, _ = s.do(t, fiber.MethodPost, "/api/users", s.adminToken, dto.CreateUserRequest{
		Email:    "new.tech@konica.com",
		Password: "supersecret",
		Role:     entity.RoleTechnician,
	})
	assert.Equal(t, fiber.StatusConflict, status)
}

func TestErrorInterno_NoExponeDetalleTecnico(t *testing.T) {
	s := newServer(t, nil)
	_, env := s.do(t, fiber.MethodPost, "/api/devices", s.adminToken, dto.CreateDeviceRequest{Model: entity.DeviceModelC224, SerialNumber: "SN-FK"})
	device := decode[dto.DeviceResponse](t, env)
	status, env := s.do(t, fiber.MethodPost, "/api/service-orders", s.techToken, dto.CreateServiceOrderRequest{
		DeviceID:           device.ID,
		TroubleDescription: "Paper jam in tray 2",
	})
	require.Equal(t, fiber.StatusCreated, status, env.Error)

	// El equipo tiene órdenes: el borrado falla en la capa de persistencia.
	status, env = s.do(t, fiber.MethodDelete, "/api/devices/"+device.ID, s.adminToken, nil)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, httpapi.CodeInternal, env.Code)
	assert.Equal(t, "internal server error", env.Error)
	assert.NotContains(t, env.Error, "foreign key")
	assert.NotContains(t, env.Error, "Failed to delete device")
}

func TestReferenciasVacias_SeTratanComoSinAsignar(t *testing.T) {
	s := newServer(t, nil)

	status, env := s.do(t, fiber.MethodPost, "/api/devices", s.adminToken, map[string]any{
		"model":         "C258",
		"serial_number": "SN-EMPTY",
		"customer_id":   "",
	})
	require.Equal(t, fiber.StatusCreated, status, env.Error)
	device := decode[dto.DeviceResponse](t, env)
	assert.Nil(t, device.CustomerID)

	status, env = s.do(t, fiber.MethodPost, "/api/service-orders", s.techToken, map[string]any{
		"device_id":           device.ID,
		"trouble_description": "Scanner glass streaks on copies",
		"assigned_to_id":      "",
	})
	require.Equal(t, fiber.StatusCreated, status, env.Error)
	order := decode[dto.ServiceOrderResponse](t, env)
	assert.Nil(t, order.AssignedToID)

	status, env = s.do(t, fiber.MethodPut, "/api/service-orders/"+order.ID, s.techToken, map[string]any{
		"trouble_description": "Scanner glass streaks on copies",
		"assigned_to_id":      "",
		"status":              "ISSUED",
	})
	require.Equal(t, fiber.StatusOK, status, env.Error)
	assert.Nil(t, decode[dto.ServiceOrderResponse](t, env).AssignedToID)
}
