package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/copier-service-api/internal/application/auth"
	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/application/ports"
	"github.com/jhoicas/copier-service-api/internal/domain"
	"github.com/jhoicas/copier-service-api/internal/domain/entity"
	"github.com/jhoicas/copier-service-api/internal/infrastructure/memory"
)

var testJWT = auth.JWTConfig{Secret: "test-secret-key-for-unit-tests", ExpMinutes: 60, Issuer: "copier-service-test"}

func setup(t *testing.T) (*auth.AuthService, *memory.UserRepo, *dto.UserResponse, *dto.UserResponse) {
	t.Helper()
	repo := memory.NewUserRepository(memory.NewStore())
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	admin, err := repo.Create(context.Background(), ports.NewUser{Email: "admin@konica.com", PasswordHash: hash, Role: entity.RoleAdmin})
	require.NoError(t, err)
	tech, err := repo.Create(context.Background(), ports.NewUser{Email: "technician@konica.com", PasswordHash: hash, Role: entity.RoleTechnician})
	require.NoError(t, err)
	return auth.NewAuthService(repo, repo, testJWT, zerolog.Nop()), repo, admin, tech
}

func sessionFor(u *dto.UserResponse) context.Context {
	return ports.WithSession(context.Background(), &ports.Session{ID: u.ID, Email: u.Email, Role: u.Role})
}

// brokenUsers repositorio que siempre falla al resolver por ID.
type brokenUsers struct {
	ports.UserRepository
}

func (brokenUsers) FindByID(context.Context, string) (*dto.UserResponse, error) {
	return nil, &domain.RepositoryError{Op: "Failed to find user", Err: errors.New("connection refused")}
}

// ──────────────────────────────────────────────────────────────────────────────
// CurrentUser / RequireAuth / RequireAnyRole
// ──────────────────────────────────────────────────────────────────────────────

func TestCurrentUser_SinSesionEsNil(t *testing.T) {
	svc, _, _, _ := setup(t)
	assert.Nil(t, svc.CurrentUser(context.Background()))
}

func TestCurrentUser_ResuelveDesdeRepositorio(t *testing.T) {
	svc, _, admin, _ := setup(t)
	ctx := ports.WithSession(context.Background(), &ports.Session{ID: admin.ID, Email: "stale@konica.com", Role: entity.RoleTechnician})

	u := svc.CurrentUser(ctx)
	require.NotNil(t, u)
	assert.Equal(t, admin.Email, u.Email)
	assert.Equal(t, entity.RoleAdmin, u.Role, "el rol se toma del registro, no del token")
}

func TestCurrentUser_FalloDeRepositorioUsaDatosDeSesion(t *testing.T) {
	svc := auth.NewAuthService(brokenUsers{}, nil, testJWT, zerolog.Nop())
	ctx := ports.WithSession(context.Background(), &ports.Session{ID: "u1", Email: "a@b.co", Role: entity.RoleTechnician})

	u := svc.CurrentUser(ctx)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, entity.RoleTechnician, u.Role)
}

func TestRequireAnyRole(t *testing.T) {
	svc, _, admin, tech := setup(t)

	_, err := svc.RequireAnyRole(context.Background(), entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	u, err := svc.RequireAnyRole(sessionFor(admin), entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, u.ID)

	_, err = svc.RequireAnyRole(sessionFor(tech), entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.RequireAnyRole(sessionFor(tech), entity.RoleAdmin, entity.RoleTechnician)
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateUser
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateUser_SoloElPropioUsuario(t *testing.T) {
	svc, _, admin, tech := setup(t)

	_, err := svc.UpdateUser(sessionFor(tech), admin.ID, dto.UpdateUserRequest{Name: ptr("Hacker")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.EqualError(t, err, "acceso denegado: not authorized to update this user")
}

func TestUpdateUser_PerfilPropio(t *testing.T) {
	svc, _, _, tech := setup(t)

	u, err := svc.UpdateUser(sessionFor(tech), tech.ID, dto.UpdateUserRequest{Name: ptr("Luis")})
	require.NoError(t, err)
	require.NotNil(t, u.Name)
	assert.Equal(t, "Luis", *u.Name)
	assert.Equal(t, tech.Email, u.Email)
}

func TestUpdateUser_TecnicoNoPuedeCambiarSuRol(t *testing.T) {
	svc, repo, _, tech := setup(t)
	admin := entity.RoleAdmin

	_, err := svc.UpdateUser(sessionFor(tech), tech.ID, dto.UpdateUserRequest{Role: &admin})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := repo.FindByID(context.Background(), tech.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleTechnician, got.Role)
}

func TestUpdateUser_CambioDePasswordYLogin(t *testing.T) {
	svc, _, admin, _ := setup(t)

	_, err := svc.UpdateUser(sessionFor(admin), admin.ID, dto.UpdateUserRequest{Password: ptr("new-password-1")})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: admin.Email, Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: admin.Email, Password: "new-password-1"})
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login / tokens
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_TokenProduceSesion(t *testing.T) {
	svc, _, _, tech := setup(t)

	res, err := svc.Login(context.Background(), dto.LoginRequest{Email: tech.Email, Password: "password123"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	assert.Equal(t, tech.ID, res.User.ID)

	s, err := svc.SessionFromToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, tech.ID, s.ID)
	assert.Equal(t, entity.RoleTechnician, s.Role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	svc, _, admin, _ := setup(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: admin.Email, Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "nobody@konica.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestSessionFromToken_Invalido(t *testing.T) {
	svc, _, _, _ := setup(t)
	_, err := svc.SessionFromToken("token.invalido.aqui")
	assert.Error(t, err)
}

func ptr[T any](v T) *T { return &v }
