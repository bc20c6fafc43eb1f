package usecase

import (
	"context"

	"github.com/jhoicas/copier-service-api/internal/application/auth"
	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/application/ports"
	"github.com/jhoicas/copier-service-api/internal/domain/entity"
)

// UserUseCase aplica reglas de negocio para usuarios. La gestión es solo para ADMIN;
// el listado de técnicos lo puede pedir cualquier usuario autenticado.
type UserUseCase struct {
	repo ports.UserRepository
	auth Authorizer
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo ports.UserRepository, auth Authorizer) *UserUseCase {
	return &UserUseCase{repo: repo, auth: auth}
}

// Get obtiene un usuario por ID (nil si no existe).
func (uc *UserUseCase) Get(ctx context.Context, id string) (*dto.UserResponse, error) {
	if _, err := uc.auth.RequireAnyRole(ctx, adminOnly...); err != nil {
		return nil, err
	}
	return uc.repo.FindByID(ctx, id)
}

// GetByEmail obtiene un usuario por email (nil si no existe).
func (uc *UserUseCase) GetByEmail(ctx context.Context, email string) (*dto.UserResponse, error) {
	if _, err := uc.auth.RequireAnyRole(ctx, adminOnly...); err != nil {
		return nil, err
	}
	return uc.repo.FindByEmail(ctx, email)
}

func (uc *UserUseCase) GetAll(ctx context.Context) ([]dto.UserResponse, error) {
	if _, err := uc.auth.RequireAnyRole(ctx, adminOnly...); err != nil {
		return nil, err
	}
	return uc.repo.FindAll(ctx)
}

// Create da de alta un usuario; el password se guarda hasheado con bcrypt.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if _, err := uc.auth.RequireAnyRole(ctx, adminOnly...); err != nil {
		return nil, err
	}
	return uc.create(ctx, in)
}

// ListTechnicians usuarios con rol TECHNICIAN (selector de asignación de órdenes).
func (uc *UserUseCase) ListTechnicians(ctx context.Context) ([]dto.UserResponse, error) {
	if _, err := uc.auth.RequireAuth(ctx); err != nil {
		return nil, err
	}
	return uc.repo.FindAllByRole(ctx, entity.RoleTechnician)
}

// BootstrapAdmin crea el primer ADMIN si la tabla de usuarios está vacía.
// Solo se invoca desde el arranque del proceso, sin sesión. Devuelve true si lo creó.
func (uc *UserUseCase) BootstrapAdmin(ctx context.Context, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}
	n, err := uc.repo.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if _, err := uc.create(ctx, dto.CreateUserRequest{Email: email, Password: password, Role: entity.RoleAdmin}); err != nil {
		return false, err
	}
	return true, nil
}

func (uc *UserUseCase) create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	return uc.repo.Create(ctx, ports.NewUser{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		Image:        in.Image,
	})
}
