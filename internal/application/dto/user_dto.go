package dto

import (
	"time"

	"github.com/jhoicas/copier-service-api/internal/domain/entity"
)

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string      `json:"id"`
	Name      *string     `json:"name"`
	Email     string      `json:"email"`
	Image     *string     `json:"image"`
	Role      entity.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// CreateUserRequest alta de usuario por un administrador (password en texto, se hashea en el caso de uso).
type CreateUserRequest struct {
	Name     *string     `json:"name" validate:"omitempty,min=1,max=200"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8"`
	Role     entity.Role `json:"role" validate:"required,oneof=ADMIN TECHNICIAN"`
	Image    *string     `json:"image" validate:"omitempty,url"`
}

// UpdateUserRequest actualización parcial del perfil: solo se aplican los campos presentes.
type UpdateUserRequest struct {
	Name     *string      `json:"name" validate:"omitempty,min=1,max=200"`
	Email    *string      `json:"email" validate:"omitempty,email"`
	Image    *string      `json:"image" validate:"omitempty,url"`
	Role     *entity.Role `json:"role" validate:"omitempty,oneof=ADMIN TECHNICIAN"`
	Password *string      `json:"password" validate:"omitempty,min=8"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token de sesión + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
