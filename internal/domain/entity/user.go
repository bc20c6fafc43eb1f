package entity

import "time"

// Role clase de permiso de un usuario.
type Role string

// Roles válidos para User.
const (
	RoleAdmin      Role = "ADMIN"
	RoleTechnician Role = "TECHNICIAN"
)

// Valid informa si r es uno de los roles conocidos.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleTechnician
}

// User registro persistido de un usuario del sistema.
type User struct {
	ID           string
	Name         *string
	Email        string
	PasswordHash string // bcrypt; nunca sale de la capa de persistencia salvo para login
	Role         string
	Image        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
