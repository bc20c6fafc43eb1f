package usecase

import (
	"context"

	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/domain/entity"
)

// Authorizer contrato mínimo que los casos de uso necesitan del servicio de auth.
// Lo implementa *auth.AuthService.
type Authorizer interface {
	RequireAuth(ctx context.Context) (*dto.UserResponse, error)
	RequireAnyRole(ctx context.Context, roles ...entity.Role) (*dto.UserResponse, error)
}

var (
	adminOnly         = []entity.Role{entity.RoleAdmin}
	adminOrTechnician = []entity.Role{entity.RoleAdmin, entity.RoleTechnician}
)
