package auth

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/application/ports"
	"github.com/jhoicas/copier-service-api/internal/domain"
	"github.com/jhoicas/copier-service-api/internal/domain/entity"
	"github.com/jhoicas/copier-service-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthService resuelve la identidad de la petición y aplica los chequeos de rol.
// No guarda estado propio: la sesión llega en el context.Context.
type AuthService struct {
	users  ports.UserRepository
	creds  ports.CredentialStore
	jwtCfg JWTConfig
	log    zerolog.Logger
}

// NewAuthService construye el servicio de autenticación.
func NewAuthService(users ports.UserRepository, creds ports.CredentialStore, jwtCfg JWTConfig, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, creds: creds, jwtCfg: jwtCfg, log: log}
}

// CurrentUser devuelve el usuario de la sesión o nil si la petición es anónima.
// La resolución es best effort: si el repositorio falla se usan los datos de la sesión.
// Si el usuario ya no existe se trata como anónimo.
func (s *AuthService) CurrentUser(ctx context.Context) *dto.UserResponse {
	session := ports.SessionFromContext(ctx)
	if session == nil || session.ID == "" {
		return nil
	}
	user, err := s.users.FindByID(ctx, session.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", session.ID).Msg("resolver usuario de sesión; se usan datos de sesión")
		return &dto.UserResponse{
			ID:    session.ID,
			Name:  session.Name,
			Email: session.Email,
			Image: session.Image,
			Role:  session.Role,
		}
	}
	return user
}

// RequireAuth devuelve el usuario actual o domain.ErrUnauthorized.
func (s *AuthService) RequireAuth(ctx context.Context) (*dto.UserResponse, error) {
	user := s.CurrentUser(ctx)
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// RequireAnyRole exige autenticación y que el rol esté en roles; si no, *domain.ForbiddenError.
func (s *AuthService) RequireAnyRole(ctx context.Context, roles ...entity.Role) (*dto.UserResponse, error) {
	user, err := s.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range roles {
		if user.Role == r {
			return user, nil
		}
	}
	required := make([]string, 0, len(roles))
	for _, r := range roles {
		required = append(required, string(r))
	}
	return nil, &domain.ForbiddenError{Required: required}
}

// UpdateUser actualiza el perfil propio. Cambiar el rol exige ser ADMIN.
func (s *AuthService) UpdateUser(ctx context.Context, userID string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	current, err := s.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if current.ID != userID {
		return nil, fmt.Errorf("%w: not authorized to update this user", domain.ErrForbidden)
	}
	existing, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.NewNotFound("User", userID)
	}
	if in.Role != nil && *in.Role != existing.Role && current.Role != entity.RoleAdmin {
		return nil, &domain.ForbiddenError{Required: []string{string(entity.RoleAdmin)}}
	}

	changes := ports.UserChanges{
		Name:  in.Name,
		Email: in.Email,
		Image: in.Image,
		Role:  in.Role,
	}
	if in.Password != nil {
		hash, err := HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		changes.PasswordHash = &hash
	}
	return s.users.Update(ctx, userID, changes)
}

// Login verifica email/password contra el hash bcrypt y emite el token de sesión.
// Email desconocido y password incorrecto devuelven el mismo error.
func (s *AuthService) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	record, err := s.creds.FindCredentialsByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := jwt.Generate(s.jwtCfg.Secret, s.jwtCfg.Issuer, s.jwtCfg.ExpMinutes, jwt.Identity{
		UserID: record.ID,
		Name:   record.Name,
		Email:  record.Email,
		Image:  record.Image,
		Role:   record.Role,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", record.ID).Str("role", record.Role).Msg("inicio de sesión")
	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:        record.ID,
			Name:      record.Name,
			Email:     record.Email,
			Image:     record.Image,
			Role:      entity.Role(record.Role),
			CreatedAt: record.CreatedAt,
			UpdatedAt: record.UpdatedAt,
		},
	}, nil
}

// SessionFromToken valida un token y lo convierte en la sesión de la petición.
func (s *AuthService) SessionFromToken(token string) (*ports.Session, error) {
	id, err := jwt.Parse(s.jwtCfg.Secret, token)
	if err != nil {
		return nil, err
	}
	return &ports.Session{
		ID:    id.UserID,
		Name:  id.Name,
		Email: id.Email,
		Image: id.Image,
		Role:  entity.Role(id.Role),
	}, nil
}

// HashPassword hashea con bcrypt (coste por defecto).
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
