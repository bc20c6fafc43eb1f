package ports

import (
	"context"

	"github.com/jhoicas/copier-service-api/internal/domain/entity"
)

// Session identidad ambiente de la petición, tal como la emite el proveedor de sesión.
type Session struct {
	ID    string
	Name  *string
	Email string
	Image *string
	Role  entity.Role
}

type sessionKey struct{}

// WithSession adjunta la sesión al contexto de la petición.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext devuelve la sesión o nil si la petición es anónima.
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}
