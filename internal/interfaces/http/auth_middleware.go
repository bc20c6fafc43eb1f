package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/application/ports"
)

// SessionResolver convierte un Bearer token en la sesión de la petición.
type SessionResolver interface {
	SessionFromToken(token string) (*ports.Session, error)
}

// SessionMiddleware adjunta la sesión al UserContext si llega un Bearer token válido.
// Sin header la petición sigue como anónima (los servicios deciden); un token mal formado,
// inválido o expirado corta con 401.
func SessionMiddleware(tokens SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(CodeInvalidToken, "formato: Bearer <token>"))
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(CodeInvalidToken, "token vacío"))
		}
		session, err := tokens.SessionFromToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(CodeInvalidToken, "token inválido o expirado"))
		}
		c.SetUserContext(ports.WithSession(c.UserContext(), session))
		return c.Next()
	}
}
