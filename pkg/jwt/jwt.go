package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity campos de sesión que viajan en el token: {id, name, email, image, role}.
type Identity struct {
	UserID string  `json:"user_id"`
	Name   *string `json:"name,omitempty"`
	Email  string  `json:"email"`
	Image  *string `json:"image,omitempty"`
	Role   string  `json:"role"` // "ADMIN" | "TECHNICIAN"
}

// Claims incluye los claims estándar JWT más la identidad de la sesión.
// El rol viaja en el token para que el middleware no consulte la DB en cada petición.
type Claims struct {
	jwt.RegisteredClaims
	Identity
}

// Generate genera un token JWT firmado (HS256) con la identidad indicada.
func Generate(secret, issuer string, expMinutes int, id Identity) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Identity: id,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve la identidad.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*Identity, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("token sin user_id")
	}
	id := claims.Identity
	return &id, nil
}
