package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/jhoicas/copier-service-api/internal/application/dto"
)

// IPRateLimiter un rate.Limiter por IP; los inactivos expiran del caché.
type IPRateLimiter struct {
	limiters *cache.Cache
	r        rate.Limit
	b        int
}

// NewIPRateLimiter perMinute eventos sostenidos por minuto con ráfaga burst.
// idle es el tiempo sin uso tras el cual se olvida una IP.
func NewIPRateLimiter(perMinute, burst int, idle time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		limiters: cache.New(idle, 2*idle),
		r:        rate.Limit(float64(perMinute) / 60),
		b:        burst,
	}
}

// Allow consume un evento para ip.
func (l *IPRateLimiter) Allow(ip string) bool {
	return l.limiter(ip).Allow()
}

func (l *IPRateLimiter) limiter(ip string) *rate.Limiter {
	if v, ok := l.limiters.Get(ip); ok {
		l.limiters.SetDefault(ip, v)
		return v.(*rate.Limiter)
	}
	lim := rate.NewLimiter(l.r, l.b)
	if err := l.limiters.Add(ip, lim, cache.DefaultExpiration); err != nil {
		// Otra petición lo creó primero.
		if v, ok := l.limiters.Get(ip); ok {
			return v.(*rate.Limiter)
		}
	}
	return lim
}

// RateLimit middleware que responde 429 cuando la IP supera su cupo.
func RateLimit(l *IPRateLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !l.Allow(c.IP()) {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.Fail(CodeRateLimited, "demasiados intentos, reintente más tarde"))
		}
		return c.Next()
	}
}
