package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/domain"
)

// Códigos de error del sobre de respuesta.
const (
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeValidation         = "VALIDATION"
	CodeDuplicate          = "DUPLICATE"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternal           = "INTERNAL"
)

// respond escribe {success: true, data}.
func respond(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(dto.OK(data))
}

// internalMessage texto al cliente para errores técnicos; el detalle solo va al log.
const internalMessage = "internal server error"

// fail traduce un error de dominio a status HTTP + sobre {success: false, error}.
func fail(c *fiber.Ctx, err error) error {
	status, code := classify(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		return c.Status(status).JSON(dto.Fail(code, internalMessage))
	}
	return c.Status(status).JSON(dto.Fail(code, err.Error()))
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, CodeUnauthorized
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, CodeInvalidCredentials
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, CodeForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, CodeNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, CodeValidation
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, CodeDuplicate
	default:
		return fiber.StatusInternalServerError, CodeInternal
	}
}

// found responde 404 si v es nil (lecturas que devuelven nil cuando no existe).
func found[T any](c *fiber.Ctx, v *T, entity, id string, err error) error {
	if err != nil {
		return fail(c, err)
	}
	if v == nil {
		return fail(c, domain.NewNotFound(entity, id))
	}
	return respond(c, fiber.StatusOK, v)
}

// listed responde 200 con la lista o el error.
func listed[T any](c *fiber.Ctx, list []T, err error) error {
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, list)
}
