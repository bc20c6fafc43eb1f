package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autenticado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
)

// NotFoundError indica que una entidad concreta no existe. Coincide con ErrNotFound vía errors.Is.
type NotFoundError struct {
	Entity string // "Customer", "Device", "Service order", ...
	Field  string // vacío = "ID"
	Value  string
}

// NewNotFound construye el error para una búsqueda por ID.
func NewNotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, Value: id}
}

func (e *NotFoundError) Error() string {
	field := e.Field
	if field == "" {
		field = "ID"
	}
	return fmt.Sprintf("%s with %s %s not found", e.Entity, field, e.Value)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError regla de negocio incumplida antes de mutar. Coincide con ErrInvalidInput.
type ValidationError struct {
	Message string
}

// NewValidation construye un ValidationError con formato.
func NewValidation(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// RepositoryError fallo técnico del adaptador de persistencia.
// El mensaje es "<operación>: <mensaje original>".
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *RepositoryError) Unwrap() error { return e.Err }

// ForbiddenError detalla qué roles se requerían. Coincide con ErrForbidden.
type ForbiddenError struct {
	Required []string
}

func (e *ForbiddenError) Error() string {
	if len(e.Required) == 0 {
		return ErrForbidden.Error()
	}
	msg := "Required role: "
	for i, r := range e.Required {
		if i > 0 {
			msg += " or "
		}
		msg += r
	}
	return msg
}

func (e *ForbiddenError) Is(target error) bool { return target == ErrForbidden }
