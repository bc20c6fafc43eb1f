package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/copier-service-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los mensajes usan el nombre JSON del campo.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bind parsea el body JSON en out y aplica las reglas `validate`.
func bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.NewValidation("invalid request body")
	}
	return validateStruct(out)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.NewValidation("%s", err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return domain.NewValidation("%s", strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "url":
		return field + " must be a valid URL"
	case "min":
		if fe.Kind() == reflect.String {
			return field + " must be at least " + fe.Param() + " characters"
		}
		return field + " must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return field + " must be at most " + fe.Param() + " characters"
		}
		return field + " must be at most " + fe.Param()
	case "oneof":
		return field + " must be one of: " + fe.Param()
	default:
		return field + " is invalid"
	}
}
