package handlers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"starwars/internal/repositories"
	"starwars/internal/services"
)

// newValidator reports fields by their JSON name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// bind parses the JSON body into req and checks its validate tags. The first
// failing field, in declaration order, becomes a 400 "<field> required".
func bind(c *fiber.Ctx, v *validator.Validate, req any) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := v.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, verrs[0].Field()+" required")
		}
		return err
	}
	return nil
}

// paramID reads a positive integer path parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}

// mapError turns service and repository errors into HTTP errors. Anything
// unrecognised is returned unchanged and ends up as a 500.
func mapError(err error, notFoundMsg, conflictMsg string) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound), errors.Is(err, repositories.ErrInvalidReference):
		return fiber.NewError(fiber.StatusNotFound, notFoundMsg)
	case errors.Is(err, repositories.ErrDuplicate):
		return fiber.NewError(fiber.StatusConflict, conflictMsg)
	case errors.Is(err, repositories.ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, "invalid request")
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.NewError(fiber.StatusUnauthorized, msgWrongCredentials)
	default:
		return err
	}
}

const msgWrongCredentials = "Wrong username or password"
