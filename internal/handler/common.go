package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"precinct-backend/internal/storage"
	"precinct-backend/internal/usecase"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bind parses the body into out and validates it.
func bind(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return err
	}
	return validate.Struct(out)
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
}

func formatValidationError(err error) string {
	if err == nil {
		return ""
	}

	if err == io.EOF {
		return "Request body is empty"
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fmt.Sprintf("Invalid JSON at byte offset %d", syntaxErr.Offset)
	}

	// e.g. a string where a number is expected
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("Field '%s' should be of type %s", typeErr.Field, typeErr.Type.String())
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		var out []string
		for _, fe := range ve {
			out = append(out, formatFieldError(fe))
		}
		return strings.Join(out, ", ")
	}

	return err.Error()
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Field '%s' is required", fe.Field())
	case "email":
		return fmt.Sprintf("Field '%s' must be a valid email", fe.Field())
	case "min":
		return fmt.Sprintf("Field '%s' must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("Field '%s' must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("Field '%s' must be one of: %s", fe.Field(), fe.Param())
	case "gtfield":
		return fmt.Sprintf("Field '%s' must be after '%s'", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("Field '%s' failed validation for '%s'", fe.Field(), fe.Tag())
}

// writeError maps usecase and storage errors to a status code.
func writeError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		status = fiber.StatusBadRequest
	case errors.Is(err, usecase.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
	case errors.Is(err, usecase.ErrForbidden), errors.Is(err, usecase.ErrInactiveAccount):
		status = fiber.StatusForbidden
	case errors.Is(err, usecase.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, usecase.ErrAlreadyResponded), errors.Is(err, usecase.ErrNotAccepted),
		errors.Is(err, usecase.ErrNotPending), errors.Is(err, usecase.ErrDuplicate):
		status = fiber.StatusConflict
	case errors.Is(err, storage.ErrUnsupportedType):
		status = fiber.StatusUnsupportedMediaType
	case errors.Is(err, storage.ErrTooLarge):
		status = fiber.StatusRequestEntityTooLarge
	}

	if status == fiber.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
		return c.Status(status).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func paramID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: id must be a positive number", usecase.ErrInvalidInput)
	}
	return uint(id), nil
}

// queryIDs reads a comma separated id list such as ?user_id=3,7.
func queryIDs(c *fiber.Ctx, key string) ([]uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a list of ids", usecase.ErrInvalidInput, key)
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
