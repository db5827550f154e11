package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"staffsync/internal/apperror"
	"staffsync/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// writeError maps a service error to a response. Validation errors are 400, missing
// entities 404, bad tokens 401; anything else is logged and reported as 500.
func writeError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	var appErr *apperror.Error
	switch {
	case apperror.IsValidation(err), apperror.IsNotFound(err):
		status := fiber.StatusBadRequest
		if apperror.IsNotFound(err) {
			status = fiber.StatusNotFound
		}
		body := fiber.Map{"message": err.Error()}
		if errors.As(err, &appErr) {
			body["message"] = appErr.Message
			if appErr.Field != "" {
				body["field"] = appErr.Field
			}
		}
		return c.Status(status).JSON(body)
	case errors.Is(err, services.ErrInvalidToken):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid or expired token",
		})
	default:
		logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}
}

func invalidBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

func validationFailed(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// parseBody decodes and validates the request body into dst. On failure it writes the
// response and returns false.
func parseBody(c *fiber.Ctx, v *validator.Validate, dst interface{}) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, invalidBody(c, err)
	}
	if err := v.Struct(dst); err != nil {
		return false, validationFailed(c, err)
	}
	return true, nil
}
