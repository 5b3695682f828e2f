package handlers

import (
	"errors"
	"strconv"

	"gearguard/internal/apperrors"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

func errorBody(message string) fiber.Map {
	return fiber.Map{"error": message}
}

// respondError maps the error kind onto a status. Unknown errors are
// logged and hidden behind a generic 500.
func respondError(c *fiber.Ctx, log logger.Logger, err error) error {
	var appErr *apperrors.Error
	message := err.Error()
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(errorBody(message))
	case errors.Is(err, apperrors.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(errorBody(message))
	case errors.Is(err, apperrors.ErrPermission):
		return c.Status(fiber.StatusForbidden).JSON(errorBody(message))
	case errors.Is(err, apperrors.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(errorBody(message))
	case errors.Is(err, apperrors.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(errorBody(message))
	}

	log.TraceFromContext(c.UserContext()).Er("request failed", err, "method", c.Method(), "path", c.Path())
	return c.Status(fiber.StatusInternalServerError).JSON(errorBody("Internal server error"))
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(errorBody(message))
}

func parseID(c *fiber.Ctx) (int, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return 0, apperrors.NotFound("Not found.")
	}
	return id, nil
}

// parseBody decodes the JSON body. An empty body decodes to the zero value.
func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return apperrors.Validation("JSON parse error - %s", err.Error())
	}
	return nil
}

func queryInt(c *fiber.Ctx, key string) (*int, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperrors.FieldValidation(key, "%s: enter a whole number", key)
	}
	return &value, nil
}

func queryBool(c *fiber.Ctx, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperrors.FieldValidation(key, "%s: select a valid choice", key)
	}
	return &value, nil
}

// queryChoice returns nil for an absent key and a validation error for a
// value the check rejects.
func queryChoice[T ~string](c *fiber.Ctx, key string, valid func(T) bool) (*T, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	value := T(raw)
	if !valid(value) {
		return nil, apperrors.FieldValidation(key, "%s: select a valid choice, %s is not one of the available choices", key, raw)
	}
	return &value, nil
}

func requiredQueryInt(c *fiber.Ctx, key string) (int, error) {
	value, err := queryInt(c, key)
	if err != nil {
		return 0, err
	}
	if value == nil {
		return 0, apperrors.FieldValidation(key, "%s parameter is required", key)
	}
	return *value, nil
}
