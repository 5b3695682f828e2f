package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type AuthContextKey string

const (
	AccountKey      AuthContextKey = "account"
	AccountKeyFiber string         = "AccountID"
)

// OptionalAuth resolves a bearer token when one is sent. Requests without
// an Authorization header continue anonymously; a bad token is rejected.
func (m *Middleware) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := m.log.TraceFromContext(c.UserContext()).Function("OptionalAuth")

		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Next()
		}

		tokenParts := strings.Fields(authHeader)
		if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "bearer") {
			log.Info("invalid authorization header format")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		accountID, err := m.tokens.ParseToken(tokenParts[1])
		if err != nil {
			log.Info("token validation failed", "error", err.Error())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		c.Locals(AccountKeyFiber, accountID)
		c.SetUserContext(context.WithValue(c.UserContext(), AccountKey, accountID))

		return c.Next()
	}
}

// RequireAuth rejects anonymous requests. It runs after OptionalAuth.
func (m *Middleware) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetAccountID(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication credentials were not provided.",
			})
		}
		return c.Next()
	}
}

// GetAccountID returns the authenticated account id, or nil for anonymous requests.
func GetAccountID(c *fiber.Ctx) *int {
	accountID, ok := c.Locals(AccountKeyFiber).(int)
	if !ok {
		return nil
	}
	return &accountID
}
