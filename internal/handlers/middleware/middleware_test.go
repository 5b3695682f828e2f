package middleware

import (
	"errors"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens map[string]int

func (s staticTokens) ParseToken(token string) (int, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return 0, errors.New("invalid token")
}

func newTestApp() *fiber.App {
	m := New(staticTokens{"good": 7})
	app := fiber.New()
	app.Use(m.TraceID(), m.OptionalAuth())

	app.Get("/whoami", func(c *fiber.Ctx) error {
		id := GetAccountID(c)
		if id == nil {
			return c.SendString("anonymous")
		}
		return c.SendString(strconv.Itoa(*id))
	})
	app.Get("/private", m.RequireAuth(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func do(t *testing.T, app *fiber.App, path, authorization string) (int, string, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set(fiber.HeaderAuthorization, authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body), resp.Header.Get(TraceIDHeader)
}

func TestOptionalAuth(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		name          string
		authorization string
		wantStatus    int
		wantBody      string
	}{
		{"anonymous", "", fiber.StatusOK, "anonymous"},
		{"valid token", "Bearer good", fiber.StatusOK, "7"},
		{"lowercase scheme", "bearer good", fiber.StatusOK, "7"},
		{"bad token", "Bearer forged", fiber.StatusUnauthorized, `{"error":"Invalid token"}`},
		{"bad format", "Token good", fiber.StatusUnauthorized, `{"error":"Invalid authorization header format"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body, _ := do(t, app, "/whoami", tt.authorization)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestRequireAuth(t *testing.T) {
	app := newTestApp()

	status, _, _ := do(t, app, "/private", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body, _ := do(t, app, "/private", "Bearer good")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", body)
}

func TestTraceID(t *testing.T) {
	app := newTestApp()

	_, _, generated := do(t, app, "/whoami", "")
	assert.NotEmpty(t, generated)

	req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
	req.Header.Set(TraceIDHeader, "trace-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "trace-123", resp.Header.Get(TraceIDHeader))
}
