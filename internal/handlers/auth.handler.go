package handlers

import (
	"gearguard/internal/app"
	"gearguard/internal/handlers/middleware"

	authController "gearguard/internal/controllers/auth"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Handler
	controller authController.AuthControllerInterface
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	return &AuthHandler{
		Handler:    newHandler(app, router, "auth_handler"),
		controller: app.Controllers.Auth,
	}
}

func (h *AuthHandler) Register() {
	auth := h.router.Group("/auth")
	auth.Post("/login", h.login)
	auth.Get("/me", h.middleware.RequireAuth(), h.me)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var input authController.LoginInput
	if err := parseBody(c, &input); err != nil {
		return respondError(c, h.log, err)
	}

	resp, err := h.controller.Login(c.UserContext(), input)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(resp)
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	resp, err := h.controller.Me(c.UserContext(), *middleware.GetAccountID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(resp)
}
