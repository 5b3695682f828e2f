package handlers

import (
	"gearguard/internal/app"
	. "gearguard/internal/models"
	"gearguard/internal/repositories"

	userController "gearguard/internal/controllers/users"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Handler
	controller userController.UserControllerInterface
}

func NewUserHandler(app app.App, router fiber.Router) *UserHandler {
	return &UserHandler{
		Handler:    newHandler(app, router, "user_handler"),
		controller: app.Controllers.User,
	}
}

func (h *UserHandler) Register() {
	users := h.router.Group("/users")
	users.Get("/", h.list)
	users.Post("/", h.create)
	users.Get("/technicians", h.technicians)
	users.Get("/by_team", h.byTeam)
	users.Get("/:id", h.get)
	users.Put("/:id", h.update(false))
	users.Patch("/:id", h.update(true))
	users.Delete("/:id", h.delete)
}

func (h *UserHandler) list(c *fiber.Ctx) error {
	role, err := queryChoice(c, "role", Role.Valid)
	if err != nil {
		return respondError(c, h.log, err)
	}
	teamID, err := queryInt(c, "team")
	if err != nil {
		return respondError(c, h.log, err)
	}

	users, err := h.controller.List(c.UserContext(), repositories.ProfileFilter{
		Role:     role,
		TeamID:   teamID,
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(users)
}

func (h *UserHandler) technicians(c *fiber.Ctx) error {
	teamID, err := queryInt(c, "team_id")
	if err != nil {
		return respondError(c, h.log, err)
	}

	users, err := h.controller.Technicians(c.UserContext(), teamID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(users)
}

func (h *UserHandler) byTeam(c *fiber.Ctx) error {
	teamID, err := requiredQueryInt(c, "team_id")
	if err != nil {
		return respondError(c, h.log, err)
	}

	users, err := h.controller.ByTeam(c.UserContext(), teamID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(users)
}

func (h *UserHandler) get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	user, err := h.controller.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) create(c *fiber.Ctx) error {
	var input userController.CreateUserInput
	if err := parseBody(c, &input); err != nil {
		return respondError(c, h.log, err)
	}

	user, err := h.controller.Create(c.UserContext(), input)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *UserHandler) update(partial bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return respondError(c, h.log, err)
		}

		var input userController.UpdateUserInput
		if err := parseBody(c, &input); err != nil {
			return respondError(c, h.log, err)
		}

		user, err := h.controller.Update(c.UserContext(), id, input, partial)
		if err != nil {
			return respondError(c, h.log, err)
		}
		return c.JSON(user)
	}
}

func (h *UserHandler) delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	if err := h.controller.Delete(c.UserContext(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
