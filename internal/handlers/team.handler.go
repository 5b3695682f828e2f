package handlers

import (
	"gearguard/internal/app"
	"gearguard/internal/repositories"

	teamController "gearguard/internal/controllers/teams"

	"github.com/gofiber/fiber/v2"
)

type TeamHandler struct {
	Handler
	controller teamController.TeamControllerInterface
}

func NewTeamHandler(app app.App, router fiber.Router) *TeamHandler {
	return &TeamHandler{
		Handler:    newHandler(app, router, "team_handler"),
		controller: app.Controllers.Team,
	}
}

func (h *TeamHandler) Register() {
	teams := h.router.Group("/teams")
	teams.Get("/", h.list)
	teams.Post("/", h.create)
	teams.Get("/:id", h.get)
	teams.Put("/:id", h.update(false))
	teams.Patch("/:id", h.update(true))
	teams.Delete("/:id", h.delete)
}

func (h *TeamHandler) list(c *fiber.Ctx) error {
	teams, err := h.controller.List(c.UserContext(), repositories.TeamFilter{
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(teams)
}

func (h *TeamHandler) get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	team, err := h.controller.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(team)
}

func (h *TeamHandler) create(c *fiber.Ctx) error {
	var input teamController.TeamInput
	if err := parseBody(c, &input); err != nil {
		return respondError(c, h.log, err)
	}

	team, err := h.controller.Create(c.UserContext(), input)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(team)
}

func (h *TeamHandler) update(partial bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return respondError(c, h.log, err)
		}

		var input teamController.TeamInput
		if err := parseBody(c, &input); err != nil {
			return respondError(c, h.log, err)
		}

		team, err := h.controller.Update(c.UserContext(), id, input, partial)
		if err != nil {
			return respondError(c, h.log, err)
		}
		return c.JSON(team)
	}
}

func (h *TeamHandler) delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	if err := h.controller.Delete(c.UserContext(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
