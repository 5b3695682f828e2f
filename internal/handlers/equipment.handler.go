package handlers

import (
	"gearguard/internal/app"
	. "gearguard/internal/models"
	"gearguard/internal/repositories"

	equipmentController "gearguard/internal/controllers/equipment"

	"github.com/gofiber/fiber/v2"
)

type EquipmentHandler struct {
	Handler
	controller equipmentController.EquipmentControllerInterface
}

func NewEquipmentHandler(app app.App, router fiber.Router) *EquipmentHandler {
	return &EquipmentHandler{
		Handler:    newHandler(app, router, "equipment_handler"),
		controller: app.Controllers.Equipment,
	}
}

func (h *EquipmentHandler) Register() {
	equipment := h.router.Group("/equipment")
	equipment.Get("/", h.list)
	equipment.Post("/", h.create)
	equipment.Get("/by_team", h.byTeam)
	equipment.Get("/:id", h.get)
	equipment.Put("/:id", h.update(false))
	equipment.Patch("/:id", h.update(true))
	equipment.Delete("/:id", h.delete)
}

func (h *EquipmentHandler) list(c *fiber.Ctx) error {
	teamID, err := queryInt(c, "maintenance_team")
	if err != nil {
		return respondError(c, h.log, err)
	}
	department, err := queryChoice(c, "department", Department.Valid)
	if err != nil {
		return respondError(c, h.log, err)
	}
	isActive, err := queryBool(c, "is_active")
	if err != nil {
		return respondError(c, h.log, err)
	}

	equipment, err := h.controller.List(c.UserContext(), repositories.EquipmentFilter{
		TeamID:     teamID,
		Department: department,
		IsActive:   isActive,
		Search:     c.Query("search"),
		Ordering:   c.Query("ordering"),
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(equipment)
}

func (h *EquipmentHandler) byTeam(c *fiber.Ctx) error {
	teamID, err := requiredQueryInt(c, "team_id")
	if err != nil {
		return respondError(c, h.log, err)
	}

	equipment, err := h.controller.ByTeam(c.UserContext(), teamID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(equipment)
}

func (h *EquipmentHandler) get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	equipment, err := h.controller.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(equipment)
}

func (h *EquipmentHandler) create(c *fiber.Ctx) error {
	var input equipmentController.EquipmentInput
	if err := parseBody(c, &input); err != nil {
		return respondError(c, h.log, err)
	}

	equipment, err := h.controller.Create(c.UserContext(), input)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(equipment)
}

func (h *EquipmentHandler) update(partial bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return respondError(c, h.log, err)
		}

		var input equipmentController.EquipmentInput
		if err := parseBody(c, &input); err != nil {
			return respondError(c, h.log, err)
		}

		equipment, err := h.controller.Update(c.UserContext(), id, input, partial)
		if err != nil {
			return respondError(c, h.log, err)
		}
		return c.JSON(equipment)
	}
}

func (h *EquipmentHandler) delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	if err := h.controller.Delete(c.UserContext(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
