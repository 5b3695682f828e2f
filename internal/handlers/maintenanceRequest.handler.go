package handlers

import (
	"gearguard/internal/app"
	. "gearguard/internal/models"
	"gearguard/internal/repositories"
	"gearguard/internal/validation"

	maintenanceRequestController "gearguard/internal/controllers/maintenanceRequests"

	"github.com/gofiber/fiber/v2"
)

type MaintenanceRequestHandler struct {
	Handler
	controller maintenanceRequestController.MaintenanceRequestControllerInterface
}

type statusInput struct {
	Status RequestStatus `json:"status"`
}

type assignInput struct {
	Technician validation.Nullable[int] `json:"technician"`
}

func NewMaintenanceRequestHandler(app app.App, router fiber.Router) *MaintenanceRequestHandler {
	return &MaintenanceRequestHandler{
		Handler:    newHandler(app, router, "maintenance_request_handler"),
		controller: app.Controllers.MaintenanceRequest,
	}
}

func (h *MaintenanceRequestHandler) Register() {
	requests := h.router.Group("/maintenance-requests")
	requests.Get("/", h.list)
	requests.Post("/", h.create)
	requests.Get("/by_status", h.byStatus)
	requests.Get("/:id", h.get)
	requests.Put("/:id", h.update(false))
	requests.Patch("/:id", h.update(true))
	requests.Delete("/:id", h.delete)
	requests.Post("/:id/status", h.updateStatus)
	requests.Post("/:id/assign", h.assign)
}

func (h *MaintenanceRequestHandler) list(c *fiber.Ctx) error {
	status, err := queryChoice(c, "status", RequestStatus.Valid)
	if err != nil {
		return respondError(c, h.log, err)
	}
	requestType, err := queryChoice(c, "request_type", RequestType.Valid)
	if err != nil {
		return respondError(c, h.log, err)
	}

	filter := repositories.RequestFilter{
		Status:      status,
		RequestType: requestType,
		Search:      c.Query("search"),
		Ordering:    c.Query("ordering"),
	}
	for key, target := range map[string]**int{
		"team":       &filter.TeamID,
		"technician": &filter.TechnicianID,
		"equipment":  &filter.EquipmentID,
	} {
		value, err := queryInt(c, key)
		if err != nil {
			return respondError(c, h.log, err)
		}
		*target = value
	}

	requests, err := h.controller.List(c.UserContext(), filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(requests)
}

func (h *MaintenanceRequestHandler) byStatus(c *fiber.Ctx) error {
	groups, err := h.controller.GroupByStatus(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(groups)
}

func (h *MaintenanceRequestHandler) get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	request, err := h.controller.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(request)
}

func (h *MaintenanceRequestHandler) create(c *fiber.Ctx) error {
	var input maintenanceRequestController.RequestInput
	if err := parseBody(c, &input); err != nil {
		return respondError(c, h.log, err)
	}

	request, err := h.controller.Create(c.UserContext(), input)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(request)
}

func (h *MaintenanceRequestHandler) update(partial bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return respondError(c, h.log, err)
		}

		var input maintenanceRequestController.RequestInput
		if err := parseBody(c, &input); err != nil {
			return respondError(c, h.log, err)
		}

		request, err := h.controller.Update(c.UserContext(), id, input, partial)
		if err != nil {
			return respondError(c, h.log, err)
		}
		return c.JSON(request)
	}
}

func (h *MaintenanceRequestHandler) updateStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	var input statusInput
	if err := parseBody(c, &input); err != nil {
		return respondError(c, h.log, err)
	}

	request, err := h.controller.UpdateStatus(c.UserContext(), id, input.Status)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(request)
}

func (h *MaintenanceRequestHandler) assign(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	var input assignInput
	if err := parseBody(c, &input); err != nil {
		return respondError(c, h.log, err)
	}
	if !input.Technician.IsSet() {
		return badRequest(c, "technician: this field is required")
	}

	request, err := h.controller.AssignTechnician(c.UserContext(), id, input.Technician.Value())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(request)
}

func (h *MaintenanceRequestHandler) delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	if err := h.controller.Delete(c.UserContext(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
