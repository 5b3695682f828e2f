package handlers

import (
	"gearguard/internal/app"
	"gearguard/internal/handlers/middleware"
	"gearguard/internal/repositories"

	notificationController "gearguard/internal/controllers/notifications"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	Handler
	controller notificationController.NotificationControllerInterface
}

func NewNotificationHandler(app app.App, router fiber.Router) *NotificationHandler {
	return &NotificationHandler{
		Handler:    newHandler(app, router, "notification_handler"),
		controller: app.Controllers.Notification,
	}
}

func (h *NotificationHandler) Register() {
	notifications := h.router.Group("/notifications")
	requireAuth := h.middleware.RequireAuth()

	notifications.Get("/", h.list)
	notifications.Post("/", requireAuth, h.create)
	notifications.Get("/unread_count", requireAuth, h.unreadCount)
	notifications.Post("/mark_all_read", requireAuth, h.markAllRead)
	notifications.Post("/:id/mark_read", requireAuth, h.markRead)
}

func (h *NotificationHandler) list(c *fiber.Ctx) error {
	isRead, err := queryBool(c, "is_read")
	if err != nil {
		return respondError(c, h.log, err)
	}

	notifications, err := h.controller.List(
		c.UserContext(),
		middleware.GetAccountID(c),
		repositories.NotificationFilter{IsRead: isRead},
	)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(notifications)
}

func (h *NotificationHandler) create(c *fiber.Ctx) error {
	var input notificationController.NotificationInput
	if err := parseBody(c, &input); err != nil {
		return respondError(c, h.log, err)
	}

	notification, err := h.controller.Create(c.UserContext(), *middleware.GetAccountID(c), input)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(notification)
}

func (h *NotificationHandler) unreadCount(c *fiber.Ctx) error {
	count, err := h.controller.UnreadCount(c.UserContext(), *middleware.GetAccountID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"unread_count": count})
}

func (h *NotificationHandler) markRead(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	if err := h.controller.MarkRead(c.UserContext(), id, *middleware.GetAccountID(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"status": "marked as read"})
}

func (h *NotificationHandler) markAllRead(c *fiber.Ctx) error {
	marked, err := h.controller.MarkAllRead(c.UserContext(), *middleware.GetAccountID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"status": "marked as read", "marked": marked})
}
