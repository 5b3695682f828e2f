package handlers

import (
	"time"

	"gearguard/internal/websockets"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketHandler upgrades /ws for notification push. Authentication
// happens over the socket with an auth_response message.
func WebSocketHandler(router fiber.Router, wsManager *websockets.Manager) {
	router.Get("/ws", requireUpgrade, websocket.New(wsManager.HandleWebSocket, websocket.Config{
		HandshakeTimeout: 10 * time.Second,
		ReadBufferSize:   4096,
		WriteBufferSize:  4096,
	}))
}

func requireUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).
			JSON(errorBody("Websocket upgrade required."))
	}
	return c.Next()
}
