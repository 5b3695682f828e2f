package websockets

import (
	"time"

	"gearguard/internal/events"
)

const AUTH_HANDSHAKE_TIMEOUT = 10 * time.Second

// startAuthTimeout closes the connection if no valid auth_response arrives in time.
func (c *Client) startAuthTimeout() {
	log := c.Manager.log.Function("startAuthTimeout")

	time.AfterFunc(AUTH_HANDSHAKE_TIMEOUT, func() {
		if c.Manager.isAuthenticated(c) {
			return
		}
		log.Warn("Client failed to authenticate within timeout, disconnecting", "clientID", c.ID)

		c.trySend(newMessage(events.AUTH_FAILURE, "authentication_timeout",
			map[string]any{"reason": "Authentication timeout"}))
		time.Sleep(100 * time.Millisecond)

		if err := c.Connection.Close(); err != nil {
			log.Er("failed to close connection after auth timeout", err, "clientID", c.ID)
		}
	})
}

func (c *Client) handleAuthResponse(message Message) {
	log := c.Manager.log.Function("handleAuthResponse")

	if c.Manager.isAuthenticated(c) {
		log.Warn("Auth response from already authenticated client", "clientID", c.ID)
		return
	}

	token, ok := message.Data["token"].(string)
	if !ok || token == "" {
		log.Warn("Invalid token in auth response", "clientID", c.ID)
		c.sendAuthFailure("Invalid token format")
		return
	}

	accountID, err := c.Manager.tokens.ParseToken(token)
	if err != nil {
		log.Info("WebSocket token validation failed", "clientID", c.ID, "error", err.Error())
		c.sendAuthFailure("Authentication failed")
		return
	}

	if !c.Manager.authenticate(c, accountID) {
		return
	}

	log.Info("WebSocket client authenticated", "clientID", c.ID, "accountID", accountID)
	c.trySend(newMessage(events.AUTH_SUCCESS, "authenticated", map[string]any{"accountId": accountID}))
}

func (c *Client) sendAuthFailure(reason string) {
	log := c.Manager.log.Function("sendAuthFailure")

	c.trySend(newMessage(events.AUTH_FAILURE, "authentication_failed", map[string]any{"reason": reason}))
	log.Info("Auth failure sent, closing connection", "clientID", c.ID, "reason", reason)

	time.AfterFunc(100*time.Millisecond, func() {
		_ = c.Connection.Close()
	})
}

func (c *Client) sendAuthRequest() error {
	log := c.Manager.log.Function("sendAuthRequest")

	if err := c.Connection.WriteJSON(newMessage(events.AUTH_REQUEST, "authenticate", nil)); err != nil {
		return log.Err("failed to send auth request", err, "clientID", c.ID)
	}
	return nil
}

func (c *Client) handleUnauthenticatedMessage(message Message) {
	c.Manager.log.Function("handleUnauthenticatedMessage").
		Warn("Blocking message from unauthenticated client", "clientID", c.ID, "messageType", message.Type)

	c.trySend(newMessage(events.AUTH_FAILURE, "authentication_required",
		map[string]any{"reason": "Authentication required"}))
}
