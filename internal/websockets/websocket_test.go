package websockets

import (
	"errors"
	"sync"
	"testing"
	"time"

	"gearguard/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu     sync.Mutex
	closed bool
}

func (f *fakeConn) ReadJSON(v any) error                      { return errors.New("not implemented") }
func (f *fakeConn) WriteJSON(v any) error                     { return nil }
func (f *fakeConn) WriteMessage(int, []byte) error            { return nil }
func (f *fakeConn) SetReadLimit(int64)                        {}
func (f *fakeConn) SetReadDeadline(time.Time) error           { return nil }
func (f *fakeConn) SetWriteDeadline(time.Time) error          { return nil }
func (f *fakeConn) SetPongHandler(func(appData string) error) {}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

type tokenMap map[string]int

func (t tokenMap) ParseToken(token string) (int, error) {
	if id, ok := t[token]; ok {
		return id, nil
	}
	return 0, errors.New("invalid token")
}

var tokens = tokenMap{"token-1": 1, "token-2": 2}

func newManager(t *testing.T, bus *events.EventBus) *Manager {
	t.Helper()
	manager, err := New(bus, tokens)
	require.NoError(t, err)
	return manager
}

func connect(m *Manager) (*Client, *fakeConn) {
	conn := &fakeConn{}
	client := m.newClient(conn)
	m.registerClient(client)
	return client, conn
}

func authResponse(token any) Message {
	return Message{Type: events.AUTH_RESPONSE, Data: map[string]any{"token": token}}
}

func receive(t *testing.T, client *Client) Message {
	t.Helper()
	select {
	case message := <-client.send:
		return message
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return Message{}
	}
}

func TestAuthResponse_Success(t *testing.T) {
	manager := newManager(t, nil)
	client, _ := connect(manager)

	client.routeMessage(authResponse("token-2"))

	message := receive(t, client)
	assert.Equal(t, events.AUTH_SUCCESS, message.Type)
	assert.Equal(t, 2, message.Data["accountId"])
	assert.True(t, manager.isAuthenticated(client))
	assert.Equal(t, 2, client.AccountID)

	client.routeMessage(authResponse("token-1"))
	assert.Equal(t, 2, client.AccountID, "second auth response is ignored")
}

func TestAuthResponse_Failure(t *testing.T) {
	tests := []struct {
		name   string
		token  any
		reason string
	}{
		{"unknown token", "forged", "Authentication failed"},
		{"empty token", "", "Invalid token format"},
		{"wrong type", 42, "Invalid token format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := newManager(t, nil)
			client, conn := connect(manager)

			client.routeMessage(authResponse(tt.token))

			message := receive(t, client)
			assert.Equal(t, events.AUTH_FAILURE, message.Type)
			assert.Equal(t, tt.reason, message.Data["reason"])
			assert.False(t, manager.isAuthenticated(client))
			assert.Eventually(t, conn.isClosed, time.Second, 10*time.Millisecond)
		})
	}
}

func TestRouteMessage_RequiresAuthentication(t *testing.T) {
	manager := newManager(t, nil)
	client, _ := connect(manager)

	client.routeMessage(Message{Type: events.PING})
	message := receive(t, client)
	assert.Equal(t, events.AUTH_FAILURE, message.Type)
	assert.Equal(t, "authentication_required", message.Action)

	client.routeMessage(authResponse("token-1"))
	receive(t, client)

	client.routeMessage(Message{Type: events.PING})
	assert.Equal(t, events.PONG, receive(t, client).Type)
}

func TestNotificationEvents_RouteToRecipient(t *testing.T) {
	bus := events.New(nil)
	defer bus.Close()
	manager := newManager(t, bus)

	first, _ := connect(manager)
	second, _ := connect(manager)
	anonymous, _ := connect(manager)

	first.routeMessage(authResponse("token-1"))
	receive(t, first)
	second.routeMessage(authResponse("token-2"))
	receive(t, second)

	require.NoError(t, bus.PublishNotification(1, map[string]any{"message": "Reminder"}))

	message := receive(t, first)
	assert.Equal(t, events.NOTIFICATION, message.Type)
	assert.Equal(t, "Reminder", message.Data["message"])

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, second.send)
	assert.Empty(t, anonymous.send)
}

func TestBroadcast_AuthenticatedOnly(t *testing.T) {
	manager := newManager(t, nil)
	authed, _ := connect(manager)
	anonymous, _ := connect(manager)

	authed.routeMessage(authResponse("token-1"))
	receive(t, authed)

	manager.BroadcastMessage(newMessage(events.BROADCAST, "broadcast", map[string]any{"text": "hi"}))

	assert.Equal(t, events.BROADCAST, receive(t, authed).Type)
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, anonymous.send)
}

func TestUnregister_Idempotent(t *testing.T) {
	manager := newManager(t, nil)
	client, _ := connect(manager)

	assert.NotPanics(t, func() {
		manager.unregisterClient(client)
		manager.unregisterClient(client)
	})
	assert.False(t, client.trySend(newMessage(events.PING, "ping", nil)))
	assert.Zero(t, manager.SendToAccount(0, newMessage(events.PING, "ping", nil)))
}
