package websockets

import (
	"sync"
)

const (
	STATUS_UNAUTHENTICATED = iota
	STATUS_AUTHENTICATED
)

type Hub struct {
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	clients    map[string]*Client
	mutex      sync.RWMutex
}

func (h *Hub) run(m *Manager) {
	for {
		select {
		case client := <-h.register:
			m.registerClient(client)

		case client := <-h.unregister:
			m.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message, m)
		}
	}
}

func (m *Manager) registerClient(client *Client) {
	m.hub.mutex.Lock()
	defer m.hub.mutex.Unlock()

	m.hub.clients[client.ID] = client
	m.log.Function("registerClient").Info("Client registered", "clientID", client.ID)
}

// unregisterClient is safe to call more than once per client.
func (m *Manager) unregisterClient(client *Client) {
	m.hub.mutex.Lock()
	defer m.hub.mutex.Unlock()

	if _, ok := m.hub.clients[client.ID]; !ok {
		return
	}
	delete(m.hub.clients, client.ID)
	close(client.send)

	m.log.Function("unregisterClient").Info(
		"Client unregistered",
		"clientID", client.ID,
		"accountID", client.AccountID,
	)
}

func (m *Manager) authenticate(client *Client, accountID int) bool {
	m.hub.mutex.Lock()
	defer m.hub.mutex.Unlock()

	if client.Status == STATUS_AUTHENTICATED {
		return false
	}
	client.Status = STATUS_AUTHENTICATED
	client.AccountID = accountID
	return true
}

func (m *Manager) isAuthenticated(client *Client) bool {
	m.hub.mutex.RLock()
	defer m.hub.mutex.RUnlock()
	return client.Status == STATUS_AUTHENTICATED
}

func (h *Hub) broadcastMessage(message Message, m *Manager) {
	log := m.log.Function("broadcastMessage")

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	sent := 0
	for _, client := range h.clients {
		if client.Status == STATUS_AUTHENTICATED && client.enqueue(message) {
			sent++
		}
	}

	log.Info("Broadcast complete", "messageID", message.ID, "sentTo", sent, "totalClients", len(h.clients))
}

// SendToAccount delivers to every authenticated connection of the account
// and reports how many accepted it.
func (m *Manager) SendToAccount(accountID int, message Message) int {
	log := m.log.Function("SendToAccount")

	m.hub.mutex.RLock()
	defer m.hub.mutex.RUnlock()

	sent := 0
	for _, client := range m.hub.clients {
		if client.Status == STATUS_AUTHENTICATED && client.AccountID == accountID && client.enqueue(message) {
			sent++
		}
	}

	if sent == 0 {
		log.Debug("No connections found for account", "accountID", accountID)
		return 0
	}

	log.Info("Message sent to account connections", "accountID", accountID, "messageID", message.ID, "sentTo", sent)
	return sent
}
