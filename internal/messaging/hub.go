// internal/messaging/hub.go

package messaging

import (
	"context"
	"encoding/json"
	"log"
	"sync"
)

// Hub maintains active websocket connections, one per user.
type Hub struct {
	clients    map[int64]*Client
	clientsMux sync.RWMutex

	register   chan *Client
	unregister chan *Client

	service Service

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewHub(service Service) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	return &Hub{
		clients:    make(map[int64]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		service:    service,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-h.ctx.Done():
			h.cleanup()
			return
		}
	}
}

func (h *Hub) Shutdown() {
	h.cancel()
	h.wg.Wait()
}

func (h *Hub) registerClient(client *Client) {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()

	// A new connection replaces any previous one for the same user.
	if old, exists := h.clients[client.userID]; exists {
		old.close()
	}
	h.clients[client.userID] = client

	log.Printf("User %d connected. Total clients: %d", client.userID, len(h.clients))
}

func (h *Hub) unregisterClient(client *Client) {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()

	if current, exists := h.clients[client.userID]; exists && current == client {
		client.close()
		delete(h.clients, client.userID)
		log.Printf("User %d disconnected. Total clients: %d", client.userID, len(h.clients))
	}
}

// DeliverMessage pushes a stored chat message to the recipient if they
// are connected. Offline recipients are reached through the
// notifications service instead.
func (h *Hub) DeliverMessage(recipientID int64, msg *Message) {
	h.SendToUser(recipientID, WSMessage{
		Type:      WSTypeMessage,
		Data:      mustMarshal(msg),
		Timestamp: msg.CreatedAt,
	})
}

func (h *Hub) SendToUser(userID int64, message WSMessage) {
	h.clientsMux.RLock()
	client, exists := h.clients[userID]
	h.clientsMux.RUnlock()

	if !exists {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		return
	}

	select {
	case client.send <- data:
	default:
		// Slow consumer; drop the connection.
		go func() { h.unregister <- client }()
	}
}

// SendToConversationExcept fans a frame out to the other participant
// of a conversation. Used for typing and read receipts.
func (h *Hub) SendToConversationExcept(conversationID, exceptUserID int64, message WSMessage) {
	workerID, employerID, err := h.service.ConversationParticipants(h.ctx, conversationID)
	if err != nil {
		return
	}

	for _, userID := range []int64{workerID, employerID} {
		if userID != exceptUserID {
			h.SendToUser(userID, message)
		}
	}
}

func (h *Hub) IsUserOnline(userID int64) bool {
	h.clientsMux.RLock()
	defer h.clientsMux.RUnlock()

	_, exists := h.clients[userID]
	return exists
}

func (h *Hub) ActiveConnections() int {
	h.clientsMux.RLock()
	defer h.clientsMux.RUnlock()
	return len(h.clients)
}

func (h *Hub) cleanup() {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()

	for _, client := range h.clients {
		client.close()
	}
	h.clients = make(map[int64]*Client)
}

func mustMarshal(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Error marshaling websocket payload: %v", err)
		return json.RawMessage(`{}`)
	}
	return data
}
