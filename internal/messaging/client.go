// internal/messaging/client.go

package messaging

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// Client is one user's websocket connection.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	userID  int64
	service Service
}

func NewClient(hub *Hub, conn *websocket.Conn, userID int64, service Service) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, 256),
		userID:  userID,
		service: service,
	}
}

func (c *Client) Start() {
	c.hub.register <- c
	go c.writePump()
	go c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for user %d: %v", c.userID, err)
			}
			break
		}

		c.processMessage(message)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) processMessage(data []byte) {
	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("Error unmarshaling websocket frame: %v", err)
		return
	}

	ctx := context.Background()

	switch msg.Type {
	case WSTypeMessage:
		c.handleSend(ctx, msg.Data)

	case WSTypeTyping, WSTypeStopTyping:
		c.handleTyping(ctx, msg.Type, msg.Data)

	case WSTypeRead:
		c.handleRead(ctx, msg.Data)

	default:
		log.Printf("Unknown websocket frame type: %s", msg.Type)
	}
}

func (c *Client) handleSend(ctx context.Context, data json.RawMessage) {
	var payload wsSendPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}

	_, err := c.service.SendMessage(ctx, c.userID, &SendMessageRequest{
		MatchID: payload.MatchID,
		Content: payload.Content,
	})
	if err != nil {
		log.Printf("Failed to send message for user %d: %v", c.userID, err)
	}
}

func (c *Client) handleTyping(ctx context.Context, frameType string, data json.RawMessage) {
	var payload wsTypingPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}

	c.hub.SendToConversationExcept(payload.ConversationID, c.userID, WSMessage{
		Type: frameType,
		Data: mustMarshal(map[string]int64{
			"conversation_id": payload.ConversationID,
			"user_id":         c.userID,
		}),
		Timestamp: time.Now(),
	})
}

func (c *Client) handleRead(ctx context.Context, data json.RawMessage) {
	var payload wsReadPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}

	if err := c.service.MarkRead(ctx, c.userID, payload.ConversationID); err != nil {
		return
	}

	c.hub.SendToConversationExcept(payload.ConversationID, c.userID, WSMessage{
		Type: WSTypeRead,
		Data: mustMarshal(map[string]int64{
			"conversation_id": payload.ConversationID,
			"user_id":         c.userID,
		}),
		Timestamp: time.Now(),
	})
}

func (c *Client) close() {
	close(c.send)
}
