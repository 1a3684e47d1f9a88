// internal/messaging/models.go

package messaging

import (
	"encoding/json"
	"time"
)

// Conversation is the chat thread for a match. It is created lazily
// on the first message, not at match time.
type Conversation struct {
	ID            int64      `db:"id" json:"id"`
	MatchID       *int64     `db:"match_id" json:"match_id,omitempty"`
	WorkerID      int64      `db:"worker_id" json:"worker_id"`
	EmployerID    int64      `db:"employer_id" json:"employer_id"`
	LastMessageID *int64     `db:"last_message_id" json:"last_message_id,omitempty"`
	LastMessageAt *time.Time `db:"last_message_at" json:"last_message_at,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

type Message struct {
	ID             int64      `db:"id" json:"id"`
	ConversationID int64      `db:"conversation_id" json:"conversation_id"`
	SenderID       int64      `db:"sender_id" json:"sender_id"`
	Content        string     `db:"content" json:"content"`
	ReadAt         *time.Time `db:"read_at" json:"read_at,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

// ConversationSummary is a conversation joined with counterpart info
// for the inbox listing.
type ConversationSummary struct {
	ID              int64      `db:"id" json:"id"`
	MatchID         *int64     `db:"match_id" json:"match_id,omitempty"`
	CounterpartID   int64      `db:"counterpart_id" json:"counterpart_id"`
	CounterpartName string     `db:"counterpart_name" json:"counterpart_name"`
	JobTitle        *string    `db:"job_title" json:"job_title,omitempty"`
	LastMessage     *string    `db:"last_message" json:"last_message,omitempty"`
	LastMessageAt   *time.Time `db:"last_message_at" json:"last_message_at,omitempty"`
	UnreadCount     int        `db:"unread_count" json:"unread_count"`
}

type SendMessageRequest struct {
	MatchID int64  `json:"match_id" validate:"required,min=1"`
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

// WebSocket frame types.
const (
	WSTypeMessage    = "message"
	WSTypeTyping     = "typing"
	WSTypeStopTyping = "stop_typing"
	WSTypeRead       = "read"
)

// WSMessage is the envelope for every websocket frame in both
// directions.
type WSMessage struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

type wsSendPayload struct {
	MatchID int64  `json:"match_id"`
	Content string `json:"content"`
}

type wsTypingPayload struct {
	ConversationID int64 `json:"conversation_id"`
}

type wsReadPayload struct {
	ConversationID int64 `json:"conversation_id"`
}
