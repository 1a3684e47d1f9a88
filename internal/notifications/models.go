// internal/notifications/models.go

package notifications

import (
	"encoding/json"
	"time"
)

// Notification is a stored in-app notification. Payload holds the
// typed envelope; Title and Body are the rendered user-facing text.
type Notification struct {
	ID        int64           `db:"id" json:"id"`
	UserID    int64           `db:"user_id" json:"user_id"`
	Type      string          `db:"type" json:"type"`
	Title     string          `db:"title" json:"title"`
	Body      string          `db:"body" json:"body"`
	Payload   json.RawMessage `db:"payload" json:"payload"`
	IsRead    bool            `db:"is_read" json:"is_read"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// EmailNotification is an outbound email.
type EmailNotification struct {
	To      string
	Subject string
	Body    string
}

// SMSNotification is an outbound text message.
type SMSNotification struct {
	To      string
	Message string
}

// PushNotification is an outbound mobile push.
type PushNotification struct {
	Tokens []string
	Title  string
	Body   string
	Data   map[string]string
}
