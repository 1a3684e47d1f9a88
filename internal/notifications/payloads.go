// internal/notifications/payloads.go
// Notification payloads are a tagged union. Each record stores an
// envelope {"type": ..., "data": {...}}; decoding switches on the
// discriminant and rejects unknown types instead of probing shapes at
// runtime.

package notifications

import (
	"encoding/json"
	"fmt"
)

// Notification types (the union discriminants).
const (
	TypeMatchCreated        = "match_created"
	TypeApplicationReceived = "application_received"
	TypeMessageReceived     = "message_received"
	TypeCreditsGranted      = "credits_granted"
	TypePaymentSucceeded    = "payment_succeeded"
)

// Payload is one arm of the union.
type Payload interface {
	Kind() string
}

type MatchCreatedPayload struct {
	MatchID       int64  `json:"match_id"`
	JobID         int64  `json:"job_id"`
	JobTitle      string `json:"job_title"`
	CounterpartID int64  `json:"counterpart_id"`
}

func (MatchCreatedPayload) Kind() string { return TypeMatchCreated }

type ApplicationReceivedPayload struct {
	JobID    int64  `json:"job_id"`
	JobTitle string `json:"job_title"`
	WorkerID int64  `json:"worker_id"`
}

func (ApplicationReceivedPayload) Kind() string { return TypeApplicationReceived }

type MessageReceivedPayload struct {
	ConversationID int64  `json:"conversation_id"`
	SenderID       int64  `json:"sender_id"`
	Preview        string `json:"preview"`
}

func (MessageReceivedPayload) Kind() string { return TypeMessageReceived }

type CreditsGrantedPayload struct {
	CreditType string `json:"credit_type"`
	Amount     int    `json:"amount"`
}

func (CreditsGrantedPayload) Kind() string { return TypeCreditsGranted }

type PaymentSucceededPayload struct {
	InvoiceID string  `json:"invoice_id"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
}

func (PaymentSucceededPayload) Kind() string { return TypePaymentSucceeded }

type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// EncodePayload wraps a payload in its typed envelope for storage.
func EncodePayload(p Payload) (json.RawMessage, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Type: p.Kind(), Data: data})
}

// DecodePayload restores a stored envelope into its concrete payload
// type. Unknown discriminants are an error, not a silent fallthrough.
func DecodePayload(raw json.RawMessage) (Payload, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("malformed notification payload: %w", err)
	}

	var p Payload
	switch env.Type {
	case TypeMatchCreated:
		p = &MatchCreatedPayload{}
	case TypeApplicationReceived:
		p = &ApplicationReceivedPayload{}
	case TypeMessageReceived:
		p = &MessageReceivedPayload{}
	case TypeCreditsGranted:
		p = &CreditsGrantedPayload{}
	case TypePaymentSucceeded:
		p = &PaymentSucceededPayload{}
	default:
		return nil, fmt.Errorf("unknown notification type %q", env.Type)
	}

	if err := json.Unmarshal(env.Data, p); err != nil {
		return nil, fmt.Errorf("malformed %s payload: %w", env.Type, err)
	}
	return p, nil
}
