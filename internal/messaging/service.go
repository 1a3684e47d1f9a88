// internal/messaging/service.go

package messaging

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotParticipant covers access to a conversation or match the
// caller is not part of. Handlers collapse it with not-found.
var ErrNotParticipant = errors.New("not a participant")

// Notifier is implemented by the notifications package.
type Notifier interface {
	MessageReceived(ctx context.Context, recipientID, senderID, conversationID int64, preview string)
}

type Service interface {
	SendMessage(ctx context.Context, senderID int64, req *SendMessageRequest) (*Message, error)
	ListConversations(ctx context.Context, userID int64) ([]*ConversationSummary, error)
	ListMessages(ctx context.Context, userID, conversationID int64, limit, offset int) ([]*Message, error)
	MarkRead(ctx context.Context, userID, conversationID int64) error
	ConversationParticipants(ctx context.Context, conversationID int64) (workerID, employerID int64, err error)

	// AttachHub wires the websocket hub after construction; the hub
	// itself needs the service, so the two are connected in two steps.
	AttachHub(hub *Hub)
}

type service struct {
	repo     Repository
	hub      *Hub
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) Service {
	return &service{repo: repo, notifier: notifier}
}

func (s *service) AttachHub(hub *Hub) {
	s.hub = hub
}

// SendMessage delivers a chat message within a match. The conversation
// row is created on the first message.
func (s *service) SendMessage(ctx context.Context, senderID int64, req *SendMessageRequest) (*Message, error) {
	workerID, employerID, err := s.repo.GetMatchParticipants(ctx, req.MatchID)
	if err != nil {
		return nil, err
	}
	if senderID != workerID && senderID != employerID {
		return nil, ErrNotParticipant
	}

	conv, err := s.repo.GetOrCreateConversation(ctx, req.MatchID, workerID, employerID)
	if err != nil {
		return nil, fmt.Errorf("failed to open conversation: %w", err)
	}

	msg := &Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        req.Content,
	}
	if err := s.repo.InsertMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	recipientID := workerID
	if senderID == workerID {
		recipientID = employerID
	}

	if s.hub != nil {
		s.hub.DeliverMessage(recipientID, msg)
	}
	if s.notifier != nil && (s.hub == nil || !s.hub.IsUserOnline(recipientID)) {
		s.notifier.MessageReceived(ctx, recipientID, senderID, conv.ID, preview(req.Content))
	}

	return msg, nil
}

func (s *service) ListConversations(ctx context.Context, userID int64) ([]*ConversationSummary, error) {
	return s.repo.ListConversations(ctx, userID)
}

func (s *service) ListMessages(ctx context.Context, userID, conversationID int64, limit, offset int) ([]*Message, error) {
	if err := s.requireParticipant(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListMessages(ctx, conversationID, limit, offset)
}

func (s *service) MarkRead(ctx context.Context, userID, conversationID int64) error {
	if err := s.requireParticipant(ctx, userID, conversationID); err != nil {
		return err
	}
	return s.repo.MarkRead(ctx, conversationID, userID)
}

func (s *service) ConversationParticipants(ctx context.Context, conversationID int64) (int64, int64, error) {
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return 0, 0, err
	}
	return conv.WorkerID, conv.EmployerID, nil
}

func (s *service) requireParticipant(ctx context.Context, userID, conversationID int64) error {
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return err
	}
	if conv.WorkerID != userID && conv.EmployerID != userID {
		return ErrNotParticipant
	}
	return nil
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) > 80 {
		return string(runes[:80]) + "..."
	}
	return content
}
