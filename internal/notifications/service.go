// internal/notifications/service.go

package notifications

import (
	"context"
	"fmt"
	"log"
	"strconv"
)

type Service interface {
	List(ctx context.Context, userID int64, limit, offset int) ([]*Notification, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
	MarkRead(ctx context.Context, userID, notificationID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
	RegisterPushToken(ctx context.Context, userID int64, token string) error
	UnregisterPushToken(ctx context.Context, userID int64, token string) error

	// Event entry points called by the other packages.
	ApplicationReceived(ctx context.Context, employerID, workerID, jobID int64, jobTitle string)
	MatchCreated(ctx context.Context, workerID, employerID, matchID, jobID int64, jobTitle string)
	MessageReceived(ctx context.Context, recipientID, senderID, conversationID int64, preview string)
	PaymentSucceeded(ctx context.Context, userID int64, invoiceID string, amount float64, currency string)
	CreditsGranted(ctx context.Context, userID int64, creditType string, amount int)
}

type service struct {
	repo  Repository
	email EmailService
	sms   SMSService
	push  PushService
}

func NewService(repo Repository, email EmailService, sms SMSService, push PushService) Service {
	return &service{repo: repo, email: email, sms: sms, push: push}
}

func (s *service) List(ctx context.Context, userID int64, limit, offset int) ([]*Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.List(ctx, userID, limit, offset)
}

func (s *service) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.repo.UnreadCount(ctx, userID)
}

func (s *service) MarkRead(ctx context.Context, userID, notificationID int64) error {
	return s.repo.MarkRead(ctx, userID, notificationID)
}

func (s *service) MarkAllRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *service) RegisterPushToken(ctx context.Context, userID int64, token string) error {
	return s.repo.SavePushToken(ctx, userID, token)
}

func (s *service) UnregisterPushToken(ctx context.Context, userID int64, token string) error {
	return s.repo.DeletePushToken(ctx, userID, token)
}

func (s *service) ApplicationReceived(ctx context.Context, employerID, workerID, jobID int64, jobTitle string) {
	s.deliver(ctx, employerID,
		"New application",
		fmt.Sprintf("Someone applied to %q", jobTitle),
		&ApplicationReceivedPayload{JobID: jobID, JobTitle: jobTitle, WorkerID: workerID},
		true)
}

func (s *service) MatchCreated(ctx context.Context, workerID, employerID, matchID, jobID int64, jobTitle string) {
	payload := &MatchCreatedPayload{MatchID: matchID, JobID: jobID, JobTitle: jobTitle}

	workerPayload := *payload
	workerPayload.CounterpartID = employerID
	s.deliver(ctx, workerID,
		"It's a match!",
		fmt.Sprintf("You were approved for %q", jobTitle),
		&workerPayload, true)
	s.smsNotify(ctx, workerID, fmt.Sprintf("Kind: you were approved for %q. Open the app to start chatting.", jobTitle))

	employerPayload := *payload
	employerPayload.CounterpartID = workerID
	s.deliver(ctx, employerID,
		"It's a match!",
		fmt.Sprintf("You matched with a worker for %q", jobTitle),
		&employerPayload, false)
}

func (s *service) MessageReceived(ctx context.Context, recipientID, senderID, conversationID int64, preview string) {
	s.deliver(ctx, recipientID,
		"New message",
		preview,
		&MessageReceivedPayload{ConversationID: conversationID, SenderID: senderID, Preview: preview},
		true)
}

func (s *service) PaymentSucceeded(ctx context.Context, userID int64, invoiceID string, amount float64, currency string) {
	s.deliver(ctx, userID,
		"Payment received",
		fmt.Sprintf("Your payment of %.2f %s was processed", amount, currency),
		&PaymentSucceededPayload{InvoiceID: invoiceID, Amount: amount, Currency: currency},
		true)
}

func (s *service) CreditsGranted(ctx context.Context, userID int64, creditType string, amount int) {
	s.deliver(ctx, userID,
		"Credits added",
		fmt.Sprintf("%d %s credits were added to your account", amount, creditType),
		&CreditsGrantedPayload{CreditType: creditType, Amount: amount},
		false)
}

// deliver stores the in-app notification and fans out to push and,
// when important, email. Delivery failures are logged; events never
// fail the triggering operation.
func (s *service) deliver(ctx context.Context, userID int64, title, body string, payload Payload, sendEmail bool) {
	encoded, err := EncodePayload(payload)
	if err != nil {
		log.Printf("Failed to encode %s payload: %v", payload.Kind(), err)
		return
	}

	n := &Notification{
		UserID:  userID,
		Type:    payload.Kind(),
		Title:   title,
		Body:    body,
		Payload: encoded,
	}
	if err := s.repo.Insert(ctx, n); err != nil {
		log.Printf("Failed to store notification for user %d: %v", userID, err)
		return
	}

	if s.push != nil {
		if tokens, err := s.repo.GetPushTokens(ctx, userID); err == nil && len(tokens) > 0 {
			push := &PushNotification{
				Tokens: tokens,
				Title:  title,
				Body:   body,
				Data: map[string]string{
					"type":            payload.Kind(),
					"notification_id": strconv.FormatInt(n.ID, 10),
				},
			}
			if err := s.push.SendPush(ctx, push); err != nil {
				log.Printf("Failed to push notification %d: %v", n.ID, err)
			}
		}
	}

	if sendEmail && s.email != nil {
		s.emailNotify(ctx, userID, n.ID, title, body)
	}
}

func (s *service) emailNotify(ctx context.Context, userID, notificationID int64, title, body string) {
	email, _, err := s.repo.GetRecipientContact(ctx, userID)
	if err != nil {
		log.Printf("Failed to resolve contact for user %d: %v", userID, err)
		return
	}
	if err := s.email.SendEmail(ctx, &EmailNotification{
		To:      email,
		Subject: title,
		Body:    body,
	}); err != nil {
		log.Printf("Failed to email notification %d: %v", notificationID, err)
	}
}

func (s *service) smsNotify(ctx context.Context, userID int64, message string) {
	if s.sms == nil {
		return
	}
	_, phone, err := s.repo.GetRecipientContact(ctx, userID)
	if err != nil || phone == nil || *phone == "" {
		return
	}
	if err := s.sms.SendSMS(ctx, &SMSNotification{To: *phone, Message: message}); err != nil {
		log.Printf("Failed to SMS user %d: %v", userID, err)
	}
}
