// internal/notifications/push.go

package notifications

import (
	"context"
	"errors"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// PushService sends mobile push notifications.
type PushService interface {
	SendPush(ctx context.Context, notification *PushNotification) error
}

// FCMPushService sends push notifications through Firebase Cloud
// Messaging.
type FCMPushService struct {
	client *messaging.Client
}

func NewFCMPushService(ctx context.Context, credentialsFile string) (PushService, error) {
	if credentialsFile == "" {
		return nil, errors.New("missing Firebase credentials file")
	}

	opt := option.WithCredentialsFile(credentialsFile)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	return &FCMPushService{client: client}, nil
}

func (s *FCMPushService) SendPush(ctx context.Context, notification *PushNotification) error {
	if len(notification.Tokens) == 0 {
		return errors.New("no tokens provided")
	}

	message := &messaging.MulticastMessage{
		Tokens: notification.Tokens,
		Notification: &messaging.Notification{
			Title: notification.Title,
			Body:  notification.Body,
		},
		Data: notification.Data,
	}

	resp, err := s.client.SendEachForMulticast(ctx, message)
	if err != nil {
		log.Printf("Failed to send push notification: %v", err)
		return err
	}
	if resp.FailureCount > 0 {
		log.Printf("Push notification had %d failures out of %d", resp.FailureCount, len(notification.Tokens))
	}

	return nil
}

// MockPushService logs instead of sending.
type MockPushService struct {
	SentPushes []*PushNotification
}

func NewMockPushService() *MockPushService {
	return &MockPushService{SentPushes: make([]*PushNotification, 0)}
}

func (m *MockPushService) SendPush(ctx context.Context, notification *PushNotification) error {
	m.SentPushes = append(m.SentPushes, notification)
	log.Printf("Mock: Sending push to %d devices: %s", len(notification.Tokens), notification.Title)
	return nil
}
