// internal/notifications/email.go

package notifications

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService sends transactional email.
type EmailService interface {
	SendEmail(ctx context.Context, notification *EmailNotification) error
}

// SendGridEmailService sends email through the SendGrid API.
type SendGridEmailService struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

func NewSendGridEmailService(apiKey, from, fromName string) (EmailService, error) {
	if apiKey == "" || from == "" {
		return nil, fmt.Errorf("incomplete SendGrid configuration")
	}
	if fromName == "" {
		fromName = "Kind"
	}

	return &SendGridEmailService{
		client:   sendgrid.NewSendClient(apiKey),
		from:     from,
		fromName: fromName,
	}, nil
}

func (s *SendGridEmailService) SendEmail(ctx context.Context, notification *EmailNotification) error {
	from := mail.NewEmail(s.fromName, s.from)
	to := mail.NewEmail("", notification.To)
	message := mail.NewSingleEmail(from, notification.Subject, to, notification.Body, "")

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		log.Printf("Failed to send email to %s: %v", notification.To, err)
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}

	return nil
}

// MockEmailService logs instead of sending. Used when no provider is
// configured and in tests.
type MockEmailService struct {
	SentEmails []*EmailNotification
}

func NewMockEmailService() *MockEmailService {
	return &MockEmailService{SentEmails: make([]*EmailNotification, 0)}
}

func (m *MockEmailService) SendEmail(ctx context.Context, notification *EmailNotification) error {
	m.SentEmails = append(m.SentEmails, notification)
	log.Printf("Mock: Sending email to %s: %s", notification.To, notification.Subject)
	return nil
}
