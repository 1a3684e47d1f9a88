// internal/notifications/sms.go

package notifications

import (
	"context"
	"fmt"
	"log"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSService sends text messages.
type SMSService interface {
	SendSMS(ctx context.Context, notification *SMSNotification) error
}

// TwilioSMSService sends SMS through Twilio.
type TwilioSMSService struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSMSService(accountSID, authToken, from string) (SMSService, error) {
	if accountSID == "" || authToken == "" || from == "" {
		return nil, fmt.Errorf("incomplete Twilio configuration")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioSMSService{client: client, from: from}, nil
}

func (s *TwilioSMSService) SendSMS(ctx context.Context, notification *SMSNotification) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(notification.To)
	params.SetFrom(s.from)
	params.SetBody(notification.Message)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		log.Printf("Failed to send SMS to %s: %v", notification.To, err)
		return err
	}

	return nil
}

// MockSMSService logs instead of sending.
type MockSMSService struct {
	SentMessages []*SMSNotification
}

func NewMockSMSService() *MockSMSService {
	return &MockSMSService{SentMessages: make([]*SMSNotification, 0)}
}

func (m *MockSMSService) SendSMS(ctx context.Context, notification *SMSNotification) error {
	m.SentMessages = append(m.SentMessages, notification)
	log.Printf("Mock: Sending SMS to %s", notification.To)
	return nil
}
