package service

import (
	"context"
	"fmt"
	"time"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"kayakbay-backend/internal/config"
	"kayakbay-backend/internal/logger"
)

// smsService sends texts through Twilio. With no credentials configured it
// silently no-ops so development environments work without an account.
type smsService struct {
	client *twilio.RestClient
	from   string
}

func NewSMSService(cfg config.TwilioConfig) SMSService {
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.PhoneNumber == "" {
		logger.Info("twilio not configured, SMS notifications disabled")
		return &smsService{}
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &smsService{client: client, from: cfg.PhoneNumber}
}

func (s *smsService) send(to, body string) error {
	if s.client == nil {
		logger.Debug("sms skipped, twilio not configured")
		return nil
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	logger.ExternalServiceCall("twilio", "CreateMessage")
	_, err := s.client.Api.CreateMessage(params)
	logger.ExternalServiceResult("twilio", "CreateMessage", err)
	if err != nil {
		return fmt.Errorf("failed to send sms: %w", err)
	}
	return nil
}

func (s *smsService) SendRentalConfirmation(ctx context.Context, phone, kayakLabel, passcode string, rentalEnd time.Time) error {
	return s.send(phone, fmt.Sprintf(
		"KayakBay: your rental of %s is confirmed. Lock passcode: %s. Please return by %s.",
		kayakLabel, passcode, rentalEnd.Format("3:04 PM")))
}

func (s *smsService) SendReturnConfirmation(ctx context.Context, phone, kayakName string) error {
	return s.send(phone, fmt.Sprintf("KayakBay: %s returned, your rental is closed. Thanks!", kayakName))
}

func (s *smsService) SendReturnReminder(ctx context.Context, phone, kayakName string, rentalEnd time.Time) error {
	return s.send(phone, fmt.Sprintf(
		"KayakBay: reminder, %s is due back at %s. Please snap a return photo in the app when you dock.",
		kayakName, rentalEnd.Format("3:04 PM")))
}
