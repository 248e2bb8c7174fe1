package service

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"kayakbay-backend/internal/config"
	"kayakbay-backend/internal/logger"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(cfg config.SMTPConfig) EmailService {
	return &emailService{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.User,
		password: cfg.Password,
		from:     cfg.From,
	}
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}
	return nil
}

func (s *emailService) SendRentalConfirmation(ctx context.Context, email, name, kayakLabel, passcode string, rentalEnd time.Time, amountDollars int64) error {
	logger.ExternalServiceCall("smtp", "SendRentalConfirmation")
	body := fmt.Sprintf(
		"Hello %s,\n\nYour rental of %s is confirmed.\n\nLock passcode: %s\nPlease return by: %s\nAmount charged: $%d\n\nEnjoy the water!\nThe KayakBay Team",
		name, kayakLabel, passcode, rentalEnd.Format("Mon Jan 2 3:04 PM"), amountDollars)
	err := s.send(email, "Your kayak rental is confirmed", body)
	logger.ExternalServiceResult("smtp", "SendRentalConfirmation", err)
	return err
}

func (s *emailService) SendReturnConfirmation(ctx context.Context, email, name, kayakName string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nThanks for returning %s. Your rental is now closed.\n\nSee you next time!\nThe KayakBay Team",
		name, kayakName)
	return s.send(email, "Kayak returned", body)
}

func (s *emailService) SendPasswordReset(ctx context.Context, email, name, resetURL string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nWe received a request to reset your password. Use the link below within one hour:\n\n%s\n\nIf you did not request this, you can ignore this email.\n\nThe KayakBay Team",
		name, resetURL)
	return s.send(email, "Reset your KayakBay password", body)
}

func (s *emailService) SendPasswordResetConfirmation(ctx context.Context, email, name string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour password has been changed. If this was not you, contact support immediately.\n\nThe KayakBay Team",
		name)
	return s.send(email, "Your KayakBay password was changed", body)
}
