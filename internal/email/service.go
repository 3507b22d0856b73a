package email

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/careops/careops-api/internal/config"
)

// Service sends transactional email to contacts and staff.
type Service interface {
	Send(ctx context.Context, to, subject, body string) error
	SendWelcome(ctx context.Context, to, name string) error
	SendBookingConfirmation(ctx context.Context, to, serviceName, when string) error
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPService creates the SMTP-backed sender.
func NewSMTPService(cfg config.SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) Send(_ context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *smtpService) SendWelcome(ctx context.Context, to, name string) error {
	body := fmt.Sprintf("Hi %s,\n\nYour account is ready. Log in to finish setting up your workspace.\n", name)
	return s.Send(ctx, to, "Welcome", body)
}

func (s *smtpService) SendBookingConfirmation(ctx context.Context, to, serviceName, when string) error {
	body := fmt.Sprintf("Your booking for %s at %s is confirmed.\n", serviceName, when)
	return s.Send(ctx, to, "Booking confirmed", body)
}

// logService logs instead of sending. Used when SMTP is not configured.
type logService struct {
	logger zerolog.Logger
}

func NewLogService(logger zerolog.Logger) Service {
	return &logService{logger: logger}
}

func (s *logService) Send(_ context.Context, to, subject, _ string) error {
	s.logger.Info().Str("to", to).Str("subject", subject).Msg("email suppressed, SMTP not configured")
	return nil
}

func (s *logService) SendWelcome(ctx context.Context, to, name string) error {
	return s.Send(ctx, to, "Welcome", name)
}

func (s *logService) SendBookingConfirmation(ctx context.Context, to, serviceName, when string) error {
	return s.Send(ctx, to, "Booking confirmed", serviceName+" "+when)
}
