package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/turnoya/booking-api/internal/config"
)

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg config.SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendConfirmation(ctx context.Context, details AppointmentDetails) error {
	subject := fmt.Sprintf("Booking received - %s", details.BusinessName)
	return s.send(ctx, details.To, subject, confirmationBody(details))
}

func (s *smtpService) SendReminder(ctx context.Context, details AppointmentDetails) error {
	subject := fmt.Sprintf("Reminder: your appointment tomorrow at %s", details.BusinessName)
	return s.send(ctx, details.To, subject, reminderBody(details))
}

func (s *smtpService) SendCancellation(ctx context.Context, details AppointmentDetails) error {
	subject := fmt.Sprintf("Appointment cancelled - %s", details.BusinessName)
	return s.send(ctx, details.To, subject, cancellationBody(details))
}

func (s *smtpService) send(ctx context.Context, to, subject, body string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
