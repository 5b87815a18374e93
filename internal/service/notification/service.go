package notification

import (
	"context"
	"fmt"

	"github.com/turnoya/booking-api/internal/email"
	"github.com/turnoya/booking-api/internal/model"
	"github.com/turnoya/booking-api/pkg/logger"
	"github.com/turnoya/booking-api/pkg/messaging"
)

const eventsChannel = "appointments"

// Service delivers customer notifications and publishes lifecycle events.
// Delivery is best-effort at-most-once: failures are logged and never reach
// the caller of the primary operation.
type Service interface {
	BookingCreated(ctx context.Context, appointment *model.Appointment, business *model.Business, service *model.Service)
	AppointmentCancelled(ctx context.Context, appointment *model.Appointment, business *model.Business, service *model.Service)
	AppointmentReminder(ctx context.Context, appointment *model.Appointment, business *model.Business, service *model.Service) error
}

type notifier struct {
	emailSvc email.Service
	broker   messaging.Broker
	logger   *logger.Logger
	baseURL  string
}

func NewService(emailSvc email.Service, broker messaging.Broker, logger *logger.Logger, baseURL string) Service {
	return &notifier{
		emailSvc: emailSvc,
		broker:   broker,
		logger:   logger,
		baseURL:  baseURL,
	}
}

func (n *notifier) BookingCreated(ctx context.Context, appointment *model.Appointment, business *model.Business, service *model.Service) {
	n.publish(ctx, "appointment.created", appointment)

	if appointment.CustomerEmail == nil || *appointment.CustomerEmail == "" {
		return
	}
	details := n.details(appointment, business, service)
	details.CancelLink = fmt.Sprintf("%s/api/v1/appointments/%s/cancel", n.baseURL, appointment.ID)

	go func() {
		if err := n.emailSvc.SendConfirmation(context.Background(), details); err != nil {
			n.logger.Error(err, "failed to send confirmation email",
				"appointment_id", appointment.ID.String())
		}
	}()
}

func (n *notifier) AppointmentCancelled(ctx context.Context, appointment *model.Appointment, business *model.Business, service *model.Service) {
	n.publish(ctx, "appointment.cancelled", appointment)

	if appointment.CustomerEmail == nil || *appointment.CustomerEmail == "" {
		return
	}
	details := n.details(appointment, business, service)
	details.RescheduleLink = fmt.Sprintf("%s/%s/booking", n.baseURL, business.Slug)

	go func() {
		if err := n.emailSvc.SendCancellation(context.Background(), details); err != nil {
			n.logger.Error(err, "failed to send cancellation email",
				"appointment_id", appointment.ID.String())
		}
	}()
}

// AppointmentReminder is synchronous so the reminder job can count failures;
// the job still isolates errors per appointment.
func (n *notifier) AppointmentReminder(ctx context.Context, appointment *model.Appointment, business *model.Business, service *model.Service) error {
	if appointment.CustomerEmail == nil || *appointment.CustomerEmail == "" {
		return nil
	}
	details := n.details(appointment, business, service)
	details.ConfirmLink = fmt.Sprintf("%s/api/v1/appointments/%s/confirm", n.baseURL, appointment.ID)
	details.CancelLink = fmt.Sprintf("%s/api/v1/appointments/%s/cancel", n.baseURL, appointment.ID)

	return n.emailSvc.SendReminder(ctx, details)
}

func (n *notifier) publish(ctx context.Context, eventType string, appointment *model.Appointment) {
	if n.broker == nil {
		return
	}
	msg := messaging.Message{Type: eventType, Payload: appointment}
	if err := n.broker.Publish(ctx, eventsChannel, msg); err != nil {
		n.logger.Error(err, "failed to publish event", "type", eventType)
	}
}

func (n *notifier) details(appointment *model.Appointment, business *model.Business, service *model.Service) email.AppointmentDetails {
	var to string
	if appointment.CustomerEmail != nil {
		to = *appointment.CustomerEmail
	}
	return email.AppointmentDetails{
		To:              to,
		CustomerName:    appointment.CustomerName,
		BusinessName:    business.Name,
		BusinessPhone:   business.Phone,
		BusinessAddress: business.Address,
		ServiceName:     service.Name,
		Date:            appointment.AppointmentDate.Format("2006-01-02"),
		Time:            appointment.AppointmentDate.Format("15:04"),
		DurationMinutes: appointment.DurationMinutes,
	}
}
