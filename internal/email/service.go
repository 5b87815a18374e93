package email

import (
	"context"
)

// AppointmentDetails carries everything the templates need.
type AppointmentDetails struct {
	To              string
	CustomerName    string
	BusinessName    string
	BusinessPhone   string
	BusinessAddress string
	ServiceName     string
	Date            string
	Time            string
	DurationMinutes int
	ConfirmLink     string
	CancelLink      string
	RescheduleLink  string
}

type Service interface {
	SendConfirmation(ctx context.Context, details AppointmentDetails) error
	SendReminder(ctx context.Context, details AppointmentDetails) error
	SendCancellation(ctx context.Context, details AppointmentDetails) error
}
