package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/turnoya/booking-api/internal/model"
	"github.com/turnoya/booking-api/internal/repository"
	"github.com/turnoya/booking-api/internal/service/notification"
	"github.com/turnoya/booking-api/pkg/logger"
)

// Result summarizes one reminder dispatch run.
type Result struct {
	Eligible int `json:"eligible"`
	Sent     int `json:"sent"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// Service dispatches the 24-hour reminders. It owns no schedule of its own;
// the trigger is external (worker tick or the jobs endpoint).
type Service struct {
	appointmentRepo repository.AppointmentRepository
	businessRepo    repository.BusinessRepository
	serviceRepo     repository.ServiceRepository
	notifier        notification.Service
	logger          *logger.Logger
	now             func() time.Time
}

func NewService(
	appointmentRepo repository.AppointmentRepository,
	businessRepo repository.BusinessRepository,
	serviceRepo repository.ServiceRepository,
	notifier notification.Service,
	logger *logger.Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		businessRepo:    businessRepo,
		serviceRepo:     serviceRepo,
		notifier:        notifier,
		logger:          logger,
		now:             time.Now,
	}
}

// DispatchReminders notifies every active appointment falling on tomorrow's
// calendar day that has not been reminded yet. The reminder is claimed in the
// store before sending, so overlapping runs never send twice; a failure after
// the claim is logged and counted, not retried (at-most-once).
func (s *Service) DispatchReminders(ctx context.Context) (*Result, error) {
	now := s.now()
	tomorrow := now.AddDate(0, 0, 1)
	dayStart := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, tomorrow.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	due, err := s.appointmentRepo.ListDueReminders(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list due reminders: %w", err)
	}

	result := &Result{Eligible: len(due)}
	for _, appointment := range due {
		claimed, err := s.appointmentRepo.MarkReminderSent(ctx, appointment.ID, now)
		if err != nil {
			result.Failed++
			s.logger.Error(err, "failed to claim reminder", "appointment_id", appointment.ID.String())
			continue
		}
		if !claimed {
			// A concurrent run already handled this one.
			result.Skipped++
			continue
		}

		if err := s.send(ctx, appointment); err != nil {
			result.Failed++
			s.logger.Error(err, "failed to send reminder", "appointment_id", appointment.ID.String())
			continue
		}
		result.Sent++
	}

	s.logger.Info("reminder dispatch finished",
		"eligible", result.Eligible, "sent", result.Sent,
		"skipped", result.Skipped, "failed", result.Failed)
	return result, nil
}

func (s *Service) send(ctx context.Context, appointment *model.Appointment) error {
	business, err := s.businessRepo.Get(ctx, appointment.BusinessID)
	if err != nil {
		return fmt.Errorf("failed to get business: %w", err)
	}
	service, err := s.serviceRepo.Get(ctx, appointment.ServiceID)
	if err != nil {
		return fmt.Errorf("failed to get service: %w", err)
	}
	return s.notifier.AppointmentReminder(ctx, appointment, business, service)
}
