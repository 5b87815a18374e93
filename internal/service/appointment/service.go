package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/turnoya/booking-api/internal/model"
	"github.com/turnoya/booking-api/internal/repository"
	"github.com/turnoya/booking-api/internal/service/notification"
	apperrors "github.com/turnoya/booking-api/pkg/errors"
)

// CancellationWindow is how long before the start a customer may still cancel.
const CancellationWindow = 2 * time.Hour

// ErrTooLateToCancel routes late cancellations to a distinct outcome instead
// of a generic policy failure.
var ErrTooLateToCancel = apperrors.Policy("too late to cancel, appointments can be cancelled up to 2 hours before")

// Service owns the appointment status state machine:
// pending -> confirmed -> completed/cancelled, with cancelled and completed
// terminal.
type Service struct {
	appointmentRepo repository.AppointmentRepository
	businessRepo    repository.BusinessRepository
	serviceRepo     repository.ServiceRepository
	notifier        notification.Service
	now             func() time.Time
}

func NewService(
	appointmentRepo repository.AppointmentRepository,
	businessRepo repository.BusinessRepository,
	serviceRepo repository.ServiceRepository,
	notifier notification.Service,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		businessRepo:    businessRepo,
		serviceRepo:     serviceRepo,
		notifier:        notifier,
		now:             time.Now,
	}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.appointmentRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("appointment")
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return appointment, nil
}

// Confirm moves a pending appointment to confirmed, typically via the
// reminder email link.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID) error {
	appointment, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if appointment.Status == model.AppointmentStatusConfirmed {
		return nil
	}
	if appointment.Status.IsTerminal() {
		return apperrors.Policy(fmt.Sprintf("cannot confirm a %s appointment", appointment.Status))
	}

	err = s.appointmentRepo.UpdateStatusWithPrecondition(ctx, id,
		[]model.AppointmentStatus{model.AppointmentStatusPending},
		model.AppointmentStatusConfirmed)
	if errors.Is(err, repository.ErrPrecondition) {
		return apperrors.Policy("appointment can no longer be confirmed")
	}
	return err
}

// Cancel applies the customer cancellation policy: allowed for active
// appointments up to CancellationWindow before the start time.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	appointment, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if appointment.Status.IsTerminal() {
		return apperrors.Policy(fmt.Sprintf("appointment is already %s", appointment.Status))
	}
	if s.now().After(appointment.AppointmentDate.Add(-CancellationWindow)) {
		return ErrTooLateToCancel
	}

	err = s.appointmentRepo.UpdateStatusWithPrecondition(ctx, id,
		[]model.AppointmentStatus{model.AppointmentStatusPending, model.AppointmentStatusConfirmed},
		model.AppointmentStatusCancelled)
	if err != nil {
		if errors.Is(err, repository.ErrPrecondition) {
			return apperrors.Policy("appointment can no longer be cancelled")
		}
		return err
	}

	appointment.Status = model.AppointmentStatusCancelled
	s.notifyCancellation(ctx, appointment)
	return nil
}

// UpdateStatus is the owner-initiated transition. The 2-hour window does not
// apply here; terminal states still reject every transition.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, to model.AppointmentStatus) (*model.Appointment, error) {
	appointment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.Status == to {
		return appointment, nil
	}
	if appointment.Status.IsTerminal() {
		return nil, apperrors.Policy(fmt.Sprintf("cannot change a %s appointment", appointment.Status))
	}
	if to == model.AppointmentStatusPending {
		return nil, apperrors.Policy("appointments cannot return to pending")
	}

	err = s.appointmentRepo.UpdateStatusWithPrecondition(ctx, id,
		[]model.AppointmentStatus{appointment.Status}, to)
	if err != nil {
		if errors.Is(err, repository.ErrPrecondition) {
			return nil, apperrors.Policy("appointment status changed concurrently")
		}
		return nil, err
	}

	appointment.Status = to
	if to == model.AppointmentStatusCancelled {
		s.notifyCancellation(ctx, appointment)
	}
	return appointment, nil
}

func (s *Service) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	appointments, err := s.appointmentRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// Delete removes an appointment record; only cancelled appointments may be
// deleted so the booking history stays intact.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	appointment, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if appointment.Status != model.AppointmentStatusCancelled {
		return apperrors.Policy("only cancelled appointments can be deleted")
	}
	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("appointment")
		}
		return err
	}
	return nil
}

func (s *Service) notifyCancellation(ctx context.Context, appointment *model.Appointment) {
	business, err := s.businessRepo.Get(ctx, appointment.BusinessID)
	if err != nil {
		return
	}
	service, err := s.serviceRepo.Get(ctx, appointment.ServiceID)
	if err != nil {
		return
	}
	s.notifier.AppointmentCancelled(ctx, appointment, business, service)
}
