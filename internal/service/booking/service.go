package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/turnoya/booking-api/internal/model"
	"github.com/turnoya/booking-api/internal/repository"
	"github.com/turnoya/booking-api/internal/service/notification"
	apperrors "github.com/turnoya/booking-api/pkg/errors"
)

// Service turns a validated booking request into a committed appointment. The
// conflict re-check runs inside the store transaction; the availability check
// a client did earlier is never trusted.
type Service struct {
	businessRepo    repository.BusinessRepository
	serviceRepo     repository.ServiceRepository
	appointmentRepo repository.AppointmentRepository
	notifier        notification.Service
	now             func() time.Time
}

func NewService(
	businessRepo repository.BusinessRepository,
	serviceRepo repository.ServiceRepository,
	appointmentRepo repository.AppointmentRepository,
	notifier notification.Service,
) *Service {
	return &Service{
		businessRepo:    businessRepo,
		serviceRepo:     serviceRepo,
		appointmentRepo: appointmentRepo,
		notifier:        notifier,
		now:             time.Now,
	}
}

func (s *Service) CreateBooking(ctx context.Context, req *model.CreateBookingRequest) (*model.Appointment, error) {
	businessID, err := uuid.Parse(req.BusinessID)
	if err != nil {
		return nil, apperrors.Validation("invalid business id")
	}
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, apperrors.Validation("invalid service id")
	}

	business, err := s.businessRepo.Get(ctx, businessID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("business")
		}
		return nil, fmt.Errorf("failed to get business: %w", err)
	}
	if !business.IsActive {
		return nil, apperrors.NotFound("business")
	}

	service, err := s.serviceRepo.Get(ctx, serviceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("service")
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	if service.BusinessID != business.ID || !service.IsActive {
		return nil, apperrors.NotFound("service")
	}

	if req.AppointmentDate.Before(s.now()) {
		return nil, apperrors.Validation("appointments cannot be booked in the past")
	}

	name := strings.TrimSpace(req.CustomerName)
	phone := strings.TrimSpace(req.CustomerPhone)
	if name == "" || phone == "" {
		return nil, apperrors.Validation("customer name and phone are required")
	}

	appointment := &model.Appointment{
		BusinessID:      business.ID,
		ServiceID:       service.ID,
		CustomerName:    name,
		CustomerPhone:   phone,
		AppointmentDate: req.AppointmentDate,
		// Duration snapshot: later service edits must not move this booking.
		DurationMinutes: service.DurationMinutes,
		Status:          model.AppointmentStatusPending,
		Notes:           strings.TrimSpace(req.Notes),
	}
	if email := strings.TrimSpace(req.CustomerEmail); email != "" {
		appointment.CustomerEmail = &email
	}

	if err := s.appointmentRepo.CreateWithConflictCheck(ctx, appointment); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, apperrors.Conflict("that time is no longer available, please choose another slot")
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	// Best effort: a failed notification never unwinds the booking.
	s.notifier.BookingCreated(ctx, appointment, business, service)

	return appointment, nil
}
