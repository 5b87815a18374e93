package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/turnoya/booking-api/internal/model"
	"github.com/turnoya/booking-api/internal/repository"
	"github.com/turnoya/booking-api/internal/scheduling"
	apperrors "github.com/turnoya/booking-api/pkg/errors"
)

const (
	catalogTTL      = 5 * time.Minute
	cleanupInterval = 10 * time.Minute
)

// Service answers "what slots are free on date D for service S at business B".
// Business and service records are cached briefly; appointments are always
// read fresh since staleness there would hide conflicts.
type Service struct {
	businessRepo    repository.BusinessRepository
	serviceRepo     repository.ServiceRepository
	hoursRepo       repository.HoursRepository
	appointmentRepo repository.AppointmentRepository
	catalog         *cache.Cache
	now             func() time.Time
}

func NewService(
	businessRepo repository.BusinessRepository,
	serviceRepo repository.ServiceRepository,
	hoursRepo repository.HoursRepository,
	appointmentRepo repository.AppointmentRepository,
) *Service {
	return &Service{
		businessRepo:    businessRepo,
		serviceRepo:     serviceRepo,
		hoursRepo:       hoursRepo,
		appointmentRepo: appointmentRepo,
		catalog:         cache.New(catalogTTL, cleanupInterval),
		now:             time.Now,
	}
}

// GetAvailableSlots lists every candidate slot of the day with its
// availability. A slot is available only when its full service interval fits
// inside the open window, does not overlap an active appointment, and does
// not start in the past.
func (s *Service) GetAvailableSlots(ctx context.Context, businessID, serviceID uuid.UUID, date time.Time) ([]model.SlotAvailability, error) {
	business, err := s.getBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if !business.IsActive {
		return nil, apperrors.NotFound("business")
	}

	service, err := s.getService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if service.BusinessID != business.ID || !service.IsActive {
		return nil, apperrors.NotFound("service")
	}

	hours, err := s.hoursRepo.GetForWeekday(ctx, business.ID, int(date.Weekday()))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// No record for the weekday means closed.
			return []model.SlotAvailability{}, nil
		}
		return nil, fmt.Errorf("failed to resolve business hours: %w", err)
	}
	if hours.IsClosed || hours.OpenTime == nil || hours.CloseTime == nil {
		return []model.SlotAvailability{}, nil
	}

	slots, err := scheduling.GenerateSlots(*hours.OpenTime, *hours.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("failed to generate slots: %w", err)
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	appointments, err := s.appointmentRepo.ListActiveForRange(ctx, business.ID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}

	existing := make([]scheduling.Interval, 0, len(appointments))
	for _, apt := range appointments {
		existing = append(existing, scheduling.NewInterval(apt.AppointmentDate, apt.DurationMinutes))
	}

	openStart, err := scheduling.SlotStart(date, *hours.OpenTime)
	if err != nil {
		return nil, err
	}
	closeEnd, err := scheduling.SlotStart(date, *hours.CloseTime)
	if err != nil {
		return nil, err
	}
	window := scheduling.Interval{Start: openStart, End: closeEnd}

	now := s.now()
	result := make([]model.SlotAvailability, 0, len(slots))
	for _, slot := range slots {
		start, err := scheduling.SlotStart(date, slot)
		if err != nil {
			return nil, err
		}
		candidate := scheduling.NewInterval(start, service.DurationMinutes)

		available := window.Contains(candidate) &&
			!scheduling.HasConflict(candidate, existing) &&
			!start.Before(now)

		result = append(result, model.SlotAvailability{Time: slot, Available: available})
	}
	return result, nil
}

func (s *Service) getBusiness(ctx context.Context, id uuid.UUID) (*model.Business, error) {
	key := "business:" + id.String()
	if cached, ok := s.catalog.Get(key); ok {
		return cached.(*model.Business), nil
	}

	business, err := s.businessRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("business")
		}
		return nil, fmt.Errorf("failed to get business: %w", err)
	}
	s.catalog.Set(key, business, cache.DefaultExpiration)
	return business, nil
}

func (s *Service) getService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	key := "service:" + id.String()
	if cached, ok := s.catalog.Get(key); ok {
		return cached.(*model.Service), nil
	}

	service, err := s.serviceRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("service")
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	s.catalog.Set(key, service, cache.DefaultExpiration)
	return service, nil
}
