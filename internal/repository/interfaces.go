package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/turnoya/booking-api/internal/model"
)

// Sentinel errors the store implementations translate driver errors into.
var (
	ErrNotFound     = errors.New("record not found")
	ErrSlotTaken    = errors.New("slot already booked")
	ErrPrecondition = errors.New("status precondition failed")
	ErrDuplicate    = errors.New("record already exists")
)

// All repository interfaces in one file
type (
	BusinessRepository interface {
		Create(ctx context.Context, business *model.Business) error
		Get(ctx context.Context, id uuid.UUID) (*model.Business, error)
		GetByOwner(ctx context.Context, ownerID string) (*model.Business, error)
		GetBySlug(ctx context.Context, slug string) (*model.Business, error)
		Update(ctx context.Context, business *model.Business) error
	}

	ServiceRepository interface {
		Create(ctx context.Context, service *model.Service) error
		Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
		Update(ctx context.Context, service *model.Service) error
		Deactivate(ctx context.Context, id uuid.UUID) error
		ListForBusiness(ctx context.Context, businessID uuid.UUID, activeOnly bool) ([]*model.Service, error)
	}

	HoursRepository interface {
		// ReplaceWeek swaps the full weekly schedule in one transaction,
		// preserving the one-record-per-weekday invariant.
		ReplaceWeek(ctx context.Context, businessID uuid.UUID, days []*model.BusinessHours) error
		GetWeek(ctx context.Context, businessID uuid.UUID) ([]*model.BusinessHours, error)
		// GetForWeekday returns ErrNotFound when no record exists; callers
		// treat a missing record as closed.
		GetForWeekday(ctx context.Context, businessID uuid.UUID, weekday int) (*model.BusinessHours, error)
	}

	AppointmentRepository interface {
		// CreateWithConflictCheck re-validates the interval overlap and
		// inserts inside one serializable transaction. Returns ErrSlotTaken
		// when an active appointment overlaps.
		CreateWithConflictCheck(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		// ListActiveForRange returns pending/confirmed appointments whose
		// interval intersects [from, to).
		ListActiveForRange(ctx context.Context, businessID uuid.UUID, from, to time.Time) ([]*model.Appointment, error)
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
		// UpdateStatusWithPrecondition transitions status only when the
		// current status is one of from. Returns ErrPrecondition otherwise.
		UpdateStatusWithPrecondition(ctx context.Context, id uuid.UUID, from []model.AppointmentStatus, to model.AppointmentStatus) error
		Delete(ctx context.Context, id uuid.UUID) error
		// ListDueReminders returns active appointments starting inside
		// [from, to) that have not been reminded yet.
		ListDueReminders(ctx context.Context, from, to time.Time) ([]*model.Appointment, error)
		// MarkReminderSent sets reminder_sent_at exactly once; returns false
		// when the reminder was already recorded.
		MarkReminderSent(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
		ListCustomers(ctx context.Context, businessID uuid.UUID) ([]*model.Customer, error)
		GetDashboardStats(ctx context.Context, businessID uuid.UUID, now time.Time) (*model.DashboardStats, error)
	}
)
