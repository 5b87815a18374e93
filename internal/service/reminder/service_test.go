package reminder

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnoya/booking-api/internal/model"
	"github.com/turnoya/booking-api/internal/repository/repositorytest"
	"github.com/turnoya/booking-api/pkg/logger"
)

type stubNotifier struct {
	mu       sync.Mutex
	reminded []uuid.UUID
	failFor  map[uuid.UUID]bool
}

func (n *stubNotifier) BookingCreated(context.Context, *model.Appointment, *model.Business, *model.Service) {
}

func (n *stubNotifier) AppointmentCancelled(context.Context, *model.Appointment, *model.Business, *model.Service) {
}

func (n *stubNotifier) AppointmentReminder(_ context.Context, appointment *model.Appointment, _ *model.Business, _ *model.Service) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failFor[appointment.ID] {
		return errors.New("smtp unavailable")
	}
	n.reminded = append(n.reminded, appointment.ID)
	return nil
}

type fixture struct {
	svc             *Service
	appointmentRepo *repositorytest.AppointmentRepo
	notifier        *stubNotifier
	business        *model.Business
	service         *model.Service
}

var testNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	businessRepo := repositorytest.NewBusinessRepo()
	serviceRepo := repositorytest.NewServiceRepo()
	appointmentRepo := repositorytest.NewAppointmentRepo()
	notifier := &stubNotifier{failFor: make(map[uuid.UUID]bool)}

	business := &model.Business{OwnerID: "owner-1", Name: "Cut & Go", Slug: "cut-and-go", IsActive: true}
	require.NoError(t, businessRepo.Create(context.Background(), business))
	service := &model.Service{BusinessID: business.ID, Name: "Haircut", DurationMinutes: 30, IsActive: true}
	require.NoError(t, serviceRepo.Create(context.Background(), service))

	log := logger.NewLogger(&logger.Config{
		Level:      logger.ErrorLevel,
		TimeFormat: time.RFC3339,
		Output:     io.Discard,
	})

	svc := NewService(appointmentRepo, businessRepo, serviceRepo, notifier, log)
	svc.now = func() time.Time { return testNow }

	return &fixture{
		svc:             svc,
		appointmentRepo: appointmentRepo,
		notifier:        notifier,
		business:        business,
		service:         service,
	}
}

func (f *fixture) appointment(t *testing.T, start time.Time, status model.AppointmentStatus) *model.Appointment {
	t.Helper()
	appointment := &model.Appointment{
		BusinessID:      f.business.ID,
		ServiceID:       f.service.ID,
		CustomerName:    "Dana",
		CustomerPhone:   "555-0100",
		AppointmentDate: start,
		DurationMinutes: 30,
		Status:          status,
	}
	require.NoError(t, f.appointmentRepo.CreateWithConflictCheck(context.Background(), appointment))
	return appointment
}

func tomorrowAt(hour int) time.Time {
	return time.Date(2026, 3, 3, hour, 0, 0, 0, time.Local)
}

func TestDispatchReminders(t *testing.T) {
	f := newFixture(t)
	due := f.appointment(t, tomorrowAt(10), model.AppointmentStatusConfirmed)
	f.appointment(t, tomorrowAt(14), model.AppointmentStatusPending)
	f.appointment(t, testNow.Add(2*time.Hour), model.AppointmentStatusConfirmed)   // today, not due
	f.appointment(t, tomorrowAt(16).AddDate(0, 0, 1), model.AppointmentStatusConfirmed) // day after

	result, err := f.svc.DispatchReminders(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Eligible)
	assert.Equal(t, 2, result.Sent)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 0, result.Failed)

	stored, err := f.appointmentRepo.Get(context.Background(), due.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.ReminderSentAt)
}

func TestDispatchRemindersSecondRunIsNoOp(t *testing.T) {
	f := newFixture(t)
	f.appointment(t, tomorrowAt(10), model.AppointmentStatusConfirmed)

	first, err := f.svc.DispatchReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Sent)

	second, err := f.svc.DispatchReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Eligible)
	assert.Equal(t, 0, second.Sent)
	assert.Len(t, f.notifier.reminded, 1)
}

func TestDispatchRemindersSkipsCancelled(t *testing.T) {
	f := newFixture(t)
	f.appointment(t, tomorrowAt(10), model.AppointmentStatusCancelled)

	result, err := f.svc.DispatchReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Eligible)
}

func TestDispatchRemindersFailureIsolation(t *testing.T) {
	// A failing send claims the reminder but must not stop the rest of the run.
	f := newFixture(t)
	failing := f.appointment(t, tomorrowAt(10), model.AppointmentStatusConfirmed)
	healthy := f.appointment(t, tomorrowAt(11), model.AppointmentStatusConfirmed)
	f.notifier.failFor[failing.ID] = true

	result, err := f.svc.DispatchReminders(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Eligible)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, []uuid.UUID{healthy.ID}, f.notifier.reminded)

	// The claim stands, so the failed reminder is not retried next run.
	second, err := f.svc.DispatchReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Eligible)
}

func TestDispatchRemindersSkipsAlreadyClaimed(t *testing.T) {
	f := newFixture(t)
	apt := f.appointment(t, tomorrowAt(10), model.AppointmentStatusConfirmed)

	// An earlier run already recorded the reminder.
	claimed, err := f.appointmentRepo.MarkReminderSent(context.Background(), apt.ID, testNow)
	require.NoError(t, err)
	require.True(t, claimed)

	result, err := f.svc.DispatchReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Eligible)
	assert.Empty(t, f.notifier.reminded)
}
