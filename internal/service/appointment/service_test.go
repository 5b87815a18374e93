package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnoya/booking-api/internal/model"
	"github.com/turnoya/booking-api/internal/repository/repositorytest"
	apperrors "github.com/turnoya/booking-api/pkg/errors"
)

type recordingNotifier struct {
	mu        sync.Mutex
	cancelled []*model.Appointment
}

func (n *recordingNotifier) BookingCreated(context.Context, *model.Appointment, *model.Business, *model.Service) {
}

func (n *recordingNotifier) AppointmentCancelled(_ context.Context, appointment *model.Appointment, _ *model.Business, _ *model.Service) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelled = append(n.cancelled, appointment)
}

func (n *recordingNotifier) AppointmentReminder(context.Context, *model.Appointment, *model.Business, *model.Service) error {
	return nil
}

type fixture struct {
	svc             *Service
	appointmentRepo *repositorytest.AppointmentRepo
	notifier        *recordingNotifier
	business        *model.Business
	service         *model.Service
}

var testNow = time.Date(2026, 3, 2, 8, 0, 0, 0, time.Local)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	businessRepo := repositorytest.NewBusinessRepo()
	serviceRepo := repositorytest.NewServiceRepo()
	appointmentRepo := repositorytest.NewAppointmentRepo()
	notifier := &recordingNotifier{}

	business := &model.Business{OwnerID: "owner-1", Name: "Cut & Go", Slug: "cut-and-go", IsActive: true}
	require.NoError(t, businessRepo.Create(context.Background(), business))
	service := &model.Service{BusinessID: business.ID, Name: "Haircut", DurationMinutes: 30, IsActive: true}
	require.NoError(t, serviceRepo.Create(context.Background(), service))

	svc := NewService(appointmentRepo, businessRepo, serviceRepo, notifier)
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

func TestConfirm(t *testing.T) {
	f := newFixture(t)
	apt := f.appointment(t, testNow.Add(24*time.Hour), model.AppointmentStatusPending)

	require.NoError(t, f.svc.Confirm(context.Background(), apt.ID))

	stored, err := f.appointmentRepo.Get(context.Background(), apt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusConfirmed, stored.Status)
}

func TestConfirmIsIdempotent(t *testing.T) {
	f := newFixture(t)
	apt := f.appointment(t, testNow.Add(24*time.Hour), model.AppointmentStatusConfirmed)

	assert.NoError(t, f.svc.Confirm(context.Background(), apt.ID))
}

func TestConfirmTerminal(t *testing.T) {
	f := newFixture(t)
	apt := f.appointment(t, testNow.Add(24*time.Hour), model.AppointmentStatusCancelled)

	err := f.svc.Confirm(context.Background(), apt.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindPolicy))
}

func TestCancelWellBeforeStart(t *testing.T) {
	f := newFixture(t)
	apt := f.appointment(t, testNow.Add(3*time.Hour), model.AppointmentStatusConfirmed)

	require.NoError(t, f.svc.Cancel(context.Background(), apt.ID))

	stored, err := f.appointmentRepo.Get(context.Background(), apt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, stored.Status)
	assert.Len(t, f.notifier.cancelled, 1)
}

func TestCancelInsideWindow(t *testing.T) {
	f := newFixture(t)
	apt := f.appointment(t, testNow.Add(time.Hour), model.AppointmentStatusConfirmed)

	err := f.svc.Cancel(context.Background(), apt.ID)
	assert.ErrorIs(t, err, ErrTooLateToCancel)

	stored, getErr := f.appointmentRepo.Get(context.Background(), apt.ID)
	require.NoError(t, getErr)
	assert.Equal(t, model.AppointmentStatusConfirmed, stored.Status)
}

func TestCancelExactlyAtCutoff(t *testing.T) {
	// Exactly 2 hours before the start is still allowed; the window closes
	// strictly after the cutoff instant.
	f := newFixture(t)
	apt := f.appointment(t, testNow.Add(CancellationWindow), model.AppointmentStatusPending)

	assert.NoError(t, f.svc.Cancel(context.Background(), apt.ID))
}

func TestCancelTerminal(t *testing.T) {
	f := newFixture(t)
	apt := f.appointment(t, testNow.Add(24*time.Hour), model.AppointmentStatusCompleted)

	err := f.svc.Cancel(context.Background(), apt.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindPolicy))
}

func TestUpdateStatusOwnerIgnoresCancellationWindow(t *testing.T) {
	// The owner path has no 2-hour restriction.
	f := newFixture(t)
	apt := f.appointment(t, testNow.Add(30*time.Minute), model.AppointmentStatusConfirmed)

	updated, err := f.svc.UpdateStatus(context.Background(), apt.ID, model.AppointmentStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, updated.Status)
	assert.Len(t, f.notifier.cancelled, 1)
}

func TestUpdateStatusComplete(t *testing.T) {
	f := newFixture(t)
	apt := f.appointment(t, testNow.Add(-time.Hour), model.AppointmentStatusConfirmed)

	updated, err := f.svc.UpdateStatus(context.Background(), apt.ID, model.AppointmentStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, updated.Status)
}

func TestUpdateStatusSameStatusNoOp(t *testing.T) {
	f := newFixture(t)
	apt := f.appointment(t, testNow.Add(24*time.Hour), model.AppointmentStatusConfirmed)

	updated, err := f.svc.UpdateStatus(context.Background(), apt.ID, model.AppointmentStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusConfirmed, updated.Status)
}

func TestUpdateStatusRejectsTerminalAndPending(t *testing.T) {
	f := newFixture(t)

	completed := f.appointment(t, testNow.Add(24*time.Hour), model.AppointmentStatusCompleted)
	_, err := f.svc.UpdateStatus(context.Background(), completed.ID, model.AppointmentStatusConfirmed)
	assert.True(t, apperrors.IsKind(err, apperrors.KindPolicy))

	confirmed := f.appointment(t, testNow.Add(48*time.Hour), model.AppointmentStatusConfirmed)
	_, err = f.svc.UpdateStatus(context.Background(), confirmed.ID, model.AppointmentStatusPending)
	assert.True(t, apperrors.IsKind(err, apperrors.KindPolicy))
}

func TestDeleteOnlyCancelled(t *testing.T) {
	f := newFixture(t)

	cancelled := f.appointment(t, testNow.Add(24*time.Hour), model.AppointmentStatusCancelled)
	require.NoError(t, f.svc.Delete(context.Background(), cancelled.ID))
	_, err := f.appointmentRepo.Get(context.Background(), cancelled.ID)
	assert.Error(t, err)

	pending := f.appointment(t, testNow.Add(48*time.Hour), model.AppointmentStatusPending)
	err = f.svc.Delete(context.Background(), pending.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindPolicy))
}

func TestGetUnknownAppointment(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Get(context.Background(), f.business.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
