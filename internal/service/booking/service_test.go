package booking

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
	created   []*model.Appointment
	cancelled []*model.Appointment
}

func (n *recordingNotifier) BookingCreated(_ context.Context, appointment *model.Appointment, _ *model.Business, _ *model.Service) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, appointment)
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

func newFixture(t *testing.T) *fixture {
	t.Helper()
	businessRepo := repositorytest.NewBusinessRepo()
	serviceRepo := repositorytest.NewServiceRepo()
	appointmentRepo := repositorytest.NewAppointmentRepo()
	notifier := &recordingNotifier{}

	business := &model.Business{OwnerID: "owner-1", Name: "Cut & Go", Slug: "cut-and-go", IsActive: true}
	require.NoError(t, businessRepo.Create(context.Background(), business))
	service := &model.Service{BusinessID: business.ID, Name: "Haircut", DurationMinutes: 45, Price: 2500, IsActive: true}
	require.NoError(t, serviceRepo.Create(context.Background(), service))

	return &fixture{
		svc:             NewService(businessRepo, serviceRepo, appointmentRepo, notifier),
		appointmentRepo: appointmentRepo,
		notifier:        notifier,
		business:        business,
		service:         service,
	}
}

func (f *fixture) request(start time.Time) *model.CreateBookingRequest {
	return &model.CreateBookingRequest{
		BusinessID:      f.business.ID.String(),
		ServiceID:       f.service.ID.String(),
		AppointmentDate: start,
		CustomerName:    "Dana",
		CustomerPhone:   "555-0100",
		CustomerEmail:   "dana@example.com",
	}
}

var testNow = time.Date(2026, 3, 2, 8, 0, 0, 0, time.Local)

func TestCreateBooking(t *testing.T) {
	f := newFixture(t)
	f.svc.now = func() time.Time { return testNow }

	start := testNow.Add(26 * time.Hour)
	appointment, err := f.svc.CreateBooking(context.Background(), f.request(start))
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusPending, appointment.Status)
	assert.Equal(t, f.service.DurationMinutes, appointment.DurationMinutes)
	assert.True(t, appointment.AppointmentDate.Equal(start))
	require.NotNil(t, appointment.CustomerEmail)
	assert.Equal(t, "dana@example.com", *appointment.CustomerEmail)
	assert.Len(t, f.notifier.created, 1)

	stored, err := f.appointmentRepo.Get(context.Background(), appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusPending, stored.Status)
}

func TestCreateBookingDurationSnapshot(t *testing.T) {
	f := newFixture(t)
	f.svc.now = func() time.Time { return testNow }

	appointment, err := f.svc.CreateBooking(context.Background(), f.request(testNow.Add(26*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, 45, appointment.DurationMinutes)

	// Later edits to the service must not move the stored booking.
	f.service.DurationMinutes = 90
	stored, err := f.appointmentRepo.Get(context.Background(), appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, 45, stored.DurationMinutes)
}

func TestCreateBookingConflict(t *testing.T) {
	f := newFixture(t)
	f.svc.now = func() time.Time { return testNow }

	start := testNow.Add(26 * time.Hour)
	_, err := f.svc.CreateBooking(context.Background(), f.request(start))
	require.NoError(t, err)

	// Same slot again, and an overlapping one 30 minutes in.
	_, err = f.svc.CreateBooking(context.Background(), f.request(start))
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	_, err = f.svc.CreateBooking(context.Background(), f.request(start.Add(30*time.Minute)))
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	// Back-to-back is fine.
	_, err = f.svc.CreateBooking(context.Background(), f.request(start.Add(45*time.Minute)))
	assert.NoError(t, err)
}

func TestCreateBookingPastDate(t *testing.T) {
	f := newFixture(t)
	f.svc.now = func() time.Time { return testNow }

	_, err := f.svc.CreateBooking(context.Background(), f.request(testNow.Add(-time.Hour)))
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestCreateBookingBlankContact(t *testing.T) {
	f := newFixture(t)
	f.svc.now = func() time.Time { return testNow }

	req := f.request(testNow.Add(26 * time.Hour))
	req.CustomerName = "   "
	_, err := f.svc.CreateBooking(context.Background(), req)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestCreateBookingOmittedEmail(t *testing.T) {
	f := newFixture(t)
	f.svc.now = func() time.Time { return testNow }

	req := f.request(testNow.Add(26 * time.Hour))
	req.CustomerEmail = ""
	appointment, err := f.svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, appointment.CustomerEmail)
}

func TestCreateBookingInactiveBusiness(t *testing.T) {
	f := newFixture(t)
	f.svc.now = func() time.Time { return testNow }

	f.business.IsActive = false
	require.NoError(t, f.svc.businessRepo.Update(context.Background(), f.business))

	_, err := f.svc.CreateBooking(context.Background(), f.request(testNow.Add(26*time.Hour)))
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestCreateBookingForeignService(t *testing.T) {
	f := newFixture(t)
	f.svc.now = func() time.Time { return testNow }

	other := &model.Business{OwnerID: "owner-2", Name: "Other", Slug: "other", IsActive: true}
	require.NoError(t, f.svc.businessRepo.Create(context.Background(), other))
	foreign := &model.Service{BusinessID: other.ID, Name: "Massage", DurationMinutes: 30, IsActive: true}
	require.NoError(t, f.svc.serviceRepo.Create(context.Background(), foreign))

	req := f.request(testNow.Add(26 * time.Hour))
	req.ServiceID = foreign.ID.String()
	_, err := f.svc.CreateBooking(context.Background(), req)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
