package business

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnoya/booking-api/internal/model"
	"github.com/turnoya/booking-api/internal/repository/repositorytest"
	apperrors "github.com/turnoya/booking-api/pkg/errors"
)

type fixture struct {
	svc          *Service
	businessRepo *repositorytest.BusinessRepo
	serviceRepo  *repositorytest.ServiceRepo
	hoursRepo    *repositorytest.HoursRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		businessRepo: repositorytest.NewBusinessRepo(),
		serviceRepo:  repositorytest.NewServiceRepo(),
		hoursRepo:    repositorytest.NewHoursRepo(),
	}
	f.svc = NewService(f.businessRepo, f.serviceRepo, f.hoursRepo, repositorytest.NewAppointmentRepo())
	return f
}

func (f *fixture) createBusiness(t *testing.T, ownerID string) *model.Business {
	t.Helper()
	business, err := f.svc.CreateBusiness(context.Background(), ownerID, &model.CreateBusinessRequest{
		Name: "Cut & Go",
		Slug: "cut-and-go-" + ownerID,
	})
	require.NoError(t, err)
	return business
}

func strPtr(s string) *string { return &s }

func TestCreateBusiness(t *testing.T) {
	f := newFixture(t)

	business, err := f.svc.CreateBusiness(context.Background(), "owner-1", &model.CreateBusinessRequest{
		Name: "Cut & Go",
		Slug: "cut-and-go",
	})
	require.NoError(t, err)
	assert.True(t, business.IsActive)
	assert.Equal(t, "owner-1", business.OwnerID)
}

func TestCreateBusinessOnePerOwner(t *testing.T) {
	f := newFixture(t)
	f.createBusiness(t, "owner-1")

	_, err := f.svc.CreateBusiness(context.Background(), "owner-1", &model.CreateBusinessRequest{
		Name: "Second Shop",
		Slug: "second-shop",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestCreateBusinessDuplicateSlug(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreateBusiness(context.Background(), "owner-1", &model.CreateBusinessRequest{
		Name: "Cut & Go", Slug: "cut-and-go",
	})
	require.NoError(t, err)

	_, err = f.svc.CreateBusiness(context.Background(), "owner-2", &model.CreateBusinessRequest{
		Name: "Copy Cat", Slug: "cut-and-go",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestUpdateBusinessForeignOwner(t *testing.T) {
	f := newFixture(t)
	business := f.createBusiness(t, "owner-1")

	_, err := f.svc.UpdateBusiness(context.Background(), "owner-2", business.ID, &model.UpdateBusinessRequest{
		Name: strPtr("Taken Over"),
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestSetHours(t *testing.T) {
	f := newFixture(t)
	business := f.createBusiness(t, "owner-1")

	days, err := f.svc.SetHours(context.Background(), "owner-1", business.ID, &model.SetHoursRequest{
		Days: []model.DayHoursRequest{
			{Weekday: 1, OpenTime: strPtr("09:00"), CloseTime: strPtr("17:00")},
			{Weekday: 0, IsClosed: true},
		},
	})
	require.NoError(t, err)
	assert.Len(t, days, 2)

	stored, err := f.hoursRepo.GetForWeekday(context.Background(), business.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "09:00", *stored.OpenTime)
}

func TestSetHoursReplacesWeek(t *testing.T) {
	f := newFixture(t)
	business := f.createBusiness(t, "owner-1")

	_, err := f.svc.SetHours(context.Background(), "owner-1", business.ID, &model.SetHoursRequest{
		Days: []model.DayHoursRequest{{Weekday: 1, OpenTime: strPtr("09:00"), CloseTime: strPtr("17:00")}},
	})
	require.NoError(t, err)

	_, err = f.svc.SetHours(context.Background(), "owner-1", business.ID, &model.SetHoursRequest{
		Days: []model.DayHoursRequest{{Weekday: 2, OpenTime: strPtr("10:00"), CloseTime: strPtr("16:00")}},
	})
	require.NoError(t, err)

	_, err = f.hoursRepo.GetForWeekday(context.Background(), business.ID, 1)
	assert.Error(t, err)
}

func TestSetHoursRejectsDuplicateWeekday(t *testing.T) {
	f := newFixture(t)
	business := f.createBusiness(t, "owner-1")

	_, err := f.svc.SetHours(context.Background(), "owner-1", business.ID, &model.SetHoursRequest{
		Days: []model.DayHoursRequest{
			{Weekday: 1, OpenTime: strPtr("09:00"), CloseTime: strPtr("17:00")},
			{Weekday: 1, IsClosed: true},
		},
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestSetHoursRejectsInvertedWindow(t *testing.T) {
	f := newFixture(t)
	business := f.createBusiness(t, "owner-1")

	_, err := f.svc.SetHours(context.Background(), "owner-1", business.ID, &model.SetHoursRequest{
		Days: []model.DayHoursRequest{{Weekday: 1, OpenTime: strPtr("17:00"), CloseTime: strPtr("09:00")}},
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestSetHoursOpenDayNeedsTimes(t *testing.T) {
	f := newFixture(t)
	business := f.createBusiness(t, "owner-1")

	_, err := f.svc.SetHours(context.Background(), "owner-1", business.ID, &model.SetHoursRequest{
		Days: []model.DayHoursRequest{{Weekday: 1}},
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestDeactivateService(t *testing.T) {
	f := newFixture(t)
	business := f.createBusiness(t, "owner-1")

	service, err := f.svc.CreateService(context.Background(), "owner-1", business.ID, &model.CreateServiceRequest{
		Name: "Haircut", DurationMinutes: 30, Price: 2500,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeactivateService(context.Background(), "owner-1", service.ID))

	active, err := f.svc.ListServices(context.Background(), business.ID, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := f.svc.ListServices(context.Background(), business.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDeactivateServiceForeignOwner(t *testing.T) {
	f := newFixture(t)
	business := f.createBusiness(t, "owner-1")
	f.createBusiness(t, "owner-2")

	service, err := f.svc.CreateService(context.Background(), "owner-1", business.ID, &model.CreateServiceRequest{
		Name: "Haircut", DurationMinutes: 30,
	})
	require.NoError(t, err)

	err = f.svc.DeactivateService(context.Background(), "owner-2", service.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
