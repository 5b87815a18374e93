// Package repositorytest provides in-memory repository implementations for
// service-layer tests.
package repositorytest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/turnoya/booking-api/internal/model"
	"github.com/turnoya/booking-api/internal/repository"
)

type BusinessRepo struct {
	mu         sync.Mutex
	businesses map[uuid.UUID]*model.Business
}

func NewBusinessRepo() *BusinessRepo {
	return &BusinessRepo{businesses: make(map[uuid.UUID]*model.Business)}
}

func (r *BusinessRepo) Create(_ context.Context, business *model.Business) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.businesses {
		if b.Slug == business.Slug {
			return repository.ErrDuplicate
		}
	}
	if business.ID == uuid.Nil {
		business.ID = uuid.New()
	}
	business.CreatedAt = time.Now()
	business.UpdatedAt = business.CreatedAt
	copied := *business
	r.businesses[business.ID] = &copied
	return nil
}

func (r *BusinessRepo) Get(_ context.Context, id uuid.UUID) (*model.Business, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	business, ok := r.businesses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *business
	return &copied, nil
}

func (r *BusinessRepo) GetByOwner(_ context.Context, ownerID string) (*model.Business, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.businesses {
		if b.OwnerID == ownerID {
			copied := *b
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *BusinessRepo) GetBySlug(_ context.Context, slug string) (*model.Business, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.businesses {
		if b.Slug == slug {
			copied := *b
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *BusinessRepo) Update(_ context.Context, business *model.Business) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.businesses[business.ID]; !ok {
		return repository.ErrNotFound
	}
	business.UpdatedAt = time.Now()
	copied := *business
	r.businesses[business.ID] = &copied
	return nil
}

type ServiceRepo struct {
	mu       sync.Mutex
	services map[uuid.UUID]*model.Service
}

func NewServiceRepo() *ServiceRepo {
	return &ServiceRepo{services: make(map[uuid.UUID]*model.Service)}
}

func (r *ServiceRepo) Create(_ context.Context, service *model.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if service.ID == uuid.Nil {
		service.ID = uuid.New()
	}
	service.CreatedAt = time.Now()
	service.UpdatedAt = service.CreatedAt
	copied := *service
	r.services[service.ID] = &copied
	return nil
}

func (r *ServiceRepo) Get(_ context.Context, id uuid.UUID) (*model.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	service, ok := r.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *service
	return &copied, nil
}

func (r *ServiceRepo) Update(_ context.Context, service *model.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.services[service.ID]; !ok {
		return repository.ErrNotFound
	}
	service.UpdatedAt = time.Now()
	copied := *service
	r.services[service.ID] = &copied
	return nil
}

func (r *ServiceRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	service, ok := r.services[id]
	if !ok {
		return repository.ErrNotFound
	}
	service.IsActive = false
	return nil
}

func (r *ServiceRepo) ListForBusiness(_ context.Context, businessID uuid.UUID, activeOnly bool) ([]*model.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.Service
	for _, s := range r.services {
		if s.BusinessID != businessID {
			continue
		}
		if activeOnly && !s.IsActive {
			continue
		}
		copied := *s
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type HoursRepo struct {
	mu    sync.Mutex
	weeks map[uuid.UUID]map[int]*model.BusinessHours
}

func NewHoursRepo() *HoursRepo {
	return &HoursRepo{weeks: make(map[uuid.UUID]map[int]*model.BusinessHours)}
}

func (r *HoursRepo) ReplaceWeek(_ context.Context, businessID uuid.UUID, days []*model.BusinessHours) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	week := make(map[int]*model.BusinessHours, len(days))
	for _, day := range days {
		if day.ID == uuid.Nil {
			day.ID = uuid.New()
		}
		day.BusinessID = businessID
		copied := *day
		week[day.Weekday] = &copied
	}
	r.weeks[businessID] = week
	return nil
}

func (r *HoursRepo) GetWeek(_ context.Context, businessID uuid.UUID) ([]*model.BusinessHours, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.BusinessHours
	for _, day := range r.weeks[businessID] {
		copied := *day
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Weekday < out[j].Weekday })
	return out, nil
}

func (r *HoursRepo) GetForWeekday(_ context.Context, businessID uuid.UUID, weekday int) (*model.BusinessHours, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	day, ok := r.weeks[businessID][weekday]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *day
	return &copied, nil
}

type AppointmentRepo struct {
	mu           sync.Mutex
	appointments map[uuid.UUID]*model.Appointment
}

func NewAppointmentRepo() *AppointmentRepo {
	return &AppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (r *AppointmentRepo) CreateWithConflictCheck(_ context.Context, appointment *model.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	end := appointment.AppointmentDate.Add(time.Duration(appointment.DurationMinutes) * time.Minute)
	for _, apt := range r.appointments {
		if apt.BusinessID != appointment.BusinessID || !apt.IsActive() {
			continue
		}
		if appointment.AppointmentDate.Before(apt.EndTime()) && end.After(apt.AppointmentDate) {
			return repository.ErrSlotTaken
		}
	}

	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = appointment.CreatedAt
	copied := *appointment
	r.appointments[appointment.ID] = &copied
	return nil
}

func (r *AppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	apt, ok := r.appointments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *apt
	return &copied, nil
}

func (r *AppointmentRepo) ListActiveForRange(_ context.Context, businessID uuid.UUID, from, to time.Time) ([]*model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.Appointment
	for _, apt := range r.appointments {
		if apt.BusinessID != businessID || !apt.IsActive() {
			continue
		}
		if apt.AppointmentDate.Before(to) && apt.EndTime().After(from) {
			copied := *apt
			out = append(out, &copied)
		}
	}
	sortByDate(out)
	return out, nil
}

func (r *AppointmentRepo) List(_ context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.Appointment
	for _, apt := range r.appointments {
		if apt.BusinessID != filters.BusinessID {
			continue
		}
		if filters.Status != "" && apt.Status != filters.Status {
			continue
		}
		if !filters.StartDate.IsZero() && apt.AppointmentDate.Before(filters.StartDate) {
			continue
		}
		if !filters.EndDate.IsZero() && !apt.AppointmentDate.Before(filters.EndDate) {
			continue
		}
		copied := *apt
		out = append(out, &copied)
	}
	sortByDate(out)
	return out, nil
}

func (r *AppointmentRepo) UpdateStatusWithPrecondition(_ context.Context, id uuid.UUID, from []model.AppointmentStatus, to model.AppointmentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	apt, ok := r.appointments[id]
	if !ok {
		return repository.ErrNotFound
	}
	for _, status := range from {
		if apt.Status == status {
			apt.Status = to
			apt.UpdatedAt = time.Now()
			return nil
		}
	}
	return repository.ErrPrecondition
}

func (r *AppointmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appointments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.appointments, id)
	return nil
}

func (r *AppointmentRepo) ListDueReminders(_ context.Context, from, to time.Time) ([]*model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.Appointment
	for _, apt := range r.appointments {
		if !apt.IsActive() || apt.ReminderSentAt != nil {
			continue
		}
		if !apt.AppointmentDate.Before(from) && apt.AppointmentDate.Before(to) {
			copied := *apt
			out = append(out, &copied)
		}
	}
	sortByDate(out)
	return out, nil
}

func (r *AppointmentRepo) MarkReminderSent(_ context.Context, id uuid.UUID, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	apt, ok := r.appointments[id]
	if !ok {
		return false, repository.ErrNotFound
	}
	if apt.ReminderSentAt != nil {
		return false, nil
	}
	sentAt := at
	apt.ReminderSentAt = &sentAt
	return true, nil
}

func (r *AppointmentRepo) ListCustomers(_ context.Context, businessID uuid.UUID) ([]*model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byKey := make(map[string]*model.Customer)
	for _, apt := range r.appointments {
		if apt.BusinessID != businessID {
			continue
		}
		key := apt.CustomerName + "|" + apt.CustomerPhone
		customer, ok := byKey[key]
		if !ok {
			customer = &model.Customer{Name: apt.CustomerName, Phone: apt.CustomerPhone, Email: apt.CustomerEmail}
			byKey[key] = customer
		}
		customer.TotalAppointments++
	}

	out := make([]*model.Customer, 0, len(byKey))
	for _, c := range byKey {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *AppointmentRepo) GetDashboardStats(_ context.Context, businessID uuid.UUID, now time.Time) (*model.DashboardStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	stats := &model.DashboardStats{}
	for _, apt := range r.appointments {
		if apt.BusinessID != businessID {
			continue
		}
		if apt.IsActive() && !apt.AppointmentDate.Before(dayStart) && apt.AppointmentDate.Before(dayEnd) {
			stats.TodayAppointments++
		}
		if apt.IsActive() && apt.AppointmentDate.After(now) {
			stats.UpcomingAppointments++
		}
		if apt.Status == model.AppointmentStatusCompleted &&
			apt.AppointmentDate.Year() == now.Year() && apt.AppointmentDate.Month() == now.Month() {
			stats.CompletedThisMonth++
		}
	}
	return stats, nil
}

func sortByDate(appointments []*model.Appointment) {
	sort.Slice(appointments, func(i, j int) bool {
		return appointments[i].AppointmentDate.Before(appointments[j].AppointmentDate)
	})
}
