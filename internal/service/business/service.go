package business

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/turnoya/booking-api/internal/model"
	"github.com/turnoya/booking-api/internal/repository"
	"github.com/turnoya/booking-api/internal/scheduling"
	apperrors "github.com/turnoya/booking-api/pkg/errors"
)

// Service manages the owner-facing catalog: the business record, its weekly
// hours, its services, and derived dashboard data.
type Service struct {
	businessRepo    repository.BusinessRepository
	serviceRepo     repository.ServiceRepository
	hoursRepo       repository.HoursRepository
	appointmentRepo repository.AppointmentRepository
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
	}
}

func (s *Service) CreateBusiness(ctx context.Context, ownerID string, req *model.CreateBusinessRequest) (*model.Business, error) {
	if _, err := s.businessRepo.GetByOwner(ctx, ownerID); err == nil {
		return nil, apperrors.Conflict("owner already has a business")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing business: %w", err)
	}

	business := &model.Business{
		OwnerID:  ownerID,
		Name:     req.Name,
		Slug:     req.Slug,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		IsActive: true,
	}
	if err := s.businessRepo.Create(ctx, business); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("slug is already taken")
		}
		return nil, fmt.Errorf("failed to create business: %w", err)
	}
	return business, nil
}

func (s *Service) GetCurrentBusiness(ctx context.Context, ownerID string) (*model.Business, error) {
	business, err := s.businessRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("business")
		}
		return nil, fmt.Errorf("failed to get business: %w", err)
	}
	return business, nil
}

func (s *Service) UpdateBusiness(ctx context.Context, ownerID string, id uuid.UUID, req *model.UpdateBusinessRequest) (*model.Business, error) {
	business, err := s.ownedBusiness(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		business.Name = *req.Name
	}
	if req.Email != nil {
		business.Email = *req.Email
	}
	if req.Phone != nil {
		business.Phone = *req.Phone
	}
	if req.Address != nil {
		business.Address = *req.Address
	}
	if req.IsActive != nil {
		business.IsActive = *req.IsActive
	}

	if err := s.businessRepo.Update(ctx, business); err != nil {
		return nil, fmt.Errorf("failed to update business: %w", err)
	}
	return business, nil
}

// SetHours replaces the weekly schedule. Each weekday may appear once; open
// days need open < close.
func (s *Service) SetHours(ctx context.Context, ownerID string, businessID uuid.UUID, req *model.SetHoursRequest) ([]*model.BusinessHours, error) {
	if _, err := s.ownedBusiness(ctx, ownerID, businessID); err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	days := make([]*model.BusinessHours, 0, len(req.Days))
	for _, day := range req.Days {
		if seen[day.Weekday] {
			return nil, apperrors.Validation(fmt.Sprintf("weekday %d appears more than once", day.Weekday))
		}
		seen[day.Weekday] = true

		record := &model.BusinessHours{
			Weekday:  day.Weekday,
			IsClosed: day.IsClosed,
		}
		if !day.IsClosed {
			if day.OpenTime == nil || day.CloseTime == nil {
				return nil, apperrors.Validation(fmt.Sprintf("weekday %d needs open and close times", day.Weekday))
			}
			open, err := scheduling.ParseTimeOfDay(*day.OpenTime)
			if err != nil {
				return nil, apperrors.Validation(fmt.Sprintf("weekday %d has an invalid open time", day.Weekday))
			}
			close, err := scheduling.ParseTimeOfDay(*day.CloseTime)
			if err != nil {
				return nil, apperrors.Validation(fmt.Sprintf("weekday %d has an invalid close time", day.Weekday))
			}
			if open >= close {
				return nil, apperrors.Validation(fmt.Sprintf("weekday %d must open before it closes", day.Weekday))
			}
			record.OpenTime = day.OpenTime
			record.CloseTime = day.CloseTime
		}
		days = append(days, record)
	}

	if err := s.hoursRepo.ReplaceWeek(ctx, businessID, days); err != nil {
		return nil, fmt.Errorf("failed to replace weekly hours: %w", err)
	}
	return days, nil
}

func (s *Service) GetHours(ctx context.Context, businessID uuid.UUID) ([]*model.BusinessHours, error) {
	hours, err := s.hoursRepo.GetWeek(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly hours: %w", err)
	}
	return hours, nil
}

func (s *Service) CreateService(ctx context.Context, ownerID string, businessID uuid.UUID, req *model.CreateServiceRequest) (*model.Service, error) {
	if _, err := s.ownedBusiness(ctx, ownerID, businessID); err != nil {
		return nil, err
	}

	service := &model.Service{
		BusinessID:      businessID,
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		IsActive:        true,
	}
	if err := s.serviceRepo.Create(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return service, nil
}

func (s *Service) ListServices(ctx context.Context, businessID uuid.UUID, activeOnly bool) ([]*model.Service, error) {
	services, err := s.serviceRepo.ListForBusiness(ctx, businessID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (s *Service) UpdateService(ctx context.Context, ownerID string, serviceID uuid.UUID, req *model.UpdateServiceRequest) (*model.Service, error) {
	service, err := s.ownedService(ctx, ownerID, serviceID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := s.serviceRepo.Update(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return service, nil
}

// DeactivateService soft-deletes; appointments booked against the service
// keep their copied duration.
func (s *Service) DeactivateService(ctx context.Context, ownerID string, serviceID uuid.UUID) error {
	if _, err := s.ownedService(ctx, ownerID, serviceID); err != nil {
		return err
	}
	if err := s.serviceRepo.Deactivate(ctx, serviceID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("service")
		}
		return fmt.Errorf("failed to deactivate service: %w", err)
	}
	return nil
}

func (s *Service) ListCustomers(ctx context.Context, ownerID string, businessID uuid.UUID) ([]*model.Customer, error) {
	if _, err := s.ownedBusiness(ctx, ownerID, businessID); err != nil {
		return nil, err
	}
	customers, err := s.appointmentRepo.ListCustomers(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

func (s *Service) GetDashboardStats(ctx context.Context, ownerID string) (*model.DashboardStats, error) {
	business, err := s.GetCurrentBusiness(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	stats, err := s.appointmentRepo.GetDashboardStats(ctx, business.ID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard stats: %w", err)
	}
	return stats, nil
}

func (s *Service) ownedBusiness(ctx context.Context, ownerID string, id uuid.UUID) (*model.Business, error) {
	business, err := s.businessRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("business")
		}
		return nil, fmt.Errorf("failed to get business: %w", err)
	}
	if business.OwnerID != ownerID {
		return nil, apperrors.NotFound("business")
	}
	return business, nil
}

func (s *Service) ownedService(ctx context.Context, ownerID string, serviceID uuid.UUID) (*model.Service, error) {
	service, err := s.serviceRepo.Get(ctx, serviceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("service")
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	if _, err := s.ownedBusiness(ctx, ownerID, service.BusinessID); err != nil {
		return nil, err
	}
	return service, nil
}
