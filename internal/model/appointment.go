package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// IsTerminal reports whether no further transition is permitted.
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCancelled || s == AppointmentStatusCompleted
}

// Appointment occupies [AppointmentDate, AppointmentDate + DurationMinutes).
// DurationMinutes is copied from the service at booking time so later service
// edits never change historical appointments.
type Appointment struct {
	Base
	BusinessID      uuid.UUID         `db:"business_id" json:"business_id"`
	ServiceID       uuid.UUID         `db:"service_id" json:"service_id"`
	CustomerName    string            `db:"customer_name" json:"customer_name"`
	CustomerPhone   string            `db:"customer_phone" json:"customer_phone"`
	CustomerEmail   *string           `db:"customer_email" json:"customer_email,omitempty"`
	AppointmentDate time.Time         `db:"appointment_date" json:"appointment_date"`
	DurationMinutes int               `db:"duration_minutes" json:"duration_minutes"`
	Status          AppointmentStatus `db:"status" json:"status"`
	Notes           string            `db:"notes" json:"notes,omitempty"`
	ReminderSentAt  *time.Time        `db:"reminder_sent_at" json:"reminder_sent_at,omitempty"`
}

// EndTime is the exclusive end of the occupied interval.
func (a *Appointment) EndTime() time.Time {
	return a.AppointmentDate.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// IsActive reports whether the appointment still blocks its time slot.
func (a *Appointment) IsActive() bool {
	return a.Status == AppointmentStatusPending || a.Status == AppointmentStatusConfirmed
}

type CreateBookingRequest struct {
	BusinessID      string    `json:"business_id" binding:"required,uuid"`
	ServiceID       string    `json:"service_id" binding:"required,uuid"`
	AppointmentDate time.Time `json:"appointment_date" binding:"required"`
	CustomerName    string    `json:"customer_name" binding:"required,min=2,max=120"`
	CustomerPhone   string    `json:"customer_phone" binding:"required,min=6,max=30"`
	CustomerEmail   string    `json:"customer_email" binding:"omitempty,email"`
	Notes           string    `json:"notes" binding:"omitempty,max=1000"`
}

type AvailabilityRequest struct {
	BusinessID string `json:"business_id" binding:"required,uuid"`
	ServiceID  string `json:"service_id" binding:"required,uuid"`
	Date       string `json:"date" binding:"required,datetime=2006-01-02"`
}

// SlotAvailability is one candidate start time of the requested day.
type SlotAvailability struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type UpdateAppointmentStatusRequest struct {
	Status AppointmentStatus `json:"status" binding:"required,oneof=pending confirmed cancelled completed"`
}

type AppointmentFilters struct {
	BusinessID uuid.UUID
	Status     AppointmentStatus
	StartDate  time.Time
	EndDate    time.Time
}
