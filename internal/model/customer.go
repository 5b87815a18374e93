package model

import (
	"time"
)

// Customer is a directory row derived from appointment contact fields; the
// system has no customer accounts.
type Customer struct {
	Name              string     `db:"customer_name" json:"name"`
	Phone             string     `db:"customer_phone" json:"phone"`
	Email             *string    `db:"customer_email" json:"email,omitempty"`
	TotalAppointments int        `db:"total_appointments" json:"total_appointments"`
	LastVisit         *time.Time `db:"last_visit" json:"last_visit,omitempty"`
}

// DashboardStats summarizes a business for the owner dashboard.
type DashboardStats struct {
	TodayAppointments    int   `db:"today_appointments" json:"today_appointments"`
	UpcomingAppointments int   `db:"upcoming_appointments" json:"upcoming_appointments"`
	CompletedThisMonth   int   `db:"completed_this_month" json:"completed_this_month"`
	RevenueThisMonth     int64 `db:"revenue_this_month" json:"revenue_this_month"`
}
