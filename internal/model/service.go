package model

import (
	"github.com/google/uuid"
)

// Service is something a business offers for booking. Price is stored in the
// minor currency unit. Inactive services are excluded from availability but
// their historical appointments keep the duration copied at booking time.
type Service struct {
	Base
	BusinessID      uuid.UUID `db:"business_id" json:"business_id"`
	Name            string    `db:"name" json:"name"`
	Description     string    `db:"description" json:"description,omitempty"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	Price           int64     `db:"price" json:"price"`
	IsActive        bool      `db:"is_active" json:"is_active"`
}

type CreateServiceRequest struct {
	Name            string `json:"name" binding:"required,min=2,max=120"`
	Description     string `json:"description" binding:"omitempty,max=500"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,gt=0,lte=480"`
	Price           int64  `json:"price" binding:"gte=0"`
}

type UpdateServiceRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=2,max=120"`
	Description     *string `json:"description" binding:"omitempty,max=500"`
	DurationMinutes *int    `json:"duration_minutes" binding:"omitempty,gt=0,lte=480"`
	Price           *int64  `json:"price" binding:"omitempty,gte=0"`
	IsActive        *bool   `json:"is_active"`
}
