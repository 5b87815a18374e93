package model

import (
	"github.com/google/uuid"
)

// BusinessHours is the open window for one weekday (0=Sunday..6=Saturday).
// At most one record exists per (business, weekday). Either IsClosed is set or
// both OpenTime and CloseTime carry "HH:MM" wall-clock times with open < close.
type BusinessHours struct {
	Base
	BusinessID uuid.UUID `db:"business_id" json:"business_id"`
	Weekday    int       `db:"weekday" json:"weekday"`
	IsClosed   bool      `db:"is_closed" json:"is_closed"`
	OpenTime   *string   `db:"open_time" json:"open_time,omitempty"`
	CloseTime  *string   `db:"close_time" json:"close_time,omitempty"`
}

type DayHoursRequest struct {
	Weekday   int     `json:"weekday" binding:"min=0,max=6"`
	IsClosed  bool    `json:"is_closed"`
	OpenTime  *string `json:"open_time" binding:"omitempty,len=5"`
	CloseTime *string `json:"close_time" binding:"omitempty,len=5"`
}

// SetHoursRequest replaces the full week in one call.
type SetHoursRequest struct {
	Days []DayHoursRequest `json:"days" binding:"required,min=1,max=7,dive"`
}
