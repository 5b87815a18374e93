package booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/turnoya/booking-api/internal/handler"
	"github.com/turnoya/booking-api/internal/model"
	appointmentService "github.com/turnoya/booking-api/internal/service/appointment"
	availabilityService "github.com/turnoya/booking-api/internal/service/availability"
	bookingService "github.com/turnoya/booking-api/internal/service/booking"
	apperrors "github.com/turnoya/booking-api/pkg/errors"
)

// Handler serves the public booking surface: availability lookups, booking
// creation, and the confirm/cancel links sent to customers.
type Handler struct {
	availabilitySvc *availabilityService.Service
	bookingSvc      *bookingService.Service
	appointmentSvc  *appointmentService.Service
}

func NewHandler(
	availabilitySvc *availabilityService.Service,
	bookingSvc *bookingService.Service,
	appointmentSvc *appointmentService.Service,
) *Handler {
	return &Handler{
		availabilitySvc: availabilitySvc,
		bookingSvc:      bookingSvc,
		appointmentSvc:  appointmentSvc,
	}
}

func (h *Handler) GetAvailability(c *gin.Context) {
	var req model.AvailabilityRequest
	if err := handler.BindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	businessID, err := uuid.Parse(req.BusinessID)
	if err != nil {
		c.Error(apperrors.Validation("invalid business id"))
		return
	}
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		c.Error(apperrors.Validation("invalid service id"))
		return
	}
	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		c.Error(apperrors.Validation("invalid date"))
		return
	}

	slots, err := h.availabilitySvc.GetAvailableSlots(c.Request.Context(), businessID, serviceID, date)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"available_slots": slots})
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req model.CreateBookingRequest
	if err := handler.BindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	appointment, err := h.bookingSvc.CreateBooking(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(appointment))
}

func (h *Handler) ConfirmAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.Validation("invalid appointment id"))
		return
	}

	if err := h.appointmentSvc.Confirm(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, &handler.Response{Status: "success", Message: "appointment confirmed"})
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.Validation("invalid appointment id"))
		return
	}

	if err := h.appointmentSvc.Cancel(c.Request.Context(), id); err != nil {
		if errors.Is(err, appointmentService.ErrTooLateToCancel) {
			// Distinct outcome so the client can show the "too late" page.
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"outcome": "too_late",
				"message": err.Error(),
			})
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, &handler.Response{Status: "success", Message: "appointment cancelled"})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/booking/availability", h.GetAvailability)
	r.POST("/booking", h.CreateBooking)
	r.POST("/appointments/:id/confirm", h.ConfirmAppointment)
	r.POST("/appointments/:id/cancel", h.CancelAppointment)
}
