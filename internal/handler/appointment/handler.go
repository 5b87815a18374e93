package appointment

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/turnoya/booking-api/internal/handler"
	"github.com/turnoya/booking-api/internal/middleware"
	"github.com/turnoya/booking-api/internal/model"
	appointmentService "github.com/turnoya/booking-api/internal/service/appointment"
	businessService "github.com/turnoya/booking-api/internal/service/business"
	apperrors "github.com/turnoya/booking-api/pkg/errors"
)

// Handler serves the owner-facing appointment operations.
type Handler struct {
	appointmentSvc *appointmentService.Service
	businessSvc    *businessService.Service
}

func NewHandler(appointmentSvc *appointmentService.Service, businessSvc *businessService.Service) *Handler {
	return &Handler{
		appointmentSvc: appointmentSvc,
		businessSvc:    businessSvc,
	}
}

func (h *Handler) ListAppointments(c *gin.Context) {
	business, err := h.businessSvc.GetCurrentBusiness(c.Request.Context(), c.GetString(middleware.ContextOwnerID))
	if err != nil {
		c.Error(err)
		return
	}

	filters := &model.AppointmentFilters{BusinessID: business.ID}

	if status := c.Query("status"); status != "" {
		filters.Status = model.AppointmentStatus(status)
	}
	if date := c.Query("start_date"); date != "" {
		start, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			c.Error(apperrors.Validation("invalid start_date"))
			return
		}
		filters.StartDate = start
	}
	if date := c.Query("end_date"); date != "" {
		end, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			c.Error(apperrors.Validation("invalid end_date"))
			return
		}
		filters.EndDate = end.AddDate(0, 0, 1)
	}

	appointments, err := h.appointmentSvc.List(c.Request.Context(), filters)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

func (h *Handler) UpdateAppointmentStatus(c *gin.Context) {
	appointment, err := h.ownedAppointment(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req model.UpdateAppointmentStatusRequest
	if err := handler.BindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	updated, err := h.appointmentSvc.UpdateStatus(c.Request.Context(), appointment.ID, req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	appointment, err := h.ownedAppointment(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.appointmentSvc.Delete(c.Request.Context(), appointment.ID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, &handler.Response{Status: "success"})
}

func (h *Handler) GetDashboardStats(c *gin.Context) {
	stats, err := h.businessSvc.GetDashboardStats(c.Request.Context(), c.GetString(middleware.ContextOwnerID))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(stats))
}

func (h *Handler) GetDashboardAppointments(c *gin.Context) {
	business, err := h.businessSvc.GetCurrentBusiness(c.Request.Context(), c.GetString(middleware.ContextOwnerID))
	if err != nil {
		c.Error(err)
		return
	}

	day := time.Now()
	if date := c.Query("date"); date != "" {
		day, err = time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			c.Error(apperrors.Validation("invalid date"))
			return
		}
	}
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	appointments, err := h.appointmentSvc.List(c.Request.Context(), &model.AppointmentFilters{
		BusinessID: business.ID,
		StartDate:  dayStart,
		EndDate:    dayStart.AddDate(0, 0, 1),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

// ownedAppointment loads the path appointment and checks it belongs to the
// caller's business; foreign appointments read as not found.
func (h *Handler) ownedAppointment(c *gin.Context) (*model.Appointment, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, apperrors.Validation("invalid appointment id")
	}

	appointment, err := h.appointmentSvc.Get(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}

	business, err := h.businessSvc.GetCurrentBusiness(c.Request.Context(), c.GetString(middleware.ContextOwnerID))
	if err != nil {
		return nil, err
	}
	if appointment.BusinessID != business.ID {
		return nil, apperrors.NotFound("appointment")
	}
	return appointment, nil
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/appointments", h.ListAppointments)
	r.PATCH("/appointments/:id", h.UpdateAppointmentStatus)
	r.DELETE("/appointments/:id", h.DeleteAppointment)
	r.GET("/dashboard/stats", h.GetDashboardStats)
	r.GET("/dashboard/appointments", h.GetDashboardAppointments)
}
