package business

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/turnoya/booking-api/internal/handler"
	"github.com/turnoya/booking-api/internal/middleware"
	"github.com/turnoya/booking-api/internal/model"
	businessService "github.com/turnoya/booking-api/internal/service/business"
	apperrors "github.com/turnoya/booking-api/pkg/errors"
)

// Handler serves the owner catalog: business record, weekly hours, services
// and the customer directory.
type Handler struct {
	businessSvc *businessService.Service
}

func NewHandler(businessSvc *businessService.Service) *Handler {
	return &Handler{businessSvc: businessSvc}
}

func (h *Handler) CreateBusiness(c *gin.Context) {
	var req model.CreateBusinessRequest
	if err := handler.BindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	business, err := h.businessSvc.CreateBusiness(c.Request.Context(), c.GetString(middleware.ContextOwnerID), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(business))
}

func (h *Handler) GetCurrentBusiness(c *gin.Context) {
	business, err := h.businessSvc.GetCurrentBusiness(c.Request.Context(), c.GetString(middleware.ContextOwnerID))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(business))
}

func (h *Handler) UpdateBusiness(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.Validation("invalid business id"))
		return
	}

	var req model.UpdateBusinessRequest
	if err := handler.BindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	business, err := h.businessSvc.UpdateBusiness(c.Request.Context(), c.GetString(middleware.ContextOwnerID), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(business))
}

func (h *Handler) SetHours(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.Validation("invalid business id"))
		return
	}

	var req model.SetHoursRequest
	if err := handler.BindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	hours, err := h.businessSvc.SetHours(c.Request.Context(), c.GetString(middleware.ContextOwnerID), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(hours))
}

func (h *Handler) GetHours(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.Validation("invalid business id"))
		return
	}

	hours, err := h.businessSvc.GetHours(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(hours))
}

func (h *Handler) CreateService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.Validation("invalid business id"))
		return
	}

	var req model.CreateServiceRequest
	if err := handler.BindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	service, err := h.businessSvc.CreateService(c.Request.Context(), c.GetString(middleware.ContextOwnerID), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(service))
}

// ListServices is public so the booking page can render the catalog; only
// active services are returned there.
func (h *Handler) ListServices(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.Validation("invalid business id"))
		return
	}

	services, err := h.businessSvc.ListServices(c.Request.Context(), id, true)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(services))
}

func (h *Handler) UpdateService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.Validation("invalid service id"))
		return
	}

	var req model.UpdateServiceRequest
	if err := handler.BindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	service, err := h.businessSvc.UpdateService(c.Request.Context(), c.GetString(middleware.ContextOwnerID), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(service))
}

func (h *Handler) DeleteService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.Validation("invalid service id"))
		return
	}

	if err := h.businessSvc.DeactivateService(c.Request.Context(), c.GetString(middleware.ContextOwnerID), id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, &handler.Response{Status: "success"})
}

func (h *Handler) ListCustomers(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.Validation("invalid business id"))
		return
	}

	customers, err := h.businessSvc.ListCustomers(c.Request.Context(), c.GetString(middleware.ContextOwnerID), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(customers))
}

// RegisterRoutes wires the authenticated owner surface.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/businesses", h.CreateBusiness)
	r.GET("/businesses/current", h.GetCurrentBusiness)
	r.PUT("/businesses/:id", h.UpdateBusiness)
	r.GET("/businesses/:id/hours", h.GetHours)
	r.PUT("/businesses/:id/hours", h.SetHours)
	r.POST("/businesses/:id/services", h.CreateService)
	r.PUT("/services/:id", h.UpdateService)
	r.DELETE("/services/:id", h.DeleteService)
	r.GET("/businesses/:id/customers", h.ListCustomers)
}

// RegisterPublicRoutes wires what the booking page reads without auth.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/businesses/:id/services", h.ListServices)
}
