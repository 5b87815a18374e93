package jobs

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turnoya/booking-api/internal/handler"
	reminderService "github.com/turnoya/booking-api/internal/service/reminder"
)

// Handler exposes the reminder dispatch as an HTTP trigger for external
// schedulers, guarded by a shared secret.
type Handler struct {
	reminderSvc *reminderService.Service
	cronSecret  string
}

func NewHandler(reminderSvc *reminderService.Service, cronSecret string) *Handler {
	return &Handler{
		reminderSvc: reminderSvc,
		cronSecret:  cronSecret,
	}
}

func (h *Handler) DispatchReminders(c *gin.Context) {
	secret := c.GetHeader("X-Cron-Secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(h.cronSecret)) != 1 {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	result, err := h.reminderSvc.DispatchReminders(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/jobs/reminders", h.DispatchReminders)
}
