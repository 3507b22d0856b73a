package dashboard

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/careops/careops-api/internal/middleware"
	"github.com/careops/careops-api/internal/service/alert"
	"github.com/careops/careops-api/internal/service/dashboard"
)

type Handler struct {
	service *dashboard.Service
	alerts  *alert.Service
}

func NewHandler(service *dashboard.Service, alerts *alert.Service) *Handler {
	return &Handler{service: service, alerts: alerts}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard", h.Overview)
	r.GET("/alerts", h.ListAlerts)
	r.POST("/alerts/:id/read", h.MarkAlertRead)
}

func (h *Handler) Overview(c *gin.Context) {
	overview, err := h.service.Overview(c.Request.Context(), middleware.WorkspaceID(c), time.Now())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": overview})
}

func (h *Handler) ListAlerts(c *gin.Context) {
	alerts, err := h.alerts.List(c.Request.Context(), middleware.WorkspaceID(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": alerts})
}

func (h *Handler) MarkAlertRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid alert ID"})
		return
	}

	if err := h.alerts.MarkRead(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
