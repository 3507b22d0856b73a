package onboarding

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careops/careops-api/internal/middleware"
	"github.com/careops/careops-api/internal/model"
	"github.com/careops/careops-api/internal/service/onboarding"
	"github.com/careops/careops-api/pkg/metrics"
)

type Handler struct {
	service *onboarding.Service
	metrics *metrics.Metrics
}

func NewHandler(service *onboarding.Service, m *metrics.Metrics) *Handler {
	return &Handler{service: service, metrics: m}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/onboarding/status", h.Status)
	r.GET("/onboarding/state", h.State)
	r.POST("/integrations", h.CreateIntegration)
	r.GET("/integrations", h.ListIntegrations)
	r.POST("/forms/contact", h.CreateContactForm)
	r.POST("/forms/post-booking", h.CreatePostBookingForm)
	r.POST("/service-types", h.CreateServiceType)
	r.POST("/availability-slots", h.CreateAvailabilitySlot)
	r.POST("/inventory", h.CreateInventoryItem)
}

// RegisterOwnerRoutes mounts workspace lifecycle and staff management, which
// are restricted to the owner role.
func (h *Handler) RegisterOwnerRoutes(r *gin.RouterGroup) {
	r.POST("/workspaces", h.CreateWorkspace)
	r.PATCH("/workspaces", h.UpdateWorkspace)
	r.POST("/workspaces/activate", h.Activate)
	r.POST("/staff", h.AddStaff)
}

func (h *Handler) Status(c *gin.Context) {
	status, err := h.service.Status(c.Request.Context(), middleware.WorkspaceID(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": status})
}

func (h *Handler) State(c *gin.Context) {
	state, err := h.service.State(c.Request.Context(), middleware.WorkspaceID(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"state": state}})
}

func (h *Handler) CreateWorkspace(c *gin.Context) {
	var req model.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	workspace, err := h.service.CreateWorkspace(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": workspace})
}

func (h *Handler) UpdateWorkspace(c *gin.Context) {
	var req model.UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	workspace, err := h.service.UpdateWorkspace(c.Request.Context(), middleware.WorkspaceID(c), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": workspace})
}

// Activate flips the workspace live once the gates pass. Gate failures
// surface as a 400 with the missing gate names.
func (h *Handler) Activate(c *gin.Context) {
	workspace, err := h.service.Activate(c.Request.Context(), middleware.WorkspaceID(c))
	if err != nil {
		c.Error(err)
		return
	}
	h.metrics.WorkspacesActivated.Inc()
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": workspace})
}

func (h *Handler) CreateIntegration(c *gin.Context) {
	var req model.CreateIntegrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	integration, err := h.service.CreateIntegration(c.Request.Context(), middleware.WorkspaceID(c), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": integration})
}

func (h *Handler) ListIntegrations(c *gin.Context) {
	integrations, err := h.service.ListIntegrations(c.Request.Context(), middleware.WorkspaceID(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": integrations})
}

func (h *Handler) CreateContactForm(c *gin.Context) {
	var req model.CreateFormTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	form, err := h.service.CreateContactForm(c.Request.Context(), middleware.WorkspaceID(c), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": form})
}

func (h *Handler) CreatePostBookingForm(c *gin.Context) {
	var req model.CreateFormTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	form, err := h.service.CreatePostBookingForm(c.Request.Context(), middleware.WorkspaceID(c), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": form})
}

func (h *Handler) CreateServiceType(c *gin.Context) {
	var req model.CreateServiceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	serviceType, err := h.service.CreateServiceType(c.Request.Context(), middleware.WorkspaceID(c), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": serviceType})
}

func (h *Handler) CreateAvailabilitySlot(c *gin.Context) {
	var req model.CreateAvailabilitySlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	slot, err := h.service.CreateAvailabilitySlot(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": slot})
}

func (h *Handler) CreateInventoryItem(c *gin.Context) {
	var req model.CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	item, err := h.service.CreateInventoryItem(c.Request.Context(), middleware.WorkspaceID(c), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": item})
}

func (h *Handler) AddStaff(c *gin.Context) {
	var req model.AddStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	user, err := h.service.AddStaff(c.Request.Context(), middleware.WorkspaceID(c), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": user})
}
