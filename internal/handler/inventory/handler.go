package inventory

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/careops/careops-api/internal/middleware"
	"github.com/careops/careops-api/internal/model"
	"github.com/careops/careops-api/internal/service/inventory"
)

type Handler struct {
	service *inventory.Service
}

func NewHandler(service *inventory.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/inventory", h.List)
	r.POST("/inventory/:id/adjust", h.Adjust)
}

// List returns inventory items; ?low_stock=true narrows to items at or below
// their threshold.
func (h *Handler) List(c *gin.Context) {
	workspaceID := middleware.WorkspaceID(c)

	var items []*model.InventoryItem
	var err error
	if c.Query("low_stock") == "true" {
		items, err = h.service.ListLowStock(c.Request.Context(), workspaceID)
	} else {
		items, err = h.service.List(c.Request.Context(), workspaceID)
	}
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": items})
}

func (h *Handler) Adjust(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid inventory item ID"})
		return
	}

	var req model.AdjustInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	item, err := h.service.Adjust(c.Request.Context(), id, req.Delta)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": item})
}
