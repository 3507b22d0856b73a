package booking

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/careops/careops-api/internal/middleware"
	"github.com/careops/careops-api/internal/model"
	"github.com/careops/careops-api/internal/service/scheduling"
	apperr "github.com/careops/careops-api/pkg/errors"
	"github.com/careops/careops-api/pkg/metrics"
)

const slotCacheTTL = 30 * time.Second

type Handler struct {
	service   *scheduling.Service
	slotCache *cache.Cache
	metrics   *metrics.Metrics
}

func NewHandler(service *scheduling.Service, m *metrics.Metrics) *Handler {
	return &Handler{
		service:   service,
		slotCache: cache.New(slotCacheTTL, time.Minute),
		metrics:   m,
	}
}

func (h *Handler) recordBooking(err error) {
	switch {
	case err == nil:
		h.metrics.BookingsCreated.Inc()
	case apperr.Is(err, apperr.ErrSlotAlreadyBooked):
		h.metrics.BookingConflicts.Inc()
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/bookings", h.ListBookings)
	r.GET("/bookings/:id", h.GetBooking)
	r.POST("/bookings", h.CreateBooking)
	r.PATCH("/bookings/:id/status", h.UpdateBookingStatus)
}

// RegisterPublicRoutes mounts the unauthenticated booking surface.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/services/:id/slots", h.ListAvailableSlots)
	r.POST("/bookings", h.CreatePublicBooking)
}

// ListAvailableSlots returns open start times for a service on a date.
// Results are cached briefly; a losing booking race is already handled by
// the uniqueness constraint, so slightly stale slots are acceptable.
func (h *Handler) ListAvailableSlots(c *gin.Context) {
	serviceTypeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid service type ID"})
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "date must be YYYY-MM-DD"})
		return
	}

	cacheKey := fmt.Sprintf("%s:%s", serviceTypeID, c.Query("date"))
	if cached, ok := h.slotCache.Get(cacheKey); ok {
		c.JSON(http.StatusOK, gin.H{"status": "success", "data": cached})
		return
	}

	slots, err := h.service.ListAvailableSlots(c.Request.Context(), serviceTypeID, date)
	if err != nil {
		c.Error(err)
		return
	}

	h.slotCache.Set(cacheKey, slots, cache.DefaultExpiration)
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": slots})
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	contactID := uuid.Nil
	if req.ContactID != nil {
		contactID = *req.ContactID
	}

	workspaceID := middleware.WorkspaceID(c)
	booking, err := h.service.CreateBooking(c.Request.Context(), workspaceID, contactID, &req)
	h.recordBooking(err)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": booking})
}

// CreatePublicBooking is the customer-facing flow: no auth, contact details
// in the payload.
func (h *Handler) CreatePublicBooking(c *gin.Context) {
	var req model.PublicBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	booking, err := h.service.CreatePublicBooking(c.Request.Context(), &req)
	h.recordBooking(err)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": booking})
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid booking ID"})
		return
	}

	booking, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": booking})
}

func (h *Handler) ListBookings(c *gin.Context) {
	filters := &model.BookingFilters{
		WorkspaceID: middleware.WorkspaceID(c),
		Status:      model.BookingStatus(c.Query("status")),
	}

	if id := c.Query("service_type_id"); id != "" {
		serviceTypeID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid service type ID"})
			return
		}
		filters.ServiceTypeID = serviceTypeID
	}

	if date := c.Query("date"); date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "date must be YYYY-MM-DD"})
			return
		}
		filters.FromDate = parsed
		filters.ToDate = parsed.AddDate(0, 0, 1)
	}

	bookings, err := h.service.ListBookings(c.Request.Context(), filters)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": bookings})
}

func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid booking ID"})
		return
	}

	var req model.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	booking, err := h.service.UpdateBookingStatus(c.Request.Context(), id, req.NewStatus)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": booking})
}
