package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/careops/careops-api/internal/handler"
	authhandler "github.com/careops/careops-api/internal/handler/auth"
	bookinghandler "github.com/careops/careops-api/internal/handler/booking"
	dashboardhandler "github.com/careops/careops-api/internal/handler/dashboard"
	inboxhandler "github.com/careops/careops-api/internal/handler/inbox"
	inventoryhandler "github.com/careops/careops-api/internal/handler/inventory"
	onboardinghandler "github.com/careops/careops-api/internal/handler/onboarding"
	"github.com/careops/careops-api/internal/middleware"
	"github.com/careops/careops-api/pkg/metrics"
)

type RouterConfig struct {
	RateLimit      rate.Limit
	RateBurst      int
	CORSConfig     middleware.CORSConfig
	MetricsEnabled bool
	MetricsPath    string
}

type Router struct {
	engine      *gin.Engine
	auth        *middleware.AuthMiddleware
	authH       *authhandler.Handler
	bookingH    *bookinghandler.Handler
	onboardingH *onboardinghandler.Handler
	inboxH      *inboxhandler.Handler
	inventoryH  *inventoryhandler.Handler
	dashboardH  *dashboardhandler.Handler
	healthH     *handler.HealthHandler
	metrics     *metrics.Metrics
	config      RouterConfig
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH *authhandler.Handler,
	bookingH *bookinghandler.Handler,
	onboardingH *onboardinghandler.Handler,
	inboxH *inboxhandler.Handler,
	inventoryH *inventoryhandler.Handler,
	dashboardH *dashboardhandler.Handler,
	healthH *handler.HealthHandler,
	m *metrics.Metrics,
	config RouterConfig,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	middleware.RegisterValidators()
	engine := gin.New()

	r := &Router{
		engine:      engine,
		auth:        auth,
		authH:       authH,
		bookingH:    bookingH,
		onboardingH: onboardingH,
		inboxH:      inboxH,
		inventoryH:  inventoryH,
		dashboardH:  dashboardH,
		healthH:     healthH,
		metrics:     m,
		config:      config,
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: 30 * time.Second}),
		middleware.CORS(config.CORSConfig),
	)

	if config.RateLimit > 0 {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.GET("/health", r.healthH.Health)
	api.GET("/health/ready", r.healthH.Ready)

	if r.config.MetricsEnabled {
		path := r.config.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.engine.GET(path, gin.WrapH(promhttp.Handler()))
	}

	// Public surface: auth, the customer booking flow, and the contact form.
	public := api.Group("/public")
	r.bookingH.RegisterPublicRoutes(public)
	r.inboxH.RegisterPublicRoutes(public)
	r.authH.RegisterRoutes(api)

	// Everything else requires a valid token.
	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	r.bookingH.RegisterRoutes(protected)
	r.onboardingH.RegisterRoutes(protected)
	r.inboxH.RegisterRoutes(protected)
	r.inventoryH.RegisterRoutes(protected)
	r.dashboardH.RegisterRoutes(protected)

	owner := protected.Group("")
	owner.Use(r.auth.RequireOwner())
	r.onboardingH.RegisterOwnerRoutes(owner)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		r.metrics.HTTPRequests.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		r.metrics.HTTPLatency.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}
