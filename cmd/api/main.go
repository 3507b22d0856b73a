package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/careops/careops-api/internal/config"
	"github.com/careops/careops-api/internal/email"
	"github.com/careops/careops-api/internal/handler"
	authHandler "github.com/careops/careops-api/internal/handler/auth"
	bookingHandler "github.com/careops/careops-api/internal/handler/booking"
	dashboardHandler "github.com/careops/careops-api/internal/handler/dashboard"
	inboxHandler "github.com/careops/careops-api/internal/handler/inbox"
	inventoryHandler "github.com/careops/careops-api/internal/handler/inventory"
	onboardingHandler "github.com/careops/careops-api/internal/handler/onboarding"
	"github.com/careops/careops-api/internal/middleware"
	"github.com/careops/careops-api/internal/repository/postgres"
	"github.com/careops/careops-api/internal/router"
	alertService "github.com/careops/careops-api/internal/service/alert"
	authService "github.com/careops/careops-api/internal/service/auth"
	dashboardService "github.com/careops/careops-api/internal/service/dashboard"
	inboxService "github.com/careops/careops-api/internal/service/inbox"
	inventoryService "github.com/careops/careops-api/internal/service/inventory"
	onboardingService "github.com/careops/careops-api/internal/service/onboarding"
	schedulingService "github.com/careops/careops-api/internal/service/scheduling"
	"github.com/careops/careops-api/pkg/auth"
	"github.com/careops/careops-api/pkg/logger"
	"github.com/careops/careops-api/pkg/messaging/redis"
	"github.com/careops/careops-api/pkg/metrics"
	"github.com/careops/careops-api/pkg/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil).WithFields(map[string]interface{}{"service": "careops-api"})
	zl := appLogger.Zerolog()

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	workspaceRepo := postgres.NewWorkspaceRepository(db)
	serviceTypeRepo := postgres.NewServiceTypeRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	contactRepo := postgres.NewContactRepository(db)
	conversationRepo := postgres.NewConversationRepository(db)
	integrationRepo := postgres.NewIntegrationRepository(db)
	formRepo := postgres.NewFormTemplateRepository(db)
	inventoryRepo := postgres.NewInventoryRepository(db)
	userRepo := postgres.NewUserRepository(db)
	alertRepo := postgres.NewAlertRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Email
	var emailSvc email.Service
	if cfg.SMTP.Host != "" {
		emailSvc = email.NewSMTPService(cfg.SMTP)
	} else {
		emailSvc = email.NewLogService(zl)
	}

	// Services
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWTExpiry(), cfg.JWT.Issuer)
	authSvc := authService.NewService(userRepo, jwtSvc)
	schedulingSvc := schedulingService.NewService(
		workspaceRepo, serviceTypeRepo, bookingRepo, contactRepo, conversationRepo, outboxRepo,
	)
	evaluator := onboardingService.NewStepEvaluator(
		workspaceRepo, integrationRepo, formRepo, serviceTypeRepo, inventoryRepo, userRepo,
	)
	onboardingSvc := onboardingService.NewService(
		workspaceRepo, integrationRepo, serviceTypeRepo, formRepo, inventoryRepo, userRepo,
		evaluator, outboxRepo,
	)
	inboxSvc := inboxService.NewService(
		contactRepo, conversationRepo, workspaceRepo, emailSvc, zl,
	)
	inventorySvc := inventoryService.NewService(inventoryRepo, alertRepo, outboxRepo, zl)
	alertSvc := alertService.NewService(alertRepo)
	dashboardSvc := dashboardService.NewService(bookingRepo, conversationRepo, inventoryRepo, alertRepo)

	// Handlers
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)
	m := metrics.NewMetrics("careops")

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	}

	var rateLimit rate.Limit
	if cfg.RateLimit.Enabled {
		rateLimit = rate.Limit(cfg.RateLimit.RequestsPerSecond)
	}

	r := router.NewRouter(
		authMiddleware,
		authHandler.NewHandler(authSvc),
		bookingHandler.NewHandler(schedulingSvc, m),
		onboardingHandler.NewHandler(onboardingSvc, m),
		inboxHandler.NewHandler(inboxSvc),
		inventoryHandler.NewHandler(inventorySvc),
		dashboardHandler.NewHandler(dashboardSvc, alertSvc),
		handler.NewHealthHandler(db),
		m,
		router.RouterConfig{
			RateLimit:      rateLimit,
			RateBurst:      cfg.RateLimit.Burst,
			CORSConfig:     corsConfig,
			MetricsEnabled: cfg.Monitoring.PrometheusEnabled,
			MetricsPath:    cfg.Monitoring.MetricsPath,
		},
	)
	r.Setup()

	// Outbox processor, sharing the API process when Redis is configured.
	if cfg.Redis.URL != "" {
		broker, err := redis.NewRedisBroker(cfg.Redis.URL, zl)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer broker.Close()

		processor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
			BatchSize:     cfg.Outbox.BatchSize,
			PollInterval:  cfg.Outbox.PollInterval,
			RetryAttempts: cfg.Outbox.RetryAttempts,
			RetryDelay:    cfg.Outbox.RetryDelay,
		}, zl, m)
		go processor.Start(context.Background())
	}

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Server.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
