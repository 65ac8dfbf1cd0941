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

	"github.com/bookline/booking-api/internal/config"
	"github.com/bookline/booking-api/internal/email"
	analyticsHandler "github.com/bookline/booking-api/internal/handler/analytics"
	authHandler "github.com/bookline/booking-api/internal/handler/auth"
	bookingHandler "github.com/bookline/booking-api/internal/handler/booking"
	businessHandler "github.com/bookline/booking-api/internal/handler/business"
	catalogHandler "github.com/bookline/booking-api/internal/handler/catalog"
	conversationHandler "github.com/bookline/booking-api/internal/handler/conversation"
	customerHandler "github.com/bookline/booking-api/internal/handler/customer"
	healthHandler "github.com/bookline/booking-api/internal/handler/health"
	notificationHandler "github.com/bookline/booking-api/internal/handler/notification"
	publicHandler "github.com/bookline/booking-api/internal/handler/public"
	teamHandler "github.com/bookline/booking-api/internal/handler/team"
	"github.com/bookline/booking-api/internal/middleware"
	"github.com/bookline/booking-api/internal/repository/postgres"
	"github.com/bookline/booking-api/internal/router"
	analyticsService "github.com/bookline/booking-api/internal/service/analytics"
	auditService "github.com/bookline/booking-api/internal/service/audit"
	authService "github.com/bookline/booking-api/internal/service/auth"
	bookingService "github.com/bookline/booking-api/internal/service/booking"
	businessService "github.com/bookline/booking-api/internal/service/business"
	catalogService "github.com/bookline/booking-api/internal/service/catalog"
	conversationService "github.com/bookline/booking-api/internal/service/conversation"
	notificationService "github.com/bookline/booking-api/internal/service/notification"
	teamService "github.com/bookline/booking-api/internal/service/team"
	"github.com/bookline/booking-api/pkg/auth"
	"github.com/bookline/booking-api/pkg/logger"
	redisbroker "github.com/bookline/booking-api/pkg/messaging/redis"
	"github.com/bookline/booking-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level:      logLevel(cfg.Logger.Level),
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     cfg.Logger.Pretty,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	broker, err := redisbroker.NewRedisBroker(cfg.Redis.ToBrokerConfig(), &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	appMetrics := metrics.NewMetrics("bookline", "api")

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	businessRepo := postgres.NewBusinessRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	teamRepo := postgres.NewTeamMemberRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)
	conversationRepo := postgres.NewConversationRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)
	auditRepo := postgres.NewAuditRepository(db)
	analyticsRepo := postgres.NewAnalyticsRepository(db)

	// Services
	tokenSvc := auth.NewTokenService(auth.Config{
		Secret:             cfg.JWT.Secret,
		RefreshSecret:      cfg.JWT.RefreshSecret,
		ExpiryHours:        cfg.JWT.ExpiryHours,
		RefreshExpiryHours: cfg.JWT.RefreshExpiryHours,
	})
	emailSvc := email.NewSMTPService(cfg.SMTP, appLogger)
	auditor := auditService.NewService(auditRepo)
	notifSvc := notificationService.NewService(notificationRepo, emailSvc, broker, appLogger)
	authSvc := authService.NewService(userRepo, businessRepo, tokenSvc)
	businessSvc := businessService.NewService(businessRepo, auditor)
	catalogSvc := catalogService.NewService(serviceRepo, outboxRepo, auditor)
	teamSvc := teamService.NewService(teamRepo, auditor)
	bookingSvc := bookingService.NewService(
		bookingRepo, serviceRepo, teamRepo, businessRepo, customerRepo,
		outboxRepo, notifSvc, auditor, appMetrics, appLogger,
	)
	conversationSvc := conversationService.NewService(conversationRepo, customerRepo, outboxRepo, appLogger)
	analyticsSvc := analyticsService.NewService(analyticsRepo)

	// HTTP surface
	authMiddleware := middleware.NewAuthMiddleware(tokenSvc)

	r := router.NewRouter(
		authMiddleware,
		healthHandler.NewHandler(db),
		authHandler.NewHandler(authSvc),
		publicHandler.NewHandler(businessSvc, catalogSvc, teamSvc, bookingSvc),
		businessHandler.NewHandler(businessSvc),
		catalogHandler.NewHandler(catalogSvc),
		teamHandler.NewHandler(teamSvc),
		bookingHandler.NewHandler(bookingSvc),
		customerHandler.NewHandler(customerRepo),
		conversationHandler.NewHandler(conversationSvc),
		notificationHandler.NewHandler(notifSvc),
		analyticsHandler.NewHandler(analyticsSvc),
		router.Config{
			RequestTimeout:    cfg.Server.RequestTimeout,
			RateLimitEnabled:  cfg.RateLimit.Enabled,
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			RateBurst:         cfg.RateLimit.Burst,
			CORSConfig:        corsConfig(cfg),
			MetricsPrefix:     "bookline_http",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info("server exited properly")
}

func logLevel(level string) logger.Level {
	switch level {
	case "debug":
		return logger.DebugLevel
	case "warn":
		return logger.WarnLevel
	case "error":
		return logger.ErrorLevel
	default:
		return logger.InfoLevel
	}
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	if len(cfg.CORS.AllowedMethods) > 0 {
		corsCfg.AllowMethods = cfg.CORS.AllowedMethods
	}
	if len(cfg.CORS.AllowedHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.CORS.AllowedHeaders
	}
	return corsCfg
}
