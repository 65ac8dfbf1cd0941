package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/bookline/booking-api/internal/config"
	"github.com/bookline/booking-api/internal/email"
	"github.com/bookline/booking-api/internal/repository/postgres"
	auditService "github.com/bookline/booking-api/internal/service/audit"
	notificationService "github.com/bookline/booking-api/internal/service/notification"
	internalworker "github.com/bookline/booking-api/internal/worker"
	"github.com/bookline/booking-api/pkg/logger"
	redisbroker "github.com/bookline/booking-api/pkg/messaging/redis"
	"github.com/bookline/booking-api/pkg/metrics"
	"github.com/bookline/booking-api/pkg/worker"
)

// The worker process owns everything that runs off the request path:
// outbox dispatch, booking reminders and audit log retention.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level:      logger.InfoLevel,
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

	appMetrics := metrics.NewMetrics("bookline", "worker")

	bookingRepo := postgres.NewBookingRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)
	auditRepo := postgres.NewAuditRepository(db)

	emailSvc := email.NewSMTPService(cfg.SMTP, appLogger)
	notifSvc := notificationService.NewService(notificationRepo, emailSvc, broker, appLogger)
	auditor := auditService.NewService(auditRepo)

	processor := worker.NewOutboxProcessor(
		outboxRepo,
		broker,
		cfg.Outbox.ToProcessorConfig(),
		appLogger,
		appMetrics,
	)
	reminders := internalworker.NewReminderWorker(
		bookingRepo,
		serviceRepo,
		notifSvc,
		cfg.Worker.ReminderLeadTime,
		cfg.Worker.ReminderInterval,
		appMetrics,
		appLogger,
	)
	cleanup := internalworker.NewAuditCleanupWorker(
		auditor,
		cfg.Worker.AuditRetention,
		cfg.Worker.CleanupInterval,
		appLogger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	for _, start := range []func(context.Context){
		processor.Start,
		reminders.Start,
		cleanup.Start,
	} {
		wg.Add(1)
		go func(start func(context.Context)) {
			defer wg.Done()
			start(ctx)
		}(start)
	}

	healthSrv := healthServer(db.Ping)
	go func() {
		if err := healthSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start health server")
		}
	}()

	appLogger.Info("worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("shutting down worker")

	cancel()
	wg.Wait()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := healthSrv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(err, "failed to shut down health server")
	}

	appLogger.Info("worker exited properly")
}

func healthServer(ping func() error) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := ping(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:    ":8081",
		Handler: mux,
	}
}
