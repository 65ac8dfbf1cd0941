package worker

import (
	"context"
	"time"

	"github.com/bookline/booking-api/internal/service/audit"
	"github.com/bookline/booking-api/pkg/logger"
)

// AuditCleanupWorker prunes audit logs older than the retention period.
type AuditCleanupWorker struct {
	auditor   *audit.Service
	retention time.Duration
	interval  time.Duration
	logger    *logger.Logger
}

func NewAuditCleanupWorker(auditor *audit.Service, retention, interval time.Duration, logger *logger.Logger) *AuditCleanupWorker {
	return &AuditCleanupWorker{
		auditor:   auditor,
		retention: retention,
		interval:  interval,
		logger:    logger,
	}
}

func (w *AuditCleanupWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("Starting audit cleanup worker")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Shutting down audit cleanup worker")
			return
		case <-ticker.C:
			removed, err := w.auditor.Cleanup(ctx, time.Now().Add(-w.retention))
			if err != nil {
				w.logger.Error(err, "Failed to cleanup audit logs")
				continue
			}
			if removed > 0 {
				w.logger.Info("Pruned audit logs", "removed", removed)
			}
		}
	}
}
