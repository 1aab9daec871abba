package jobs

import (
	"context"
	"fmt"
	"time"

	"material_market_backend/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionExpirer drops purchase sessions idle for longer than olderThan.
type SessionExpirer interface {
	ExpireIdle(ctx context.Context, olderThan time.Duration) int
}

// PurchaseJanitorJob periodically evicts abandoned purchase sessions.
type PurchaseJanitorJob struct {
	sessions      SessionExpirer
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
}

// NewPurchaseJanitorJob creates a new PurchaseJanitorJob.
func NewPurchaseJanitorJob(sessions SessionExpirer, logger *zap.Logger, cfg *config.Config) *PurchaseJanitorJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &PurchaseJanitorJob{
		sessions:      sessions,
		logger:        logger.Named("PurchaseJanitorJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *PurchaseJanitorJob) SetupAndStart() error {
	jobSpec := j.cfg.PurchaseSessionJanitorSchedule
	if jobSpec == "" || j.cfg.PurchaseSessionTTL <= 0 {
		j.logger.Warn("Purchase session janitor disabled (PURCHASE_SESSION_JANITOR_SCHEDULE or PURCHASE_SESSION_TTL_MINUTES unset).")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule purchase session janitor", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Purchase session janitor scheduled",
		zap.String("spec", jobSpec),
		zap.Duration("ttl", j.cfg.PurchaseSessionTTL),
		zap.Any("jobID", jobID),
	)
	j.cronScheduler.Start()
	return nil
}

func (j *PurchaseJanitorJob) runJob() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	removed := j.sessions.ExpireIdle(ctx, j.cfg.PurchaseSessionTTL)
	if removed > 0 {
		j.logger.Info("Expired idle purchase sessions", zap.Int("sessions_removed", removed))
	} else {
		j.logger.Debug("No idle purchase sessions to expire")
	}
}

// Stop gracefully stops the cron scheduler.
func (j *PurchaseJanitorJob) Stop() {
	if j.cronScheduler == nil {
		return
	}
	j.logger.Info("Stopping purchase session janitor...")
	stopCtx := j.cronScheduler.Stop()
	select {
	case <-stopCtx.Done():
		j.logger.Info("Purchase session janitor stopped gracefully.")
	case <-time.After(10 * time.Second):
		j.logger.Warn("Purchase session janitor stop timed out.")
	}
}

// cronLogger adapts zap.Logger to cron.Logger interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

// Info logs routine scheduler messages at debug level.
func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	cl.zl.Debug(msg, cl.fields(keysAndValues...)...)
}

// Error logs error messages from cron.
func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := append(cl.fields(keysAndValues...), zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) fields(keysAndValues ...interface{}) []zap.Field {
	fields := make([]zap.Field, 0, (len(keysAndValues)+1)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprintf("%v", keysAndValues[i])
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(key, keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(key, "MISSING_VALUE"))
		}
	}
	return fields
}
