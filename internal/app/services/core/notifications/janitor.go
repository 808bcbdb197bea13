package notifications

import (
	"clinic-admin-service/internal/app/contracts"
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const defaultPurgeSpec = "@daily"

// Janitor periodically purges read notifications past their retention.
type Janitor struct {
	log                 *zap.Logger
	notificationUsecase contracts.NotificationUsecase
	spec                string
	retention           time.Duration
	cron                *cron.Cron
	runCtx              context.Context
	cancel              context.CancelFunc
	mu                  sync.Mutex
}

func NewJanitor(log *zap.Logger, notificationUsecase contracts.NotificationUsecase, spec string, retention time.Duration) *Janitor {
	return &Janitor{log: log, notificationUsecase: notificationUsecase, spec: spec, retention: retention}
}

// Start schedules the purge. An invalid spec falls back to @daily.
func (j *Janitor) Start(ctx context.Context) {
	j.runCtx, j.cancel = context.WithCancel(ctx)
	c := cron.New()
	_, err := c.AddFunc(j.spec, func() { j.runOnce(j.runCtx) })
	if err != nil {
		j.log.Warn("notification.janitor: failed to schedule with provided cron spec; falling back to @daily",
			zap.String("spec", j.spec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(defaultPurgeSpec, func() { j.runOnce(j.runCtx) })
	}
	c.Start()
	j.cron = c
}

// Stop waits for a running purge to finish.
func (j *Janitor) Stop() {
	if j.cancel != nil {
		j.cancel()
	}
	if j.cron != nil {
		ctx := j.cron.Stop()
		<-ctx.Done()
	}
}

func (j *Janitor) runOnce(ctx context.Context) {
	// overlapping runs would delete the same documents twice
	if !j.mu.TryLock() {
		j.log.Info("notification.janitor: previous run still in progress")
		return
	}
	defer j.mu.Unlock()

	if j.retention <= 0 {
		return
	}

	deleted, err := j.notificationUsecase.PurgeRead(ctx, j.retention)
	if err != nil {
		j.log.Warn("notification.janitor: purge failed", zap.Error(err))
		return
	}
	j.log.Info("notification.janitor: purge finished", zap.Int64("deleted", deleted))
}
