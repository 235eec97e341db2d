package job

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"learning-community-api/internal/service"
)

// BookingExpiryJob periodically cancels bookings left pending past the TTL
type BookingExpiryJob struct {
	bookingService service.BookingService
	pendingTTL     time.Duration
	schedule       string
	cron           *cron.Cron
	logger         *zap.Logger
}

// NewBookingExpiryJob creates a new BookingExpiryJob
func NewBookingExpiryJob(bookingService service.BookingService, pendingTTL time.Duration, schedule string, logger *zap.Logger) *BookingExpiryJob {
	return &BookingExpiryJob{
		bookingService: bookingService,
		pendingTTL:     pendingTTL,
		schedule:       schedule,
		cron:           cron.New(),
		logger:         logger,
	}
}

// Start registers the schedule and starts the cron runner
func (j *BookingExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("Booking expiry job started",
		zap.String("schedule", j.schedule),
		zap.Duration("pending_ttl", j.pendingTTL),
	)
	return nil
}

// Stop stops the cron runner and waits for a running invocation to finish
func (j *BookingExpiryJob) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
	j.logger.Info("Booking expiry job stopped")
}

func (j *BookingExpiryJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	expired, err := j.bookingService.ExpireStalePending(ctx, j.pendingTTL)
	if err != nil {
		j.logger.Error("Booking expiry run failed", zap.Error(err))
		return
	}
	if expired > 0 {
		j.logger.Info("Expired stale pending bookings", zap.Int("count", expired))
	}
}
