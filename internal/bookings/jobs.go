package bookings

import (
	"context"
	"fmt"
	"time"

	"royalstay/pkg/logger"

	"github.com/go-co-op/gocron/v2"
)

// CheckoutJob periodically completes stays whose check-out day has come
type CheckoutJob struct {
	service  Service
	interval time.Duration
	timeout  time.Duration
	log      *logger.Logger
}

func NewCheckoutJob(service Service, interval time.Duration) *CheckoutJob {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &CheckoutJob{
		service:  service,
		interval: interval,
		timeout:  time.Minute,
		log:      logger.GetDefault(),
	}
}

// Register adds the sweep to scheduler. It runs once right away and then on
// every interval; a slow run is never overlapped by the next one.
func (j *CheckoutJob) Register(scheduler gocron.Scheduler) (gocron.Job, error) {
	job, err := scheduler.NewJob(
		gocron.DurationJob(j.interval),
		gocron.NewTask(j.Run),
		gocron.WithName("booking-checkout-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule checkout sweep: %w", err)
	}
	j.log.Info("Checkout sweep scheduled", "interval", j.interval.String(), "job_id", job.ID().String())
	return job, nil
}

// Run performs one sweep
func (j *CheckoutJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	completed, err := j.service.CompleteDueStays(ctx)
	if err != nil {
		j.log.ErrorWithContext(ctx, "Checkout sweep failed", err, map[string]interface{}{"completed": completed})
		return
	}
	if completed > 0 {
		j.log.Info("Completed checked-out stays", "count", completed)
	}
}
