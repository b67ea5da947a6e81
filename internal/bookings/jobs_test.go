package bookings

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sweepCounter struct {
	Service
	calls atomic.Int32
	err   error
}

func (s *sweepCounter) CompleteDueStays(context.Context) (int, error) {
	s.calls.Add(1)
	return 2, s.err
}

func TestCheckoutJobRunsImmediately(t *testing.T) {
	svc := &sweepCounter{}
	scheduler, err := gocron.NewScheduler()
	require.NoError(t, err)
	defer func() { _ = scheduler.Shutdown() }()

	job, err := NewCheckoutJob(svc, time.Hour).Register(scheduler)
	require.NoError(t, err)
	assert.Equal(t, "booking-checkout-sweep", job.Name())

	scheduler.Start()
	assert.Eventually(t, func() bool { return svc.calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestCheckoutJobRunSwallowsErrors(t *testing.T) {
	svc := &sweepCounter{err: errors.New("db down")}

	assert.NotPanics(t, NewCheckoutJob(svc, 0).Run)
	assert.Equal(t, int32(1), svc.calls.Load())
}
