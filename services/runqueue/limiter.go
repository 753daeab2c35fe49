package runqueue

import (
	"context"

	"golang.org/x/time/rate"
)

// RunLimiter throttles how many scenario runs the worker starts per second,
// so a burst of queued tasks cannot saturate the host machine's CPU.
type RunLimiter struct {
	limiter *rate.Limiter
}

// NewRunLimiter builds a RunLimiter allowing ratePerSecond run starts per
// second, with a burst of one.
func NewRunLimiter(ratePerSecond float64) *RunLimiter {
	return &RunLimiter{limiter: rate.NewLimiter(rate.Limit(ratePerSecond), 1)}
}

// Wait blocks until the limiter admits one more run, or ctx is done.
func (l *RunLimiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
