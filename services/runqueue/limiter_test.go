package runqueue

import (
	"context"
	"testing"
	"time"
)

func TestRunLimiterAdmitsWithinContextDeadline(t *testing.T) {
	limiter := NewRunLimiter(1000)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunLimiterRejectsOnExpiredContext(t *testing.T) {
	limiter := NewRunLimiter(0.001)
	// The bucket starts holding its single burst token, so the first run is
	// admitted at once; the next token is 1000s away, past ctx's deadline.
	if err := limiter.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error admitting the first run: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx); err == nil {
		t.Fatalf("expected deadline exceeded error")
	}
}
