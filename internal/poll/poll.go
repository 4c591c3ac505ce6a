// Package poll implements bounded polling against a status location.
//
// The tenant answers 202 while a rendition or background job is still being
// produced and 200 once it is ready; anything else is a hard failure.
package poll

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/fwsync/internal/api"
	"github.com/desertthunder/fwsync/internal/shared"
)

const (
	DefaultAttempts = 10
	DefaultDelay    = 5 * time.Second
)

// Getter issues one read against a tenant-local path.
// Satisfied by [api.Connection].
type Getter interface {
	GET(ctx context.Context, path string) (*api.Response, error)
}

// Retrier repeatedly reads a location until it is ready or the attempt budget
// is exhausted, with a fixed delay between attempts.
type Retrier struct {
	Attempts int
	Delay    time.Duration
}

// NewRetrier creates a Retrier, substituting defaults for non-positive values.
func NewRetrier(attempts int, delay time.Duration) Retrier {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	return Retrier{Attempts: attempts, Delay: delay}
}

// UntilReady polls location until the tenant answers 200.
//
// A 202 is a successful response on the transport (no error), so readiness is
// decided on the status code: 202 consumes one attempt and waits out the
// delay, with the wait aborting early when ctx is cancelled. Any error,
// including the *api.StatusError a non-2xx produces, fails immediately. A
// first-attempt 200 returns without any delay.
func (r Retrier) UntilReady(ctx context.Context, get Getter, location string) (*api.Response, error) {
	for attempt := 0; attempt < r.Attempts; attempt++ {
		resp, err := get.GET(ctx, location)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusAccepted {
			return resp, nil
		}

		// Not ready yet. Skip the final wait once the budget is spent.
		if attempt == r.Attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.Delay):
		}
	}

	return nil, fmt.Errorf("%w: %s not ready after %d attempts", shared.ErrTimeout, location, r.Attempts)
}
