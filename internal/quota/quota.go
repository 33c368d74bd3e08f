// Package quota guards outbound Google API calls with a client-side
// rate limit and bounded retries on transient failures. It exists so
// burst-heavy tool invocations degrade into waiting instead of burning
// the daily YouTube API quota on rejected calls.
package quota

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"

	"github.com/teemow/tubemetrics/internal/logging"
)

// Defaults sized against the YouTube APIs' per-minute request quotas.
const (
	DefaultQPS        = 8
	DefaultBurst      = 4
	DefaultMaxRetries = 4
)

// Guard applies backpressure to API calls: every call first passes the
// rate limiter, then runs with exponential backoff on retryable
// failures. One Guard is shared by all API clients in the process.
type Guard struct {
	limiter    *rate.Limiter
	maxRetries uint64
	logger     logging.Logger

	// initialInterval seeds the backoff; tests shrink it.
	initialInterval time.Duration
}

// NewGuard creates a guard with the given queries-per-second limit,
// burst allowance and retry budget.
func NewGuard(qps float64, burst int, maxRetries uint64) *Guard {
	return NewGuardWithLogger(qps, burst, maxRetries, nil)
}

// NewGuardWithLogger creates a guard that logs each retry through the
// given logger. A nil logger disables retry logging.
func NewGuardWithLogger(qps float64, burst int, maxRetries uint64, logger logging.Logger) *Guard {
	return &Guard{
		limiter:         rate.NewLimiter(rate.Limit(qps), burst),
		maxRetries:      maxRetries,
		logger:          logger,
		initialInterval: 500 * time.Millisecond,
	}
}

// NewDefaultGuard creates a guard with the package defaults.
func NewDefaultGuard() *Guard {
	return NewGuard(DefaultQPS, DefaultBurst, DefaultMaxRetries)
}

// Do runs op under the rate limit, retrying transient Google API
// failures with exponential backoff. Non-retryable failures and context
// cancellation return immediately.
func (g *Guard) Do(ctx context.Context, op func() error) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = g.initialInterval
	b.MaxInterval = 10 * time.Second

	notify := func(err error, wait time.Duration) {
		if g.logger != nil {
			g.logger.Warn("retrying Google API call",
				"error", err.Error(),
				"wait", wait.String())
		}
	}

	return backoff.RetryNotify(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if Retryable(err) {
			return err
		}
		return backoff.Permanent(err)
	}, backoff.WithContext(backoff.WithMaxRetries(b, g.maxRetries), ctx), notify)
}

// Retryable reports whether err is a transient Google API failure worth
// retrying: server errors, explicit rate limiting, and the quota
// rejections the YouTube APIs deliver as 403s.
func Retryable(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}

	switch apiErr.Code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable:
		return true
	case http.StatusForbidden:
		for _, item := range apiErr.Errors {
			switch item.Reason {
			case "rateLimitExceeded", "userRateLimitExceeded", "quotaExceeded":
				return true
			}
		}
	}
	return false
}
