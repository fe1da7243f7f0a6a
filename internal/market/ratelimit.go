package market

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ErrDailyBudgetExhausted is returned when the rolling 24-hour search budget
// has been spent.
var ErrDailyBudgetExhausted = errors.New("daily search budget exhausted")

// Limiter guards the live search backend with a token bucket for burst
// control and a rolling 24-hour budget for total daily spend. The window
// starts at construction and slides forward 24 hours each time it expires.
type Limiter struct {
	bucket *rate.Limiter

	mu      sync.Mutex
	used    int64
	budget  int64
	resetAt time.Time
	now     func() time.Time
}

// LimiterOption configures the Limiter.
type LimiterOption func(*Limiter)

// WithLimiterClock overrides the time source for tests.
func WithLimiterClock(now func() time.Time) LimiterOption {
	return func(l *Limiter) {
		l.now = now
	}
}

// NewLimiter creates a limiter allowing perSecond sustained calls with the
// given burst, capped at budget calls per rolling 24-hour window.
func NewLimiter(perSecond float64, burst int, budget int64, opts ...LimiterOption) *Limiter {
	l := &Limiter{
		bucket: rate.NewLimiter(rate.Limit(perSecond), burst),
		budget: budget,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.resetAt = l.now().Add(24 * time.Hour)
	return l
}

// Wait blocks until a search call is permitted or the context is canceled.
// It consumes one unit of the daily budget on success.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.spend(); err != nil {
		return err
	}

	if err := l.bucket.Wait(ctx); err != nil {
		l.refund()
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	return nil
}

// spend consumes one budget unit, rolling the window forward first if it has
// expired.
func (l *Limiter) spend() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rollWindowLocked()

	if l.used >= l.budget {
		return fmt.Errorf("%w (%d/%d, resets %s)", ErrDailyBudgetExhausted, l.used, l.budget,
			l.resetAt.Format(time.RFC3339))
	}

	l.used++
	return nil
}

// refund returns a budget unit when the token-bucket wait was canceled, so
// an aborted call does not count against the day.
func (l *Limiter) refund() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.used > 0 {
		l.used--
	}
}

// Used returns the calls consumed in the current window.
func (l *Limiter) Used() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rollWindowLocked()
	return l.used
}

// Budget returns the configured daily call budget.
func (l *Limiter) Budget() int64 {
	return l.budget
}

// Remaining returns the calls left in the current window.
func (l *Limiter) Remaining() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rollWindowLocked()
	if r := l.budget - l.used; r > 0 {
		return r
	}
	return 0
}

// ResetAt returns when the current window expires.
func (l *Limiter) ResetAt() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rollWindowLocked()
	return l.resetAt
}

func (l *Limiter) rollWindowLocked() {
	now := l.now()
	if now.After(l.resetAt) {
		l.used = 0
		l.resetAt = now.Add(24 * time.Hour)
	}
}
