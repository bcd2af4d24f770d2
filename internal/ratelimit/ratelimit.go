package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Limiter budgets LLM calls for one run and paces consecutive batch requests.
// The pacing delay is a courtesy throttle toward the completion service, not
// a correctness requirement.
type Limiter struct {
	mu        sync.Mutex
	used      int
	max       int // 0 = unlimited
	pace      time.Duration
	lastCall time.Time
	sleep    func(ctx context.Context, d time.Duration) error
}

// New creates a limiter allowing at most max requests per run (0 for
// unlimited) with the given pacing delay between requests.
func New(max int, pace time.Duration) *Limiter {
	return &Limiter{
		max:   max,
		pace:  pace,
		sleep: defaultSleep,
	}
}

// SetSleep replaces the pacing sleep, for tests.
func (l *Limiter) SetSleep(fn func(ctx context.Context, d time.Duration) error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sleep = fn
}

// Acquire blocks for the pacing delay (after the first call) and consumes one
// request from the budget. Returns an error once the budget is exhausted.
func (l *Limiter) Acquire(ctx context.Context) error {
	l.mu.Lock()
	if l.max > 0 && l.used >= l.max {
		used, max := l.used, l.max
		l.mu.Unlock()
		return fmt.Errorf("llm request budget exhausted (%d/%d)", used, max)
	}
	wait := time.Duration(0)
	if !l.lastCall.IsZero() && l.pace > 0 {
		elapsed := time.Since(l.lastCall)
		if elapsed < l.pace {
			wait = l.pace - elapsed
		}
	}
	sleep := l.sleep
	l.mu.Unlock()

	if wait > 0 {
		if err := sleep(ctx, wait); err != nil {
			return err
		}
	}

	l.mu.Lock()
	l.used++
	l.lastCall = time.Now()
	l.mu.Unlock()
	return nil
}

// Used reports how many requests were consumed so far.
func (l *Limiter) Used() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.used
}

// Remaining reports how many requests are left, or -1 when unlimited.
func (l *Limiter) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.max == 0 {
		return -1
	}
	left := l.max - l.used
	if left < 0 {
		left = 0
	}
	return left
}

func defaultSleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
