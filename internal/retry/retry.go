// Package retry re-runs an operation with exponential backoff.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/oukeidos/tunelate/internal/apperrors"
)

const (
	DefaultMaxRetries   = 3
	DefaultInitialDelay = 1000 * time.Millisecond
)

// DefaultNonRetryable are the permanent and client-side kinds that fail
// immediately.
var DefaultNonRetryable = []apperrors.Kind{
	apperrors.KindInvalidURL,
	apperrors.KindVideoNotFound,
	apperrors.KindNoLyricsFound,
	apperrors.KindMissingText,
	apperrors.KindEmptyText,
	apperrors.KindTextTooLong,
	apperrors.KindMissingTargetLanguage,
	apperrors.KindAPIKeyMissing,
}

// Policy configures Do. The zero value uses the defaults.
type Policy struct {
	// MaxRetries is the total number of attempts, including the first.
	MaxRetries   int
	InitialDelay time.Duration
	// NonRetryable replaces DefaultNonRetryable when non-nil.
	NonRetryable []apperrors.Kind
	// Sleep waits between attempts. It must return early with ctx.Err()
	// when ctx is done.
	Sleep func(ctx context.Context, d time.Duration) error
	// OnRetry is called before each wait with the failed attempt number.
	OnRetry func(attempt int, delay time.Duration, err error)
}

// Delay returns the wait after failed attempt n (1-based):
// initial * 2^(n-1), without jitter.
func Delay(initial time.Duration, n int) time.Duration {
	if n < 1 {
		n = 1
	}
	return initial << (n - 1)
}

// Do calls op until it succeeds, fails with a non-retryable kind, or the
// attempt cap is reached. The last observed error is returned unchanged.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	p = p.withDefaults()

	var zero T
	var lastErr error
	for attempt := 1; attempt <= p.MaxRetries; attempt++ {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err
		if !p.retryable(err) || attempt == p.MaxRetries {
			break
		}
		if ctx.Err() != nil {
			break
		}

		delay := Delay(p.InitialDelay, attempt)
		if p.OnRetry != nil {
			p.OnRetry(attempt, delay, err)
		}
		if err := p.Sleep(ctx, delay); err != nil {
			break
		}
	}
	return zero, lastErr
}

func (p Policy) withDefaults() Policy {
	if p.MaxRetries <= 0 {
		p.MaxRetries = DefaultMaxRetries
	}
	if p.InitialDelay <= 0 {
		p.InitialDelay = DefaultInitialDelay
	}
	if p.NonRetryable == nil {
		p.NonRetryable = DefaultNonRetryable
	}
	if p.Sleep == nil {
		p.Sleep = sleep
	}
	return p
}

func (p Policy) retryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	kind, ok := apperrors.KindOf(err)
	if !ok {
		return true
	}
	for _, k := range p.NonRetryable {
		if k == kind {
			return false
		}
	}
	return true
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
