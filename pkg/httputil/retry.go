package httputil

import (
	"context"
	"time"

	"github.com/matzehuels/stylebox/pkg/errors"
)

// RetryableError marks a transient failure that [Backoff.Retry] should
// attempt again.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Backoff configures [Backoff.Retry].
type Backoff struct {
	Attempts int           // total tries, at least 1
	Delay    time.Duration // wait before the second try; doubles after each
	MaxDelay time.Duration // cap on the wait, 0 for none
}

// DefaultBackoff tries three times, waiting 500ms and then 1s.
var DefaultBackoff = Backoff{Attempts: 3, Delay: 500 * time.Millisecond, MaxDelay: 5 * time.Second}

// Retry runs fn until it succeeds, fails with an error that is not a
// [RetryableError], or runs out of attempts. The last error is returned,
// unwrapped from its RetryableError. Cancelling ctx stops the wait between
// attempts and returns ctx.Err().
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay

	var lastErr error
	for i := 0; i < attempts; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		var re *RetryableError
		if !errors.As(err, &re) {
			return err
		}
		lastErr = re.Err

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
		if b.MaxDelay > 0 && delay > b.MaxDelay {
			delay = b.MaxDelay
		}
	}
	return lastErr
}
