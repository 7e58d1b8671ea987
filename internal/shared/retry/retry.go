package retry

import (
	"time"

	"github.com/jpillora/backoff"
)

// WithRetry выполняет op с повторами и экспоненциальным бэкоффом.
func WithRetry(attempts int, minDelay time.Duration, op func() error) error {
	b := &backoff.Backoff{Min: minDelay, Max: 5 * time.Second, Factor: 2}
	var err error
	for i := 0; i < attempts; i++ {
		if err = op(); err == nil {
			return nil
		}
		time.Sleep(b.Duration())
	}
	return err
}
