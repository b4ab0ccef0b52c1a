package numbering

import (
	"context"
	"errors"
	"fmt"

	"repairdesk/internal/domain"
)

// DefaultWriteAttempts is how many allocate-and-write rounds WithRetry makes.
const DefaultWriteAttempts = 5

// WithRetry allocates a number and passes it to write. When write reports
// domain.ErrDuplicateNumber another caller took the number first, so a
// fresh number is allocated and the write repeated. Any other error aborts.
func WithRetry(ctx context.Context, attempts int, allocate func(context.Context) (string, error), write func(context.Context, string) error) (string, error) {
	if attempts < 1 {
		attempts = DefaultWriteAttempts
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		number, err := allocate(ctx)
		if err != nil {
			return "", err
		}
		err = write(ctx, number)
		if err == nil {
			return number, nil
		}
		if !errors.Is(err, domain.ErrDuplicateNumber) {
			return "", err
		}
		lastErr = err
	}
	return "", fmt.Errorf("numbering.WithRetry: %d attempts: %w", attempts, lastErr)
}
