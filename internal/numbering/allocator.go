package numbering

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultMaxCandidates bounds the number of existence lookups per allocation.
const DefaultMaxCandidates = 100000

// ErrCandidateLimit is returned when every candidate up to MaxCandidates is taken.
var ErrCandidateLimit = errors.New("numbering: candidate limit reached")

// ExistsFunc reports whether a formatted number is already persisted.
type ExistsFunc func(ctx context.Context, number string) (bool, error)

// Allocator finds the lowest unused number for a scheme and year.
//
// Allocation is a read-only lookup; two concurrent callers can receive the
// same candidate. Callers must persist through a unique constraint and
// retry on conflict (see WithRetry).
type Allocator struct {
	exists    ExistsFunc
	now       func() time.Time
	maxCandidates int
}

// Option configures an Allocator.
type Option func(*Allocator)

// WithClock overrides the time source used for the year component.
func WithClock(now func() time.Time) Option {
	return func(a *Allocator) { a.now = now }
}

// WithMaxCandidates bounds the number of lookups. Values < 1 are ignored.
func WithMaxCandidates(n int) Option {
	return func(a *Allocator) {
		if n > 0 {
			a.maxCandidates = n
		}
	}
}

// NewAllocator creates an Allocator backed by the given existence lookup.
func NewAllocator(exists ExistsFunc, opts ...Option) *Allocator {
	a := &Allocator{
		exists:    exists,
		now:       time.Now,
		maxCandidates: DefaultMaxCandidates,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Year returns the calendar year used for new numbers.
func (a *Allocator) Year() int {
	return a.now().Year()
}

// Next allocates a number for the current year.
func (a *Allocator) Next(ctx context.Context, s Scheme) (string, error) {
	return a.Allocate(ctx, s, a.Year())
}

// Allocate returns the lowest n ≥ 1 whose formatted number does not exist.
// Lookup failures are returned wrapped; no number is produced on error.
func (a *Allocator) Allocate(ctx context.Context, s Scheme, year int) (string, error) {
	for n := 1; n <= a.maxCandidates; n++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		candidate := Format(s, year, n)
		taken, err := a.exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("numbering.Allocate %s: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s-%d after %d candidates", ErrCandidateLimit, s.Prefix, year, a.maxCandidates)
}
