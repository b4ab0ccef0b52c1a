package service

import (
	"context"
	"time"

	"repairdesk/internal/numbering"
	"repairdesk/internal/port"
)

// NumberingOptions tunes how services allocate document numbers.
type NumberingOptions struct {
	MaxCandidates    int
	WriteRetries int
	Now          func() time.Time
}

func (o NumberingOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// issuer allocates the lowest free number for a scheme and retries the write
// when a concurrent writer takes the same number first.
type issuer struct {
	alloc    *numbering.Allocator
	attempts int
}

func newIssuer(lookup port.NumberLookup, opts NumberingOptions) issuer {
	var allocOpts []numbering.Option
	if opts.Now != nil {
		allocOpts = append(allocOpts, numbering.WithClock(opts.Now))
	}
	if opts.MaxCandidates > 0 {
		allocOpts = append(allocOpts, numbering.WithMaxCandidates(opts.MaxCandidates))
	}
	attempts := opts.WriteRetries
	if attempts < 1 {
		attempts = numbering.DefaultWriteAttempts
	}
	return issuer{
		alloc:    numbering.NewAllocator(lookup.NumberExists, allocOpts...),
		attempts: attempts,
	}
}

func (i issuer) issue(ctx context.Context, scheme numbering.Scheme, write func(context.Context, string) error) (string, error) {
	return numbering.WithRetry(ctx, i.attempts, func(ctx context.Context) (string, error) {
		return i.alloc.Next(ctx, scheme)
	}, write)
}
