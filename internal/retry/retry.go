// Package retry provides the bounded-retry policy shared by every
// external call in the pipeline (acquisition, analysis, synthesis).
package retry

import (
	"context"
	"time"

	"github.com/googleapis/gax-go/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Policy describes how a single external operation is retried.
// The zero value retries nothing; use Default for the standard policy.
type Policy struct {
	// MaxAttempts is the total number of calls, including the first one.
	MaxAttempts int
	// Initial is the delay before the first retry. Subsequent delays grow
	// by Multiplier with jitter, capped at Max.
	Initial    time.Duration
	Max        time.Duration
	Multiplier float64
	// Retryable classifies an error as transient. A nil predicate makes
	// every error final.
	Retryable func(error) bool
}

// Default is the policy used against the cloud providers: five retries
// with exponential backoff starting at one second.
func Default(retryable func(error) bool) Policy {
	return Policy{
		MaxAttempts: 6,
		Initial:     time.Second,
		Max:         30 * time.Second,
		Multiplier:  2,
		Retryable:   retryable,
	}
}

// Do runs op, retrying transient failures per the policy. It returns the
// last error when attempts are exhausted, or the context error if the
// context is cancelled while backing off.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	bo := gax.Backoff{
		Initial:    p.Initial,
		Max:        p.Max,
		Multiplier: p.Multiplier,
	}

	var err error
	for attempt := 1; ; attempt++ {
		if err = op(ctx); err == nil {
			return nil
		}
		if p.Retryable == nil || !p.Retryable(err) {
			return err
		}
		if attempt >= p.MaxAttempts {
			return err
		}
		if sleepErr := gax.Sleep(ctx, bo.Pause()); sleepErr != nil {
			return sleepErr
		}
	}
}

// TransientGRPC reports whether err is a gRPC status that is worth
// retrying: rate limiting, server trouble, or a per-call deadline.
func TransientGRPC(err error) bool {
	st, ok := status.FromError(err)
	if !ok {
		return false
	}
	switch st.Code() {
	case codes.ResourceExhausted, codes.Internal, codes.Unavailable, codes.DeadlineExceeded:
		return true
	default:
		return false
	}
}
