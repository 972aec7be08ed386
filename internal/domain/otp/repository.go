package otp

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, v *Verification) error
	// InvalidateActive marks every unused, unexpired code for the pair as used.
	InvalidateActive(ctx context.Context, email string, purpose Purpose) error
	// Consume atomically marks the matching active code as used. It reports
	// false when no row matched (wrong code, already used, or expired).
	Consume(ctx context.Context, email, code string, purpose Purpose, now time.Time) (bool, error)
}
