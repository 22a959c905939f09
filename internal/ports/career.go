package ports

import "context"

// CareerPort creates the initial career stats record at most once per user.
type CareerPort interface {
	// EnsureCareerRecord writes the empty career record for a new account.
	// Returns created=false when the record already exists.
	EnsureCareerRecord(ctx context.Context, userID string) (bool, error)
}
