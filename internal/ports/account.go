package ports

import "context"

// AccountPort updates player account profiles. Onboarding uses it to stamp
// a generated display name on freshly created accounts.
type AccountPort interface {
	// UpdateProfile sets the username and display name on the given
	// account. A failure leaves the account with its default identity.
	UpdateProfile(ctx context.Context, userID, username, displayName string) error
}
