// Package auth authenticates building managers and issues session tokens.
package auth

import (
	"context"

	"github.com/mmynk/saakhtemaan/internal/models"
)

// Authenticator verifies manager credentials.
// The password implementation is the only one today; OTP login over SMS is
// the expected second implementation.
type Authenticator interface {
	// Register creates a new manager account.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credentials and returns the user if they match.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks that a credential meets the implementation's rules.
	ValidateCredential(credential string) error
}
