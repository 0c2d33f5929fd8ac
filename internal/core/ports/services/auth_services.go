package services

import "context"

// AuthSvc is the single app-wide password gate.
type AuthSvc interface {
	// IsConfigured reports whether a password has been set.
	IsConfigured(ctx context.Context) (bool, error)
	// Setup stores the first password and opens a session. It fails with apperrors.ErrDuplicate once configured.
	Setup(ctx context.Context, password string) (string, error)
	// Unlock checks the password and returns a signed session token.
	Unlock(ctx context.Context, password string) (string, error)
	// Lock ends the session.
	Lock(ctx context.Context, sessionID string)
	// ValidateToken returns the session id carried by a token that is valid and still open.
	ValidateToken(token string) (string, error)
}
