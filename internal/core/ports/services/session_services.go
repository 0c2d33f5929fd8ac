package services

import (
	"time"

	"github.com/SscSPs/smart_wallet/internal/core/domain"
)

// Session is the display state of one unlocked session.
type Session struct {
	ID         string
	Decoy      bool
	Dismissals domain.Dismissals
	// ExpiresAt is zero for sessions that stay open until locked.
	ExpiresAt  time.Time
}

// Expired reports whether the session has run past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// SessionSvc tracks unlocked sessions. Nothing in it is persisted.
type SessionSvc interface {
	// Start opens a session with decoy mode on and no dismissed alerts.
	Start() Session
	End(id string)
	// Get returns a snapshot of the session, or apperrors.ErrUnauthorized.
	Get(id string) (Session, error)
	SetDecoy(id string, active bool) (Session, error)
	DismissSavings(id string) error
	DismissDebt(id string) error
	DismissGoal(id, goalID string) error
}
