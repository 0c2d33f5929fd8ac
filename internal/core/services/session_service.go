package services

import (
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/SscSPs/smart_wallet/internal/apperrors"
	"github.com/SscSPs/smart_wallet/internal/core/domain"
	portssvc "github.com/SscSPs/smart_wallet/internal/core/ports/services"
)

type sessionService struct {
	BaseService
	ttl      time.Duration
	mu       sync.Mutex
	sessions map[string]*portssvc.Session
}

// NewSessionService creates an in-memory session registry. Sessions close on
// their own ttl after they start; a ttl of zero keeps them open until End.
func NewSessionService(ttl time.Duration, opts ...BaseOption) portssvc.SessionSvc {
	return &sessionService{BaseService: newBaseService(opts...), ttl: ttl, sessions: map[string]*portssvc.Session{}}
}

var _ portssvc.SessionSvc = (*sessionService)(nil)

func (s *sessionService) Start() portssvc.Session {
	now := s.now()
	sess := &portssvc.Session{
		ID:         s.newID("sess-"),
		Decoy:      true,
		Dismissals: domain.Dismissals{Goals: map[string]bool{}},
	}
	if s.ttl > 0 {
		sess.ExpiresAt = now.Add(s.ttl)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, open := range s.sessions {
		if open.Expired(now) {
			delete(s.sessions, id)
		}
	}
	s.sessions[sess.ID] = sess
	return copySession(sess)
}

func (s *sessionService) End(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *sessionService) Get(id string) (portssvc.Session, error) {
	return s.update(id, func(*portssvc.Session) {})
}

func (s *sessionService) update(id string, fn func(*portssvc.Session)) (portssvc.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if ok && sess.Expired(s.now()) {
		delete(s.sessions, id)
		ok = false
	}
	if !ok {
		return portssvc.Session{}, fmt.Errorf("%w: session is not open", apperrors.ErrUnauthorized)
	}
	fn(sess)
	return copySession(sess), nil
}

func (s *sessionService) SetDecoy(id string, active bool) (portssvc.Session, error) {
	return s.update(id, func(sess *portssvc.Session) { sess.Decoy = active })
}

func (s *sessionService) DismissSavings(id string) error {
	_, err := s.update(id, func(sess *portssvc.Session) { sess.Dismissals.Savings = true })
	return err
}

func (s *sessionService) DismissDebt(id string) error {
	_, err := s.update(id, func(sess *portssvc.Session) { sess.Dismissals.Debt = true })
	return err
}

// DismissGoal hides the goal's reminder until the next calendar month.
func (s *sessionService) DismissGoal(id, goalID string) error {
	key := domain.GoalDismissalKey(goalID, s.now())
	_, err := s.update(id, func(sess *portssvc.Session) { sess.Dismissals.Goals[key] = true })
	return err
}

func copySession(sess *portssvc.Session) portssvc.Session {
	out := *sess
	out.Dismissals.Goals = maps.Clone(sess.Dismissals.Goals)
	return out
}
