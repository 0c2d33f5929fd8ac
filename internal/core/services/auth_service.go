package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/SscSPs/smart_wallet/internal/apperrors"
	portsrepo "github.com/SscSPs/smart_wallet/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/smart_wallet/internal/core/ports/services"
	"github.com/SscSPs/smart_wallet/internal/utils"
)

// MinPasswordLength is the shortest password accepted by Setup.
const MinPasswordLength = 4

// TokenConfig holds what is needed to sign session tokens.
type TokenConfig struct {
	Secret string
	Expiry time.Duration
	Issuer string
}

// authService guards the whole wallet behind one password.
type authService struct {
	BaseService
	kv       portsrepo.KeyValueStore
	sessions portssvc.SessionSvc
	token    TokenConfig
}

// NewAuthService creates the password gate.
func NewAuthService(kv portsrepo.KeyValueStore, sessions portssvc.SessionSvc, token TokenConfig, opts ...BaseOption) portssvc.AuthSvc {
	return &authService{
		BaseService: newBaseService(opts...),
		kv:          kv,
		sessions:    sessions,
		token:       token,
	}
}

var _ portssvc.AuthSvc = (*authService)(nil)

func (s *authService) storedHash(ctx context.Context) (string, bool, error) {
	raw, err := s.kv.Load(ctx, portsrepo.KeyPasswordHash)
	if errors.Is(err, apperrors.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load password hash: %w", err)
	}
	return string(raw), len(raw) > 0, nil
}

func (s *authService) IsConfigured(ctx context.Context) (bool, error) {
	_, ok, err := s.storedHash(ctx)
	return ok, err
}

func (s *authService) Setup(ctx context.Context, password string) (string, error) {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return "", fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidation, MinPasswordLength)
	}
	_, ok, err := s.storedHash(ctx)
	if err != nil {
		return "", err
	}
	if ok {
		return "", fmt.Errorf("%w: password is already set", apperrors.ErrDuplicate)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.kv.Store(ctx, portsrepo.KeyPasswordHash, []byte(hash)); err != nil {
		s.LogError(ctx, err, "Failed to persist password hash")
		return "", fmt.Errorf("failed to persist password hash: %w", err)
	}
	s.LogInfo(ctx, "Wallet password configured")
	return s.openSession(ctx)
}

func (s *authService) Unlock(ctx context.Context, password string) (string, error) {
	stored, ok, err := s.storedHash(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: no password has been set", apperrors.ErrUnauthorized)
	}

	match, legacy := utils.CheckPasswordHash(password, stored)
	if !match {
		s.LogWarn(ctx, apperrors.ErrUnauthorized, "Unlock attempt with wrong password")
		return "", fmt.Errorf("%w: wrong password", apperrors.ErrUnauthorized)
	}

	if legacy {
		// A failed upgrade leaves the old digest usable, so it does not block the unlock.
		if hash, err := utils.HashPassword(password); err == nil {
			if err := s.kv.Store(ctx, portsrepo.KeyPasswordHash, []byte(hash)); err != nil {
				s.LogError(ctx, err, "Failed to upgrade legacy password hash")
			} else {
				s.LogInfo(ctx, "Upgraded legacy password hash")
			}
		}
	}
	return s.openSession(ctx)
}

func (s *authService) openSession(ctx context.Context) (string, error) {
	sess := s.sessions.Start()
	token, err := utils.GenerateJWT(sess.ID, s.token.Secret, s.token.Expiry, s.token.Issuer)
	if err != nil {
		s.sessions.End(sess.ID)
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	s.LogInfo(ctx, "Session opened", slog.String("session_id", sess.ID))
	return token, nil
}

func (s *authService) Lock(ctx context.Context, sessionID string) {
	s.sessions.End(sessionID)
	s.LogInfo(ctx, "Session locked", slog.String("session_id", sessionID))
}

func (s *authService) ValidateToken(token string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(token, s.token.Secret, s.token.Issuer)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}
	if _, err := s.sessions.Get(claims.Subject); err != nil {
		return "", err
	}
	return claims.Subject, nil
}
