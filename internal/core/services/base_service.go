package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/smart_wallet/internal/middleware"
	"github.com/google/uuid"
)

// BaseService provides the clock, id generator and logging helpers shared by all services.
type BaseService struct {
	now   func() time.Time
	newID func(prefix string) string
}

// BaseOption configures the shared parts of a service.
type BaseOption func(*BaseService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) BaseOption {
	return func(s *BaseService) {
		s.now = now
	}
}

// WithIDGenerator replaces the default time-ordered id generator.
func WithIDGenerator(newID func(prefix string) string) BaseOption {
	return func(s *BaseService) {
		s.newID = newID
	}
}

func newBaseService(opts ...BaseOption) BaseService {
	b := BaseService{now: time.Now, newID: newTimeOrderedID}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// newTimeOrderedID returns prefix followed by a UUIDv7, so ids sort by creation time.
func newTimeOrderedID(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		return prefix + uuid.NewString()
	}
	return prefix + id.String()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogWarn logs a rejected request with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Warn(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}
