package session

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Verifier asks the backend whether the current token is still valid and who it belongs to
type Verifier interface {
	VerifyToken(ctx context.Context) (email string, err error)
}

// VerifierFunc adapts a plain function to Verifier
type VerifierFunc func(ctx context.Context) (string, error)

func (f VerifierFunc) VerifyToken(ctx context.Context) (string, error) {
	return f(ctx)
}

// RevalidateOnce checks the token against the backend. A rejection logs the session out;
// a check abandoned because ctx ended leaves the session alone.
func (s *Session) RevalidateOnce(ctx context.Context, v Verifier) {
	if ctx.Err() != nil {
		return
	}
	if _, ok := s.Token(); !ok {
		return
	}
	email, err := v.VerifyToken(ctx)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			s.logger.Debug("Session check abandoned", zap.Error(err))
			return
		}
		s.logger.Info("Session token rejected, logging out", zap.Error(err))
		if err := s.Logout(); err != nil {
			s.logger.Warn("Failed to clear rejected session", zap.Error(err))
		}
		return
	}
	if email != "" {
		s.SetUser(email)
	}
}

// RunRevalidationLoop checks once, then every interval until ctx is done. Call from a goroutine.
func (s *Session) RunRevalidationLoop(ctx context.Context, v Verifier, interval time.Duration) {
	s.RevalidateOnce(ctx, v)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RevalidateOnce(ctx, v)
		}
	}
}
