// Package admin implements the admin panel's session gate and exports.
//
// The gate is a capability flag behind a single shared password, kept from
// the original site on purpose: it is NOT authentication and must not be
// mistaken for a security boundary. Anyone with the password is "the
// admin".
package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Session is the stored record for a logged-in admin. Validity is judged
// against the timestamp on every check, not on a stored expiry.
type Session struct {
	Timestamp time.Time `json:"timestamp"`
}

// SessionStore persists session records by opaque token.
type SessionStore interface {
	// Put stores a session record under token.
	Put(ctx context.Context, token string, session Session) error

	// Get retrieves a session record.
	// Returns ErrSessionNotFound when the token is unknown.
	Get(ctx context.Context, token string) (*Session, error)

	// Delete removes a session record. Removing an absent token is not an
	// error.
	Delete(ctx context.Context, token string) error
}

var (
	// ErrSessionNotFound indicates the token has no stored session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrUnauthorized is the generic rejection for any login or session
	// failure. Deliberately carries no detail.
	ErrUnauthorized = errors.New("unauthorized")
)

// Service issues, checks and revokes admin sessions.
type Service struct {
	password string
	ttl      time.Duration
	store    SessionStore
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a session service. ttl is how long a session stays
// valid after login (24 hours in the original site).
func NewService(password string, ttl time.Duration, store SessionStore, logger *slog.Logger) *Service {
	return &Service{
		password: password,
		ttl:      ttl,
		store:    store,
		logger:   logger.With("component", "admin_session"),
		now:      time.Now,
	}
}

// Login checks the shared password and issues a session token. Every
// failure mode returns the same ErrUnauthorized.
func (s *Service) Login(ctx context.Context, password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		s.logger.WarnContext(ctx, "admin login rejected")
		return "", ErrUnauthorized
	}
	token := uuid.NewString()
	if err := s.store.Put(ctx, token, Session{Timestamp: s.now().UTC()}); err != nil {
		s.logger.ErrorContext(ctx, "failed to store admin session", "error", err)
		return "", ErrUnauthorized
	}
	s.logger.InfoContext(ctx, "admin logged in")
	return token, nil
}

// Logout revokes the session token.
func (s *Service) Logout(ctx context.Context, token string) {
	if err := s.store.Delete(ctx, token); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete admin session", "error", err)
	}
}

// Authenticate verifies the token refers to a session younger than the
// TTL. Expired sessions are deleted on sight. Any failure is the generic
// ErrUnauthorized.
func (s *Service) Authenticate(ctx context.Context, token string) error {
	if token == "" {
		return ErrUnauthorized
	}
	session, err := s.store.Get(ctx, token)
	if err != nil {
		return ErrUnauthorized
	}
	if s.now().Sub(session.Timestamp) >= s.ttl {
		if err := s.store.Delete(ctx, token); err != nil {
			s.logger.ErrorContext(ctx, "failed to delete expired admin session", "error", err)
		}
		return ErrUnauthorized
	}
	return nil
}
