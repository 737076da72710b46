package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mertkaya-dev/backoffice/internal/cache"
)

const sessionKeyPrefix = "session:"

// DefaultSessionTTL is how long a session stays valid after login.
const DefaultSessionTTL = 7 * 24 * time.Hour

// Session is an authenticated dashboard session.
type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionService issues and validates opaque session tokens backed by the
// cache layer. Any non-empty credential pair is accepted; the demo upstream
// has no account store to verify against.
type SessionService struct {
	cache  cache.Cache
	ttl    time.Duration
	logger zerolog.Logger
}

// NewSessionService creates a SessionService. A non-positive ttl falls back
// to DefaultSessionTTL.
func NewSessionService(c cache.Cache, ttl time.Duration, logger zerolog.Logger) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{
		cache:  c,
		ttl:    ttl,
		logger: logger.With().Str("service", "session").Logger(),
	}
}

// Login validates the credentials and issues a new session token.
func (s *SessionService) Login(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	token := uuid.NewString()
	if err := s.cache.Set(ctx, sessionKeyPrefix+token, []byte(username), s.ttl); err != nil {
		s.logger.Error().Err(err).Msg("failed to store session")
		return nil, fmt.Errorf("store session: %w", err)
	}

	s.logger.Info().Str("username", username).Msg("session created")
	return &Session{
		Token:     token,
		Username:  username,
		ExpiresAt: time.Now().Add(s.ttl),
	}, nil
}

// Validate resolves a token to the username it was issued for.
func (s *SessionService) Validate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrSessionNotFound
	}

	username, err := s.cache.Get(ctx, sessionKeyPrefix+token)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return "", ErrSessionNotFound
		}
		return "", fmt.Errorf("lookup session: %w", err)
	}
	return string(username), nil
}

// Logout revokes a token. Revoking an unknown token is not an error.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.cache.Delete(ctx, sessionKeyPrefix+token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
