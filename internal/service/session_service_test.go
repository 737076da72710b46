package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mertkaya-dev/backoffice/internal/cache/memory"
)

func newSessionFixture(t *testing.T) *SessionService {
	t.Helper()
	c := memory.NewCache()
	t.Cleanup(func() { c.Close() })
	return NewSessionService(c, time.Hour, zerolog.Nop())
}

func TestSessionServiceLoginAndValidate(t *testing.T) {
	svc := newSessionFixture(t)
	ctx := context.Background()

	session, err := svc.Login(ctx, "mertkaya", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if session.Token == "" {
		t.Fatal("Login() returned an empty token")
	}
	if session.Username != "mertkaya" {
		t.Errorf("Login() username = %q, want %q", session.Username, "mertkaya")
	}
	if session.ExpiresAt.Before(time.Now()) {
		t.Error("Login() session already expired")
	}

	username, err := svc.Validate(ctx, session.Token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if username != "mertkaya" {
		t.Errorf("Validate() = %q, want %q", username, "mertkaya")
	}
}

func TestSessionServiceLoginRejectsEmptyCredentials(t *testing.T) {
	svc := newSessionFixture(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "secret"},
		{"blank username", "   ", "secret"},
		{"empty password", "mertkaya", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.username, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want %v", err, ErrInvalidCredentials)
			}
		})
	}
}

func TestSessionServiceValidateUnknownToken(t *testing.T) {
	svc := newSessionFixture(t)

	for _, token := range []string{"", "no-such-token"} {
		if _, err := svc.Validate(context.Background(), token); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Validate(%q) error = %v, want %v", token, err, ErrSessionNotFound)
		}
	}
}

func TestSessionServiceLogout(t *testing.T) {
	svc := newSessionFixture(t)
	ctx := context.Background()

	session, err := svc.Login(ctx, "mertkaya", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if err := svc.Logout(ctx, session.Token); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := svc.Validate(ctx, session.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Validate() after logout error = %v, want %v", err, ErrSessionNotFound)
	}

	// Revoking again is a no-op.
	if err := svc.Logout(ctx, session.Token); err != nil {
		t.Errorf("second Logout() error = %v", err)
	}
}
