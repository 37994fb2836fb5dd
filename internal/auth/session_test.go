package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/justsurfingit/job-corner/internal/apperrors"
)

type mapSessions struct {
	mu   sync.Mutex
	rows map[string]Session
}

func newMapSessions() *mapSessions { return &mapSessions{rows: map[string]Session{}} }

func (m *mapSessions) CreateSession(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[s.Token] = s
	return nil
}

func (m *mapSessions) GetSession(_ context.Context, token string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[token]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return s, nil
}

func (m *mapSessions) DeleteSession(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[token]; !ok {
		return ErrSessionNotFound
	}
	delete(m.rows, token)
	return nil
}

func TestSessionEstablishLookupRevoke(t *testing.T) {
	store := NewSessionStore(newMapSessions(), time.Hour, nil)
	ctx := context.Background()

	session, err := store.Establish(ctx, "employee-1", RoleEmployee)
	if err != nil {
		t.Fatalf("establish failed: %v", err)
	}
	principal, err := store.Lookup(ctx, session.Token)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if principal.AccountID != "employee-1" || principal.Role != RoleEmployee {
		t.Fatalf("unexpected principal %+v", principal)
	}

	if err := store.Revoke(ctx, session.Token); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if _, err := store.Lookup(ctx, session.Token); !errors.Is(err, apperrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated after revoke, got %v", err)
	}
	if err := store.Revoke(ctx, session.Token); err != nil {
		t.Fatalf("second revoke should be a no-op, got %v", err)
	}
}

func TestSessionLookupExpired(t *testing.T) {
	repo := newMapSessions()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewSessionStore(repo, 30*time.Minute, nil).WithClock(func() time.Time { return now })
	ctx := context.Background()

	session, err := store.Establish(ctx, "company-1", RoleCompany)
	if err != nil {
		t.Fatalf("establish failed: %v", err)
	}
	now = now.Add(31 * time.Minute)
	if _, err := store.Lookup(ctx, session.Token); !errors.Is(err, apperrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated for expired session, got %v", err)
	}
	if _, err := repo.GetSession(ctx, session.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected expired session to be purged, got %v", err)
	}
}

func TestSessionLookupUnknownToken(t *testing.T) {
	store := NewSessionStore(newMapSessions(), time.Hour, nil)
	for _, token := range []string{"", "  ", "missing"} {
		if _, err := store.Lookup(context.Background(), token); !errors.Is(err, apperrors.ErrUnauthenticated) {
			t.Fatalf("token %q: expected unauthenticated, got %v", token, err)
		}
	}
}

func TestSessionEstablishRejectsInvalidRole(t *testing.T) {
	store := NewSessionStore(newMapSessions(), time.Hour, nil)
	if _, err := store.Establish(context.Background(), "acc-1", Role("admin")); err == nil {
		t.Fatalf("expected error for invalid role")
	}
}
