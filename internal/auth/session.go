package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/job-corner/internal/apperrors"
)

// Session binds a token to an authenticated account until ExpiresAt.
type Session struct {
	Token     string
	AccountID string
	Role      Role
	CreatedAt time.Time
	ExpiresAt time.Time
}

// ErrSessionNotFound is returned by SessionRepository implementations for unknown tokens.
var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) error
	GetSession(ctx context.Context, token string) (Session, error)
	DeleteSession(ctx context.Context, token string) error
}

type SessionStore struct {
	repo   SessionRepository
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

func NewSessionStore(repo SessionRepository, ttl time.Duration, logger *slog.Logger) *SessionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{repo: repo, ttl: ttl, now: time.Now, logger: logger}
}

// WithClock replaces the time source; used by tests to exercise expiry.
func (s *SessionStore) WithClock(now func() time.Time) *SessionStore {
	s.now = now
	return s
}

func (s *SessionStore) TTL() time.Duration { return s.ttl }

func (s *SessionStore) Establish(ctx context.Context, accountID string, role Role) (Session, error) {
	if accountID == "" || !role.Valid() {
		return Session{}, apperrors.ErrUnauthenticated
	}
	now := s.now().UTC()
	session := Session{
		Token:     uuid.NewString(),
		AccountID: accountID,
		Role:      role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return Session{}, err
	}
	s.logger.Info("session established",
		"event", "session_established",
		"module", "auth",
		"account_id", accountID,
		"role", role.String(),
	)
	return session, nil
}

// Lookup resolves a token to its principal. Absent and expired tokens yield ErrUnauthenticated.
func (s *SessionStore) Lookup(ctx context.Context, token string) (*Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	session, err := s.repo.GetSession(ctx, token)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, apperrors.ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	if !s.now().Before(session.ExpiresAt) {
		if err := s.repo.DeleteSession(ctx, token); err != nil {
			s.logger.Warn("expired session purge failed",
				"event", "session_purge_failed",
				"module", "auth",
				"error", err.Error(),
			)
		}
		return nil, apperrors.ErrUnauthenticated
	}
	return &Principal{AccountID: session.AccountID, Role: session.Role}, nil
}

func (s *SessionStore) Revoke(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return apperrors.ErrUnauthenticated
	}
	err := s.repo.DeleteSession(ctx, token)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	return err
}
