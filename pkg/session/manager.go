package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mediamaster/pkg/generator"
)

// Manager owns the session lifecycle: creation on login, rotation on every
// authenticated request, deletion on expiry or logout. The client only ever
// holds the opaque session ID in a cookie; everything it sends back is
// re-validated against the store.
type Manager struct {
	Repo Repository
}

func NewManager(repo Repository) *Manager {
	return &Manager{Repo: repo}
}

func (m *Manager) CreateSession(ctx context.Context, userID string) (*Session, error) {
	sessionID, err := generator.NewSessionID()
	if err != nil {
		return nil, fmt.Errorf("sessionID gen error: %w", err)
	}

	now := time.Now()
	s := &Session{
		ID:       sessionID,
		UserID:   userID,
		OpenedAt: now,
		ClosesAt: now.Add(TTL),
	}
	if err := m.Repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *Manager) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	return m.Repo.GetByID(ctx, sessionID)
}

func (m *Manager) GetSessionByUserID(ctx context.Context, userID string) (*Session, error) {
	return m.Repo.GetByUserID(ctx, userID)
}

func (m *Manager) IsExpired(ctx context.Context, userID string) (bool, error) {
	s, err := m.Repo.GetByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	return s.Expired(time.Now()), nil
}

func (m *Manager) DeleteSession(ctx context.Context, sessionID string) error {
	return m.Repo.DeleteByID(ctx, sessionID)
}

func (m *Manager) DeleteSessionByUserID(ctx context.Context, userID string) error {
	return m.Repo.DeleteByUserID(ctx, userID)
}

// RefreshSession reconciles whatever cookies the client presented with the
// store and, when the session is still live, replaces it with a new row under
// a new ID. Called once per authenticated request.
//
// The session cookie is authoritative when present; when the client lost it
// but kept the userId cookie, the most recent session for that user stands in.
// The new row is created before the old one is removed, so a crash between
// the two leaves an orphan row instead of a logged-out user. The old row is
// deleted by its own ID, so a concurrent refresh that already rotated it
// surfaces as ErrNotFound (ignored) rather than silently deleting a sibling's
// fresh session.
func (m *Manager) RefreshSession(ctx context.Context, userID, sessionID string) (*Session, error) {
	var current *Session
	var err error

	if sessionID != "" {
		current, err = m.Repo.GetByID(ctx, sessionID)
	} else {
		current, err = m.Repo.GetByUserID(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	expired, err := m.IsExpired(ctx, current.UserID)
	if err != nil {
		return nil, err
	}
	if expired {
		if err := m.Repo.DeleteByUserID(ctx, current.UserID); err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: userId %s", ErrExpired, current.UserID)
	}

	// The user ID from the store, not from the cookie: the cookie copy is
	// untrusted input.
	fresh, err := m.CreateSession(ctx, current.UserID)
	if err != nil {
		return nil, err
	}

	if err := m.Repo.DeleteByID(ctx, current.ID); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return fresh, nil
}
