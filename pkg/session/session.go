package session

import (
	"context"
	"time"
)

// TTL is how long a session stays valid without a refresh.
const TTL = 25 * time.Minute

type Session struct {
	ID       string
	UserID   string
	OpenedAt time.Time
	ClosesAt time.Time
}

// Expired reports whether the session is past its closing time. Expiry is
// always computed from closesAt, never flagged in storage.
func (s *Session) Expired(now time.Time) bool {
	return s.ClosesAt.Before(now)
}

type Repository interface {
	Create(ctx context.Context, s *Session) error
	GetByID(ctx context.Context, sessionID string) (*Session, error)
	GetByUserID(ctx context.Context, userID string) (*Session, error)
	DeleteByID(ctx context.Context, sessionID string) error
	DeleteByUserID(ctx context.Context, userID string) error
}
