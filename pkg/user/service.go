package user

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"mediamaster/pkg/generator"
	"mediamaster/pkg/session"
)

const minPasswordLength = 7

type ServiceInterface interface {
	Register(ctx context.Context, username, password string) (*User, *session.Session, error)
	Login(ctx context.Context, username, password string) (*User, *session.Session, error)
}

// SessionCreator is the slice of the session manager this service needs:
// a successful register or login opens a session.
type SessionCreator interface {
	CreateSession(ctx context.Context, userID string) (*session.Session, error)
}

type Service struct {
	Repo     Repository
	Sessions SessionCreator
}

func NewService(repo Repository, sessions SessionCreator) *Service {
	return &Service{Repo: repo, Sessions: sessions}
}

func (s *Service) Register(ctx context.Context, username, password string) (*User, *session.Session, error) {
	if len(password) < minPasswordLength {
		return nil, nil, fmt.Errorf("%w: password must be at least %d characters long", ErrInvalidInput, minPasswordLength)
	}

	existing, err := s.Repo.FindByUsername(ctx, username)
	if existing != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrUserExists, username)
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hashing password error: %w", err)
	}

	userID, err := generator.NewUserID()
	if err != nil {
		return nil, nil, fmt.Errorf("userID gen error: %w", err)
	}

	u := &User{
		ID:       userID,
		Username: username,
		Password: string(hashedPassword),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, nil, err
	}

	sess, err := s.Sessions.CreateSession(ctx, u.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}

	return u, sess, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (*User, *session.Session, error) {
	u, err := s.Repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrAuthentication, username)
	}

	sess, err := s.Sessions.CreateSession(ctx, u.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}

	return u, sess, nil
}
