package user

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrUserExists     = errors.New("user already exists")
	ErrAuthentication = errors.New("invalid credentials")
	ErrInvalidInput   = errors.New("invalid input")
	ErrStorage        = errors.New("user storage failure")
)

type User struct {
	Username string `json:"username"`
	ID       string `json:"id"`
	Password string `json:"-"`
}

type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
}
