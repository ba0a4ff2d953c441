package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type MySQLRepo struct {
	DB *sql.DB
}

func NewMySQLRepo(db *sql.DB) *MySQLRepo {
	return &MySQLRepo{DB: db}
}

func (r *MySQLRepo) Create(ctx context.Context, user *User) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (userId, username, password) VALUES (?, ?, ?)",
		user.ID, user.Username, user.Password,
	)
	if err != nil {
		return fmt.Errorf("%w: create user: %v", ErrStorage, err)
	}
	return nil
}

func (r *MySQLRepo) FindByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := r.DB.QueryRowContext(ctx,
		"SELECT userId, username, password FROM users WHERE username = ?",
		username,
	).Scan(&u.ID, &u.Username, &u.Password)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, username)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find user: %v", ErrStorage, err)
	}
	return &u, nil
}

func (r *MySQLRepo) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.DB.QueryRowContext(ctx,
		"SELECT userId, username, password FROM users WHERE userId = ?",
		id,
	).Scan(&u.ID, &u.Username, &u.Password)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: userId %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find user by id: %v", ErrStorage, err)
	}
	return &u, nil
}
