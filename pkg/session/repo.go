package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// MySQL error 1452: cannot add or update a child row, FK constraint fails.
const mysqlFKViolation = 1452

type MySQLSessionRepo struct {
	DB *sql.DB
}

func NewMySQLSessionRepo(db *sql.DB) *MySQLSessionRepo {
	return &MySQLSessionRepo{DB: db}
}

func (r *MySQLSessionRepo) Create(ctx context.Context, s *Session) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO sessions (sessionId, userId, openedAt, closesAt)
		VALUES (?, ?, ?, ?)
	`, s.ID, s.UserID, s.OpenedAt, s.ClosesAt)
	if err != nil {
		return classify("create session", err)
	}
	return nil
}

func (r *MySQLSessionRepo) GetByID(ctx context.Context, sessionID string) (*Session, error) {
	var s Session
	err := r.DB.QueryRowContext(ctx, `
		SELECT sessionId, userId, openedAt, closesAt
		FROM sessions WHERE sessionId = ?
	`, sessionID).Scan(&s.ID, &s.UserID, &s.OpenedAt, &s.ClosesAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: sessionId %s", ErrNotFound, sessionID)
	}
	if err != nil {
		return nil, classify("get session", err)
	}
	return &s, nil
}

// GetByUserID returns the most recently opened session for the user. Older
// rows for the same user are leftovers from interrupted refreshes.
func (r *MySQLSessionRepo) GetByUserID(ctx context.Context, userID string) (*Session, error) {
	var s Session
	err := r.DB.QueryRowContext(ctx, `
		SELECT sessionId, userId, openedAt, closesAt
		FROM sessions WHERE userId = ?
		ORDER BY openedAt DESC LIMIT 1
	`, userID).Scan(&s.ID, &s.UserID, &s.OpenedAt, &s.ClosesAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: userId %s", ErrNotFound, userID)
	}
	if err != nil {
		return nil, classify("get session by user", err)
	}
	return &s, nil
}

func (r *MySQLSessionRepo) DeleteByID(ctx context.Context, sessionID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE sessionId = ?`, sessionID)
	if err != nil {
		return classify("delete session", err)
	}
	return checkDeleted(res, "sessionId", sessionID)
}

func (r *MySQLSessionRepo) DeleteByUserID(ctx context.Context, userID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE userId = ?`, userID)
	if err != nil {
		return classify("delete session by user", err)
	}
	return checkDeleted(res, "userId", userID)
}

// Deleting nothing counts as ErrNotFound here. Callers that want an
// idempotent delete ignore it themselves.
func checkDeleted(res sql.Result, key, value string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return classify("delete session", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %s", ErrNotFound, key, value)
	}
	return nil
}

func classify(op string, err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlFKViolation {
		return fmt.Errorf("%w: %s: %v", ErrReferential, op, err)
	}
	// sqlite (used in tests) reports the same condition as a plain string.
	if strings.Contains(err.Error(), "FOREIGN KEY") {
		return fmt.Errorf("%w: %s: %v", ErrReferential, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}
