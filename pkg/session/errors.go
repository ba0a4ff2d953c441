package session

import "errors"

var (
	// ErrNotFound means a lookup matched zero rows. Callers treat it as
	// "not authenticated", not as a storage failure.
	ErrNotFound = errors.New("session not found")

	// ErrStorage wraps any unexpected failure from the session store.
	ErrStorage = errors.New("session storage failure")

	// ErrReferential means an operation referenced a userId with no user row
	// behind it, which only happens with a tampered or stale cookie.
	ErrReferential = errors.New("session references unknown user")

	// ErrExpired is returned by a refresh that found the session past its
	// closesAt. The stale row has already been deleted by then.
	ErrExpired = errors.New("session expired")
)
