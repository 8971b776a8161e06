package services

import (
	"errors"
	"fmt"

	"cramazon/internal/repositories"
)

// Service-level error taxonomy. Handlers branch on these sentinels with
// errors.Is to pick a response status; services never let a raw storage
// error reach a handler untranslated.
var (
	// ErrTokenMissing means no token was supplied on an authenticated endpoint.
	ErrTokenMissing = errors.New("authentication token missing")
	// ErrTokenInvalid means the token failed signature or expiry checks.
	ErrTokenInvalid = errors.New("authentication token invalid")
	// ErrAccountNotFound means a verified token points at a deleted account.
	ErrAccountNotFound = errors.New("account no longer exists")
	// ErrInvalidCredentials means login failed; deliberately does not say which part.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden means the caller is authenticated but not entitled to the mutation.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound means no record exists at the requested ID.
	ErrNotFound = errors.New("not found")
	// ErrConflict means a uniqueness invariant rejected a create or update.
	ErrConflict = errors.New("already exists")
	// ErrUnavailable means a storage call timed out; the request may be retried.
	ErrUnavailable = errors.New("storage unavailable")
)

// mapStorageError lifts repository sentinels into the service taxonomy.
func mapStorageError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repositories.ErrDuplicate):
		return ErrConflict
	case errors.Is(err, repositories.ErrUnavailable):
		return ErrUnavailable
	default:
		return fmt.Errorf("storage failure: %w", err)
	}
}
