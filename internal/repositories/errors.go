package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Storage-level error kinds. Implementations translate driver errors into
// these sentinels so callers can branch with errors.Is instead of matching
// on driver-specific types.
var (
	// ErrNotFound indicates no record matched the given key.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate indicates a unique constraint rejected the write.
	ErrDuplicate = errors.New("duplicate key")
	// ErrUnavailable indicates the storage call exceeded its deadline or was cancelled.
	ErrUnavailable = errors.New("storage unavailable")
)

// translate maps GORM and context errors to the package sentinels.
// Unknown errors pass through unchanged.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrUnavailable
	default:
		return err
	}
}
