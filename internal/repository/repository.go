package repository

import "errors"

var (
	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrVersionConflict is returned when a conditional write matched no row
	// because the stored version no longer equals the expected one.
	ErrVersionConflict = errors.New("version conflict")
)

// UniqueConstraintError represents a database unique constraint violation error.
type UniqueConstraintError struct {
	Detail string
}

func (u *UniqueConstraintError) Error() string {
	return "resource must be unique: " + u.Detail
}
