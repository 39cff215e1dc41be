package service

import "errors"

// Domain error taxonomy. Controllers map these to HTTP statuses; nothing
// below this layer leaks storage detail to callers.
var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the caller does not own the entity.
	ErrForbidden = errors.New("forbidden")

	// ErrVersionConflict is returned when a stock update carries a stale
	// expected version. The caller must re-read and resubmit; nothing is
	// retried here.
	ErrVersionConflict = errors.New("version conflict")

	// ErrDuplicateName is returned when the owner already has a product with
	// the same name (case-insensitive).
	ErrDuplicateName = errors.New("product name already exists")

	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials is returned on login with an unknown email or a
	// wrong password; the two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidInput is returned when a request fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthenticated is returned when a bearer token is invalid or its
	// user no longer exists.
	ErrUnauthenticated = errors.New("unauthenticated")
)
