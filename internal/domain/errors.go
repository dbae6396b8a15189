package domain

import "errors"

// Terminal request errors. Handlers translate these into HTTP status codes;
// everything else surfaces as an internal server error.
var (
	// ErrMissingCredentials means an operation requiring identity was
	// attempted without an Authorization header.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password, so responses do not reveal whether an account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden means the caller authenticated but does not own the
	// target item.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means the referenced record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means an insert violated a uniqueness constraint.
	ErrConflict = errors.New("already exists")

	// ErrInvalidInput means a request payload failed validation.
	ErrInvalidInput = errors.New("invalid input")
)
