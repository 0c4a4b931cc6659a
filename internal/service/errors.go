// Package service implements the complaint portal's use cases: accounts and
// sessions, the complaint workflow and resolution feedback.  Every failure a
// caller is expected to handle is reported as one of the sentinel errors
// below, usually wrapped with a human-readable detail.
package service

import "errors"

var (
	// ErrValidation reports a missing or malformed required field.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateEmail reports a registration with an email already in use.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials reports an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotAuthenticated reports a request without a session.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrForbidden reports a role or ownership mismatch.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound reports a missing entity.
	ErrNotFound = errors.New("not found")
	// ErrNotResolved reports feedback on a complaint that is not Resolved.
	ErrNotResolved = errors.New("complaint is not resolved")
	// ErrInvalidReference reports feedback naming a complaint that is
	// missing or owned by someone else.
	ErrInvalidReference = errors.New("invalid complaint reference")
	// ErrAlreadyExists reports a second admin bootstrap.
	ErrAlreadyExists = errors.New("already exists")
	// ErrPersistence reports a failed read or write against the store.
	ErrPersistence = errors.New("persistence failure")
)
