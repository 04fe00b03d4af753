package authcore

import "errors"

var (
	// ErrInvalidEmail is returned when the email is malformed
	ErrInvalidEmail = errors.New("invalid email")
	// ErrInvalidNationalID is returned when the national identity
	// document fails validation
	ErrInvalidNationalID = errors.New("invalid national id")
	// ErrDuplicateAccount is returned when the email or national id is
	// already registered
	ErrDuplicateAccount = errors.New("account already exists")
	// ErrInvalidCredentials is returned on login failure. It is
	// deliberately non-specific about whether the email or the password
	// was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountNotFound is returned by forgot-password when the email
	// is not registered
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidCode collapses the cache's missing, mismatched and
	// expired code failures into one client-facing kind
	ErrInvalidCode = errors.New("invalid verification code")
	// ErrPasswordMismatch is returned when the new password and its
	// confirmation differ
	ErrPasswordMismatch = errors.New("passwords do not match")
)
