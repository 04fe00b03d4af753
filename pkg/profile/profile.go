// Package profile manages the access profiles accounts are assigned to.
// A profile groups role grants; the role package resolves a profile into
// its authority names.
package profile

import (
	"context"
	"errors"
)

// ErrProfileNotFound is returned when no profile matches the lookup key
var ErrProfileNotFound = errors.New("profile not found")

// Profile is a named bundle of role grants
type Profile struct {
	ID          int64
	Description string
	Active      bool
}

// Repository defines profile storage
type Repository interface {
	GetByID(ctx context.Context, id int64) (Profile, error)
	FindProfiles(ctx context.Context) ([]Profile, error)
	Create(ctx context.Context, description string) (Profile, error)
}
