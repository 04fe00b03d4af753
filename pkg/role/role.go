// Package role resolves profiles into authority names and manages the
// role catalog.
package role

import (
	"context"
	"errors"
)

var (
	// ErrRoleNotFound is returned when no role matches the lookup key
	ErrRoleNotFound = errors.New("role not found")
	// ErrRoleExists is returned when creating a role whose name is taken
	ErrRoleExists = errors.New("role already exists")
)

// Role is a named authority that can be granted to profiles
type Role struct {
	ID          int64
	Name        string
	Description string
}

// Repository defines role storage. SetProfileRoles replaces the full
// grant set of a profile atomically.
type Repository interface {
	FindRoles(ctx context.Context) ([]Role, error)
	FindRoleByName(ctx context.Context, name string) (Role, error)
	CreateRole(ctx context.Context, name, description string) (Role, error)
	FindRoleNamesByProfileID(ctx context.Context, profileID int64) ([]string, error)
	SetProfileRoles(ctx context.Context, profileID int64, roleIDs []int64) error
}
