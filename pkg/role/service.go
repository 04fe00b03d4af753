package role

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tendant/backoffice-idm/pkg/audit"
)

const authorityPrefix = "ROLE_"

// CanonicalName upper-cases a role name and ensures the ROLE_ prefix,
// so "admin" and "ROLE_ADMIN" refer to the same authority.
func CanonicalName(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	if !strings.HasPrefix(name, authorityPrefix) {
		name = authorityPrefix + name
	}
	return name
}

// Service resolves profiles into authorities and manages the role
// catalog.
type Service struct {
	repo Repository
	sink audit.Sink
}

type Option func(*Service)

// WithAuditSink sets the sink role mutations are recorded to.
func WithAuditSink(sink audit.Sink) Option {
	return func(s *Service) {
		s.sink = sink
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AuthoritiesForProfile returns the canonical authority names granted
// to a profile. A profile with no grants yields an empty, non-nil
// slice, not an error.
func (s *Service) AuthoritiesForProfile(ctx context.Context, profileID int64) ([]string, error) {
	names, err := s.repo.FindRoleNamesByProfileID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve authorities for profile %d: %w", profileID, err)
	}
	authorities := make([]string, 0, len(names))
	for _, name := range names {
		authorities = append(authorities, CanonicalName(name))
	}
	audit.BestEffort(ctx, s.sink, audit.Entry{
		Entity:      "role",
		Description: fmt.Sprintf("resolved authorities for profile %d", profileID),
		Operation:   "GET",
		Request:     map[string]interface{}{"profile_id": profileID},
		Response:    map[string]interface{}{"authorities": authorities},
		Result:      audit.ResultSuccess,
	})
	return authorities, nil
}

// FindRoles lists the role catalog.
func (s *Service) FindRoles(ctx context.Context) ([]Role, error) {
	return s.repo.FindRoles(ctx)
}

// CreateRole adds a role under its canonical name.
func (s *Service) CreateRole(ctx context.Context, name, description string) (Role, error) {
	if strings.TrimSpace(name) == "" {
		return Role{}, errors.New("role name cannot be empty")
	}
	role, err := s.repo.CreateRole(ctx, CanonicalName(name), description)
	if err != nil {
		return Role{}, err
	}
	audit.BestEffort(ctx, s.sink, audit.Entry{
		Entity:      "role",
		Description: "create role",
		Operation:   "INSERT",
		Request:     map[string]interface{}{"name": role.Name},
		Result:      audit.ResultSuccess,
	})
	return role, nil
}

// AssignRoles replaces a profile's grant set with the named roles.
// Names are canonicalized before lookup; an unknown name fails the
// whole assignment.
func (s *Service) AssignRoles(ctx context.Context, profileID int64, roleNames []string) error {
	roleIDs := make([]int64, 0, len(roleNames))
	for _, name := range roleNames {
		role, err := s.repo.FindRoleByName(ctx, CanonicalName(name))
		if err != nil {
			return fmt.Errorf("role %q: %w", name, err)
		}
		roleIDs = append(roleIDs, role.ID)
	}
	if err := s.repo.SetProfileRoles(ctx, profileID, roleIDs); err != nil {
		return err
	}
	audit.BestEffort(ctx, s.sink, audit.Entry{
		Entity:      "profile_roles",
		Description: "assign roles to profile",
		Operation:   "UPDATE",
		Request:     map[string]interface{}{"profile_id": profileID, "roles": roleNames},
		Result:      audit.ResultSuccess,
	})
	return nil
}
