package role

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/backoffice-idm/pkg/audit"
)

// recordingSink captures audit entries and can be told to fail.
type recordingSink struct {
	entries []audit.Entry
	fail    bool
}

func (s *recordingSink) Record(ctx context.Context, entry audit.Entry) error {
	if s.fail {
		return errors.New("audit store unavailable")
	}
	s.entries = append(s.entries, entry)
	return nil
}

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare name", in: "admin", want: "ROLE_ADMIN"},
		{name: "already prefixed", in: "ROLE_ADMIN", want: "ROLE_ADMIN"},
		{name: "mixed case prefixed", in: "role_Admin", want: "ROLE_ADMIN"},
		{name: "surrounding whitespace", in: "  viewer ", want: "ROLE_VIEWER"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalName(tt.in))
		})
	}
}

func TestCreateRole(t *testing.T) {
	ctx := context.Background()
	service := NewService(NewInMemoryRepository())

	role, err := service.CreateRole(ctx, "admin", "full access")
	require.NoError(t, err)
	assert.Equal(t, "ROLE_ADMIN", role.Name)

	// Same authority under a different spelling
	_, err = service.CreateRole(ctx, "ROLE_ADMIN", "dup")
	assert.ErrorIs(t, err, ErrRoleExists)

	_, err = service.CreateRole(ctx, "  ", "blank")
	assert.Error(t, err)
}

func TestAuthoritiesForProfile(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()
	service := NewService(repo)

	admin, err := service.CreateRole(ctx, "admin", "")
	require.NoError(t, err)
	viewer, err := service.CreateRole(ctx, "viewer", "")
	require.NoError(t, err)

	require.NoError(t, repo.SetProfileRoles(ctx, 1, []int64{admin.ID, viewer.ID}))

	authorities, err := service.AuthoritiesForProfile(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"ROLE_ADMIN", "ROLE_VIEWER"}, authorities)

	// Unknown profile resolves to an empty, non-nil slice
	authorities, err = service.AuthoritiesForProfile(ctx, 42)
	require.NoError(t, err)
	assert.NotNil(t, authorities)
	assert.Empty(t, authorities)
}

func TestAuthoritiesForProfileAudits(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()
	sink := &recordingSink{}
	service := NewService(repo, WithAuditSink(sink))

	admin, err := service.CreateRole(ctx, "admin", "")
	require.NoError(t, err)
	require.NoError(t, repo.SetProfileRoles(ctx, 1, []int64{admin.ID}))
	sink.entries = nil

	authorities, err := service.AuthoritiesForProfile(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"ROLE_ADMIN"}, authorities)

	require.Len(t, sink.entries, 1)
	entry := sink.entries[0]
	assert.Equal(t, "role", entry.Entity)
	assert.Equal(t, "GET", entry.Operation)
	assert.Equal(t, audit.ResultSuccess, entry.Result)
	assert.Equal(t, int64(1), entry.Request["profile_id"])
}

func TestAuthoritiesForProfileSurvivesAuditFailure(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()
	sink := &recordingSink{fail: true}
	service := NewService(repo, WithAuditSink(sink))

	admin, err := service.CreateRole(ctx, "admin", "")
	require.NoError(t, err)
	require.NoError(t, repo.SetProfileRoles(ctx, 1, []int64{admin.ID}))

	// A failing sink must not fail the resolution
	authorities, err := service.AuthoritiesForProfile(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"ROLE_ADMIN"}, authorities)
}

func TestAssignRoles(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()
	service := NewService(repo)

	_, err := service.CreateRole(ctx, "admin", "")
	require.NoError(t, err)
	_, err = service.CreateRole(ctx, "viewer", "")
	require.NoError(t, err)

	require.NoError(t, service.AssignRoles(ctx, 7, []string{"admin", "ROLE_VIEWER"}))
	authorities, err := service.AuthoritiesForProfile(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"ROLE_ADMIN", "ROLE_VIEWER"}, authorities)

	// Reassignment replaces the previous grant set
	require.NoError(t, service.AssignRoles(ctx, 7, []string{"viewer"}))
	authorities, err = service.AuthoritiesForProfile(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"ROLE_VIEWER"}, authorities)

	// Unknown role fails the whole assignment
	err = service.AssignRoles(ctx, 7, []string{"viewer", "missing"})
	assert.ErrorIs(t, err, ErrRoleNotFound)
	authorities, err = service.AuthoritiesForProfile(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"ROLE_VIEWER"}, authorities)
}
