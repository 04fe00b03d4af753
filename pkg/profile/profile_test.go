package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	_, err := repo.GetByID(ctx, 1)
	assert.ErrorIs(t, err, ErrProfileNotFound)

	admin, err := repo.Create(ctx, "Admin")
	require.NoError(t, err)
	user, err := repo.Create(ctx, "User")
	require.NoError(t, err)
	assert.NotEqual(t, admin.ID, user.ID)
	assert.True(t, user.Active)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "User", got.Description)

	all, err := repo.FindProfiles(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, admin.ID, all[0].ID)
}

func TestInMemoryRepositorySeed(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	repo.Seed(Profile{ID: 2, Description: "User", Active: true})

	got, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "User", got.Description)

	// New ids allocate past the seeded one
	created, err := repo.Create(ctx, "Auditor")
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
}
