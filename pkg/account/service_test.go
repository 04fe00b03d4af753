package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func seedAccount(t *testing.T, repo Repository, email, nationalID, password string) Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	acct, err := repo.Save(context.Background(), Account{
		Name:       "Test",
		Surname:    "Account",
		Age:        30,
		NationalID: nationalID,
		Email:      email,
		Password:   string(hash),
		Active:     true,
	})
	require.NoError(t, err)
	return acct
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()
	service := NewService(repo)

	acct := seedAccount(t, repo, "user@example.com", "1234567890101", "OldPass1!")

	tests := []struct {
		name            string
		accountID       int64
		currentPassword string
		newPassword     string
		confirmPassword string
		wantErr         error
	}{
		{
			name:            "valid change",
			accountID:       acct.ID,
			currentPassword: "OldPass1!",
			newPassword:     "NewPass2@",
			confirmPassword: "NewPass2@",
		},
		{
			name:            "wrong current password",
			accountID:       acct.ID,
			currentPassword: "Incorrect1!",
			newPassword:     "NewPass2@",
			confirmPassword: "NewPass2@",
			wantErr:         ErrWrongPassword,
		},
		{
			name:            "confirmation mismatch",
			accountID:       acct.ID,
			currentPassword: "OldPass1!",
			newPassword:     "NewPass2@",
			confirmPassword: "Different3#",
			wantErr:         ErrPasswordMismatch,
		},
		{
			name:            "unknown account",
			accountID:       9999,
			currentPassword: "OldPass1!",
			newPassword:     "NewPass2@",
			confirmPassword: "NewPass2@",
			wantErr:         ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ChangePassword(ctx, tt.accountID, tt.currentPassword, tt.newPassword, tt.confirmPassword)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)

			updated, err := repo.FindByID(ctx, tt.accountID)
			require.NoError(t, err)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte(tt.newPassword)))
		})
	}
}

func TestUpdateDetails(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()
	service := NewService(repo)

	acct := seedAccount(t, repo, "user@example.com", "1234567890101", "OldPass1!")

	updated, err := service.UpdateDetails(ctx, acct.ID, "Updated", "Name", 42)
	require.NoError(t, err)
	assert.Equal(t, "Updated", updated.Name)
	assert.Equal(t, "Name", updated.Surname)
	assert.Equal(t, int32(42), updated.Age)
	// Credentials untouched
	assert.Equal(t, acct.Password, updated.Password)

	_, err = service.UpdateDetails(ctx, 9999, "X", "Y", 1)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestSetActive(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()
	service := NewService(repo)

	acct := seedAccount(t, repo, "user@example.com", "1234567890101", "OldPass1!")

	require.NoError(t, service.SetActive(ctx, acct.ID, false))
	got, err := repo.FindByID(ctx, acct.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	require.NoError(t, service.SetActive(ctx, acct.ID, true))
	got, err = repo.FindByID(ctx, acct.ID)
	require.NoError(t, err)
	assert.True(t, got.Active)
}

func TestInMemoryRepositoryUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	seedAccount(t, repo, "user@example.com", "1234567890101", "Pass1!aa")

	_, err := repo.Save(ctx, Account{Email: "USER@example.com", NationalID: "1234567890102"})
	assert.ErrorIs(t, err, ErrDuplicateKey, "email uniqueness is case-insensitive")

	_, err = repo.Save(ctx, Account{Email: "other@example.com", NationalID: "1234567890101"})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	_, err = repo.Save(ctx, Account{Email: "other@example.com", NationalID: "1234567890102"})
	assert.NoError(t, err)
}

func TestInMemoryRepositoryLookups(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	acct := seedAccount(t, repo, "user@example.com", "1234567890101", "Pass1!aa")

	byEmail, err := repo.FindByEmail(ctx, "USER@EXAMPLE.COM")
	require.NoError(t, err)
	assert.Equal(t, acct.ID, byEmail.ID)

	byDoc, err := repo.FindByNationalID(ctx, "1234567890101")
	require.NoError(t, err)
	assert.Equal(t, acct.ID, byDoc.ID)

	exists, err := repo.ExistsByID(ctx, acct.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByID(ctx, 9999)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.FindByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
