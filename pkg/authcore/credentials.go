package authcore

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/tendant/backoffice-idm/pkg/account"
)

// CredentialChecker verifies an email/password pair and returns the
// matching account. Implementations must return ErrInvalidCredentials
// for any failure mode, without distinguishing unknown email, wrong
// password or inactive account.
type CredentialChecker interface {
	Check(ctx context.Context, email, password string) (account.Account, error)
}

// DirectoryCredentialChecker checks credentials against the account
// store using bcrypt.
type DirectoryCredentialChecker struct {
	repo account.Repository
}

func NewDirectoryCredentialChecker(repo account.Repository) *DirectoryCredentialChecker {
	return &DirectoryCredentialChecker{repo: repo}
}

func (c *DirectoryCredentialChecker) Check(ctx context.Context, email, password string) (account.Account, error) {
	acct, err := c.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return account.Account{}, ErrInvalidCredentials
		}
		return account.Account{}, err
	}
	if !acct.Active {
		slog.Info("login rejected for inactive account", "email", email)
		return account.Account{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.Password), []byte(password)); err != nil {
		return account.Account{}, ErrInvalidCredentials
	}
	return acct, nil
}
