package account

import (
	"context"
	"errors"
)

var (
	// ErrAccountNotFound is returned when no account matches the lookup key
	ErrAccountNotFound = errors.New("account not found")
)

// Repository defines the narrow account-store interface the
// authentication flows depend on. Email and national id are each unique
// across all accounts; implementations must enforce that on Save.
type Repository interface {
	FindByID(ctx context.Context, id int64) (Account, error)
	FindByEmail(ctx context.Context, email string) (Account, error)
	FindByNationalID(ctx context.Context, nationalID string) (Account, error)
	Save(ctx context.Context, account Account) (Account, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	ExistsByID(ctx context.Context, id int64) (bool, error)
}
