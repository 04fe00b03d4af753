package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/tendant/backoffice-idm/pkg/audit"
)

var (
	// ErrWrongPassword is returned when the supplied current password
	// does not match the stored hash.
	ErrWrongPassword = errors.New("current password is incorrect")
	// ErrPasswordMismatch is returned when the new password and its
	// confirmation differ.
	ErrPasswordMismatch = errors.New("new password and confirmation do not match")
)

// Service exposes self-service account management on top of Repository.
type Service struct {
	repo  Repository
	sink  audit.Sink
	bcost int
}

type Option func(*Service)

// WithAuditSink sets the sink account operations are recorded to.
func WithAuditSink(sink audit.Sink) Option {
	return func(s *Service) {
		s.sink = sink
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:  repo,
		bcost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetByID fetches a single account.
func (s *Service) GetByID(ctx context.Context, id int64) (Account, error) {
	return s.repo.FindByID(ctx, id)
}

// GetByEmail fetches a single account by email.
func (s *Service) GetByEmail(ctx context.Context, email string) (Account, error) {
	return s.repo.FindByEmail(ctx, email)
}

// UpdateDetails updates the mutable descriptive fields of an account.
// Credentials and activation state are managed elsewhere.
func (s *Service) UpdateDetails(ctx context.Context, id int64, name, surname string, age int32) (Account, error) {
	acct, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Account{}, err
	}
	acct.Name = name
	acct.Surname = surname
	acct.Age = age
	updated, err := s.repo.Save(ctx, acct)
	if err != nil {
		return Account{}, fmt.Errorf("failed to update account %d: %w", id, err)
	}
	audit.BestEffort(ctx, s.sink, audit.Entry{
		Entity:      "account",
		Description: "update account details",
		Operation:   "UPDATE",
		Request:     map[string]interface{}{"account_id": id},
		Result:      audit.ResultSuccess,
	})
	return updated, nil
}

// ChangePassword verifies the current password and replaces it with the
// new one. The new password must match its confirmation.
func (s *Service) ChangePassword(ctx context.Context, id int64, currentPassword, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}
	acct, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.Password), []byte(currentPassword)); err != nil {
		audit.BestEffort(ctx, s.sink, audit.Entry{
			Entity:      "account",
			Description: "change password rejected",
			Operation:   "UPDATE",
			Request:     map[string]interface{}{"account_id": id},
			Result:      audit.ResultFailure,
		})
		return ErrWrongPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, id, string(hash)); err != nil {
		return err
	}
	slog.Info("account password changed", "account_id", id)
	audit.BestEffort(ctx, s.sink, audit.Entry{
		Entity:      "account",
		Description: "change password",
		Operation:   "UPDATE",
		Request:     map[string]interface{}{"account_id": id},
		Result:      audit.ResultSuccess,
	})
	return nil
}

// SetActive toggles the activation flag on an account.
func (s *Service) SetActive(ctx context.Context, id int64, active bool) error {
	acct, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	acct.Active = active
	if _, err := s.repo.Save(ctx, acct); err != nil {
		return fmt.Errorf("failed to update account %d: %w", id, err)
	}
	audit.BestEffort(ctx, s.sink, audit.Entry{
		Entity:      "account",
		Description: fmt.Sprintf("set active=%t", active),
		Operation:   "UPDATE",
		Request:     map[string]interface{}{"account_id": id},
		Result:      audit.ResultSuccess,
	})
	return nil
}
