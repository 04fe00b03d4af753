// Package authcore orchestrates the signup, login, forgot-password and
// reset-password flows. It owns no storage of its own: accounts live in
// the account repository, recovery codes in the verification cache, and
// session state only inside the signed token.
package authcore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/tendant/backoffice-idm/pkg/account"
	"github.com/tendant/backoffice-idm/pkg/audit"
	"github.com/tendant/backoffice-idm/pkg/nationalid"
	"github.com/tendant/backoffice-idm/pkg/password"
	"github.com/tendant/backoffice-idm/pkg/role"
	"github.com/tendant/backoffice-idm/pkg/tokengenerator"
	"github.com/tendant/backoffice-idm/pkg/verification"
)

// DefaultAuthority is granted at login when the account has no profile.
const DefaultAuthority = "ROLE_USER"

// DefaultProfileID is the profile assigned to newly signed-up accounts.
const DefaultProfileID int64 = 2

// Notifier is the outbound side channel for credential and recovery
// mail. Failures are logged, never propagated to the flows.
type Notifier interface {
	SendVerificationCode(email, code string) error
	SendCredentials(email, generatedPassword string) error
}

// AuthenticatedPrincipal is the identity a successful login produces.
// It is a plain value, separate from the stored Account record.
type AuthenticatedPrincipal struct {
	Email       string
	Authorities []string
}

// SignupParams carries the client-supplied fields of a signup request.
// The password is always generated server-side.
type SignupParams struct {
	Name       string
	Surname    string
	Age        int32
	NationalID string
	Email      string
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token     string
	ExpiresIn int64
	Principal AuthenticatedPrincipal
}

// Service implements the authentication flows.
type Service struct {
	accounts         account.Repository
	roles            *role.Service
	codes            *verification.Cache
	tokens           tokengenerator.TokenGenerator
	notifier         Notifier
	checker          CredentialChecker
	policy           *password.Policy
	sink             audit.Sink
	defaultProfileID int64
}

type Option func(*Service)

// WithCredentialChecker overrides the bcrypt directory checker.
func WithCredentialChecker(checker CredentialChecker) Option {
	return func(s *Service) {
		s.checker = checker
	}
}

// WithPasswordPolicy overrides the default composition policy.
func WithPasswordPolicy(policy *password.Policy) Option {
	return func(s *Service) {
		s.policy = policy
	}
}

// WithAuditSink sets the sink flow outcomes are recorded to.
func WithAuditSink(sink audit.Sink) Option {
	return func(s *Service) {
		s.sink = sink
	}
}

// WithDefaultProfileID overrides the profile assigned at signup.
func WithDefaultProfileID(id int64) Option {
	return func(s *Service) {
		s.defaultProfileID = id
	}
}

func NewService(
	accounts account.Repository,
	roles *role.Service,
	codes *verification.Cache,
	tokens tokengenerator.TokenGenerator,
	notifier Notifier,
	opts ...Option,
) *Service {
	s := &Service{
		accounts:         accounts,
		roles:            roles,
		codes:            codes,
		tokens:           tokens,
		notifier:         notifier,
		policy:           password.DefaultPolicy(),
		defaultProfileID: DefaultProfileID,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.checker == nil {
		s.checker = NewDirectoryCredentialChecker(accounts)
	}
	return s
}

// Signup registers a new account with a server-generated password and
// emails the password to the owner. Validation and the duplicate check
// run before anything is persisted, so a failed signup leaves no
// partial account behind.
func (s *Service) Signup(ctx context.Context, params SignupParams) (account.Account, error) {
	if !strings.Contains(params.Email, "@") {
		return account.Account{}, ErrInvalidEmail
	}
	if !nationalid.IsValid(params.NationalID) {
		return account.Account{}, ErrInvalidNationalID
	}

	generated, err := s.policy.Generate()
	if err != nil {
		return account.Account{}, fmt.Errorf("failed to generate password: %w", err)
	}
	if !s.policy.Validate(generated) {
		return account.Account{}, fmt.Errorf("generated password failed policy check")
	}

	if _, err := s.accounts.FindByEmail(ctx, params.Email); err == nil {
		return account.Account{}, ErrDuplicateAccount
	} else if !errors.Is(err, account.ErrAccountNotFound) {
		return account.Account{}, err
	}
	if _, err := s.accounts.FindByNationalID(ctx, params.NationalID); err == nil {
		return account.Account{}, ErrDuplicateAccount
	} else if !errors.Is(err, account.ErrAccountNotFound) {
		return account.Account{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(generated), bcrypt.DefaultCost)
	if err != nil {
		return account.Account{}, fmt.Errorf("failed to hash password: %w", err)
	}

	profileID := s.defaultProfileID
	created, err := s.accounts.Save(ctx, account.Account{
		Name:       params.Name,
		Surname:    params.Surname,
		Age:        params.Age,
		NationalID: params.NationalID,
		Email:      params.Email,
		Password:   string(hash),
		Active:     true,
		ProfileID:  &profileID,
	})
	if err != nil {
		if errors.Is(err, account.ErrDuplicateKey) {
			return account.Account{}, ErrDuplicateAccount
		}
		return account.Account{}, err
	}

	// A failed email must not fail the signup.
	if err := s.notifier.SendCredentials(created.Email, generated); err != nil {
		slog.Error("failed to send credentials email", "email", created.Email, "err", err)
	}

	audit.BestEffort(ctx, s.sink, audit.Entry{
		Entity:      "account",
		Description: "signup",
		Operation:   "INSERT",
		Request:     map[string]interface{}{"email": created.Email},
		Result:      audit.ResultSuccess,
	})
	return created, nil
}

// Login verifies credentials, resolves the account's authorities and
// mints a session token. Any credential failure surfaces as
// ErrInvalidCredentials without further detail.
func (s *Service) Login(ctx context.Context, email, pass string) (LoginResult, error) {
	acct, err := s.checker.Check(ctx, email, pass)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			audit.BestEffort(ctx, s.sink, audit.Entry{
				Entity:      "auth",
				Description: "login rejected",
				Operation:   "LOGIN",
				Request:     map[string]interface{}{"email": email},
				Result:      audit.ResultFailure,
			})
		}
		return LoginResult{}, err
	}

	var authorities []string
	if acct.ProfileID != nil {
		authorities, err = s.roles.AuthoritiesForProfile(ctx, *acct.ProfileID)
		if err != nil {
			return LoginResult{}, err
		}
	} else {
		authorities = []string{DefaultAuthority}
	}

	token, _, err := s.tokens.GenerateToken(acct.Email)
	if err != nil {
		return LoginResult{}, fmt.Errorf("failed to generate token: %w", err)
	}

	audit.BestEffort(ctx, s.sink, audit.Entry{
		Entity:      "auth",
		Description: "login",
		Operation:   "LOGIN",
		Request:     map[string]interface{}{"email": acct.Email},
		Result:      audit.ResultSuccess,
	})
	return LoginResult{
		Token:     token,
		ExpiresIn: int64(s.tokens.ExpirationWindow().Seconds()),
		Principal: AuthenticatedPrincipal{Email: acct.Email, Authorities: authorities},
	}, nil
}

// ForgotPassword issues a recovery code for the account and emails it.
// An unregistered email reports ErrAccountNotFound.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	acct, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			audit.BestEffort(ctx, s.sink, audit.Entry{
				Entity:      "auth",
				Description: "forgot password for unknown email",
				Operation:   "FORGOT_PASSWORD",
				Request:     map[string]interface{}{"email": email},
				Result:      audit.ResultNotFound,
			})
			return ErrAccountNotFound
		}
		return err
	}

	code, err := s.codes.Issue(acct.Email)
	if err != nil {
		return fmt.Errorf("failed to issue verification code: %w", err)
	}
	if err := s.notifier.SendVerificationCode(acct.Email, code); err != nil {
		slog.Error("failed to send verification code email", "email", acct.Email, "err", err)
	}

	audit.BestEffort(ctx, s.sink, audit.Entry{
		Entity:      "auth",
		Description: "forgot password",
		Operation:   "FORGOT_PASSWORD",
		Request:     map[string]interface{}{"email": acct.Email},
		Result:      audit.ResultSuccess,
	})
	return nil
}

// ResetPassword validates the recovery code and replaces the stored
// password hash. The cache's missing, mismatched and expired failures
// all surface as ErrInvalidCode; the distinct cause is only logged.
func (s *Service) ResetPassword(ctx context.Context, email, code, newPassword, confirmPassword string) error {
	acct, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return ErrInvalidCode
		}
		return err
	}

	if err := s.codes.Validate(acct.Email, code); err != nil {
		slog.Info("verification code rejected", "email", acct.Email, "reason", err)
		audit.BestEffort(ctx, s.sink, audit.Entry{
			Entity:      "auth",
			Description: "reset password rejected",
			Operation:   "RESET_PASSWORD",
			Request:     map[string]interface{}{"email": acct.Email},
			Result:      audit.ResultFailure,
		})
		return ErrInvalidCode
	}

	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.accounts.UpdatePassword(ctx, acct.ID, string(hash)); err != nil {
		return err
	}

	audit.BestEffort(ctx, s.sink, audit.Entry{
		Entity:      "auth",
		Description: "reset password",
		Operation:   "RESET_PASSWORD",
		Request:     map[string]interface{}{"email": acct.Email},
		Result:      audit.ResultSuccess,
	})
	return nil
}
