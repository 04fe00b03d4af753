// Package tokengenerator issues and validates the stateless session
// tokens returned by login. Validity is fully determined by the HMAC
// signature and the expiry embedded in the token; no server-side session
// state exists.
package tokengenerator

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// DefaultSessionTokenExpiry is the token lifetime used when none is configured.
const DefaultSessionTokenExpiry = 30 * time.Minute

var (
	// ErrTokenInvalid is returned for malformed tokens or bad signatures
	ErrTokenInvalid = errors.New("token is invalid")

	// ErrTokenExpired is returned when the token's expiry has lapsed
	ErrTokenExpired = errors.New("token has expired")
)

// TokenGenerator defines methods for session token operations
type TokenGenerator interface {
	// GenerateToken generates a signed token bound to the given subject
	GenerateToken(subject string) (string, time.Time, error)

	// Subject parses and validates a token and returns its subject
	Subject(tokenStr string) (string, error)

	// ExpirationWindow returns the configured token lifetime
	ExpirationWindow() time.Duration
}

// JwtTokenGenerator implements TokenGenerator with HS256-signed JWTs.
// The signing key is immutable after construction, so the generator is
// safe for unlimited concurrent use.
type JwtTokenGenerator struct {
	secret   string
	issuer   string
	audience string
	expiry   time.Duration
}

// JwtTokenGeneratorOption configures a JwtTokenGenerator
type JwtTokenGeneratorOption func(*JwtTokenGenerator)

// WithExpiry sets the token lifetime
func WithExpiry(expiry time.Duration) JwtTokenGeneratorOption {
	return func(g *JwtTokenGenerator) {
		g.expiry = expiry
	}
}

// NewJwtTokenGenerator creates a new JwtTokenGenerator
func NewJwtTokenGenerator(secret, issuer, audience string, options ...JwtTokenGeneratorOption) *JwtTokenGenerator {
	g := &JwtTokenGenerator{
		secret:   secret,
		issuer:   issuer,
		audience: audience,
		expiry:   DefaultSessionTokenExpiry,
	}
	for _, option := range options {
		option(g)
	}
	return g
}

// GenerateToken creates a signed token with the given subject
func (g *JwtTokenGenerator) GenerateToken(subject string) (string, time.Time, error) {
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(g.expiry)),
		IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
		NotBefore: jwt.NewNumericDate(time.Now().UTC().Add(-5 * time.Minute)),
		Issuer:    g.issuer,
		Subject:   subject,
		ID:        uuid.New().String(),
		Audience:  jwt.ClaimStrings{g.audience},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString([]byte(g.secret))
	if err != nil {
		slog.Error("Failed to sign JWT claims", "err", err)
		return "", time.Time{}, err
	}
	return ss, claims.ExpiresAt.Time, nil
}

// Subject parses and validates a token string and returns the subject it
// was issued for
func (g *JwtTokenGenerator) Subject(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(g.secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		slog.Debug("Failed to parse JWT string", "err", err)
		return "", ErrTokenInvalid
	}
	if !token.Valid {
		return "", ErrTokenInvalid
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return "", ErrTokenInvalid
	}
	return subject, nil
}

// ExpirationWindow returns the configured token lifetime so callers can
// report it to clients
func (g *JwtTokenGenerator) ExpirationWindow() time.Duration {
	return g.expiry
}
