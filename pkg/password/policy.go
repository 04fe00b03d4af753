package password

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
)

// Character classes used for generation and validation.
const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars     = "0123456789"
	specialChars   = "@$!%*?&"
	allAllowed     = lowercaseChars + uppercaseChars + digitChars + specialChars
)

var (
	lowercaseRegexp = regexp.MustCompile(`[a-z]`)
	uppercaseRegexp = regexp.MustCompile(`[A-Z]`)
	digitRegexp     = regexp.MustCompile(`[0-9]`)
	specialRegexp   = regexp.MustCompile(`[@$!%*?&]`)
)

// Policy defines the requirements for password complexity
type Policy struct {
	MinLength          int
	RequireUppercase   bool
	RequireLowercase   bool
	RequireDigit       bool
	RequireSpecialChar bool
}

// DefaultPolicy returns the default password policy
func DefaultPolicy() *Policy {
	return &Policy{
		MinLength:          8,
		RequireUppercase:   true,
		RequireLowercase:   true,
		RequireDigit:       true,
		RequireSpecialChar: true,
	}
}

// Validate reports whether a password meets the complexity requirements
func (p *Policy) Validate(password string) bool {
	if len(password) < p.MinLength {
		return false
	}
	if p.RequireLowercase && !lowercaseRegexp.MatchString(password) {
		return false
	}
	if p.RequireUppercase && !uppercaseRegexp.MatchString(password) {
		return false
	}
	if p.RequireDigit && !digitRegexp.MatchString(password) {
		return false
	}
	if p.RequireSpecialChar && !specialRegexp.MatchString(password) {
		return false
	}
	return true
}

// Generate produces a random password satisfying the policy. One character
// is drawn from each required class, the rest from the combined alphabet,
// and the result is shuffled so positions carry no information about
// generation order.
func (p *Policy) Generate() (string, error) {
	var chars []byte

	if p.RequireLowercase {
		c, err := randomChar(lowercaseChars)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}
	if p.RequireUppercase {
		c, err := randomChar(uppercaseChars)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}
	if p.RequireDigit {
		c, err := randomChar(digitChars)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}
	if p.RequireSpecialChar {
		c, err := randomChar(specialChars)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}

	for len(chars) < p.MinLength {
		c, err := randomChar(allAllowed)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}

	if err := shuffle(chars); err != nil {
		return "", err
	}
	return string(chars), nil
}

func randomChar(alphabet string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
	if err != nil {
		return 0, fmt.Errorf("failed to read random source: %w", err)
	}
	return alphabet[n.Int64()], nil
}

// shuffle performs a Fisher-Yates shuffle backed by crypto/rand.
func shuffle(chars []byte) error {
	for i := len(chars) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return fmt.Errorf("failed to read random source: %w", err)
		}
		j := n.Int64()
		chars[i], chars[j] = chars[j], chars[i]
	}
	return nil
}
