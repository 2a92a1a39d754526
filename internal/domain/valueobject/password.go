package valueobject

import (
	"errors"
	"strings"
	"unicode"
)

const (
	MinPasswordLength = 8
	// MaxPasswordBytes is the bcrypt input limit; longer input would be silently truncated.
	MaxPasswordBytes = 72
	PasswordSymbols  = `!@#$%^&*(),.?":{}|<>`
)

// PasswordHasher turns plaintext into a salted one-way encoding and checks candidates against it.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(encoded, plain string) bool
}

// Password is a plaintext that passed the policy. It only lives for the duration of a request.
type Password struct {
	plain string
}

// NewPassword checks every policy rule and reports all violations at once.
func NewPassword(raw string) (Password, error) {
	if strings.TrimSpace(raw) == "" {
		return Password{}, NewValidationError("password", RuleRequired)
	}

	var rules []Rule
	if len([]rune(raw)) < MinPasswordLength {
		rules = append(rules, RuleMinLength)
	}
	if len(raw) > MaxPasswordBytes {
		rules = append(rules, RuleMaxLength)
	}

	var upper, lower, digit, symbol bool
	for _, r := range raw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		}
	}
	if !upper {
		rules = append(rules, RuleUppercase)
	}
	if !lower {
		rules = append(rules, RuleLowercase)
	}
	if !digit {
		rules = append(rules, RuleDigit)
	}
	if !symbol {
		rules = append(rules, RuleSymbol)
	}

	if len(rules) > 0 {
		return Password{}, NewValidationError("password", rules...)
	}
	return Password{plain: raw}, nil
}

// Hash produces a fresh salted encoding; two calls never return the same stored value.
func (p Password) Hash(h PasswordHasher) (HashedPassword, error) {
	if p.plain == "" {
		return HashedPassword{}, errors.New("hash of empty password")
	}
	encoded, err := h.Hash(p.plain)
	if err != nil {
		return HashedPassword{}, err
	}
	return NewHashedPassword(encoded)
}

func (p Password) String() string   { return "Password(***)" }
func (p Password) GoString() string { return "Password(***)" }

// HashedPassword is the only password form that is stored or held past a request.
type HashedPassword struct {
	encoded string
}

var ErrEmptyHash = errors.New("empty password hash")

// NewHashedPassword wraps an already encoded hash, e.g. one loaded from storage.
func NewHashedPassword(encoded string) (HashedPassword, error) {
	if encoded == "" {
		return HashedPassword{}, ErrEmptyHash
	}
	return HashedPassword{encoded: encoded}, nil
}

// Verify reports whether candidate is the plaintext this hash was made from.
func (hp HashedPassword) Verify(h PasswordHasher, candidate string) bool {
	if hp.encoded == "" {
		return false
	}
	return h.Compare(hp.encoded, candidate)
}

// Encoded returns the stored representation for persistence adapters.
func (hp HashedPassword) Encoded() string { return hp.encoded }

func (hp HashedPassword) IsZero() bool { return hp.encoded == "" }

func (hp HashedPassword) String() string { return "HashedPassword(***)" }
