package valueobject

import (
	"regexp"
	"strings"
)

const maxEmailLength = 254

var emailPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9._%+-]*[a-z0-9])?@[a-z0-9]([a-z0-9.-]*[a-z0-9])?\.[a-z]{2,}$`)

// Email is a normalized (trimmed, lower-cased) address. The zero value is not a valid Email.
type Email struct {
	value string
}

// NewEmail validates raw and returns its normalized form.
func NewEmail(raw string) (Email, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return Email{}, NewValidationError("email", RuleRequired)
	}
	if len(v) > maxEmailLength {
		return Email{}, NewValidationError("email", RuleMaxLength)
	}
	if !wellFormed(v) {
		return Email{}, NewValidationError("email", RuleFormat)
	}
	return Email{value: v}, nil
}

func wellFormed(v string) bool {
	if strings.Count(v, "@") != 1 || strings.Contains(v, "..") {
		return false
	}
	local, domain, _ := strings.Cut(v, "@")
	if local == "" || !strings.Contains(domain, ".") {
		return false
	}
	return emailPattern.MatchString(v)
}

func (e Email) String() string { return e.value }

func (e Email) Equals(other Email) bool { return e.value == other.value }

func (e Email) IsZero() bool { return e.value == "" }
