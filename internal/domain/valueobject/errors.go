package valueobject

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation is the kind every ValidationError unwraps to.
var ErrValidation = errors.New("validation failed")

// Rule identifies a single violated constraint.
type Rule string

const (
	RuleRequired    Rule = "required"
	RuleFormat      Rule = "format"
	RuleMinLength   Rule = "min_length"
	RuleMaxLength   Rule = "max_length"
	RuleUppercase   Rule = "uppercase"
	RuleLowercase   Rule = "lowercase"
	RuleDigit       Rule = "digit"
	RuleSymbol      Rule = "symbol"
	RuleNonNegative Rule = "non_negative"
	RuleMismatch    Rule = "mismatch"
)

// ValidationError reports which rules a field failed.
type ValidationError struct {
	Field string
	Rules []Rule
}

func NewValidationError(field string, rules ...Rule) *ValidationError {
	return &ValidationError{Field: field, Rules: rules}
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Rules))
	for i, r := range e.Rules {
		parts[i] = string(r)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Has reports whether rule is among the violations.
func (e *ValidationError) Has(rule Rule) bool {
	for _, r := range e.Rules {
		if r == rule {
			return true
		}
	}
	return false
}
