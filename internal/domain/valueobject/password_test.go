package valueobject_test

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-hexagonal-users/internal/domain/valueobject"
	"github.com/oksasatya/go-hexagonal-users/internal/infrastructure/security"
)

func TestNewPassword_Accepts(t *testing.T) {
	for _, raw := range []string{"Str0ng!Pass", "Abcdef1?", "P@ssw0rd-with-dashes", "Ünïcode1!x"} {
		t.Run(raw, func(t *testing.T) {
			_, err := valueobject.NewPassword(raw)
			assert.NoError(t, err)
		})
	}
}

func TestNewPassword_ReportsEveryViolatedRule(t *testing.T) {
	cases := []struct {
		raw   string
		rules []valueobject.Rule
	}{
		{"Ab1!", []valueobject.Rule{valueobject.RuleMinLength}},
		{"abcdefg1!", []valueobject.Rule{valueobject.RuleUppercase}},
		{"ABCDEFG1!", []valueobject.Rule{valueobject.RuleLowercase}},
		{"Abcdefgh!", []valueobject.Rule{valueobject.RuleDigit}},
		{"Abcdefgh1", []valueobject.Rule{valueobject.RuleSymbol}},
		{"Abcdefgh1-", []valueobject.Rule{valueobject.RuleSymbol}},
		{"abc", []valueobject.Rule{
			valueobject.RuleMinLength, valueobject.RuleUppercase, valueobject.RuleDigit, valueobject.RuleSymbol,
		}},
		{"12345678", []valueobject.Rule{
			valueobject.RuleUppercase, valueobject.RuleLowercase, valueobject.RuleSymbol,
		}},
		{"Aa1!" + strings.Repeat("x", 69), []valueobject.Rule{valueobject.RuleMaxLength}},
		{"", []valueobject.Rule{valueobject.RuleRequired}},
		{"         ", []valueobject.Rule{valueobject.RuleRequired}},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%q", tc.raw), func(t *testing.T) {
			_, err := valueobject.NewPassword(tc.raw)
			var verr *valueobject.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.ErrorIs(t, err, valueobject.ErrValidation)
			assert.Equal(t, "password", verr.Field)
			assert.ElementsMatch(t, tc.rules, verr.Rules)
		})
	}
}

func TestNewPassword_ShortPasswordsAlwaysFail(t *testing.T) {
	base := "Aa1!Bb2@"
	for n := 1; n < valueobject.MinPasswordLength; n++ {
		_, err := valueobject.NewPassword(base[:n])
		var verr *valueobject.ValidationError
		require.ErrorAs(t, err, &verr, "len=%d", n)
		assert.True(t, verr.Has(valueobject.RuleMinLength), "len=%d", n)
	}
}

func TestPassword_NeverPrintsPlaintext(t *testing.T) {
	p, err := valueobject.NewPassword("Str0ng!Pass")
	require.NoError(t, err)
	assert.NotContains(t, fmt.Sprintf("%v %s %#v %+v", p, p, p, p), "Str0ng")
}

func TestPassword_HashThenVerify(t *testing.T) {
	h := security.NewBcryptHasher(bcrypt.MinCost)
	p, err := valueobject.NewPassword("Str0ng!Pass")
	require.NoError(t, err)

	first, err := p.Hash(h)
	require.NoError(t, err)
	second, err := p.Hash(h)
	require.NoError(t, err)

	assert.NotEqual(t, first.Encoded(), second.Encoded())
	assert.True(t, first.Verify(h, "Str0ng!Pass"))
	assert.True(t, second.Verify(h, "Str0ng!Pass"))
	assert.False(t, first.Verify(h, "Str0ng!Pas"))
	assert.NotContains(t, first.String(), first.Encoded())
}

func TestHashedPassword_NoFalsePositives(t *testing.T) {
	h := security.NewBcryptHasher(bcrypt.MinCost)
	const original = "Str0ng!Pass"
	p, err := valueobject.NewPassword(original)
	require.NoError(t, err)
	hashed, err := p.Hash(h)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	alphabet := []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789" + valueobject.PasswordSymbols)
	for i := 0; i < 1000; i++ {
		n := 8 + rng.Intn(20)
		buf := make([]rune, n)
		for j := range buf {
			buf[j] = alphabet[rng.Intn(len(alphabet))]
		}
		candidate := string(buf)
		if candidate == original {
			continue
		}
		require.False(t, hashed.Verify(h, candidate), "candidate %q verified", candidate)
	}
}

func TestNewHashedPassword_RejectsEmpty(t *testing.T) {
	_, err := valueobject.NewHashedPassword("")
	assert.ErrorIs(t, err, valueobject.ErrEmptyHash)

	var zero valueobject.HashedPassword
	assert.True(t, zero.IsZero())
	assert.False(t, zero.Verify(security.NewBcryptHasher(bcrypt.MinCost), ""))
}
