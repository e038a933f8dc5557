package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus/config"
)

func newTestHasher(policy *config.PasswordStrengthConfig) *bcryptHasher {
	cfg := &config.Config{
		Auth:             &config.AuthConfig{BcryptCost: 4}, // lowest cost to keep tests fast
		PasswordStrength: policy,
	}

	return NewBcryptHasher(cfg).(*bcryptHasher)
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := newTestHasher(nil)

	hash, err := hasher.Hash("Sup3r-Secret!")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3r-Secret!", hash)

	assert.True(t, hasher.Check("Sup3r-Secret!", hash))
	assert.False(t, hasher.Check("wrong-password", hash))
	assert.False(t, hasher.Check("Sup3r-Secret!", "not-a-bcrypt-hash"))
}

func TestBcryptHasher_HashesAreSalted(t *testing.T) {
	hasher := newTestHasher(nil)

	first, err := hasher.Hash("Sup3r-Secret!")
	require.NoError(t, err)
	second, err := hasher.Hash("Sup3r-Secret!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_ValidatePasswordStrength_Defaults(t *testing.T) {
	hasher := newTestHasher(nil)

	assert.NoError(t, hasher.ValidatePasswordStrength("Sup3r-Secret!"))

	assert.Error(t, hasher.ValidatePasswordStrength("Ab1!"), "too short")
	assert.Error(t, hasher.ValidatePasswordStrength("lowercase1!"), "missing uppercase")
	assert.Error(t, hasher.ValidatePasswordStrength("UPPERCASE1!"), "missing lowercase")
	assert.Error(t, hasher.ValidatePasswordStrength("NoNumbers!"), "missing number")
	assert.Error(t, hasher.ValidatePasswordStrength("NoSpecial1"), "missing special character")
}

func TestBcryptHasher_ValidatePasswordStrength_ConfiguredPolicy(t *testing.T) {
	hasher := newTestHasher(&config.PasswordStrengthConfig{
		MinLength:        4,
		MaxLength:        10,
		RequireUppercase: false,
		RequireLowercase: true,
		RequireNumbers:   false,
		RequireSpecial:   false,
	})

	assert.NoError(t, hasher.ValidatePasswordStrength("abcd"))
	assert.Error(t, hasher.ValidatePasswordStrength("abc"), "below configured minimum")
	assert.Error(t, hasher.ValidatePasswordStrength("abcdefghijk"), "above configured maximum")
	assert.Error(t, hasher.ValidatePasswordStrength("1234"), "missing lowercase")
}
