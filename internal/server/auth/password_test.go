package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *BcryptHasher {
	t.Helper()
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestNewBcryptHasher_CostRange(t *testing.T) {
	for _, cost := range []int{bcrypt.MinCost, DefaultHashCost, bcrypt.MaxCost} {
		_, err := NewBcryptHasher(cost)
		assert.NoError(t, err, cost)
	}
	for _, cost := range []int{0, bcrypt.MinCost - 1, bcrypt.MaxCost + 1} {
		_, err := NewBcryptHasher(cost)
		assert.Error(t, err, cost)
	}
}

func TestBcryptHasher_HashVerify(t *testing.T) {
	t.Parallel()
	h := newTestHasher(t)

	for _, secret := range []string{"secret1", "", "пароль-с-юникодом", "a much longer passphrase with spaces"} {
		hashed, err := h.Hash(secret)
		require.NoError(t, err)
		assert.NotEqual(t, secret, hashed)
		assert.True(t, h.Verify(secret, hashed), secret)
	}
}

func TestBcryptHasher_UniqueSalt(t *testing.T) {
	t.Parallel()
	h := newTestHasher(t)

	a, err := h.Hash("secret1")
	require.NoError(t, err)
	b, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestBcryptHasher_Mismatch(t *testing.T) {
	t.Parallel()
	h := newTestHasher(t)

	hashed, err := h.Hash("secret2")
	require.NoError(t, err)
	assert.False(t, h.Verify("secret1", hashed))
	assert.False(t, h.Verify("secret1", "not-a-bcrypt-hash"))
	assert.False(t, h.Verify("secret1", ""))
}

func TestBcryptHasher_UsesConfiguredCost(t *testing.T) {
	h, err := NewBcryptHasher(bcrypt.MinCost + 1)
	require.NoError(t, err)

	hashed, err := h.Hash("secret1")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, cost)
}

func TestBcryptHasher_TooLongSecret(t *testing.T) {
	h := newTestHasher(t)

	_, err := h.Hash(strings.Repeat("a", MaxPasswordBytes+1))
	require.ErrorIs(t, err, ErrPasswordTooLong)

	_, err = h.Hash(strings.Repeat("é", 37))
	require.ErrorIs(t, err, ErrPasswordTooLong, "limit counts bytes, not runes")

	_, err = h.Hash(strings.Repeat("a", MaxPasswordBytes))
	require.NoError(t, err)
}
