package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheck(t *testing.T) {
	h := New(4)

	hashed, err := h.HashPassword("secret")
	require.NoError(t, err)
	require.NotEqual(t, "secret", hashed)

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	require.Equal(t, 4, cost)

	ok, err := h.CheckPassword(hashed, "secret")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = h.CheckPassword(hashed, "wrong")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCheckPasswordBrokenHash(t *testing.T) {
	ok, err := New(4).CheckPassword("not-a-hash", "secret")
	require.Error(t, err)
	require.False(t, ok)
}

func TestNewClampsCost(t *testing.T) {
	require.Equal(t, bcrypt.MinCost, New(1).Cost)
	require.Equal(t, bcrypt.MaxCost, New(99).Cost)
}
