package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUULDStringSortsByCreation(t *testing.T) {
	first := GenerateUULDString()
	second := GenerateUULDString()
	assert.Len(t, first, 26)
	assert.NotEqual(t, first, second)
	// ulids from the same process are monotonic at millisecond resolution
	assert.LessOrEqual(t, first[:10], second[:10])
}

func TestGenerateRandomPassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		password, err := GenerateRandomPassword(12)
		require.NoError(t, err)
		assert.Len(t, password, 12)
		for _, c := range password {
			assert.True(t, strings.ContainsRune(passwordAlphabet, c))
		}
		seen[password] = true
	}
	assert.Len(t, seen, 50)
}

func TestGenerateAccountNumber(t *testing.T) {
	number, err := GenerateAccountNumber()
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9]{10}$`, number)
}

func TestUsernameFromEmail(t *testing.T) {
	tests := map[string]string{
		"Ada.Lovelace@Example.com": "ada.lovelace",
		"  bob@x.io ":              "bob",
		"no-at-sign":               "no-at-sign",
	}
	for email, want := range tests {
		assert.Equal(t, want, UsernameFromEmail(email))
	}
}
