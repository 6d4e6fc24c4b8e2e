package service

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	credentialsDomain "github.com/allisson/passvault/internal/credentials/domain"
	apperrors "github.com/allisson/passvault/internal/errors"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy source unavailable")
}

func TestPasswordGenerator_Generate(t *testing.T) {
	gen := NewPasswordGenerator()

	t.Run("default length", func(t *testing.T) {
		password, err := gen.Generate(DefaultPasswordLength)
		require.NoError(t, err)
		assert.Len(t, password, 12)
	})

	t.Run("only alphabet characters", func(t *testing.T) {
		password, err := gen.Generate(1000)
		require.NoError(t, err)
		for _, c := range password {
			assert.True(t, strings.ContainsRune(PasswordChars, rune(c)), "unexpected character %q", c)
		}
	})

	t.Run("bounds", func(t *testing.T) {
		_, err := gen.Generate(1)
		assert.NoError(t, err)
		_, err = gen.Generate(credentialsDomain.MaxPasswordLength)
		assert.NoError(t, err)

		for _, length := range []int{0, -1, credentialsDomain.MaxPasswordLength + 1} {
			_, err := gen.Generate(length)
			assert.ErrorIs(t, err, ErrInvalidPasswordLength)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		}
	})

	t.Run("passwords differ", func(t *testing.T) {
		a, err := gen.Generate(32)
		require.NoError(t, err)
		b, err := gen.Generate(32)
		require.NoError(t, err)
		assert.False(t, bytes.Equal(a, b))
	})

	t.Run("reader failure", func(t *testing.T) {
		_, err := NewPasswordGeneratorWithReader(failingReader{}).Generate(12)
		assert.ErrorContains(t, err, "failed to generate random character")
	})

	t.Run("deterministic reader", func(t *testing.T) {
		seed := bytes.Repeat([]byte{0x00}, 64)
		password, err := NewPasswordGeneratorWithReader(bytes.NewReader(seed)).Generate(4)
		require.NoError(t, err)
		assert.Equal(t, []byte("AAAA"), password)
	})
}
